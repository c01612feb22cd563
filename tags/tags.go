package tags

import "github.com/yohamta/donburi"

var (
	Actor       = donburi.NewTag().SetName("Actor")
	LocalActor  = donburi.NewTag().SetName("LocalActor")
	RemoteActor = donburi.NewTag().SetName("RemoteActor")
)

// Resolv tags for collision queries.
const (
	ResolvSolid  = "solid"
	ResolvActor  = "Actor"
	ResolvHitbox = "Hitbox"
)
