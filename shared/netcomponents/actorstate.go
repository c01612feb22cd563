package netcomponents

import (
	"github.com/emberworks/brawlcore/shared/netconfig"
	"github.com/yohamta/donburi"
)

// NetActorStateData is the discrete per-actor state synced alongside the
// interpolated transform. Pools are replicated as values only; the damage
// pipeline itself runs exclusively on the owning side.
type NetActorStateData struct {
	StateID netconfig.StateID
	Facing  float64 // Radians; snapped, not interpolated
	Health  float64
	Shield  float64
	Stamina float64

	// LastSequence is the newest client input the server has applied,
	// echoed for prediction reconciliation.
	LastSequence uint32

	IsLocal bool // Client-side only, not meaningful on the wire
}

var NetActorState = donburi.NewComponentType[NetActorStateData]()
