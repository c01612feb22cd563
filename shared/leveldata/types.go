// Package leveldata provides TMX arena parsing shared between client and
// server. It has no dependencies on donburi or resolv, pure data only.
package leveldata

// ArenaData holds the collision-relevant data parsed from a TMX arena file.
type ArenaData struct {
	Walls       []WallRect
	SpawnPoints []SpawnPoint
	Width       int
	Height      int
}

// WallRect is a solid wall segment. Walls block movement and are valid
// wall-jump surfaces.
type WallRect struct {
	X, Y, W, H float64
}

// SpawnPoint is an actor spawn location.
type SpawnPoint struct {
	X, Y  float64
	Index int
}
