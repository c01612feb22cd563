package leveldata

import "testing"

func TestDefaultArenaBoundsAndSpawns(t *testing.T) {
	t.Parallel()

	arena := DefaultArena(960, 640)

	if arena.Width != 960 || arena.Height != 640 {
		t.Fatalf("dimensions = %dx%d", arena.Width, arena.Height)
	}
	if len(arena.Walls) != 4 {
		t.Fatalf("walls = %d, want 4 boundary segments", len(arena.Walls))
	}
	if len(arena.SpawnPoints) != 4 {
		t.Fatalf("spawns = %d, want 4", len(arena.SpawnPoints))
	}

	for i, sp := range arena.SpawnPoints {
		if sp.Index != i {
			t.Fatalf("spawn %d has index %d", i, sp.Index)
		}
		if sp.X <= 16 || sp.X >= 960-16 || sp.Y <= 16 || sp.Y >= 640-16 {
			t.Fatalf("spawn %d at %v/%v is inside a boundary wall", i, sp.X, sp.Y)
		}
	}
}
