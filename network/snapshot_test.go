package network

import (
	"math"
	"testing"

	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/shared/gamemath"
	"github.com/emberworks/brawlcore/shared/netconfig"
)

func TestSampleAtInterpolatesBetweenSnapshots(t *testing.T) {
	t.Parallel()

	b := NewSnapshotBuffer()
	b.Push(Snapshot{Timestamp: 1000, Position: gamemath.Vector{X: 0, Y: 0}, Health: 100})
	b.Push(Snapshot{Timestamp: 1100, Position: gamemath.Vector{X: 10, Y: 0}, Health: 80})

	s, ok := b.SampleAt(1050)
	if !ok {
		t.Fatal("no sample")
	}
	if math.Abs(s.Position.X-5) > 1e-9 || math.Abs(s.Position.Y) > 1e-9 {
		t.Fatalf("position = %v, want (5,0)", s.Position)
	}
	// Discrete fields snap to the newer snapshot.
	if s.Health != 80 {
		t.Fatalf("health = %v, want 80", s.Health)
	}
}

func TestSampleAtFacingTakesShortestArc(t *testing.T) {
	t.Parallel()

	b := NewSnapshotBuffer()
	b.Push(Snapshot{Timestamp: 0, Facing: -3 * math.Pi / 4})
	b.Push(Snapshot{Timestamp: 100, Facing: 3 * math.Pi / 4})

	s, _ := b.SampleAt(50)

	// Halfway between -135° and +135° through the back of the circle is
	// ±180°, never 0.
	if math.Abs(math.Abs(s.Facing)-math.Pi) > 1e-6 {
		t.Fatalf("facing = %v, want ±pi", s.Facing)
	}
}

func TestSampleAtOutsideBracketReturnsLatest(t *testing.T) {
	t.Parallel()

	b := NewSnapshotBuffer()
	b.Push(Snapshot{Timestamp: 1000, Position: gamemath.Vector{X: 1}})
	b.Push(Snapshot{Timestamp: 1100, Position: gamemath.Vector{X: 2}})

	for _, renderTime := range []int64{900, 1200} {
		s, ok := b.SampleAt(renderTime)
		if !ok || s.Position.X != 2 {
			t.Fatalf("SampleAt(%d) = %v/%v, want the latest snapshot", renderTime, s.Position, ok)
		}
	}
}

func TestSampleAtEmptyBuffer(t *testing.T) {
	t.Parallel()

	b := NewSnapshotBuffer()
	if _, ok := b.SampleAt(1000); ok {
		t.Fatal("sample from an empty buffer")
	}
}

func TestPushKeepsOrderAndCapacity(t *testing.T) {
	t.Parallel()

	b := NewSnapshotBuffer()

	// Out-of-order arrival.
	b.Push(Snapshot{Timestamp: 300})
	b.Push(Snapshot{Timestamp: 100})
	b.Push(Snapshot{Timestamp: 200})

	s, _ := b.SampleAt(150)
	if s.Timestamp != 150 {
		t.Fatalf("interpolated timestamp = %d, want 150", s.Timestamp)
	}

	for i := 0; i < config.Net.SnapshotBufferCap+10; i++ {
		b.Push(Snapshot{Timestamp: int64(1000 + i)})
	}
	if b.Len() != config.Net.SnapshotBufferCap {
		t.Fatalf("len = %d, want cap %d", b.Len(), config.Net.SnapshotBufferCap)
	}
	latest, ok := b.Latest()
	if !ok || latest.Timestamp != int64(1000+config.Net.SnapshotBufferCap+9) {
		t.Fatalf("latest = %v/%v", latest.Timestamp, ok)
	}
}

func TestPushReplacesDuplicateTimestamp(t *testing.T) {
	t.Parallel()

	b := NewSnapshotBuffer()
	b.Push(Snapshot{Timestamp: 100, State: netconfig.Idle})
	b.Push(Snapshot{Timestamp: 100, State: netconfig.Dodging})

	if b.Len() != 1 {
		t.Fatalf("len = %d, want 1", b.Len())
	}
	latest, _ := b.Latest()
	if latest.State != netconfig.Dodging {
		t.Fatalf("state = %v, want the replacement", latest.State)
	}
}
