// Package network implements the replication layer: authority
// classification, delta-compressed snapshots, interpolation buffering for
// remote actors, plausibility validation of client-reported transforms, and
// reconciliation grace windows.
package network

import (
	"sort"

	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/shared/gamemath"
	"github.com/emberworks/brawlcore/shared/netconfig"
)

// Snapshot is a timestamped capture of an actor's replicated fields, built
// by the authoritative side every network tick.
type Snapshot struct {
	Timestamp int64 // Unix milliseconds on the sender's clock
	Position  gamemath.Vector
	Height    float64 // Vertical offset above the ground plane
	Velocity  gamemath.Vector
	Facing    float64 // Radians
	State     netconfig.StateID
	Actions   uint16 // Action bitmask active at capture time
	Health    float64
	Shield    float64
}

// SnapshotBuffer keeps the most recent N snapshots for one remote actor,
// ordered by timestamp, and reconstructs a continuous pose between them.
type SnapshotBuffer struct {
	snaps []Snapshot
	cap   int
}

// NewSnapshotBuffer builds a buffer with the configured capacity.
func NewSnapshotBuffer() *SnapshotBuffer {
	return &SnapshotBuffer{cap: config.Net.SnapshotBufferCap}
}

// Push inserts a snapshot, keeping timestamp order and evicting the oldest
// entry once capacity is reached. Out-of-order arrivals are tolerated;
// duplicates by timestamp replace the stored copy.
func (b *SnapshotBuffer) Push(s Snapshot) {
	i := sort.Search(len(b.snaps), func(i int) bool {
		return b.snaps[i].Timestamp >= s.Timestamp
	})
	if i < len(b.snaps) && b.snaps[i].Timestamp == s.Timestamp {
		b.snaps[i] = s
		return
	}
	b.snaps = append(b.snaps, Snapshot{})
	copy(b.snaps[i+1:], b.snaps[i:])
	b.snaps[i] = s
	if len(b.snaps) > b.cap {
		b.snaps = b.snaps[len(b.snaps)-b.cap:]
	}
}

// Len returns the number of buffered snapshots.
func (b *SnapshotBuffer) Len() int {
	return len(b.snaps)
}

// Latest returns the newest snapshot, if any.
func (b *SnapshotBuffer) Latest() (Snapshot, bool) {
	if len(b.snaps) == 0 {
		return Snapshot{}, false
	}
	return b.snaps[len(b.snaps)-1], true
}

// SampleAt reconstructs the pose at renderTime (the caller subtracts the
// interpolation delay from its clock). When two snapshots straddle the
// render time, position and velocity are linearly interpolated and facing
// follows the shortest arc. With no valid bracket the latest snapshot is
// returned as-is so the actor still renders after a gap or at stream start.
func (b *SnapshotBuffer) SampleAt(renderTime int64) (Snapshot, bool) {
	if len(b.snaps) == 0 {
		return Snapshot{}, false
	}

	// Index of the first snapshot at or past the render time.
	i := sort.Search(len(b.snaps), func(i int) bool {
		return b.snaps[i].Timestamp >= renderTime
	})

	if i == 0 || i == len(b.snaps) {
		// No bracket: before the first snapshot or past the last one.
		return b.snaps[len(b.snaps)-1], true
	}

	from, to := b.snaps[i-1], b.snaps[i]
	span := to.Timestamp - from.Timestamp
	if span <= 0 {
		return to, true
	}
	t := float64(renderTime-from.Timestamp) / float64(span)

	out := to
	out.Timestamp = renderTime
	out.Position = gamemath.LerpVector(from.Position, to.Position, t)
	out.Height = gamemath.Lerp(from.Height, to.Height, t)
	out.Velocity = gamemath.LerpVector(from.Velocity, to.Velocity, t)
	out.Facing = gamemath.LerpAngle(from.Facing, to.Facing, t)
	return out, true
}
