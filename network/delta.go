package network

// Field flags for delta-compressed snapshots. The authoritative side keeps
// the last snapshot it sent per actor and transmits only changed fields.
const (
	FieldPosition uint8 = 1 << iota
	FieldVelocity
	FieldFacing
	FieldState
	FieldActions
	FieldHealth
	FieldShield
)

// Delta is a snapshot reduced to its changed fields. Timestamp is always
// carried so the receiver can order and interpolate.
type Delta struct {
	Timestamp int64
	Fields    uint8
	Snapshot  Snapshot
}

// BuildDelta diffs cur against prev. The first snapshot for an actor should
// be diffed against the zero value so every field is flagged.
func BuildDelta(prev, cur Snapshot) Delta {
	var fields uint8
	if cur.Position != prev.Position || cur.Height != prev.Height {
		fields |= FieldPosition
	}
	if cur.Velocity != prev.Velocity {
		fields |= FieldVelocity
	}
	if cur.Facing != prev.Facing {
		fields |= FieldFacing
	}
	if cur.State != prev.State {
		fields |= FieldState
	}
	if cur.Actions != prev.Actions {
		fields |= FieldActions
	}
	if cur.Health != prev.Health {
		fields |= FieldHealth
	}
	if cur.Shield != prev.Shield {
		fields |= FieldShield
	}
	return Delta{Timestamp: cur.Timestamp, Fields: fields, Snapshot: cur}
}

// ApplyDelta reconstructs a full snapshot from the last applied one plus the
// received delta. Unflagged fields carry over from base.
func ApplyDelta(base Snapshot, d Delta) Snapshot {
	out := base
	out.Timestamp = d.Timestamp
	if d.Fields&FieldPosition != 0 {
		out.Position = d.Snapshot.Position
		out.Height = d.Snapshot.Height
	}
	if d.Fields&FieldVelocity != 0 {
		out.Velocity = d.Snapshot.Velocity
	}
	if d.Fields&FieldFacing != 0 {
		out.Facing = d.Snapshot.Facing
	}
	if d.Fields&FieldState != 0 {
		out.State = d.Snapshot.State
	}
	if d.Fields&FieldActions != 0 {
		out.Actions = d.Snapshot.Actions
	}
	if d.Fields&FieldHealth != 0 {
		out.Health = d.Snapshot.Health
	}
	if d.Fields&FieldShield != 0 {
		out.Shield = d.Snapshot.Shield
	}
	return out
}

// Empty reports whether the delta carries no changed fields and can be
// skipped on the droppable channel.
func (d Delta) Empty() bool {
	return d.Fields == 0
}
