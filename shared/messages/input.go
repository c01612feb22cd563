// Package messages defines the client/server wire messages dispatched
// through the necs router. Everything here is msgpack-serialized; keep
// fields flat and primitive.
package messages

import "github.com/emberworks/brawlcore/shared/netconfig"

// PlayerInput is sent from client to server each frame with the currently
// held actions and movement direction. The sequence number is echoed back
// in the actor's synced state for prediction reconciliation.
type PlayerInput struct {
	Sequence  uint32
	Actions   uint16 // Bitmask of netconfig.ActionBit values
	MoveX     float64
	MoveY     float64
	Facing    float64 // Radians
	Timestamp int64   // Client clock, Unix ms
}

// Pressed reports whether the given action bit is set.
func (i PlayerInput) Pressed(a netconfig.ActionID) bool {
	return i.Actions&netconfig.ActionBit(a) != 0
}

// WallJumpRequest asks the server to buffer a wall jump with the contact
// normal the client detected. Requests for the same wall within the buffer
// window are deduplicated; a different normal is a distinct request.
type WallJumpRequest struct {
	Sequence         uint32
	NormalX, NormalY float64
	Timestamp        int64
}

// TransformReport is the client-authoritative pose for the client's own
// actor. The server validates it for plausibility before accepting; a
// rejected report leaves the server-side transform unchanged.
type TransformReport struct {
	Sequence  uint32
	X, Y      float64
	Height    float64
	VelX      float64
	VelY      float64
	Facing    float64
	Timestamp int64
}
