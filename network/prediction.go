package network

import (
	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/shared/gamemath"
	"github.com/emberworks/brawlcore/shared/messages"
)

const predictionBufferSize = 64

// InputRecord stores an input alongside the predicted position after
// applying it.
type InputRecord struct {
	Input     messages.PlayerInput
	Predicted gamemath.Vector
}

// PredictionBuffer is a ring buffer of recent inputs and their predicted
// outcomes, consulted when a server ack arrives.
type PredictionBuffer struct {
	history [predictionBufferSize]InputRecord
	nextSeq uint32
}

// Store saves an input and the resulting predicted position.
func (pb *PredictionBuffer) Store(input messages.PlayerInput, predicted gamemath.Vector) {
	idx := input.Sequence % predictionBufferSize
	pb.history[idx] = InputRecord{Input: input, Predicted: predicted}
	pb.nextSeq = input.Sequence + 1
}

// Get retrieves a stored record by sequence number. Returns false if not
// found or if the slot has been overwritten.
func (pb *PredictionBuffer) Get(seq uint32) (InputRecord, bool) {
	idx := seq % predictionBufferSize
	record := pb.history[idx]
	if record.Input.Sequence != seq {
		return InputRecord{}, false
	}
	return record, true
}

// NextSeq returns the next expected sequence number.
func (pb *PredictionBuffer) NextSeq() uint32 {
	return pb.nextSeq
}

// Unacknowledged returns all stored inputs newer than lastAcked, oldest
// first, for replay on top of a corrected position.
func (pb *PredictionBuffer) Unacknowledged(lastAcked uint32) []InputRecord {
	var results []InputRecord
	for seq := lastAcked + 1; seq < pb.nextSeq; seq++ {
		if record, ok := pb.Get(seq); ok {
			results = append(results, record)
		}
	}
	return results
}

// ReplayPosition rebases the unacknowledged prediction tail onto the
// server's corrected position: the divergence measured at the acked input
// is applied as an offset to the newest prediction, so inputs sent after
// the ack are not discarded by the snap.
func (pb *PredictionBuffer) ReplayPosition(acked uint32, server gamemath.Vector) gamemath.Vector {
	record, ok := pb.Get(acked)
	if !ok {
		return server
	}
	pending := pb.Unacknowledged(acked)
	if len(pending) == 0 {
		return server
	}
	offset := server.Sub(record.Predicted)
	return pending[len(pending)-1].Predicted.Add(offset)
}

// Correction compares the server's authoritative position for an acked
// sequence against what was predicted, honoring the grace window: right
// after a movement-altering transition the divergence is expected and no
// correction is issued. Returns the positional error and whether the
// caller should snap-and-replay.
func (pb *PredictionBuffer) Correction(seq uint32, server gamemath.Vector, g *Grace, now float64) (float64, bool) {
	record, ok := pb.Get(seq)
	if !ok {
		return 0, false
	}
	errDist := record.Predicted.Sub(server).Length()
	if g != nil && g.Active(now) {
		return errDist, false
	}
	return errDist, errDist > config.Net.MaxReportStep/2
}
