package network

import (
	"math"
	"testing"

	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/shared/gamemath"
	"github.com/emberworks/brawlcore/shared/messages"
)

func TestPredictionStoreAndGet(t *testing.T) {
	t.Parallel()

	var pb PredictionBuffer
	pb.Store(messages.PlayerInput{Sequence: 7}, gamemath.Vector{X: 10})

	record, ok := pb.Get(7)
	if !ok || record.Predicted.X != 10 {
		t.Fatalf("Get(7) = %+v/%v", record, ok)
	}
	if pb.NextSeq() != 8 {
		t.Fatalf("next = %d, want 8", pb.NextSeq())
	}
	if _, ok := pb.Get(6); ok {
		t.Fatal("phantom record for an unstored sequence")
	}
}

func TestPredictionOverwriteInvalidatesOldSlot(t *testing.T) {
	t.Parallel()

	var pb PredictionBuffer
	pb.Store(messages.PlayerInput{Sequence: 1}, gamemath.Vector{})
	pb.Store(messages.PlayerInput{Sequence: 1 + predictionBufferSize}, gamemath.Vector{})

	if _, ok := pb.Get(1); ok {
		t.Fatal("overwritten slot still resolves the old sequence")
	}
}

func TestUnacknowledgedReturnsOldestFirst(t *testing.T) {
	t.Parallel()

	var pb PredictionBuffer
	for seq := uint32(1); seq <= 5; seq++ {
		pb.Store(messages.PlayerInput{Sequence: seq}, gamemath.Vector{X: float64(seq)})
	}

	pending := pb.Unacknowledged(2)
	if len(pending) != 3 {
		t.Fatalf("pending = %d records, want 3", len(pending))
	}
	for i, want := range []uint32{3, 4, 5} {
		if pending[i].Input.Sequence != want {
			t.Fatalf("pending[%d].Sequence = %d, want %d", i, pending[i].Input.Sequence, want)
		}
	}
}

func TestReplayPositionRebasesPendingInputs(t *testing.T) {
	t.Parallel()

	var pb PredictionBuffer
	for seq := uint32(1); seq <= 4; seq++ {
		pb.Store(messages.PlayerInput{Sequence: seq}, gamemath.Vector{X: float64(seq) * 10})
	}

	// Server corrects seq 2 from the predicted (20,0) to (18,0): the
	// two pending inputs keep their relative displacement on top.
	got := pb.ReplayPosition(2, gamemath.Vector{X: 18})
	if got != (gamemath.Vector{X: 38}) {
		t.Fatalf("replayed position = %v, want (38,0)", got)
	}

	// Nothing pending past the ack: the server position stands as-is.
	if got := pb.ReplayPosition(4, gamemath.Vector{X: 35}); got != (gamemath.Vector{X: 35}) {
		t.Fatalf("replayed position = %v, want the server position", got)
	}

	// Unknown ack falls back to the server position too.
	if got := pb.ReplayPosition(99, gamemath.Vector{X: 7}); got != (gamemath.Vector{X: 7}) {
		t.Fatalf("replayed position = %v, want the server position", got)
	}
}

func TestCorrectionSnapThreshold(t *testing.T) {
	t.Parallel()

	var pb PredictionBuffer
	pb.Store(messages.PlayerInput{Sequence: 5}, gamemath.Vector{X: 100})

	threshold := config.Net.MaxReportStep / 2

	errDist, snap := pb.Correction(5, gamemath.Vector{X: 100, Y: threshold - 1}, nil, 0)
	if snap {
		t.Fatalf("snap on a %.1f-unit error below the threshold", errDist)
	}

	errDist, snap = pb.Correction(5, gamemath.Vector{X: 100, Y: threshold + 1}, nil, 0)
	if !snap {
		t.Fatal("no snap above the threshold")
	}
	if math.Abs(errDist-(threshold+1)) > 1e-9 {
		t.Fatalf("errDist = %v, want %v", errDist, threshold+1)
	}
}

func TestCorrectionSuppressedDuringGrace(t *testing.T) {
	t.Parallel()

	var pb PredictionBuffer
	pb.Store(messages.PlayerInput{Sequence: 5}, gamemath.Vector{X: 100})

	var g Grace
	g.Open(10)

	errDist, snap := pb.Correction(5, gamemath.Vector{X: 300}, &g, 10.1)
	if snap {
		t.Fatal("snap issued inside the grace window")
	}
	if errDist != 200 {
		t.Fatalf("errDist = %v, want 200 even while suppressed", errDist)
	}

	// After the window the same divergence corrects.
	if _, snap := pb.Correction(5, gamemath.Vector{X: 300}, &g, 10+config.Net.GraceBase+0.1); !snap {
		t.Fatal("no snap after the grace window lapsed")
	}
}

func TestCorrectionUnknownSequence(t *testing.T) {
	t.Parallel()

	var pb PredictionBuffer
	if _, snap := pb.Correction(99, gamemath.Vector{X: 1000}, nil, 0); snap {
		t.Fatal("snap for an unknown sequence")
	}
}
