// Package components holds the donburi components of the client mirror
// world: every replicated entity is paired with an actor core so the
// client runs the same state machine the server does.
package components

import (
	"github.com/emberworks/brawlcore/fsm"
	"github.com/emberworks/brawlcore/network"
	"github.com/yohamta/donburi"
)

// LocalActorData is the client's own predicted actor.
type LocalActorData struct {
	Actor      *fsm.Actor
	Prediction *network.PredictionBuffer
}

var LocalActor = donburi.NewComponentType[LocalActorData]()

// RemoteActorData is another player's mirrored actor: a non-simulated
// machine fed by the snapshot interpolation buffer. LastApplied is the
// reassembled previous snapshot that incoming deltas patch against.
type RemoteActorData struct {
	Actor       *fsm.Actor
	Buffer      *network.SnapshotBuffer
	LastApplied network.Snapshot
}

var RemoteActor = donburi.NewComponentType[RemoteActorData]()
