// Package protocol pins the esync component sync IDs. Both binaries must
// register the same IDs before any network traffic.
package protocol

import (
	"github.com/emberworks/brawlcore/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId.
const (
	SyncIDNetPosition   uint = 10
	SyncIDNetVelocity   uint = 11
	SyncIDNetActorState uint = 12
)

// Interpolation IDs (uint8 for WithInterpFn).
const (
	InterpIDNetPosition uint8 = 10
	InterpIDNetVelocity uint8 = 11
)

// RegisterComponents registers all network components with necs for
// serialization. Must be called by both server and client before any
// network operations.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetPosition,
		netcomponents.NetPositionData{},
		netcomponents.NetPosition,
		esync.WithInterpFn(InterpIDNetPosition, netcomponents.LerpNetPosition),
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetVelocity,
		netcomponents.NetVelocityData{},
		netcomponents.NetVelocity,
		esync.WithInterpFn(InterpIDNetVelocity, netcomponents.LerpNetVelocity),
	); err != nil {
		return err
	}

	// ActorState: no interpolation (discrete state changes).
	return esync.RegisterComponent(
		SyncIDNetActorState,
		netcomponents.NetActorStateData{},
		netcomponents.NetActorState,
	)
}
