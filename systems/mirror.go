// Package systems contains the donburi systems of the client mirror
// world: snapshot ingestion, remote playback, and actor ticking.
package systems

import (
	"fmt"
	"time"

	"github.com/emberworks/brawlcore/components"
	"github.com/emberworks/brawlcore/events"
	"github.com/emberworks/brawlcore/fsm"
	"github.com/emberworks/brawlcore/network"
	"github.com/emberworks/brawlcore/shared/gamemath"
	"github.com/emberworks/brawlcore/shared/netcomponents"
	"github.com/emberworks/brawlcore/shared/netconfig"
	"github.com/emberworks/brawlcore/states"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
)

// Mirror ingests world snapshots into the client's donburi world, creating
// mirrored actors on first sight and reconciling the local one.
type Mirror struct {
	world   donburi.World
	localID func() esync.NetworkId
	nowMs   func() int64

	// owners classifies mirrored actors from this client's point of
	// view: the one it owns simulates, the rest play back.
	owners  *network.Ownership
	present map[esync.NetworkId]bool
}

// localPeerName is this client's peer id in the ownership registry.
const localPeerName = "local"

func NewMirror(world donburi.World, localID func() esync.NetworkId) *Mirror {
	return &Mirror{
		world:   world,
		localID: localID,
		nowMs:   func() int64 { return time.Now().UnixMilli() },
		owners:  network.NewOwnership(false, localPeerName, network.OwnerClient),
		present: make(map[esync.NetworkId]bool),
	}
}

// ApplySnapshot folds one server snapshot into the mirror world.
func (m *Mirror) ApplySnapshot(snapshot esync.WorldSnapshot) {
	myID := m.localID()
	clear(m.present)

	for _, ent := range snapshot {
		m.present[ent.Id] = true

		var pos *netcomponents.NetPositionData
		var vel *netcomponents.NetVelocityData
		var state *netcomponents.NetActorStateData
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			switch v := instance.(type) {
			case netcomponents.NetPositionData:
				pos = &v
			case netcomponents.NetVelocityData:
				vel = &v
			case netcomponents.NetActorStateData:
				state = &v
			}
		}
		if pos == nil || state == nil {
			continue
		}

		entity := esync.FindByNetworkId(m.world, ent.Id)
		if !m.world.Valid(entity) {
			entity = m.spawnMirrored(ent.Id, ent.Id == myID, pos)
		}
		entry := m.world.Entry(entity)

		if ent.Id == myID {
			m.reconcileLocal(entry, pos, state)
		} else {
			m.bufferRemote(entry, pos, vel, state)
		}
	}

	// Entities absent from the snapshot have despawned server-side.
	var stale []donburi.Entity
	esync.NetworkEntityQuery.Each(m.world, func(entry *donburi.Entry) {
		if id := esync.GetNetworkId(entry); id != nil && !m.present[*id] {
			m.owners.Release(fmt.Sprintf("net-%d", *id))
			stale = append(stale, entry.Entity())
		}
	})
	for _, e := range stale {
		m.world.Remove(e)
	}
}

func (m *Mirror) spawnMirrored(id esync.NetworkId, local bool, pos *netcomponents.NetPositionData) donburi.Entity {
	bus := events.NewBus()
	a := fsm.NewActor(fmt.Sprintf("net-%d", id), bus)
	a.NetID = uint(id)
	a.Position = gamemath.Vector{X: pos.X, Y: pos.Y}
	a.OnGround = true
	states.InstallAll(a)

	if local {
		m.owners.Assign(a.ID, localPeerName)
	} else {
		m.owners.Assign(a.ID, fmt.Sprintf("peer-%d", id))
	}
	a.Authority = m.owners.Classify(a.ID)
	a.Simulated = a.Authority == netconfig.LocalAuthority

	var entity donburi.Entity
	if local {
		entity = m.world.Create(components.LocalActor)
		entry := m.world.Entry(entity)
		components.LocalActor.Set(entry, &components.LocalActorData{
			Actor:      a,
			Prediction: &network.PredictionBuffer{},
		})
	} else {
		entity = m.world.Create(components.RemoteActor)
		entry := m.world.Entry(entity)
		components.RemoteActor.Set(entry, &components.RemoteActorData{
			Actor:  a,
			Buffer: network.NewSnapshotBuffer(),
		})
	}

	entry := m.world.Entry(entity)
	entry.AddComponent(esync.NetworkIdComponent)
	esync.NetworkIdComponent.SetValue(entry, id)
	return entity
}

// reconcileLocal applies the authoritative pools and, when prediction has
// drifted beyond tolerance outside a grace window, snaps to the corrected
// position with the unacknowledged input tail replayed on top.
func (m *Mirror) reconcileLocal(entry *donburi.Entry, pos *netcomponents.NetPositionData, state *netcomponents.NetActorStateData) {
	data := components.LocalActor.Get(entry)
	a := data.Actor

	a.Pools.Health = state.Health
	a.Pools.Shield = state.Shield
	a.Pools.Stamina = state.Stamina

	serverPos := gamemath.Vector{X: pos.X, Y: pos.Y}
	if _, snap := data.Prediction.Correction(state.LastSequence, serverPos, &a.Grace, a.Machine.Now()); snap {
		a.Position = data.Prediction.ReplayPosition(state.LastSequence, serverPos)
		a.Height = pos.Height
		a.SyncBody()
	}
}

// bufferRemote folds the received components into a snapshot, diffs it
// against the last applied one, and pushes only real changes into the
// interpolation buffer; playback samples it behind real time.
func (m *Mirror) bufferRemote(entry *donburi.Entry, pos *netcomponents.NetPositionData, vel *netcomponents.NetVelocityData, state *netcomponents.NetActorStateData) {
	data := components.RemoteActor.Get(entry)

	snap := network.Snapshot{
		Timestamp: m.nowMs(),
		Position:  gamemath.Vector{X: pos.X, Y: pos.Y},
		Height:    pos.Height,
		Facing:    state.Facing,
		State:     state.StateID,
		Health:    state.Health,
		Shield:    state.Shield,
	}
	if vel != nil {
		snap.Velocity = gamemath.Vector{X: vel.SpeedX, Y: vel.SpeedY}
	}
	d := network.BuildDelta(data.LastApplied, snap)
	if d.Empty() {
		return
	}
	data.LastApplied = network.ApplyDelta(data.LastApplied, d)
	data.Buffer.Push(data.LastApplied)

	data.Actor.Pools.Health = state.Health
	data.Actor.Pools.Shield = state.Shield
}
