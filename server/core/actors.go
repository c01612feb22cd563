package core

import (
	"fmt"

	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/events"
	"github.com/emberworks/brawlcore/fsm"
	"github.com/emberworks/brawlcore/network"
	"github.com/emberworks/brawlcore/shared/gamemath"
	"github.com/emberworks/brawlcore/shared/messages"
	"github.com/emberworks/brawlcore/shared/netcomponents"
	"github.com/emberworks/brawlcore/shared/netconfig"
	"github.com/emberworks/brawlcore/states"
	"github.com/emberworks/brawlcore/tags"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/solarlune/resolv"
	"golang.org/x/time/rate"
)

const (
	actorBodySize = 16.0
	respawnDelay  = 3.0 // seconds a dead actor waits before reviving
)

// serverWeapon is the fixed server-side melee loadout. Hit detection
// toggling matters to clients that render trails; the server only stores
// the flag.
type serverWeapon struct {
	stats     fsm.WeaponStats
	detecting bool
}

func (w *serverWeapon) Stats() (fsm.WeaponStats, bool) { return w.stats, true }
func (w *serverWeapon) SetHitDetection(enabled bool)   { w.detecting = enabled }

// spawnActor builds the actor, its collision body, its synced entity, and
// the session tying them to the client. Caller holds s.mu.
func (s *Server) spawnActor(client *router.NetworkClient, name, token string) (*session, error) {
	spawn := s.nextSpawnPoint()

	bus := events.NewBus()
	actorID := fmt.Sprintf("actor-%s", client.Id())
	a := fsm.NewActor(actorID, bus)
	a.Position = gamemath.Vector{X: spawn.X, Y: spawn.Y}
	a.OnGround = true
	s.owners.Assign(actorID, client.Id())
	a.Authority = s.owners.Classify(actorID)
	a.Space = s.space
	a.Weapon = &serverWeapon{stats: fsm.WeaponStats{Damage: 20, Knockback: 140, Hitstun: 0.4}}

	obj := resolv.NewObject(spawn.X, spawn.Y, actorBodySize, actorBodySize, tags.ResolvActor)
	obj.SetShape(resolv.NewRectangle(0, 0, actorBodySize, actorBodySize))
	obj.Data = a
	s.space.Add(obj)
	a.Object = obj

	states.InstallAll(a)

	entity := s.world.Create(
		netcomponents.NetPosition,
		netcomponents.NetVelocity,
		netcomponents.NetActorState,
	)
	entry := s.world.Entry(entity)
	netcomponents.NetPosition.Set(entry, &netcomponents.NetPositionData{X: spawn.X, Y: spawn.Y})
	netcomponents.NetVelocity.Set(entry, &netcomponents.NetVelocityData{})
	netcomponents.NetActorState.Set(entry, &netcomponents.NetActorStateData{
		StateID: netconfig.Idle,
		Health:  a.Pools.Health,
		Shield:  a.Pools.Shield,
		Stamina: a.Pools.Stamina,
	})

	if err := srvsync.NetworkSync(s.world, &entity,
		srvsync.WithInterp(netcomponents.NetPosition, netcomponents.NetVelocity),
		netcomponents.NetActorState,
	); err != nil {
		s.space.Remove(obj)
		s.world.Remove(entity)
		return nil, fmt.Errorf("network sync: %w", err)
	}

	var netID uint
	if nid := esync.GetNetworkId(entry); nid != nil {
		netID = uint(*nid)
	}

	sess := &session{
		client:    client,
		entity:    entity,
		netID:     netID,
		actor:     a,
		name:      name,
		token:     token,
		limiter:   rate.NewLimiter(rate.Limit(config.Net.InputRateLimit), config.Net.InputRateBurst),
		validator: network.NewValidator(actorID, a.Position),
	}
	s.sessions[client] = sess
	s.byActorID[actorID] = sess

	s.bridgeEvents(sess, bus)
	return sess, nil
}

// despawnActor removes everything spawnActor created. Caller holds s.mu.
func (s *Server) despawnActor(sess *session) {
	delete(s.sessions, sess.client)
	delete(s.byActorID, sess.actor.ID)
	s.owners.Release(sess.actor.ID)
	if sess.actor.Object != nil {
		s.space.Remove(sess.actor.Object)
	}
	if s.world.Valid(sess.entity) {
		s.world.Remove(sess.entity)
	}
}

func (s *Server) nextSpawnPoint() gamemath.Vector {
	points := s.arena.SpawnPoints
	if len(points) == 0 {
		return gamemath.Vector{X: float64(s.arena.Width) / 2, Y: float64(s.arena.Height) / 2}
	}
	p := points[s.nextSpawn%len(points)]
	s.nextSpawn++
	return gamemath.Vector{X: p.X, Y: p.Y}
}

// bridgeEvents forwards simulation events to the wire and the metrics, and
// schedules the respawn flow on death. Handlers run inside the physics
// tick with s.mu held.
func (s *Server) bridgeEvents(sess *session, bus *events.Bus) {
	a := sess.actor
	bus.Subscribe(func(e events.Event) {
		switch e.Type {
		case events.TypeHit:
			p, ok := e.Payload.(events.HitPayload)
			if !ok {
				return
			}
			metricDamageEvents.Inc()
			s.broadcastLocked(messages.HitEvent{
				AttackerID: s.netIDForActor(p.Source),
				TargetID:   sess.netID,
				Amount:     p.Amount,
				DamageType: uint8(p.DamageType),
			})

		case events.TypeDeath:
			p, _ := e.Payload.(events.DeathPayload)
			metricDeaths.Inc()
			s.broadcastLocked(messages.DeathEvent{
				VictimID: sess.netID,
				KillerID: s.netIDForActor(p.Source),
			})
			a.Machine.Schedule(respawnDelay, func() {
				s.respawn(sess)
			})

		case events.TypeRevive:
			s.broadcastLocked(messages.ReviveEvent{
				NetworkID: sess.netID,
				Health:    a.Pools.Health,
			})

		case events.TypeParry:
			p, _ := e.Payload.(events.HitPayload)
			s.broadcastLocked(messages.ParryEvent{
				BlockerID:  sess.netID,
				AttackerID: s.netIDForActor(p.Source),
			})

		case events.TypeGuardBreak:
			s.broadcastLocked(messages.GuardBreakEvent{BlockerID: sess.netID})

		case events.TypeCooldownStarted:
			p, ok := e.Payload.(events.AbilityPayload)
			if !ok {
				return
			}
			s.broadcastLocked(messages.CooldownEvent{
				NetworkID: sess.netID,
				Ability:   p.Ability,
				Duration:  a.Abilities.Remaining(p.Ability),
			})
		}
	})
}

// respawn restores a dead actor at a fresh spawn point.
func (s *Server) respawn(sess *session) {
	a := sess.actor
	if !a.Pools.Dead {
		return
	}
	a.Position = s.nextSpawnPoint()
	a.Velocity = gamemath.Vector{}
	a.Height = 0
	a.VertSpeed = 0
	a.OnGround = true
	a.Revive(1.0)
	sess.validator.ForceAccept(a.Position)
}

// netIDForActor maps an actor ID to its network ID, zero when unknown
// (environmental damage).
func (s *Server) netIDForActor(actorID string) uint {
	if sess, ok := s.byActorID[actorID]; ok {
		return sess.netID
	}
	return 0
}
