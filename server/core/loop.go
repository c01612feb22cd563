package core

import (
	"log"
	"time"

	"github.com/emberworks/brawlcore/fsm"
	"github.com/emberworks/brawlcore/network"
	"github.com/emberworks/brawlcore/shared/gamemath"
	"github.com/emberworks/brawlcore/shared/netcomponents"
	"github.com/emberworks/brawlcore/states"
	"github.com/emberworks/brawlcore/tags"
	"github.com/leap-fish/necs/esync/srvsync"
)

// GameLoop drives the fixed-rate simulation. Physics runs at physicsRate;
// component sync to clients happens every syncDivider ticks.
type GameLoop struct {
	server      *Server
	physicsRate int
	tickRate    int
	syncDivider int
	stopChan    chan struct{}
}

func NewGameLoop(server *Server, physicsRate, tickRate int) *GameLoop {
	div := physicsRate / tickRate
	if div < 1 {
		div = 1
	}
	return &GameLoop{
		server:      server,
		physicsRate: physicsRate,
		tickRate:    tickRate,
		syncDivider: div,
		stopChan:    make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(g.physicsRate))
	defer ticker.Stop()

	log.Printf("[server] game loop started: physics %d Hz, sync %d Hz", g.physicsRate, g.tickRate)

	dt := 1.0 / float64(g.physicsRate)
	tick := 0
	for {
		select {
		case <-g.stopChan:
			log.Println("[server] game loop stopped")
			return
		case <-ticker.C:
			g.server.step(dt)
			tick++
			if tick%g.syncDivider == 0 {
				g.server.publishState()
				if err := srvsync.DoSync(); err != nil {
					log.Printf("[server] sync error: %v", err)
				}
			}
		}
	}
}

func (g *GameLoop) Stop() {
	close(g.stopChan)
}

// step advances every actor one physics tick and resolves wall overlap.
func (s *Server) step(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	metricTicksTotal.Inc()
	for _, sess := range s.sessions {
		a := sess.actor
		prev := a.Position
		states.DispatchBuffered(a)
		a.Tick(dt)
		s.resolveWalls(a, prev)
	}
}

// resolveWalls clamps the tick's displacement against solid geometry,
// axis by axis.
func (s *Server) resolveWalls(a *fsm.Actor, prev gamemath.Vector) {
	if a.Object == nil {
		return
	}
	dx := a.Position.X - prev.X
	dy := a.Position.Y - prev.Y
	if dx == 0 && dy == 0 {
		return
	}

	a.Object.X = prev.X
	a.Object.Y = prev.Y
	a.Object.Update()

	if dx != 0 {
		if check := a.Object.Check(dx, 0, tags.ResolvSolid); check != nil {
			if solids := check.ObjectsByTags(tags.ResolvSolid); len(solids) > 0 {
				dx = check.ContactWithObject(solids[0]).X()
				a.Velocity.X = 0
			}
		}
		a.Object.X += dx
	}
	if dy != 0 {
		if check := a.Object.Check(0, dy, tags.ResolvSolid); check != nil {
			if solids := check.ObjectsByTags(tags.ResolvSolid); len(solids) > 0 {
				dy = check.ContactWithObject(solids[0]).Y()
				a.Velocity.Y = 0
			}
		}
		a.Object.Y += dy
	}

	a.Position.X = a.Object.X
	a.Position.Y = a.Object.Y
	a.Object.Update()
}

// publishState copies each actor's simulation state into its synced
// components, masked to the fields that changed since the previous network
// tick. Stamina and the input ack ride along on every publish: the
// reconciliation path depends on a fresh sequence even when the pose is
// static. Caller must not hold s.mu.
func (s *Server) publishState() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixMilli()
	for _, sess := range s.sessions {
		if !s.world.Valid(sess.entity) {
			continue
		}
		entry := s.world.Entry(sess.entity)
		a := sess.actor

		cur := network.Snapshot{
			Timestamp: now,
			Position:  a.Position,
			Height:    a.Height,
			Velocity:  a.Velocity,
			Facing:    a.Facing,
			State:     a.Machine.CurrentState(),
			Actions:   sess.prevActions,
			Health:    a.Pools.Health,
			Shield:    a.Pools.Shield,
		}
		d := network.BuildDelta(sess.lastPublished, cur)
		sess.lastPublished = network.ApplyDelta(sess.lastPublished, d)

		if d.Fields&network.FieldPosition != 0 {
			pos := netcomponents.NetPosition.Get(entry)
			pos.X = a.Position.X
			pos.Y = a.Position.Y
			pos.Height = a.Height
		}
		if d.Fields&network.FieldVelocity != 0 {
			vel := netcomponents.NetVelocity.Get(entry)
			vel.SpeedX = a.Velocity.X
			vel.SpeedY = a.Velocity.Y
		}

		state := netcomponents.NetActorState.Get(entry)
		if d.Fields&network.FieldState != 0 {
			state.StateID = cur.State
		}
		if d.Fields&network.FieldFacing != 0 {
			state.Facing = cur.Facing
		}
		if d.Fields&network.FieldHealth != 0 {
			state.Health = cur.Health
		}
		if d.Fields&network.FieldShield != 0 {
			state.Shield = cur.Shield
		}
		state.Stamina = a.Pools.Stamina
		state.LastSequence = sess.lastSeq
	}
}
