package core

import (
	"github.com/emberworks/brawlcore/shared/gamemath"
	"github.com/emberworks/brawlcore/shared/messages"
	"github.com/emberworks/brawlcore/shared/netconfig"
	"github.com/leap-fish/necs/router"
)

// bufferedActions are the discrete presses forwarded into the server-side
// input buffer on a rising edge. Block is held, not buffered, and wall
// jumps arrive as their own payload-carrying request.
var bufferedActions = []netconfig.ActionID{
	netconfig.ActionAttack,
	netconfig.ActionHeavyAttack,
	netconfig.ActionJump,
	netconfig.ActionDodge,
	netconfig.ActionInteract,
}

func (s *Server) onPlayerInput(client *router.NetworkClient, input messages.PlayerInput) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[client]
	if !ok {
		return
	}
	if !sess.limiter.Allow() {
		metricThrottledInputs.Inc()
		return
	}
	// Out-of-order or replayed frames are dropped; sequence 0 means the
	// client does not number its inputs.
	if input.Sequence != 0 && input.Sequence <= sess.lastSeq {
		return
	}
	sess.lastSeq = input.Sequence

	a := sess.actor
	move := gamemath.Vector{X: input.MoveX, Y: input.MoveY}
	if move.Length() > 1 {
		move = move.Normalized()
	}
	a.MoveIntent = move

	for _, action := range bufferedActions {
		bit := netconfig.ActionBit(action)
		if input.Actions&bit != 0 && sess.prevActions&bit == 0 {
			a.Machine.BufferServerAction(action, move, gamemath.Vector{}, false)
		}
	}

	// Guard is held: raise on press edge, drop on release edge.
	blockBit := netconfig.ActionBit(netconfig.ActionBlock)
	blockDown := input.Actions&blockBit != 0
	blockWas := sess.prevActions&blockBit != 0
	switch {
	case blockDown && !blockWas:
		a.Machine.BufferServerAction(netconfig.ActionBlock, move, gamemath.Vector{}, false)
	case !blockDown && blockWas && a.Machine.IsInState(netconfig.Blocking):
		a.Machine.CompleteCurrentState()
	}

	sess.prevActions = input.Actions
}

func (s *Server) onWallJump(client *router.NetworkClient, req messages.WallJumpRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[client]
	if !ok {
		return
	}
	if !sess.limiter.Allow() {
		metricThrottledInputs.Inc()
		return
	}

	a := sess.actor
	normal := gamemath.Vector{X: req.NormalX, Y: req.NormalY}
	if normal.IsZero() || a.OnGround {
		return
	}
	// Requests against different walls are distinct presses; repeats
	// against the same wall inside the buffer window collapse.
	a.Machine.BufferServerAction(netconfig.ActionWallJump, a.MoveIntent, normal.Normalized(), true)
}

func (s *Server) onTransformReport(client *router.NetworkClient, report messages.TransformReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[client]
	if !ok {
		return
	}
	if !sess.limiter.Allow() {
		metricThrottledInputs.Inc()
		return
	}

	a := sess.actor
	// Only a client-owned transform may be reported; once ownership has
	// been released or reclaimed the server simulation stands.
	if a.Authority != netconfig.RemoteAuthority {
		return
	}
	if a.Pools.Dead {
		return
	}

	// Per-report dt from the client clock, clamped hard so a stalled or
	// lying clock cannot widen the plausibility envelope.
	dt := float64(report.Timestamp-sess.lastReportTS) / 1000
	if sess.lastReportTS == 0 || dt <= 0 || dt > 0.5 {
		dt = 1.0 / float64(s.cfg.TickRate)
	}
	sess.lastReportTS = report.Timestamp

	pos, ok := sess.validator.Check(gamemath.Vector{X: report.X, Y: report.Y}, dt)
	if !ok {
		// Rejected: the server transform stands and the client will be
		// corrected by the next snapshot.
		metricRejectedTransforms.Inc()
		return
	}

	a.Position = pos
	a.Velocity = gamemath.Vector{X: report.VelX, Y: report.VelY}
	a.Facing = report.Facing
	a.Height = report.Height
	a.SyncBody()
}
