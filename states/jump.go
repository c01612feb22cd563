package states

import (
	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/fsm"
	"github.com/emberworks/brawlcore/shared/netconfig"
)

// JumpingState is the launch: it applies the initial vertical impulse and
// hands off to Airborne once the ascent slows. Entering it opens a
// reconciliation grace window on the locally controlled actor.
type JumpingState struct{}

func (JumpingState) ID() netconfig.StateID { return netconfig.Jumping }

func (JumpingState) Enter(a *fsm.Actor, _ any) {
	a.PlayAnimation(netconfig.Jumping.String())
	if !a.Simulated {
		return
	}
	a.VertSpeed = config.Movement.JumpSpeed
	a.OnGround = false
	a.Grace.Open(a.Machine.Now())
}

func (JumpingState) Exit(a *fsm.Actor) any { return nil }

func (JumpingState) Update(a *fsm.Actor, dt float64) {}

func (JumpingState) PhysicsUpdate(a *fsm.Actor, dt float64) {
	if !a.Simulated {
		return
	}
	advanceAirborne(a, dt)
	if a.VertSpeed <= 0 {
		a.Machine.ChangeState(netconfig.Airborne, true)
	}
}

// AirborneState covers the fall until the actor touches the ground again.
type AirborneState struct{}

func (AirborneState) ID() netconfig.StateID { return netconfig.Airborne }

func (AirborneState) Enter(a *fsm.Actor, _ any) {
	a.PlayAnimation(netconfig.Airborne.String())
	if a.Simulated {
		a.Grace.Open(a.Machine.Now())
	}
}

func (AirborneState) Exit(a *fsm.Actor) any { return nil }

func (AirborneState) Update(a *fsm.Actor, dt float64) {}

func (AirborneState) PhysicsUpdate(a *fsm.Actor, dt float64) {
	if !a.Simulated {
		return
	}
	advanceAirborne(a, dt)
	if a.Height <= 0 && a.VertSpeed <= 0 {
		a.Height = 0
		a.VertSpeed = 0
		a.OnGround = true
		a.Machine.CompleteCurrentState()
	}
}

// advanceAirborne applies air control, gravity, and buffered wall jumps.
// A wall jump arrives as a server-buffered action carrying the wall normal,
// which is the payload case the server buffer refuses to deduplicate.
func advanceAirborne(a *fsm.Actor, dt float64) {
	cfg := config.Movement

	if entry, ok := a.Machine.ConsumeBuffered(netconfig.ActionWallJump); ok && entry.HasPayload {
		away := entry.Payload.Normalized()
		a.Velocity = away.Scale(cfg.MaxSpeed)
		a.VertSpeed = cfg.JumpSpeed
		// Chained wall jumps extend the grace window multiplicatively.
		a.Grace.Open(a.Machine.Now())
	}

	// Air control at reduced authority.
	applyGroundMovement(a, dt, 0.35)

	a.VertSpeed -= cfg.Gravity * dt
	if a.VertSpeed < -cfg.MaxFallSpeed {
		a.VertSpeed = -cfg.MaxFallSpeed
	}
	a.Height += a.VertSpeed * dt
	if a.Height < 0 {
		a.Height = 0
	}
}
