// Package states contains the control-state policies consulted by the
// machine core. Policies mutate actor velocity and facing and call into
// combat resolution; remote copies of an actor run only
// animation-relevant timers (see fsm.Actor.Simulated).
package states

import (
	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/fsm"
	"github.com/emberworks/brawlcore/shared/gamemath"
)

// applyGroundMovement accelerates along the held move direction, turns the
// facing toward it, and applies friction when no direction is held.
func applyGroundMovement(a *fsm.Actor, dt float64, accelScale float64) {
	mv := a.MoveIntent
	cfg := config.Movement

	if !mv.IsZero() {
		dir := mv.Normalized()
		a.Velocity = a.Velocity.Add(dir.Scale(cfg.Acceleration * accelScale * dt))
		if speed := a.Velocity.Length(); speed > cfg.MaxSpeed {
			a.Velocity = a.Velocity.Normalized().Scale(cfg.MaxSpeed)
		}
		turn := cfg.RotationRate * dt
		if turn > 1 {
			turn = 1
		}
		a.Facing = gamemath.LerpAngle(a.Facing, dir.Angle(), turn)
	} else {
		applyFriction(a, dt)
	}

	a.Position = a.Position.Add(a.Velocity.Scale(dt))
}

// applyFriction bleeds planar speed toward zero.
func applyFriction(a *fsm.Actor, dt float64) {
	speed := a.Velocity.Length()
	if speed == 0 {
		return
	}
	reduced := gamemath.ApplyFriction(speed, config.Movement.Friction*dt)
	if reduced <= 0 {
		a.Velocity = gamemath.Vector{}
		return
	}
	a.Velocity = a.Velocity.Normalized().Scale(reduced)
}

// driftWithFriction advances position while speed decays, for states that
// ignore movement input.
func driftWithFriction(a *fsm.Actor, dt float64) {
	applyFriction(a, dt)
	a.Position = a.Position.Add(a.Velocity.Scale(dt))
}
