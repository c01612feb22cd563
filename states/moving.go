package states

import (
	"github.com/emberworks/brawlcore/fsm"
	"github.com/emberworks/brawlcore/shared/netconfig"
)

// MovingState handles input-driven ground locomotion.
type MovingState struct{}

func (MovingState) ID() netconfig.StateID { return netconfig.Moving }

func (MovingState) Enter(a *fsm.Actor, _ any) {
	a.PlayAnimation(netconfig.Moving.String())
}

func (MovingState) Exit(a *fsm.Actor) any { return nil }

func (MovingState) Update(a *fsm.Actor, dt float64) {}

func (MovingState) PhysicsUpdate(a *fsm.Actor, dt float64) {
	if !a.Simulated {
		return
	}
	if !a.OnGround {
		a.Machine.ChangeState(netconfig.Airborne, true)
		return
	}
	applyGroundMovement(a, dt, 1)
	if a.MoveIntent.IsZero() && a.Velocity.IsZero() {
		// Self-completion back to the lower-priority default.
		a.Machine.ChangeState(netconfig.Idle, true)
	}
}
