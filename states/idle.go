package states

import (
	"github.com/emberworks/brawlcore/fsm"
	"github.com/emberworks/brawlcore/shared/netconfig"
)

// IdleState is the default resting state and the landing spot for
// CompleteCurrentState with an empty combo queue.
type IdleState struct{}

func (IdleState) ID() netconfig.StateID { return netconfig.Idle }

func (IdleState) Enter(a *fsm.Actor, _ any) {
	a.PlayAnimation(netconfig.Idle.String())
}

func (IdleState) Exit(a *fsm.Actor) any { return nil }

func (IdleState) Update(a *fsm.Actor, dt float64) {}

func (IdleState) PhysicsUpdate(a *fsm.Actor, dt float64) {
	if !a.Simulated {
		return
	}
	if !a.OnGround {
		a.Machine.ChangeState(netconfig.Airborne, true)
		return
	}
	if !a.MoveIntent.IsZero() {
		a.Machine.ChangeState(netconfig.Moving, false)
		return
	}
	driftWithFriction(a, dt)
}
