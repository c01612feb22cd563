package states

import (
	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/fsm"
	"github.com/emberworks/brawlcore/shared/netconfig"
)

// StunnedState is hitstun: control is removed, knockback momentum decays
// under friction, and the actor recovers to the default state when the
// timer runs out. Duration comes from the actor's pending StunDuration when
// set (hitstun scales with the attack), otherwise the configured default.
type StunnedState struct {
	duration float64
}

func (*StunnedState) ID() netconfig.StateID { return netconfig.Stunned }

func (s *StunnedState) Enter(a *fsm.Actor, _ any) {
	a.PlayAnimation(netconfig.Stunned.String())
	s.duration = config.Combat.StunDuration
	if a.StunDuration > 0 {
		s.duration = a.StunDuration
		a.StunDuration = 0
	}
}

func (*StunnedState) Exit(a *fsm.Actor) any { return nil }

func (*StunnedState) Update(a *fsm.Actor, dt float64) {}

func (s *StunnedState) PhysicsUpdate(a *fsm.Actor, dt float64) {
	if !a.Simulated {
		return
	}
	driftWithFriction(a, dt)
	if a.Machine.TimeInState() >= s.duration {
		a.Machine.CompleteCurrentState()
	}
}
