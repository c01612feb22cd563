package states

import (
	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/fsm"
)

// InstallAll registers every control-state policy on the actor's machine
// and resets it into the default state. Each attack slot in the attack
// table gets its own policy instance.
func InstallAll(a *fsm.Actor) {
	a.Machine.Register(&IdleState{})
	a.Machine.Register(&MovingState{})
	a.Machine.Register(&JumpingState{})
	a.Machine.Register(&AirborneState{})
	a.Machine.Register(&DodgeState{})
	a.Machine.Register(&BlockState{})
	a.Machine.Register(&StunnedState{})
	a.Machine.Register(&DeadState{})
	a.Machine.Register(&TalkingState{})
	for id := range config.Attacks {
		a.Machine.Register(NewAttackState(id))
	}
	a.Machine.Reset()
}
