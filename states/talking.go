package states

import (
	"github.com/emberworks/brawlcore/fsm"
	"github.com/emberworks/brawlcore/shared/netconfig"
)

// TalkingState pins the actor for dialogue. It never self-completes; the
// interaction layer ends it, and any higher-priority event (a hit, a forced
// stagger) can break in through normal rules.
type TalkingState struct{}

func (*TalkingState) ID() netconfig.StateID { return netconfig.Talking }

func (*TalkingState) Enter(a *fsm.Actor, _ any) {
	a.PlayAnimation(netconfig.Talking.String())
}

func (*TalkingState) Exit(a *fsm.Actor) any { return nil }

func (*TalkingState) Update(a *fsm.Actor, dt float64) {}

func (*TalkingState) PhysicsUpdate(a *fsm.Actor, dt float64) {
	if !a.Simulated {
		return
	}
	driftWithFriction(a, dt)
}
