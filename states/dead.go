package states

import (
	"github.com/emberworks/brawlcore/fsm"
	"github.com/emberworks/brawlcore/shared/gamemath"
	"github.com/emberworks/brawlcore/shared/netconfig"
)

// DeadState is terminal: nothing leaves it through normal transition rules.
// Only Actor.Revive forces a way out.
type DeadState struct{}

func (*DeadState) ID() netconfig.StateID { return netconfig.Dead }

func (*DeadState) Enter(a *fsm.Actor, _ any) {
	a.PlayAnimation(netconfig.Dead.String())
	a.Velocity = gamemath.Vector{}
	a.MoveIntent = gamemath.Vector{}
}

func (*DeadState) Exit(a *fsm.Actor) any { return nil }

func (*DeadState) Update(a *fsm.Actor, dt float64) {}

func (*DeadState) PhysicsUpdate(a *fsm.Actor, dt float64) {}
