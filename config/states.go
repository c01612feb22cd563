package config

import "github.com/emberworks/brawlcore/shared/netconfig"

// StateParams is the immutable policy record for one control state.
// Exactly one state is active per actor at any time; the machine arbitrates
// transitions between them using these fields.
type StateParams struct {
	Priority       int
	Interruptible  bool
	AllowsMovement bool
	AllowsRotation bool

	// Blocked lists states this state refuses to hand off to even when the
	// priority rule would allow it. Nil means no extra veto.
	Blocked []netconfig.StateID
}

// CanTransitionTo reports whether this state vetoes the given target.
func (p StateParams) CanTransitionTo(target netconfig.StateID) bool {
	for _, id := range p.Blocked {
		if id == target {
			return false
		}
	}
	return true
}

// DefaultState is where CompleteCurrentState lands with an empty combo queue.
const DefaultState = netconfig.Idle

// States is the definition table consulted by the machine core.
var States = map[netconfig.StateID]StateParams{
	netconfig.Idle: {
		Priority:       0,
		Interruptible:  true,
		AllowsMovement: true,
		AllowsRotation: true,
	},
	netconfig.Moving: {
		Priority:       1,
		Interruptible:  true,
		AllowsMovement: true,
		AllowsRotation: true,
	},
	netconfig.Jumping: {
		Priority:       2,
		Interruptible:  true,
		AllowsMovement: true,
		AllowsRotation: true,
	},
	netconfig.Airborne: {
		Priority:       2,
		Interruptible:  true,
		AllowsMovement: true,
		AllowsRotation: true,
	},
	netconfig.Dodging: {
		Priority:       4,
		Interruptible:  false,
		AllowsMovement: false,
		AllowsRotation: false,
	},
	netconfig.Blocking: {
		Priority:       3,
		Interruptible:  true,
		AllowsMovement: false,
		AllowsRotation: true,
	},
	netconfig.Talking: {
		Priority:      1,
		Interruptible: true,
		// Conversation pins the actor in place; combat states may still
		// interrupt it through priority.
		AllowsMovement: false,
		AllowsRotation: true,
	},
	netconfig.Stunned: {
		Priority:       8,
		Interruptible:  false,
		AllowsMovement: false,
		AllowsRotation: false,
	},
	netconfig.Dead: {
		Priority:       100,
		Interruptible:  false,
		AllowsMovement: false,
		AllowsRotation: false,
		// Terminal: only an explicit revive (forced transition) leaves it.
		Blocked: []netconfig.StateID{
			netconfig.Idle, netconfig.Moving, netconfig.Jumping,
			netconfig.Airborne, netconfig.Dodging, netconfig.Blocking,
			netconfig.Stunned, netconfig.Talking,
			netconfig.AttackLight1, netconfig.AttackLight2,
			netconfig.AttackLight3, netconfig.AttackHeavy,
		},
	},
	netconfig.AttackLight1: attackStateParams(),
	netconfig.AttackLight2: attackStateParams(),
	netconfig.AttackLight3: attackStateParams(),
	netconfig.AttackHeavy:  attackStateParams(),
}

func attackStateParams() StateParams {
	return StateParams{
		Priority:       3,
		Interruptible:  true,
		AllowsMovement: false,
		AllowsRotation: false,
	}
}
