package states

import (
	"math"
	"testing"

	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/shared/gamemath"
	"github.com/emberworks/brawlcore/shared/netconfig"
)

func TestDispatchStartsAttackFromIdle(t *testing.T) {
	t.Parallel()

	a := newCombatant("player")
	a.Machine.BufferServerAction(netconfig.ActionAttack, gamemath.Vector{}, gamemath.Vector{}, false)

	DispatchBuffered(a)

	if got := a.Machine.CurrentState(); got != config.FirstComboSlot {
		t.Fatalf("state = %v, want the first attack slot", got)
	}
}

func TestDispatchStartsHeavyAttack(t *testing.T) {
	t.Parallel()

	a := newCombatant("player")
	a.Machine.BufferServerAction(netconfig.ActionHeavyAttack, gamemath.Vector{}, gamemath.Vector{}, false)

	DispatchBuffered(a)

	if got := a.Machine.CurrentState(); got != netconfig.AttackHeavy {
		t.Fatalf("state = %v, want the heavy attack", got)
	}
}

func TestDispatchKeepsRejectedInputBuffered(t *testing.T) {
	t.Parallel()

	a := newCombatant("player")
	if !TryDodge(a, gamemath.Vector{X: 1}) {
		t.Fatal("dodge refused")
	}

	// An attack pressed mid-roll stays buffered for whoever can consume
	// it later, instead of being dropped.
	tickFor(a, 0.15)
	a.Machine.BufferServerAction(netconfig.ActionAttack, gamemath.Vector{}, gamemath.Vector{}, false)
	DispatchBuffered(a)

	if got := a.Machine.CurrentState(); got != netconfig.Dodging {
		t.Fatalf("state = %v, want still dodging", got)
	}
	if !a.Machine.HasBuffered(netconfig.ActionAttack) {
		t.Fatal("rejected input discarded instead of kept")
	}

	// Once the roll ends the same press connects.
	tickFor(a, config.Dodge.Duration-0.15+0.05)
	DispatchBuffered(a)
	if got := a.Machine.CurrentState(); got != config.FirstComboSlot {
		t.Fatalf("state = %v, want attack after the roll", got)
	}
}

func TestDispatchDodgeUsesBufferedDirection(t *testing.T) {
	t.Parallel()

	a := newCombatant("player")
	a.Machine.BufferServerAction(netconfig.ActionDodge, gamemath.Vector{Y: 1}, gamemath.Vector{}, false)

	DispatchBuffered(a)

	if got := a.Machine.CurrentState(); got != netconfig.Dodging {
		t.Fatalf("state = %v, want dodging", got)
	}
	if math.Abs(a.Facing-math.Pi/2) > 1e-6 {
		t.Fatalf("facing = %v, want the buffered direction", a.Facing)
	}
}

func TestDispatchSkipsDodgeWithoutStamina(t *testing.T) {
	t.Parallel()

	a := newCombatant("player")
	a.Pools.Stamina = 0
	a.Machine.BufferServerAction(netconfig.ActionDodge, gamemath.Vector{X: 1}, gamemath.Vector{}, false)

	DispatchBuffered(a)

	if got := a.Machine.CurrentState(); got != netconfig.Idle {
		t.Fatalf("state = %v, want idle", got)
	}
	if !a.Machine.HasBuffered(netconfig.ActionDodge) {
		t.Fatal("unaffordable dodge consumed from the buffer")
	}
}

func TestDispatchExpiredInputIgnored(t *testing.T) {
	t.Parallel()

	a := newCombatant("player")
	a.Machine.BufferServerAction(netconfig.ActionAttack, gamemath.Vector{}, gamemath.Vector{}, false)

	// Let the press age out of the buffering window.
	tickFor(a, config.Buffering.InputWindow+0.1)
	DispatchBuffered(a)

	if got := a.Machine.CurrentState(); got != netconfig.Idle {
		t.Fatalf("state = %v, want idle (press expired)", got)
	}
}

func TestDispatchStartsBlock(t *testing.T) {
	t.Parallel()

	a := newCombatant("player")
	a.Machine.BufferServerAction(netconfig.ActionBlock, gamemath.Vector{}, gamemath.Vector{}, false)

	DispatchBuffered(a)

	if got := a.Machine.CurrentState(); got != netconfig.Blocking {
		t.Fatalf("state = %v, want blocking", got)
	}
}
