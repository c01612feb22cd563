package states

import (
	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/fsm"
	"github.com/emberworks/brawlcore/shared/netconfig"
)

// DispatchBuffered drains buffered discrete inputs whose transitions the
// machine would accept right now. Inputs whose target is currently
// rejected stay buffered: the attack cancel window and the airborne wall
// jump consume their own entries later, and anything unconsumed expires
// with the buffer window.
func DispatchBuffered(a *fsm.Actor) {
	m := a.Machine

	if m.HasBuffered(netconfig.ActionAttack) && m.CanChangeTo(config.FirstComboSlot) {
		if _, ok := m.ConsumeBuffered(netconfig.ActionAttack); ok {
			m.ChangeState(config.FirstComboSlot, false)
			return
		}
	}

	if m.HasBuffered(netconfig.ActionHeavyAttack) && m.CanChangeTo(netconfig.AttackHeavy) {
		if _, ok := m.ConsumeBuffered(netconfig.ActionHeavyAttack); ok {
			m.ChangeState(netconfig.AttackHeavy, false)
			return
		}
	}

	if m.HasBuffered(netconfig.ActionJump) && a.OnGround && m.CanChangeTo(netconfig.Jumping) {
		if _, ok := m.ConsumeBuffered(netconfig.ActionJump); ok {
			m.ChangeState(netconfig.Jumping, false)
			return
		}
	}

	if m.HasBuffered(netconfig.ActionDodge) && m.CanChangeTo(netconfig.Dodging) &&
		a.Abilities.CanUse(config.Dodge.AbilityName) &&
		a.Pools.Stamina >= config.Combat.DodgeStaminaCost {
		if entry, ok := m.ConsumeBuffered(netconfig.ActionDodge); ok {
			TryDodge(a, entry.Move)
			return
		}
	}

	if m.HasBuffered(netconfig.ActionBlock) && m.CanChangeTo(netconfig.Blocking) {
		if _, ok := m.ConsumeBuffered(netconfig.ActionBlock); ok {
			m.ChangeState(netconfig.Blocking, false)
			return
		}
	}

	if m.HasBuffered(netconfig.ActionInteract) && m.CanChangeTo(netconfig.Talking) {
		if _, ok := m.ConsumeBuffered(netconfig.ActionInteract); ok {
			m.ChangeState(netconfig.Talking, false)
		}
	}
}
