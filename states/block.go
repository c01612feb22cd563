package states

import (
	"github.com/emberworks/brawlcore/combat"
	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/events"
	"github.com/emberworks/brawlcore/fsm"
	"github.com/emberworks/brawlcore/shared/netconfig"
)

// BlockState raises the actor's guard. While active it intercepts incoming
// damage: melee inside the parry window is fully negated and staggers the
// attacker; everything else is reduced at a stamina cost. Draining the last
// stamina breaks the guard, staggering the blocker and letting the hit
// through unreduced. The state is held; release is an external transition
// from the input layer.
type BlockState struct{}

func (*BlockState) ID() netconfig.StateID { return netconfig.Blocking }

func (*BlockState) Enter(a *fsm.Actor, _ any) {
	a.PlayAnimation(netconfig.Blocking.String())
	if !a.Simulated {
		return
	}
	a.Pools.Guard = func(amount float64, dtype netconfig.DamageType, source combat.Source) (float64, combat.GuardResult) {
		return resolveGuardedHit(a, amount, dtype, source)
	}
}

func (*BlockState) Exit(a *fsm.Actor) any {
	a.Pools.Guard = nil
	return nil
}

func (*BlockState) Update(a *fsm.Actor, dt float64) {}

func (*BlockState) PhysicsUpdate(a *fsm.Actor, dt float64) {
	if !a.Simulated {
		return
	}
	driftWithFriction(a, dt)
}

func resolveGuardedHit(a *fsm.Actor, amount float64, dtype netconfig.DamageType, source combat.Source) (float64, combat.GuardResult) {
	cfg := config.Combat

	// Parry: a melee hit landing inside the window after guard-up is
	// negated and punishes the attacker.
	if dtype == netconfig.DamageMelee && a.Machine.TimeInState() <= cfg.ParryWindow {
		if attacker, ok := source.(fsm.Staggerable); ok {
			dir := a.FacingVector()
			if target, ok := source.(fsm.Targetable); ok {
				away := target.TargetPosition().Sub(a.Position)
				if !away.IsZero() {
					dir = away.Normalized()
				}
			}
			attacker.Stagger(cfg.ParryStaggerTime, dir, cfg.ParryKnockbackForce)
		}
		a.Bus.Publish(events.Event{
			Type:    events.TypeParry,
			ActorID: a.ID,
			Payload: events.HitPayload{Source: source.SourceID(), Amount: amount, DamageType: dtype},
		})
		return 0, combat.GuardAbsorbed
	}

	// Normal block: reduced damage, paid for in stamina proportional to
	// the unreduced hit.
	if a.Pools.DrainStamina(amount * cfg.BlockStaminaPerDmg) {
		// Stamina ran dry under this hit: guard break. The blocker eats
		// the full hit and is staggered open.
		a.Bus.Publish(events.Event{
			Type:    events.TypeGuardBreak,
			ActorID: a.ID,
			Payload: events.HitPayload{Source: source.SourceID(), Amount: amount, DamageType: dtype},
		})
		a.Stagger(cfg.ParryStaggerTime, a.FacingVector().Scale(-1), 0)
		return amount, combat.GuardReduced
	}
	return amount * (1 - cfg.BlockDamageReduce), combat.GuardReduced
}
