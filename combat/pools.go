// Package combat implements authoritative combat resolution: health and
// shield pools, the damage mitigation pipeline, regeneration, stamina, and
// ability cooldowns. Only the side that owns an actor may call into it; the
// other side requests damage application over the network instead.
package combat

import (
	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/events"
	"github.com/emberworks/brawlcore/shared/gamemath"
	"github.com/emberworks/brawlcore/shared/netconfig"
)

// GuardResult tells the damage pipeline what a guard hook decided.
type GuardResult int

const (
	// GuardNone: the hook declined; apply the damage normally.
	GuardNone GuardResult = iota
	// GuardAbsorbed: the hook fully negated the damage (parry).
	GuardAbsorbed
	// GuardReduced: apply the (already reduced) returned amount, skipping
	// armor and resistance which the guard replaces.
	GuardReduced
)

// GuardHook lets a defensive state intercept incoming damage before
// mitigation. Returns the remaining damage and a classification.
type GuardHook func(amount float64, dtype netconfig.DamageType, source Source) (float64, GuardResult)

// Pools owns an actor's health, shield, and stamina, together with their
// regeneration timers. Invariant: 0 <= current <= max for every pool.
type Pools struct {
	ActorID string

	Health    float64
	HealthMax float64
	Shield    float64
	ShieldMax float64

	// Flat armor and fractional resistance, both bypassed by true damage.
	Armor      float64
	Resistance float64

	Stamina    float64
	StaminaMax float64

	Dead         bool
	Invulnerable bool

	// Guard is set by a blocking state on entry and cleared on exit.
	Guard GuardHook

	// OnDeath runs once when health reaches zero, before the death event.
	// The owning actor wires this to its dead-state transition.
	OnDeath func(source Source)

	// OnKnockback receives the impulse from a damaging hit.
	OnKnockback func(dir gamemath.Vector, force float64)

	sinceHealthDamage float64
	sinceShieldDamage float64

	bus *events.Bus
}

// NewPools builds full pools from the combat config.
func NewPools(actorID string, bus *events.Bus) *Pools {
	c := config.Combat
	return &Pools{
		ActorID:           actorID,
		Health:            c.HealthMax,
		HealthMax:         c.HealthMax,
		Shield:            c.ShieldMax,
		ShieldMax:         c.ShieldMax,
		Stamina:           c.StaminaMax,
		StaminaMax:        c.StaminaMax,
		sinceHealthDamage: c.HealthRegenDelay,
		sinceShieldDamage: c.ShieldRegenDelay,
		bus:               bus,
	}
}

// TakeDamage runs the full mitigation pipeline and returns the damage that
// actually landed across both pools. Zero when dead or invulnerable.
func (p *Pools) TakeDamage(amount float64, source Source, dtype netconfig.DamageType, knockDir gamemath.Vector, knockForce float64) float64 {
	if p.Dead || p.Invulnerable || amount <= 0 {
		return 0
	}

	skipMitigation := false
	if p.Guard != nil {
		remaining, result := p.Guard(amount, dtype, source)
		switch result {
		case GuardAbsorbed:
			return 0
		case GuardReduced:
			amount = remaining
			skipMitigation = true
		}
		if amount <= 0 {
			return 0
		}
	}

	if dtype != netconfig.DamageTrue && !skipMitigation {
		amount -= p.Armor
		if amount <= 0 {
			return 0
		}
		amount *= 1 - p.Resistance
	}

	toShield := amount * config.ShieldRatio[dtype]
	toHealth := amount - toShield

	hadShield := p.Shield > 0
	absorbed := toShield
	if absorbed > p.Shield {
		absorbed = p.Shield
	}
	p.Shield -= absorbed
	if absorbed > 0 {
		p.sinceShieldDamage = 0
	}

	// Shield overflow spills into health; while shield was up the health
	// portion is dampened by the protection fraction.
	healthDmg := toHealth + (toShield - absorbed)
	if hadShield {
		healthDmg *= 1 - config.Combat.ShieldProtection
	}

	if healthDmg > 0 {
		p.Health -= healthDmg
		if p.Health < 0 {
			healthDmg += p.Health // Clamp: only count what was left.
			p.Health = 0
		}
		p.sinceHealthDamage = 0
	}

	applied := absorbed + healthDmg

	if p.OnKnockback != nil && knockForce > 0 {
		p.OnKnockback(knockDir, knockForce)
	}

	p.publish(events.Event{
		Type:    events.TypeHit,
		ActorID: p.ActorID,
		Payload: events.HitPayload{Source: sourceName(source), Amount: applied, DamageType: dtype},
	})

	if p.Health == 0 {
		p.Dead = true
		if p.OnDeath != nil {
			p.OnDeath(source)
		}
		p.publish(events.Event{
			Type:    events.TypeDeath,
			ActorID: p.ActorID,
			Payload: events.DeathPayload{Source: sourceName(source)},
		})
	}

	return applied
}

// Heal restores health up to the maximum. No-op while dead.
func (p *Pools) Heal(amount float64, source Source, silent bool) float64 {
	if p.Dead || amount <= 0 {
		return 0
	}
	applied := amount
	if p.Health+applied > p.HealthMax {
		applied = p.HealthMax - p.Health
	}
	p.Health += applied
	if !silent && applied > 0 {
		p.publish(events.Event{
			Type:    events.TypeHeal,
			ActorID: p.ActorID,
			Payload: events.HealPayload{Source: sourceName(source), Amount: applied},
		})
	}
	return applied
}

// Revive brings a dead actor back at the given health fraction.
func (p *Pools) Revive(fraction float64) {
	if !p.Dead {
		return
	}
	p.Dead = false
	p.Health = gamemath.Clamp(p.HealthMax*fraction, 1, p.HealthMax)
	p.Shield = 0
	p.Stamina = p.StaminaMax
	p.sinceHealthDamage = 0
	p.sinceShieldDamage = 0
	p.publish(events.Event{Type: events.TypeRevive, ActorID: p.ActorID})
}

// SpendStamina withdraws the cost if available, returning false otherwise.
func (p *Pools) SpendStamina(cost float64) bool {
	if p.Stamina < cost {
		return false
	}
	p.Stamina -= cost
	return true
}

// DrainStamina removes up to amount and reports whether the pool ran dry.
func (p *Pools) DrainStamina(amount float64) bool {
	p.Stamina -= amount
	if p.Stamina <= 0 {
		p.Stamina = 0
		return true
	}
	return false
}

// Update advances regeneration by one tick. Suppressed entirely while dead.
func (p *Pools) Update(dt float64) {
	if p.Dead {
		return
	}
	c := config.Combat

	p.sinceHealthDamage += dt
	p.sinceShieldDamage += dt

	if p.sinceHealthDamage >= c.HealthRegenDelay && p.Health < p.HealthMax {
		p.Health = gamemath.Clamp(p.Health+c.HealthRegenRate*dt, 0, p.HealthMax)
	}
	if p.sinceShieldDamage >= c.ShieldRegenDelay && p.Shield < p.ShieldMax {
		p.Shield = gamemath.Clamp(p.Shield+c.ShieldRegenRate*dt, 0, p.ShieldMax)
	}
	if p.Stamina < p.StaminaMax {
		p.Stamina = gamemath.Clamp(p.Stamina+c.StaminaRegenRate*dt, 0, p.StaminaMax)
	}
}

func (p *Pools) publish(e events.Event) {
	if p.bus != nil {
		p.bus.Publish(e)
	}
}
