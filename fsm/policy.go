// Package fsm implements the per-actor machine core: it owns the active
// control state, enforces priority and interruptibility rules, buffers
// discrete inputs, and drives deterministic combo chains.
package fsm

import (
	"github.com/emberworks/brawlcore/combat"
	"github.com/emberworks/brawlcore/shared/gamemath"
	"github.com/emberworks/brawlcore/shared/netconfig"
)

// Policy is one control state's behavior. Policies are registered with a
// Machine and consulted while active; exactly one is active per actor.
type Policy interface {
	ID() netconfig.StateID

	// Enter runs on activation with whatever payload the outgoing state's
	// Exit handed off (nil in the common case).
	Enter(a *Actor, payload any)

	// Exit runs on deactivation and may return a payload for the incoming
	// state.
	Exit(a *Actor) any

	// Update runs on the variable-rate frame tick (animation-facing work).
	Update(a *Actor, dt float64)

	// PhysicsUpdate runs on the fixed-rate physics tick and is where
	// velocity, timers, and hit detection advance.
	PhysicsUpdate(a *Actor, dt float64)
}

// Animator is the narrow contract to the animation collaborator.
// Fire-and-forget; this core never consumes a return value.
type Animator interface {
	PlayNamedAnimation(name string)
}

// WeaponStats are the equipped weapon's base values, scaled by each attack's
// multipliers.
type WeaponStats struct {
	Damage    float64
	Knockback float64
	Hitstun   float64
}

// WeaponProvider is the equipment collaborator. Stats reports false when no
// weapon is equipped, in which case an attack state immediately
// self-completes rather than operating on absent data.
type WeaponProvider interface {
	Stats() (WeaponStats, bool)
	SetHitDetection(enabled bool)
}

// Damageable is the capability implemented by anything an attack can hurt.
// Callers depend on this interface, never on probing concrete types.
type Damageable interface {
	TakeDamage(amount float64, source combat.Source, dtype netconfig.DamageType, knockDir gamemath.Vector, knockForce float64) float64
}

// Stunnable is the capability of receiving hitstun through normal
// transition rules (unlike Stagger, which is forced).
type Stunnable interface {
	Stun(duration float64) bool
}

// Staggerable is the capability of being forced into a stagger, used by
// parry resolution against the attacker.
type Staggerable interface {
	Stagger(duration float64, knockDir gamemath.Vector, force float64)
}

// Targetable marks entities that can be selected as combat targets.
type Targetable interface {
	TargetPosition() gamemath.Vector
	Alive() bool
}
