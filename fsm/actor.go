package fsm

import (
	"github.com/emberworks/brawlcore/combat"
	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/events"
	"github.com/emberworks/brawlcore/network"
	"github.com/emberworks/brawlcore/shared/gamemath"
	"github.com/emberworks/brawlcore/shared/netconfig"
	"github.com/solarlune/resolv"
)

// Actor is the controlled entity: one active state, one input buffer, one
// set of combat pools, and (when networked) one network identity. It
// survives state and ownership changes; it is created on spawn and
// destroyed on despawn or disconnect.
type Actor struct {
	ID    string
	NetID uint

	Position gamemath.Vector
	Velocity gamemath.Vector
	Facing   float64 // Radians
	OnGround bool

	// Height and VertSpeed model the vertical axis for jumps; the ground
	// plane itself is the 2D Position.
	Height    float64
	VertSpeed float64

	// MoveIntent is the movement input direction currently held, captured
	// into the input buffer alongside discrete presses.
	MoveIntent gamemath.Vector

	// Object is the actor's body in the shared collision space. Nil in
	// isolated tests; hit detection degrades to nothing without it.
	Object *resolv.Object
	Space  *resolv.Space

	Pools     *combat.Pools
	Abilities *combat.Abilities
	Machine   *Machine

	Authority netconfig.Authority
	// Simulated is true when this side drives gameplay for the actor.
	// Remote copies run animation-facing timers only: no hit detection,
	// no damage application, no input-driven movement.
	Simulated bool

	// Grace suppresses authoritative corrections right after
	// movement-altering transitions on the locally controlled actor.
	Grace network.Grace

	Animator Animator
	Weapon   WeaponProvider

	Bus *events.Bus

	// StunDuration is consumed by the stunned policy on entry.
	StunDuration float64

	// DodgeDirection is consumed by the dodge policy on entry; zero means
	// "use held movement or facing".
	DodgeDirection gamemath.Vector
}

// NewActor wires an actor with pools, abilities, and a machine sharing one
// event bus. States must be installed separately before Reset.
func NewActor(id string, bus *events.Bus) *Actor {
	a := &Actor{
		ID:        id,
		Simulated: true,
		Bus:       bus,
	}
	a.Pools = combat.NewPools(id, bus)
	a.Abilities = combat.NewAbilities(a.Pools, bus)
	a.Machine = NewMachine(a, bus)

	a.Pools.OnDeath = func(source combat.Source) {
		a.Machine.ChangeState(netconfig.Dead, true)
	}
	a.Pools.OnKnockback = func(dir gamemath.Vector, force float64) {
		a.Velocity = dir.Normalized().Scale(force)
	}

	a.Abilities.Register(config.Dodge.AbilityName, combat.AbilityDef{Cooldown: config.Dodge.Cooldown})
	return a
}

// TakeDamage satisfies Damageable. On a non-simulated copy this is a no-op:
// damage must be requested from the authoritative side instead.
func (a *Actor) TakeDamage(amount float64, source combat.Source, dtype netconfig.DamageType, knockDir gamemath.Vector, knockForce float64) float64 {
	if !a.Simulated {
		return 0
	}
	return a.Pools.TakeDamage(amount, source, dtype, knockDir, knockForce)
}

// SourceID satisfies combat.Source so the actor can originate damage.
func (a *Actor) SourceID() string {
	return a.ID
}

// Heal delegates to the pools.
func (a *Actor) Heal(amount float64, source combat.Source, silent bool) float64 {
	if !a.Simulated {
		return 0
	}
	return a.Pools.Heal(amount, source, silent)
}

// Revive restores a dead actor and forces it back to the default state.
func (a *Actor) Revive(fraction float64) {
	if a.Pools == nil || !a.Pools.Dead {
		return
	}
	a.Pools.Revive(fraction)
	a.Machine.ChangeState(config.DefaultState, true)
}

// Stagger satisfies Staggerable: a forced stun with knockback, used by
// parry resolution and guard breaks.
func (a *Actor) Stagger(duration float64, knockDir gamemath.Vector, force float64) {
	if !a.Simulated {
		return
	}
	a.StunDuration = duration
	if force > 0 {
		a.Velocity = knockDir.Normalized().Scale(force)
	}
	a.Machine.ChangeState(netconfig.Stunned, true)
}

// Stun requests a stun through normal transition rules (so i-frames and
// other non-interruptible states still win).
func (a *Actor) Stun(duration float64) bool {
	a.StunDuration = duration
	return a.Machine.ChangeState(netconfig.Stunned, false)
}

// TargetPosition satisfies Targetable.
func (a *Actor) TargetPosition() gamemath.Vector {
	return a.Position
}

// Alive satisfies Targetable.
func (a *Actor) Alive() bool {
	return a.Pools != nil && !a.Pools.Dead
}

// FacingVector returns the unit vector of the actor's heading.
func (a *Actor) FacingVector() gamemath.Vector {
	return gamemath.FromAngle(a.Facing)
}

// PlayAnimation forwards to the animation collaborator when present.
func (a *Actor) PlayAnimation(name string) {
	if a.Animator != nil {
		a.Animator.PlayNamedAnimation(name)
	}
}

// WeaponStats returns the equipped weapon's base values, reporting false
// when no weapon is present.
func (a *Actor) WeaponStats() (WeaponStats, bool) {
	if a.Weapon == nil {
		return WeaponStats{}, false
	}
	return a.Weapon.Stats()
}

// SetHitDetection toggles the weapon's hit detection if one is equipped.
func (a *Actor) SetHitDetection(enabled bool) {
	if a.Weapon != nil {
		a.Weapon.SetHitDetection(enabled)
	}
}

// SyncBody pushes the simulated position into the collision object.
func (a *Actor) SyncBody() {
	if a.Object != nil {
		a.Object.X = a.Position.X
		a.Object.Y = a.Position.Y
		a.Object.Update()
	}
}

// Tick advances the machine on both hooks plus pools and cooldowns for one
// fixed physics step. Remote copies run both machine hooks too, so their
// phase timers advance and self-complete; the state policies themselves
// gate gameplay mutation on Simulated.
func (a *Actor) Tick(dt float64) {
	a.Machine.Update(dt)
	a.Machine.PhysicsUpdate(dt)
	if !a.Simulated {
		return
	}
	a.Pools.Update(dt)
	a.Abilities.Update(dt)
	a.SyncBody()
}
