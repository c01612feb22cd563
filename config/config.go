// Package config contains all simulation tuning values. Every number that
// affects gameplay lives here so both simulation sides agree on balance.
package config

import "github.com/emberworks/brawlcore/shared/netconfig"

// TickConfig contains the fixed timing parameters of the simulation.
type TickConfig struct {
	PhysicsRate int     // Fixed physics ticks per second
	NetworkRate int     // Snapshot broadcasts per second
	PhysicsDt   float64 // Seconds per physics tick
}

// MovementConfig contains ground and air movement tuning.
type MovementConfig struct {
	MaxSpeed     float64 // Units per second
	Acceleration float64 // Units per second^2
	Friction     float64 // Speed removed per second on the ground
	JumpSpeed    float64 // Initial upward speed on jump
	Gravity      float64 // Downward acceleration per second
	MaxFallSpeed float64
	RotationRate float64 // Radians per second toward the move direction
}

// BufferingConfig contains input buffering and combo timing.
type BufferingConfig struct {
	InputWindow float64 // Seconds a buffered press stays valid
	ComboWindow float64 // Seconds allowed between combo steps
}

// CombatConfig contains the damage pipeline and defensive tuning.
type CombatConfig struct {
	// Pools
	HealthMax float64
	ShieldMax float64

	// Regeneration
	HealthRegenRate  float64 // Per second
	HealthRegenDelay float64 // Seconds since last health damage
	ShieldRegenRate  float64
	ShieldRegenDelay float64

	// While any shield remains, the health portion of a hit is reduced
	// by this fraction.
	ShieldProtection float64

	// Stamina
	StaminaMax          float64
	StaminaRegenRate    float64 // Per second
	DodgeStaminaCost    float64
	BlockStaminaPerDmg  float64 // Stamina drained per point of blocked damage
	BlockDamageReduce   float64 // Fraction of damage negated by a normal block
	ParryWindow         float64 // Seconds after block entry that parry connects
	ParryStaggerTime    float64 // Stagger applied to the parried attacker
	ParryKnockbackForce float64

	// Stun
	StunDuration float64
}

// DodgeConfig contains dodge roll tuning.
type DodgeConfig struct {
	Duration    float64 // Seconds of the full roll
	Distance    float64 // Units covered by the roll
	IFrames     float64 // Seconds of invulnerability from dodge start
	Cooldown    float64 // Seconds between dodges
	AbilityName string  // Cooldown registry key
}

// NetConfig contains replication, validation, and reconciliation tuning.
type NetConfig struct {
	SnapshotBufferCap  int     // Most-recent-N snapshots kept per remote actor
	InterpolationDelay int64   // Milliseconds behind real time remote poses render
	MaxReportSpeed     float64 // Units/second ceiling for client-reported moves
	MaxReportStep      float64 // Units ceiling for a single-tick displacement
	ViolationThreshold int     // Streak length that triggers a cheat log
	GraceBase          float64 // Seconds of correction suppression per trigger
	GraceMultiplier    float64 // Growth factor for rapid chained triggers
	GraceCap           float64 // Seconds; grace never extends past this
	InputRateLimit     float64 // Client input messages per second
	InputRateBurst     int
}

var Tick TickConfig
var Movement MovementConfig
var Buffering BufferingConfig
var Combat CombatConfig
var Dodge DodgeConfig
var Net NetConfig

// ShieldRatio is the fraction of post-mitigation damage of each type that is
// directed at the shield pool before health.
var ShieldRatio = map[netconfig.DamageType]float64{
	netconfig.DamageMelee:           0.1,
	netconfig.DamageProjectileSmall: 0.2,
	netconfig.DamageProjectileLarge: 0.8,
	netconfig.DamageExplosive:       0.8,
	netconfig.DamageTrue:            0.5,
}

func init() {
	Tick = TickConfig{
		PhysicsRate: 60,
		NetworkRate: 20,
		PhysicsDt:   1.0 / 60.0,
	}

	Movement = MovementConfig{
		MaxSpeed:     6.0 * 60,
		Acceleration: 0.75 * 60 * 60,
		Friction:     0.5 * 60 * 60,
		JumpSpeed:    15.0 * 60,
		Gravity:      0.75 * 60 * 60,
		MaxFallSpeed: 10.0 * 60,
		RotationRate: 12.0,
	}

	Buffering = BufferingConfig{
		InputWindow: 0.25,
		ComboWindow: 0.6,
	}

	Combat = CombatConfig{
		HealthMax: 100,
		ShieldMax: 50,

		HealthRegenRate:  2.0,
		HealthRegenDelay: 8.0,
		ShieldRegenRate:  10.0,
		ShieldRegenDelay: 4.0,

		ShieldProtection: 0.25,

		StaminaMax:          100,
		StaminaRegenRate:    20.0,
		DodgeStaminaCost:    25.0,
		BlockStaminaPerDmg:  1.5,
		BlockDamageReduce:   0.7,
		ParryWindow:         0.15,
		ParryStaggerTime:    1.2,
		ParryKnockbackForce: 220,

		StunDuration: 0.6,
	}

	Dodge = DodgeConfig{
		Duration:    0.3,
		Distance:    120,
		IFrames:     0.2,
		Cooldown:    1.0,
		AbilityName: "dodge",
	}

	Net = NetConfig{
		SnapshotBufferCap:  32,
		InterpolationDelay: 100,
		MaxReportSpeed:     Movement.MaxSpeed * 2.5,
		MaxReportStep:      48,
		ViolationThreshold: 5,
		GraceBase:          0.4,
		GraceMultiplier:    1.5,
		GraceCap:           2.0,
		InputRateLimit:     120,
		InputRateBurst:     30,
	}
}
