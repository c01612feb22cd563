package config

import "github.com/emberworks/brawlcore/shared/netconfig"

// AttackSpec parameterizes one instance of the data-driven attack state.
// Combo slots are entries in this table, not separate state types.
type AttackSpec struct {
	// Phase durations in seconds. Total attack time is their sum.
	WindUp   float64
	Active   float64
	Recovery float64

	// Cancel window, relative to total elapsed attack time, during which a
	// buffered follow-up attack or dash may pre-empt recovery.
	CancelStart float64
	CancelEnd   float64

	// Multipliers applied to the equipped weapon's base values.
	DamageMult    float64
	KnockbackMult float64
	HitstunMult   float64

	// StepDistance is the total forward lunge over the attack, driven by a
	// deterministic ease-out curve rather than player input.
	StepDistance float64

	// Hitbox reach in front of the actor.
	Reach  float64
	Radius float64

	// Next names the combo continuation; StateNone ends the chain and the
	// combo controller may restart from the first slot.
	Next netconfig.StateID

	Animation string
}

// TotalDuration returns the full wind-up + active + recovery time.
func (a AttackSpec) TotalDuration() float64 {
	return a.WindUp + a.Active + a.Recovery
}

// Attacks maps each attack combo slot to its tuning.
var Attacks = map[netconfig.StateID]AttackSpec{
	netconfig.AttackLight1: {
		WindUp:        0.12,
		Active:        0.10,
		Recovery:      0.25,
		CancelStart:   0.25,
		CancelEnd:     0.45,
		DamageMult:    1.0,
		KnockbackMult: 1.0,
		HitstunMult:   1.0,
		StepDistance:  36,
		Reach:         28,
		Radius:        20,
		Next:          netconfig.AttackLight2,
		Animation:     "attack_light_1",
	},
	netconfig.AttackLight2: {
		WindUp:        0.10,
		Active:        0.10,
		Recovery:      0.28,
		CancelStart:   0.24,
		CancelEnd:     0.46,
		DamageMult:    1.1,
		KnockbackMult: 1.0,
		HitstunMult:   1.0,
		StepDistance:  40,
		Reach:         28,
		Radius:        20,
		Next:          netconfig.AttackLight3,
		Animation:     "attack_light_2",
	},
	netconfig.AttackLight3: {
		WindUp:        0.16,
		Active:        0.12,
		Recovery:      0.40,
		CancelStart:   0.34,
		CancelEnd:     0.60,
		DamageMult:    1.5,
		KnockbackMult: 1.6,
		HitstunMult:   1.3,
		StepDistance:  56,
		Reach:         32,
		Radius:        24,
		Next:          netconfig.StateNone,
		Animation:     "attack_light_3",
	},
	netconfig.AttackHeavy: {
		WindUp:        0.30,
		Active:        0.14,
		Recovery:      0.50,
		CancelStart:   0.55,
		CancelEnd:     0.80,
		DamageMult:    2.0,
		KnockbackMult: 2.2,
		HitstunMult:   1.8,
		StepDistance:  64,
		Reach:         36,
		Radius:        26,
		Next:          netconfig.StateNone,
		Animation:     "attack_heavy",
	},
}

// FirstComboSlot is where an attack chain restarts after its final hit.
const FirstComboSlot = netconfig.AttackLight1
