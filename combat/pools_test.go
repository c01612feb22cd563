package combat

import (
	"math"
	"testing"

	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/events"
	"github.com/emberworks/brawlcore/shared/gamemath"
	"github.com/emberworks/brawlcore/shared/netconfig"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func collectEvents(bus *events.Bus) *[]events.Event {
	var got []events.Event
	bus.Subscribe(func(e events.Event) {
		got = append(got, e)
	})
	return &got
}

func TestTakeDamageMeleeAgainstBareHealth(t *testing.T) {
	t.Parallel()

	p := NewPools("target", nil)
	p.Shield = 0

	applied := p.TakeDamage(40, NamedSource("trap"), netconfig.DamageMelee, gamemath.Vector{}, 0)

	if !almost(applied, 40) {
		t.Fatalf("applied = %v, want 40", applied)
	}
	if !almost(p.Health, 60) {
		t.Fatalf("health = %v, want 60", p.Health)
	}
}

func TestTakeDamageLargeProjectileSplitsAcrossPools(t *testing.T) {
	t.Parallel()

	p := NewPools("target", nil)

	// 80% routes to the 50-point shield; the overflow plus the health
	// portion is dampened by shield protection while the shield was up.
	applied := p.TakeDamage(100, NamedSource("cannon"), netconfig.DamageProjectileLarge, gamemath.Vector{}, 0)

	if !almost(p.Shield, 0) {
		t.Fatalf("shield = %v, want 0", p.Shield)
	}
	if !almost(p.Health, 62.5) {
		t.Fatalf("health = %v, want 62.5", p.Health)
	}
	if !almost(applied, 87.5) {
		t.Fatalf("applied = %v, want 87.5", applied)
	}
}

func TestArmorAndResistanceMitigate(t *testing.T) {
	t.Parallel()

	p := NewPools("target", nil)
	p.Shield = 0
	p.Armor = 10
	p.Resistance = 0.5

	applied := p.TakeDamage(40, NamedSource("sword"), netconfig.DamageMelee, gamemath.Vector{}, 0)

	if !almost(applied, 15) {
		t.Fatalf("applied = %v, want 15", applied)
	}
	if !almost(p.Health, 85) {
		t.Fatalf("health = %v, want 85", p.Health)
	}
}

func TestArmorAbsorbsWeakHitsEntirely(t *testing.T) {
	t.Parallel()

	p := NewPools("target", nil)
	p.Armor = 10

	if applied := p.TakeDamage(8, NamedSource("pebble"), netconfig.DamageProjectileSmall, gamemath.Vector{}, 0); applied != 0 {
		t.Fatalf("applied = %v, want 0", applied)
	}
	if !almost(p.Health, config.Combat.HealthMax) {
		t.Fatalf("health changed: %v", p.Health)
	}
}

func TestTrueDamageBypassesArmorAndResistance(t *testing.T) {
	t.Parallel()

	p := NewPools("target", nil)
	p.Shield = 0
	p.Armor = 50
	p.Resistance = 0.9

	applied := p.TakeDamage(20, NamedSource("void"), netconfig.DamageTrue, gamemath.Vector{}, 0)

	if !almost(applied, 20) {
		t.Fatalf("applied = %v, want 20", applied)
	}
	if !almost(p.Health, 80) {
		t.Fatalf("health = %v, want 80", p.Health)
	}
}

func TestTrueDamageStillSplitsToShield(t *testing.T) {
	t.Parallel()

	p := NewPools("target", nil)

	// True damage skips mitigation but not the pool split: half goes to
	// the shield, and the health half is still dampened while it holds.
	applied := p.TakeDamage(40, NamedSource("void"), netconfig.DamageTrue, gamemath.Vector{}, 0)

	if !almost(p.Shield, 30) {
		t.Fatalf("shield = %v, want 30", p.Shield)
	}
	if !almost(p.Health, 85) {
		t.Fatalf("health = %v, want 85", p.Health)
	}
	if !almost(applied, 35) {
		t.Fatalf("applied = %v, want 35", applied)
	}
}

func TestLethalDamageClampsAndKillsOnce(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()
	got := collectEvents(bus)
	p := NewPools("target", bus)
	p.Shield = 0

	deaths := 0
	p.OnDeath = func(Source) { deaths++ }

	p.TakeDamage(40, NamedSource("first"), netconfig.DamageMelee, gamemath.Vector{}, 0)
	applied := p.TakeDamage(75, NamedSource("second"), netconfig.DamageMelee, gamemath.Vector{}, 0)

	if !almost(applied, 60) {
		t.Fatalf("lethal applied = %v, want clamped 60", applied)
	}
	if p.Health != 0 || !p.Dead {
		t.Fatalf("health=%v dead=%v, want 0/true", p.Health, p.Dead)
	}
	if deaths != 1 {
		t.Fatalf("OnDeath ran %d times, want 1", deaths)
	}

	// Dead pools ignore further damage and healing.
	if d := p.TakeDamage(50, NamedSource("late"), netconfig.DamageMelee, gamemath.Vector{}, 0); d != 0 {
		t.Fatalf("damage while dead applied %v", d)
	}
	if h := p.Heal(50, NamedSource("medic"), false); h != 0 {
		t.Fatalf("heal while dead applied %v", h)
	}

	deathEvents := 0
	for _, e := range *got {
		if e.Type == events.TypeDeath {
			deathEvents++
		}
	}
	if deathEvents != 1 {
		t.Fatalf("death events = %d, want 1", deathEvents)
	}
}

func TestInvulnerableTakesNothing(t *testing.T) {
	t.Parallel()

	p := NewPools("target", nil)
	p.Invulnerable = true

	if applied := p.TakeDamage(40, NamedSource("blade"), netconfig.DamageMelee, gamemath.Vector{}, 0); applied != 0 {
		t.Fatalf("applied = %v, want 0", applied)
	}
	if !almost(p.Health, config.Combat.HealthMax) || !almost(p.Shield, config.Combat.ShieldMax) {
		t.Fatalf("pools changed: health=%v shield=%v", p.Health, p.Shield)
	}
}

func TestGuardAbsorbedSuppressesHit(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()
	got := collectEvents(bus)
	p := NewPools("target", bus)
	p.Guard = func(amount float64, dtype netconfig.DamageType, source Source) (float64, GuardResult) {
		return 0, GuardAbsorbed
	}

	if applied := p.TakeDamage(40, NamedSource("blade"), netconfig.DamageMelee, gamemath.Vector{}, 0); applied != 0 {
		t.Fatalf("applied = %v, want 0", applied)
	}
	if len(*got) != 0 {
		t.Fatalf("absorbed hit still published %d events", len(*got))
	}
}

func TestGuardReducedSkipsMitigation(t *testing.T) {
	t.Parallel()

	p := NewPools("target", nil)
	p.Shield = 0
	p.Armor = 10
	p.Resistance = 0.5
	p.Guard = func(amount float64, dtype netconfig.DamageType, source Source) (float64, GuardResult) {
		return 6, GuardReduced
	}

	applied := p.TakeDamage(20, NamedSource("blade"), netconfig.DamageMelee, gamemath.Vector{}, 0)

	if !almost(applied, 6) {
		t.Fatalf("applied = %v, want 6 (armor and resistance skipped)", applied)
	}
	if !almost(p.Health, 94) {
		t.Fatalf("health = %v, want 94", p.Health)
	}
}

func TestKnockbackForwarded(t *testing.T) {
	t.Parallel()

	p := NewPools("target", nil)
	var gotDir gamemath.Vector
	var gotForce float64
	p.OnKnockback = func(dir gamemath.Vector, force float64) {
		gotDir, gotForce = dir, force
	}

	p.TakeDamage(10, NamedSource("hammer"), netconfig.DamageMelee, gamemath.Vector{X: 1}, 140)

	if gotDir != (gamemath.Vector{X: 1}) || !almost(gotForce, 140) {
		t.Fatalf("knockback = %v/%v, want (1,0)/140", gotDir, gotForce)
	}
}

func TestHealClampsAtMax(t *testing.T) {
	t.Parallel()

	p := NewPools("target", nil)
	p.Shield = 0
	p.TakeDamage(40, NamedSource("trap"), netconfig.DamageMelee, gamemath.Vector{}, 0)

	if applied := p.Heal(100, NamedSource("medic"), true); !almost(applied, 40) {
		t.Fatalf("heal applied = %v, want 40", applied)
	}
	if !almost(p.Health, p.HealthMax) {
		t.Fatalf("health = %v, want %v", p.Health, p.HealthMax)
	}
}

func TestReviveRestoresFraction(t *testing.T) {
	t.Parallel()

	p := NewPools("target", nil)
	p.Shield = 0
	p.Stamina = 5
	p.TakeDamage(200, NamedSource("pit"), netconfig.DamageTrue, gamemath.Vector{}, 0)
	if !p.Dead {
		t.Fatal("pools not dead after lethal true damage")
	}

	p.Revive(0.5)

	if p.Dead {
		t.Fatal("still dead after revive")
	}
	if !almost(p.Health, 50) {
		t.Fatalf("health = %v, want 50", p.Health)
	}
	if !almost(p.Shield, 0) || !almost(p.Stamina, p.StaminaMax) {
		t.Fatalf("shield=%v stamina=%v after revive", p.Shield, p.Stamina)
	}

	// Revive on the living is a no-op.
	p.Health = 30
	p.Revive(1.0)
	if !almost(p.Health, 30) {
		t.Fatalf("revive on living changed health to %v", p.Health)
	}
}

func TestReviveFloorsAtOneHealth(t *testing.T) {
	t.Parallel()

	p := NewPools("target", nil)
	p.TakeDamage(1000, NamedSource("pit"), netconfig.DamageTrue, gamemath.Vector{}, 0)
	p.Revive(0)

	if !almost(p.Health, 1) {
		t.Fatalf("health = %v, want floor of 1", p.Health)
	}
}

func TestStaminaSpendAndDrain(t *testing.T) {
	t.Parallel()

	p := NewPools("target", nil)

	if !p.SpendStamina(25) {
		t.Fatal("spend within budget refused")
	}
	if !almost(p.Stamina, 75) {
		t.Fatalf("stamina = %v, want 75", p.Stamina)
	}
	if p.SpendStamina(100) {
		t.Fatal("spend beyond budget accepted")
	}
	if !almost(p.Stamina, 75) {
		t.Fatalf("failed spend changed stamina to %v", p.Stamina)
	}

	if dry := p.DrainStamina(50); dry {
		t.Fatal("drain to 25 reported dry")
	}
	if dry := p.DrainStamina(50); !dry {
		t.Fatal("drain past zero did not report dry")
	}
	if p.Stamina != 0 {
		t.Fatalf("stamina = %v, want 0 after running dry", p.Stamina)
	}
}

func TestRegenHonorsDelays(t *testing.T) {
	t.Parallel()

	p := NewPools("target", nil)
	p.Shield = 0
	p.Stamina = 0
	p.TakeDamage(40, NamedSource("trap"), netconfig.DamageMelee, gamemath.Vector{}, 0)

	// One second on: health regen still inside its delay, shield (never
	// damaged here) and stamina regenerate immediately.
	p.Update(1.0)
	if !almost(p.Health, 60) {
		t.Fatalf("health regenerated early: %v", p.Health)
	}
	if !almost(p.Shield, config.Combat.ShieldRegenRate) {
		t.Fatalf("shield = %v, want %v", p.Shield, config.Combat.ShieldRegenRate)
	}
	if !almost(p.Stamina, config.Combat.StaminaRegenRate) {
		t.Fatalf("stamina = %v, want %v", p.Stamina, config.Combat.StaminaRegenRate)
	}

	// Cross the health delay: the first second past it restores one
	// second of the health rate.
	for i := 0; i < 7; i++ {
		p.Update(1.0)
	}
	if !almost(p.Health, 60+config.Combat.HealthRegenRate) {
		t.Fatalf("health = %v, want %v", p.Health, 60+config.Combat.HealthRegenRate)
	}
	if !almost(p.Shield, config.Combat.ShieldMax) {
		t.Fatalf("shield = %v, want full", p.Shield)
	}
}

func TestShieldRegenWaitsOutItsDelay(t *testing.T) {
	t.Parallel()

	p := NewPools("target", nil)

	p.TakeDamage(25, NamedSource("dart"), netconfig.DamageProjectileLarge, gamemath.Vector{}, 0)
	if !almost(p.Shield, 30) {
		t.Fatalf("shield = %v, want 30", p.Shield)
	}

	p.Update(1.0)
	if !almost(p.Shield, 30) {
		t.Fatalf("shield regenerated inside its delay: %v", p.Shield)
	}

	// Cross the shield delay; the next second restores one second of the
	// shield rate.
	for i := 0; i < 3; i++ {
		p.Update(1.0)
	}
	if !almost(p.Shield, 30+config.Combat.ShieldRegenRate) {
		t.Fatalf("shield = %v, want %v", p.Shield, 30+config.Combat.ShieldRegenRate)
	}
}

func TestRegenSuppressedWhileDead(t *testing.T) {
	t.Parallel()

	p := NewPools("target", nil)
	p.TakeDamage(1000, NamedSource("pit"), netconfig.DamageTrue, gamemath.Vector{}, 0)

	for i := 0; i < 20; i++ {
		p.Update(1.0)
	}
	if p.Health != 0 || p.Shield != 0 {
		t.Fatalf("dead pools regenerated: health=%v shield=%v", p.Health, p.Shield)
	}
}
