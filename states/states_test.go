package states

import (
	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/events"
	"github.com/emberworks/brawlcore/fsm"
)

// testWeapon is a fixed-stat weapon for exercising the attack states.
type testWeapon struct {
	stats        fsm.WeaponStats
	hitDetection bool
}

func (w *testWeapon) Stats() (fsm.WeaponStats, bool) { return w.stats, true }

func (w *testWeapon) SetHitDetection(enabled bool) { w.hitDetection = enabled }

// newCombatant builds a grounded, armed actor with every policy installed.
func newCombatant(id string) *fsm.Actor {
	a := fsm.NewActor(id, events.NewBus())
	a.Weapon = &testWeapon{stats: fsm.WeaponStats{Damage: 20, Knockback: 140, Hitstun: 0.4}}
	a.OnGround = true
	InstallAll(a)
	return a
}

// tickFor advances the actor by whole physics steps covering the duration.
func tickFor(a *fsm.Actor, seconds float64) {
	dt := config.Tick.PhysicsDt
	steps := int(seconds/dt + 0.5)
	for i := 0; i < steps; i++ {
		a.Tick(dt)
	}
}
