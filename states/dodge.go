package states

import (
	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/fsm"
	"github.com/emberworks/brawlcore/shared/gamemath"
	"github.com/emberworks/brawlcore/shared/netconfig"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DodgeState is the roll: a fixed distance covered by a deterministic
// ease-out curve, a burst of i-frames at the start, stamina cost, and a
// cooldown tracked through the ability registry.
type DodgeState struct {
	tween     *gween.Tween
	travelled float64
	direction gamemath.Vector
}

func (*DodgeState) ID() netconfig.StateID { return netconfig.Dodging }

func (d *DodgeState) Enter(a *fsm.Actor, _ any) {
	a.PlayAnimation(netconfig.Dodging.String())
	if !a.Simulated {
		return
	}

	// Roll along the requested direction, falling back to held movement,
	// then facing.
	d.direction = a.DodgeDirection.Normalized()
	a.DodgeDirection = gamemath.Vector{}
	if d.direction.IsZero() {
		d.direction = a.MoveIntent.Normalized()
	}
	if d.direction.IsZero() {
		d.direction = a.FacingVector()
	}

	cfg := config.Dodge
	d.tween = gween.New(0, float32(cfg.Distance), float32(cfg.Duration), ease.OutQuad)
	d.travelled = 0

	a.Facing = d.direction.Angle()
	a.Pools.Invulnerable = true
	a.Grace.Open(a.Machine.Now())
}

func (d *DodgeState) Exit(a *fsm.Actor) any {
	a.Pools.Invulnerable = false
	return nil
}

func (d *DodgeState) Update(a *fsm.Actor, dt float64) {}

func (d *DodgeState) PhysicsUpdate(a *fsm.Actor, dt float64) {
	if !a.Simulated || d.tween == nil {
		return
	}

	if a.Machine.TimeInState() >= config.Dodge.IFrames {
		a.Pools.Invulnerable = false
	}

	dist, finished := d.tween.Update(float32(dt))
	step := float64(dist) - d.travelled
	d.travelled = float64(dist)
	a.Position = a.Position.Add(d.direction.Scale(step))
	a.Velocity = d.direction.Scale(step / dt)

	if finished {
		a.Velocity = gamemath.Vector{}
		a.Machine.CompleteCurrentState()
	}
}

// TryDodge is the shared gate for starting a roll: ability off cooldown and
// stamina available. Returns false with no side effects otherwise.
func TryDodge(a *fsm.Actor, direction gamemath.Vector) bool {
	if !a.Abilities.CanUse(config.Dodge.AbilityName) {
		return false
	}
	if a.Pools.Stamina < config.Combat.DodgeStaminaCost {
		return false
	}
	a.DodgeDirection = direction
	if !a.Machine.ChangeState(netconfig.Dodging, false) {
		a.DodgeDirection = gamemath.Vector{}
		return false
	}
	a.Pools.SpendStamina(config.Combat.DodgeStaminaCost)
	a.Abilities.Use(config.Dodge.AbilityName)
	return true
}
