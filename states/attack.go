package states

import (
	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/fsm"
	"github.com/emberworks/brawlcore/shared/gamemath"
	"github.com/emberworks/brawlcore/shared/netconfig"
	"github.com/emberworks/brawlcore/tags"
	"github.com/solarlune/resolv"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// AttackState drives one combo slot from the attack table. Every slot is an
// instance of this policy parameterized by its AttackSpec; the three phases
// (wind-up, active, recovery) are derived from time in state, never stored
// as separate machine states.
type AttackState struct {
	id   netconfig.StateID
	spec config.AttackSpec

	tween     *gween.Tween
	travelled float64
	dir       gamemath.Vector

	hitbox   *resolv.Object
	struck   map[*resolv.Object]bool
	hasHit   bool
	noWeapon bool
}

// NewAttackState builds the policy for one slot of the attack table.
func NewAttackState(id netconfig.StateID) *AttackState {
	return &AttackState{id: id, spec: config.Attacks[id]}
}

func (s *AttackState) ID() netconfig.StateID { return s.id }

func (s *AttackState) Enter(a *fsm.Actor, _ any) {
	a.PlayAnimation(s.spec.Animation)
	if !a.Simulated {
		return
	}

	_, armed := a.WeaponStats()
	s.noWeapon = !armed
	if s.noWeapon {
		return
	}

	// Steer the swing toward held movement at the moment of commit; after
	// this the direction is locked for the whole attack.
	if !a.MoveIntent.IsZero() {
		a.Facing = a.MoveIntent.Normalized().Angle()
	}
	s.dir = a.FacingVector()
	s.tween = gween.New(0, float32(s.spec.StepDistance), float32(s.spec.TotalDuration()), ease.OutQuad)
	s.travelled = 0
	s.hasHit = false
	s.struck = make(map[*resolv.Object]bool)
}

func (s *AttackState) Exit(a *fsm.Actor) any {
	s.removeHitbox(a)
	a.SetHitDetection(false)
	s.tween = nil
	return nil
}

func (s *AttackState) Update(a *fsm.Actor, dt float64) {}

func (s *AttackState) PhysicsUpdate(a *fsm.Actor, dt float64) {
	t := a.Machine.TimeInState()
	total := s.spec.TotalDuration()

	if !a.Simulated {
		if t >= total {
			a.Machine.CompleteCurrentState()
		}
		return
	}
	if s.noWeapon {
		a.Machine.CompleteCurrentState()
		return
	}

	// Forward lunge along the committed direction.
	dist, _ := s.tween.Update(float32(dt))
	step := float64(dist) - s.travelled
	s.travelled = float64(dist)
	a.Position = a.Position.Add(s.dir.Scale(step))
	a.Velocity = s.dir.Scale(step / dt)

	activeFrom := s.spec.WindUp
	activeTo := s.spec.WindUp + s.spec.Active
	switch {
	case t >= activeFrom && t < activeTo:
		if s.hitbox == nil {
			a.SetHitDetection(true)
			s.spawnHitbox(a)
		}
		s.placeHitbox(a)
		s.sweep(a)
	case t >= activeTo:
		s.removeHitbox(a)
		a.SetHitDetection(false)
	}

	inCancelWindow := t >= s.spec.CancelStart && t <= s.spec.CancelEnd

	// Buffered follow-up attack chains within the cancel window. A chain
	// whose table entry has no continuation restarts from the first slot.
	if inCancelWindow {
		if _, ok := a.Machine.ConsumeBuffered(netconfig.ActionAttack); ok {
			next := s.spec.Next
			if next == netconfig.StateNone {
				next = config.FirstComboSlot
			}
			a.Machine.ChangeState(next, true)
			return
		}
	}

	// Dash-cancel: valid inside the cancel window, or any time after this
	// swing has already connected.
	if inCancelWindow || s.hasHit {
		if entry, ok := a.Machine.ConsumeBuffered(netconfig.ActionDodge); ok {
			if TryDodge(a, entry.Move) {
				return
			}
		}
	}

	if t >= total {
		a.Machine.CompleteCurrentState()
	}
}

func (s *AttackState) spawnHitbox(a *fsm.Actor) {
	if a.Space == nil {
		return
	}
	size := s.spec.Radius * 2
	obj := resolv.NewObject(0, 0, size, size, tags.ResolvHitbox)
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	a.Space.Add(obj)
	s.hitbox = obj
	s.placeHitbox(a)
}

func (s *AttackState) placeHitbox(a *fsm.Actor) {
	if s.hitbox == nil {
		return
	}
	center := a.Position.Add(s.dir.Scale(s.spec.Reach))
	s.hitbox.X = center.X - s.spec.Radius
	s.hitbox.Y = center.Y - s.spec.Radius
	s.hitbox.Update()
}

func (s *AttackState) removeHitbox(a *fsm.Actor) {
	if s.hitbox == nil {
		return
	}
	if a.Space != nil {
		a.Space.Remove(s.hitbox)
	}
	s.hitbox = nil
}

// sweep applies the weapon's scaled damage, knockback, and hitstun to every
// actor body overlapping the hitbox. Each target is struck at most once per
// swing; the owner is never a target.
func (s *AttackState) sweep(a *fsm.Actor) {
	if s.hitbox == nil {
		return
	}
	check := s.hitbox.Check(0, 0, tags.ResolvActor)
	if check == nil {
		return
	}
	stats, _ := a.WeaponStats()
	for _, obj := range check.Objects {
		if obj == a.Object || s.struck[obj] {
			continue
		}
		target, ok := obj.Data.(fsm.Damageable)
		if !ok {
			continue
		}
		s.struck[obj] = true
		s.hasHit = true

		knockDir := s.dir
		dealt := target.TakeDamage(
			stats.Damage*s.spec.DamageMult,
			a,
			netconfig.DamageMelee,
			knockDir,
			stats.Knockback*s.spec.KnockbackMult,
		)
		if dealt > 0 {
			if stunnable, ok := obj.Data.(fsm.Stunnable); ok {
				stunnable.Stun(stats.Hitstun * s.spec.HitstunMult)
			}
		}
	}
}
