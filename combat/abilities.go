package combat

import "github.com/emberworks/brawlcore/events"

// AbilityDef describes a registered ability.
type AbilityDef struct {
	Cooldown float64
	// Effect parameters consumed by whatever system executes the ability;
	// combat resolution only tracks availability.
	Params map[string]float64
}

// Abilities tracks registered abilities and their running cooldowns for one
// actor. Cooldowns count down once per tick and are removed at zero.
type Abilities struct {
	pools *Pools

	defs      map[string]AbilityDef
	cooldowns map[string]float64

	bus *events.Bus
}

func NewAbilities(pools *Pools, bus *events.Bus) *Abilities {
	return &Abilities{
		pools:     pools,
		defs:      make(map[string]AbilityDef),
		cooldowns: make(map[string]float64),
		bus:       bus,
	}
}

// Register adds or replaces an ability definition.
func (a *Abilities) Register(id string, def AbilityDef) {
	a.defs[id] = def
}

// CanUse reports whether the ability may fire right now.
func (a *Abilities) CanUse(id string) bool {
	if a.pools != nil && a.pools.Dead {
		return false
	}
	if _, ok := a.defs[id]; !ok {
		return false
	}
	_, cooling := a.cooldowns[id]
	return !cooling
}

// Use starts the ability's cooldown and emits the usage events. Returns
// false without side effects when the ability is unavailable.
func (a *Abilities) Use(id string) bool {
	if !a.CanUse(id) {
		return false
	}
	def := a.defs[id]
	if def.Cooldown > 0 {
		a.cooldowns[id] = def.Cooldown
		a.publish(events.TypeCooldownStarted, id)
	}
	a.publish(events.TypeAbilityUsed, id)
	return true
}

// Remaining returns the cooldown left for an ability, zero when ready.
func (a *Abilities) Remaining(id string) float64 {
	return a.cooldowns[id]
}

// Update counts cooldowns down, removing and announcing finished ones.
func (a *Abilities) Update(dt float64) {
	for id, left := range a.cooldowns {
		left -= dt
		if left <= 0 {
			delete(a.cooldowns, id)
			a.publish(events.TypeCooldownEnded, id)
			continue
		}
		a.cooldowns[id] = left
	}
}

func (a *Abilities) publish(t events.Type, ability string) {
	if a.bus == nil {
		return
	}
	actorID := ""
	if a.pools != nil {
		actorID = a.pools.ActorID
	}
	a.bus.Publish(events.Event{Type: t, ActorID: actorID, Payload: events.AbilityPayload{Ability: ability}})
}
