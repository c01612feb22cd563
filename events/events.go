// Package events provides the observer registration used by the machine core
// and combat resolution to notify collaborators (UI bridges, respawn flows,
// telemetry) without coupling to them.
package events

import "github.com/emberworks/brawlcore/shared/netconfig"

// Type classifies an event.
type Type uint8

const (
	TypeUnknown Type = iota
	TypeTransition
	TypeHit
	TypeDeath
	TypeRevive
	TypeHeal
	TypeAbilityUsed
	TypeCooldownStarted
	TypeCooldownEnded
	TypeComboStarted
	TypeComboDropped
	TypeComboCompleted
	TypeParry
	TypeGuardBreak
)

func (t Type) String() string {
	switch t {
	case TypeTransition:
		return "transition"
	case TypeHit:
		return "hit"
	case TypeDeath:
		return "death"
	case TypeRevive:
		return "revive"
	case TypeHeal:
		return "heal"
	case TypeAbilityUsed:
		return "ability_used"
	case TypeCooldownStarted:
		return "cooldown_started"
	case TypeCooldownEnded:
		return "cooldown_ended"
	case TypeComboStarted:
		return "combo_started"
	case TypeComboDropped:
		return "combo_dropped"
	case TypeComboCompleted:
		return "combo_completed"
	case TypeParry:
		return "parry"
	case TypeGuardBreak:
		return "guard_break"
	default:
		return "unknown"
	}
}

// Event carries one notification. Payload holds a typed struct below.
type Event struct {
	Type    Type
	ActorID string
	Payload any
}

// TransitionPayload describes an accepted state change.
type TransitionPayload struct {
	From   netconfig.StateID
	To     netconfig.StateID
	Forced bool
}

// HitPayload describes applied damage.
type HitPayload struct {
	Source     string
	Amount     float64
	DamageType netconfig.DamageType
}

// DeathPayload names the killing source.
type DeathPayload struct {
	Source string
}

// HealPayload describes applied healing.
type HealPayload struct {
	Source string
	Amount float64
}

// AbilityPayload names the ability for cooldown and usage events.
type AbilityPayload struct {
	Ability string
}

// ComboPayload lists the chain for combo lifecycle events.
type ComboPayload struct {
	Steps []netconfig.StateID
}

// Handler receives published events. Handlers run synchronously on the
// publishing tick; they must not block.
type Handler func(Event)

// Bus is a simple synchronous observer registry. It is not goroutine safe;
// all publishing happens inside the owning simulation's tick.
type Bus struct {
	handlers []Handler
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for all events.
func (b *Bus) Subscribe(h Handler) {
	b.handlers = append(b.handlers, h)
}

// Publish delivers the event to every registered handler in order.
func (b *Bus) Publish(e Event) {
	for _, h := range b.handlers {
		h(e)
	}
}
