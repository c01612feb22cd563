// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on any simulation
// package so both binaries and the wire protocol stay decoupled.
package netconfig

// StateID identifies an actor control state for logic and animation.
type StateID int

const StateNone StateID = -1

const (
	Idle StateID = iota
	Moving
	Jumping
	Airborne
	Dodging
	Blocking
	Stunned
	Dead
	Talking

	// Attack combo slots. Each is a configured instance of the same
	// data-driven attack policy, not a distinct behavior.
	AttackLight1
	AttackLight2
	AttackLight3
	AttackHeavy
)

// stateNames maps StateID to its wire/animation name.
var stateNames = map[StateID]string{
	Idle:         "idle",
	Moving:       "moving",
	Jumping:      "jumping",
	Airborne:     "airborne",
	Dodging:      "dodging",
	Blocking:     "blocking",
	Stunned:      "stunned",
	Dead:         "dead",
	Talking:      "talking",
	AttackLight1: "attack_light_1",
	AttackLight2: "attack_light_2",
	AttackLight3: "attack_light_3",
	AttackHeavy:  "attack_heavy",
}

func (s StateID) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseStateID resolves a wire/animation name back to a StateID.
// Returns StateNone when the name is unknown.
func ParseStateID(name string) StateID {
	for id, n := range stateNames {
		if n == name {
			return id
		}
	}
	return StateNone
}

// ActionID represents a logical game action.
type ActionID int

const (
	ActionNone ActionID = iota
	ActionAttack
	ActionHeavyAttack
	ActionJump
	ActionWallJump
	ActionDodge
	ActionBlock
	ActionAbility
	ActionInteract
	ActionCount // Must be last - used for array sizing
)

var actionNames = map[ActionID]string{
	ActionAttack:      "attack",
	ActionHeavyAttack: "heavy_attack",
	ActionJump:        "jump",
	ActionWallJump:    "wall_jump",
	ActionDodge:       "dodge",
	ActionBlock:       "block",
	ActionAbility:     "ability",
	ActionInteract:    "interact",
}

func (a ActionID) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}

// ActionBit returns the bitmask flag for an action, for compact replication.
func ActionBit(a ActionID) uint16 {
	return 1 << uint(a)
}

// DamageType classifies incoming damage for the shield/health split.
type DamageType int

const (
	DamageMelee DamageType = iota
	DamageProjectileSmall
	DamageProjectileLarge
	DamageExplosive
	DamageTrue
)

var damageTypeNames = map[DamageType]string{
	DamageMelee:           "melee",
	DamageProjectileSmall: "projectile_small",
	DamageProjectileLarge: "projectile_large",
	DamageExplosive:       "explosive",
	DamageTrue:            "true",
}

func (d DamageType) String() string {
	if name, ok := damageTypeNames[d]; ok {
		return name
	}
	return "unknown"
}

// Authority classifies which simulation side is the source of truth for an
// actor's transform. It changes only on session connect/disconnect or
// explicit ownership reassignment, never mid-tick.
type Authority int

const (
	// LocalAuthority: this side simulates the actor and reports it.
	LocalAuthority Authority = iota
	// RemoteAuthority: another peer owns the actor; we play back its pose.
	RemoteAuthority
	// ServerAuthority: the server simulates the actor for everyone.
	ServerAuthority
)

func (a Authority) String() string {
	switch a {
	case LocalAuthority:
		return "local"
	case RemoteAuthority:
		return "remote"
	case ServerAuthority:
		return "server"
	default:
		return "unknown"
	}
}
