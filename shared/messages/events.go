package messages

// HitEvent is broadcast when an attack connects.
type HitEvent struct {
	AttackerID uint // NetworkId of attacker (0 if environmental)
	TargetID   uint
	Amount     float64
	DamageType uint8
	KnockbackX float64
	KnockbackY float64
}

// DeathEvent is broadcast when an actor's health reaches zero.
type DeathEvent struct {
	VictimID uint
	KillerID uint // 0 if environmental
}

// ReviveEvent is broadcast when a dead actor is restored.
type ReviveEvent struct {
	NetworkID uint
	Health    float64
}

// SpawnEvent is broadcast when a new actor enters the arena.
type SpawnEvent struct {
	NetworkID uint
	ActorID   string
	X, Y      float64
}

// DespawnEvent is broadcast when an actor is removed.
type DespawnEvent struct {
	NetworkID uint
}

// ParryEvent is broadcast when a block negates a melee hit inside the
// parry window.
type ParryEvent struct {
	BlockerID  uint
	AttackerID uint
}

// GuardBreakEvent is broadcast when blocking drains the last stamina.
type GuardBreakEvent struct {
	BlockerID uint
}

// CooldownEvent mirrors server-side ability cooldown starts so clients can
// render timers without simulating combat.
type CooldownEvent struct {
	NetworkID uint
	Ability   string
	Duration  float64
}
