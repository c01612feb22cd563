package network

import (
	"log"

	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/shared/gamemath"
)

// Validator runs the server-side plausibility check on client-reported
// transforms in client-authoritative position mode. A rejected update leaves
// the previously accepted transform unchanged; rejection never rolls back
// earlier accepted state and never disconnects the peer by itself (that
// policy belongs to a higher layer).
type Validator struct {
	ActorID string

	last     gamemath.Vector
	streak   int
	rejected uint64
	accepted uint64
	warned   bool
}

// NewValidator starts validation from the actor's spawn transform.
func NewValidator(actorID string, spawn gamemath.Vector) *Validator {
	return &Validator{ActorID: actorID, last: spawn}
}

// Check validates one reported position against the previously accepted one.
// dt is the wall time covered by the report in seconds. Returns the position
// the server should trust: the report when accepted, the prior transform
// when rejected.
func (v *Validator) Check(reported gamemath.Vector, dt float64) (gamemath.Vector, bool) {
	step := reported.Sub(v.last).Length()
	maxStep := config.Net.MaxReportStep
	if dt > 0 {
		if bySpeed := config.Net.MaxReportSpeed * dt; bySpeed > maxStep {
			maxStep = bySpeed
		}
	}

	if step > maxStep {
		v.rejected++
		v.streak++
		if v.streak >= config.Net.ViolationThreshold && !v.warned {
			log.Printf("[net] actor %s: %d consecutive implausible transforms (last step %.1f > %.1f), possible cheat",
				v.ActorID, v.streak, step, maxStep)
			v.warned = true
		}
		return v.last, false
	}

	// The violation streak decays on every accepted update.
	if v.streak > 0 {
		v.streak--
	}
	if v.streak == 0 {
		v.warned = false
	}
	v.accepted++
	v.last = reported
	return reported, true
}

// ForceAccept overwrites the trusted transform, used when the server itself
// teleports the actor (spawn, scripted move) and the next report should not
// be measured against the old position.
func (v *Validator) ForceAccept(pos gamemath.Vector) {
	v.last = pos
	v.streak = 0
	v.warned = false
}

// Stats returns accepted and rejected counters for metrics.
func (v *Validator) Stats() (accepted, rejected uint64) {
	return v.accepted, v.rejected
}
