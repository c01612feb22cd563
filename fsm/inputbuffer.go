package fsm

import (
	"github.com/emberworks/brawlcore/shared/gamemath"
	"github.com/emberworks/brawlcore/shared/netconfig"
)

// InputEntry records one discrete action press together with the movement
// vector active at press time.
type InputEntry struct {
	Action netconfig.ActionID
	At     float64 // Machine clock seconds when pressed
	Move   gamemath.Vector

	// Payload carries a distinguishing vector for actions that need one
	// (e.g. the wall normal of a wall jump). Entries with differing
	// payloads are never deduplicated against each other.
	Payload    gamemath.Vector
	HasPayload bool
}

// InputBuffer is a short-lived, time-windowed record of action presses.
// Entries expire after the window and are consumed at most once, oldest
// matching first.
type InputBuffer struct {
	entries []InputEntry
	window  float64
}

// NewInputBuffer creates a buffer with the given validity window in seconds.
func NewInputBuffer(window float64) *InputBuffer {
	return &InputBuffer{window: window}
}

// Press appends an entry.
func (b *InputBuffer) Press(e InputEntry) {
	b.entries = append(b.entries, e)
}

// PressDeduplicated appends an entry unless an equivalent one is already
// buffered. Entries are equivalent when they share the action and neither
// carries a payload, or both carry the same payload. Used for the
// server-side buffer, where the transport may deliver duplicates.
func (b *InputBuffer) PressDeduplicated(e InputEntry) {
	for _, existing := range b.entries {
		if existing.Action != e.Action {
			continue
		}
		if existing.HasPayload != e.HasPayload {
			continue
		}
		if existing.HasPayload && existing.Payload != e.Payload {
			continue
		}
		return
	}
	b.entries = append(b.entries, e)
}

// Consume removes and returns the oldest non-expired entry for the action.
// A consumed entry is never returned twice.
func (b *InputBuffer) Consume(action netconfig.ActionID, now float64) (InputEntry, bool) {
	for i, e := range b.entries {
		if e.Action != action {
			continue
		}
		if now-e.At > b.window {
			continue // Expired; Prune will drop it.
		}
		b.entries = append(b.entries[:i], b.entries[i+1:]...)
		return e, true
	}
	return InputEntry{}, false
}

// Peek reports whether a live entry for the action exists without consuming.
func (b *InputBuffer) Peek(action netconfig.ActionID, now float64) bool {
	for _, e := range b.entries {
		if e.Action == action && now-e.At <= b.window {
			return true
		}
	}
	return false
}

// Prune drops every expired entry.
func (b *InputBuffer) Prune(now float64) {
	kept := b.entries[:0]
	for _, e := range b.entries {
		if now-e.At <= b.window {
			kept = append(kept, e)
		}
	}
	b.entries = kept
}

// Len returns the number of buffered entries, expired ones included until
// the next Prune.
func (b *InputBuffer) Len() int {
	return len(b.entries)
}
