package network

import "github.com/emberworks/brawlcore/config"

// Grace is the reconciliation grace window for the locally controlled actor.
// Entering a movement-altering state (jump, airborne, dodge) opens a window
// during which authoritative corrections are suppressed, so the pose does not
// snap while the network round-trip catches up. Rapid chained triggers (for
// example consecutive wall jumps) extend the window multiplicatively up to a
// cap.
type Grace struct {
	until    float64
	duration float64
}

// Open starts or extends the window at the given simulation time.
func (g *Grace) Open(now float64) {
	if g.Active(now) {
		g.duration *= config.Net.GraceMultiplier
		if g.duration > config.Net.GraceCap {
			g.duration = config.Net.GraceCap
		}
	} else {
		g.duration = config.Net.GraceBase
	}
	g.until = now + g.duration
}

// Active reports whether corrections are currently suppressed.
func (g *Grace) Active(now float64) bool {
	return now < g.until
}

// Remaining returns the seconds of suppression left at now.
func (g *Grace) Remaining(now float64) float64 {
	if !g.Active(now) {
		return 0
	}
	return g.until - now
}
