package systems

import (
	"time"

	"github.com/emberworks/brawlcore/components"
	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/states"
	"github.com/yohamta/donburi"
)

// UpdateRemoteActors samples each remote actor's interpolation buffer at
// render time (now minus the configured delay) and plays the result back
// through the actor: pose applied directly, state changes forced so the
// mirrored machine tracks the owner's without arbitration.
func UpdateRemoteActors(world donburi.World, dt float64) {
	renderTime := time.Now().UnixMilli() - config.Net.InterpolationDelay

	components.RemoteActor.Each(world, func(entry *donburi.Entry) {
		data := components.RemoteActor.Get(entry)
		a := data.Actor

		snap, ok := data.Buffer.SampleAt(renderTime)
		if ok {
			a.Position = snap.Position
			a.Height = snap.Height
			a.Velocity = snap.Velocity
			a.Facing = snap.Facing
			if a.Machine.CurrentState() != snap.State {
				a.Machine.ChangeState(snap.State, true)
			}
		}

		// Animation-facing timers only; Simulated is false.
		a.Tick(dt)
	})
}

// TickLocalActor advances the predicted local actor one fixed step.
func TickLocalActor(world donburi.World, dt float64) {
	components.LocalActor.Each(world, func(entry *donburi.Entry) {
		data := components.LocalActor.Get(entry)
		states.DispatchBuffered(data.Actor)
		data.Actor.Tick(dt)
	})
}
