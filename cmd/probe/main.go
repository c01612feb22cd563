// Command probe is a headless client that joins a server, mirrors the
// replicated world, and drives a scripted actor. Useful for soak-testing
// a server without a game build.
package main

import (
	"flag"
	"log"
	"math"
	"time"

	"github.com/emberworks/brawlcore/components"
	"github.com/emberworks/brawlcore/network"
	"github.com/emberworks/brawlcore/shared/messages"
	"github.com/emberworks/brawlcore/shared/netconfig"
	"github.com/emberworks/brawlcore/shared/protocol"
	"github.com/emberworks/brawlcore/systems"
	"github.com/yohamta/donburi"
)

func main() {
	addr := flag.String("addr", "localhost:7373", "Server address")
	name := flag.String("name", "probe", "Player name")
	version := flag.String("version", "", "Client version string")
	duration := flag.Duration("duration", 30*time.Second, "How long to stay connected")
	flag.Parse()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	client := network.NewClient()
	client.Connect(*addr, *version, *name)

	world := donburi.NewWorld()
	mirror := systems.NewMirror(world, client.NetworkID)

	const hz = 60
	dt := 1.0 / float64(hz)
	ticker := time.NewTicker(time.Second / hz)
	defer ticker.Stop()
	deadline := time.After(*duration)

	var seq uint32
	start := time.Now()

	for {
		select {
		case <-deadline:
			log.Println("[probe] done, disconnecting")
			client.Disconnect()
			return

		case <-ticker.C:
			if snap := client.LatestSnapshot(); snap != nil {
				mirror.ApplySnapshot(*snap)
			}
			systems.UpdateRemoteActors(world, dt)
			systems.TickLocalActor(world, dt)

			for _, evt := range client.DrainHitEvents() {
				log.Printf("[probe] hit: %d -> %d for %.1f", evt.AttackerID, evt.TargetID, evt.Amount)
			}
			for _, evt := range client.DrainDeathEvents() {
				log.Printf("[probe] death: victim %d killer %d", evt.VictimID, evt.KillerID)
			}
			for _, evt := range client.DrainSpawnEvents() {
				log.Printf("[probe] spawn: %s as net %d", evt.ActorID, evt.NetworkID)
			}
			for _, evt := range client.DrainDespawnEvents() {
				log.Printf("[probe] despawn: net %d", evt.NetworkID)
			}

			if client.State() != network.StateJoinedGame {
				continue
			}

			// Scripted movement: circle the spawn, swinging periodically.
			seq++
			t := time.Since(start).Seconds()
			input := messages.PlayerInput{
				Sequence:  seq,
				MoveX:     math.Cos(t / 2),
				MoveY:     math.Sin(t / 2),
				Timestamp: time.Now().UnixMilli(),
			}
			if seq%120 == 0 {
				input.Actions |= netconfig.ActionBit(netconfig.ActionAttack)
			}
			if seq%300 == 0 {
				input.Actions |= netconfig.ActionBit(netconfig.ActionDodge)
			}
			if err := client.SendMessage(input); err != nil {
				log.Printf("[probe] send input: %v", err)
			}

			components.LocalActor.Each(world, func(entry *donburi.Entry) {
				data := components.LocalActor.Get(entry)
				data.Prediction.Store(input, data.Actor.Position)
			})
		}
	}
}
