// Package core hosts the authoritative simulation: the donburi world, the
// resolv collision space, the fixed-rate loop, and the necs router
// callbacks that bridge clients to their actors.
package core

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"sync"

	"github.com/emberworks/brawlcore/fsm"
	"github.com/emberworks/brawlcore/network"
	"github.com/emberworks/brawlcore/shared/leveldata"
	"github.com/emberworks/brawlcore/shared/messages"
	"github.com/emberworks/brawlcore/tags"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"golang.org/x/time/rate"
)

// session binds one connected client to its actor and per-client guards.
type session struct {
	client    *router.NetworkClient
	entity    donburi.Entity
	netID     uint
	actor     *fsm.Actor
	name      string
	token     string
	limiter   *rate.Limiter
	validator *network.Validator

	lastSeq      uint32
	prevActions  uint16
	lastReportTS int64

	// lastPublished is the snapshot of the previous network tick; the
	// publish path diffs against it and writes only changed fields.
	lastPublished network.Snapshot
}

// Server manages the arena state and client connections.
type Server struct {
	cfg   Config
	arena *leveldata.ArenaData

	world     donburi.World
	space     *resolv.Space
	loop      *GameLoop
	transport *transports.WsServerTransport

	// owners maps each actor to the peer that owns its transform;
	// Authority classifications derive from it on spawn and despawn.
	owners *network.Ownership

	// mu guards sessions, the world, and every actor: router callbacks
	// run on necs goroutines while the loop ticks.
	mu        sync.Mutex
	sessions  map[*router.NetworkClient]*session
	byActorID map[string]*session
	nextSpawn int
}

// NewServer creates the authoritative server over the given arena.
func NewServer(cfg Config, arena *leveldata.ArenaData) *Server {
	world := donburi.NewWorld()

	s := &Server{
		cfg:       cfg,
		arena:     arena,
		world:     world,
		space:     resolv.NewSpace(arena.Width, arena.Height, 16, 16),
		sessions:  make(map[*router.NetworkClient]*session),
		byActorID: make(map[string]*session),
		owners:    network.NewOwnership(true, "", network.OwnerClient),
	}

	for _, wall := range arena.Walls {
		obj := resolv.NewObject(wall.X, wall.Y, wall.W, wall.H, tags.ResolvSolid)
		s.space.Add(obj)
	}

	s.loop = NewGameLoop(s, cfg.PhysicsRate, cfg.TickRate)

	srvsync.UseEsync(world)
	s.setupRouterCallbacks()

	return s
}

// Start begins the loop and the WebSocket transport. Blocks serving the
// transport.
func (s *Server) Start() error {
	go s.loop.Run()
	s.transport = transports.NewWsServerTransport(s.cfg.Port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		// Spawn happens on JoinRequest, not on raw connect.
		log.Printf("[server] client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.onDisconnect(client, err)
	})

	router.On(func(client *router.NetworkClient, msg messages.JoinRequest) {
		s.onJoinRequest(client, msg)
	})

	router.On(func(client *router.NetworkClient, input messages.PlayerInput) {
		s.onPlayerInput(client, input)
	})

	router.On(func(client *router.NetworkClient, req messages.WallJumpRequest) {
		s.onWallJump(client, req)
	})

	router.On(func(client *router.NetworkClient, report messages.TransformReport) {
		s.onTransformReport(client, report)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] client error: %v", err)
	})
}

func (s *Server) onJoinRequest(client *router.NetworkClient, msg messages.JoinRequest) {
	if s.cfg.Version != "" && msg.Version != s.cfg.Version {
		metricJoinRejections.WithLabelValues("version").Inc()
		s.send(client, messages.JoinRejected{Reason: "version mismatch, server requires " + s.cfg.Version})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[client]; ok {
		return // duplicate join
	}
	if len(s.sessions) >= s.cfg.MaxPlayers {
		metricJoinRejections.WithLabelValues("full").Inc()
		s.send(client, messages.JoinRejected{Reason: "server full"})
		return
	}

	token := msg.ReconnectToken
	if token == "" {
		token = newToken()
	}

	sess, err := s.spawnActor(client, msg.PlayerName, token)
	if err != nil {
		log.Printf("[server] spawn failed for client %s: %v", client.Id(), err)
		s.send(client, messages.JoinRejected{Reason: "spawn failed"})
		return
	}

	s.send(client, messages.JoinAccepted{
		NetworkID:      esync.NetworkId(sess.netID),
		ReconnectToken: token,
		ServerName:     s.cfg.Name,
		TickRate:       s.cfg.TickRate,
	})
	s.broadcastLocked(messages.SpawnEvent{
		NetworkID: sess.netID,
		ActorID:   sess.actor.ID,
		X:         sess.actor.Position.X,
		Y:         sess.actor.Position.Y,
	})
	metricConnectedPlayers.Set(float64(len(s.sessions)))
	log.Printf("[server] player %q joined as actor %s (net %d)", msg.PlayerName, sess.actor.ID, sess.netID)
}

func (s *Server) onDisconnect(client *router.NetworkClient, err error) {
	if err != nil {
		log.Printf("[server] client %s disconnected with error: %v", client.Id(), err)
	} else {
		log.Printf("[server] client %s disconnected", client.Id())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[client]
	if !ok {
		return
	}
	s.despawnActor(sess)
	metricConnectedPlayers.Set(float64(len(s.sessions)))
	s.broadcastLocked(messages.DespawnEvent{NetworkID: sess.netID})
}

// send serializes and delivers one message to one client.
func (s *Server) send(client *router.NetworkClient, msg any) {
	if err := client.SendMessage(msg); err != nil {
		log.Printf("[server] send to %s failed: %v", client.Id(), err)
	}
}

// broadcastLocked delivers a message to every session. Caller holds s.mu.
func (s *Server) broadcastLocked(msg any) {
	for _, sess := range s.sessions {
		s.send(sess.client, msg)
	}
}

// World returns the ECS world.
func (s *Server) World() donburi.World {
	return s.world
}

// PlayerCount returns the number of joined players.
func (s *Server) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func newToken() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return ""
	}
	return hex.EncodeToString(b[:])
}
