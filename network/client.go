package network

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/coder/websocket"
	"github.com/emberworks/brawlcore/shared/messages"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

// Client manages a WebSocket connection to the arena server.
// All shared fields are protected by mu (router callbacks run on necs
// goroutines).
type Client struct {
	mu sync.RWMutex

	state          ClientState
	lastError      error
	networkID      esync.NetworkId
	reconnectToken string
	serverName     string
	tickRate       int
	conn           *websocket.Conn

	snapshotCh chan esync.WorldSnapshot // size-1 buffered; latest wins

	hitCh        chan messages.HitEvent
	deathCh      chan messages.DeathEvent
	reviveCh     chan messages.ReviveEvent
	spawnCh      chan messages.SpawnEvent
	despawnCh    chan messages.DespawnEvent
	parryCh      chan messages.ParryEvent
	guardBreakCh chan messages.GuardBreakEvent
	cooldownCh   chan messages.CooldownEvent
}

func NewClient() *Client {
	return &Client{
		state:        StateDisconnected,
		snapshotCh:   make(chan esync.WorldSnapshot, 1),
		hitCh:        make(chan messages.HitEvent, 8),
		deathCh:      make(chan messages.DeathEvent, 4),
		reviveCh:     make(chan messages.ReviveEvent, 4),
		spawnCh:      make(chan messages.SpawnEvent, 4),
		despawnCh:    make(chan messages.DespawnEvent, 4),
		parryCh:      make(chan messages.ParryEvent, 4),
		guardBreakCh: make(chan messages.GuardBreakEvent, 4),
		cooldownCh:   make(chan messages.CooldownEvent, 8),
	}
}

// Connect dials the server in a background goroutine and initiates the
// join handshake.
func (c *Client) Connect(address, version, playerName string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	token := c.reconnectToken
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		if err := c.SendMessage(messages.JoinRequest{
			Version:        version,
			PlayerName:     playerName,
			ReconnectToken: token,
		}); err != nil {
			c.setError(fmt.Errorf("failed to send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Printf("[client] join accepted: networkID=%d server=%s tickRate=%d",
			msg.NetworkID, msg.ServerName, msg.TickRate)
		c.mu.Lock()
		c.networkID = msg.NetworkID
		c.reconnectToken = msg.ReconnectToken
		c.serverName = msg.ServerName
		c.tickRate = msg.TickRate
		c.state = StateJoinedGame
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[client] join rejected: %s", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select { // drain stale, push latest
		case <-c.snapshotCh:
		default:
		}
		c.snapshotCh <- snapshot
	})

	router.On(func(_ *router.NetworkClient, evt messages.HitEvent) {
		push(c.hitCh, evt)
	})
	router.On(func(_ *router.NetworkClient, evt messages.DeathEvent) {
		push(c.deathCh, evt)
	})
	router.On(func(_ *router.NetworkClient, evt messages.ReviveEvent) {
		push(c.reviveCh, evt)
	})
	router.On(func(_ *router.NetworkClient, evt messages.SpawnEvent) {
		push(c.spawnCh, evt)
	})
	router.On(func(_ *router.NetworkClient, evt messages.DespawnEvent) {
		push(c.despawnCh, evt)
	})
	router.On(func(_ *router.NetworkClient, evt messages.ParryEvent) {
		push(c.parryCh, evt)
	})
	router.On(func(_ *router.NetworkClient, evt messages.GuardBreakEvent) {
		push(c.guardBreakCh, evt)
	})
	router.On(func(_ *router.NetworkClient, evt messages.CooldownEvent) {
		push(c.cooldownCh, evt)
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) NetworkID() esync.NetworkId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.networkID
}

func (c *Client) ServerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverName
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil.
// Non-blocking.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

// DrainHitEvents returns all pending hit events, non-blocking. The other
// drains follow the same contract.
func (c *Client) DrainHitEvents() []messages.HitEvent { return drainChan(c.hitCh) }

func (c *Client) DrainDeathEvents() []messages.DeathEvent { return drainChan(c.deathCh) }

func (c *Client) DrainReviveEvents() []messages.ReviveEvent { return drainChan(c.reviveCh) }

func (c *Client) DrainSpawnEvents() []messages.SpawnEvent { return drainChan(c.spawnCh) }

func (c *Client) DrainDespawnEvents() []messages.DespawnEvent { return drainChan(c.despawnCh) }

func (c *Client) DrainParryEvents() []messages.ParryEvent { return drainChan(c.parryCh) }

func (c *Client) DrainGuardBreakEvents() []messages.GuardBreakEvent {
	return drainChan(c.guardBreakCh)
}

func (c *Client) DrainCooldownEvents() []messages.CooldownEvent { return drainChan(c.cooldownCh) }

func push[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
