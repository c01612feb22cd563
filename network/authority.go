package network

import (
	"log"
	"sync"

	"github.com/emberworks/brawlcore/shared/netconfig"
)

// OwnershipPolicy selects who owns player-controlled actor transforms.
type OwnershipPolicy int

const (
	// OwnerServer: the server simulates every actor (full authority).
	OwnerServer OwnershipPolicy = iota
	// OwnerClient: each peer owns its player's transform; the server
	// validates reports instead of simulating movement.
	OwnerClient
)

// Ownership derives each actor's Authority classification from the session
// role, the configured policy, and the per-peer owner map. It mutates
// classifications only on connect/disconnect/ownership-change events, never
// mid-tick. Guarded by a mutex because session events arrive on transport
// goroutines while reads happen on the simulation loop.
type Ownership struct {
	mu sync.RWMutex

	isServer  bool
	localPeer string
	policy    OwnershipPolicy
	owners    map[string]string // actor id -> owning peer id
}

func NewOwnership(isServer bool, localPeer string, policy OwnershipPolicy) *Ownership {
	return &Ownership{
		isServer:  isServer,
		localPeer: localPeer,
		policy:    policy,
		owners:    make(map[string]string),
	}
}

// Assign records the owning peer for an actor, on spawn or explicit
// ownership reassignment.
func (o *Ownership) Assign(actorID, peerID string) {
	o.mu.Lock()
	prev, had := o.owners[actorID]
	o.owners[actorID] = peerID
	o.mu.Unlock()
	if had && prev != peerID {
		log.Printf("[net] actor %s ownership moved %s -> %s", actorID, prev, peerID)
	}
}

// Release drops an actor's ownership on despawn or peer disconnect.
func (o *Ownership) Release(actorID string) {
	o.mu.Lock()
	delete(o.owners, actorID)
	o.mu.Unlock()
}

// Owner returns the owning peer of an actor, if assigned.
func (o *Ownership) Owner(actorID string) (string, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	peer, ok := o.owners[actorID]
	return peer, ok
}

// Classify returns the Authority of an actor as seen from this side.
func (o *Ownership) Classify(actorID string) netconfig.Authority {
	o.mu.RLock()
	defer o.mu.RUnlock()

	owner, owned := o.owners[actorID]
	if o.isServer {
		if o.policy == OwnerClient && owned && owner != "" {
			return netconfig.RemoteAuthority
		}
		return netconfig.ServerAuthority
	}
	if o.policy == OwnerClient && owned && owner == o.localPeer {
		return netconfig.LocalAuthority
	}
	return netconfig.RemoteAuthority
}
