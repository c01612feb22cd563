package fsm

import (
	"log"

	"github.com/emberworks/brawlcore/config"
	"github.com/emberworks/brawlcore/events"
	"github.com/emberworks/brawlcore/shared/gamemath"
	"github.com/emberworks/brawlcore/shared/netconfig"
)

// Machine arbitrates control-state transitions for one actor. It never
// leaves the actor without an active state: invalid requests are absorbed,
// logged where they indicate a bug, and the machine stays where it was.
type Machine struct {
	actor *Actor

	registry map[netconfig.StateID]Policy
	current  Policy
	previous netconfig.StateID

	clock   float64 // Total simulation seconds seen by this machine
	elapsed float64 // Seconds in the current state

	combo        comboQueue
	buffer       *InputBuffer
	serverBuffer *InputBuffer
	sched        Scheduler

	bus *events.Bus
}

// NewMachine builds a machine for the actor. Policies must be registered
// and Reset called before the first tick.
func NewMachine(a *Actor, bus *events.Bus) *Machine {
	return &Machine{
		actor:        a,
		registry:     make(map[netconfig.StateID]Policy),
		previous:     netconfig.StateNone,
		buffer:       NewInputBuffer(config.Buffering.InputWindow),
		serverBuffer: NewInputBuffer(config.Buffering.InputWindow),
		bus:          bus,
	}
}

// Register adds a policy to the registry.
func (m *Machine) Register(p Policy) {
	m.registry[p.ID()] = p
}

// Reset force-enters the default state without firing exit hooks. Called
// once at spawn.
func (m *Machine) Reset() {
	p, ok := m.registry[config.DefaultState]
	if !ok {
		log.Printf("[fsm] actor %s: default state %v not registered", m.actor.ID, config.DefaultState)
		return
	}
	m.current = p
	m.elapsed = 0
	p.Enter(m.actor, nil)
}

// ChangeState validates a transition request. Accepted when forced, or when
// the current state is interruptible, the target outranks it, and the
// current state does not veto the target. On acceptance the outgoing exit
// hook runs, its payload is handed to the incoming entry hook, and a
// transition event is emitted. On rejection this is a no-op returning false.
func (m *Machine) ChangeState(id netconfig.StateID, force bool) bool {
	next, ok := m.registry[id]
	if !ok {
		log.Printf("[fsm] actor %s: change to unknown state %v ignored", m.actor.ID, id)
		return false
	}
	if m.current == nil {
		m.current = next
		m.elapsed = 0
		next.Enter(m.actor, nil)
		return true
	}

	curID := m.current.ID()
	curDef := config.States[curID]
	targetDef := config.States[id]

	if !force {
		if !curDef.Interruptible {
			return false
		}
		if targetDef.Priority <= curDef.Priority {
			return false
		}
		if !curDef.CanTransitionTo(id) {
			return false
		}
	}

	payload := m.current.Exit(m.actor)
	m.previous = curID
	m.current = next
	m.elapsed = 0
	next.Enter(m.actor, payload)

	// Death invalidates whatever chain was queued; only an explicit
	// revive leaves Dead, never a combo continuation.
	if id == netconfig.Dead {
		m.combo.clear()
	}

	m.publish(events.Event{
		Type:    events.TypeTransition,
		ActorID: m.actor.ID,
		Payload: events.TransitionPayload{From: curID, To: id, Forced: force},
	})
	return true
}

// CanChangeTo reports whether an unforced transition request to id would
// be accepted right now, without performing it.
func (m *Machine) CanChangeTo(id netconfig.StateID) bool {
	if _, ok := m.registry[id]; !ok {
		return false
	}
	if m.current == nil {
		return true
	}
	curDef := config.States[m.current.ID()]
	targetDef := config.States[id]
	return curDef.Interruptible &&
		targetDef.Priority > curDef.Priority &&
		curDef.CanTransitionTo(id)
}

// QueueState appends a state to the combo queue and refreshes the deadline.
func (m *Machine) QueueState(id netconfig.StateID) {
	if _, ok := m.registry[id]; !ok {
		log.Printf("[fsm] actor %s: queue of unknown state %v ignored", m.actor.ID, id)
		return
	}
	m.combo.push(id, m.clock+config.Buffering.ComboWindow)
}

// StartCombo force-transitions into the first step and queues the rest.
func (m *Machine) StartCombo(steps ...netconfig.StateID) bool {
	if len(steps) == 0 {
		return false
	}
	for _, id := range steps {
		if _, ok := m.registry[id]; !ok {
			log.Printf("[fsm] actor %s: combo with unknown state %v ignored", m.actor.ID, id)
			return false
		}
	}
	m.combo.start(steps, m.clock+config.Buffering.ComboWindow)
	if !m.ChangeState(steps[0], true) {
		m.combo.clear()
		return false
	}
	m.publish(events.Event{
		Type:    events.TypeComboStarted,
		ActorID: m.actor.ID,
		Payload: events.ComboPayload{Steps: append([]netconfig.StateID(nil), steps...)},
	})
	return true
}

// CompleteCurrentState advances to the combo head when one is queued,
// resetting the combo deadline; otherwise it returns to the default state.
func (m *Machine) CompleteCurrentState() {
	if next, ok := m.combo.pop(); ok {
		m.combo.deadline = m.clock + config.Buffering.ComboWindow
		m.ChangeState(next, true)
		return
	}
	if m.combo.active {
		m.publish(events.Event{
			Type:    events.TypeComboCompleted,
			ActorID: m.actor.ID,
			Payload: events.ComboPayload{Steps: append([]netconfig.StateID(nil), m.combo.steps...)},
		})
		m.combo.clear()
	}
	m.ChangeState(config.DefaultState, true)
}

// Update is the variable-rate frame tick: combo deadline, buffer expiry,
// and the active state's frame hook.
func (m *Machine) Update(dt float64) {
	m.clock += dt
	m.elapsed += dt

	if m.combo.expired(m.clock) {
		m.publish(events.Event{
			Type:    events.TypeComboDropped,
			ActorID: m.actor.ID,
			Payload: events.ComboPayload{Steps: append([]netconfig.StateID(nil), m.combo.steps...)},
		})
		m.combo.clear()
		// Only yank an interruptible state back to default; a stun, roll,
		// or death that pre-empted the chain keeps running its course.
		if m.current != nil && config.States[m.current.ID()].Interruptible {
			m.ChangeState(config.DefaultState, true)
		}
	}

	m.buffer.Prune(m.clock)
	m.serverBuffer.Prune(m.clock)

	if m.current != nil {
		m.current.Update(m.actor, dt)
	}
}

// PhysicsUpdate is the fixed-rate tick: scheduled deadlines and the active
// state's physics hook.
func (m *Machine) PhysicsUpdate(dt float64) {
	m.sched.Run(m.clock)
	if m.current != nil {
		m.current.PhysicsUpdate(m.actor, dt)
	}
}

// BufferInput records a local action press tagged with the actor's current
// movement vector.
func (m *Machine) BufferInput(action netconfig.ActionID) {
	m.buffer.Press(InputEntry{Action: action, At: m.clock, Move: m.actor.MoveIntent})
}

// BufferServerAction records an action that arrived over the network,
// deduplicated unless it carries a distinguishing payload.
func (m *Machine) BufferServerAction(action netconfig.ActionID, move gamemath.Vector, payload gamemath.Vector, hasPayload bool) {
	m.serverBuffer.PressDeduplicated(InputEntry{
		Action:     action,
		At:         m.clock,
		Move:       move,
		Payload:    payload,
		HasPayload: hasPayload,
	})
}

// ConsumeBuffered returns the oldest live press of the action, preferring
// the server-side buffer when both hold one. At-most-once per entry.
func (m *Machine) ConsumeBuffered(action netconfig.ActionID) (InputEntry, bool) {
	if e, ok := m.serverBuffer.Consume(action, m.clock); ok {
		return e, true
	}
	return m.buffer.Consume(action, m.clock)
}

// HasBuffered reports whether a live press exists without consuming it.
func (m *Machine) HasBuffered(action netconfig.ActionID) bool {
	return m.serverBuffer.Peek(action, m.clock) || m.buffer.Peek(action, m.clock)
}

// Schedule runs fn after delay seconds of machine time.
func (m *Machine) Schedule(delay float64, fn func()) {
	m.sched.After(m.clock, delay, fn)
}

// IsInState reports whether the given state is active.
func (m *Machine) IsInState(id netconfig.StateID) bool {
	return m.current != nil && m.current.ID() == id
}

// CurrentState returns the active state id.
func (m *Machine) CurrentState() netconfig.StateID {
	if m.current == nil {
		return netconfig.StateNone
	}
	return m.current.ID()
}

// CurrentStateName returns the active state's wire/animation name.
func (m *Machine) CurrentStateName() string {
	return m.CurrentState().String()
}

// PreviousState returns the state active before the last transition.
func (m *Machine) PreviousState() netconfig.StateID {
	return m.previous
}

// TimeInState returns seconds since the last accepted transition.
func (m *Machine) TimeInState() float64 {
	return m.elapsed
}

// Now returns the machine clock in seconds.
func (m *Machine) Now() float64 {
	return m.clock
}

// ComboActive reports whether a combo chain is in flight.
func (m *Machine) ComboActive() bool {
	return m.combo.active
}

func (m *Machine) publish(e events.Event) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}
