package fsm

import "github.com/emberworks/brawlcore/shared/netconfig"

// comboQueue holds the pending tail of a combo chain plus the deadline by
// which the next step must begin. Continuation is strictly FIFO.
type comboQueue struct {
	pending  []netconfig.StateID
	deadline float64
	active   bool
	steps    []netconfig.StateID // Full chain, for lifecycle events
}

func (q *comboQueue) start(steps []netconfig.StateID, deadline float64) {
	q.pending = append(q.pending[:0], steps[1:]...)
	q.steps = append(q.steps[:0], steps...)
	q.deadline = deadline
	q.active = true
}

func (q *comboQueue) push(id netconfig.StateID, deadline float64) {
	q.pending = append(q.pending, id)
	q.deadline = deadline
	q.active = true
}

// pop removes and returns the next queued step.
func (q *comboQueue) pop() (netconfig.StateID, bool) {
	if len(q.pending) == 0 {
		return netconfig.StateNone, false
	}
	head := q.pending[0]
	q.pending = q.pending[1:]
	return head, true
}

func (q *comboQueue) expired(now float64) bool {
	return q.active && now > q.deadline
}

func (q *comboQueue) clear() {
	q.pending = q.pending[:0]
	q.steps = q.steps[:0]
	q.active = false
}
