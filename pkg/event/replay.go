package event

import (
	"github.com/cuemby/loom/pkg/entity"
	"github.com/cuemby/loom/pkg/ident"
)

// ReplayBuffer collects upstream events (arriving in their own natural
// order, e.g. an input device's poll order) and flushes them onto a LIFO
// Stack in reverse, so the first-arrived buffered event is the first one
// popped off the stack -- FIFO semantics preserved through a LIFO sink
// (§4.3 "SDL-style event replay").
//
// This generalizes the one-off SDL input relay in the source material into
// a reusable piece any upstream producer can drive.
type ReplayBuffer struct {
	pending []bufferedEvent
}

type bufferedEvent struct {
	owner   *entity.Entity
	name    ident.Identifier
	payload []byte
}

// Buffer appends an event to the pending batch in arrival order.
func (r *ReplayBuffer) Buffer(owner *entity.Entity, name ident.Identifier, payload []byte) {
	r.pending = append(r.pending, bufferedEvent{owner: owner, name: name, payload: payload})
}

// Flush pushes the buffered batch onto stack in reverse arrival order and
// clears the buffer. Because the stack pops most-recently-pushed first,
// pushing in reverse makes the earliest-buffered event the first one
// delivered.
func (r *ReplayBuffer) Flush(stack *Stack) {
	for i := len(r.pending) - 1; i >= 0; i-- {
		b := r.pending[i]
		stack.Push(b.owner, b.name, b.payload)
	}
	r.pending = r.pending[:0]
}

// Len reports the number of events currently buffered, awaiting Flush.
func (r *ReplayBuffer) Len() int {
	return len(r.pending)
}
