package event

import (
	"github.com/cuemby/loom/pkg/entity"
	"github.com/cuemby/loom/pkg/ident"
)

// Stack is the LIFO of pending events the frame scheduler drains each
// frame (§4.3 "Stack (LIFO)").
type Stack struct {
	items []Event
}

// NewStack returns an empty event stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push allocates a copy of payload and attaches it to owner, at the top of
// the stack. detached binding (owner == root) is decided by the caller,
// matching "push(source, name, size, bytes, detached)": detached=true
// binds the event to the root so it survives removal of the originator.
func (s *Stack) Push(owner *entity.Entity, name ident.Identifier, payload []byte) {
	cp := append([]byte(nil), payload...)
	s.items = append(s.items, Event{Name: name, Payload: cp, Owner: owner})
}

// Pop yields the most recently pushed event. ok is false on an empty
// stack.
func (s *Stack) Pop() (Event, bool) {
	if len(s.items) == 0 {
		return Event{}, false
	}
	i := len(s.items) - 1
	ev := s.items[i]
	s.items = s.items[:i]
	return ev, true
}

// Len reports the number of pending events.
func (s *Stack) Len() int {
	return len(s.items)
}

// RemoveEventsOf drops every pending event owned by e, used during
// annihilation so a dying entity's in-flight events cannot be delivered
// after it is gone (§4.2 "remove its events from the event stack").
func (s *Stack) RemoveEventsOf(e *entity.Entity) {
	kept := s.items[:0]
	for _, ev := range s.items {
		if ev.Owner != e {
			kept = append(kept, ev)
		}
	}
	s.items = kept
}
