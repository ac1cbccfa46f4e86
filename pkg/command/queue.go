package command

import "github.com/cuemby/loom/pkg/entity"

// Queue is a FIFO of deferred commands. The engine's drain step processes
// exactly the length captured at the start of the drain; anything enqueued
// during processing waits for the next frame (§4.2 "Processing").
type Queue struct {
	items []Command
}

// NewQueue returns an empty command queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push enqueues c at the tail.
func (q *Queue) Push(c Command) {
	q.items = append(q.items, c)
}

// Pop removes and returns the head of the queue. ok is false on an empty
// queue.
func (q *Queue) Pop() (Command, bool) {
	if len(q.items) == 0 {
		return Command{}, false
	}
	c := q.items[0]
	q.items = q.items[1:]
	return c, true
}

// Len reports the number of pending commands.
func (q *Queue) Len() int {
	return len(q.items)
}

// RemoveCommandsOf drops every pending command that references e, by any
// role (source, target, or subscriber). Used during annihilation so that a
// dying entity cannot be resurrected by a command still in flight (§4.2).
func (q *Queue) RemoveCommandsOf(e *entity.Entity) {
	kept := q.items[:0]
	for _, c := range q.items {
		if !c.references(e) {
			kept = append(kept, c)
		}
	}
	q.items = kept
}
