// Package command implements the deferred-mutation pipe that keeps the
// entity tree stable while it is being iterated: callers enqueue tree and
// subscription mutations, and the engine drains and applies them once per
// frame (§4.2).
package command

import (
	"github.com/cuemby/loom/pkg/entity"
	"github.com/cuemby/loom/pkg/ident"
)

// Kind tags which variant a Command carries.
type Kind int

const (
	KindRemoveEntity Kind = iota
	KindSubscribeToEvent
)

// Command is a tagged variant: RemoveEntity{target} or
// SubscribeToEvent{subscriber, event_name, subscription} (§3 "Command").
// Source is the originating entity, possibly nil to mean the root.
type Command struct {
	Kind   Kind
	Source *entity.Entity

	// RemoveEntity fields.
	Target *entity.Entity

	// SubscribeToEvent fields.
	Subscriber *entity.Entity
	EventName  ident.Identifier
	Priority   int32
	Callback   entity.EventCallback
}

// RemoveEntity builds a Command requesting target's removal, originating
// from source (possibly nil = root).
func RemoveEntity(source, target *entity.Entity) Command {
	return Command{Kind: KindRemoveEntity, Source: source, Target: target}
}

// SubscribeToEvent builds a Command requesting subscriber be added to the
// named event's subscription list at the given priority.
func SubscribeToEvent(source, subscriber *entity.Entity, name ident.Identifier, priority int32, cb entity.EventCallback) Command {
	return Command{
		Kind:       KindSubscribeToEvent,
		Source:     source,
		Subscriber: subscriber,
		EventName:  name,
		Priority:   priority,
		Callback:   cb,
	}
}

// references reports whether the command carries any reference to e, used
// by Queue.RemoveCommandsOf to purge in-flight commands during annihilation
// (§4.2: "invoked when an entity is being annihilated so that in-flight
// commands cannot resurrect references to dead memory").
func (c Command) references(e *entity.Entity) bool {
	return c.Source == e || c.Target == e || c.Subscriber == e
}
