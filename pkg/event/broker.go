package event

import (
	"github.com/cuemby/loom/pkg/entity"
	"github.com/cuemby/loom/pkg/ident"
)

// Broker holds a subscription list per event name and dispatches publishes
// to it in priority order (§4.3 "Broker").
type Broker struct {
	lists map[ident.Identifier]*SubscriptionList
}

// NewBroker returns an empty broker.
func NewBroker() *Broker {
	return &Broker{lists: make(map[ident.Identifier]*SubscriptionList)}
}

// Subscribe appends sub to name's list, creating the list if absent (§4.2
// "Subscribe semantics").
func (b *Broker) Subscribe(name ident.Identifier, sub Subscription) {
	l, ok := b.lists[name]
	if !ok {
		l = &SubscriptionList{}
		b.lists[name] = l
	}
	l.Add(sub)
}

// Unsubscribe removes the matching entry from name's list and runs
// empty-list GC.
func (b *Broker) Unsubscribe(name ident.Identifier, sub Subscription) bool {
	l, ok := b.lists[name]
	if !ok {
		return false
	}
	removed := l.Remove(sub)
	b.gc(name, l)
	return removed
}

// UnsubscribeAll scans every list and removes every entry belonging to
// subscriber (§4.3 "unsubscribe_all"), then runs empty-list GC.
func (b *Broker) UnsubscribeAll(subscriber *entity.Entity) {
	for name, l := range b.lists {
		l.RemoveSubscriber(subscriber)
		b.gc(name, l)
	}
}

func (b *Broker) gc(name ident.Identifier, l *SubscriptionList) {
	if l.Empty() {
		delete(b.lists, name)
	}
}

// Publish finds the list for ev.Name and invokes every callback in
// priority order, passing the subscriber's own payload and the event's
// payload (§4.3 "publish"). It returns the number of callbacks actually
// invoked, so callers can feed subscriber-invocation metrics.
func (b *Broker) Publish(ev Event) int {
	l, ok := b.lists[ev.Name]
	if !ok {
		return 0
	}
	// Snapshot before invoking: a callback may subscribe or unsubscribe,
	// which must not perturb the in-flight delivery.
	entries := append([]Subscription(nil), l.Entries()...)
	invoked := 0
	for _, sub := range entries {
		if sub.Callback == nil {
			continue
		}
		sub.Callback(sub.Subscriber.Payload(), ev.Payload)
		invoked++
	}
	return invoked
}

// HasSubscribers reports whether name currently has a non-empty list,
// useful for introspection and tests.
func (b *Broker) HasSubscribers(name ident.Identifier) bool {
	l, ok := b.lists[name]
	return ok && !l.Empty()
}
