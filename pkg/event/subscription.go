package event

import (
	"reflect"
	"sort"

	"github.com/cuemby/loom/pkg/entity"
)

// Subscription binds a subscriber entity and callback to one priority slot
// on a named event (§3 "Subscription"). Lower priority fires earlier.
type Subscription struct {
	Priority   int32
	Subscriber *entity.Entity
	Callback   entity.EventCallback
}

// equal compares subscriptions by (subscriber, priority, callback), the
// identity the design notes call for precise unsubscribe (§9 "Subscription
// identity"). Callbacks are Go funcs, so identity is compared by pointer.
func (s Subscription) equal(other Subscription) bool {
	if s.Priority != other.Priority || s.Subscriber != other.Subscriber {
		return false
	}
	a, b := reflect.ValueOf(s.Callback), reflect.ValueOf(other.Callback)
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	return a.Pointer() == b.Pointer()
}

// SubscriptionList holds every subscription registered for one event name,
// kept ordered by ascending priority with ties broken by subscription
// order (P5).
type SubscriptionList struct {
	entries []Subscription
}

// Add inserts sub, preserving ascending-priority order and FIFO order
// among equal priorities: the insertion point is placed after every
// existing entry whose priority is <= sub.Priority.
func (l *SubscriptionList) Add(sub Subscription) {
	i := sort.Search(len(l.entries), func(i int) bool { return l.entries[i].Priority > sub.Priority })
	l.entries = append(l.entries, Subscription{})
	copy(l.entries[i+1:], l.entries[i:])
	l.entries[i] = sub
}

// Remove drops the first entry equal to sub, reporting whether one was
// found.
func (l *SubscriptionList) Remove(sub Subscription) bool {
	for i, s := range l.entries {
		if s.equal(sub) {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveSubscriber drops every entry belonging to subscriber, used by
// unsubscribe_all and by annihilation.
func (l *SubscriptionList) RemoveSubscriber(subscriber *entity.Entity) {
	kept := l.entries[:0]
	for _, s := range l.entries {
		if s.Subscriber != subscriber {
			kept = append(kept, s)
		}
	}
	l.entries = kept
}

// Empty reports whether the list has no subscriptions left, the condition
// the broker's empty-list GC checks for (§4.3 "Empty-list GC").
func (l *SubscriptionList) Empty() bool {
	return len(l.entries) == 0
}

// Entries returns the subscriptions in fire order.
func (l *SubscriptionList) Entries() []Subscription {
	return l.entries
}
