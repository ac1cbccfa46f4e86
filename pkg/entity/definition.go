package entity

import "reflect"

// InitFunc, DeinitFunc, and FrameFunc are the lifecycle hooks a Definition
// may declare. self is the entity the hook runs against; its typed, boxed
// payload is reachable through self.Payload() (§3 "Entity definition").
type (
	InitFunc   func(self *Entity)
	DeinitFunc func(self *Entity)
	FrameFunc  func(self *Entity, elapsedMS int64)
)

// EventCallback is the signature a subscription invokes on publish: the
// subscriber's own payload and the event's payload bytes (§4.3 broker
// "publish"). It lives here, not in package event, so that the Host
// interface below can reference it without entity depending on event.
type EventCallback func(self any, payload []byte)

// Definition describes the shape of an entity: how much payload space it
// reserves (conceptually -- payloads here are boxed Go values, so this is
// advisory bookkeeping rather than a byte count) and its three lifecycle
// hooks, plus an optional link to a parent definition that forms the
// subtype chain used by type queries (§3, §4.1).
type Definition struct {
	// PayloadSize documents the intended payload footprint. It has no
	// runtime effect -- entities carry a boxed any, not an inline byte
	// array -- but callers may use it for introspection the way the C
	// original reports data_size.
	PayloadSize int

	OnInit   InitFunc
	OnDeinit DeinitFunc
	OnFrame  FrameFunc

	// Subtype points at the definition this one refines, or nil at the
	// root of the chain.
	Subtype *Definition
}

// Equal reports whether two definitions describe the same entity shape:
// same payload size, same three hooks (compared by identity, since Go
// functions are not otherwise comparable), and the same subtype (§3:
// "Two definitions are equal iff all four fields match").
func (d *Definition) Equal(other *Definition) bool {
	if d == other {
		return true
	}
	if d == nil || other == nil {
		return false
	}
	return d.PayloadSize == other.PayloadSize &&
		sameFunc(d.OnInit, other.OnInit) &&
		sameFunc(d.OnDeinit, other.OnDeinit) &&
		sameFunc(d.OnFrame, other.OnFrame) &&
		d.Subtype.Equal(other.Subtype)
}

// Chain walks the subtype links starting at d (inclusive) and returns them
// in order, root-most definition last.
func (d *Definition) Chain() []*Definition {
	var out []*Definition
	for cur := d; cur != nil; cur = cur.Subtype {
		out = append(out, cur)
	}
	return out
}

// Is reports whether target appears anywhere in d's subtype chain (§4.1
// "is"): d's own definition, or any definition it subtypes.
func (d *Definition) Is(target *Definition) bool {
	for cur := d; cur != nil; cur = cur.Subtype {
		if cur.Equal(target) {
			return true
		}
	}
	return false
}

func sameFunc(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() {
		return va.IsValid() == vb.IsValid()
	}
	if va.IsNil() || vb.IsNil() {
		return va.IsNil() && vb.IsNil()
	}
	return va.Pointer() == vb.Pointer()
}
