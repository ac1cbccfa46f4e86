// Package entity implements the mutable tree of user-defined nodes: the
// Definition/subtype-chain type system and the Entity node itself, with its
// parent/child composition operations (§3, §4.1).
package entity

import (
	"sort"

	"github.com/cuemby/loom/pkg/ident"
)

// Entity is a node in the tree. Children are keyed by Identifier and kept
// in sorted order so that iteration matches I4 (depth-first, children
// after parent) and P2 (sorted, pairwise-distinct sibling names).
type Entity struct {
	id         ident.Identifier
	parent     *Entity
	children   map[ident.Identifier]*Entity
	childOrder []ident.Identifier // kept sorted; avoids re-sorting the map on every read

	def     *Definition
	payload any

	host Host
}

// newEntity constructs a detached node. Entity.AddChild uses it and then
// performs insertion, on_init, and dirty-marking itself.
func newEntity(id ident.Identifier, def *Definition, payload any, host Host) *Entity {
	return &Entity{
		id:       id,
		children: make(map[ident.Identifier]*Entity),
		def:      def,
		payload:  payload,
		host:     host,
	}
}

// New is the exported constructor for a detached node, used by the engine
// to build the root entity. It does not run on_init; children added with
// AddChild are built by AddChild itself.
func New(id ident.Identifier, def *Definition, payload any, host Host) *Entity {
	return newEntity(id, def, payload, host)
}

// ID returns the entity's name within its parent.
func (e *Entity) ID() ident.Identifier { return e.id }

// Definition returns the entity's own definition (not its subtype chain).
func (e *Entity) Definition() *Definition { return e.def }

// Payload returns the entity's boxed user payload.
func (e *Entity) Payload() any { return e.payload }

// Host returns the owning engine, accept-interfaces style.
func (e *Entity) Host() Host { return e.host }

// Parent returns the non-owning parent reference, nil at the root.
func (e *Entity) Parent() *Entity { return e.parent }

// AddChild inserts name (or an auto-minted variant on collision) as a new
// child of e with the given definition and payload, runs its on_init, and
// marks the active list dirty (§4.1 add_child). Returns nil if e is nil.
func (e *Entity) AddChild(name ident.Identifier, def *Definition, payload any) *Entity {
	if e == nil {
		return nil
	}

	minted := name
	for {
		if _, exists := e.children[minted]; !exists {
			break
		}
		minted = ident.Increment(minted)
	}

	child := newEntity(minted, def, payload, e.host)
	child.parent = e
	e.children[minted] = child
	e.insertSorted(minted)

	if def != nil && def.OnInit != nil {
		def.OnInit(child)
	}
	if e.host != nil {
		e.host.MarkActiveDirty()
	}
	return child
}

func (e *Entity) insertSorted(id ident.Identifier) {
	i := sort.Search(len(e.childOrder), func(i int) bool { return !e.childOrder[i].Less(id) })
	e.childOrder = append(e.childOrder, "")
	copy(e.childOrder[i+1:], e.childOrder[i:])
	e.childOrder[i] = id
}

// Children returns the entity's children in identifier order (I4, P2).
func (e *Entity) Children() []*Entity {
	out := make([]*Entity, len(e.childOrder))
	for i, id := range e.childOrder {
		out[i] = e.children[id]
	}
	return out
}

// ChildNames returns the sorted sibling names, as scenario S1 checks
// directly against `children("/A")`.
func (e *Entity) ChildNames() []ident.Identifier {
	out := make([]ident.Identifier, len(e.childOrder))
	copy(out, e.childOrder)
	return out
}

// GetChild descends by path from e, returning the terminal node only if it
// matches def (or def is nil). An empty path returns e itself (§4.1
// get_child).
func (e *Entity) GetChild(path ident.Path, def *Definition) *Entity {
	cur := e
	for {
		head, rest, ok := path.Head()
		if !ok {
			break
		}
		if cur == nil {
			return nil
		}
		cur = cur.children[head]
		path = rest
	}
	if cur == nil {
		return nil
	}
	if def != nil && !cur.def.Is(def) {
		return nil
	}
	return cur
}

// GetParent walks the parent chain looking for the first ancestor whose
// name matches name (when non-empty) and whose definition chain contains
// def (when non-nil). Either filter may be omitted (§4.1 get_parent).
func (e *Entity) GetParent(name ident.Identifier, def *Definition) *Entity {
	for cur := e.parent; cur != nil; cur = cur.parent {
		if name != "" && cur.id != name {
			continue
		}
		if def != nil && !cur.def.Is(def) {
			continue
		}
		return cur
	}
	return nil
}

// Is reports whether def appears in e's definition chain (§4.1 is).
func (e *Entity) Is(def *Definition) bool {
	return e.def.Is(def)
}

// detachFromParent unlinks e from its parent's children, used by
// annihilation (§3 "unlinks from parent"). It is a package-internal
// helper: public removal goes through queue_remove, never a direct detach.
func (e *Entity) detachFromParent() {
	if e.parent == nil {
		return
	}
	delete(e.parent.children, e.id)
	order := e.parent.childOrder
	for i, id := range order {
		if id == e.id {
			e.parent.childOrder = append(order[:i], order[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// DetachFromParent exposes detachFromParent to the owning engine package,
// which performs it as one step of post-order annihilation (§4.2).
func (e *Entity) DetachFromParent() { e.detachFromParent() }

// RunOnInit invokes the entity's own on_init hook, if declared. Lifecycle
// hooks dispatch only against an entity's own definition, never its
// subtype chain (§4.1: "used only for type queries, never for callback
// dispatch").
func (e *Entity) RunOnInit() {
	if e.def != nil && e.def.OnInit != nil {
		e.def.OnInit(e)
	}
}

// RunOnDeinit invokes the entity's own on_deinit hook, if declared.
func (e *Entity) RunOnDeinit() {
	if e.def != nil && e.def.OnDeinit != nil {
		e.def.OnDeinit(e)
	}
}

// RunOnFrame invokes the entity's own on_frame hook, if declared.
func (e *Entity) RunOnFrame(elapsedMS int64) {
	if e.def != nil && e.def.OnFrame != nil {
		e.def.OnFrame(e, elapsedMS)
	}
}

// Graft runs proc with e as anchor, a convenience for building a subtree
// under e from a reusable procedure (§6 "graft", glossary).
func (e *Entity) Graft(proc func(anchor *Entity, args any), args any) {
	proc(e, args)
}

// QueueRemove asks the owning engine to enqueue e's removal (§4.1
// queue_remove).
func (e *Entity) QueueRemove() {
	if e.host != nil {
		e.host.QueueRemove(e)
	}
}

// QueueSubscribe asks the owning engine to enqueue a subscription command
// on e's behalf (§4.2 "Subscribe semantics").
func (e *Entity) QueueSubscribe(name ident.Identifier, priority int32, cb EventCallback) {
	if e.host != nil {
		e.host.QueueSubscribe(e, name, priority, cb)
	}
}

// StackEvent pushes an event with e as source onto the LIFO event stack
// (§4.3 push).
func (e *Entity) StackEvent(name ident.Identifier, payload []byte, detached bool) {
	if e.host != nil {
		e.host.StackEvent(e, name, payload, detached)
	}
}

// FetchResource resolves a resource through the owning engine's resource
// manager, registering e as a supplicant (§4.4 fetch).
func (e *Entity) FetchResource(archivePath, resourcePath string) ([]byte, bool) {
	if e.host == nil {
		return nil, false
	}
	return e.host.FetchResource(e, archivePath, resourcePath)
}
