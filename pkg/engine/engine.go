// Package engine owns the entity tree, the command queue, the event
// broker and stack, and the resource manager, and drives them with the
// single-threaded cooperative frame scheduler described in §4.5.
package engine

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cuemby/loom/pkg/command"
	"github.com/cuemby/loom/pkg/entity"
	"github.com/cuemby/loom/pkg/event"
	"github.com/cuemby/loom/pkg/ident"
	"github.com/cuemby/loom/pkg/log"
	"github.com/cuemby/loom/pkg/metrics"
	"github.com/cuemby/loom/pkg/resource"
)

// quitEntityName is the sentinel child name run() watches for each frame:
// an entity anywhere in the active list named "quit" requests a graceful
// shutdown at the next frame boundary (§4.5 "terminates when ... any
// entity called quit").
const quitEntityName = ident.Identifier("quit")

// Engine owns every core subsystem and runs the frame loop (§3 "Engine").
type Engine struct {
	id uuid.UUID

	root      *entity.Entity
	commands  *command.Queue
	broker    *event.Broker
	stack     *event.Stack
	resources *resource.Manager

	active []*entity.Entity
	dirty  bool

	logger zerolog.Logger

	quitRequested  atomic.Bool
	abortRequested atomic.Bool
}

// New constructs an engine with an empty root entity and the given
// resource manager configuration (§6 "create").
func New(resourceRoot string, mode resource.Mode) *Engine {
	e := &Engine{
		id:        uuid.New(),
		commands:  command.NewQueue(),
		broker:    event.NewBroker(),
		stack:     event.NewStack(),
		resources: resource.NewManager(resourceRoot, mode),
		dirty:     true,
		logger:    log.WithComponent("engine"),
	}
	e.root = entity.New("", nil, nil, e)
	e.root.RunOnInit()
	return e
}

// RootEntity returns the tree's root (§6 "root_entity").
func (e *Engine) RootEntity() *entity.Entity { return e.root }

// ID returns the engine instance's unique identifier, used to tag logs
// and metrics from multiple engines running in the same process (tests,
// embedding scenarios).
func (e *Engine) ID() uuid.UUID { return e.id }

// DeclareResource forwards to the resource manager (§6 "declare_resource").
func (e *Engine) DeclareResource(archivePath, sourceFilePath string) bool {
	return e.resources.Declare(archivePath, sourceFilePath)
}

// --- entity.Host ---

// QueueRemove enqueues a RemoveEntity command. Removing the root is a
// Fatal error: logged and ignored (§4.1 "queue_remove", §7 "Fatal").
func (e *Engine) QueueRemove(target *entity.Entity) {
	if target == nil {
		return
	}
	if target == e.root {
		e.logger.Error().Msg("refusing to queue removal of root entity")
		return
	}
	e.commands.Push(command.RemoveEntity(target, target))
}

// QueueSubscribe enqueues a SubscribeToEvent command. The originating
// entity is the subscriber itself, since the public API only ever
// requests a subscription on behalf of the caller (§4.2 "Subscribe
// semantics").
func (e *Engine) QueueSubscribe(subscriber *entity.Entity, name ident.Identifier, priority int32, cb entity.EventCallback) {
	e.commands.Push(command.SubscribeToEvent(subscriber, subscriber, name, priority, cb))
}

// StackEvent pushes an event onto the LIFO stack, bound to source unless
// detached binds it to the root (§4.3 "push").
func (e *Engine) StackEvent(source *entity.Entity, name ident.Identifier, payload []byte, detached bool) {
	owner := source
	if detached {
		owner = e.root
	}
	e.stack.Push(owner, name, payload)
}

// FetchResource forwards to the resource manager, registering entity as a
// supplicant (§4.4 "Fetch").
func (e *Engine) FetchResource(ent *entity.Entity, archivePath, resourcePath string) ([]byte, bool) {
	data, ok := e.resources.Fetch(ent, archivePath, resourcePath)
	if ok {
		metrics.ResourceFetchesTotal.WithLabelValues("hit").Inc()
	} else {
		metrics.ResourceFetchesTotal.WithLabelValues("miss").Inc()
	}
	return data, ok
}

// MarkActiveDirty flags the cached active-entity list for rebuild on the
// next frame boundary.
func (e *Engine) MarkActiveDirty() {
	e.dirty = true
}

// Log returns the engine's own component logger, wrapped to satisfy
// entity.Logger.
func (e *Engine) Log() entity.Logger {
	return log.EntityLogger{Wrapped: e.logger}
}

// Destroy tears down every entity in the tree, post-order, the same way an
// individual removal does, then runs the root's own on_deinit and closes
// the resource manager (§3 "destroyed ... when the engine shuts down
// (post-order)", §6 "destroy").
func (e *Engine) Destroy() {
	for _, child := range e.root.Children() {
		e.annihilate(child)
	}
	e.root.RunOnDeinit()
	e.resources.Close()
	e.logger.Info().Msg("engine destroyed")
}
