package entity

import "github.com/cuemby/loom/pkg/ident"

// Host is the non-owning back-reference every Entity carries to its owning
// engine (§3 "a non-owning reference to the owning engine"). It is defined
// here, rather than in package engine, so that Entity can hold one without
// this package importing engine -- engine.Engine implements Host
// structurally.
type Host interface {
	// QueueRemove enqueues a RemoveEntity command targeting target.
	QueueRemove(target *Entity)

	// QueueSubscribe enqueues a SubscribeToEvent command on behalf of
	// subscriber.
	QueueSubscribe(subscriber *Entity, name ident.Identifier, priority int32, cb EventCallback)

	// StackEvent pushes an event onto the LIFO event stack, owned by
	// source unless detached binds it to the root.
	StackEvent(source *Entity, name ident.Identifier, payload []byte, detached bool)

	// FetchResource resolves resourcePath inside the archive at
	// archivePath, registering entity as a supplicant. Returns the bytes
	// and true on a hit, or (nil, false) if the archive or the record is
	// absent.
	FetchResource(entity *Entity, archivePath, resourcePath string) ([]byte, bool)

	// MarkActiveDirty flags the engine's cached active-entity list for
	// rebuild on the next frame boundary (§4.5).
	MarkActiveDirty()

	// Log returns a component-scoped logger an entity callback may use.
	Log() Logger
}

// Logger is the minimal structured-logging seam entities and engine
// internals depend on. pkg/log's zerolog wrapper satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}
