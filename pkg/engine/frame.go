package engine

import (
	"context"
	"time"

	"github.com/cuemby/loom/pkg/command"
	"github.com/cuemby/loom/pkg/entity"
	"github.com/cuemby/loom/pkg/event"
	"github.com/cuemby/loom/pkg/metrics"
)

// Run enters the frame loop at the given target rate and blocks until ctx
// is cancelled, an interrupt arrives (the first SIGINT/SIGTERM returns nil
// at the next frame boundary, a second one before that returns
// errAborted), or an entity named "quit" is found in the active list
// (§4.5 "run(fps)").
func (e *Engine) Run(ctx context.Context, fps int) error {
	stopSignals := e.watchSignals()
	defer stopSignals()

	budget := time.Second / time.Duration(fps)
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if e.abortRequested.Load() {
			e.logger.Error().Msg("aborting on second interrupt")
			return errAborted
		}
		if e.quitRequested.Load() {
			e.logger.Info().Msg("graceful quit requested")
			return nil
		}

		frameStart := time.Now()
		elapsedMS := frameStart.Sub(last).Milliseconds()
		last = frameStart

		e.stepFrame(elapsedMS)

		if e.findQuitEntity() {
			e.quitRequested.Store(true)
		}

		spent := time.Since(frameStart)
		metrics.FrameDuration.Observe(spent.Seconds())
		if spent > budget {
			metrics.FrameOverrunsTotal.Inc()
			continue
		}
		time.Sleep(budget - spent)
	}
}

// stepFrame runs one iteration of the per-frame control flow: drain
// commands, drain events to empty, rebuild the active list if dirty, then
// invoke on_frame on every active entity in order (§4.5 "Per frame, in
// order").
func (e *Engine) stepFrame(elapsedMS int64) {
	e.drainCommands()
	e.drainEvents()

	if e.dirty {
		e.rebuildActive()
	}

	for _, ent := range e.active {
		ent.RunOnFrame(elapsedMS)
	}
}

// drainCommands processes exactly the queue length captured at the start
// of the drain; commands enqueued during processing wait for the next
// frame (§4.2 "Processing").
func (e *Engine) drainCommands() {
	toProcess := e.commands.Len()
	metrics.CommandQueueDepth.Set(float64(toProcess))

	for i := 0; i < toProcess; i++ {
		cmd, ok := e.commands.Pop()
		if !ok {
			break
		}
		e.applyCommand(cmd)
	}
}

func (e *Engine) applyCommand(cmd command.Command) {
	switch cmd.Kind {
	case command.KindRemoveEntity:
		metrics.CommandsProcessedTotal.WithLabelValues("remove_entity").Inc()
		e.annihilate(cmd.Target)
	case command.KindSubscribeToEvent:
		metrics.CommandsProcessedTotal.WithLabelValues("subscribe_to_event").Inc()
		e.broker.Subscribe(cmd.EventName, event.Subscription{
			Priority:   cmd.Priority,
			Subscriber: cmd.Subscriber,
			Callback:   cmd.Callback,
		})
	}
}

// drainEvents pops the stack to empty. A callback invoked during publish
// may push more events; those are re-checked in the same frame because the
// loop re-reads Len() after every pop (§4.5 "drain event stack").
func (e *Engine) drainEvents() {
	for e.stack.Len() > 0 {
		ev, ok := e.stack.Pop()
		if !ok {
			break
		}
		metrics.EventsPublishedTotal.WithLabelValues(string(ev.Name)).Inc()
		invoked := e.broker.Publish(ev)
		metrics.EventSubscribersInvokedTotal.Add(float64(invoked))
	}
}

// rebuildActive replaces the cached active-entity list with a fresh
// pre-order traversal of the tree (§3 I4, §4.5 step 3).
func (e *Engine) rebuildActive() {
	e.active = e.active[:0]
	var walk func(*entity.Entity)
	walk = func(ent *entity.Entity) {
		e.active = append(e.active, ent)
		for _, child := range ent.Children() {
			walk(child)
		}
	}
	walk(e.root)
	e.dirty = false
	metrics.EntitiesActive.Set(float64(len(e.active)))
}

func (e *Engine) findQuitEntity() bool {
	for _, ent := range e.active {
		if ent.ID() == quitEntityName {
			return true
		}
	}
	return false
}
