package engine

import "github.com/cuemby/loom/pkg/entity"

// annihilate destroys target and every descendant, post-order. For each
// node, in order: on_deinit, withdraw from resource storages, purge its
// stack events, purge its queued commands, unsubscribe it from every
// subscription list, detach from parent (§4.2 "Remove semantics", §3
// "Entity" destruction order).
func (e *Engine) annihilate(target *entity.Entity) {
	if target == nil || target == e.root {
		return
	}

	for _, child := range target.Children() {
		e.annihilate(child)
	}

	target.RunOnDeinit()
	e.resources.Withdraw(target)
	e.stack.RemoveEventsOf(target)
	e.commands.RemoveCommandsOf(target)
	e.broker.UnsubscribeAll(target)
	target.DetachFromParent()

	e.dirty = true
}
