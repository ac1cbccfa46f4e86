package engine

import (
	"github.com/cuemby/loom/pkg/entity"
	"github.com/cuemby/loom/pkg/metrics"
)

// Stats reports a point-in-time introspection snapshot, satisfying
// metrics.Snapshotter structurally so the metrics package never imports
// engine (§9 "Engine debug/introspection surface").
func (e *Engine) Stats() metrics.Stats {
	return metrics.Stats{
		EntitiesActive:         len(e.active),
		EntitiesTotal:          countEntities(e.root),
		CommandQueueDepth:      e.commands.Len(),
		ResourceStoragesLoaded: e.resources.LoadedCount(),
	}
}

func countEntities(ent *entity.Entity) int {
	total := 1
	for _, child := range ent.Children() {
		total += countEntities(child)
	}
	return total
}
