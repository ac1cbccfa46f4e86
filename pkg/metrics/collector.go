package metrics

import "time"

// Stats is the introspection snapshot a Snapshotter reports each
// collection tick. It mirrors the counters the engine already tracks for
// its own Stats() surface, so the collector has nothing to compute on its
// own -- it only republishes them as gauges.
type Stats struct {
	EntitiesActive         int
	EntitiesTotal          int
	CommandQueueDepth      int
	ResourceStoragesLoaded int
}

// Snapshotter is the seam the collector depends on instead of importing
// the engine package directly, the same accept-interfaces trick used by
// entity.Host: avoids a metrics <-> engine import cycle while letting
// engine.Engine satisfy it structurally.
type Snapshotter interface {
	Stats() Stats
}

// Collector periodically pulls a Stats snapshot and republishes it as
// Prometheus gauges.
type Collector struct {
	source Snapshotter
	stopCh chan struct{}
}

// NewCollector creates a collector over source.
func NewCollector(source Snapshotter) *Collector {
	return &Collector{
		source: source,
		stopCh: make(chan struct{}),
	}
}

// Start begins collecting on a fixed interval.
func (c *Collector) Start(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		c.collect()
		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop halts the collector.
func (c *Collector) Stop() {
	close(c.stopCh)
}

func (c *Collector) collect() {
	s := c.source.Stats()
	EntitiesActive.Set(float64(s.EntitiesActive))
	EntitiesTotal.Set(float64(s.EntitiesTotal))
	CommandQueueDepth.Set(float64(s.CommandQueueDepth))
	ResourceStoragesLoaded.Set(float64(s.ResourceStoragesLoaded))
}
