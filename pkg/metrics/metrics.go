package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Tree metrics
	EntitiesActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "loom_entities_active",
			Help: "Number of entities in the current active-entity list",
		},
	)

	EntitiesTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "loom_entities_total",
			Help: "Total number of entities currently in the tree",
		},
	)

	// Command queue metrics
	CommandsProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loom_commands_processed_total",
			Help: "Total number of commands drained from the command queue, by kind",
		},
		[]string{"kind"},
	)

	CommandQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "loom_command_queue_depth",
			Help: "Number of commands pending, sampled at the start of each drain and on each collector tick",
		},
	)

	// Event metrics
	EventsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loom_events_published_total",
			Help: "Total number of events popped off the event stack and published, by name",
		},
		[]string{"name"},
	)

	EventSubscribersInvokedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "loom_event_subscribers_invoked_total",
			Help: "Total number of subscription callbacks invoked across all publishes",
		},
	)

	// Resource metrics
	ResourceStoragesLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "loom_resource_storages_loaded",
			Help: "Number of archive storages currently loaded in memory",
		},
	)

	ResourceFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loom_resource_fetches_total",
			Help: "Total number of resource fetch calls, partitioned by hit/miss",
		},
		[]string{"result"},
	)

	// Frame scheduler metrics
	FrameDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "loom_frame_duration_seconds",
			Help:    "Wall-clock time spent processing one frame (commands + events + on_frame)",
			Buckets: prometheus.DefBuckets,
		},
	)

	FrameOverrunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "loom_frame_overruns_total",
			Help: "Total number of frames whose processing time exceeded the frame budget",
		},
	)
)

func init() {
	prometheus.MustRegister(EntitiesActive)
	prometheus.MustRegister(EntitiesTotal)
	prometheus.MustRegister(CommandsProcessedTotal)
	prometheus.MustRegister(CommandQueueDepth)
	prometheus.MustRegister(EventsPublishedTotal)
	prometheus.MustRegister(EventSubscribersInvokedTotal)
	prometheus.MustRegister(ResourceStoragesLoaded)
	prometheus.MustRegister(ResourceFetchesTotal)
	prometheus.MustRegister(FrameDuration)
	prometheus.MustRegister(FrameOverrunsTotal)
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	histogram.Observe(time.Since(t.start).Seconds())
}

// ObserveDurationVec records the duration to a histogram vec with labels.
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	histogram.WithLabelValues(labels...).Observe(time.Since(t.start).Seconds())
}

// Duration returns the elapsed time since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
