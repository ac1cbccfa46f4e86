/*
Package metrics provides Prometheus metrics collection and exposition for
the engine.

It defines and registers gauges, counters, and histograms covering the
entity tree, the command queue, the event subsystem, and the resource
store, exposed via an HTTP handler for scraping. A Collector periodically
pulls a Stats snapshot from anything satisfying Snapshotter (engine.Engine
does, structurally) and republishes it as gauges, avoiding an import cycle
between this package and the engine.

It also carries a small health-check registry (RegisterComponent,
GetHealth, GetReadiness) with ready-made HTTP handlers for /health, /ready,
and /live, in the style of a standard Kubernetes-friendly probe set.

# Usage

	collector := metrics.NewCollector(myEngine)
	collector.Start(5 * time.Second)
	defer collector.Stop()

	http.Handle("/metrics", metrics.Handler())
	http.HandleFunc("/health", metrics.HealthHandler())
*/
package metrics
