// Package metrics defines the Prometheus collectors exported by the
// sprite generator: HTTP request metrics, per-stage pipeline timings,
// frame extraction counters, and ffmpeg invocation metrics.
//
// Collectors are registered with the default registry via promauto at
// package load; InitializeMetrics pre-populates known label values so
// every series appears on the first scrape.
package metrics
