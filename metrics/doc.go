// Package metrics exposes Prometheus collectors describing chat activity:
// turns by response source, turn latency and the number of live and
// evicted chat sessions. All methods are safe on a nil *Metrics so callers
// can leave metrics disabled.
package metrics
