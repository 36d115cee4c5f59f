// Package metrics provides a Prometheus-backed implementation of
// actionlib.MetricsRecorder, gated behind an explicit InitRegistry call
// so a caller who never wants metrics pays zero overhead.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	mu       sync.Mutex
	registry *prometheus.Registry
)

// InitRegistry creates the package-level Prometheus registry. Call this
// once during startup before constructing a Recorder; NewRecorder
// returns a no-op MetricsRecorder until this has run.
func InitRegistry() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	return registry
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return registry != nil
}

// GetRegistry returns the package-level registry, or nil if InitRegistry
// has not been called.
func GetRegistry() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()
	return registry
}
