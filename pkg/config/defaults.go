package config

import (
	"strings"
	"time"
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// This function is called after loading configuration from file and
// environment variables to fill in any missing values with sensible
// defaults. Zero values (and negative queue sizes) are replaced with
// defaults; other explicit values are preserved.
func ApplyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyMetricsDefaults(&cfg.Metrics)
	applyDebugAPIDefaults(&cfg.DebugAPI)

	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
}

// applyServerDefaults mirrors the documented defaults used internally by
// actionlib.NewActionServer when Config.Params is nil, so a server built
// from the CLI behaves the same as one built with no ParamSource at all.
func applyServerDefaults(cfg *ServerConfig) {
	if cfg.PubQueueSize <= 0 {
		cfg.PubQueueSize = 50
	}
	// SubQueueSize's documented default is 0 (unbounded); a negative value
	// falls back to it.
	if cfg.SubQueueSize < 0 {
		cfg.SubQueueSize = 0
	}
	if cfg.StatusFrequencyHz == 0 {
		cfg.StatusFrequencyHz = 5.0
	}
	if cfg.StatusListTimeout == 0 {
		cfg.StatusListTimeout = 5 * time.Second
	}
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// applyTelemetryDefaults sets OpenTelemetry defaults.
func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}
	applyProfilingDefaults(&cfg.Profiling)
}

// applyProfilingDefaults sets Pyroscope profiling defaults.
func applyProfilingDefaults(cfg *ProfilingConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "http://localhost:4040"
	}
	if len(cfg.ProfileTypes) == 0 {
		cfg.ProfileTypes = []string{
			"cpu",
			"alloc_objects",
			"alloc_space",
			"inuse_objects",
			"inuse_space",
			"goroutines",
		}
	}
}

// applyMetricsDefaults sets metrics defaults.
func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Enabled && cfg.Port == 0 {
		cfg.Port = 9090
	}
}

// applyDebugAPIDefaults sets debug API server defaults.
func applyDebugAPIDefaults(cfg *DebugAPIConfig) {
	if cfg.Port == 0 {
		cfg.Port = 8088
	}
}

// GetDefaultConfig returns a complete configuration populated entirely
// with documented defaults, used when no config file is found.
func GetDefaultConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Namespace: "/fibonacci",
		},
	}
	ApplyDefaults(cfg)
	return cfg
}
