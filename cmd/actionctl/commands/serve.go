package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	applog "github.com/marmos91/actionlib/internal/logger"
	"github.com/marmos91/actionlib/internal/telemetry"
	"github.com/marmos91/actionlib/pkg/actionlib"
	"github.com/marmos91/actionlib/pkg/config"
	"github.com/marmos91/actionlib/pkg/debugapi"
	"github.com/marmos91/actionlib/pkg/metrics"
	"github.com/marmos91/actionlib/pkg/paramstore"
	"github.com/marmos91/actionlib/pkg/transport/inproc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the action server",
	Long: `Run an ActionServer over the in-process transport, with
Prometheus metrics, OpenTelemetry tracing and a debug HTTP API.

Examples:
  # Start with default config location
  actionctl serve

  # Start with a custom config file
  actionctl serve --config /etc/actionctl/config.yaml

  # Override log level via environment
  ACTIONLIB_LOGGING_LEVEL=DEBUG actionctl serve`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryCfg := telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "actionctl",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	}
	telemetryShutdown, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(ctx); err != nil {
			applog.Error("telemetry shutdown error", "error", err)
		}
	}()

	profilingCfg := telemetry.ProfilingConfig{
		Enabled:        cfg.Telemetry.Profiling.Enabled,
		ServiceName:    "actionctl",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Profiling.Endpoint,
		ProfileTypes:   cfg.Telemetry.Profiling.ProfileTypes,
	}
	profilingShutdown, err := telemetry.InitProfiling(profilingCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize profiling: %w", err)
	}
	defer func() {
		if err := profilingShutdown(); err != nil {
			applog.Error("profiling shutdown error", "error", err)
		}
	}()

	applog.Info("configuration loaded", "source", getConfigSource(GetConfigFile()), "namespace", cfg.Server.Namespace)
	if telemetry.IsEnabled() {
		applog.Info("telemetry enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	}
	if telemetry.IsProfilingEnabled() {
		applog.Info("profiling enabled", "endpoint", cfg.Telemetry.Profiling.Endpoint)
	}

	var recorder actionlib.MetricsRecorder = actionlib.NoopRecorder{}
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		recorder = metrics.NewRecorder(cfg.Server.Namespace)
		applog.Info("metrics enabled", "port", cfg.Metrics.Port)
	}

	bus := inproc.NewBus()
	server, err := actionlib.NewActionServer(actionlib.Config{
		Namespace:     cfg.Server.Namespace,
		Publishers:    bus,
		Subscriptions: bus,
		Params:        serverParamSource(cfg),
		Metrics:       recorder,
	})
	if err != nil {
		return fmt.Errorf("failed to create action server: %w", err)
	}
	defer func() {
		if err := server.Close(); err != nil {
			applog.Error("action server shutdown error", "error", err)
		}
	}()

	applog.Info("action server started", "namespace", cfg.Server.Namespace)

	group, groupCtx := errgroup.WithContext(ctx)

	if cfg.DebugAPI.Enabled {
		debugServer := debugapi.NewServer(server, cfg.DebugAPI.Port, debugapi.Config{
			JWTSecret:      cfg.DebugAPI.JWTSecret,
			MetricsEnabled: cfg.Metrics.Enabled,
		})
		group.Go(func() error { return debugServer.Start(groupCtx) })
		applog.Info("debug API enabled", "port", cfg.DebugAPI.Port)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	applog.Info("server is running. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		applog.Info("shutdown signal received, initiating graceful shutdown")
		cancel()
	case <-groupCtx.Done():
		signal.Stop(sigChan)
	}

	if err := group.Wait(); err != nil {
		applog.Error("server shutdown error", "error", err)
		return err
	}

	applog.Info("server stopped gracefully")
	return nil
}

// serverParamSource builds a paramstore.Store seeded with the server's
// actionlib_* parameters, so ActionServer resolves them through the same
// ParamSource seam a parameter-server client would use rather than a
// config struct passed directly.
func serverParamSource(cfg *config.Config) *paramstore.Store {
	v := viper.New()
	v.Set("actionlib_server_pub_queue_size", cfg.Server.PubQueueSize)
	v.Set("actionlib_server_sub_queue_size", cfg.Server.SubQueueSize)
	v.Set("actionlib_status_frequency", cfg.Server.StatusFrequencyHz)

	namespaceKey := strings.ReplaceAll(strings.Trim(cfg.Server.Namespace, "/"), "/", ".")
	v.Set(namespaceKey+".status_list_timeout", cfg.Server.StatusListTimeout.Seconds())

	return paramstore.New(v)
}
