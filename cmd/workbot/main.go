package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cosmix/workbot/internal/slack"
	"github.com/cosmix/workbot/pkg/catalog"
	"github.com/cosmix/workbot/pkg/config"
	"github.com/cosmix/workbot/pkg/constants"
	"github.com/cosmix/workbot/pkg/health"
	"github.com/cosmix/workbot/pkg/metrics"
	"github.com/cosmix/workbot/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Build information set via ldflags at compile time.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.buildTime=2024-01-01T00:00:00Z"
var (
	version   = "dev"     // Application version (e.g., "1.0.0", "v1.2.3")
	commit    = "unknown" // Git commit hash (short or full)
	buildTime = "unknown" // Build timestamp in RFC3339 format
)

// VersionInfo contains build and version information.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

func main() {
	// Create production logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// Initialize metrics
	m := metrics.Init()
	logger.Info("metrics initialized")

	// Build the work type catalog with channel overrides applied
	cat := catalog.New(cfg.WorkChannelOverrides, cfg.DefaultWorkChannel)
	logger.Info("work type catalog loaded",
		zap.Int("work_types", cat.Len()),
		zap.Int("channel_overrides", len(cfg.WorkChannelOverrides)),
	)

	// Initialize Slack handler
	handler := slack.NewHandler(cfg, cat, logger)
	handler.SetMetrics(m)

	// Initialize health manager
	healthMgr := health.NewManager(logger)

	// Register liveness check (basic server health)
	healthMgr.RegisterLivenessCheck("server", health.AlwaysHealthyChecker())

	// Register readiness checks (dependencies)
	healthMgr.RegisterReadinessCheck("slack_api", health.SlackHealthChecker(handler.HealthCheckSlack))
	healthMgr.RegisterReadinessCheck("jira_api", health.JiraHealthChecker(handler.HealthCheckJira))
	healthMgr.RegisterReadinessCheck("work_type_catalog", health.CatalogChecker(
		handler.CatalogSize,
		10, // Expect at least 10 work types as a sanity check
	))

	logger.Info("health checks registered")

	// Setup HTTP handlers with middleware
	// Prometheus metrics endpoint
	http.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	http.HandleFunc("/health", healthMgr.LivenessHandler())
	http.HandleFunc("/ready", healthMgr.ReadinessHandler())

	// Version endpoint
	http.HandleFunc("/version", versionHandler())

	// Slack endpoints with full middleware stack
	http.HandleFunc("/slack/command", middleware.Chain(
		handler.HandleSlashCommand,
		func(next http.HandlerFunc) http.HandlerFunc {
			return middleware.WithLogging(logger, next)
		},
		func(next http.HandlerFunc) http.HandlerFunc {
			return middleware.WithTimeout(30*time.Second, logger, m, next)
		},
		func(next http.HandlerFunc) http.HandlerFunc {
			return middleware.WithMetrics("/slack/command", m, next)
		},
		func(next http.HandlerFunc) http.HandlerFunc {
			return middleware.WithRecovery(logger, m, next)
		},
	))

	http.HandleFunc("/slack/interactions", middleware.Chain(
		handler.HandleInteractions,
		func(next http.HandlerFunc) http.HandlerFunc {
			return middleware.WithLogging(logger, next)
		},
		func(next http.HandlerFunc) http.HandlerFunc {
			return middleware.WithTimeout(30*time.Second, logger, m, next)
		},
		func(next http.HandlerFunc) http.HandlerFunc {
			return middleware.WithMetrics("/slack/interactions", m, next)
		},
		func(next http.HandlerFunc) http.HandlerFunc {
			return middleware.WithRecovery(logger, m, next)
		},
	))

	// Configure server with explicit timeouts
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      nil, // uses DefaultServeMux
		ReadTimeout:  constants.ServerReadTimeout,
		WriteTimeout: constants.ServerWriteTimeout,
		IdleTimeout:  constants.ServerIdleTimeout,
	}

	// Setup graceful shutdown handling
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Run server in a goroutine
	go func() {
		logger.Info("starting Workbot server",
			zap.String("version", version),
			zap.String("commit", commit),
			zap.String("build_time", buildTime),
			zap.String("port", cfg.Port),
			zap.String("metrics_endpoint", "/metrics"),
			zap.String("health_endpoint", "/health"),
			zap.String("readiness_endpoint", "/ready"),
			zap.String("version_endpoint", "/version"),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Block until shutdown signal
	<-stop
	logger.Info("shutdown signal received, initiating graceful shutdown")

	// Create context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), constants.GracefulShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("error during graceful shutdown", zap.Error(err))
	} else {
		logger.Info("server shutdown complete")
	}
}

// versionHandler returns an HTTP handler for the /version endpoint.
// Returns build information including version, commit hash, and build time.
func versionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		info := VersionInfo{
			Version:   version,
			Commit:    commit,
			BuildTime: buildTime,
			GoVersion: "go1.21+", // Minimum required Go version
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(info)
	}
}
