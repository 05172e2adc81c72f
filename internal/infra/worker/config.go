package worker

import (
	"fmt"
	"log/slog"
	"time"

	"globalpulse/internal/pkg/config"
)

// WorkerConfig holds the configuration for the sync worker.
// It controls the cron schedule, timezone, sync timeout, and the health
// check port.
//
// All fields have defaults and validation rules so the worker can start
// safely even with invalid or missing configuration.
type WorkerConfig struct {
	// SyncSchedule is the cron expression for the periodic feed sync.
	// Format: "minute hour day month weekday"
	// Default: "*/5 * * * *" (every 5 minutes)
	SyncSchedule string

	// Timezone is the IANA timezone name for cron scheduling.
	// Default: "UTC"
	Timezone string

	// SyncTimeout is the maximum duration for a single sync run.
	// After this timeout the run is cancelled.
	// Default: 10 minutes
	SyncTimeout time.Duration

	// HealthPort is the port number for the health check HTTP server.
	// Range: 1024-65535
	// Default: 9091
	HealthPort int
}

// DefaultConfig returns a WorkerConfig with production defaults:
// a 5-minute sync cadence in UTC, a 10-minute per-run timeout, and the
// usual exporter port for health checks.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		SyncSchedule: "*/5 * * * *",
		Timezone:     "UTC",
		SyncTimeout:  10 * time.Minute,
		HealthPort:   9091,
	}
}

// Validate checks the configuration using the shared validators.
// All field errors are collected and returned together.
func (c *WorkerConfig) Validate() error {
	var errors []error

	if err := config.ValidateCronSchedule(c.SyncSchedule); err != nil {
		errors = append(errors, fmt.Errorf("sync schedule: %w", err))
	}

	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errors = append(errors, fmt.Errorf("timezone: %w", err))
	}

	if err := config.ValidatePositiveDuration(c.SyncTimeout); err != nil {
		errors = append(errors, fmt.Errorf("sync timeout: %w", err))
	}

	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errors = append(errors, fmt.Errorf("health port: %w", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation failed: %v", errors)
	}

	return nil
}

// LoadConfigFromEnv loads worker configuration from environment variables
// with validation and automatic fallback to defaults on failure.
//
// The loader fails open: an invalid value logs a warning, increments the
// fallback metrics, and the default is used instead. It never returns an
// error, so the worker always starts with a valid configuration.
//
// Environment variables:
//   - SYNC_SCHEDULE: Cron expression (default: "*/5 * * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default: "UTC")
//   - SYNC_TIMEOUT: Duration string, e.g., "10m" (default: 10 minutes)
//   - WORKER_HEALTH_PORT: Integer 1024-65535 (default: 9091)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	result := config.LoadEnvWithFallback("SYNC_SCHEDULE", cfg.SyncSchedule, config.ValidateCronSchedule)
	cfg.SyncSchedule = result.Value.(string)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("sync_schedule")
		metrics.RecordFallback("sync_schedule", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "SyncSchedule"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("timezone")
		metrics.RecordFallback("timezone", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "Timezone"),
				slog.String("warning", warning))
		}
	}

	// Sync runs every few minutes, so the timeout stays within 1m-1h.
	result = config.LoadEnvDuration("SYNC_TIMEOUT", cfg.SyncTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 1*time.Hour)
	})
	cfg.SyncTimeout = result.Value.(time.Duration)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("sync_timeout")
		metrics.RecordFallback("sync_timeout", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "SyncTimeout"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("health_port")
		metrics.RecordFallback("health_port", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "HealthPort"),
				slog.String("warning", warning))
		}
	}

	metrics.SetFallbackActive("", fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
