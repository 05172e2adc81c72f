package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	"globalpulse/internal/handler/http/respond"
	pgRepo "globalpulse/internal/infra/adapter/persistence/postgres"
	"globalpulse/internal/infra/db"
	"globalpulse/internal/infra/fetcher"
	"globalpulse/internal/infra/scraper"
	workerPkg "globalpulse/internal/infra/worker"
	"globalpulse/internal/observability/logging"
	"globalpulse/internal/pkg/config"
	"globalpulse/internal/repository"
	syncUC "globalpulse/internal/usecase/sync"
)

func main() {
	logger := initLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load worker configuration (fail-open strategy)
	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("sync_schedule", workerConfig.SyncSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("sync_timeout", workerConfig.SyncTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	// Start metrics HTTP server
	startMetricsServer(ctx, logger)

	// Start health check server
	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	svc := buildSyncService(logger, pgRepo.NewArticleRepo(database))

	// Run one pass immediately so a fresh deployment has articles before
	// the first scheduled tick.
	runSyncJob(logger, svc, workerConfig, workerMetrics)

	startCronWorker(logger, svc, workerConfig, workerMetrics, healthServer)
}

// initLogger builds the worker's JSON logger and installs it as the slog
// default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the connection pool and waits for the schema to exist.
// The API server owns migrations; the worker only needs the articles table.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	waitForMigrations(logger, database)
	return database
}

func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM articles LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := db.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

// buildSyncService assembles the feed aggregation pipeline.
func buildSyncService(logger *slog.Logger, repo repository.ArticleRepository) *syncUC.Service {
	feeds, err := config.LoadFeeds()
	if err != nil {
		logger.Error("failed to load feed registry", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("feed registry loaded", slog.Int("feeds", len(feeds)))

	fetchConfig, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load content fetch configuration", slog.Any("error", err))
		os.Exit(1)
	}
	var contentFetcher syncUC.ContentFetcher
	if fetchConfig.Enabled {
		contentFetcher = fetcher.NewReadabilityFetcher(fetchConfig)
		logger.Info("content enhancement enabled",
			slog.Int("threshold", fetchConfig.Threshold))
	}

	svc := syncUC.NewService(
		feeds,
		scraper.NewRSSFetcher(nil),
		repo,
		contentFetcher,
		syncUC.ContentEnhanceConfig{Threshold: fetchConfig.Threshold},
	)
	return &svc
}

// startCronWorker schedules the periodic sync job and blocks forever.
func startCronWorker(logger *slog.Logger, svc *syncUC.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.SyncSchedule, func() {
		runSyncJob(logger, svc, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	// Mark as ready after cron is set up
	healthServer.SetReady(true)
	logger.Info("worker marked as ready")

	logger.Info("worker started", slog.String("schedule", cfg.SyncSchedule), slog.String("timezone", cfg.Timezone))
	select {}
}

// runSyncJob executes a single sync pass with timeout and error handling.
func runSyncJob(logger *slog.Logger, svc *syncUC.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	startTime := time.Now()
	metrics.RecordJobRun("started")
	logger.Info("feed sync started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.SyncTimeout)
	defer cancel()

	result, err := svc.RunSync(ctx)
	if err != nil {
		logger.Error("feed sync failed", slog.Any("error", respond.SanitizeError(err)))
		metrics.RecordJobRun("failure")
		metrics.RecordJobDuration(time.Since(startTime).Seconds())
		return
	}

	metrics.RecordJobRun("success")
	metrics.RecordJobDuration(time.Since(startTime).Seconds())
	metrics.RecordArticlesSubmitted(result.Count)
	metrics.RecordLastSuccess()

	logger.Info("feed sync completed",
		slog.Int("articles", result.Count),
		slog.Duration("duration", time.Since(startTime)),
	)
}
