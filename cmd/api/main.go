package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	pgRepo "globalpulse/internal/infra/adapter/persistence/postgres"
	"globalpulse/internal/infra/assistant"
	"globalpulse/internal/infra/db"
	"globalpulse/internal/infra/fetcher"
	"globalpulse/internal/infra/scraper"
	"globalpulse/internal/observability/logging"
	"globalpulse/internal/observability/tracing"
	"globalpulse/internal/pkg/config"
	"globalpulse/internal/repository"

	artUC "globalpulse/internal/usecase/article"
	chatUC "globalpulse/internal/usecase/chat"
	syncUC "globalpulse/internal/usecase/sync"

	hhttp "globalpulse/internal/handler/http"
	harticle "globalpulse/internal/handler/http/article"
	hchat "globalpulse/internal/handler/http/chat"
	"globalpulse/internal/handler/http/requestid"
)

func main() {
	logger := initLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	handler := setupServer(logger, database, version)

	runServer(logger, handler, version)
}

// initLogger builds the process-wide JSON logger and installs it as the
// slog default so library code logs consistently.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the connection pool and applies schema migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer wires repositories, use cases, and handlers into the HTTP handler chain.
func setupServer(logger *slog.Logger, database *sql.DB, version string) http.Handler {
	repo := pgRepo.NewArticleRepo(database)
	artSvc := &artUC.Service{Repo: repo}

	syncSvc := buildSyncService(logger, repo)

	completer, err := assistant.NewFromEnv()
	if err != nil {
		logger.Error("failed to configure assistant", slog.Any("error", err))
		os.Exit(1)
	}
	chatSvc := &chatUC.Service{Repo: repo, Completer: completer}

	mux := setupRoutes(database, version, artSvc, syncSvc, chatSvc, logger)

	return applyMiddleware(logger, mux)
}

// buildSyncService assembles the feed aggregation pipeline used by the
// manual sync endpoint.
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

// setupRoutes registers all HTTP routes.
func setupRoutes(
	database *sql.DB,
	version string,
	artSvc *artUC.Service,
	syncSvc *syncUC.Service,
	chatSvc *chatUC.Service,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	harticle.Register(mux, artSvc, syncSvc, logger)
	hchat.Register(mux, chatSvc, logger)

	return mux
}

// defaultRequestTimeout bounds a single request end to end. It has to
// leave room for POST /api/articles/sync, which waits for a full feed
// aggregation pass including retries.
const defaultRequestTimeout = 2 * time.Minute

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): CORS, request ID, tracing, rate limit,
// recovery, logging, body limit, metrics, timeout.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	rateLimiter := hhttp.NewRateLimiter(120, time.Minute)

	timeoutRes := config.LoadEnvDuration("REQUEST_TIMEOUT", defaultRequestTimeout, config.ValidatePositiveDuration)
	for _, warning := range timeoutRes.Warnings {
		logger.Warn(warning)
	}
	requestTimeout := timeoutRes.Value.(time.Duration)

	chain := handler
	chain = hhttp.Timeout(requestTimeout)(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = rateLimiter.Limit(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = hhttp.CORS()(chain)

	return chain
}

// runServer starts the HTTP server and blocks until a shutdown signal arrives.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
