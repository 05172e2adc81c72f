package article

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"globalpulse/internal/handler/http/respond"
	"globalpulse/internal/observability/logging"
	syncUC "globalpulse/internal/usecase/sync"
)

// SyncRunner triggers one full feed aggregation pass.
type SyncRunner interface {
	RunSync(ctx context.Context) (*syncUC.Result, error)
}

// SyncHandler serves POST /api/articles/sync.
// It runs a synchronous aggregation pass and reports how many articles
// were submitted for persistence.
type SyncHandler struct {
	Runner SyncRunner
	Logger *slog.Logger
}

func (h SyncHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	logger.Info("Manual sync triggered")

	result, err := h.Runner.RunSync(ctx)
	if err != nil {
		logger.Error("Manual sync failed", "error", err.Error())
		respond.SafeError(w, http.StatusInternalServerError, fmt.Errorf("sync failed: %w", err))
		return
	}

	logger.Info("Manual sync completed", "count", result.Count)

	respond.JSON(w, http.StatusOK, result)
}
