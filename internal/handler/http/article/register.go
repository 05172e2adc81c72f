package article

import (
	"log/slog"
	"net/http"

	artUC "globalpulse/internal/usecase/article"
)

// Register registers all article-related HTTP handlers with the given mux.
// It sets up routes for listing articles, fetching one by ID, and triggering
// a manual sync.
func Register(mux *http.ServeMux, svc *artUC.Service, runner SyncRunner, logger *slog.Logger) {
	mux.Handle("GET    /api/articles", ListHandler{Svc: svc, Logger: logger})
	mux.Handle("POST   /api/articles/sync", SyncHandler{Runner: runner, Logger: logger})
	mux.Handle("GET    /api/articles/", GetHandler{Svc: svc})
}
