package article

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"globalpulse/internal/handler/http/respond"
	"globalpulse/internal/observability/logging"
	artUC "globalpulse/internal/usecase/article"
)

// ListHandler serves GET /api/articles.
// Query parameters: category, language, search, limit.
type ListHandler struct {
	Svc    *artUC.Service
	Logger *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit: %s", raw))
			return
		}
		limit = parsed
	}

	input := artUC.ListInput{
		Category: q.Get("category"),
		Language: q.Get("language"),
		Search:   q.Get("search"),
		Limit:    limit,
	}

	articles, err := h.Svc.List(ctx, input)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, artUC.ErrInvalidCategory) || errors.Is(err, artUC.ErrInvalidLanguage) {
			code = http.StatusBadRequest
		}
		logger.Warn("Failed to list articles",
			"error", err.Error(),
			"category", input.Category,
			"language", input.Language)
		respond.SafeError(w, code, err)
		return
	}

	dtos := make([]DTO, 0, len(articles))
	for _, a := range articles {
		dtos = append(dtos, toDTO(a))
	}

	// X-Total-Count reports the unfiltered store size so clients can show
	// how much of the corpus a filtered page covers. A count failure only
	// drops the header; the list itself is still served.
	if total, err := h.Svc.Count(ctx); err != nil {
		logger.Warn("Failed to count articles", "error", err.Error())
	} else {
		w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	}

	logger.Info("Article list request",
		"count", len(dtos),
		"category", input.Category,
		"language", input.Language,
		"search", input.Search)

	respond.JSON(w, http.StatusOK, dtos)
}
