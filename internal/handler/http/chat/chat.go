// Package chat provides the HTTP handler for the AI news assistant endpoint.
package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"globalpulse/internal/handler/http/respond"
	"globalpulse/internal/observability/logging"
	chatUC "globalpulse/internal/usecase/chat"
)

// Request is the JSON body for POST /api/ai/chat.
type Request struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

// Response is the JSON reply for POST /api/ai/chat.
type Response struct {
	Response string `json:"response"`
}

// Handler serves POST /api/ai/chat.
type Handler struct {
	Svc    *chatUC.Service
	Logger *slog.Logger
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	reply, err := h.Svc.Ask(ctx, req.Message, req.Language)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, chatUC.ErrEmptyMessage) || errors.Is(err, chatUC.ErrMessageTooLong) {
			code = http.StatusBadRequest
		}
		logger.Warn("Chat request failed",
			"error", err.Error(),
			"language", req.Language)
		respond.SafeError(w, code, err)
		return
	}

	logger.Info("Chat request completed",
		"language", req.Language,
		"message_length", len(req.Message),
		"reply_length", len(reply))

	respond.JSON(w, http.StatusOK, Response{Response: reply})
}

// Register registers the chat handler with the given mux.
func Register(mux *http.ServeMux, svc *chatUC.Service, logger *slog.Logger) {
	mux.Handle("POST /api/ai/chat", Handler{Svc: svc, Logger: logger})
}
