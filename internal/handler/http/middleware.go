// Package http provides HTTP handlers and middleware for the API server.
// It includes the article and chat endpoints, health checks, metrics
// collection, and shared middleware components.
package http

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"globalpulse/internal/handler/http/requestid"
	"globalpulse/internal/handler/http/respond"
	"globalpulse/internal/handler/http/responsewriter"

	"go.opentelemetry.io/otel/trace"
)

// Logging emits one structured entry per completed request, carrying the
// request ID and the OpenTelemetry trace ID so logs join up with traces.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := responsewriter.Wrap(w)

			next.ServeHTTP(wrapped, r)

			span := trace.SpanFromContext(r.Context())
			logger.Info("request completed",
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("trace_id", span.SpanContext().TraceID().String()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Recover turns handler panics into 500 responses instead of killing the
// process. The panic value and stack land in the error log, never in the
// response body.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				respond.SafeError(w, http.StatusInternalServerError, fmt.Errorf("internal error"))

				logger.Error("panic recovered",
					slog.String("request_id", requestid.FromContext(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// LimitRequestBody caps request body size. Only the chat endpoint accepts a
// body at all, so the cap can be small.
func LimitRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// CORS returns middleware that sets cross-origin headers for browser clients.
// Allowed origins come from the CORS_ALLOWED_ORIGINS environment variable
// (comma-separated); when unset every origin is allowed, which suits a public
// read-only API. Preflight OPTIONS requests are answered directly.
func CORS() func(http.Handler) http.Handler {
	allowed := parseAllowedOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && originAllowed(allowed, origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
				w.Header().Set("Access-Control-Max-Age", "600")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// parseAllowedOrigins splits the comma-separated origin list.
// An empty input yields nil, which originAllowed treats as "allow all".
func parseAllowedOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func originAllowed(allowed []string, origin string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == origin || a == "*" {
			return true
		}
	}
	return false
}

// clientWindow holds the recent request times for one client IP.
type clientWindow struct {
	mu         sync.Mutex
	timestamps []time.Time
}

// prune drops timestamps at or before cutoff and reports how many remain.
// Caller must hold mu.
func (cw *clientWindow) prune(cutoff time.Time) int {
	kept := cw.timestamps[:0]
	for _, ts := range cw.timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	cw.timestamps = kept
	return len(kept)
}

// RateLimiter throttles requests per client IP over a sliding window.
type RateLimiter struct {
	clients   sync.Map // map[string]*clientWindow
	limit     int
	window    time.Duration
	cleanMu   sync.Mutex
	lastClean time.Time
}

// NewRateLimiter allows limit requests per window for each client IP.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		window:    window,
		lastClean: time.Now(),
	}
}

// Limit rejects over-limit requests with 429.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rl.sweepStale()

		if !rl.allow(extractIP(r)) {
			respond.SafeError(w, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ip string) bool {
	now := time.Now()

	val, _ := rl.clients.LoadOrStore(ip, &clientWindow{
		timestamps: make([]time.Time, 0, rl.limit),
	})
	cw := val.(*clientWindow)

	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.prune(now.Add(-rl.window)) >= rl.limit {
		return false
	}
	cw.timestamps = append(cw.timestamps, now)
	return true
}

// sweepStale drops windows for IPs that have gone quiet, at most once every
// ten minutes, so the client map does not grow forever.
func (rl *RateLimiter) sweepStale() {
	rl.cleanMu.Lock()
	defer rl.cleanMu.Unlock()

	if time.Since(rl.lastClean) < 10*time.Minute {
		return
	}
	rl.lastClean = time.Now()
	cutoff := time.Now().Add(-rl.window * 2)

	rl.clients.Range(func(key, value interface{}) bool {
		cw := value.(*clientWindow)
		cw.mu.Lock()
		empty := cw.prune(cutoff) == 0
		cw.mu.Unlock()
		if empty {
			rl.clients.Delete(key)
		}
		return true
	})
}

// extractIP resolves the client IP, trusting X-Forwarded-For and X-Real-IP
// ahead of the socket address since the API sits behind a proxy in
// production.
func extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := xff
		if idx := strings.IndexByte(xff, ','); idx != -1 {
			first = xff[:idx]
		}
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return ip.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
