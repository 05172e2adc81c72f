// Package retry wraps transient operations with exponential backoff.
// Feed fetches, article page fetches, assistant calls and database queries
// each get a preset tuned to how expensive a retry is for them.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"syscall"
	"time"
)

// Config controls the backoff schedule for WithBackoff.
type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration

	// Multiplier grows the delay between attempts.
	Multiplier float64

	// JitterFraction is how much random slack (0..1) is added on top of
	// each delay so parallel feed fetches do not retry in lockstep.
	JitterFraction float64
}

func baseConfig(attempts int, initial, max time.Duration) Config {
	return Config{
		MaxAttempts:    attempts,
		InitialDelay:   initial,
		MaxDelay:       max,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// DefaultConfig suits operations without a more specific preset.
func DefaultConfig() Config {
	return baseConfig(3, time.Second, 30*time.Second)
}

// FeedFetchConfig retries RSS fetches aggressively. Feeds fail transiently
// often and a missed fetch just delays articles by one sync cycle.
func FeedFetchConfig() Config {
	return baseConfig(5, time.Second, 30*time.Second)
}

// AssistantConfig retries chat completions sparingly since each attempt
// bills tokens.
func AssistantConfig() Config {
	return baseConfig(3, 2*time.Second, 10*time.Second)
}

// DBConfig retries database calls with short delays. Connection blips
// usually clear within milliseconds.
func DBConfig() Config {
	return baseConfig(3, 100*time.Millisecond, time.Second)
}

// ContentFetchConfig retries article page downloads.
func ContentFetchConfig() Config {
	return baseConfig(3, time.Second, 10*time.Second)
}

// WithBackoff runs fn until it succeeds, returns a non-retryable error, or
// MaxAttempts is exhausted. Waiting respects ctx cancellation.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			if attempt > 1 {
				slog.Info("operation succeeded after retry",
					slog.Int("attempt", attempt))
			}
			return nil
		}

		if !IsRetryable(lastErr) {
			slog.Warn("non-retryable error, aborting",
				slog.Int("attempt", attempt),
				slog.Any("error", lastErr))
			return lastErr
		}

		if attempt == cfg.MaxAttempts {
			break
		}

		slog.Warn("operation failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("delay", delay),
			slog.Any("error", lastErr))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}

		delay = nextDelay(delay, cfg)
	}

	return fmt.Errorf("max retry attempts (%d) exceeded: %w", cfg.MaxAttempts, lastErr)
}

// nextDelay doubles (per Multiplier) the delay, caps it at MaxDelay and
// sprinkles jitter on top.
func nextDelay(current time.Duration, cfg Config) time.Duration {
	next := time.Duration(float64(current) * cfg.Multiplier)
	if next > cfg.MaxDelay {
		next = cfg.MaxDelay
	}

	fraction := cfg.JitterFraction
	if fraction <= 0 {
		return next
	}
	if fraction > 1.0 {
		fraction = 1.0
	}
	// #nosec G404 -- backoff jitter does not need cryptographic randomness.
	jitter := time.Duration(rand.Float64() * float64(next) * fraction)
	return next + jitter
}

// IsRetryable classifies an error as transient or permanent. Context
// cancellation is permanent; network timeouts, connection-level syscall
// errors and throttling or server-side HTTP statuses are transient.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ETIMEDOUT),
		errors.Is(err, syscall.ENETUNREACH):
		return true
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode >= 500 && httpErr.StatusCode < 600:
			return true
		case httpErr.StatusCode == http.StatusTooManyRequests:
			return true
		case httpErr.StatusCode == http.StatusRequestTimeout:
			return true
		}
	}

	return false
}

// HTTPError carries a response status so IsRetryable can classify it.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}
