package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"globalpulse/internal/observability/metrics"
	"globalpulse/internal/resilience/circuitbreaker"
	"globalpulse/internal/resilience/retry"
)

// defaultClaudeModel is used when ASSISTANT_MODEL is not set.
const defaultClaudeModel = "claude-3-5-haiku-latest"

// Claude implements the Completer interface using Anthropic's Messages API.
// It includes circuit breaker, retry logic, and client-side rate limiting
// for improved reliability.
type Claude struct {
	client         anthropic.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	limiter        *rate.Limiter
	config         *Config
}

// NewClaude creates a new Claude completer with the given API key.
// It automatically configures circuit breaker, retry logic, and rate limiting.
func NewClaude(apiKey string, config *Config) *Claude {
	slog.Info("Initialized Claude assistant",
		slog.String("model", config.Model),
		slog.Int("max_tokens", config.MaxTokens))

	return &Claude{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker: circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		retryConfig:    retry.AssistantConfig(),
		limiter:        rate.NewLimiter(rate.Limit(float64(config.RequestsPerMinute)/60.0), 1),
		config:         config,
	}
}

// Complete generates an assistant reply for the given system prompt and user message.
// It uses circuit breaker and retry logic for improved reliability.
func (c *Claude) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("claude rate limit wait: %w", err)
	}

	var result string

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doComplete(ctx, systemPrompt, userMessage)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("claude api circuit breaker open, request rejected",
					slog.String("service", "claude-api"),
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		return "", fmt.Errorf("claude complete failed after retries: %w", retryErr)
	}

	return result, nil
}

// doComplete performs the actual API call without retry or circuit breaker.
func (c *Claude) doComplete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	requestID := uuid.New().String()

	slog.InfoContext(ctx, "Starting chat completion",
		slog.String("request_id", requestID),
		slog.String("provider", "claude"),
		slog.Int("message_length", len(userMessage)))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(userMessage),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		metrics.RecordAssistantRequest("claude", false, duration)
		slog.ErrorContext(ctx, "Chat completion failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		metrics.RecordAssistantRequest("claude", false, duration)
		slog.ErrorContext(ctx, "Claude API returned empty response",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		metrics.RecordAssistantRequest("claude", false, duration)
		slog.ErrorContext(ctx, "Claude API returned unexpected response type",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	metrics.RecordAssistantRequest("claude", true, duration)

	slog.InfoContext(ctx, "Chat completion completed",
		slog.String("request_id", requestID),
		slog.Int("reply_length", len(textBlock.Text)),
		slog.Duration("duration", duration))

	return textBlock.Text, nil
}
