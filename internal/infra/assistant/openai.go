package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"globalpulse/internal/observability/metrics"
	"globalpulse/internal/resilience/circuitbreaker"
	"globalpulse/internal/resilience/retry"
)

// defaultOpenAIModel is used when ASSISTANT_MODEL is not set.
const defaultOpenAIModel = "gpt-4o"

// OpenAI implements the Completer interface using OpenAI's chat completion API.
// It includes circuit breaker, retry logic, and client-side rate limiting
// for improved reliability.
type OpenAI struct {
	client         *openai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	limiter        *rate.Limiter
	config         *Config
}

// NewOpenAI creates a new OpenAI completer with the given API key.
// It automatically configures circuit breaker, retry logic, and rate limiting.
func NewOpenAI(apiKey string, config *Config) *OpenAI {
	slog.Info("Initialized OpenAI assistant",
		slog.String("model", config.Model),
		slog.Int("max_tokens", config.MaxTokens))

	return &OpenAI{
		client:         openai.NewClient(apiKey),
		circuitBreaker: circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:    retry.AssistantConfig(),
		limiter:        rate.NewLimiter(rate.Limit(float64(config.RequestsPerMinute)/60.0), 1),
		config:         config,
	}
}

// Complete generates an assistant reply for the given system prompt and user message.
// It uses circuit breaker and retry logic for improved reliability.
func (o *OpenAI) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	if err := o.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("openai rate limit wait: %w", err)
	}

	var result string

	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doComplete(ctx, systemPrompt, userMessage)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai api circuit breaker open, request rejected",
					slog.String("service", "openai-api"),
					slog.String("state", o.circuitBreaker.State().String()))
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		return "", fmt.Errorf("openai complete failed after retries: %w", retryErr)
	}

	return result, nil
}

// doComplete performs the actual API call without retry or circuit breaker.
func (o *OpenAI) doComplete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	slog.InfoContext(ctx, "Starting chat completion",
		slog.String("provider", "openai"),
		slog.Int("message_length", len(userMessage)))

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.config.Model,
		MaxTokens: o.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userMessage,
			},
		},
	})

	duration := time.Since(start)

	if err != nil {
		metrics.RecordAssistantRequest("openai", false, duration)
		slog.ErrorContext(ctx, "Chat completion failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		metrics.RecordAssistantRequest("openai", false, duration)
		slog.ErrorContext(ctx, "OpenAI API returned empty response",
			slog.Duration("duration", duration))
		return "", fmt.Errorf("openai api returned empty response")
	}

	reply := resp.Choices[0].Message.Content

	metrics.RecordAssistantRequest("openai", true, duration)

	slog.InfoContext(ctx, "Chat completion completed",
		slog.Int("reply_length", len(reply)),
		slog.Duration("duration", duration))

	return reply, nil
}
