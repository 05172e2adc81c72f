// Package assistant provides AI chat completion implementations backed by
// external model providers. Each provider wraps its API client with circuit
// breaker, retry, and rate limiting so upstream outages degrade gracefully.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Completer generates a reply to a user message under a given system prompt.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// NewFromEnv constructs a Completer based on environment configuration.
//
// ASSISTANT_PROVIDER selects the backend:
//   - "openai": requires OPENAI_API_KEY
//   - "claude": requires ANTHROPIC_API_KEY
//   - "none" or unset: a NoOp completer that returns a canned reply
//
// Returns an error if the selected provider's API key is missing or the
// assistant configuration is invalid.
func NewFromEnv() (Completer, error) {
	provider := os.Getenv("ASSISTANT_PROVIDER")

	switch provider {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when ASSISTANT_PROVIDER=openai")
		}
		config, err := LoadConfig(defaultOpenAIModel)
		if err != nil {
			return nil, err
		}
		return NewOpenAI(apiKey, config), nil

	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required when ASSISTANT_PROVIDER=claude")
		}
		config, err := LoadConfig(defaultClaudeModel)
		if err != nil {
			return nil, err
		}
		return NewClaude(apiKey, config), nil

	case "", "none":
		slog.Info("No assistant provider configured, using no-op completer")
		return NewNoOp(), nil

	default:
		return nil, fmt.Errorf("unknown assistant provider: %s", provider)
	}
}
