package assistant

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// minMaxTokens is the minimum allowed completion token budget.
	minMaxTokens = 64

	// maxMaxTokens is the maximum allowed completion token budget.
	maxMaxTokens = 8192
)

// Config holds configuration parameters shared by the assistant providers.
// Configuration is loaded from environment variables with fallback to defaults.
type Config struct {
	// Model is the provider-specific model identifier used for chat completions.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	// Valid range: 64-8192. Default: 1024.
	MaxTokens int

	// Timeout is the maximum duration for a single completion API call.
	Timeout time.Duration

	// RequestsPerMinute caps the outbound request rate against the provider.
	// Default: 20.
	RequestsPerMinute int
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}

	if err := ValidateMaxTokens(c.MaxTokens); err != nil {
		return fmt.Errorf("invalid max tokens: %w", err)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	if c.RequestsPerMinute <= 0 {
		return fmt.Errorf("requests per minute must be positive, got %d", c.RequestsPerMinute)
	}

	return nil
}

// ValidateMaxTokens validates that the token budget is within the valid range (64-8192).
func ValidateMaxTokens(tokens int) error {
	if tokens < minMaxTokens {
		return fmt.Errorf("max tokens %d is below minimum %d", tokens, minMaxTokens)
	}
	if tokens > maxMaxTokens {
		return fmt.Errorf("max tokens %d exceeds maximum %d", tokens, maxMaxTokens)
	}
	return nil
}

// LoadConfig loads assistant configuration from environment variables.
// Returns an error if any variable is present but invalid (fail-closed behavior):
// a misconfigured assistant should be caught at startup, not at request time.
//
// Environment variables:
//   - ASSISTANT_MODEL: Model identifier (default depends on provider)
//   - ASSISTANT_MAX_TOKENS: Completion token budget (default: 1024, range: 64-8192)
//   - ASSISTANT_TIMEOUT: Per-request timeout (default: 60s)
//   - ASSISTANT_RATE_LIMIT: Requests per minute (default: 20)
func LoadConfig(defaultModel string) (*Config, error) {
	config := &Config{
		Model:             defaultModel,
		MaxTokens:         1024,
		Timeout:           60 * time.Second,
		RequestsPerMinute: 20,
	}

	if v := os.Getenv("ASSISTANT_MODEL"); v != "" {
		config.Model = v
	}

	if v := os.Getenv("ASSISTANT_MAX_TOKENS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ASSISTANT_MAX_TOKENS format: %s: %w", v, err)
		}
		if err := ValidateMaxTokens(parsed); err != nil {
			return nil, fmt.Errorf("ASSISTANT_MAX_TOKENS out of valid range: %w", err)
		}
		config.MaxTokens = parsed
	}

	if v := os.Getenv("ASSISTANT_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ASSISTANT_TIMEOUT format: %s: %w", v, err)
		}
		config.Timeout = parsed
	}

	if v := os.Getenv("ASSISTANT_RATE_LIMIT"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ASSISTANT_RATE_LIMIT format: %s: %w", v, err)
		}
		config.RequestsPerMinute = parsed
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid assistant configuration: %w", err)
	}

	return config, nil
}
