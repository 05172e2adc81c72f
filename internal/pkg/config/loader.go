package config

import (
	"fmt"
	"os"
	"time"
)

// ConfigLoadResult is what every env loader returns: the effective value,
// any warnings produced, and whether the default was substituted for a bad
// value. Loaders never fail; an unusable env value degrades to the default
// with a warning so a typo in deployment config cannot stop the worker.
//
//	result := LoadEnvDuration("SYNC_TIMEOUT", 10*time.Minute, ValidatePositiveDuration)
//	timeout := result.Value.(time.Duration)
type ConfigLoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

func okResult(value interface{}) ConfigLoadResult {
	return ConfigLoadResult{Value: value}
}

func fallbackResult(envKey, raw string, reason interface{}, defaultValue interface{}) ConfigLoadResult {
	warning := fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'",
		envKey, raw, reason, defaultValue)
	return ConfigLoadResult{
		Value:           defaultValue,
		Warnings:        []string{warning},
		FallbackApplied: true,
	}
}

// LoadEnvString reads envKey and returns defaultValue when it is unset or
// empty. No validation; use LoadEnvWithFallback when the value needs one.
func LoadEnvString(envKey, defaultValue string) string {
	if value := os.Getenv(envKey); value != "" {
		return value
	}
	return defaultValue
}

// LoadEnvWithFallback reads a string from envKey and runs it through
// validator (nil skips validation). An unset variable uses the default
// silently; a value that fails validation uses the default with a warning.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return okResult(defaultValue)
	}
	if validator != nil {
		if err := validator(value); err != nil {
			return fallbackResult(envKey, value, err, defaultValue)
		}
	}
	return okResult(value)
}

// LoadEnvDuration reads a Go duration string ("30s", "5m", "1h30m") from
// envKey. Parse or validation failures fall back to defaultValue with a
// warning; an unset variable uses the default silently.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return okResult(defaultValue)
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fallbackResult(envKey, raw, err, defaultValue)
	}
	if validator != nil {
		if err := validator(parsed); err != nil {
			return fallbackResult(envKey, raw, err, defaultValue)
		}
	}
	return okResult(parsed)
}

// LoadEnvInt reads an integer from envKey with the same fallback contract
// as LoadEnvDuration.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return okResult(defaultValue)
	}

	var parsed int
	if _, err := fmt.Sscanf(raw, "%d", &parsed); err != nil {
		return fallbackResult(envKey, raw, "invalid integer format", defaultValue)
	}
	if validator != nil {
		if err := validator(parsed); err != nil {
			return fallbackResult(envKey, raw, err, defaultValue)
		}
	}
	return okResult(parsed)
}

// LoadEnvBool reads a boolean from envKey. Accepted spellings follow
// strconv.ParseBool ("1"/"t"/"true" and the false equivalents, any case of
// the word forms); anything else falls back to defaultValue with a warning.
func LoadEnvBool(envKey string, defaultValue bool) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return okResult(defaultValue)
	}

	switch raw {
	case "1", "t", "T", "true", "TRUE", "True":
		return okResult(true)
	case "0", "f", "F", "false", "FALSE", "False":
		return okResult(false)
	default:
		return fallbackResult(envKey, raw,
			"invalid boolean format, expected 'true' or 'false'", defaultValue)
	}
}
