package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvString(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		t.Setenv("TEST_STRING", "custom")
		assert.Equal(t, "custom", LoadEnvString("TEST_STRING", "fallback"))
	})
	t.Run("unset", func(t *testing.T) {
		assert.Equal(t, "fallback", LoadEnvString("TEST_STRING", "fallback"))
	})
	t.Run("empty uses default", func(t *testing.T) {
		t.Setenv("TEST_STRING", "")
		assert.Equal(t, "fallback", LoadEnvString("TEST_STRING", "fallback"))
	})
}

func TestLoadEnvWithFallback(t *testing.T) {
	tests := []struct {
		name         string
		set          bool
		value        string
		wantValue    string
		wantFallback bool
	}{
		{"valid schedule", true, "0 6 * * *", "0 6 * * *", false},
		{"unset", false, "", "*/5 * * * *", false},
		{"empty", true, "", "*/5 * * * *", false},
		{"invalid schedule", true, "not a cron", "*/5 * * * *", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("TEST_CRON", tt.value)
			}
			result := LoadEnvWithFallback("TEST_CRON", "*/5 * * * *", ValidateCronSchedule)

			assert.Equal(t, tt.wantValue, result.Value)
			assert.Equal(t, tt.wantFallback, result.FallbackApplied)
			if tt.wantFallback {
				assert.Len(t, result.Warnings, 1)
				assert.Contains(t, result.Warnings[0], "Invalid TEST_CRON='"+tt.value+"'")
				assert.Contains(t, result.Warnings[0], "falling back to default '*/5 * * * *'")
			} else {
				assert.Empty(t, result.Warnings)
			}
		})
	}

	t.Run("nil validator accepts anything", func(t *testing.T) {
		t.Setenv("TEST_RAW", "whatever")
		result := LoadEnvWithFallback("TEST_RAW", "default", nil)
		assert.Equal(t, "whatever", result.Value)
		assert.False(t, result.FallbackApplied)
	})

	t.Run("timezone validator", func(t *testing.T) {
		t.Setenv("TEST_TZ", "Invalid/Zone")
		result := LoadEnvWithFallback("TEST_TZ", "UTC", ValidateTimezone)
		assert.Equal(t, "UTC", result.Value)
		assert.True(t, result.FallbackApplied)
		assert.Contains(t, result.Warnings[0], "Invalid TEST_TZ='Invalid/Zone'")
	})
}

func TestLoadEnvDuration(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		wantValue    time.Duration
		wantFallback bool
	}{
		{"valid", "1h", time.Hour, false},
		{"compound", "1h30m45s", time.Hour + 30*time.Minute + 45*time.Second, false},
		{"unparseable", "soon", 10 * time.Minute, true},
		{"negative rejected by validator", "-5m", 10 * time.Minute, true},
		{"zero rejected by validator", "0s", 10 * time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_TIMEOUT", tt.value)
			result := LoadEnvDuration("TEST_TIMEOUT", 10*time.Minute, ValidatePositiveDuration)

			assert.Equal(t, tt.wantValue, result.Value)
			assert.Equal(t, tt.wantFallback, result.FallbackApplied)
			if tt.wantFallback {
				assert.Contains(t, result.Warnings[0], "falling back to default '10m0s'")
			}
		})
	}

	t.Run("unset uses default silently", func(t *testing.T) {
		result := LoadEnvDuration("TEST_TIMEOUT", 10*time.Minute, ValidatePositiveDuration)
		assert.Equal(t, 10*time.Minute, result.Value)
		assert.Empty(t, result.Warnings)
		assert.False(t, result.FallbackApplied)
	})

	t.Run("range validator", func(t *testing.T) {
		t.Setenv("TEST_TIMEOUT", "10h")
		result := LoadEnvDuration("TEST_TIMEOUT", 10*time.Minute, func(d time.Duration) error {
			return ValidateDuration(d, time.Minute, 2*time.Hour)
		})
		assert.Equal(t, 10*time.Minute, result.Value)
		assert.True(t, result.FallbackApplied)
		assert.Contains(t, result.Warnings[0], "exceeds maximum")
	})
}

func TestLoadEnvInt(t *testing.T) {
	portValidator := func(v int) error { return ValidateIntRange(v, 1024, 65535) }

	tests := []struct {
		name         string
		value        string
		wantValue    int
		wantFallback bool
		wantWarning  string
	}{
		{"valid", "8080", 8080, false, ""},
		{"unparseable", "not-a-number", 9090, true, "invalid integer format"},
		{"below range", "100", 9090, true, "below minimum"},
		{"above range", "70000", 9090, true, "exceeds maximum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_PORT", tt.value)
			result := LoadEnvInt("TEST_PORT", 9090, portValidator)

			assert.Equal(t, tt.wantValue, result.Value)
			assert.Equal(t, tt.wantFallback, result.FallbackApplied)
			if tt.wantWarning != "" {
				assert.Contains(t, result.Warnings[0], tt.wantWarning)
			}
		})
	}

	t.Run("nil validator accepts negatives and zero", func(t *testing.T) {
		t.Setenv("TEST_COUNT", "-5")
		result := LoadEnvInt("TEST_COUNT", 3, nil)
		assert.Equal(t, -5, result.Value)
		assert.False(t, result.FallbackApplied)

		t.Setenv("TEST_COUNT", "0")
		result = LoadEnvInt("TEST_COUNT", 3, nil)
		assert.Equal(t, 0, result.Value)
	})

	t.Run("unset uses default silently", func(t *testing.T) {
		result := LoadEnvInt("TEST_PORT", 9090, portValidator)
		assert.Equal(t, 9090, result.Value)
		assert.Empty(t, result.Warnings)
	})
}

func TestLoadEnvBool(t *testing.T) {
	for _, raw := range []string{"1", "t", "T", "true", "TRUE", "True"} {
		t.Run("true spelling "+raw, func(t *testing.T) {
			t.Setenv("TEST_BOOL", raw)
			result := LoadEnvBool("TEST_BOOL", false)
			assert.Equal(t, true, result.Value)
			assert.False(t, result.FallbackApplied)
		})
	}

	for _, raw := range []string{"0", "f", "F", "false", "FALSE", "False"} {
		t.Run("false spelling "+raw, func(t *testing.T) {
			t.Setenv("TEST_BOOL", raw)
			result := LoadEnvBool("TEST_BOOL", true)
			assert.Equal(t, false, result.Value)
			assert.False(t, result.FallbackApplied)
		})
	}

	for _, raw := range []string{"yes", "no", "on", "off", "2", "maybe"} {
		t.Run("rejected spelling "+raw, func(t *testing.T) {
			t.Setenv("TEST_BOOL", raw)
			result := LoadEnvBool("TEST_BOOL", true)
			assert.Equal(t, true, result.Value)
			assert.True(t, result.FallbackApplied)
			assert.Contains(t, result.Warnings[0], "invalid boolean format")
			assert.Contains(t, result.Warnings[0], "falling back to default 'true'")
		})
	}

	t.Run("unset uses default silently", func(t *testing.T) {
		result := LoadEnvBool("TEST_BOOL", true)
		assert.Equal(t, true, result.Value)
		assert.Empty(t, result.Warnings)
	})
}

// A bad deployment can have several broken values at once; every loader
// must degrade independently instead of short-circuiting.
func TestLoaders_IndependentFallbacks(t *testing.T) {
	t.Setenv("SYNC_SCHEDULE", "invalid")
	t.Setenv("WORKER_TZ", "Mars/Olympus")
	t.Setenv("SYNC_TIMEOUT", "-5m")

	cron := LoadEnvWithFallback("SYNC_SCHEDULE", "*/5 * * * *", ValidateCronSchedule)
	tz := LoadEnvWithFallback("WORKER_TZ", "UTC", ValidateTimezone)
	timeout := LoadEnvDuration("SYNC_TIMEOUT", 10*time.Minute, ValidatePositiveDuration)

	assert.True(t, cron.FallbackApplied)
	assert.True(t, tz.FallbackApplied)
	assert.True(t, timeout.FallbackApplied)

	assert.Equal(t, "*/5 * * * *", cron.Value)
	assert.Equal(t, "UTC", tz.Value)
	assert.Equal(t, 10*time.Minute, timeout.Value)
}
