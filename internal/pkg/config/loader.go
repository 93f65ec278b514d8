// Package config provides fail-open environment loaders and validators.
//
// A loader never returns an error: an unset variable yields the default
// silently, and an unparsable or invalid value yields the default together
// with a warning. Callers log the warning and count the fallback through
// ConfigMetrics, usually via Resolve.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Result is the outcome of loading one environment variable.
type Result[T any] struct {
	Key             string
	Value           T
	Warning         string
	FallbackApplied bool
}

// loadEnv reads key, parses it and validates it. Any failure falls back to def.
func loadEnv[T any](key string, def T, parse func(string) (T, error), validate func(T) error) Result[T] {
	raw := os.Getenv(key)
	if raw == "" {
		return Result[T]{Key: key, Value: def}
	}

	v, err := parse(raw)
	if err == nil && validate != nil {
		err = validate(v)
	}
	if err != nil {
		return Result[T]{
			Key:             key,
			Value:           def,
			Warning:         fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'", key, raw, err, def),
			FallbackApplied: true,
		}
	}
	return Result[T]{Key: key, Value: v}
}

// LoadEnvString returns the variable's value, or defaultValue when unset.
func LoadEnvString(envKey, defaultValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return defaultValue
}

// LoadEnvWithFallback loads a string and validates it; validator may be nil.
//
//	r := LoadEnvWithFallback("IMPORT_CRON_SCHEDULE", "0 * * * *", ValidateCronSchedule)
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) Result[string] {
	return loadEnv(envKey, defaultValue, func(s string) (string, error) { return s, nil }, validator)
}

// LoadEnvInt loads a base-10 integer. Surrounding spaces, decimals and
// trailing characters are rejected.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) Result[int] {
	return loadEnv(envKey, defaultValue, func(s string) (int, error) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, errors.New("invalid integer format")
		}
		return n, nil
	}, validator)
}

// LoadEnvDuration loads a time.ParseDuration string such as "90s" or "1h30m".
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) Result[time.Duration] {
	return loadEnv(envKey, defaultValue, time.ParseDuration, validator)
}

// LoadEnvBool loads a boolean in any form accepted by strconv.ParseBool.
func LoadEnvBool(envKey string, defaultValue bool) Result[bool] {
	return loadEnv(envKey, defaultValue, func(s string) (bool, error) {
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return false, errors.New("invalid boolean format, expected 'true' or 'false'")
		}
		return b, nil
	}, nil)
}

// Resolve logs a fallback warning, records it on m (may be nil) and returns
// the loaded value.
func Resolve[T any](logger *slog.Logger, m *ConfigMetrics, r Result[T]) T {
	if r.FallbackApplied {
		logger.Warn("configuration fallback applied",
			slog.String("field", r.Key),
			slog.String("warning", r.Warning))
		if m != nil {
			m.RecordValidationError(r.Key)
			m.RecordFallback(r.Key)
			m.SetFallbackActive(true)
		}
	}
	return r.Value
}
