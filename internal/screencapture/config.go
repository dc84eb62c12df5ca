package screencapture

import (
	"log/slog"
	"os"
	"screen-capture/internal/telemetry"
	"strconv"
	"time"

	"k8s.io/utils/clock"
)

const DefaultDelayBeforeCapture = 200 * time.Millisecond

type Config struct {
	// DelayBeforeCapture lets the view settle before a delayed call reaches the bridge.
	DelayBeforeCapture time.Duration

	Clock  clock.WithDelayedExecution
	Logger *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		DelayBeforeCapture: DefaultDelayBeforeCapture,
		Clock:              clock.RealClock{},
		Logger:             slog.Default(),
	}
}

// ConfigFromEnv reads DELAY_BEFORE_CAPTURE as a Go duration or as a bare
// number of milliseconds, and builds the logger from GO_LOG and DEBUG.
func ConfigFromEnv() (Config, error) {
	c := DefaultConfig()

	level, err := telemetry.LevelFromEnv()
	if err != nil {
		return c, err
	}
	c.Logger = telemetry.NewLogger(os.Stderr, level, envOrDefaultValue("DEBUG", false))

	c.DelayBeforeCapture = delayFromEnv(c.Logger, "DELAY_BEFORE_CAPTURE", DefaultDelayBeforeCapture)
	return c, nil
}

func delayFromEnv(logger *slog.Logger, key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if milliseconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(milliseconds) * time.Millisecond
	}

	logger.Warn("ignoring invalid delay", "key", key, "value", value, "default", defaultValue)
	return defaultValue
}

func envOrDefaultValue[T any](key string, defaultValue T) T {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	switch any(defaultValue).(type) {
	case string:
		return any(value).(T)
	case int:
		if intValue, err := strconv.Atoi(value); err == nil {
			return any(intValue).(T)
		}
	case float64:
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return any(floatValue).(T)
		}
	case bool:
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return any(boolValue).(T)
		}
	case time.Duration:
		if durationValue, err := time.ParseDuration(value); err == nil {
			return any(durationValue).(T)
		}
	}

	return defaultValue
}
