package telemetry

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/xerrors"
)

func LevelFromEnv() (slog.Level, error) {
	logLevel := slog.LevelInfo
	if v, ok := os.LookupEnv("GO_LOG"); ok {
		if err := logLevel.UnmarshalText([]byte(v)); err != nil {
			return logLevel, xerrors.Errorf("failed to parse log level: %w", err)
		}
	}
	return logLevel, nil
}

func NewLogger(w io.Writer, level slog.Level, debug bool) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{
		Level: level,
		// https://opentelemetry.io/docs/specs/otel/logs/data-model/
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.LevelKey:
				a.Key = "severitytext"
			case slog.MessageKey:
				a.Key = "body"
			}
			return a
		},
	}
	if debug {
		return slog.New(slog.NewTextHandler(w, handlerOpts))
	}
	return slog.New(slog.NewJSONHandler(w, handlerOpts))
}
