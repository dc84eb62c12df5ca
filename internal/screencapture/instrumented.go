package screencapture

import (
	"screen-capture/internal/bridge"
	"screen-capture/internal/telemetry"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/xerrors"
)

// NewInstrumentedSession traces every call to native and exports call
// durations to registerer.
func NewInstrumentedSession(native bridge.Bridge, c Config, registerer prometheus.Registerer) (*Session, error) {
	meterProvider, err := telemetry.NewMeterProvider(registerer)
	if err != nil {
		return nil, xerrors.Errorf("failed to create meter provider: %w", err)
	}

	b, err := bridge.Instrument(native, nil, meterProvider, c.Logger)
	if err != nil {
		return nil, xerrors.Errorf("failed to instrument bridge: %w", err)
	}

	return NewSession(b, c), nil
}
