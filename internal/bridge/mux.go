package bridge

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/xerrors"
)

// ErrInvalidAction is returned for a plugin and action with no registered handler.
var ErrInvalidAction = errors.New("invalid action")

type route struct {
	plugin string
	action string
}

// Mux routes calls to handlers registered per plugin and action.
type Mux struct {
	mu       sync.RWMutex
	handlers map[route]Bridge
}

func NewMux() *Mux {
	return &Mux{
		handlers: map[route]Bridge{},
	}
}

func (m *Mux) Handle(plugin string, action string, handler Bridge) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers[route{plugin, action}] = handler
}

func (m *Mux) HandleFunc(plugin string, action string, handler func(ctx context.Context, call Call) (any, error)) {
	m.Handle(plugin, action, Func(handler))
}

func (m *Mux) Invoke(ctx context.Context, call Call) (any, error) {
	m.mu.RLock()
	handler, ok := m.handlers[route{call.Plugin, call.Action}]
	m.mu.RUnlock()

	if !ok {
		return nil, xerrors.Errorf("%s.%s: %w", call.Plugin, call.Action, ErrInvalidAction)
	}

	return handler.Invoke(ctx, call)
}
