package bridge

import (
	"context"
)

// Call is a single dispatch across the native bridge.
type Call struct {
	Plugin string
	Action string
	Args   []any
}

// Bridge is the boundary to native code.
type Bridge interface {
	// Invoke runs the native action and returns its payload. Both the payload
	// and the error are defined by the native side.
	Invoke(ctx context.Context, call Call) (any, error)
}

// Func adapts a plain function to a Bridge.
type Func func(ctx context.Context, call Call) (any, error)

func (f Func) Invoke(ctx context.Context, call Call) (any, error) {
	return f(ctx, call)
}
