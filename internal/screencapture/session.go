package screencapture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"screen-capture/internal/bridge"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/xerrors"
	"k8s.io/utils/clock"
)

const (
	PluginName              = "ScreenCapture"
	ActionCapture           = "capture"
	ActionCaptureAndCompare = "captureAndCompare"
)

var ErrPanicked = errors.New("panic during bridge call")

type SuccessFunc func(result any)

type ErrorFunc func(err error)

// Session issues capture calls across a bridge. It owns the capture delay and
// the completion flag of delayed calls.
type Session struct {
	bridge bridge.Bridge
	clock  clock.WithDelayedExecution
	logger *slog.Logger

	delayBeforeCapture atomic.Int64

	mu              sync.Mutex
	generation      uint64
	captureComplete bool
}

func NewSession(b bridge.Bridge, c Config) *Session {
	if c.Clock == nil {
		c.Clock = clock.RealClock{}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}

	s := &Session{
		bridge: b,
		clock:  c.Clock,
		logger: c.Logger,
	}
	s.delayBeforeCapture.Store(int64(c.DelayBeforeCapture))
	return s
}

func (s *Session) DelayBeforeCapture() time.Duration {
	return time.Duration(s.delayBeforeCapture.Load())
}

// SetDelayBeforeCapture changes the delay used by delayed calls made after it returns.
func (s *Session) SetDelayBeforeCapture(d time.Duration) {
	s.delayBeforeCapture.Store(int64(d))
}

// CaptureComplete reports whether the most recently scheduled delayed call has
// finished. It turns false as soon as a delayed call is scheduled.
func (s *Session) CaptureComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.captureComplete
}

func (s *Session) beginCapture() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.captureComplete = false
	return s.generation
}

// completeCapture only marks the flag for the latest scheduled call.
func (s *Session) completeCapture(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation == generation {
		s.captureComplete = true
	}
}

func (s *Session) Capture(ctx context.Context, onSuccess SuccessFunc, onError ErrorFunc, captureOptions CaptureOptions) *Operation {
	return s.dispatch(ctx, captureCall(captureOptions), onSuccess, onError)
}

func (s *Session) CaptureAndCompare(ctx context.Context, onSuccess SuccessFunc, onError ErrorFunc, captureOptions CaptureOptions, compareOptions CompareOptions) *Operation {
	return s.dispatch(ctx, captureAndCompareCall(captureOptions, compareOptions), onSuccess, onError)
}

// CallCaptureDelay schedules Capture after DelayBeforeCapture. A scheduled call
// cannot be aborted.
func (s *Session) CallCaptureDelay(ctx context.Context, onSuccess SuccessFunc, onError ErrorFunc, captureOptions CaptureOptions) *Operation {
	return s.schedule(ctx, captureCall(captureOptions), onSuccess, onError)
}

func (s *Session) CallCaptureAndCompareDelay(ctx context.Context, onSuccess SuccessFunc, onError ErrorFunc, captureOptions CaptureOptions, compareOptions CompareOptions) *Operation {
	return s.schedule(ctx, captureAndCompareCall(captureOptions, compareOptions), onSuccess, onError)
}

func captureCall(captureOptions CaptureOptions) bridge.Call {
	return bridge.Call{
		Plugin: PluginName,
		Action: ActionCapture,
		Args:   []any{captureOptions},
	}
}

func captureAndCompareCall(captureOptions CaptureOptions, compareOptions CompareOptions) bridge.Call {
	return bridge.Call{
		Plugin: PluginName,
		Action: ActionCaptureAndCompare,
		Args:   []any{captureOptions, compareOptions},
	}
}

func (s *Session) dispatch(ctx context.Context, call bridge.Call, onSuccess SuccessFunc, onError ErrorFunc) *Operation {
	operation := newOperation(call)
	go s.run(ctx, operation, onSuccess, onError, 0)
	return operation
}

func (s *Session) schedule(ctx context.Context, call bridge.Call, onSuccess SuccessFunc, onError ErrorFunc) *Operation {
	generation := s.beginCapture()

	delay := s.DelayBeforeCapture()
	operation := newOperation(call)

	s.logger.DebugContext(ctx, "scheduled bridge call", "plugin", call.Plugin, "action", call.Action, "delay", delay)

	// Fake clocks fire AfterFunc callbacks while holding their lock.
	s.clock.AfterFunc(delay, func() {
		go s.run(ctx, operation, onSuccess, onError, generation)
	})

	return operation
}

// run settles operation even when the bridge or a callback panics. A non-zero
// generation marks a delayed call.
func (s *Session) run(ctx context.Context, operation *Operation, onSuccess SuccessFunc, onError ErrorFunc, generation uint64) {
	call := operation.call

	var result any
	var err error
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, fmt.Sprintf("%v", r), "plugin", call.Plugin, "action", call.Action, "stack", string(debug.Stack()))
			if err == nil {
				err = xerrors.Errorf("%s.%s: %w", call.Plugin, call.Action, ErrPanicked)
			}
		}

		if generation != 0 {
			s.completeCapture(generation)
		}
		operation.settle(result, err)
	}()

	result, err = s.bridge.Invoke(ctx, call)
	if err != nil {
		s.logger.DebugContext(ctx, "bridge call failed", "plugin", call.Plugin, "action", call.Action, "error", err)
		if onError != nil {
			onError(err)
		}
	} else if onSuccess != nil {
		onSuccess(result)
	}
}

// Operation is a pending bridge call.
type Operation struct {
	call   bridge.Call
	done   chan struct{}
	result any
	err    error
}

func newOperation(call bridge.Call) *Operation {
	return &Operation{
		call: call,
		done: make(chan struct{}),
	}
}

func (o *Operation) settle(result any, err error) {
	o.result = result
	o.err = err
	close(o.done)
}

func (o *Operation) Call() bridge.Call {
	return o.call
}

// Done is closed once the bridge has reported back and the callbacks have run.
func (o *Operation) Done() <-chan struct{} {
	return o.done
}

// Wait blocks until the operation settles and returns the bridge result. If ctx
// ends first the operation keeps running and Wait returns the context error.
func (o *Operation) Wait(ctx context.Context) (any, error) {
	select {
	case <-o.done:
		return o.result, o.err
	case <-ctx.Done():
		return nil, xerrors.Errorf("failed to wait for %s.%s: %w", o.call.Plugin, o.call.Action, ctx.Err())
	}
}
