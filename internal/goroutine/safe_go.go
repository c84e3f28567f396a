package goroutine

import (
	"context"
	"runtime/debug"
)

// Logger is satisfied by *logrus.Logger and *logrus.Entry.
type Logger interface {
	Errorf(format string, args ...interface{})
}

// RecoveryHandler starts goroutines that log panics instead of crashing the
// process.
type RecoveryHandler struct {
	logger Logger
}

func NewRecoveryHandler(logger Logger) *RecoveryHandler {
	return &RecoveryHandler{logger: logger}
}

func (rh *RecoveryHandler) SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go func() {
		defer rh.handlePanic()
		fn(ctx)
	}()
}

func (rh *RecoveryHandler) handlePanic() {
	if r := recover(); r != nil {
		rh.logger.Errorf("panic in goroutine: %v\n%s", r, debug.Stack())
	}
}
