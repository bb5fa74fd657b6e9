package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"

	"github.com/shandysiswandi/otpbridge/internal/pkg/stacktrace"
)

// responder guards a message so that only its first Ack or Nack reaches the broker.
type responder struct {
	responded atomic.Bool
}

func (r *responder) claim() bool {
	return !r.responded.Swap(true)
}

func (r *responder) hasResponded() bool {
	return r.responded.Load()
}

type respondingMessage interface {
	Message
	hasResponded() bool
}

// dispatch runs handler with panic recovery and applies auto-ack.
func dispatch(ctx context.Context, kind string, msg respondingMessage, handler Handler, autoAck bool) error {
	herr := callHandlerWithRecover(ctx, kind, func() error {
		return handler(ctx, msg)
	})

	if msg.hasResponded() || !autoAck {
		return herr
	}
	if herr == nil {
		return msg.Ack(ctx)
	}
	if err := msg.Nack(ctx); err != nil {
		slog.WarnContext(ctx, "failed to nack message", "kind", kind, "error", err)
	}
	return herr
}

func callHandlerWithRecover(ctx context.Context, kind string, fn func() error) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			stack := debug.Stack()
			if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
				slog.ErrorContext(ctx, "panic in messaging handler", "kind", kind, "panic", rvr, "stack", paths)
			} else {
				slog.ErrorContext(ctx, "panic in messaging handler", "kind", kind, "panic", rvr, "stack", string(stack))
			}
			err = fmt.Errorf("pkgmessage: panic in %s handler: %v", kind, rvr)
		}
	}()

	return fn()
}

func validateConsume(ctx context.Context, source string, handler Handler) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrSourceRequired
	}
	if handler == nil {
		return ErrHandlerRequired
	}
	return nil
}
