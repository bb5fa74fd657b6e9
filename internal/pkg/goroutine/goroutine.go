package goroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/shandysiswandi/otpbridge/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is multiplied by NumCPU when NewManager receives a non-positive limit.
const DefaultMaxGoroutine int = 100

var (
	// ErrManagerClosed is recorded when Go is called after Wait.
	ErrManagerClosed = errors.New("goroutine: manager is closed")
	// ErrLimitReached is recorded when no slot is available for a new job.
	ErrLimitReached = errors.New("goroutine: maximum goroutine limit reached")
)

// Manager runs named background jobs with a concurrency limit.
//
// Panics are recovered and turned into errors. Errors returned by jobs are
// collected and reported by Wait.
type Manager struct {
	mu      sync.Mutex
	errs    []error
	wg      sync.WaitGroup
	sema    chan struct{}
	stateMu sync.RWMutex
	closed  bool
}

// NewManager creates a Manager allowing at most maxGoroutine concurrent jobs.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{
		sema: make(chan struct{}, maxGoroutine),
	}
}

// Go schedules f in a goroutine when capacity is available.
//
// It reports false when the manager is closed or at its limit; in both cases
// f never runs.
func (g *Manager) Go(ctx context.Context, name string, f func(ctx context.Context) error) bool {
	if g == nil {
		return false
	}

	g.stateMu.RLock()
	defer g.stateMu.RUnlock()

	if g.closed {
		slog.WarnContext(ctx, "goroutine manager is closed, skipping job", "job", name)
		g.record(fmt.Errorf("%w: %s", ErrManagerClosed, name))
		return false
	}

	select {
	case g.sema <- struct{}{}:
	default:
		slog.WarnContext(ctx, "maximum goroutine limit reached, skipping job", "job", name)
		g.record(fmt.Errorf("%w: %s", ErrLimitReached, name))
		return false
	}

	g.wg.Go(func() {
		defer func() { <-g.sema }()

		if err := g.run(ctx, name, f); err != nil {
			g.record(fmt.Errorf("%s: %w", name, err))
		}
	})

	return true
}

func (g *Manager) run(ctx context.Context, name string, f func(ctx context.Context) error) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			stack := debug.Stack()
			if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
				slog.ErrorContext(ctx, "panic occurred in goroutine", "job", name, "because", rvr, "stack", paths)
			} else {
				slog.ErrorContext(ctx, "panic occurred in goroutine", "job", name, "because", rvr, "stack", string(stack))
			}
			err = fmt.Errorf("panic: %v", rvr)
		}
	}()

	if ctx.Err() != nil {
		slog.WarnContext(ctx, "goroutine canceled before start", "job", name, "because", ctx.Err())
		return nil
	}

	return f(ctx)
}

func (g *Manager) record(err error) {
	g.mu.Lock()
	g.errs = append(g.errs, err)
	g.mu.Unlock()
}

// Wait closes the manager, blocks until every scheduled job returns and
// reports the collected errors.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.stateMu.Lock()
	g.closed = true
	g.stateMu.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	return errors.Join(g.errs...)
}
