package goroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestManager(t *testing.T) {
	t.Run("CollectsErrors", func(t *testing.T) {

		// Arrange
		m := NewManager(4)
		errBoom := errors.New("boom")
		var ran atomic.Int32

		// Act
		m.Go(context.Background(), "ok", func(context.Context) error {
			ran.Add(1)
			return nil
		})
		m.Go(context.Background(), "fails", func(context.Context) error {
			ran.Add(1)
			return errBoom
		})
		err := m.Wait()

		// Assert
		if ran.Load() != 2 {
			t.Fatalf("expected 2 jobs to run, got %d", ran.Load())
		}
		if !errors.Is(err, errBoom) {
			t.Fatalf("expected joined error to contain errBoom, got %v", err)
		}
	})

	t.Run("RecoversPanic", func(t *testing.T) {

		// Arrange
		m := NewManager(1)

		// Act
		m.Go(context.Background(), "panics", func(context.Context) error {
			panic("kaboom")
		})
		err := m.Wait()

		// Assert
		if err == nil {
			t.Fatalf("expected panic to be reported as error")
		}
	})

	t.Run("RejectsAfterWait", func(t *testing.T) {

		// Arrange
		m := NewManager(1)
		if err := m.Wait(); err != nil {
			t.Fatalf("unexpected wait error: %v", err)
		}

		// Act
		ok := m.Go(context.Background(), "late", func(context.Context) error { return nil })

		// Assert
		if ok {
			t.Fatalf("expected Go to reject jobs after Wait")
		}
	})

	t.Run("RejectsWhenFull", func(t *testing.T) {

		// Arrange
		m := NewManager(1)
		release := make(chan struct{})
		started := make(chan struct{})
		m.Go(context.Background(), "blocking", func(context.Context) error {
			close(started)
			<-release
			return nil
		})
		<-started

		// Act
		ok := m.Go(context.Background(), "overflow", func(context.Context) error { return nil })
		close(release)
		err := m.Wait()

		// Assert
		if ok {
			t.Fatalf("expected overflow job to be rejected")
		}
		if !errors.Is(err, ErrLimitReached) {
			t.Fatalf("expected ErrLimitReached, got %v", err)
		}
	})

	t.Run("SkipsCanceledContext", func(t *testing.T) {

		// Arrange
		m := NewManager(1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var ran atomic.Bool

		// Act
		m.Go(ctx, "canceled", func(context.Context) error {
			ran.Store(true)
			return nil
		})
		err := m.Wait()

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ran.Load() {
			t.Fatalf("expected job not to run with canceled context")
		}
	})
}
