package supervise

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/bkocaman/harbor/errors"
)

func TestRunSuccess(t *testing.T) {
	rt := NewRuntime()
	v, err := Run(context.Background(), rt, "panicked", func(ctx context.Context) (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Errorf("expected 42, got %d", v)
	}
}

func TestRunErrorBecomesTaskFailed(t *testing.T) {
	rt := NewRuntime()
	inner := stderrors.New("no database")
	_, err := Run(context.Background(), rt, "panicked", func(ctx context.Context) (int, error) {
		return 0, inner
	})
	if !errors.IsCode(err, errors.CodeTaskFailed) {
		t.Fatalf("expected TASK_FAILED, got %v", err)
	}
	if !stderrors.Is(err, inner) {
		t.Error("expected TaskFailed to wrap the inner error")
	}
}

func TestRunPanicWithMessage(t *testing.T) {
	rt := NewRuntime()
	_, err := Run(context.Background(), rt, "fallback text", func(ctx context.Context) (int, error) {
		panic("boom")
	})
	if !errors.IsCode(err, errors.CodeTaskPanicked) {
		t.Fatalf("expected TASK_PANICKED, got %v", err)
	}
	be, _ := errors.AsBootError(err)
	if be.Message != "boom" {
		t.Errorf("expected panic message 'boom', got %q", be.Message)
	}
}

func TestRunPanicWithErrorValue(t *testing.T) {
	rt := NewRuntime()
	_, err := Run(context.Background(), rt, "fallback text", func(ctx context.Context) (int, error) {
		panic(stderrors.New("exploded"))
	})
	be, ok := errors.AsBootError(err)
	if !ok || be.Code != errors.CodeTaskPanicked {
		t.Fatalf("expected TASK_PANICKED, got %v", err)
	}
	if be.Message != "exploded" {
		t.Errorf("expected 'exploded', got %q", be.Message)
	}
}

func TestRunPanicWithoutMessageUsesFallback(t *testing.T) {
	rt := NewRuntime()
	_, err := Run(context.Background(), rt, "panicked during bootstrap", func(ctx context.Context) (int, error) {
		panic(struct{ n int }{7})
	})
	be, ok := errors.AsBootError(err)
	if !ok || be.Code != errors.CodeTaskPanicked {
		t.Fatalf("expected TASK_PANICKED, got %v", err)
	}
	if be.Message != "panicked during bootstrap" {
		t.Errorf("expected fallback text, got %q", be.Message)
	}
}

func TestRunFailedDistinctFromPanicked(t *testing.T) {
	rt := NewRuntime()
	_, errFailed := Run(context.Background(), rt, "f", func(ctx context.Context) (int, error) {
		return 0, stderrors.New("x")
	})
	_, errPanicked := Run(context.Background(), rt, "f", func(ctx context.Context) (int, error) {
		panic("x")
	})
	if errors.CodeOf(errFailed) == errors.CodeOf(errPanicked) {
		t.Error("TaskFailed and TaskPanicked must be distinguishable")
	}
}

func TestRunContextCanceled(t *testing.T) {
	rt := NewRuntime()
	ctx, cancel := context.WithCancel(context.Background())

	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := Run(ctx, rt, "f", func(ctx context.Context) (int, error) {
			<-release
			return 0, nil
		})
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.IsCode(err, errors.CodeTaskFailed) {
			t.Errorf("expected TASK_FAILED on cancellation, got %v", err)
		}
		if !stderrors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled in chain, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	close(release)
	rt.Wait()
}

func TestRunErr(t *testing.T) {
	rt := NewRuntime()
	if err := RunErr(context.Background(), rt, "f", func(ctx context.Context) error {
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := RunErr(context.Background(), rt, "failed to bind service", func(ctx context.Context) error {
		panic(123)
	})
	be, ok := errors.AsBootError(err)
	if !ok || be.Code != errors.CodeTaskPanicked {
		t.Fatalf("expected TASK_PANICKED, got %v", err)
	}
	if be.Message != "failed to bind service" {
		t.Errorf("expected fallback, got %q", be.Message)
	}
}
