package supervise

import (
	"context"

	"github.com/bkocaman/harbor/errors"
)

type outcome[T any] struct {
	val T
	err error
}

// Run executes work on a runtime-managed goroutine and suspends the caller
// until the task finishes. The conversion rule is uniform across call
// sites:
//
//   - work returns (v, nil)  → (v, nil)
//   - work returns an error  → TaskFailed wrapping it
//   - work panics            → TaskPanicked with the panic's message, or
//     the call-site fallback when the panic value carries no message
//
// Context cancellation while the task is in flight is fatal for the
// bootstrap sequence and surfaces as TaskFailed wrapping the context error;
// the abandoned task keeps its goroutine until it returns on its own.
func Run[T any](ctx context.Context, rt *Runtime, fallback string, work func(context.Context) (T, error)) (T, error) {
	results := make(chan outcome[T], 1)

	rt.spawn(func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				results <- outcome[T]{zero, errors.TaskPanicked(panicMessage(r, fallback))}
			}
		}()

		v, err := work(ctx)
		if err != nil {
			var zero T
			results <- outcome[T]{zero, errors.TaskFailed(err)}
			return
		}
		results <- outcome[T]{v, nil}
	})

	select {
	case out := <-results:
		return out.val, out.err
	case <-ctx.Done():
		var zero T
		return zero, errors.TaskFailed(ctx.Err())
	}
}

// RunErr supervises work that produces no value.
func RunErr(ctx context.Context, rt *Runtime, fallback string, work func(context.Context) error) error {
	_, err := Run(ctx, rt, fallback, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, work(ctx)
	})
	return err
}

// panicMessage extracts the diagnostic message attached to a panic value.
// String and error panics carry their own message; anything else falls back
// to the call-site placeholder.
func panicMessage(r any, fallback string) string {
	switch v := r.(type) {
	case string:
		return v
	case error:
		return v.Error()
	default:
		return fallback
	}
}
