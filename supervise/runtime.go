package supervise

import "sync"

// Runtime is the managed execution context supervised tasks run on. It
// tracks the goroutines it spawned so a host can wait for them to drain.
type Runtime struct {
	wg sync.WaitGroup
}

// NewRuntime creates a runtime.
func NewRuntime() *Runtime {
	return &Runtime{}
}

// spawn runs fn on a tracked goroutine.
func (rt *Runtime) spawn(fn func()) {
	rt.wg.Add(1)
	go func() {
		defer rt.wg.Done()
		fn()
	}()
}

// Wait blocks until every spawned task has finished.
func (rt *Runtime) Wait() {
	rt.wg.Wait()
}
