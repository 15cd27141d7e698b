// Package worker provides a joinable goroutine coupled to its own
// cancellation token, grounded on the teacher's
// common/service.BaseBackgroundService lifecycle (Start/Stop/Quit)
// trimmed to the narrower owning-thread contract of spec.md §4.7.
package worker

import (
	"sync"

	"github.com/rethread-go/rethread"
)

// Worker is a joinable goroutine plus a standalone cancellation
// token. Stopping or resetting the Worker cancels the token and
// joins the goroutine, exactly like the C++ original's thread
// destructor and reset() both do.
//
// The zero Worker has no goroutine; Stop and Reset are no-ops on it.
type Worker struct {
	mu     sync.Mutex
	token  *rethread.StandaloneToken
	done   chan struct{}
	active bool
}

// New starts a goroutine running fn, passing it a token that becomes
// cancelled when the Worker is stopped or reset. The token remains
// valid for fn's entire lifetime: the Worker joins fn before the
// token can be collected.
func New(fn func(token *rethread.StandaloneToken)) *Worker {
	w := &Worker{
		token: rethread.NewStandaloneToken(),
		done:  make(chan struct{}),
	}
	w.active = true

	go func() {
		defer close(w.done)
		fn(w.token)
	}()

	return w
}

// Stop cancels the token and joins the goroutine. Stop is idempotent
// and safe to call from any goroutine, any number of times; it is
// also safe to call on a zero Worker.
func (w *Worker) Stop() {
	w.mu.Lock()
	if w.done == nil {
		w.mu.Unlock()
		return
	}
	w.active = false
	token, done := w.token, w.done
	w.mu.Unlock()

	token.Cancel()
	<-done
}

// Wait blocks until fn has returned, without cancelling the token.
// It is safe to call concurrently with Stop and with itself.
func (w *Worker) Wait() {
	w.mu.Lock()
	done := w.done
	w.mu.Unlock()
	<-done
}

// Reset is an alias for Stop, matching the C++ original's reset(),
// which tears the owned thread down without starting a new one.
func (w *Worker) Reset() {
	w.Stop()
}

// Token returns the worker's cancellation token. It is valid to call
// from any goroutine at any time, including after Stop.
func (w *Worker) Token() *rethread.StandaloneToken {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.token
}
