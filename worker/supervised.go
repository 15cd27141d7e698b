package worker

import (
	"fmt"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-multierror"

	"github.com/rethread-go/rethread"
	"github.com/rethread-go/rethread/wait"
)

// RestartLogger receives one line per restart attempt. Supervised
// does no logging itself beyond this hook, matching rethread's
// latency-sensitive, log-nothing-by-default core (see SPEC_FULL.md
// §7); callers that want the teacher's structured logging wire
// internal/logging through this hook themselves.
type RestartLogger func(attempt int, err error)

// SupervisedWorker is a Worker whose function is restarted, with a
// backoff policy between attempts, for as long as it keeps failing
// and the token has not been cancelled.
//
// This generalizes the bare owning-thread contract of spec.md §4.7
// with the restart-with-backoff layer a production service (compare
// the teacher's common/service.BackgroundService) adds on top of a
// joinable thread; the underlying Worker primitive itself carries no
// such policy.
type SupervisedWorker struct {
	*Worker

	mu          sync.Mutex
	lastErr     error
	interrupted bool
}

// Supervised starts fn and restarts it on error, backing off between
// attempts per policy, until fn returns nil, token is cancelled, or
// policy returns backoff.Stop.
func Supervised(fn func(token *rethread.StandaloneToken) error, policy backoff.BackOff, onRestart RestartLogger) *SupervisedWorker {
	sw := &SupervisedWorker{}

	sw.Worker = New(func(token *rethread.StandaloneToken) {
		attempt := 0
		for {
			err := fn(token)

			sw.mu.Lock()
			sw.lastErr = err
			sw.mu.Unlock()

			if err == nil || token.IsCancelled() {
				return
			}

			attempt++
			if onRestart != nil {
				onRestart(attempt, err)
			}

			d := policy.NextBackOff()
			if d == backoff.Stop {
				return
			}

			if !wait.SleepFor(d, token) {
				sw.mu.Lock()
				sw.interrupted = true
				sw.mu.Unlock()
				return
			}
		}
	})

	return sw
}

// Stop cancels the token and joins the goroutine, like Worker.Stop,
// and additionally reports the supervised function's last error
// combined with a note if supervision was cancelled mid-backoff,
// using the same aggregation pattern the teacher applies to
// consensus/runtime errors.
func (sw *SupervisedWorker) Stop() error {
	sw.Worker.Stop()

	sw.mu.Lock()
	defer sw.mu.Unlock()

	var result *multierror.Error
	if sw.lastErr != nil {
		result = multierror.Append(result, sw.lastErr)
	}
	if sw.interrupted {
		result = multierror.Append(result, fmt.Errorf("rethread: worker: supervision cancelled while backing off"))
	}
	return result.ErrorOrNil()
}
