package worker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"

	"github.com/rethread-go/rethread"
	"github.com/rethread-go/rethread/wait"
)

// TestWorkerStopJoins is scenario S5 from spec.md §8: a worker loops
// on its own token; Stop must cancel it and block until it has
// actually returned.
func TestWorkerStopJoins(t *testing.T) {
	require := require.New(t)

	var finished bool
	var mu sync.Mutex

	w := New(func(token *rethread.StandaloneToken) {
		var innerMu sync.Mutex
		cv := wait.NewCond(sync.NewCond(&innerMu))

		innerMu.Lock()
		for !token.IsCancelled() {
			cv.Wait(token)
		}
		innerMu.Unlock()

		mu.Lock()
		finished = true
		mu.Unlock()
	})

	time.Sleep(10 * time.Millisecond)
	mu.Lock()
	require.False(finished, "worker must not have finished before Stop")
	mu.Unlock()

	w.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.True(finished, "worker must have finished by the time Stop returns")
	require.True(w.Token().IsCancelled())
}

// TestWorkerStopIdempotent exercises Stop/Reset called repeatedly and
// from multiple goroutines, which must never block past the first
// join or panic on the underlying token.
func TestWorkerStopIdempotent(t *testing.T) {
	require := require.New(t)

	w := New(func(token *rethread.StandaloneToken) {
		<-time.After(5 * time.Millisecond)
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Stop()
		}()
	}
	wg.Wait()

	w.Reset()
	require.True(w.Token().IsCancelled())
}

// TestSupervisedRestartsOnError exercises Supervised's restart loop:
// fn fails twice, then succeeds, and the worker must stop on its own
// without the token ever being cancelled.
func TestSupervisedRestartsOnError(t *testing.T) {
	require := require.New(t)

	var attempts int
	var mu sync.Mutex

	var restarts []int
	sw := Supervised(func(token *rethread.StandaloneToken) error {
		mu.Lock()
		attempts++
		n := attempts
		mu.Unlock()

		if n < 3 {
			return errors.New("transient failure")
		}
		return nil
	}, backoff.NewConstantBackOff(time.Millisecond), func(attempt int, err error) {
		mu.Lock()
		restarts = append(restarts, attempt)
		mu.Unlock()
	})

	select {
	case <-sw.Worker.done:
	case <-time.After(3 * time.Second):
		t.Fatal("supervised worker did not finish after succeeding")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Equal(3, attempts)
	require.Equal([]int{1, 2}, restarts)
	require.NoError(sw.Stop())
}

// TestSupervisedStopDuringBackoff cancels a supervised worker while
// it is sleeping between restart attempts; Stop must join promptly
// and report the last error.
func TestSupervisedStopDuringBackoff(t *testing.T) {
	require := require.New(t)

	boom := errors.New("boom")
	sw := Supervised(func(token *rethread.StandaloneToken) error {
		return boom
	}, backoff.NewConstantBackOff(time.Hour), nil)

	time.Sleep(20 * time.Millisecond)

	done := make(chan error, 1)
	go func() {
		done <- sw.Stop()
	}()

	select {
	case err := <-done:
		require.Error(err)
		require.ErrorIs(err, boom)
	case <-time.After(3 * time.Second):
		t.Fatal("Stop did not join a worker blocked in backoff")
	}
}

// TestSupervisedStopsOnBackoffExhaustion verifies that a Stop policy
// returning backoff.Stop ends supervision without cancelling the
// token, leaving that decision to the caller.
func TestSupervisedStopsOnBackoffExhaustion(t *testing.T) {
	require := require.New(t)

	always := errors.New("always fails")
	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), 1)
	sw := Supervised(func(token *rethread.StandaloneToken) error {
		return always
	}, policy, nil)

	select {
	case <-sw.Worker.done:
	case <-time.After(3 * time.Second):
		t.Fatal("supervised worker did not give up after exhausting backoff")
	}

	require.False(sw.Token().IsCancelled())
	require.ErrorIs(sw.Stop(), always)
}
