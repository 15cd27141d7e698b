package wait

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/rethread-go/rethread"
)

// defaultClock is the real wall clock used by SleepFor. Tests pass a
// *clock.Mock to SleepForWithClock instead, so the sleep_test
// scenario (spec.md §8, S3) can run on virtual time instead of
// sleeping for a full minute.
var defaultClock clock.Clock = clock.New()

// SleepFor blocks for d or until token is cancelled, whichever comes
// first. It reports true if it returned because d elapsed, false if
// it returned early because token was cancelled.
func SleepFor(d time.Duration, token rethread.Token) bool {
	return SleepForWithClock(defaultClock, d, token)
}

// SleepForWithClock is SleepFor parameterized over a clock.Clock, for
// deterministic tests.
func SleepForWithClock(clk clock.Clock, d time.Duration, token rethread.Token) bool {
	if d <= 0 {
		return true
	}

	woken := make(chan struct{})
	var once sync.Once
	h := rethread.HandlerFunc{CancelFunc: func() { once.Do(func() { close(woken) }) }}

	guard := rethread.NewGuard(token, h)
	defer guard.Close()

	if guard.IsCancelled() {
		return false
	}

	timer := clk.Timer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-woken:
		return false
	}
}
