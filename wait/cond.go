// Package wait adapts rethread's cancellation guard to specific
// blocking primitives: a condition variable, a timed sleep, and
// (on unix builds) poll(2) on a file descriptor.
package wait

import (
	"sync"

	"github.com/rethread-go/rethread"
)

// Cond is a *sync.Cond wrapper whose Wait methods return early when a
// rethread.Token is cancelled, without requiring the condition
// variable itself to know anything about cancellation.
//
// Grounded on the teacher's own cancellable condition variable,
// common/ctxsync.CancelableCond, re-pointed from a context.Context to
// a rethread.Token.
type Cond struct {
	cond *sync.Cond
}

// NewCond returns a Cond wrapping c. c.L must be the lock the caller
// holds across Wait calls, exactly as with *sync.Cond itself.
func NewCond(c *sync.Cond) *Cond {
	return &Cond{cond: c}
}

// Wait blocks until either c is broadcast/signalled or token is
// cancelled. The caller must hold the Cond's Locker, as with
// *sync.Cond.Wait; Wait releases it while blocked and reacquires it
// before returning, in either case.
//
// Because a spurious wakeup is already legal for a plain condition
// variable, Wait does not distinguish "woken by Broadcast/Signal"
// from "woken by cancellation" in its return value — callers that
// need to know which happened should re-check token.IsCancelled()
// after Wait returns, or use WaitPredicate.
func (c *Cond) Wait(token rethread.Token) {
	h := rethread.HandlerFunc{CancelFunc: c.cond.Broadcast}
	guard := rethread.NewGuard(token, h)
	defer guard.Close()

	if guard.IsCancelled() {
		return
	}

	c.cond.Wait()
}

// Broadcast wakes all goroutines waiting on c, as with *sync.Cond.
func (c *Cond) Broadcast() {
	c.cond.Broadcast()
}

// Signal wakes at most one goroutine waiting on c, as with *sync.Cond.
func (c *Cond) Signal() {
	c.cond.Signal()
}

// WaitPredicate loops Wait while !pred() and token is not cancelled,
// and returns pred()'s final value. The caller must hold the Cond's
// Locker across the call, exactly as for Wait.
func (c *Cond) WaitPredicate(token rethread.Token, pred func() bool) bool {
	for !pred() && !token.IsCancelled() {
		c.Wait(token)
	}
	return pred()
}
