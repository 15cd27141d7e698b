package rethread

// Handler is the callback pair a waiter supplies to a Guard so that
// cancellation can interrupt whatever blocking call the waiter is
// about to make.
//
// Cancel is invoked by a producer goroutine with the Token's internal
// lock held. Implementations must not block and must not call back
// into the Token that is invoking them — the contract is to perform
// the smallest possible action that will wake the blocked primitive
// (notify a condition variable, write one byte to a pipe, set a flag
// the waiter will observe).
//
// Reset is invoked on the waiter's own goroutine, with no Token locks
// held, after the blocking call has returned. It runs if and only if
// Cancel ran, and restores whatever transient state Cancel introduced
// (draining a pipe, say). Reset may block and may allocate.
type Handler interface {
	Cancel()
	Reset()
}

// HandlerFunc adapts a pair of closures to the Handler interface. Most
// adapters in rethread/wait use this instead of declaring a named
// type, since each only needs a one-line Cancel and a one-line Reset.
type HandlerFunc struct {
	CancelFunc func()
	ResetFunc  func()
}

// Cancel calls CancelFunc, if set.
func (h HandlerFunc) Cancel() {
	if h.CancelFunc != nil {
		h.CancelFunc()
	}
}

// Reset calls ResetFunc, if set.
func (h HandlerFunc) Reset() {
	if h.ResetFunc != nil {
		h.ResetFunc()
	}
}
