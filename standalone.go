package rethread

import "sync"

// StandaloneToken is a single-subscriber CancellationToken: at most
// one Guard may be registered against it at a time. The zero value is
// a ready-to-use, not-yet-cancelled token, the same as the one
// NewStandaloneToken returns.
type StandaloneToken struct {
	mu        sync.Mutex
	cancelled bool
	handler   Handler
}

var (
	_ Token     = (*StandaloneToken)(nil)
	_ registrar = (*StandaloneToken)(nil)
)

// NewStandaloneToken returns a new, not-yet-cancelled StandaloneToken.
func NewStandaloneToken() *StandaloneToken {
	return &StandaloneToken{}
}

// IsCancelled reports whether Cancel has been called.
func (t *StandaloneToken) IsCancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}

// Cancel marks the token cancelled and, if a handler is currently
// registered, invokes its Cancel method while holding the token's
// lock. Cancel is idempotent: calling it again after the token is
// already cancelled does nothing.
//
// Cancel holds the token's lock for the call's full duration,
// including any registered handler's Cancel method, exactly as
// spec.md §4.2 step 3 requires ("while still holding the mutex,
// invoke handler.cancel()"). unregisterHandler acquires that same
// lock before it ever looks at the handler slot, so the two can never
// run concurrently. spec.md's Cancelling state and the cv it
// describes unregister waiting behind exist for implementations that
// release the lock around the handler call; holding it throughout
// collapses that two-phase handshake into plain mutex exclusion, so
// there is nothing left for unregisterHandler to wait on.
func (t *StandaloneToken) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
}

func (t *StandaloneToken) cancelLocked() {
	if t.cancelled {
		return
	}
	t.cancelled = true

	if h := t.handler; h != nil {
		// Invoked with mu held: h.Cancel must not block or re-enter
		// the token, per the Handler contract.
		h.Cancel()
	}
}

// registerHandler implements the registrar protocol: it returns false
// without storing h if the token is already cancelled, otherwise it
// stores h and returns true.
func (t *StandaloneToken) registerHandler(h Handler) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancelled {
		return false
	}

	if t.handler != nil {
		panic("rethread: BUG: double registration on StandaloneToken")
	}

	t.handler = h
	return true
}

// unregisterHandler clears the handler slot and reports whether Cancel
// actually ran it, in which case the caller (Guard) must invoke Reset
// itself with no token lock held. Because Cancel holds t.mu for its
// entire duration, by the time unregisterHandler acquires the lock any
// concurrent Cancel has either not touched the handler yet or has
// already finished calling it — there is no in-between state to wait
// out.
func (t *StandaloneToken) unregisterHandler() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	cancelRan := t.cancelled && t.handler != nil
	t.handler = nil
	return cancelRan
}
