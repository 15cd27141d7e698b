package rethread

// Guard binds a Handler to a Token for a lexical scope. Construct one
// with NewGuard immediately before a blocking call and Close it
// (typically via defer) immediately after the call returns:
//
//	guard := rethread.NewGuard(token, handler)
//	defer guard.Close()
//	if guard.IsCancelled() {
//		return
//	}
//	// ... perform the blocking call that handler knows how to wake ...
//
// Guard is not safe for concurrent use and must not be copied; share
// a *Guard, never a Guard, across goroutines if you must reference it
// after construction (most callers don't need to).
type Guard struct {
	r                registrar
	h                Handler
	cancelledOnEntry bool
	closed           bool
}

// NewGuard registers h against t. If t is already cancelled, the
// registration is skipped entirely: no handler is stored, and neither
// Cancel nor Reset will ever be called on h through this Guard.
func NewGuard(t Token, h Handler) *Guard {
	r := asRegistrar(t)
	registered := r.registerHandler(h)
	return &Guard{r: r, h: h, cancelledOnEntry: !registered}
}

// IsCancelled reports whether t was already cancelled at the moment
// this Guard was constructed. It never changes after construction —
// a Guard that registered successfully does not start reporting true
// just because its token was cancelled later; the caller observes
// that through the token itself, or through the blocking call
// returning early.
func (g *Guard) IsCancelled() bool {
	return g.cancelledOnEntry
}

// Close unregisters the handler, if one was registered, waiting out
// any in-flight Handler.Cancel call first. If that call ran, Close
// invokes Handler.Reset with no token lock held before returning.
//
// Close is idempotent and safe to call multiple times; only the first
// call has any effect.
func (g *Guard) Close() {
	if g.closed || g.cancelledOnEntry {
		g.closed = true
		return
	}
	g.closed = true

	if g.r.unregisterHandler() {
		g.h.Reset()
	}
}
