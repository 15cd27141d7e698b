package rethread

// Token is an observable, one-shot cancellation flag.
//
// IsCancelled is monotonic: once it returns true, it returns true for
// the remaining lifetime of the Token. A Token is cancelled at most
// once; there is no way to "uncancel" it.
//
// Registration of a Handler is not part of the exported Token
// interface — it is exercised only through Guard, which looks for an
// unexported registrar implementation on any Token it is given (every
// Token this package constructs provides one). A caller-supplied Token
// implementation that does not also implement registrar is, from a
// Guard's point of view, always "already cancelled": Guard reports
// IsCancelled for it and never invokes a Handler.
type Token interface {
	// IsCancelled reports whether this token has been cancelled.
	IsCancelled() bool
}

// registrar is the internal registration protocol described in
// spec.md §4.2. Guard is the sole caller.
type registrar interface {
	// registerHandler attempts to register h as the token's single
	// active handler. It reports false without storing h if the token
	// is already cancelled; the caller must not block in that case.
	registerHandler(h Handler) bool

	// unregisterHandler removes the registered handler, if any,
	// waiting out a concurrent cancel() call if one is in progress. It
	// reports whether h.Cancel() actually ran during the registration
	// episode that is being torn down; if so, the caller (Guard) must
	// invoke h.Reset() itself, with no token locks held.
	unregisterHandler() (cancelRan bool)
}

// asRegistrar returns t's registrar implementation, or a registrar
// that always reports "already cancelled" if t does not provide one.
func asRegistrar(t Token) registrar {
	if r, ok := t.(registrar); ok {
		return r
	}
	return alreadyCancelledRegistrar{}
}

// alreadyCancelledRegistrar is the registrar Guard uses for a Token
// that provides none: every registration reports "already cancelled".
type alreadyCancelledRegistrar struct{}

func (alreadyCancelledRegistrar) registerHandler(Handler) bool { return false }
func (alreadyCancelledRegistrar) unregisterHandler() bool      { return false }

// DummyToken is a Token that is never cancelled. Registration against
// it always succeeds as a no-op: a Guard built on a DummyToken reports
// not cancelled, never stores a Handler, and never calls Cancel or
// Reset on it. The zero value is ready to use and DummyToken is safe
// to copy.
type DummyToken struct{}

var _ Token = DummyToken{}
var _ registrar = DummyToken{}

// IsCancelled always returns false for DummyToken.
func (DummyToken) IsCancelled() bool { return false }

func (DummyToken) registerHandler(Handler) bool { return true }
func (DummyToken) unregisterHandler() bool      { return false }
