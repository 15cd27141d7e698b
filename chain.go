package rethread

// canceller is satisfied by anything that can be told to cancel: a
// *StandaloneToken or a *Source. It lets Chain accept either a single
// downstream token or a whole downstream Source without a sum type.
type canceller interface {
	Cancel()
}

var (
	_ canceller = (*StandaloneToken)(nil)
	_ canceller = (*Source)(nil)
)

// Chain forwards cancellation from an upstream Token to a downstream
// canceller for as long as the Chain is alive. Cancelling upstream
// causes downstream to observe cancellation before upstream.Cancel()
// (if upstream is itself a *StandaloneToken or *Source) returns.
//
// Chain is, internally, nothing but a Guard whose Handler calls
// downstream.Cancel — composing cancellation chains requires no
// special-casing anywhere else in the package, because upstream sees
// the chain's handler exactly like any other registered handler.
type Chain struct {
	guard *Guard
}

// NewChain installs a handler on upstream that cancels downstream
// when upstream is cancelled. If upstream is already cancelled,
// downstream is cancelled immediately and synchronously, before
// NewChain returns.
func NewChain(upstream Token, downstream canceller) *Chain {
	h := HandlerFunc{CancelFunc: downstream.Cancel}
	g := NewGuard(upstream, h)
	if g.IsCancelled() {
		downstream.Cancel()
	}
	return &Chain{guard: g}
}

// Close unregisters the chain's handler from upstream. Downstream is
// left exactly as it was; Close never cancels anything.
func (c *Chain) Close() {
	c.guard.Close()
}
