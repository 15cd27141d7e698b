package rethread

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestChainPropagatesToStandaloneToken(t *testing.T) {
	require := require.New(t)

	upstream := NewStandaloneToken()
	downstream := NewStandaloneToken()

	chain := NewChain(upstream, downstream)
	defer chain.Close()

	require.False(downstream.IsCancelled())
	upstream.Cancel()
	require.True(downstream.IsCancelled(), "downstream must observe cancellation once upstream.Cancel returns")
}

func TestChainPropagatesToSource(t *testing.T) {
	require := require.New(t)

	upstream := NewStandaloneToken()
	downstream := NewSource()
	token := downstream.NewToken()

	chain := NewChain(upstream, downstream)
	defer chain.Close()

	require.False(token.IsCancelled())
	upstream.Cancel()
	require.True(downstream.IsCancelled())
	require.True(token.IsCancelled())
}

func TestChainAlreadyCancelledUpstreamPropagatesImmediately(t *testing.T) {
	require := require.New(t)

	upstream := NewStandaloneToken()
	upstream.Cancel()

	downstream := NewStandaloneToken()
	chain := NewChain(upstream, downstream)
	defer chain.Close()

	require.True(downstream.IsCancelled())
}

func TestChainCloseDoesNotCancelDownstream(t *testing.T) {
	require := require.New(t)

	upstream := NewStandaloneToken()
	downstream := NewStandaloneToken()

	chain := NewChain(upstream, downstream)
	chain.Close()

	require.False(downstream.IsCancelled())
	require.False(upstream.IsCancelled())

	// After Close, cancelling upstream must no longer affect downstream.
	upstream.Cancel()
	time.Sleep(time.Millisecond)
	require.False(downstream.IsCancelled())
}
