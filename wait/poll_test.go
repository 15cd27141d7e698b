//go:build unix

package wait

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/rethread-go/rethread"
)

// TestPollObservesReadiness writes to a pipe and expects Poll to
// observe POLLIN on the target fd, per original_source/test/poll.hpp.
func TestPollObservesReadiness(t *testing.T) {
	require := require.New(t)

	var fds [2]int
	require.NoError(unix.Pipe2(fds[:], unix.O_CLOEXEC))
	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	token := rethread.NewStandaloneToken()

	started := make(chan struct{})
	result := make(chan int16, 1)
	go func() {
		close(started)
		revents, err := Poll(fds[0], unix.POLLIN, token)
		require.NoError(err)
		result <- revents
	}()

	<-started
	time.Sleep(10 * time.Millisecond)

	var b [1]byte
	_, err := unix.Write(fds[1], b[:])
	require.NoError(err)

	select {
	case revents := <-result:
		require.Equal(int16(unix.POLLIN), revents)
	case <-time.After(3 * time.Second):
		t.Fatal("Poll did not observe pipe readiness in time")
	}
}

// TestPollCancelled is scenario S6 from spec.md §8.
func TestPollCancelled(t *testing.T) {
	require := require.New(t)

	var fds [2]int
	require.NoError(unix.Pipe2(fds[:], unix.O_CLOEXEC))
	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	token := rethread.NewStandaloneToken()

	started := make(chan struct{})
	result := make(chan int16, 1)
	go func() {
		close(started)
		revents, err := Poll(fds[0], unix.POLLIN, token)
		require.NoError(err)
		result <- revents
	}()

	<-started
	time.Sleep(10 * time.Millisecond)
	token.Cancel()

	select {
	case revents := <-result:
		require.Zero(revents, "Poll must report zero revents on the target fd when cancelled")
	case <-time.After(20 * time.Millisecond):
		t.Fatal("Poll did not return within 20ms of cancellation")
	}
}
