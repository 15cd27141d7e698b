//go:build unix

package wait

import (
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/sys/unix"

	"github.com/rethread-go/rethread"
)

// Poll polls fd for events, returning early if token is cancelled.
// It returns the revents observed on fd, or (0, nil) if it returned
// because token was cancelled rather than because fd became ready.
//
// Poll opens a private self-pipe for the duration of the call: the
// Handler's Cancel writes one byte to the pipe's write end, waking
// the underlying poll(2) call; Reset drains the byte back out so the
// pipe is clean (it is closed anyway, but draining keeps the handler
// contract honest for callers that inspect it).
func Poll(fd int, events int16, token rethread.Token) (revents int16, err error) {
	var pipeFDs [2]int
	if errno := unix.Pipe2(pipeFDs[:], unix.O_CLOEXEC|unix.O_NONBLOCK); errno != nil {
		return 0, fmt.Errorf("rethread: poll: pipe2: %w", errno)
	}
	readFD, writeFD := pipeFDs[0], pipeFDs[1]
	defer func() {
		closeErr := unix.Close(readFD)
		closeErr = multierr.Append(closeErr, unix.Close(writeFD))
		err = multierr.Append(err, closeErr)
	}()

	h := rethread.HandlerFunc{
		CancelFunc: func() {
			var b [1]byte
			_, _ = unix.Write(writeFD, b[:])
		},
		ResetFunc: func() {
			var b [1]byte
			_, _ = unix.Read(readFD, b[:])
		},
	}

	guard := rethread.NewGuard(token, h)
	defer guard.Close()

	if guard.IsCancelled() {
		return 0, nil
	}

	fds := []unix.PollFd{
		{Fd: int32(fd), Events: events},
		{Fd: int32(readFD), Events: unix.POLLIN},
	}

	for {
		_, perr := unix.Poll(fds, -1)
		if perr != nil {
			if perr == unix.EINTR {
				continue
			}
			return 0, fmt.Errorf("rethread: poll: %w", perr)
		}
		break
	}

	if fds[1].Revents != 0 {
		return 0, nil
	}
	return fds[0].Revents, nil
}
