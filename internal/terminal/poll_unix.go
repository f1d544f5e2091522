//go:build unix

package terminal

import (
	"time"

	"golang.org/x/sys/unix"
)

// escapeTimeout bounds the wait for the rest of an escape sequence.
const escapeTimeout = 25 * time.Millisecond

// inputReady waits up to escapeTimeout for stdin to become readable.
func (t *Terminal) inputReady() bool {
	fds := []unix.PollFd{{Fd: int32(t.in.Fd()), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, int(escapeTimeout/time.Millisecond))
		if err == unix.EINTR {
			continue
		}
		return err == nil && n > 0
	}
}
