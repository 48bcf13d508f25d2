//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package prompt

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// rawMode turns off line buffering and echo on fd so one keystroke can be
// read. The returned func restores the previous state.
func rawMode(fd int) (func(), error) {
	old, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return nil, fmt.Errorf("getting terminal state: %w", err)
	}

	raw := *old
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &raw); err != nil {
		return nil, fmt.Errorf("setting terminal state: %w", err)
	}

	return func() {
		_ = unix.IoctlSetTermios(fd, ioctlWriteTermios, old)
	}, nil
}
