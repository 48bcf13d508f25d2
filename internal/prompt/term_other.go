//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package prompt

import "errors"

// rawMode is unavailable here; answers are read a line at a time.
func rawMode(int) (func(), error) {
	return nil, errors.New("raw terminal mode not supported")
}
