package termutil

import (
	"io"
	"os"

	"golang.org/x/term"
)

const MaxInt = int(^uint(0) >> 1)

func Int(fd uintptr) (int, bool) {
	if fd > uintptr(MaxInt) {
		return 0, false
	}
	return int(fd), true
}

// IsTerminal reports whether out is a terminal that should receive colour.
// A non-empty NO_COLOR always disables it.
func IsTerminal(out io.Writer) bool {
	f, ok := out.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	if v, ok := os.LookupEnv("NO_COLOR"); ok && v != "" {
		return false
	}
	fd, ok := Int(f.Fd())
	if !ok {
		return false
	}
	return term.IsTerminal(fd)
}
