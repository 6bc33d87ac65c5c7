package utils

import (
	"os"

	"golang.org/x/term"
)

// IsStderrTerminal returns true if stderr is a terminal, which is where
// progress spinners are drawn.
func IsStderrTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
