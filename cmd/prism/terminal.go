package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// isInteractiveTerminal reports whether prompts and full-screen views can be
// shown. CI environments and dumb terminals never count as interactive.
func isInteractiveTerminal() bool {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) && term.IsTerminal(int(os.Stdin.Fd()))
}
