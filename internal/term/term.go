// Package term detects which inline image protocol a terminal speaks and
// writes images using it.
package term

import (
	"os"
	"strings"
)

// TerminalProtocol is an inline image protocol.
type TerminalProtocol int

const (
	// None means images cannot be drawn inline.
	None TerminalProtocol = iota
	Kitty
	Iterm
)

func (p TerminalProtocol) String() string {
	switch p {
	case Kitty:
		return "kitty"
	case Iterm:
		return "iterm"
	default:
		return "none"
	}
}

// SupportsImages reports whether p can draw images.
func (p TerminalProtocol) SupportsImages() bool {
	return p != None
}

// Detect guesses the protocol of the current process' terminal.
func Detect() TerminalProtocol {
	return DetectEnv(os.Getenv)
}

// DetectEnv guesses the protocol from environment lookups.
func DetectEnv(getenv func(string) string) TerminalProtocol {
	if getenv("KITTY_WINDOW_ID") != "" || strings.Contains(getenv("TERM"), "kitty") {
		return Kitty
	}
	switch getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm":
		return Iterm
	case "ghostty":
		return Kitty
	}
	return None
}

// Environ adapts a KEY=VALUE list, such as an SSH session's environment, to a
// lookup function.
func Environ(env []string) func(string) string {
	return func(key string) string {
		for i := len(env) - 1; i >= 0; i-- {
			if k, v, ok := strings.Cut(env[i], "="); ok && k == key {
				return v
			}
		}
		return ""
	}
}
