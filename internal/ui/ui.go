// Package ui formats messages for the terminal.
package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

var colorEnabled = false

// ANSI escape codes.
const (
	Reset  = "\x1b[0m"
	Bold   = "\x1b[1m"
	Dim    = "\x1b[2m"
	Red    = "\x1b[31m"
	Yellow = "\x1b[33m"
	Cyan   = "\x1b[36m"
)

// SetColorEnabled toggles ANSI styling on or off.
func SetColorEnabled(on bool) {
	colorEnabled = on
}

// EnableFor turns styling on when f is a terminal and noColor is unset.
func EnableFor(f *os.File, noColor bool) {
	SetColorEnabled(!noColor && term.IsTerminal(int(f.Fd())))
}

// Style wraps s with the provided ANSI codes when color is enabled.
// When disabled, returns s unchanged.
func Style(s string, codes ...string) string {
	if !colorEnabled || len(codes) == 0 {
		return s
	}
	var b strings.Builder
	for _, c := range codes {
		b.WriteString(c)
	}
	b.WriteString(s)
	b.WriteString(Reset)
	return b.String()
}

// Warning formats a non-fatal diagnostic.
func Warning(msg string) string {
	return Style("warning:", Bold, Yellow) + " " + msg
}

// Note formats an informational diagnostic.
func Note(msg string) string {
	return Style("note:", Bold, Cyan) + " " + msg
}

// Error formats a fatal diagnostic.
func Error(msg string) string {
	return Style("error:", Bold, Red) + " " + msg
}
