package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

const DefaultWidth = 32

// Wrap word-wraps text to width columns, preserving ANSI escape sequences.
// A width of zero or less uses DefaultWidth.
func Wrap(text string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	return wordwrap.String(text, width)
}

// Lines wraps text and splits it into display lines.
func Lines(text string, width int) []string {
	return strings.Split(Wrap(text, width), "\n")
}
