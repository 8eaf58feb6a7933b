package render

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

const (
	// LineWidth is the maximum number of characters per body line.
	LineWidth = 95

	lineSeparatorConstant = "\n"
)

// WrapLines breaks body into lines of at most width characters. Words are kept whole
// when they fit; longer words are split. Existing line breaks are preserved.
func WrapLines(body string, width int) []string {
	if width <= 0 {
		width = LineWidth
	}
	wordWrapped := wordwrap.String(body, width)
	hardWrapped := wrap.String(wordWrapped, width)
	return strings.Split(hardWrapped, lineSeparatorConstant)
}
