package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// composeCentered draws block centered over base. Both are multi-line
// strings; base lines are assumed to span the full terminal width. The
// function is ANSI-aware so styled viewer output underneath survives.
func composeCentered(base, block string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	blockLines := strings.Split(block, "\n")

	blockWidth := 0
	for _, line := range blockLines {
		if w := ansi.StringWidth(line); w > blockWidth {
			blockWidth = w
		}
	}

	top := (height - len(blockLines)) / 2
	if top < 0 {
		top = 0
	}
	left := (width - blockWidth) / 2
	if left < 0 {
		left = 0
	}

	for i, blockLine := range blockLines {
		row := top + i
		if row >= len(baseLines) {
			break
		}

		baseLine := baseLines[row]
		if w := ansi.StringWidth(baseLine); w < width {
			baseLine += strings.Repeat(" ", width-w)
		}

		lineWidth := ansi.StringWidth(blockLine)
		if lineWidth < blockWidth {
			blockLine += strings.Repeat(" ", blockWidth-lineWidth)
		}

		result := ansi.Cut(baseLine, 0, left) + blockLine
		if left+blockWidth < width {
			result += ansi.Cut(baseLine, left+blockWidth, width)
		}
		baseLines[row] = result
	}

	return strings.Join(baseLines, "\n")
}
