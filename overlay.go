package tabstrip

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var sgrSeq = regexp.MustCompile(`\x1b\[[0-9;]*m`)

const sgrReset = "\x1b[0m"

// Overlay draws fg on top of bg with fg's top-left corner at column x, row y.
// bg grows as needed. Styling of the background to the right of fg is
// preserved.
func Overlay(bg, fg string, x, y int) string {
	lines := strings.Split(bg, "\n")
	for i, line := range strings.Split(fg, "\n") {
		row := y + i
		for len(lines) <= row {
			lines = append(lines, "")
		}
		lines[row] = overlayLine(lines[row], line, x)
	}
	return strings.Join(lines, "\n")
}

func overlayLine(bg, fg string, x int) string {
	if w := lipgloss.Width(bg); w < x {
		return bg + strings.Repeat(" ", x-w) + fg
	}

	left, _ := cutCells(bg, x)
	covered, right := cutCells(bg, x+lipgloss.Width(fg))
	if right != "" {
		// re-open whatever styling was in effect where the tail resumes
		right = strings.Join(sgrSeq.FindAllString(covered, -1), "") + right
	}
	if strings.Contains(left, "\x1b[") {
		left += sgrReset
	}
	pad := strings.Repeat(" ", max(x-lipgloss.Width(left), 0))
	return left + pad + fg + right
}

// cutCells splits s at display column col. A wide rune straddling col goes
// to the right-hand side.
func cutCells(s string, col int) (string, string) {
	prev := 0
	for i := range s {
		w := lipgloss.Width(s[:i])
		if w == col {
			return s[:i], s[i:]
		}
		if w > col {
			return s[:prev], s[prev:]
		}
		prev = i
	}
	return s, ""
}
