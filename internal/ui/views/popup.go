package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay draws the styled popup centered over a greyed copy of
// the main content
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)
	popupLines := strings.Split(styledPopup, "\n")

	modalW := lipgloss.Width(styledPopup)
	modalH := len(popupLines)
	if width <= 0 {
		width = lipgloss.Width(mainContent)
	}
	if height <= 0 {
		height = lipgloss.Height(mainContent)
	}
	x := (width - modalW) / 2
	if x < 0 {
		x = 0
	}
	y := (height - modalH) / 2
	if y < 0 {
		y = 0
	}

	base := strings.Split(mainContent, "\n")
	for len(base) < y+modalH {
		base = append(base, "")
	}

	grey := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	out := make([]string, len(base))
	for i, line := range base {
		plain := ansiRE.ReplaceAllString(line, "")
		if i < y || i >= y+modalH {
			out[i] = grey.Render(plain)
			continue
		}
		left := runewidth.FillRight(runewidth.Truncate(plain, x, ""), x)
		right := skipColumns(plain, x+modalW)
		out[i] = grey.Render(left) + popupLines[i-y] + grey.Render(right)
	}
	return strings.Join(out, "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// skipColumns drops the first n display columns of a plain string
func skipColumns(s string, n int) string {
	w := 0
	for i, r := range s {
		if w >= n {
			return s[i:]
		}
		w += runewidth.RuneWidth(r)
	}
	return ""
}

// StripANSI removes color and style codes
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}
