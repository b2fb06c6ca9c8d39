package views

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"backoffice/internal/entities"
)

const (
	checkboxOn  = "[x] "
	checkboxOff = "[ ] "
	cellGap     = "  "
)

// fitColumns shrinks column widths from the right until the row fits width
func fitColumns(columns []entities.Column, width int) []int {
	widths := make([]int, len(columns))
	total := runewidth.StringWidth(checkboxOff)
	for i, c := range columns {
		w := c.Width
		if tw := runewidth.StringWidth(c.Title); tw > w {
			w = tw
		}
		widths[i] = w
		total += w
		if i > 0 {
			total += len(cellGap)
		}
	}
	if width <= 0 {
		return widths
	}
	for i := len(widths) - 1; i >= 0 && total > width; i-- {
		cut := total - width
		if room := widths[i] - 2; cut > room {
			cut = room
		}
		if cut > 0 {
			widths[i] -= cut
			total -= cut
		}
	}
	return widths
}

func formatCells(cells []string, widths []int) string {
	var b strings.Builder
	for i, w := range widths {
		if i > 0 {
			b.WriteString(cellGap)
		}
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		cell = strings.ReplaceAll(cell, "\n", " ")
		if runewidth.StringWidth(cell) > w {
			cell = runewidth.Truncate(cell, w, "…")
		}
		b.WriteString(runewidth.FillRight(cell, w))
	}
	return b.String()
}

// RenderTableHeader renders the column titles. The checkbox in front selects
// every visible row.
func RenderTableHeader(columns []entities.Column, allSelected bool, width int, styles *Styles) string {
	box := checkboxOff
	if allSelected {
		box = checkboxOn
	}
	widths := fitColumns(columns, width)
	titles := make([]string, len(columns))
	for i, c := range columns {
		titles[i] = c.Title
	}
	return styles.Header.Render(box + formatCells(titles, widths))
}

// RenderTable renders one line per row. Filler rows come out blank so the
// table keeps its height on short pages; the cursor never rests on them.
func RenderTable(columns []entities.Column, rows []entities.TableRow, cursor int, width int, styles *Styles) []string {
	widths := fitColumns(columns, width)
	blank := strings.Repeat(" ", runewidth.StringWidth(checkboxOff)+lineWidth(widths))

	lines := make([]string, len(rows))
	for i, row := range rows {
		if row.Filler {
			lines[i] = blank
			continue
		}

		box := checkboxOff
		if row.Selected {
			box = checkboxOn
		}
		line := box + formatCells(row.Cells, widths)

		switch {
		case i == cursor:
			line = styles.Cursor.Render(line)
		case row.Selected:
			line = styles.Selected.Render(line)
		}
		lines[i] = line
	}
	return lines
}

func lineWidth(widths []int) int {
	total := 0
	for i, w := range widths {
		if i > 0 {
			total += len(cellGap)
		}
		total += w
	}
	return total
}

// NextRow moves from cursor by delta over rows, stepping past filler rows.
// It stays put when no real row lies in that direction.
func NextRow(rows []entities.TableRow, cursor, delta int) int {
	if delta == 0 {
		return cursor
	}
	for i := cursor + delta; i >= 0 && i < len(rows); i += delta {
		if !rows[i].Filler {
			return i
		}
	}
	return cursor
}

// FirstRow returns the index of the first real row, or 0 on an empty page
func FirstRow(rows []entities.TableRow) int {
	for i, r := range rows {
		if !r.Filler {
			return i
		}
	}
	return 0
}

// LastRow returns the index of the last real row, or 0 on an empty page
func LastRow(rows []entities.TableRow) int {
	for i := len(rows) - 1; i >= 0; i-- {
		if !rows[i].Filler {
			return i
		}
	}
	return 0
}

// ClampCursor keeps cursor on a real row after the page changed
func ClampCursor(rows []entities.TableRow, cursor int) int {
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	if cursor < 0 {
		return 0
	}
	if rows[cursor].Filler {
		return LastRow(rows)
	}
	return cursor
}
