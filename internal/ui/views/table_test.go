package views

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/entities"
)

var testColumns = []entities.Column{
	{Title: "번호", Width: 4},
	{Title: "이메일", Width: 20},
	{Title: "닉네임", Width: 10},
}

func row(id int64, selected bool, cells ...string) entities.TableRow {
	return entities.TableRow{ID: id, Cells: cells, Selected: selected}
}

func filler() entities.TableRow {
	return entities.TableRow{Filler: true}
}

func TestRenderTableKeepsPageHeight(t *testing.T) {
	rows := []entities.TableRow{
		row(1, false, "1", "user01@example.com", "Kim철수"),
		row(2, true, "2", "user02@example.com", "Lee영희"),
		row(3, false, "3", "user03@example.com", "Park민수"),
		filler(), filler(), filler(), filler(), filler(), filler(), filler(),
	}

	lines := RenderTable(testColumns, rows, 0, 80, NewStyles())
	require.Len(t, lines, 10)

	for i := 3; i < 10; i++ {
		assert.Empty(t, strings.TrimSpace(StripANSI(lines[i])), "filler line %d", i)
	}
	assert.Contains(t, StripANSI(lines[0]), "Kim철수")
	assert.True(t, strings.HasPrefix(StripANSI(lines[1]), checkboxOn))
	assert.True(t, strings.HasPrefix(StripANSI(lines[2]), checkboxOff))
}

func TestRenderTableAlignsWideRunes(t *testing.T) {
	rows := []entities.TableRow{
		row(1, false, "1", "a@example.com", "Kim철수"),
		row(2, false, "2", "b@example.com", "Bob"),
	}
	lines := RenderTable(testColumns, rows, -1, 0, NewStyles())

	assert.Equal(t,
		runewidth.StringWidth(StripANSI(lines[0])),
		runewidth.StringWidth(StripANSI(lines[1])))
}

func TestRenderTableTruncatesToWidth(t *testing.T) {
	rows := []entities.TableRow{
		row(1, false, "1", strings.Repeat("x", 60), "긴닉네임긴닉네임긴닉네임"),
	}
	lines := RenderTable(testColumns, rows, -1, 30, NewStyles())

	assert.LessOrEqual(t, runewidth.StringWidth(StripANSI(lines[0])), 30)
	assert.Contains(t, StripANSI(lines[0]), "…")
}

func TestRenderTableHeader(t *testing.T) {
	header := StripANSI(RenderTableHeader(testColumns, true, 80, NewStyles()))
	assert.True(t, strings.HasPrefix(header, checkboxOn))
	assert.Contains(t, header, "이메일")

	header = StripANSI(RenderTableHeader(testColumns, false, 80, NewStyles()))
	assert.True(t, strings.HasPrefix(header, checkboxOff))
}

func TestCursorSkipsFillers(t *testing.T) {
	rows := []entities.TableRow{
		row(1, false, "1"),
		row(2, false, "2"),
		filler(),
		filler(),
	}

	assert.Equal(t, 1, NextRow(rows, 0, 1))
	assert.Equal(t, 1, NextRow(rows, 1, 1), "no real row below")
	assert.Equal(t, 0, NextRow(rows, 1, -1))
	assert.Equal(t, 0, NextRow(rows, 0, -1))
	assert.Equal(t, 0, FirstRow(rows))
	assert.Equal(t, 1, LastRow(rows))
	assert.Equal(t, 1, ClampCursor(rows, 3))
	assert.Equal(t, 0, ClampCursor(rows, 0))
}

func TestCursorOnEmptyPage(t *testing.T) {
	rows := []entities.TableRow{filler(), filler()}

	assert.Equal(t, 0, FirstRow(rows))
	assert.Equal(t, 0, LastRow(rows))
	assert.Equal(t, 0, NextRow(rows, 0, 1))
	assert.Equal(t, 0, ClampCursor(nil, 5))
}

func TestPopupOverlayKeepsBaseLines(t *testing.T) {
	base := strings.Join([]string{
		"line one is here",
		"line two is here",
		"line three here",
		"line four here",
		"line five here",
	}, "\n")

	out := NewPopupRenderer(NewStyles()).RenderPopupOverlay(base, "hi", 5, 16, NewStyles().Dim)
	lines := strings.Split(StripANSI(out), "\n")

	require.Len(t, lines, 5)
	assert.Equal(t, "line one is here", lines[0])
	assert.Contains(t, lines[2], "hi")
	assert.True(t, strings.HasPrefix(lines[2], "line th"))
}

func TestRenderInfoAlignsLabels(t *testing.T) {
	out := StripANSI(RenderInfo(entities.Info{
		Title: "Kim철수",
		Fields: []entities.Field{
			{Label: "이메일", Value: "user01@example.com"},
			{Label: "멤버십", Value: "BASIC"},
			{Label: "주문 수", Value: "0"},
		},
	}))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Kim철수", lines[0])
	assert.Equal(t, "이메일   user01@example.com", lines[2])
	assert.Equal(t, "주문 수  0", lines[4])
}
