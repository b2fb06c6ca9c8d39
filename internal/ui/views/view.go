package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"backoffice/internal/entities"
)

// StatusKind picks the color of the status line
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// PromptView is a yes/no confirmation
type PromptView struct {
	Title   string
	Message string
}

// ChoiceView is an option list
type ChoiceView struct {
	Title   string
	Options []string
	Index   int
}

// FieldView is one rendered form field
type FieldView struct {
	Label   string
	Input   string
	Focused bool
}

// FormView is the detail/edit screen
type FormView struct {
	Title  string
	Fields []FieldView
	Error  string
	Busy   bool
	Keys   string
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Menu           []string
	ActiveMenu     int
	ListTitle      string
	Table          entities.Table
	Cursor         int
	ShowFillerRows bool
	Remote         bool
	InputMode      string
	SearchPrompt   string
	SearchInput    string
	StatusMessage  string
	StatusKind     StatusKind
	Confirm        *PromptView
	Choice         *ChoiceView
	Form           *FormView
	Info           *entities.Info
	Alert          string
	ShowHelp       bool
	HelpContent    string
	Footer         string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles exposes the style set for the model's own widgets
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n")
	content.WriteString(r.renderMenu(state))
	content.WriteString("\n\n")

	if state.Form != nil {
		content.WriteString(r.renderForm(*state.Form))
	} else {
		content.WriteString(r.renderTabs(state.Table))
		content.WriteString("\n")
		content.WriteString(r.renderSearchLine(state))
		content.WriteString("\n\n")
		content.WriteString(r.renderList(state))
	}
	content.WriteString("\n\n")
	content.WriteString(r.renderStatus(state))

	if state.Confirm != nil {
		content.WriteString("\n")
		content.WriteString(r.styles.Confirm.Render(fmt.Sprintf("%s: %s (y/n)", state.Confirm.Title, state.Confirm.Message)))
	}

	// push the key help to the bottom line
	if state.Footer != "" {
		lines := strings.Count(content.String(), "\n") + 1
		available := state.Height - 2
		if available <= 0 {
			available = 22
		}
		if pad := available - lines - 1; pad > 0 {
			content.WriteString(strings.Repeat("\n", pad))
		}
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.Footer))
	}

	finalContent := r.styles.Main.Render(content.String())

	switch {
	case state.Alert != "":
		return r.popupRender.RenderPopupOverlay(finalContent, r.renderAlert(state.Alert), state.Height, state.Width, r.styles.AlertBox)
	case state.Choice != nil:
		return r.popupRender.RenderPopupOverlay(finalContent, r.renderChoice(*state.Choice), state.Height, state.Width, r.styles.InfoBox)
	case state.Info != nil:
		return r.popupRender.RenderPopupOverlay(finalContent, RenderInfo(*state.Info), state.Height, state.Width, r.styles.InfoBox)
	case state.ShowHelp:
		return r.popupRender.RenderPopupOverlay(finalContent, state.HelpContent, state.Height, state.Width, r.styles.InfoBox)
	}
	return finalContent
}

func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("backoffice")
	if !state.Table.Loading {
		return logo
	}

	spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	frame := int(time.Now().UnixMilli()/80) % len(spinner)
	indicator := r.styles.Dim.Render(spinner[frame] + " 불러오는 중")

	width := state.Width
	if width <= 0 {
		width = 80
	}
	if pad := width - 4 - lipgloss.Width(logo) - lipgloss.Width(indicator); pad > 0 {
		return logo + strings.Repeat(" ", pad) + indicator
	}
	return logo + "  " + indicator
}

func (r *Renderer) renderMenu(state ViewState) string {
	items := make([]string, len(state.Menu))
	for i, label := range state.Menu {
		text := fmt.Sprintf("%d %s", i+1, label)
		if i == state.ActiveMenu {
			items[i] = r.styles.MenuActive.Render(text)
		} else {
			items[i] = r.styles.Menu.Render(text)
		}
	}
	return strings.Join(items, "  ")
}

func (r *Renderer) renderTabs(t entities.Table) string {
	tabs := make([]string, len(t.Tabs))
	for i, label := range t.Tabs {
		if label == t.State.ActiveFilter {
			tabs[i] = r.styles.TabActive.Render("[" + label + "]")
		} else {
			tabs[i] = r.styles.Tab.Render(" " + label + " ")
		}
	}
	return strings.Join(tabs, " ")
}

func (r *Renderer) renderSearchLine(state ViewState) string {
	if state.InputMode == "search" {
		line := r.styles.Search.Render(state.SearchPrompt) + state.SearchInput
		if state.Remote {
			line += r.styles.Dim.Render("  (Enter로 검색)")
		}
		return line
	}
	term := state.Table.State.SearchTerm
	if term == "" {
		return r.styles.Dim.Render("/ 검색")
	}
	return r.styles.Search.Render(fmt.Sprintf("검색: %s", term))
}

func (r *Renderer) renderList(state ViewState) string {
	t := state.Table
	width := state.Width - 4
	if state.Width <= 0 {
		width = 0
	}

	lines := []string{RenderTableHeader(t.Columns, t.AllSelected, width, r.styles)}
	body := RenderTable(t.Columns, t.Rows, state.Cursor, width, r.styles)
	for i, line := range body {
		if t.Rows[i].Filler && !state.ShowFillerRows {
			continue
		}
		lines = append(lines, line)
	}

	if t.Total == 0 && !t.Loading {
		lines = append(lines, r.styles.Dim.Render("데이터가 없습니다"))
	}

	pager := fmt.Sprintf("%d / %d 페이지  ·  전체 %d건", t.State.Page, t.TotalPages, t.Total)
	if t.Selected > 0 {
		pager += fmt.Sprintf("  ·  %d건 선택", t.Selected)
	}
	lines = append(lines, "", r.styles.Dim.Render(pager))
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderStatus(state ViewState) string {
	if state.StatusMessage == "" {
		return ""
	}
	switch state.StatusKind {
	case StatusError:
		return r.styles.StatusError.Render(state.StatusMessage)
	case StatusWarning:
		return r.styles.StatusWarning.Render(state.StatusMessage)
	case StatusSuccess:
		return r.styles.StatusSuccess.Render(state.StatusMessage)
	}
	return r.styles.StatusLoading.Render(state.StatusMessage)
}

func (r *Renderer) renderForm(f FormView) string {
	var b strings.Builder
	b.WriteString(r.styles.Header.Render(f.Title))
	b.WriteString("\n\n")
	for _, field := range f.Fields {
		label := r.styles.Label.Render(field.Label)
		if field.Focused {
			label = r.styles.LabelFocused.Render("› " + field.Label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(field.Input)
		b.WriteString("\n\n")
	}
	if f.Busy {
		b.WriteString(r.styles.StatusLoading.Render("요청 중..."))
		b.WriteString("\n")
	}
	if f.Error != "" {
		b.WriteString(r.styles.StatusError.Render(f.Error))
		b.WriteString("\n")
	}
	b.WriteString(r.styles.Dim.Render(f.Keys))
	return r.styles.FormBox.Render(b.String())
}

func (r *Renderer) renderChoice(c ChoiceView) string {
	var b strings.Builder
	b.WriteString(r.styles.Header.Render(c.Title))
	b.WriteString("\n")
	for i, opt := range c.Options {
		b.WriteString("\n")
		if i == c.Index {
			b.WriteString(r.styles.Cursor.Render("› " + opt))
		} else {
			b.WriteString("  " + opt)
		}
	}
	b.WriteString("\n\n")
	b.WriteString(r.styles.Dim.Render("↑/↓ 이동 · Enter 선택 · Esc 취소"))
	return b.String()
}

func (r *Renderer) renderAlert(msg string) string {
	return r.styles.StatusError.Render("오류") + "\n\n" + msg + "\n\n" + r.styles.Dim.Render("Enter 닫기")
}

// RenderInfo lays out a read-only detail as aligned label/value lines
func RenderInfo(info entities.Info) string {
	labelWidth := 0
	for _, f := range info.Fields {
		if w := lipgloss.Width(f.Label); w > labelWidth {
			labelWidth = w
		}
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(info.Title))
	b.WriteString("\n")
	for _, f := range info.Fields {
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(f.Label))
		b.WriteString(fmt.Sprintf("\n%s%s  %s", f.Label, pad, f.Value))
	}
	return b.String()
}
