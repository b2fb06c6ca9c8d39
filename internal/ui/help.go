package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/noborus/ov/oviewer"
)

// helpSection is one titled block of the help screen
type helpSection struct {
	title    string
	bindings []key.Binding
}

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	sections []helpSection
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(k keyMap, f formKeyMap) *HelpRenderer {
	return &HelpRenderer{
		sections: []helpSection{
			{title: "이동", bindings: []key.Binding{k.Up, k.Down, k.Page, k.Ends}},
			{title: "목록", bindings: []key.Binding{k.Entity, k.Tab, k.Search, k.Refresh}},
			{title: "선택", bindings: []key.Binding{k.Select, k.All, k.Deselect, k.Bulk}},
			{title: "상세", bindings: []key.Binding{k.Open, k.Create, k.Docs}},
			{title: "편집 화면", bindings: f.ShortHelp()},
			{title: "기타", bindings: []key.Binding{k.Help, k.Pager, k.Quit}},
		},
	}
}

// Render returns the colored help text. Key names are padded to a common
// display width so descriptions line up with Korean text.
func (r *HelpRenderer) Render() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	keyWidth := 0
	for _, s := range r.sections {
		for _, b := range s.bindings {
			if w := runewidth.StringWidth(b.Help().Key); w > keyWidth {
				keyWidth = w
			}
		}
	}

	var help strings.Builder
	help.WriteString(titleStyle.Render("backoffice 도움말"))
	help.WriteString("\n")

	for _, s := range r.sections {
		help.WriteString("\n")
		help.WriteString(sectionStyle.Render(s.title))
		help.WriteString("\n")
		for _, b := range s.bindings {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s  %s\n",
				keyStyle.Render(runewidth.FillRight(h.Key, keyWidth)),
				descStyle.Render(h.Desc)))
		}
	}

	return strings.TrimRight(help.String(), "\n")
}

// PagerOps runs the ov pager over the Bubble Tea screen
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps() *PagerOps {
	return &PagerOps{}
}

// SetProgram sets the program whose terminal the pager borrows
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// Show pages content with ov until the user quits it
func (p *PagerOps) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
