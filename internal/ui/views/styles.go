package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Menu          lipgloss.Style
	MenuActive    lipgloss.Style
	Tab           lipgloss.Style
	TabActive     lipgloss.Style
	Header        lipgloss.Style
	Cursor        lipgloss.Style
	Selected      lipgloss.Style
	Dim           lipgloss.Style
	Search        lipgloss.Style
	Confirm       lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	InfoBox       lipgloss.Style
	AlertBox      lipgloss.Style
	FormBox       lipgloss.Style
	Label         lipgloss.Style
	LabelFocused  lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Menu:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Underline(true),
		Tab:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		TabActive:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		Header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Cursor:     lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Selected:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		Dim:        lipgloss.NewStyle().Faint(true),
		Search:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Confirm:    lipgloss.NewStyle().Bold(true),
		Help:       lipgloss.NewStyle().Faint(true),
		Main:       lipgloss.NewStyle().Padding(1, 2),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		AlertBox: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("203")),
		FormBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("99")),
		Label:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		LabelFocused:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
