package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeConfirm
	ModeChoice
	ModeForm
	ModeInfo
	ModeAlert
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSearch:
		return "search"
	case ModeConfirm:
		return "confirm"
	case ModeChoice:
		return "choice"
	case ModeForm:
		return "form"
	case ModeInfo:
		return "info"
	case ModeAlert:
		return "alert"
	}
	return "unknown"
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	// CurrentRowID is the id under the cursor, 0 on a filler row or an empty page
	CurrentRowID() int64
	HasSelection() bool
	SelectedCount() int
	HasBulkActions() bool
	CanCreate() bool
	ChoiceCount() int
	SearchTerm() string
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
