package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"backoffice/internal/ui/input/types"
)

// FormMode edits a detail form. Keys it does not claim go to the focused field.
type FormMode struct{}

func NewFormMode() *FormMode {
	return &FormMode{}
}

func (m *FormMode) Name() string {
	return "form"
}

func (m *FormMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *FormMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *FormMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{types.BackFormAction{}}, true
	case "tab":
		return []types.Action{types.NextFieldAction{}}, true
	case "shift+tab":
		return []types.Action{types.NextFieldAction{Back: true}}, true
	case "ctrl+s":
		return []types.Action{types.SaveFormAction{}}, true
	case "ctrl+d":
		return []types.Action{types.DeleteFormAction{}}, true
	case "ctrl+o":
		return []types.Action{types.OpenPagerAction{}}, true
	}
	return nil, false
}
