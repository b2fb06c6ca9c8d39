package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"backoffice/internal/ui/input/types"
)

// PopupMode covers the read-only info popup and the blocking error alert
type PopupMode struct {
	name  string
	pager bool
}

// NewInfoMode can also open its content in the pager
func NewInfoMode() *PopupMode {
	return &PopupMode{name: "info", pager: true}
}

func NewAlertMode() *PopupMode {
	return &PopupMode{name: "alert"}
}

func (m *PopupMode) Name() string {
	return m.name
}

func (m *PopupMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *PopupMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *PopupMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "enter", "q", "i":
		return []types.Action{types.ClosePopupAction{}}, true
	case "o":
		if m.pager {
			return []types.Action{types.OpenPagerAction{}}, true
		}
	}
	return nil, true
}
