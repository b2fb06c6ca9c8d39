package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"backoffice/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyLeft, tea.KeyPgUp:
		return []types.Action{types.PageAction{Delta: -1}}, true

	case tea.KeyRight, tea.KeyPgDown:
		return []types.Action{types.PageAction{Delta: 1}}, true

	case tea.KeyHome:
		return []types.Action{types.PageAction{First: true}}, true

	case tea.KeyEnd:
		return []types.Action{types.PageAction{Last: true}}, true

	case tea.KeyTab:
		return []types.Action{types.SwitchEntityAction{Delta: 1, Index: -1}}, true

	case tea.KeyShiftTab:
		return []types.Action{types.SwitchEntityAction{Delta: -1, Index: -1}}, true

	case tea.KeyEnter:
		// filler rows have no id and cannot be opened
		if id := ctx.CurrentRowID(); id != 0 {
			return []types.Action{types.ActivateRowAction{ID: id}}, true
		}
		return nil, true

	case tea.KeyEsc:
		if ctx.HasSelection() {
			return []types.Action{types.DeselectAllAction{}}, true
		}
		return nil, true
	}

	key := msg.String()
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		m.lastKeyWasG = false
		return []types.Action{types.SwitchEntityAction{Index: int(key[0] - '1')}}, true
	}

	switch key {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "h":
		return []types.Action{types.PageAction{Delta: -1}}, true

	case "l":
		return []types.Action{types.PageAction{Delta: 1}}, true

	case "[":
		return []types.Action{types.SwitchTabAction{Delta: -1}}, true

	case "]":
		return []types.Action{types.SwitchTabAction{Delta: 1}}, true

	case " ":
		if ctx.CurrentRowID() != 0 {
			return []types.Action{types.SelectAction{}}, true
		}
		return nil, true

	case "a", "A":
		return []types.Action{types.SelectAllAction{}}, true

	case "x":
		if ctx.HasBulkActions() {
			return []types.Action{types.BulkAction{}}, true
		}
		return nil, true

	case "n":
		if ctx.CanCreate() {
			return []types.Action{types.CreateAction{}}, true
		}
		return nil, true

	case "t":
		return []types.Action{types.OpenDocumentAction{Name: "terms"}}, true

	case "p":
		return []types.Action{types.OpenDocumentAction{Name: "privacy"}}, true

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.SearchTerm()}}, true

	case "r":
		return []types.Action{types.RefreshAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "H":
		return []types.Action{types.OpenPagerAction{Help: true}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - go to top
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "G":
		m.lastKeyWasG = false
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	default:
		m.lastKeyWasG = false
	}

	return nil, false
}
