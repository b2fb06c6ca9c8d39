package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"backoffice/internal/ui/input/types"
)

// ChoiceMode picks one entry of a short list, e.g. the grade of a bulk
// membership change. The options themselves live in the model.
type ChoiceMode struct {
	index int
}

func NewChoiceMode() *ChoiceMode {
	return &ChoiceMode{}
}

func (m *ChoiceMode) Name() string {
	return "choice"
}

func (m *ChoiceMode) Enter(ctx types.Context) []types.Action {
	m.index = 0
	return []types.Action{types.UpdateChoiceIndexAction{Index: m.index}}
}

func (m *ChoiceMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ChoiceMode) move(delta, count int) []types.Action {
	if count == 0 {
		return nil
	}
	m.index = (m.index + delta + count) % count
	return []types.Action{types.UpdateChoiceIndexAction{Index: m.index}}
}

// HandleKey processes key messages for the option list
func (m *ChoiceMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	count := ctx.ChoiceCount()

	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "q":
		return []types.Action{types.CancelChoiceAction{}}, true
	case "enter":
		if count == 0 {
			return []types.Action{types.CancelChoiceAction{}}, true
		}
		return []types.Action{types.ChooseAction{Index: m.index}}, true
	case "up", "k":
		return m.move(-1, count), true
	case "down", "j":
		return m.move(1, count), true
	}
	return nil, true
}

// CurrentIndex returns the highlighted option
func (m *ChoiceMode) CurrentIndex() int {
	return m.index
}
