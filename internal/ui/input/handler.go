package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"backoffice/internal/ui/input/modes"
	"backoffice/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // shared by text modes
	choice      *modes.ChoiceMode
}

func New() *Handler {
	ti := textinput.New()
	choice := modes.NewChoiceMode()

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		choice:      choice,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeSearch] = modes.NewSearchMode(h.textInput)
	h.modes[types.ModeConfirm] = modes.NewConfirmMode()
	h.modes[types.ModeChoice] = choice
	h.modes[types.ModeForm] = modes.NewFormMode()
	h.modes[types.ModeInfo] = modes.NewInfoMode()
	h.modes[types.ModeAlert] = modes.NewAlertMode()

	return h
}

// HandleKey routes msg to the current mode. Mode changes requested by the
// mode are applied here; every other action is returned to the model.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	if !consumed {
		switch {
		case h.currentMode == types.ModeForm:
			return []types.Action{types.FormInputAction{Key: msg}}, nil
		case !h.isTextMode(h.currentMode):
			return nil, nil
		}
	}

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		if change, ok := action.(types.ChangeModeAction); ok {
			var modeCmd tea.Cmd
			var modeActions []types.Action
			modeActions, modeCmd = h.SetMode(change.Mode, change.Data, ctx)
			allActions = append(allActions, modeActions...)
			if modeCmd != nil {
				cmd = modeCmd
			}
			continue
		}
		allActions = append(allActions, action)
	}

	// unclaimed keys in a text mode edit the input
	if h.isTextMode(h.currentMode) && !consumed {
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, cmd
}

// SetMode leaves the current mode and enters mode. For text modes data is
// the initial input value.
func (h *Handler) SetMode(mode types.Mode, data string, ctx types.Context) ([]types.Action, tea.Cmd) {
	var actions []types.Action
	if old := h.modes[h.currentMode]; old != nil {
		actions = append(actions, old.Exit(ctx)...)
	}

	h.currentMode = mode

	if next := h.modes[mode]; next != nil {
		actions = append(actions, next.Enter(ctx)...)
	}

	if h.isTextMode(mode) {
		h.textInput.SetValue(data)
		h.textInput.CursorEnd()
		h.textInput.Focus()
		return actions, textinput.Blink
	}
	h.textInput.Blur()
	return actions, nil
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// ModeName is the display name of the current mode
func (h *Handler) ModeName() string {
	if handler := h.modes[h.currentMode]; handler != nil {
		return handler.Name()
	}
	return h.currentMode.String()
}

// Prompt is the label of the current text mode, empty otherwise
func (h *Handler) Prompt() string {
	if p, ok := h.modes[h.currentMode].(interface{ Prompt() string }); ok {
		return p.Prompt()
	}
	return ""
}

// TextInput returns the shared input while a text mode is active
func (h *Handler) TextInput() *textinput.Model {
	if h.isTextMode(h.currentMode) {
		return h.textInput
	}
	return nil
}

// ChoiceIndex is the highlighted option of choice mode
func (h *Handler) ChoiceIndex() int {
	return h.choice.CurrentIndex()
}

func (h *Handler) RegisterMode(mode types.Mode, handler types.ModeHandler) {
	h.modes[mode] = handler
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	return mode == types.ModeSearch
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}
