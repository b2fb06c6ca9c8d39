package types

import tea "github.com/charmbracelet/bubbletea"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// PageAction moves between table pages
type PageAction struct {
	Delta int // -1 previous, +1 next, 0 with First/Last
	First bool
	Last  bool
}

func (a PageAction) Type() string { return "page" }

// SwitchTabAction cycles the tab filter of the current list
type SwitchTabAction struct {
	Delta int
}

func (a SwitchTabAction) Type() string { return "switch_tab" }

// SwitchEntityAction moves to another entity list
type SwitchEntityAction struct {
	Delta int // used when Index < 0
	Index int
}

func (a SwitchEntityAction) Type() string { return "switch_entity" }

// Selection actions
type SelectAction struct{}

func (a SelectAction) Type() string { return "select" }

type SelectAllAction struct{}

func (a SelectAllAction) Type() string { return "select_all" }

type DeselectAllAction struct{}

func (a DeselectAllAction) Type() string { return "deselect_all" }

// ActivateRowAction opens the row under the cursor
type ActivateRowAction struct {
	ID int64
}

func (a ActivateRowAction) Type() string { return "activate_row" }

// CreateAction opens an empty detail form
type CreateAction struct{}

func (a CreateAction) Type() string { return "create" }

// OpenDocumentAction opens terms or privacy for editing
type OpenDocumentAction struct {
	Name string
}

func (a OpenDocumentAction) Type() string { return "open_document" }

// BulkAction starts the bulk action flow on the selection
type BulkAction struct{}

func (a BulkAction) Type() string { return "bulk" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // initial text for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Confirmation actions
type ConfirmAction struct{}

func (a ConfirmAction) Type() string { return "confirm" }

type CancelConfirmAction struct{}

func (a CancelConfirmAction) Type() string { return "cancel_confirm" }

// Choice actions
type UpdateChoiceIndexAction struct {
	Index int
}

func (a UpdateChoiceIndexAction) Type() string { return "update_choice_index" }

type ChooseAction struct {
	Index int
}

func (a ChooseAction) Type() string { return "choose" }

type CancelChoiceAction struct{}

func (a CancelChoiceAction) Type() string { return "cancel_choice" }

// Detail form actions
type NextFieldAction struct {
	Back bool
}

func (a NextFieldAction) Type() string { return "next_field" }

type SaveFormAction struct{}

func (a SaveFormAction) Type() string { return "save_form" }

type DeleteFormAction struct{}

func (a DeleteFormAction) Type() string { return "delete_form" }

type BackFormAction struct{}

func (a BackFormAction) Type() string { return "back_form" }

// FormInputAction forwards a key to the focused form field
type FormInputAction struct {
	Key tea.KeyMsg
}

func (a FormInputAction) Type() string { return "form_input" }

// Popup actions
type ClosePopupAction struct{}

func (a ClosePopupAction) Type() string { return "close_popup" }

// OpenPagerAction shows the popup or help content in the pager
type OpenPagerAction struct {
	Help bool
}

func (a OpenPagerAction) Type() string { return "open_pager" }

// Command actions
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
