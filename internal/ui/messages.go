package ui

import (
	"time"

	"backoffice/internal/entities"
	"backoffice/internal/eventbus"
	"backoffice/internal/listview"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer for animations
type tickMsg time.Time

// listLoadedMsg is the result of a list load
type listLoadedMsg struct {
	list       string
	generation uint64
	applied    bool
	err        error
}

// bulkDoneMsg is the result of a bulk action
type bulkDoneMsg struct {
	list   string
	label  string
	result listview.BulkResult
	err    error
}

// activatedMsg carries what opening a row or document produced
type activatedMsg struct {
	activation entities.Activation
	err        error
}

// formDoneMsg is sent when a confirmed form request finished
type formDoneMsg struct {
	entity string
	delete bool
	err    error
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	err error
}

// clearStatusMsg clears the status line unless a newer message replaced it
type clearStatusMsg struct {
	seq int
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
