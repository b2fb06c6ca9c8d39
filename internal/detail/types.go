package detail

import (
	"context"
	"errors"
	"fmt"
)

// State is a step of the detail screen
type State int

const (
	Viewing State = iota
	ConfirmingSave
	ConfirmingDelete
	Submitting
	NavigatedAway
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case ConfirmingSave:
		return "confirming-save"
	case ConfirmingDelete:
		return "confirming-delete"
	case Submitting:
		return "submitting"
	case NavigatedAway:
		return "navigated-away"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Mode tells create from update
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// NavigatePolicy decides where a failed submit leaves the screen
type NavigatePolicy int

const (
	// NavigateOnSuccess stays on the form when the request fails
	NavigateOnSuccess NavigatePolicy = iota
	// NavigateAlways leaves the form whatever the outcome
	NavigateAlways
)

// ParseNavigatePolicy maps a config value to a NavigatePolicy
func ParseNavigatePolicy(s string) (NavigatePolicy, error) {
	switch s {
	case "", "on_success":
		return NavigateOnSuccess, nil
	case "always":
		return NavigateAlways, nil
	}
	return NavigateOnSuccess, fmt.Errorf("unknown navigate policy %q", s)
}

// Entity is the editable row of a detail screen
type Entity struct {
	No       int64
	Title    string
	Category string
	Content  string
}

// Backend performs the requests behind a detail screen
type Backend interface {
	Create(ctx context.Context, e Entity) (Entity, error)
	Update(ctx context.Context, e Entity) (Entity, error)
	Delete(ctx context.Context, no int64) error
}

// Labels names the three editable fields on screen
type Labels struct {
	Title    string
	Category string
	Content  string
}

// DefaultLabels are used for posts and documents
var DefaultLabels = Labels{Title: "제목", Category: "카테고리", Content: "내용"}

// Prompt is the confirmation dialog text
type Prompt struct {
	Title   string
	Message string
}

// ErrBusy is returned when a request is already in flight
var ErrBusy = errors.New("request already in progress")
