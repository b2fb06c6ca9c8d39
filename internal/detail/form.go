package detail

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-logr/logr"

	"backoffice/internal/domain"
)

// Publisher receives detail events
type Publisher interface {
	Publish(event domain.DomainEvent)
}

// Config describes one kind of detail screen
type Config struct {
	Entity      string // event key, e.g. "notices"
	Kind        string // shown in prompts, e.g. "공지사항"
	Labels      Labels
	Categories  []string
	AllowDelete bool
	// SecretContent masks the content field on screen (passwords)
	SecretContent bool
	Validate      func(Entity) error
	Backend       Backend
	Policy        NavigatePolicy
	Publisher     Publisher
	Logger        logr.Logger
}

// Form is the state machine of a detail/edit screen
type Form struct {
	mu sync.Mutex

	cfg    Config
	log    logr.Logger
	entity Entity
	mode   Mode
	state  State
	err    error
}

// NewForm opens a form on e. A zero No means a new entity.
func NewForm(cfg Config, e Entity) *Form {
	if cfg.Labels == (Labels{}) {
		cfg.Labels = DefaultLabels
	}
	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	mode := ModeUpdate
	if e.No == 0 {
		mode = ModeCreate
	}
	if e.Category == "" && len(cfg.Categories) > 0 {
		e.Category = cfg.Categories[0]
	}

	return &Form{
		cfg:    cfg,
		log:    log.WithName("detail").WithValues("entity", cfg.Entity),
		entity: e,
		mode:   mode,
		state:  Viewing,
	}
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Form) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

func (f *Form) Entity() Entity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entity
}

// Err returns the error of the last submit
func (f *Form) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Form) Labels() Labels       { return f.cfg.Labels }
func (f *Form) Categories() []string { return f.cfg.Categories }
func (f *Form) Kind() string         { return f.cfg.Kind }
func (f *Form) SecretContent() bool  { return f.cfg.SecretContent }
func (f *Form) CanDelete() bool      { return f.cfg.AllowDelete && f.Mode() == ModeUpdate }

// Edit replaces the editable fields. Only allowed while viewing.
func (f *Form) Edit(title, category, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != Viewing {
		return f.transitionError("edit")
	}
	f.entity.Title = title
	f.entity.Category = category
	f.entity.Content = content
	return nil
}

// Save validates the fields and asks for confirmation
func (f *Form) Save() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != Viewing {
		return f.transitionError("save")
	}
	if err := f.validateLocked(); err != nil {
		return err
	}
	f.state = ConfirmingSave
	return nil
}

// Delete asks for confirmation to delete a saved entity
func (f *Form) Delete() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != Viewing {
		return f.transitionError("delete")
	}
	if !f.cfg.AllowDelete {
		return &domain.ValidationError{Message: f.cfg.Kind + " cannot be deleted"}
	}
	if f.mode == ModeCreate {
		return &domain.ValidationError{Message: "not saved yet"}
	}
	f.state = ConfirmingDelete
	return nil
}

// Cancel dismisses a confirmation
func (f *Form) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == ConfirmingSave || f.state == ConfirmingDelete {
		f.state = Viewing
	}
}

// Back leaves the form without confirmation
func (f *Form) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != Viewing {
		return f.transitionError("back")
	}
	f.state = NavigatedAway
	return nil
}

// Prompt returns the confirmation text for the pending action
func (f *Form) Prompt() Prompt {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case ConfirmingDelete:
		return Prompt{Title: f.cfg.Kind + " 삭제", Message: fmt.Sprintf("%s을(를) 삭제하시겠습니까?", f.cfg.Kind)}
	case ConfirmingSave:
		if f.mode == ModeCreate {
			return Prompt{Title: f.cfg.Kind + " 등록", Message: fmt.Sprintf("%s을(를) 등록하시겠습니까?", f.cfg.Kind)}
		}
		return Prompt{Title: f.cfg.Kind + " 수정", Message: fmt.Sprintf("%s을(를) 수정하시겠습니까?", f.cfg.Kind)}
	}
	return Prompt{}
}

// Confirm runs the confirmed request. On success the form navigates away.
// On failure it returns to Viewing, unless the policy is NavigateAlways.
func (f *Form) Confirm(ctx context.Context) error {
	f.mu.Lock()
	pending := f.state
	if pending == Submitting {
		f.mu.Unlock()
		return ErrBusy
	}
	if pending != ConfirmingSave && pending != ConfirmingDelete {
		err := f.transitionError("confirm")
		f.mu.Unlock()
		return err
	}
	f.state = Submitting
	f.err = nil
	entity := f.entity
	mode := f.mode
	f.mu.Unlock()

	var (
		saved  domain.DomainEvent
		result Entity
		err    error
	)
	switch {
	case pending == ConfirmingDelete:
		err = f.cfg.Backend.Delete(ctx, entity.No)
		saved = domain.DetailDeletedEvent{Entity: f.cfg.Entity, No: entity.No}
	case mode == ModeCreate:
		result, err = f.cfg.Backend.Create(ctx, entity)
		saved = domain.DetailSavedEvent{Entity: f.cfg.Entity, No: result.No, Created: true}
	default:
		result, err = f.cfg.Backend.Update(ctx, entity)
		saved = domain.DetailSavedEvent{Entity: f.cfg.Entity, No: result.No}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.err = err
		if f.cfg.Policy == NavigateAlways {
			f.log.Info("request failed, leaving form anyway", "action", pending.String(), "no", entity.No, "error", err.Error())
			f.state = NavigatedAway
		} else {
			f.log.Error(err, "request failed", "action", pending.String(), "no", entity.No)
			f.state = Viewing
		}
		return err
	}

	if pending == ConfirmingSave {
		f.entity = result
		f.mode = ModeUpdate
	}
	f.state = NavigatedAway
	if f.cfg.Publisher != nil {
		f.cfg.Publisher.Publish(saved)
	}
	return nil
}

func (f *Form) validateLocked() error {
	labels := f.cfg.Labels
	if strings.TrimSpace(f.entity.Title) == "" {
		return &domain.ValidationError{Field: labels.Title, Message: "필수 입력 항목입니다"}
	}
	if len(f.cfg.Categories) > 0 && !slices.Contains(f.cfg.Categories, f.entity.Category) {
		return &domain.ValidationError{Field: labels.Category, Message: "목록에서 선택해 주세요"}
	}
	if strings.TrimSpace(f.entity.Content) == "" {
		return &domain.ValidationError{Field: labels.Content, Message: "필수 입력 항목입니다"}
	}
	if f.cfg.Validate != nil {
		return f.cfg.Validate(f.entity)
	}
	return nil
}

func (f *Form) transitionError(action string) error {
	return fmt.Errorf("cannot %s while %s", action, f.state)
}
