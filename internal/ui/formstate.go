package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"backoffice/internal/detail"
	"backoffice/internal/ui/views"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldChoice
	fieldArea
)

// formField is one editable field of the detail screen
type formField struct {
	label   string
	kind    fieldKind
	input   textinput.Model
	area    textarea.Model
	options []string
	index   int
}

func newTextField(label, value string, secret bool) *formField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.SetValue(value)
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return &formField{label: label, kind: fieldText, input: ti}
}

func newChoiceField(label string, options []string, value string) *formField {
	f := &formField{label: label, kind: fieldChoice, options: options}
	for i, o := range options {
		if o == value {
			f.index = i
		}
	}
	return f
}

func newAreaField(label, value string) *formField {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(8)
	ta.SetValue(value)
	return &formField{label: label, kind: fieldArea, area: ta}
}

func (f *formField) value() string {
	switch f.kind {
	case fieldChoice:
		if f.index < len(f.options) {
			return f.options[f.index]
		}
		return ""
	case fieldArea:
		return f.area.Value()
	}
	return f.input.Value()
}

func (f *formField) focus() tea.Cmd {
	switch f.kind {
	case fieldText:
		return f.input.Focus()
	case fieldArea:
		return f.area.Focus()
	}
	return nil
}

func (f *formField) blur() {
	switch f.kind {
	case fieldText:
		f.input.Blur()
	case fieldArea:
		f.area.Blur()
	}
}

func (f *formField) setWidth(w int) {
	switch f.kind {
	case fieldText:
		f.input.Width = w
	case fieldArea:
		f.area.SetWidth(w)
	}
}

func (f *formField) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.kind {
	case fieldChoice:
		if key, ok := msg.(tea.KeyMsg); ok && len(f.options) > 0 {
			switch key.String() {
			case "left":
				f.index = (f.index - 1 + len(f.options)) % len(f.options)
			case "right", " ":
				f.index = (f.index + 1) % len(f.options)
			}
		}
	case fieldArea:
		f.area, cmd = f.area.Update(msg)
	default:
		f.input, cmd = f.input.Update(msg)
	}
	return cmd
}

func (f *formField) view() string {
	switch f.kind {
	case fieldChoice:
		parts := make([]string, len(f.options))
		for i, o := range f.options {
			if i == f.index {
				parts[i] = "(•) " + o
			} else {
				parts[i] = "( ) " + o
			}
		}
		return strings.Join(parts, "  ")
	case fieldArea:
		return f.area.View()
	}
	return f.input.View()
}

// formState binds a detail form to its on-screen fields
type formState struct {
	form     *detail.Form
	title    *formField
	category *formField // nil when the form has no category
	content  *formField
	fields   []*formField
	focused  int
	message  string
	busy     bool
}

func newFormState(form *detail.Form, width int) *formState {
	e := form.Entity()
	labels := form.Labels()

	s := &formState{form: form}
	s.title = newTextField(labels.Title, e.Title, false)
	switch {
	case len(form.Categories()) > 0:
		s.category = newChoiceField(labels.Category, form.Categories(), e.Category)
	case labels.Category != "":
		s.category = newTextField(labels.Category, e.Category, false)
	}
	if form.SecretContent() {
		s.content = newTextField(labels.Content, e.Content, true)
	} else {
		s.content = newAreaField(labels.Content, e.Content)
	}

	s.fields = []*formField{s.title}
	if s.category != nil {
		s.fields = append(s.fields, s.category)
	}
	s.fields = append(s.fields, s.content)
	s.resize(width)
	return s
}

func (s *formState) resize(width int) {
	w := width - 12
	if w < 20 {
		w = 60
	}
	for _, f := range s.fields {
		f.setWidth(w)
	}
}

// focus moves the cursor to field i
func (s *formState) focus(i int) tea.Cmd {
	for _, f := range s.fields {
		f.blur()
	}
	s.focused = i
	return s.fields[i].focus()
}

func (s *formState) next(back bool) tea.Cmd {
	n := len(s.fields)
	if back {
		return s.focus((s.focused - 1 + n) % n)
	}
	return s.focus((s.focused + 1) % n)
}

// update routes a key to the focused field. Enter leaves single-line
// fields for the next one.
func (s *formState) update(msg tea.KeyMsg) tea.Cmd {
	f := s.fields[s.focused]
	if msg.String() == "enter" && f.kind != fieldArea {
		return s.next(false)
	}
	return f.update(msg)
}

// sync copies the field values into the form
func (s *formState) sync() error {
	category := ""
	if s.category != nil {
		category = s.category.value()
	}
	return s.form.Edit(s.title.value(), category, s.content.value())
}

func (s *formState) heading() string {
	if s.form.Mode() == detail.ModeCreate {
		return s.form.Kind() + " 등록"
	}
	return s.form.Kind() + " 수정"
}

func (s *formState) view(keys string) views.FormView {
	fields := make([]views.FieldView, len(s.fields))
	for i, f := range s.fields {
		fields[i] = views.FieldView{Label: f.label, Input: f.view(), Focused: i == s.focused}
	}
	return views.FormView{
		Title:  s.heading(),
		Fields: fields,
		Error:  s.message,
		Busy:   s.busy,
		Keys:   keys,
	}
}

// pagerContent is the plain text of the form for the pager. Secret fields
// are left out.
func (s *formState) pagerContent() string {
	var b strings.Builder
	b.WriteString(s.heading())
	b.WriteString("\n\n")
	for _, f := range s.fields {
		if f.kind == fieldText && f.input.EchoMode == textinput.EchoPassword {
			continue
		}
		b.WriteString(fmt.Sprintf("[%s]\n%s\n\n", f.label, f.value()))
	}
	return strings.TrimRight(b.String(), "\n")
}
