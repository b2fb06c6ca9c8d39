package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/detail"
)

func TestFormStateOpensEveryFieldKind(t *testing.T) {
	cases := []struct {
		name   string
		cfg    detail.Config
		fields int
	}{
		{"choice and area", detail.Config{Kind: "공지사항", Categories: []string{"공지", "이벤트"}}, 3},
		{"secret content", detail.Config{Kind: "관리자", Labels: detail.Labels{Title: "이메일", Category: "이름", Content: "비밀번호"}, SecretContent: true}, 3},
		{"title and area only", detail.Config{Kind: "이용약관", Labels: detail.Labels{Title: "제목", Content: "내용"}}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var s *formState
			require.NotPanics(t, func() {
				s = newFormState(detail.NewForm(tc.cfg, detail.Entity{}), 120)
			})
			assert.Len(t, s.fields, tc.fields)

			require.NotPanics(t, func() {
				s.resize(40)
				s.focus(0)
				s.next(false)
				s.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
			})
			assert.Contains(t, s.view("").Title, tc.cfg.Kind)
		})
	}
}

func TestFormStateSyncsFieldsIntoForm(t *testing.T) {
	form := detail.NewForm(detail.Config{Kind: "공지사항", Categories: []string{"공지", "이벤트"}}, detail.Entity{})
	s := newFormState(form, 100)

	s.focus(0)
	s.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("점검")})
	s.focus(1)
	s.update(tea.KeyMsg{Type: tea.KeyRight})
	s.focus(2)
	s.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("본문")})

	require.NoError(t, s.sync())
	e := form.Entity()
	assert.Equal(t, "점검", e.Title)
	assert.Equal(t, "이벤트", e.Category)
	assert.Equal(t, "본문", e.Content)
}
