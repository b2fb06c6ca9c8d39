package ui

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/api"
	"backoffice/internal/config"
	"backoffice/internal/entities"
	"backoffice/internal/mockapi"
	inputtypes "backoffice/internal/ui/input/types"
	"backoffice/internal/ui/views"
)

func newTestModel(t *testing.T, mutate func(*config.Config)) (*Model, *mockapi.Store) {
	t.Helper()
	store := mockapi.NewSeededStore()
	srv := httptest.NewServer(mockapi.NewRouter(store, mockapi.Options{}))
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	reg, err := entities.NewRegistry(entities.Deps{
		API:    api.New(api.Options{BaseURL: srv.URL}),
		Config: cfg,
	})
	require.NoError(t, err)

	m := NewModel(nil, cfg, reg, logr.Discard())
	t.Cleanup(m.cancel)
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	drain(t, m, m.load(m.activeList()))
	return m, store
}

// drain runs cmd and feeds the results of list, bulk and form requests back
// into the model until nothing is left. Timers and cursor blinks are dropped.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for round := 0; len(queue) > 0 && round < 10; round++ {
		results := make(chan tea.Msg, len(queue))
		n := 0
		for _, c := range queue {
			if c == nil {
				continue
			}
			n++
			go func(c tea.Cmd) { results <- c() }(c)
		}
		queue = nil

		deadline := time.After(300 * time.Millisecond)
	collect:
		for i := 0; i < n; i++ {
			select {
			case msg := <-results:
				switch msg := msg.(type) {
				case tea.BatchMsg:
					queue = append(queue, msg...)
				case listLoadedMsg, bulkDoneMsg, activatedMsg, formDoneMsg:
					_, next := m.Update(msg)
					queue = append(queue, next)
				}
			case <-deadline:
				break collect
			}
		}
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m *Model, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, cmd := m.Update(keyMsg(k))
		drain(t, m, cmd)
	}
}

func TestModelShowsFirstList(t *testing.T) {
	m, _ := newTestModel(t, nil)

	table := m.activeList().Table()
	assert.Equal(t, "users", m.activeList().Name())
	assert.False(t, table.Loading)
	assert.Greater(t, table.Total, 0)
	assert.Len(t, table.Rows, 10)

	view := views.StripANSI(m.View())
	assert.Contains(t, view, "회원 관리")
	assert.Contains(t, view, "1 / ")
	assert.Contains(t, view, "user01@example.com")
}

func TestModelCursorAndPaging(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(t, m, "down", "down")
	assert.Equal(t, 2, m.cursor)

	press(t, m, "right")
	assert.Equal(t, 2, m.activeList().Table().State.Page)
	assert.Equal(t, 0, m.cursor)

	press(t, m, "left")
	assert.Equal(t, 1, m.activeList().Table().State.Page)

	press(t, m, "left")
	assert.Equal(t, 1, m.activeList().Table().State.Page, "no page before the first")
}

func TestModelCursorStaysOnRealRows(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(t, m, "]") // 블럭회원
	require.Equal(t, "블럭회원", m.activeList().Table().State.ActiveFilter)
	press(t, m, "right", "right")
	require.Equal(t, 3, m.activeList().Table().State.Page)

	press(t, m, "G")
	assert.Equal(t, 2, m.cursor, "three real rows on the last page")
	press(t, m, "down")
	assert.Equal(t, 2, m.cursor)
}

func TestModelLocalSearchIsLive(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(t, m, "3")
	require.Equal(t, "orders", m.activeList().Name())
	total := m.activeList().Table().Total

	press(t, m, "/")
	assert.Equal(t, inputtypes.ModeSearch, m.inputHandler.CurrentMode())
	press(t, m, "kim")
	assert.Equal(t, 5, m.activeList().Table().Total, "filters while typing")

	press(t, m, "enter")
	assert.Equal(t, inputtypes.ModeNormal, m.inputHandler.CurrentMode())
	assert.Equal(t, "kim", m.activeList().Table().State.SearchTerm)

	press(t, m, "/", "x", "esc")
	assert.Equal(t, "kim", m.activeList().Table().State.SearchTerm, "esc restores the previous term")
	assert.Equal(t, 5, m.activeList().Table().Total)

	press(t, m, "/", "backspace", "backspace", "backspace", "enter")
	assert.Equal(t, "", m.activeList().Table().State.SearchTerm)
	assert.Equal(t, total, m.activeList().Table().Total)
}

func TestModelRemoteSearchWaitsForSubmit(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(t, m, "/", "user0")
	table := m.activeList().Table()
	assert.Equal(t, "", table.State.SearchTerm)
	assert.Equal(t, "user0", table.Draft)

	press(t, m, "enter")
	table = m.activeList().Table()
	assert.Equal(t, "user0", table.State.SearchTerm)
	assert.Equal(t, 9, table.Total)
}

func TestModelBulkGradeChange(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(t, m, "2")
	require.Equal(t, "memberships", m.activeList().Name())

	press(t, m, "space", "down", "space")
	assert.Equal(t, 2, m.activeList().Table().Selected)

	press(t, m, "x")
	require.NotNil(t, m.choice)
	assert.Equal(t, []string{"BASIC", "PREMIUM", "VIP"}, m.choice.options)

	press(t, m, "down", "down", "enter")
	require.NotNil(t, m.confirm)
	assert.Equal(t, inputtypes.ModeConfirm, m.inputHandler.CurrentMode())
	assert.Contains(t, views.StripANSI(m.View()), "(y/n)")

	press(t, m, "y")
	assert.Equal(t, inputtypes.ModeNormal, m.inputHandler.CurrentMode())
	assert.Equal(t, views.StatusSuccess, m.statusKind)
	assert.Contains(t, m.statusMessage, "2건")

	table := m.activeList().Table()
	assert.Equal(t, 0, table.Selected)
	assert.Equal(t, "VIP", table.Rows[0].Cells[3])
	assert.Equal(t, "VIP", table.Rows[1].Cells[3])
}

func TestModelBulkPartialFailure(t *testing.T) {
	m, store := newTestModel(t, func(cfg *config.Config) {
		cfg.UISettings.ConfirmBulk = false
	})
	store.FailRequests("PATCH /admin/membership/2", http.StatusInternalServerError)

	press(t, m, "2", "space", "down", "space", "x", "down", "down", "enter")

	assert.Nil(t, m.confirm)
	assert.Equal(t, views.StatusWarning, m.statusKind)
	assert.Equal(t, "등급 변경: 1건 성공, 1건 실패", m.statusMessage)
	assert.Equal(t, 2, m.activeList().Table().Selected, "selection kept after a failure")
}

func TestModelBulkNeedsSelection(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(t, m, "x")
	assert.Nil(t, m.choice)
	assert.Equal(t, views.StatusWarning, m.statusKind)
	assert.Equal(t, "선택된 항목이 없습니다", m.statusMessage)
}

func TestModelActivateShowsInfo(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(t, m, "enter")
	require.NotNil(t, m.info)
	assert.Equal(t, inputtypes.ModeInfo, m.inputHandler.CurrentMode())
	assert.Equal(t, "Kim철수", m.info.Title)

	press(t, m, "esc")
	assert.Nil(t, m.info)
	assert.Equal(t, inputtypes.ModeNormal, m.inputHandler.CurrentMode())
}

func TestModelCreateNotice(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(t, m, "5")
	require.Equal(t, "notices", m.activeList().Name())
	before := m.activeList().Table().Total

	press(t, m, "n")
	require.NotNil(t, m.form)
	assert.Equal(t, inputtypes.ModeForm, m.inputHandler.CurrentMode())
	assert.Contains(t, views.StripANSI(m.View()), "공지사항 등록")

	press(t, m, "점검 안내", "tab", "right", "tab", "서버 점검이 있습니다")
	assert.Equal(t, "이벤트", m.form.category.value())

	press(t, m, "ctrl+s")
	require.NotNil(t, m.confirm)
	assert.Equal(t, "공지사항 등록", m.confirm.title)

	press(t, m, "y")
	assert.Nil(t, m.form)
	assert.Equal(t, inputtypes.ModeNormal, m.inputHandler.CurrentMode())
	assert.Equal(t, views.StatusSuccess, m.statusKind)
	assert.Equal(t, before+1, m.activeList().Table().Total)
}

func TestModelFormValidationStaysOnForm(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(t, m, "6", "n", "ctrl+s")
	require.NotNil(t, m.form)
	assert.Nil(t, m.confirm)
	assert.Equal(t, inputtypes.ModeForm, m.inputHandler.CurrentMode())
	assert.Equal(t, "제목: 필수 입력 항목입니다", m.form.message)
	assert.Equal(t, views.StatusWarning, m.statusKind)

	press(t, m, "esc")
	assert.Nil(t, m.form)
}

func TestModelRequestFailureShowsAlert(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(t, m, "7", "n")
	require.NotNil(t, m.form)
	require.Len(t, m.form.fields, 3)

	press(t, m, "root@example.com", "tab", "중복", "tab", "password1", "ctrl+s", "y")

	require.NotNil(t, m.form, "stays on the form after a failed request")
	assert.Equal(t, inputtypes.ModeAlert, m.inputHandler.CurrentMode())
	assert.NotEmpty(t, m.alert)
	assert.Contains(t, views.StripANSI(m.View()), "오류")

	press(t, m, "enter")
	assert.Empty(t, m.alert)
	assert.Equal(t, inputtypes.ModeForm, m.inputHandler.CurrentMode())
}

func TestModelOpensDocument(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(t, m, "t")
	require.NotNil(t, m.form)
	assert.Len(t, m.form.fields, 2, "documents have no category")
	assert.Equal(t, "이용약관", m.form.title.value())
	assert.False(t, m.form.form.CanDelete())

	press(t, m, "tab", " 추가", "ctrl+s", "y")
	assert.Nil(t, m.form)
	assert.Equal(t, "이용약관 저장 완료", m.statusMessage)
}

func TestModelSwitchesEntities(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(t, m, "tab")
	assert.Equal(t, "memberships", m.activeList().Name())
	press(t, m, "7")
	assert.Equal(t, "admins", m.activeList().Name())
	press(t, m, "tab")
	assert.Equal(t, "users", m.activeList().Name(), "wraps around")
	press(t, m, "9")
	assert.Equal(t, "users", m.activeList().Name(), "no ninth list")
}

func TestModelHelpToggle(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(t, m, "?")
	assert.True(t, m.showHelp)
	assert.Contains(t, views.StripANSI(m.View()), "backoffice 도움말")
	press(t, m, "?")
	assert.False(t, m.showHelp)
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.True(t, sendsQuit(cmd()))
	assert.Error(t, m.ctx.Err())
}

func sendsQuit(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if c != nil && sendsQuit(c()) {
				return true
			}
		}
	}
	return false
}
