package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap describes the bindings shown in the footer and help popup. The
// input modes do the actual matching.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Page     key.Binding
	Ends     key.Binding
	Entity   key.Binding
	Tab      key.Binding
	Open     key.Binding
	Select   key.Binding
	All      key.Binding
	Deselect key.Binding
	Bulk     key.Binding
	Create   key.Binding
	Search   key.Binding
	Docs     key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Pager    key.Binding
	Quit     key.Binding
}

// formKeyMap is used while a detail form is open
type formKeyMap struct {
	Next   key.Binding
	Choice key.Binding
	Save   key.Binding
	Delete key.Binding
	Pager  key.Binding
	Back   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "위로")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "아래로")),
		Page:     key.NewBinding(key.WithKeys("left", "right", "h", "l", "pgup", "pgdown"), key.WithHelp("←/→", "페이지")),
		Ends:     key.NewBinding(key.WithKeys("home", "end", "g", "G"), key.WithHelp("gg/G", "처음/끝")),
		Entity:   key.NewBinding(key.WithKeys("tab", "shift+tab", "1", "2", "3", "4", "5", "6", "7"), key.WithHelp("tab/1-7", "메뉴")),
		Tab:      key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "탭")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "상세")),
		Select:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "선택")),
		All:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "전체 선택")),
		Deselect: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "선택 해제")),
		Bulk:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "일괄 처리")),
		Create:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "등록")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "검색")),
		Docs:     key.NewBinding(key.WithKeys("t", "p"), key.WithHelp("t/p", "약관/개인정보")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "새로고침")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "도움말")),
		Pager:    key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "도움말 (pager)")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "종료")),
	}
}

func newFormKeyMap() formKeyMap {
	return formKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "다음 항목")),
		Choice: key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "카테고리")),
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "저장")),
		Delete: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "삭제")),
		Pager:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "내용 보기")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "목록으로")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Select, k.Bulk, k.Create, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Page, k.Ends},
		{k.Entity, k.Tab, k.Search, k.Refresh},
		{k.Open, k.Select, k.All, k.Deselect, k.Bulk},
		{k.Create, k.Docs, k.Help, k.Pager, k.Quit},
	}
}

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Choice, k.Save, k.Delete, k.Pager, k.Back}
}

// bindings leaves out delete on forms that cannot delete
func (k formKeyMap) bindings(canDelete bool) []key.Binding {
	if canDelete {
		return k.ShortHelp()
	}
	return []key.Binding{k.Next, k.Choice, k.Save, k.Pager, k.Back}
}

func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
