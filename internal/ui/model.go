package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"backoffice/internal/config"
	"backoffice/internal/detail"
	"backoffice/internal/domain"
	"backoffice/internal/entities"
	"backoffice/internal/eventbus"
	"backoffice/internal/ui/input"
	inputtypes "backoffice/internal/ui/input/types"
	"backoffice/internal/ui/views"
)

// pendingConfirm is a yes/no question waiting for an answer. A nil bulk
// means the open form asked it.
type pendingConfirm struct {
	title   string
	message string
	bulk    *bulkRequest
}

type bulkRequest struct {
	action entities.BulkActionInfo
	param  string
}

// pendingChoice is an option list. It either picks a bulk action or the
// parameter of one.
type pendingChoice struct {
	title   string
	options []string
	actions []entities.BulkActionInfo
	action  *entities.BulkActionInfo
}

// Model represents the UI state
type Model struct {
	bus      eventbus.EventBus
	config   *config.Config
	registry *entities.Registry
	log      logr.Logger

	ctx    context.Context
	cancel context.CancelFunc

	width    int
	height   int
	help     help.Model
	keys     keyMap
	formKeys formKeyMap

	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	inputHandler *input.Handler
	pager        *PagerOps
	inPagerMode  bool // tracks if we're currently in pager mode

	active       int // index into registry.Lists()
	cursor       int // row index on the current page
	searchBefore string

	statusMessage string
	statusKind    views.StatusKind
	statusSeq     int

	confirm  *pendingConfirm
	choice   *pendingChoice
	form     *formState
	info     *entities.Info
	alert    string
	showHelp bool

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, registry *entities.Registry, log logr.Logger) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	keys := newKeyMap()
	formKeys := newFormKeyMap()

	return &Model{
		bus:          bus,
		config:       cfg,
		registry:     registry,
		log:          log.WithName("ui"),
		ctx:          ctx,
		cancel:       cancel,
		help:         help.New(),
		keys:         keys,
		formKeys:     formKeys,
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(keys, formKeys),
		inputHandler: input.New(),
		pager:        NewPagerOps(),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Init loads the first list and starts the animation tick
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.load(m.activeList()), tick())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.form != nil {
			m.form.resize(msg.Width)
		}
		return m, nil

	case tea.KeyMsg:
		before := m.inputHandler.CurrentMode()
		actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())
		if before != inputtypes.ModeSearch && m.inputHandler.CurrentMode() == inputtypes.ModeSearch {
			m.searchBefore = m.activeList().Table().State.SearchTerm
		}

		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	default:
		// blink messages for the search input and the form fields
		inputCmd := m.inputHandler.Update(msg)
		if m.form != nil && m.inputHandler.CurrentMode() == inputtypes.ModeForm {
			inputCmd = tea.Batch(inputCmd, m.form.fields[m.form.focused].update(msg))
		}
		_, cmd := m.handleNonKeyboardMsg(msg)
		return m, tea.Batch(inputCmd, cmd)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "불러오는 중..."
	}

	list := m.activeList()
	lists := m.registry.Lists()
	menu := make([]string, len(lists))
	for i, l := range lists {
		menu[i] = l.Title()
	}

	state := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Menu:           menu,
		ActiveMenu:     m.active,
		ListTitle:      list.Title(),
		Table:          list.Table(),
		Cursor:         m.cursor,
		ShowFillerRows: m.config.UISettings.ShowFillerRows,
		Remote:         list.Remote(),
		InputMode:      m.inputHandler.ModeName(),
		SearchPrompt:   m.inputHandler.Prompt(),
		StatusMessage:  m.statusMessage,
		StatusKind:     m.statusKind,
		Info:           m.info,
		Alert:          m.alert,
		ShowHelp:       m.showHelp,
	}

	if ti := m.inputHandler.TextInput(); ti != nil {
		state.SearchInput = ti.View()
	}
	if m.confirm != nil {
		state.Confirm = &views.PromptView{Title: m.confirm.title, Message: m.confirm.message}
	}
	if m.choice != nil {
		state.Choice = &views.ChoiceView{
			Title:   m.choice.title,
			Options: m.choice.options,
			Index:   m.inputHandler.ChoiceIndex(),
		}
	}
	if m.form != nil {
		fv := m.form.view(m.help.ShortHelpView(m.formKeys.bindings(m.form.form.CanDelete())))
		state.Form = &fv
	} else {
		state.Footer = m.help.View(m.keys)
	}
	if m.showHelp {
		state.HelpContent = m.helpRenderer.Render()
	}

	return m.renderer.Render(state)
}

// activeList returns the list shown on screen
func (m *Model) activeList() entities.List {
	return m.registry.Lists()[m.active]
}

func (m *Model) rows() []entities.TableRow {
	return m.activeList().Table().Rows
}

// inputContext snapshots what the input modes need to decide on a key
func (m *Model) inputContext() *input.ModelContext {
	ctx := &input.ModelContext{}
	if m.choice != nil {
		ctx.Choices = len(m.choice.options)
	}

	list := m.activeList()
	t := list.Table()
	if m.cursor >= 0 && m.cursor < len(t.Rows) && !t.Rows[m.cursor].Filler {
		ctx.RowID = t.Rows[m.cursor].ID
	}
	ctx.Selected = t.Selected
	ctx.Bulk = len(list.BulkActions()) > 0
	ctx.Create = list.CanCreate()
	ctx.SearchText = t.State.SearchTerm
	return ctx
}

// setMode switches the input mode from the model side
func (m *Model) setMode(mode inputtypes.Mode) tea.Cmd {
	_, cmd := m.inputHandler.SetMode(mode, "", m.inputContext())
	return cmd
}

// baseMode is the mode to return to after a popup closes
func (m *Model) baseMode() inputtypes.Mode {
	if m.form != nil {
		return inputtypes.ModeForm
	}
	return inputtypes.ModeNormal
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	list := m.activeList()

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		rows := m.rows()
		switch a.Direction {
		case "up":
			m.cursor = views.NextRow(rows, m.cursor, -1)
		case "down":
			m.cursor = views.NextRow(rows, m.cursor, 1)
		case "home":
			m.cursor = views.FirstRow(rows)
		case "end":
			m.cursor = views.LastRow(rows)
		}

	case inputtypes.PageAction:
		t := list.Table()
		page := t.State.Page + a.Delta
		switch {
		case a.First:
			page = 1
		case a.Last:
			page = t.TotalPages
		}
		if page < 1 || page > t.TotalPages || page == t.State.Page {
			return nil
		}
		m.cursor = 0
		if list.SetPage(page) {
			return m.load(list)
		}

	case inputtypes.SwitchTabAction:
		t := list.Table()
		if len(t.Tabs) == 0 {
			return nil
		}
		idx := 0
		for i, tab := range t.Tabs {
			if tab == t.State.ActiveFilter {
				idx = i
			}
		}
		idx = (idx + a.Delta + len(t.Tabs)) % len(t.Tabs)
		m.cursor = 0
		if list.SetActiveFilter(t.Tabs[idx]) {
			return m.load(list)
		}

	case inputtypes.SwitchEntityAction:
		n := len(m.registry.Lists())
		idx := a.Index
		if idx < 0 {
			idx = (m.active + a.Delta + n) % n
		}
		if idx >= n || idx == m.active {
			return nil
		}
		m.active = idx
		m.cursor = 0
		return m.load(m.activeList())

	case inputtypes.SelectAction:
		if id := m.inputContext().RowID; id != 0 {
			list.ToggleRowSelection(id)
		}

	case inputtypes.SelectAllAction:
		list.ToggleSelectAllVisible()

	case inputtypes.DeselectAllAction:
		list.ClearSelection()

	case inputtypes.ActivateRowAction:
		return m.activate(list, a.ID)

	case inputtypes.CreateAction:
		form, err := list.NewForm()
		if err != nil {
			return m.showError(err)
		}
		return m.openForm(form)

	case inputtypes.OpenDocumentAction:
		return m.openDocument(a.Name)

	case inputtypes.BulkAction:
		return m.startBulk()

	case inputtypes.UpdateTextAction:
		m.cursor = 0
		if list.SetSearchTerm(a.Text) {
			return m.load(list)
		}

	case inputtypes.SubmitTextAction:
		if a.Mode != inputtypes.ModeSearch {
			return nil
		}
		m.cursor = 0
		if list.SubmitSearch() {
			return m.load(list)
		}

	case inputtypes.CancelTextAction:
		m.cursor = 0
		if list.SetSearchTerm(m.searchBefore) {
			return m.load(list)
		}

	case inputtypes.ConfirmAction:
		return m.confirmPending()

	case inputtypes.CancelConfirmAction:
		return m.cancelPending()

	case inputtypes.ChooseAction:
		return m.choose(a.Index)

	case inputtypes.CancelChoiceAction:
		m.choice = nil
		return m.setMode(inputtypes.ModeNormal)

	case inputtypes.NextFieldAction:
		if m.form != nil {
			return m.form.next(a.Back)
		}

	case inputtypes.FormInputAction:
		if m.form != nil && !m.form.busy {
			return m.form.update(a.Key)
		}

	case inputtypes.SaveFormAction:
		return m.saveForm()

	case inputtypes.DeleteFormAction:
		return m.deleteForm()

	case inputtypes.BackFormAction:
		return m.backForm()

	case inputtypes.ClosePopupAction:
		m.info = nil
		m.alert = ""
		return m.setMode(m.baseMode())

	case inputtypes.OpenPagerAction:
		switch {
		case a.Help:
			return m.openPager(m.helpRenderer.Render())
		case m.info != nil:
			return m.openPager(views.RenderInfo(*m.info))
		case m.form != nil:
			return m.openPager(m.form.pagerContent())
		}

	case inputtypes.RefreshAction:
		return m.load(list)

	case inputtypes.ToggleHelpAction:
		m.showHelp = !m.showHelp

	case inputtypes.QuitAction:
		m.cancel()
		return tea.Quit
	}

	return nil
}

// load starts a fetch of list. Begin runs here so the loading flag and the
// generation are set before the command is scheduled.
func (m *Model) load(list entities.List) tea.Cmd {
	task := list.StartLoad()
	name := list.Name()
	ctx := m.ctx
	return func() tea.Msg {
		applied, err := task.Run(ctx)
		return listLoadedMsg{list: name, generation: task.Generation, applied: applied, err: err}
	}
}

func (m *Model) activate(list entities.List, id int64) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		act, err := list.Activate(ctx, id)
		return activatedMsg{activation: act, err: err}
	}
}

func (m *Model) openDocument(name string) tea.Cmd {
	ctx := m.ctx
	registry := m.registry
	return func() tea.Msg {
		form, err := registry.OpenDocument(ctx, name)
		return activatedMsg{activation: entities.Activation{Form: form}, err: err}
	}
}

func (m *Model) openForm(form *detail.Form) tea.Cmd {
	m.info = nil
	m.form = newFormState(form, m.width)
	return tea.Batch(m.setMode(inputtypes.ModeForm), m.form.focus(0))
}

func (m *Model) closeForm() tea.Cmd {
	m.form = nil
	m.confirm = nil
	return m.setMode(inputtypes.ModeNormal)
}

func (m *Model) saveForm() tea.Cmd {
	fs := m.form
	if fs == nil || fs.busy {
		return nil
	}
	if err := fs.sync(); err != nil {
		return m.showError(err)
	}
	if err := fs.form.Save(); err != nil {
		return m.showError(err)
	}
	fs.message = ""
	return m.askForm()
}

func (m *Model) deleteForm() tea.Cmd {
	fs := m.form
	if fs == nil || fs.busy {
		return nil
	}
	if err := fs.form.Delete(); err != nil {
		return m.showError(err)
	}
	return m.askForm()
}

// askForm shows the confirmation of the form's pending save or delete
func (m *Model) askForm() tea.Cmd {
	p := m.form.form.Prompt()
	m.confirm = &pendingConfirm{title: p.Title, message: p.Message}
	return m.setMode(inputtypes.ModeConfirm)
}

func (m *Model) backForm() tea.Cmd {
	fs := m.form
	if fs == nil || fs.busy {
		return nil
	}
	if err := fs.form.Back(); err != nil {
		return m.showError(err)
	}
	return m.closeForm()
}

// submitForm runs the confirmed form request off the UI goroutine
func (m *Model) submitForm() tea.Cmd {
	fs := m.form
	fs.busy = true
	form := fs.form
	deleting := form.State() == detail.ConfirmingDelete
	ctx := m.ctx
	return func() tea.Msg {
		err := form.Confirm(ctx)
		return formDoneMsg{entity: form.Kind(), delete: deleting, err: err}
	}
}

func (m *Model) startBulk() tea.Cmd {
	list := m.activeList()
	if len(list.SelectedIDs()) == 0 {
		return m.setStatus("선택된 항목이 없습니다", views.StatusWarning)
	}
	actions := list.BulkActions()
	switch len(actions) {
	case 0:
		return nil
	case 1:
		return m.chooseBulkAction(actions[0])
	}

	options := make([]string, len(actions))
	for i, a := range actions {
		options[i] = a.Label
	}
	m.choice = &pendingChoice{title: "일괄 처리", options: options, actions: actions}
	return m.setMode(inputtypes.ModeChoice)
}

func (m *Model) chooseBulkAction(a entities.BulkActionInfo) tea.Cmd {
	if a.RequiresParam {
		m.choice = &pendingChoice{
			title:   fmt.Sprintf("%s: %s 선택", a.Label, a.ParamName),
			options: a.Choices,
			action:  &a,
		}
		return m.setMode(inputtypes.ModeChoice)
	}
	return m.requestBulk(bulkRequest{action: a})
}

func (m *Model) choose(index int) tea.Cmd {
	c := m.choice
	if c == nil || index < 0 || index >= len(c.options) {
		return nil
	}
	if c.action != nil {
		return m.requestBulk(bulkRequest{action: *c.action, param: c.options[index]})
	}
	return m.chooseBulkAction(c.actions[index])
}

// requestBulk asks for confirmation when configured, otherwise runs at once
func (m *Model) requestBulk(req bulkRequest) tea.Cmd {
	m.choice = nil
	if !m.config.UISettings.ConfirmBulk {
		return tea.Batch(m.setMode(inputtypes.ModeNormal), m.runBulk(req))
	}

	n := len(m.activeList().SelectedIDs())
	msg := fmt.Sprintf("선택한 %d건에 적용하시겠습니까?", n)
	if req.param != "" {
		msg = fmt.Sprintf("선택한 %d건을 %s(으)로 변경하시겠습니까?", n, req.param)
	}
	m.confirm = &pendingConfirm{title: req.action.Label, message: msg, bulk: &req}
	return m.setMode(inputtypes.ModeConfirm)
}

func (m *Model) runBulk(req bulkRequest) tea.Cmd {
	list := m.activeList()
	ctx := m.ctx
	status := m.setStatus(fmt.Sprintf("%s 처리 중...", req.action.Label), views.StatusInfo)
	return tea.Batch(status, func() tea.Msg {
		res, err := list.RunBulkAction(ctx, req.action.Name, req.param)
		return bulkDoneMsg{list: list.Name(), label: req.action.Label, result: res, err: err}
	})
}

func (m *Model) confirmPending() tea.Cmd {
	c := m.confirm
	m.confirm = nil
	if c == nil {
		return m.setMode(m.baseMode())
	}
	if c.bulk != nil {
		return tea.Batch(m.setMode(inputtypes.ModeNormal), m.runBulk(*c.bulk))
	}
	if m.form == nil {
		return m.setMode(inputtypes.ModeNormal)
	}
	return tea.Batch(m.setMode(inputtypes.ModeForm), m.submitForm())
}

func (m *Model) cancelPending() tea.Cmd {
	c := m.confirm
	m.confirm = nil
	if c != nil && c.bulk == nil && m.form != nil {
		m.form.form.Cancel()
	}
	return m.setMode(m.baseMode())
}

func (m *Model) openPager(content string) tea.Cmd {
	if m.program == nil {
		return m.setStatus("pager를 사용할 수 없습니다", views.StatusWarning)
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.Show(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return pagerMsg{err: err}
	}
}

// setStatus shows msg on the status line until a timer clears it
func (m *Model) setStatus(msg string, kind views.StatusKind) tea.Cmd {
	m.statusMessage = msg
	m.statusKind = kind
	m.statusSeq++
	seq := m.statusSeq

	wait := 3 * time.Second
	if kind == views.StatusWarning || kind == views.StatusError {
		wait = 5 * time.Second
	}
	return tea.Tick(wait, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

// showError routes err by kind: validation problems and partial failures go
// to the status line, request failures to the alert popup
func (m *Model) showError(err error) tea.Cmd {
	var (
		verr *domain.ValidationError
		perr *domain.PartialFailureError
		nerr *domain.NetworkError
	)
	switch {
	case errors.Is(err, detail.ErrBusy), errors.Is(err, context.Canceled):
		return nil
	case errors.As(err, &perr):
		m.log.Info("bulk action partially failed", "action", perr.Action, "errors", perr.Detail())
		return m.setStatus(fmt.Sprintf("%s: %d건 성공, %d건 실패", perr.Action, perr.Succeeded, perr.Failed), views.StatusWarning)
	case errors.As(err, &verr):
		if m.form != nil {
			m.form.message = verr.Error()
		}
		return m.setStatus(verr.Error(), views.StatusWarning)
	case errors.As(err, &nerr):
		m.log.Error(err, "request failed")
		m.alert = nerr.Error()
		return m.setMode(inputtypes.ModeAlert)
	default:
		m.log.Error(err, "operation failed")
		return m.setStatus(err.Error(), views.StatusError)
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case tickMsg:
		// Don't continue tick loop if we're in pager mode
		if m.inPagerMode {
			return m, nil
		}
		return m, tick()

	case listLoadedMsg:
		if !msg.applied || msg.list != m.activeList().Name() {
			return m, nil
		}
		m.cursor = views.ClampCursor(m.rows(), m.cursor)
		if msg.err != nil {
			return m, m.showError(msg.err)
		}
		return m, nil

	case bulkDoneMsg:
		if msg.list == m.activeList().Name() {
			m.cursor = views.ClampCursor(m.rows(), m.cursor)
		}
		var perr *domain.PartialFailureError
		if errors.As(msg.err, &perr) {
			m.log.Info("bulk action partially failed", "action", perr.Action, "errors", perr.Detail())
			return m, m.setStatus(fmt.Sprintf("%s: %d건 성공, %d건 실패", msg.label, perr.Succeeded, perr.Failed), views.StatusWarning)
		}
		if msg.err != nil {
			return m, m.showError(msg.err)
		}
		return m, m.setStatus(fmt.Sprintf("%s 완료: %d건", msg.label, msg.result.Succeeded), views.StatusSuccess)

	case activatedMsg:
		if msg.err != nil {
			return m, m.showError(msg.err)
		}
		switch {
		case msg.activation.Form != nil:
			return m, m.openForm(msg.activation.Form)
		case msg.activation.Info != nil:
			m.info = msg.activation.Info
			return m, m.setMode(inputtypes.ModeInfo)
		}
		return m, nil

	case formDoneMsg:
		return m, m.formDone(msg)

	case pagerMsg:
		if msg.err != nil {
			m.log.Error(msg.err, "pager failed")
			return m, m.setStatus(fmt.Sprintf("pager 실행 실패: %v", msg.err), views.StatusWarning)
		}
		// Pager succeeded, RestoreTerminal() should have restored the screen
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, tick()

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) formDone(msg formDoneMsg) tea.Cmd {
	fs := m.form
	if fs == nil {
		return nil
	}
	fs.busy = false

	if fs.form.State() != detail.NavigatedAway {
		if msg.err != nil {
			return m.showError(msg.err)
		}
		return nil
	}

	cmds := []tea.Cmd{m.closeForm(), m.load(m.activeList())}
	switch {
	case msg.err != nil:
		cmds = append(cmds, m.showError(msg.err))
	case msg.delete:
		cmds = append(cmds, m.setStatus(msg.entity+" 삭제 완료", views.StatusSuccess))
	default:
		cmds = append(cmds, m.setStatus(msg.entity+" 저장 완료", views.StatusSuccess))
	}
	return tea.Batch(cmds...)
}

// handleEvent processes domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ListLoadedEvent:
		m.log.V(1).Info("list loaded", "entity", e.Entity, "tab", e.Tab, "page", e.Page, "total", e.Total)
	case eventbus.BulkActionCompletedEvent:
		m.log.Info("bulk action completed", "entity", e.Entity, "action", e.Action, "succeeded", e.Succeeded, "failed", e.Failed)
	case eventbus.DetailSavedEvent, eventbus.DetailDeletedEvent:
		m.log.Info("detail changed", "event", event.Type())
	case eventbus.AdminCreatedEvent:
		return m.setStatus(fmt.Sprintf("관리자 계정이 생성되었습니다: %s", e.Email), views.StatusSuccess)
	case eventbus.ErrorEvent:
		return m.setStatus(e.Message, views.StatusError)
	}
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
