package entities

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"backoffice/internal/api"
	"backoffice/internal/config"
	"backoffice/internal/detail"
	"backoffice/internal/domain"
	"backoffice/internal/listview"
)

// API is the part of the REST client the entity lists use
type API interface {
	ListUsers(ctx context.Context, page, limit int, search string) ([]domain.User, int, error)
	ListBlockedUsers(ctx context.Context, page, limit int, search string) ([]domain.User, int, error)
	GetUser(ctx context.Context, email string) (domain.UserDetail, error)
	DeleteUser(ctx context.Context, email string) error
	ListMemberships(ctx context.Context, page, limit int, grade, search string) ([]domain.Membership, int, error)
	ChangeGrade(ctx context.Context, no int64, grade string) error
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListPosts(ctx context.Context, kind api.PostKind) ([]domain.Post, error)
	CreatePost(ctx context.Context, kind api.PostKind, p domain.Post) (domain.Post, error)
	UpdatePost(ctx context.Context, kind api.PostKind, p domain.Post) (domain.Post, error)
	DeletePost(ctx context.Context, kind api.PostKind, no int64) error
	ListAdmins(ctx context.Context) ([]domain.Admin, error)
	CreateAdmin(ctx context.Context, a domain.NewAdmin) (domain.Admin, error)
	GetDocument(ctx context.Context, kind string) (domain.Document, error)
	UpdateDocument(ctx context.Context, kind, title, content string) (domain.Document, error)
}

// Publisher receives list and detail events
type Publisher interface {
	Publish(event domain.DomainEvent)
}

// Deps are shared by every entity binding
type Deps struct {
	API       API
	Config    *config.Config
	Publisher Publisher
	Logger    logr.Logger
}

// Column is a table header
type Column struct {
	Title string
	Width int
}

// TableRow is one rendered line; filler rows have no id and no cells
type TableRow struct {
	ID       int64
	Cells    []string
	Filler   bool
	Selected bool
}

// Table is a render-ready snapshot of a list
type Table struct {
	State       listview.ListQueryState
	Draft       string
	Tabs        []string
	Columns     []Column
	Rows        []TableRow
	AllSelected bool
	Selected    int
	Total       int
	TotalPages  int
	Loading     bool
	Err         error
}

// Field is one label/value line of a read-only detail view
type Field struct {
	Label string
	Value string
}

// Info is a read-only detail view
type Info struct {
	Title  string
	Fields []Field
}

// Activation is what opening a row produces: an editable form or read-only info
type Activation struct {
	Form *detail.Form
	Info *Info
}

// BulkActionInfo describes a bulk action to the UI
type BulkActionInfo struct {
	Name          string
	Label         string
	RequiresParam bool
	ParamName     string
	Choices       []string
}

// LoadTask is a load started with StartLoad. Run fetches and applies the
// result; applied is false when a newer load superseded it.
type LoadTask struct {
	Generation uint64
	run        func(ctx context.Context) (bool, error)
}

// Run performs the fetch. It is safe to call off the UI goroutine.
func (t LoadTask) Run(ctx context.Context) (applied bool, err error) {
	return t.run(ctx)
}

// List is the entity-independent face of a list controller
type List interface {
	Name() string
	Title() string
	Columns() []Column
	Table() Table
	Remote() bool
	Discipline() listview.Discipline

	SetSearchTerm(term string) bool
	SubmitSearch() bool
	SetActiveFilter(tab string) bool
	SetPage(n int) bool
	ToggleRowSelection(id int64) bool
	ToggleSelectAllVisible()
	ClearSelection()
	SelectedIDs() []int64

	StartLoad() LoadTask
	Refresh(ctx context.Context) error

	BulkActions() []BulkActionInfo
	RunBulkAction(ctx context.Context, name, param string) (listview.BulkResult, error)

	Activate(ctx context.Context, id int64) (Activation, error)
	CanCreate() bool
	NewForm() (*detail.Form, error)
}

// binding adapts a typed controller to List
type binding[T any] struct {
	name     string
	title    string
	ctrl     *listview.Controller[T]
	id       func(T) int64
	columns  []Column
	cells    func(T) []string
	bulk     []listview.BulkAction[T]
	activate func(ctx context.Context, row T) (Activation, error)
	create   func() *detail.Form
}

func (b *binding[T]) Name() string                    { return b.name }
func (b *binding[T]) Title() string                   { return b.title }
func (b *binding[T]) Columns() []Column               { return b.columns }
func (b *binding[T]) Remote() bool                    { return b.ctrl.Remote() }
func (b *binding[T]) Discipline() listview.Discipline { return b.ctrl.Discipline() }
func (b *binding[T]) SetSearchTerm(term string) bool  { return b.ctrl.SetSearchTerm(term) }
func (b *binding[T]) SubmitSearch() bool              { return b.ctrl.SubmitSearch() }
func (b *binding[T]) SetActiveFilter(tab string) bool { return b.ctrl.SetActiveFilter(tab) }
func (b *binding[T]) SetPage(n int) bool              { return b.ctrl.SetPage(n) }
func (b *binding[T]) ToggleSelectAllVisible()         { b.ctrl.ToggleSelectAllVisible() }
func (b *binding[T]) ClearSelection()                 { b.ctrl.ClearSelection() }
func (b *binding[T]) SelectedIDs() []int64            { return b.ctrl.SelectedIDs() }
func (b *binding[T]) Refresh(ctx context.Context) error {
	return b.ctrl.Refresh(ctx)
}

func (b *binding[T]) ToggleRowSelection(id int64) bool {
	return b.ctrl.ToggleRowSelection(id)
}

func (b *binding[T]) Table() Table {
	snap := b.ctrl.Snapshot()
	rows := make([]TableRow, len(snap.Rows))
	for i, r := range snap.Rows {
		if r.Filler {
			rows[i] = TableRow{Filler: true}
			continue
		}
		rows[i] = TableRow{ID: r.ID, Cells: b.cells(r.Item), Selected: snap.Selected[r.ID]}
	}
	return Table{
		State:       snap.State,
		Draft:       snap.Draft,
		Tabs:        snap.Tabs,
		Columns:     b.columns,
		Rows:        rows,
		AllSelected: snap.AllSelected,
		Selected:    len(snap.Selected),
		Total:       snap.Total,
		TotalPages:  snap.TotalPages,
		Loading:     snap.Loading,
		Err:         snap.Err,
	}
}

func (b *binding[T]) StartLoad() LoadTask {
	req := b.ctrl.Begin()
	return LoadTask{
		Generation: req.Generation,
		run: func(ctx context.Context) (bool, error) {
			page, err := b.ctrl.Load(ctx, req)
			applied := b.ctrl.Apply(req, page, err)
			if applied && err == nil && b.ctrl.Stale() {
				return true, b.ctrl.Refresh(ctx)
			}
			return applied, err
		},
	}
}

func (b *binding[T]) BulkActions() []BulkActionInfo {
	out := make([]BulkActionInfo, len(b.bulk))
	for i, a := range b.bulk {
		out[i] = BulkActionInfo{
			Name:          a.Name,
			Label:         a.Label,
			RequiresParam: a.RequiresParam,
			ParamName:     a.ParamName,
			Choices:       a.Choices,
		}
	}
	return out
}

func (b *binding[T]) RunBulkAction(ctx context.Context, name, param string) (listview.BulkResult, error) {
	for _, a := range b.bulk {
		if a.Name == name {
			return b.ctrl.RunBulkAction(ctx, a, param)
		}
	}
	return listview.BulkResult{}, fmt.Errorf("%s: unknown bulk action %q", b.name, name)
}

func (b *binding[T]) Activate(ctx context.Context, id int64) (Activation, error) {
	if b.activate == nil {
		return Activation{}, nil
	}
	for _, r := range b.ctrl.VisibleRows() {
		if b.id(r) == id {
			return b.activate(ctx, r)
		}
	}
	return Activation{}, fmt.Errorf("%s: row %d is not on this page", b.name, id)
}

func (b *binding[T]) CanCreate() bool { return b.create != nil }

func (b *binding[T]) NewForm() (*detail.Form, error) {
	if b.create == nil {
		return nil, fmt.Errorf("%s: create is not supported", b.name)
	}
	return b.create(), nil
}

// listSettings collects the per-entity options shared by every binding
type listSettings struct {
	pageSize    int
	concurrency int
	policy      listview.SelectionPolicy
	navigate    detail.NavigatePolicy
}

func settingsFor(deps Deps, name string) (listSettings, error) {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	policy, err := listview.ParseSelectionPolicy(cfg.SelectionPolicyFor(name))
	if err != nil {
		return listSettings{}, fmt.Errorf("%s: %w", name, err)
	}
	navigate, err := detail.ParseNavigatePolicy(cfg.Detail.NavigatePolicy)
	if err != nil {
		return listSettings{}, err
	}
	return listSettings{
		pageSize:    cfg.PageSize,
		concurrency: cfg.BulkConcurrency,
		policy:      policy,
		navigate:    navigate,
	}, nil
}

func newController[T any](deps Deps, s listSettings, name string, cfg listview.Config[T]) (*listview.Controller[T], error) {
	cfg.Name = name
	cfg.PageSize = s.pageSize
	cfg.SelectionPolicy = s.policy
	cfg.BulkConcurrency = s.concurrency
	cfg.Logger = deps.Logger
	if deps.Publisher != nil {
		cfg.Publisher = deps.Publisher
	}
	return listview.New(cfg)
}

var won = message.NewPrinter(language.Korean)

func formatWon(n int64) string {
	return won.Sprintf("%d원", n)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func yesNo(b bool) string {
	if b {
		return "예"
	}
	return "아니오"
}
