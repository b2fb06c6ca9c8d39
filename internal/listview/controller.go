package listview

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-logr/logr"

	"backoffice/internal/domain"
)

// Config describes one entity list
type Config[T any] struct {
	Name            string
	PageSize        int
	Tabs            []Tab[T]
	Fields          func(T) []string
	ID              func(T) int64
	Source          Source[T]
	Discipline      Discipline
	SelectionPolicy SelectionPolicy
	BulkConcurrency int
	Publisher       Publisher
	Logger          logr.Logger
}

// Controller owns the query and selection state of one list and derives the
// slice handed to the table renderer. It is safe for concurrent use: loads
// and bulk actions run off the UI goroutine.
type Controller[T any] struct {
	mu sync.Mutex

	name       string
	tabs       []Tab[T]
	fields     func(T) []string
	id         func(T) int64
	source     Source[T]
	discipline Discipline
	policy     SelectionPolicy
	limit      int
	publisher  Publisher
	log        logr.Logger

	state    ListQueryState
	draft    string
	selected selectionSet[T]

	// local sources keep every row, remote sources keep one page
	rows  []T
	total int

	generation uint64
	loading    bool
	stale      bool
	err        error
}

// New builds a controller in its mount state: empty search, AllTab, page 1,
// nothing selected and nothing loaded.
func New[T any](cfg Config[T]) (*Controller[T], error) {
	if cfg.Source == nil {
		return nil, errors.New("listview: source is required")
	}
	if cfg.ID == nil {
		return nil, errors.New("listview: id function is required")
	}

	discipline := cfg.Source.Discipline()
	if cfg.Discipline != DisciplineFromSource && cfg.Discipline != discipline {
		return nil, fmt.Errorf("listview %s: %s search does not fit a source with %s search",
			cfg.Name, cfg.Discipline, discipline)
	}

	pageSize := cfg.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	limit := cfg.BulkConcurrency
	if limit < 1 {
		limit = 1
	}

	tabs := cfg.Tabs
	if len(tabs) == 0 || tabs[0].Label != AllTab {
		tabs = append([]Tab[T]{{Label: AllTab}}, tabs...)
	}

	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	return &Controller[T]{
		name:       cfg.Name,
		tabs:       tabs,
		fields:     cfg.Fields,
		id:         cfg.ID,
		source:     cfg.Source,
		discipline: discipline,
		policy:     cfg.SelectionPolicy,
		limit:      limit,
		publisher:  cfg.Publisher,
		log:        log.WithName("listview").WithValues("entity", cfg.Name),
		state: ListQueryState{
			ActiveFilter: AllTab,
			Page:         1,
			PageSize:     pageSize,
		},
		selected: newSelectionSet[T](),
	}, nil
}

// Name returns the entity name of the list
func (c *Controller[T]) Name() string { return c.name }

// Discipline returns the effective search discipline
func (c *Controller[T]) Discipline() Discipline { return c.discipline }

// Remote reports whether tab, page and search changes need a reload
func (c *Controller[T]) Remote() bool { return c.discipline == SearchOnSubmit }

// State returns a copy of the query state
func (c *Controller[T]) State() ListQueryState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Draft returns the uncommitted search input
func (c *Controller[T]) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// TabLabels returns the declared tab labels, AllTab first
func (c *Controller[T]) TabLabels() []string {
	labels := make([]string, len(c.tabs))
	for i, t := range c.tabs {
		labels[i] = t.Label
	}
	return labels
}

// SetSearchTerm records search input. With live search the term applies at
// once; with submit search it waits for SubmitSearch. The result reports
// whether the list must be reloaded from its source.
func (c *Controller[T]) SetSearchTerm(term string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draft = term
	if c.discipline == SearchOnSubmit {
		return false
	}
	return c.commitSearchLocked(term)
}

// SubmitSearch commits the drafted term. It is a no-op for live search.
func (c *Controller[T]) SubmitSearch() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.discipline != SearchOnSubmit {
		return false
	}
	return c.commitSearchLocked(c.draft)
}

func (c *Controller[T]) commitSearchLocked(term string) bool {
	if term == c.state.SearchTerm {
		return false
	}
	c.state.SearchTerm = term
	c.state.Page = 1
	c.queryChangedLocked()
	return c.Remote()
}

// SetActiveFilter switches tab. An undeclared label falls back to AllTab.
func (c *Controller[T]) SetActiveFilter(label string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.findTab(label); !ok {
		c.log.V(1).Info("unknown tab, showing all", "tab", label)
		label = AllTab
	}

	if label == c.state.ActiveFilter && c.state.Page == 1 {
		return false
	}
	c.state.ActiveFilter = label
	c.state.Page = 1
	c.queryChangedLocked()
	return c.Remote()
}

// SetPage moves to page n, clamped to [1, TotalPages]
func (c *Controller[T]) SetPage(n int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n = clampPage(n, c.totalPagesLocked())
	if n == c.state.Page {
		return false
	}
	c.state.Page = n
	c.queryChangedLocked()
	return c.Remote()
}

func (c *Controller[T]) queryChangedLocked() {
	if c.policy == SelectionResetOnQueryChange {
		c.selected.clear()
	}
}

func (c *Controller[T]) findTab(label string) (Tab[T], bool) {
	for _, t := range c.tabs {
		if t.Label == label {
			return t, true
		}
	}
	return c.tabs[0], false
}

// filteredLocked returns the rows of the active tab matching the search.
// Remote pages are already filtered by the server.
func (c *Controller[T]) filteredLocked() []T {
	if c.Remote() {
		return c.rows
	}
	tab, _ := c.findTab(c.state.ActiveFilter)
	return filterRows(c.rows, tab, c.fields, c.state.SearchTerm)
}

func (c *Controller[T]) totalLocked() int {
	if c.Remote() {
		return c.total
	}
	return len(c.filteredLocked())
}

func (c *Controller[T]) totalPagesLocked() int {
	return totalPages(c.totalLocked(), c.state.PageSize)
}

func (c *Controller[T]) visibleLocked() []T {
	if c.Remote() {
		if len(c.rows) > c.state.PageSize {
			return c.rows[:c.state.PageSize]
		}
		return c.rows
	}
	return pageSlice(c.filteredLocked(), c.state.Page, c.state.PageSize)
}

// FilteredRows returns every row of the active tab matching the search
func (c *Controller[T]) FilteredRows() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.filteredLocked()...)
}

// Total returns the number of rows across all pages
func (c *Controller[T]) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalLocked()
}

// TotalPages returns max(1, ceil(total/pageSize))
func (c *Controller[T]) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPagesLocked()
}

// VisibleRows returns the rows of the current page, at most PageSize
func (c *Controller[T]) VisibleRows() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.visibleLocked()...)
}

// PaddedRows returns exactly PageSize rows: the visible ones then fillers
func (c *Controller[T]) PaddedRows() []Row[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return padRows(c.visibleLocked(), c.id, c.state.PageSize)
}

// ToggleRowSelection flips one visible row. Ids not on the current page are
// ignored. It reports whether the row is selected afterwards.
func (c *Controller[T]) ToggleRowSelection(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range c.visibleLocked() {
		if c.id(r) == id {
			return c.selected.toggle(id, r)
		}
	}
	return c.selected.has(id)
}

// ToggleSelectAllVisible removes every visible row when all are selected,
// otherwise adds them all
func (c *Controller[T]) ToggleSelectAllVisible() {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := c.visibleLocked()
	if c.allVisibleSelectedLocked(visible) {
		for _, r := range visible {
			c.selected.remove(c.id(r))
		}
		return
	}
	for _, r := range visible {
		c.selected.add(c.id(r), r)
	}
}

// AllVisibleSelected is the select-all checkbox state
func (c *Controller[T]) AllVisibleSelected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.allVisibleSelectedLocked(c.visibleLocked())
}

func (c *Controller[T]) allVisibleSelectedLocked(visible []T) bool {
	if len(visible) == 0 {
		return false
	}
	for _, r := range visible {
		if !c.selected.has(c.id(r)) {
			return false
		}
	}
	return true
}

// SelectedIDs returns the selection in ascending id order
func (c *Controller[T]) SelectedIDs() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected.ids()
}

// SelectedRows returns the selected rows in ascending id order
func (c *Controller[T]) SelectedRows() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected.rows()
}

// ClearSelection empties the selection
func (c *Controller[T]) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected.clear()
}

// Begin starts a load and supersedes any load still in flight
func (c *Controller[T]) Begin() Request {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.loading = true
	c.stale = false
	return Request{Generation: c.generation, Query: c.state}
}

// Load fetches the rows for req from the source. It holds no lock.
func (c *Controller[T]) Load(ctx context.Context, req Request) (Page[T], error) {
	return c.source.Fetch(ctx, req.Query)
}

// Apply stores the result of req. Results of superseded requests are dropped
// and Apply returns false.
func (c *Controller[T]) Apply(req Request, page Page[T], err error) bool {
	c.mu.Lock()

	if req.Generation != c.generation {
		c.mu.Unlock()
		c.log.V(1).Info("discarding stale result", "generation", req.Generation, "current", c.generation)
		return false
	}

	c.loading = false
	if err != nil {
		c.err = err
		c.mu.Unlock()
		c.log.Error(err, "load failed", "page", req.Query.Page, "tab", req.Query.ActiveFilter)
		return true
	}

	c.err = nil
	c.rows = page.Rows
	c.total = page.Total
	if c.total < len(c.rows) {
		c.total = len(c.rows)
	}

	if pages := c.totalPagesLocked(); c.state.Page > pages {
		c.state.Page = pages
		// the remote page we hold belongs to a page that no longer exists
		c.stale = c.Remote()
	}

	event := domain.ListLoadedEvent{
		Entity:     c.name,
		Tab:        c.state.ActiveFilter,
		Page:       c.state.Page,
		Total:      c.totalLocked(),
		Generation: req.Generation,
	}
	c.mu.Unlock()

	c.log.V(1).Info("list loaded", "page", event.Page, "total", event.Total)
	if c.publisher != nil {
		c.publisher.Publish(event)
	}
	return true
}

// Refresh reloads the current query from the source
func (c *Controller[T]) Refresh(ctx context.Context) error {
	for attempt := 0; attempt < 2; attempt++ {
		req := c.Begin()
		page, err := c.Load(ctx, req)
		if !c.Apply(req, page, err) {
			return nil
		}
		if err != nil {
			return err
		}
		if !c.Stale() {
			return nil
		}
	}
	return nil
}

// Stale reports whether the held rows no longer match the query state
func (c *Controller[T]) Stale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stale
}

// Loading reports whether a load is in flight
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the error of the last load, if it failed
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Snapshot is everything a renderer needs, taken under one lock
type Snapshot[T any] struct {
	State       ListQueryState
	Draft       string
	Tabs        []string
	Rows        []Row[T]
	Selected    map[int64]bool
	AllSelected bool
	Total       int
	TotalPages  int
	Loading     bool
	Err         error
}

// Snapshot captures the current state of the list
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := c.visibleLocked()
	selected := make(map[int64]bool, c.selected.len())
	for _, id := range c.selected.ids() {
		selected[id] = true
	}

	return Snapshot[T]{
		State:       c.state,
		Draft:       c.draft,
		Tabs:        c.TabLabels(),
		Rows:        padRows(visible, c.id, c.state.PageSize),
		Selected:    selected,
		AllSelected: c.allVisibleSelectedLocked(visible),
		Total:       c.totalLocked(),
		TotalPages:  c.totalPagesLocked(),
		Loading:     c.loading,
		Err:         c.err,
	}
}
