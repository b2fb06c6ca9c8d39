package listview

import (
	"context"
	"fmt"

	"backoffice/internal/domain"
)

// AllTab is the "show all" tab every list carries
const AllTab = "전체"

// DefaultPageSize is used when Config.PageSize is unset
const DefaultPageSize = 10

// Discipline decides when a search term takes effect
type Discipline int

const (
	// DisciplineFromSource takes the discipline of the configured Source
	DisciplineFromSource Discipline = iota
	// SearchLive filters an in-memory array on every keystroke
	SearchLive
	// SearchOnSubmit commits the term on Enter and sends it to the server
	SearchOnSubmit
)

func (d Discipline) String() string {
	switch d {
	case SearchLive:
		return "live"
	case SearchOnSubmit:
		return "submit"
	default:
		return "source"
	}
}

// SelectionPolicy decides what happens to the selection when the query changes
type SelectionPolicy int

const (
	// SelectionPersist keeps selected rows across tab, page and search changes
	SelectionPersist SelectionPolicy = iota
	// SelectionResetOnQueryChange clears the selection on any tab, page or search change
	SelectionResetOnQueryChange
)

func (p SelectionPolicy) String() string {
	if p == SelectionResetOnQueryChange {
		return "reset"
	}
	return "persist"
}

// ParseSelectionPolicy maps a config value to a SelectionPolicy
func ParseSelectionPolicy(s string) (SelectionPolicy, error) {
	switch s {
	case "", "persist":
		return SelectionPersist, nil
	case "reset":
		return SelectionResetOnQueryChange, nil
	}
	return SelectionPersist, fmt.Errorf("unknown selection policy %q", s)
}

// ListQueryState is the user-controlled part of a list
type ListQueryState struct {
	SearchTerm   string
	ActiveFilter string
	Page         int
	PageSize     int
}

// Request identifies one load. Results of a request whose Generation is no
// longer current are discarded.
type Request struct {
	Generation uint64
	Query      ListQueryState
}

// Tab is a named partition of the rows. A nil Match accepts every row.
type Tab[T any] struct {
	Label string
	Match func(T) bool
}

// Page is what a Source returns
type Page[T any] struct {
	Rows  []T
	Total int
}

// Row is one rendered table line. Filler rows pad the table to the page size
// and carry no item or id.
type Row[T any] struct {
	Item   T
	ID     int64
	Filler bool
}

// Source loads rows for a list
type Source[T any] interface {
	Discipline() Discipline
	Fetch(ctx context.Context, q ListQueryState) (Page[T], error)
}

// LocalSource loads the whole dataset once; filtering and paging happen in memory
type LocalSource[T any] func(ctx context.Context) ([]T, error)

func (s LocalSource[T]) Discipline() Discipline { return SearchLive }

func (s LocalSource[T]) Fetch(ctx context.Context, _ ListQueryState) (Page[T], error) {
	rows, err := s(ctx)
	if err != nil {
		return Page[T]{}, err
	}
	return Page[T]{Rows: rows, Total: len(rows)}, nil
}

// RemoteSource asks the server for one filtered page
type RemoteSource[T any] func(ctx context.Context, q ListQueryState) (Page[T], error)

func (s RemoteSource[T]) Discipline() Discipline { return SearchOnSubmit }

func (s RemoteSource[T]) Fetch(ctx context.Context, q ListQueryState) (Page[T], error) {
	return s(ctx, q)
}

// Publisher receives list events
type Publisher interface {
	Publish(event domain.DomainEvent)
}
