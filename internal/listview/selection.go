package listview

import "slices"

// selectionSet holds the selected rows keyed by id. Rows are kept so a bulk
// action can still reach them after the page they were selected on is gone.
type selectionSet[T any] struct {
	items map[int64]T
}

func newSelectionSet[T any]() selectionSet[T] {
	return selectionSet[T]{items: make(map[int64]T)}
}

// toggle adds or removes a row and reports whether it is now selected
func (s *selectionSet[T]) toggle(id int64, item T) bool {
	if _, ok := s.items[id]; ok {
		delete(s.items, id)
		return false
	}
	s.items[id] = item
	return true
}

func (s *selectionSet[T]) add(id int64, item T) {
	s.items[id] = item
}

func (s *selectionSet[T]) remove(id int64) {
	delete(s.items, id)
}

func (s *selectionSet[T]) has(id int64) bool {
	_, ok := s.items[id]
	return ok
}

func (s *selectionSet[T]) clear() {
	s.items = make(map[int64]T)
}

func (s *selectionSet[T]) len() int {
	return len(s.items)
}

// ids returns the selected ids in ascending order
func (s *selectionSet[T]) ids() []int64 {
	ids := make([]int64, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// rows returns the selected rows ordered by id
func (s *selectionSet[T]) rows() []T {
	ids := s.ids()
	rows := make([]T, len(ids))
	for i, id := range ids {
		rows[i] = s.items[id]
	}
	return rows
}
