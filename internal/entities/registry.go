package entities

import (
	"context"
	"fmt"

	"backoffice/internal/detail"
)

// Names lists the entity lists in menu order
var Names = []string{"users", "memberships", "orders", "products", "notices", "faqs", "admins"}

var constructors = map[string]func(Deps) (List, error){
	"users":       newUsers,
	"memberships": newMemberships,
	"orders":      newOrders,
	"products":    newProducts,
	"notices":     newNotices,
	"faqs":        newFAQs,
	"admins":      newAdmins,
}

// Registry owns one list binding per entity
type Registry struct {
	deps  Deps
	lists []List
	index map[string]List
}

// NewRegistry builds every entity list from deps
func NewRegistry(deps Deps) (*Registry, error) {
	if deps.API == nil {
		return nil, fmt.Errorf("entities: api client is required")
	}
	r := &Registry{deps: deps, index: make(map[string]List, len(Names))}
	for _, name := range Names {
		l, err := constructors[name](deps)
		if err != nil {
			return nil, fmt.Errorf("entities: %s: %w", name, err)
		}
		r.lists = append(r.lists, l)
		r.index[name] = l
	}
	return r, nil
}

// Lists returns the lists in menu order
func (r *Registry) Lists() []List { return r.lists }

// Get looks a list up by entity name
func (r *Registry) Get(name string) (List, bool) {
	l, ok := r.index[name]
	return l, ok
}

// OpenDocument opens the named document for editing
func (r *Registry) OpenDocument(ctx context.Context, name string) (*detail.Form, error) {
	return OpenDocument(ctx, r.deps, name)
}
