package entities

import (
	"context"
	"errors"
	"fmt"

	"backoffice/internal/api"
	"backoffice/internal/detail"
)

// DocumentKind is an editable legal document
type DocumentKind struct {
	Name  string // api kind, e.g. "terms"
	Title string
}

// Documents lists the editable documents in menu order
var Documents = []DocumentKind{
	{Name: api.Terms, Title: "이용약관"},
	{Name: api.Privacy, Title: "개인정보처리방침"},
}

var errDocumentFixed = errors.New("documents can only be updated")

// documents have no category field
var documentLabels = detail.Labels{Title: "제목", Content: "내용"}

// documentNo gives documents a non-zero number so their forms open in update mode
const documentNo = 1

type documentBackend struct {
	api  API
	kind string
}

func (b documentBackend) Create(context.Context, detail.Entity) (detail.Entity, error) {
	return detail.Entity{}, errDocumentFixed
}

func (b documentBackend) Update(ctx context.Context, e detail.Entity) (detail.Entity, error) {
	d, err := b.api.UpdateDocument(ctx, b.kind, e.Title, e.Content)
	if err != nil {
		return detail.Entity{}, err
	}
	return detail.Entity{No: documentNo, Title: d.Title, Content: d.Content}, nil
}

func (b documentBackend) Delete(context.Context, int64) error {
	return errDocumentFixed
}

func findDocument(name string) (DocumentKind, bool) {
	for _, d := range Documents {
		if d.Name == name {
			return d, true
		}
	}
	return DocumentKind{}, false
}

// OpenDocument fetches a document and opens it in an update-only form
func OpenDocument(ctx context.Context, deps Deps, name string) (*detail.Form, error) {
	kind, ok := findDocument(name)
	if !ok {
		return nil, fmt.Errorf("unknown document %q", name)
	}
	s, err := settingsFor(deps, name)
	if err != nil {
		return nil, err
	}

	d, err := deps.API.GetDocument(ctx, kind.Name)
	if err != nil {
		return nil, err
	}

	return detail.NewForm(detail.Config{
		Entity:    kind.Name,
		Kind:      kind.Title,
		Labels:    documentLabels,
		Backend:   documentBackend{api: deps.API, kind: kind.Name},
		Policy:    s.navigate,
		Publisher: deps.Publisher,
		Logger:    deps.Logger,
	}, detail.Entity{No: documentNo, Title: d.Title, Content: d.Content}), nil
}
