package entities

import (
	"context"
	"strconv"

	"backoffice/internal/api"
	"backoffice/internal/detail"
	"backoffice/internal/domain"
	"backoffice/internal/listview"
)

var (
	noticeCategories = []string{"공지", "이벤트", "점검"}
	faqCategories    = []string{"회원", "결제", "배송", "기타"}
)

// postBackend sends detail form requests to the notice or FAQ endpoints
type postBackend struct {
	api  API
	kind api.PostKind
}

func (b postBackend) Create(ctx context.Context, e detail.Entity) (detail.Entity, error) {
	p, err := b.api.CreatePost(ctx, b.kind, entityToPost(e))
	if err != nil {
		return detail.Entity{}, err
	}
	return postToEntity(p), nil
}

func (b postBackend) Update(ctx context.Context, e detail.Entity) (detail.Entity, error) {
	p, err := b.api.UpdatePost(ctx, b.kind, entityToPost(e))
	if err != nil {
		return detail.Entity{}, err
	}
	return postToEntity(p), nil
}

func (b postBackend) Delete(ctx context.Context, no int64) error {
	return b.api.DeletePost(ctx, b.kind, no)
}

func postToEntity(p domain.Post) detail.Entity {
	return detail.Entity{No: p.No, Title: p.Title, Category: p.Category, Content: p.Content}
}

func entityToPost(e detail.Entity) domain.Post {
	return domain.Post{No: e.No, Title: e.Title, Category: e.Category, Content: e.Content}
}

func newNotices(deps Deps) (List, error) {
	return newPosts(deps, "notices", "공지사항", api.Notices, noticeCategories)
}

func newFAQs(deps Deps) (List, error) {
	return newPosts(deps, "faqs", "FAQ", api.FAQs, faqCategories)
}

func newPosts(deps Deps, name, kind string, postKind api.PostKind, categories []string) (List, error) {
	s, err := settingsFor(deps, name)
	if err != nil {
		return nil, err
	}

	id := func(p domain.Post) int64 { return p.No }
	ctrl, err := newController(deps, s, name, listview.Config[domain.Post]{
		Tabs: statusTabs(categories, func(p domain.Post) string { return p.Category }),
		Fields: func(p domain.Post) []string {
			return []string{strconv.FormatInt(p.No, 10), p.Title, p.Category}
		},
		ID: id,
		Source: listview.LocalSource[domain.Post](func(ctx context.Context) ([]domain.Post, error) {
			return deps.API.ListPosts(ctx, postKind)
		}),
	})
	if err != nil {
		return nil, err
	}

	formConfig := detail.Config{
		Entity:      name,
		Kind:        kind,
		Labels:      detail.DefaultLabels,
		Categories:  categories,
		AllowDelete: true,
		Backend:     postBackend{api: deps.API, kind: postKind},
		Policy:      s.navigate,
		Publisher:   deps.Publisher,
		Logger:      deps.Logger,
	}

	return &binding[domain.Post]{
		name:  name,
		title: kind + " 관리",
		ctrl:  ctrl,
		id:    id,
		columns: []Column{
			{Title: "번호", Width: 6},
			{Title: "제목", Width: 30},
			{Title: "분류", Width: 8},
			{Title: "작성일", Width: 12},
		},
		cells: func(p domain.Post) []string {
			return []string{strconv.FormatInt(p.No, 10), p.Title, p.Category, formatDate(p.CreatedAt)}
		},
		bulk: []listview.BulkAction[domain.Post]{{
			Name:  "delete",
			Label: kind + " 삭제",
			Do: func(ctx context.Context, p domain.Post, _ string) error {
				return deps.API.DeletePost(ctx, postKind, p.No)
			},
		}},
		activate: func(_ context.Context, p domain.Post) (Activation, error) {
			return Activation{Form: detail.NewForm(formConfig, postToEntity(p))}, nil
		},
		create: func() *detail.Form {
			return detail.NewForm(formConfig, detail.Entity{})
		},
	}, nil
}
