package entities

import (
	"context"
	"strconv"

	"backoffice/internal/domain"
	"backoffice/internal/listview"
)

func newMemberships(deps Deps) (List, error) {
	s, err := settingsFor(deps, "memberships")
	if err != nil {
		return nil, err
	}

	source := listview.RemoteSource[domain.Membership](func(ctx context.Context, q listview.ListQueryState) (listview.Page[domain.Membership], error) {
		grade := ""
		if q.ActiveFilter != listview.AllTab {
			grade = q.ActiveFilter
		}
		rows, total, err := deps.API.ListMemberships(ctx, q.Page, q.PageSize, grade, q.SearchTerm)
		if err != nil {
			return listview.Page[domain.Membership]{}, err
		}
		return listview.Page[domain.Membership]{Rows: rows, Total: total}, nil
	})

	tabs := []listview.Tab[domain.Membership]{{Label: listview.AllTab}}
	for _, g := range domain.MembershipGrades {
		tabs = append(tabs, listview.Tab[domain.Membership]{
			Label: g,
			Match: func(m domain.Membership) bool { return m.Grade == g },
		})
	}

	id := func(m domain.Membership) int64 { return m.No }
	ctrl, err := newController(deps, s, "memberships", listview.Config[domain.Membership]{
		Tabs: tabs,
		Fields: func(m domain.Membership) []string {
			return []string{strconv.FormatInt(m.No, 10), m.Email, m.Nickname}
		},
		ID:     id,
		Source: source,
	})
	if err != nil {
		return nil, err
	}

	return &binding[domain.Membership]{
		name:  "memberships",
		title: "멤버십 관리",
		ctrl:  ctrl,
		id:    id,
		columns: []Column{
			{Title: "번호", Width: 6},
			{Title: "이메일", Width: 24},
			{Title: "닉네임", Width: 14},
			{Title: "등급", Width: 9},
			{Title: "만료일", Width: 12},
		},
		cells: func(m domain.Membership) []string {
			return []string{strconv.FormatInt(m.No, 10), m.Email, m.Nickname, m.Grade, formatDate(m.ExpiresAt)}
		},
		bulk: []listview.BulkAction[domain.Membership]{{
			Name:          "grade",
			Label:         "등급 변경",
			RequiresParam: true,
			ParamName:     "grade",
			Choices:       domain.MembershipGrades,
			Do: func(ctx context.Context, m domain.Membership, grade string) error {
				return deps.API.ChangeGrade(ctx, m.No, grade)
			},
		}},
		activate: func(_ context.Context, m domain.Membership) (Activation, error) {
			return Activation{Info: &Info{
				Title: m.Nickname,
				Fields: []Field{
					{"번호", strconv.FormatInt(m.No, 10)},
					{"이메일", m.Email},
					{"등급", m.Grade},
					{"만료일", formatDate(m.ExpiresAt)},
				},
			}}, nil
		},
	}, nil
}
