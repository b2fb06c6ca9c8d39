package entities

import (
	"context"
	"strconv"

	"backoffice/internal/domain"
	"backoffice/internal/listview"
)

// BlockedTab switches the user list to the blocked-users endpoint
const BlockedTab = "블럭회원"

func newUsers(deps Deps) (List, error) {
	s, err := settingsFor(deps, "users")
	if err != nil {
		return nil, err
	}

	source := listview.RemoteSource[domain.User](func(ctx context.Context, q listview.ListQueryState) (listview.Page[domain.User], error) {
		fetch := deps.API.ListUsers
		if q.ActiveFilter == BlockedTab {
			fetch = deps.API.ListBlockedUsers
		}
		rows, total, err := fetch(ctx, q.Page, q.PageSize, q.SearchTerm)
		if err != nil {
			return listview.Page[domain.User]{}, err
		}
		return listview.Page[domain.User]{Rows: rows, Total: total}, nil
	})

	id := func(u domain.User) int64 { return u.No }
	ctrl, err := newController(deps, s, "users", listview.Config[domain.User]{
		Tabs: []listview.Tab[domain.User]{
			{Label: listview.AllTab},
			{Label: BlockedTab, Match: func(u domain.User) bool { return u.Blocked }},
		},
		Fields: func(u domain.User) []string {
			return []string{strconv.FormatInt(u.No, 10), u.Email, u.Nickname, u.Phone}
		},
		ID:     id,
		Source: source,
	})
	if err != nil {
		return nil, err
	}

	return &binding[domain.User]{
		name:  "users",
		title: "회원 관리",
		ctrl:  ctrl,
		id:    id,
		columns: []Column{
			{Title: "번호", Width: 6},
			{Title: "이메일", Width: 24},
			{Title: "닉네임", Width: 14},
			{Title: "연락처", Width: 15},
			{Title: "가입일", Width: 12},
			{Title: "상태", Width: 16},
		},
		cells: func(u domain.User) []string {
			status := "정상"
			if u.Blocked {
				status = "차단 (" + u.BlockReason + ")"
			}
			return []string{strconv.FormatInt(u.No, 10), u.Email, u.Nickname, u.Phone, formatDate(u.JoinedAt), status}
		},
		bulk: []listview.BulkAction[domain.User]{{
			Name:  "delete",
			Label: "회원 삭제",
			Do: func(ctx context.Context, u domain.User, _ string) error {
				return deps.API.DeleteUser(ctx, u.Email)
			},
		}},
		activate: func(ctx context.Context, u domain.User) (Activation, error) {
			d, err := deps.API.GetUser(ctx, u.Email)
			if err != nil {
				return Activation{}, err
			}
			return Activation{Info: userInfo(d)}, nil
		},
	}, nil
}

func userInfo(d domain.UserDetail) *Info {
	fields := []Field{
		{"번호", strconv.FormatInt(d.No, 10)},
		{"이메일", d.Email},
		{"닉네임", d.Nickname},
		{"연락처", d.Phone},
		{"가입일", formatDate(d.JoinedAt)},
		{"멤버십", d.Membership},
		{"주문 수", strconv.Itoa(d.OrderCount)},
		{"총 결제금액", formatWon(d.TotalSpent)},
		{"최근 로그인", formatDateTime(d.LastLoginAt)},
		{"마케팅 수신", yesNo(d.MarketingOK)},
	}
	if d.Blocked {
		fields = append(fields,
			Field{"차단 사유", d.BlockReason},
			Field{"차단일", formatDate(d.BlockedAt)},
		)
	}
	if d.AdminMemo != "" {
		fields = append(fields, Field{"메모", d.AdminMemo})
	}
	return &Info{Title: d.Nickname, Fields: fields}
}
