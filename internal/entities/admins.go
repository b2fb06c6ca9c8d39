package entities

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"backoffice/internal/detail"
	"backoffice/internal/domain"
	"backoffice/internal/listview"
)

// MinPasswordLength is the shortest admin password accepted
const MinPasswordLength = 8

var adminLabels = detail.Labels{Title: "이메일", Category: "이름", Content: "비밀번호"}

// adminBackend maps the three form fields to email, name and password.
// Admin accounts can only be created.
type adminBackend struct {
	api API
	pub Publisher
}

var errAdminReadOnly = errors.New("admin accounts cannot be changed here")

func (b adminBackend) Create(ctx context.Context, e detail.Entity) (detail.Entity, error) {
	a, err := b.api.CreateAdmin(ctx, domain.NewAdmin{Email: e.Title, Name: e.Category, Password: e.Content})
	if err != nil {
		return detail.Entity{}, err
	}
	if b.pub != nil {
		b.pub.Publish(domain.AdminCreatedEvent{Email: a.Email})
	}
	return detail.Entity{No: a.No, Title: a.Email, Category: a.Name}, nil
}

func (b adminBackend) Update(context.Context, detail.Entity) (detail.Entity, error) {
	return detail.Entity{}, errAdminReadOnly
}

func (b adminBackend) Delete(context.Context, int64) error {
	return errAdminReadOnly
}

func validateAdmin(e detail.Entity) error {
	if addr, err := mail.ParseAddress(e.Title); err != nil || addr.Address != e.Title {
		return &domain.ValidationError{Field: adminLabels.Title, Message: "올바른 이메일 주소가 아닙니다"}
	}
	if strings.TrimSpace(e.Category) == "" {
		return &domain.ValidationError{Field: adminLabels.Category, Message: "필수 입력 항목입니다"}
	}
	if utf8.RuneCountInString(e.Content) < MinPasswordLength {
		return &domain.ValidationError{Field: adminLabels.Content, Message: "8자 이상 입력해 주세요"}
	}
	return nil
}

func newAdmins(deps Deps) (List, error) {
	s, err := settingsFor(deps, "admins")
	if err != nil {
		return nil, err
	}

	id := func(a domain.Admin) int64 { return a.No }
	ctrl, err := newController(deps, s, "admins", listview.Config[domain.Admin]{
		Fields: func(a domain.Admin) []string {
			return []string{strconv.FormatInt(a.No, 10), a.Email, a.Name}
		},
		ID:     id,
		Source: listview.LocalSource[domain.Admin](deps.API.ListAdmins),
	})
	if err != nil {
		return nil, err
	}

	formConfig := detail.Config{
		Entity:        "admins",
		Kind:          "관리자",
		Labels:        adminLabels,
		SecretContent: true,
		Validate:      validateAdmin,
		Backend:       adminBackend{api: deps.API, pub: deps.Publisher},
		Policy:        s.navigate,
		Publisher:     deps.Publisher,
		Logger:        deps.Logger,
	}

	return &binding[domain.Admin]{
		name:  "admins",
		title: "관리자 관리",
		ctrl:  ctrl,
		id:    id,
		columns: []Column{
			{Title: "번호", Width: 6},
			{Title: "이메일", Width: 24},
			{Title: "이름", Width: 14},
			{Title: "등록일", Width: 12},
		},
		cells: func(a domain.Admin) []string {
			return []string{strconv.FormatInt(a.No, 10), a.Email, a.Name, formatDate(a.CreatedAt)}
		},
		activate: func(_ context.Context, a domain.Admin) (Activation, error) {
			return Activation{Info: &Info{
				Title: a.Name,
				Fields: []Field{
					{"이메일", a.Email},
					{"등록일", formatDate(a.CreatedAt)},
				},
			}}, nil
		},
		create: func() *detail.Form {
			return detail.NewForm(formConfig, detail.Entity{})
		},
	}, nil
}
