package api

import (
	"context"

	"backoffice/internal/domain"
)

// ListAdmins returns every operator account
func (c *Client) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	resp := &adminsResponse{}
	if err := c.get(ctx, "/admin", nil, resp); err != nil {
		return nil, err
	}

	admins := make([]domain.Admin, len(resp.Admins))
	for i, a := range resp.Admins {
		admins[i] = a.toDomain()
	}
	return admins, nil
}

// CreateAdmin registers a new operator account
func (c *Client) CreateAdmin(ctx context.Context, a domain.NewAdmin) (domain.Admin, error) {
	resp := &adminItem{}
	body := adminRequest{Email: a.Email, Name: a.Name, Password: a.Password}
	if err := c.post(ctx, "/admin", body, resp); err != nil {
		return domain.Admin{}, err
	}
	return resp.toDomain(), nil
}
