package api

import (
	"context"
	"net/url"

	"backoffice/internal/domain"
)

// ListUsers returns one page of members
func (c *Client) ListUsers(ctx context.Context, page, limit int, search string) ([]domain.User, int, error) {
	resp := &usersResponse{limit: limit}
	if err := c.get(ctx, "/admin/user", pageQuery(limit, page, search), resp); err != nil {
		return nil, 0, err
	}

	users := make([]domain.User, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = u.toDomain()
	}
	return users, resp.Total, nil
}

// ListBlockedUsers returns one page of blocked members
func (c *Client) ListBlockedUsers(ctx context.Context, page, limit int, search string) ([]domain.User, int, error) {
	resp := &blockedUsersResponse{limit: limit}
	if err := c.get(ctx, "/admin/user/blocked", pageQuery(limit, page, search), resp); err != nil {
		return nil, 0, err
	}

	users := make([]domain.User, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = u.toDomain()
	}
	return users, resp.Total, nil
}

// GetUser returns the full record of one member
func (c *Client) GetUser(ctx context.Context, email string) (domain.UserDetail, error) {
	resp := &userDetailResponse{}
	if err := c.get(ctx, "/admin/user/"+url.PathEscape(email), nil, resp); err != nil {
		return domain.UserDetail{}, err
	}
	return resp.toDomain(), nil
}

// DeleteUser removes a member
func (c *Client) DeleteUser(ctx context.Context, email string) error {
	return c.delete(ctx, "/admin/user/"+url.PathEscape(email), &messageResponse{})
}
