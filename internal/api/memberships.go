package api

import (
	"context"
	"fmt"

	"backoffice/internal/domain"
)

// ListMemberships returns one page of memberships. An empty grade lists all.
func (c *Client) ListMemberships(ctx context.Context, page, limit int, grade, search string) ([]domain.Membership, int, error) {
	q := pageQuery(limit, page, search)
	if grade != "" {
		q.Set("grade", grade)
	}

	resp := &membershipsResponse{limit: limit}
	if err := c.get(ctx, "/admin/membership", q, resp); err != nil {
		return nil, 0, err
	}

	rows := make([]domain.Membership, len(resp.Memberships))
	for i, m := range resp.Memberships {
		rows[i] = m.toDomain()
	}
	return rows, resp.Total, nil
}

// ChangeGrade sets the membership grade of one user
func (c *Client) ChangeGrade(ctx context.Context, no int64, grade string) error {
	return c.patch(ctx, fmt.Sprintf("/admin/membership/%d", no), gradeRequest{Grade: grade}, &messageResponse{})
}
