package api

import (
	"context"

	"backoffice/internal/domain"
)

// Document kinds
const (
	Terms   = "terms"
	Privacy = "privacy"
)

// GetDocument returns the terms or privacy document
func (c *Client) GetDocument(ctx context.Context, kind string) (domain.Document, error) {
	resp := &documentResponse{}
	if err := c.get(ctx, "/admin/"+kind, nil, resp); err != nil {
		return domain.Document{}, err
	}
	return resp.toDomain(kind), nil
}

// UpdateDocument replaces the title and content of a document
func (c *Client) UpdateDocument(ctx context.Context, kind, title, content string) (domain.Document, error) {
	resp := &documentResponse{}
	if err := c.put(ctx, "/admin/"+kind, documentRequest{Title: title, Content: content}, resp); err != nil {
		return domain.Document{}, err
	}
	return resp.toDomain(kind), nil
}
