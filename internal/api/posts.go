package api

import (
	"context"
	"fmt"

	"backoffice/internal/domain"
)

// PostKind selects the notice or FAQ endpoints
type PostKind string

const (
	Notices PostKind = "notice"
	FAQs    PostKind = "faq"
)

func (k PostKind) path() string {
	return "/admin/" + string(k)
}

// ListPosts returns every post of a kind
func (c *Client) ListPosts(ctx context.Context, kind PostKind) ([]domain.Post, error) {
	resp := &postsResponse{}
	if err := c.get(ctx, kind.path(), nil, resp); err != nil {
		return nil, err
	}

	items := resp.items()
	posts := make([]domain.Post, len(items))
	for i, p := range items {
		posts[i] = p.toDomain()
	}
	return posts, nil
}

// GetPost returns one post
func (c *Client) GetPost(ctx context.Context, kind PostKind, no int64) (domain.Post, error) {
	resp := &postItem{}
	if err := c.get(ctx, fmt.Sprintf("%s/%d", kind.path(), no), nil, resp); err != nil {
		return domain.Post{}, err
	}
	return resp.toDomain(), nil
}

// CreatePost stores a new post and returns it with its number
func (c *Client) CreatePost(ctx context.Context, kind PostKind, p domain.Post) (domain.Post, error) {
	resp := &postItem{}
	body := postRequest{Title: p.Title, Category: p.Category, Content: p.Content}
	if err := c.post(ctx, kind.path(), body, resp); err != nil {
		return domain.Post{}, err
	}
	return resp.toDomain(), nil
}

// UpdatePost replaces title, category and content of a post
func (c *Client) UpdatePost(ctx context.Context, kind PostKind, p domain.Post) (domain.Post, error) {
	resp := &postItem{}
	body := postRequest{Title: p.Title, Category: p.Category, Content: p.Content}
	if err := c.put(ctx, fmt.Sprintf("%s/%d", kind.path(), p.No), body, resp); err != nil {
		return domain.Post{}, err
	}
	return resp.toDomain(), nil
}

// DeletePost removes a post
func (c *Client) DeletePost(ctx context.Context, kind PostKind, no int64) error {
	return c.delete(ctx, fmt.Sprintf("%s/%d", kind.path(), no), &messageResponse{})
}
