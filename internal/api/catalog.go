package api

import (
	"context"

	"backoffice/internal/domain"
)

// ListOrders returns every order; filtering happens client side
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	resp := &ordersResponse{}
	if err := c.get(ctx, "/admin/order", nil, resp); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, len(resp.Orders))
	for i, o := range resp.Orders {
		orders[i] = o.toDomain()
	}
	return orders, nil
}

// ListProducts returns every product
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	resp := &productsResponse{}
	if err := c.get(ctx, "/admin/product", nil, resp); err != nil {
		return nil, err
	}

	products := make([]domain.Product, len(resp.Products))
	for i, p := range resp.Products {
		products[i] = p.toDomain()
	}
	return products, nil
}
