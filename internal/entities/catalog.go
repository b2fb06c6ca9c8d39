package entities

import (
	"context"
	"strconv"

	"backoffice/internal/domain"
	"backoffice/internal/listview"
)

var (
	orderStatuses   = []string{"결제완료", "배송중", "배송완료", "취소"}
	productStatuses = []string{"판매중", "품절", "숨김"}
)

func statusTabs[T any](labels []string, status func(T) string) []listview.Tab[T] {
	tabs := []listview.Tab[T]{{Label: listview.AllTab}}
	for _, l := range labels {
		tabs = append(tabs, listview.Tab[T]{
			Label: l,
			Match: func(row T) bool { return status(row) == l },
		})
	}
	return tabs
}

func newOrders(deps Deps) (List, error) {
	s, err := settingsFor(deps, "orders")
	if err != nil {
		return nil, err
	}

	id := func(o domain.Order) int64 { return o.No }
	ctrl, err := newController(deps, s, "orders", listview.Config[domain.Order]{
		Tabs: statusTabs(orderStatuses, func(o domain.Order) string { return o.Status }),
		Fields: func(o domain.Order) []string {
			return []string{strconv.FormatInt(o.No, 10), o.OrderNumber, o.Buyer, o.Product, o.Status}
		},
		ID:     id,
		Source: listview.LocalSource[domain.Order](deps.API.ListOrders),
	})
	if err != nil {
		return nil, err
	}

	return &binding[domain.Order]{
		name:  "orders",
		title: "주문 관리",
		ctrl:  ctrl,
		id:    id,
		columns: []Column{
			{Title: "번호", Width: 6},
			{Title: "주문번호", Width: 14},
			{Title: "구매자", Width: 12},
			{Title: "상품", Width: 12},
			{Title: "금액", Width: 12},
			{Title: "상태", Width: 8},
			{Title: "주문일시", Width: 16},
		},
		cells: func(o domain.Order) []string {
			return []string{
				strconv.FormatInt(o.No, 10), o.OrderNumber, o.Buyer, o.Product,
				formatWon(o.Amount), o.Status, formatDateTime(o.OrderedAt),
			}
		},
		activate: func(_ context.Context, o domain.Order) (Activation, error) {
			return Activation{Info: &Info{
				Title: o.OrderNumber,
				Fields: []Field{
					{"구매자", o.Buyer},
					{"상품", o.Product},
					{"금액", formatWon(o.Amount)},
					{"상태", o.Status},
					{"주문일시", formatDateTime(o.OrderedAt)},
				},
			}}, nil
		},
	}, nil
}

func newProducts(deps Deps) (List, error) {
	s, err := settingsFor(deps, "products")
	if err != nil {
		return nil, err
	}

	id := func(p domain.Product) int64 { return p.No }
	ctrl, err := newController(deps, s, "products", listview.Config[domain.Product]{
		Tabs: statusTabs(productStatuses, func(p domain.Product) string { return p.Status }),
		Fields: func(p domain.Product) []string {
			return []string{strconv.FormatInt(p.No, 10), p.Name, p.Category, strconv.FormatInt(p.Price, 10)}
		},
		ID:     id,
		Source: listview.LocalSource[domain.Product](deps.API.ListProducts),
	})
	if err != nil {
		return nil, err
	}

	return &binding[domain.Product]{
		name:  "products",
		title: "상품 관리",
		ctrl:  ctrl,
		id:    id,
		columns: []Column{
			{Title: "번호", Width: 6},
			{Title: "상품명", Width: 16},
			{Title: "분류", Width: 8},
			{Title: "가격", Width: 12},
			{Title: "재고", Width: 6},
			{Title: "상태", Width: 8},
		},
		cells: func(p domain.Product) []string {
			return []string{
				strconv.FormatInt(p.No, 10), p.Name, p.Category,
				formatWon(p.Price), strconv.Itoa(p.Stock), p.Status,
			}
		},
		activate: func(_ context.Context, p domain.Product) (Activation, error) {
			return Activation{Info: &Info{
				Title: p.Name,
				Fields: []Field{
					{"분류", p.Category},
					{"가격", formatWon(p.Price)},
					{"재고", strconv.Itoa(p.Stock)},
					{"상태", p.Status},
				},
			}}, nil
		},
	}, nil
}
