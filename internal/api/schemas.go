package api

import (
	"errors"
	"fmt"
	"time"

	"backoffice/internal/domain"
)

// validator is implemented by every response schema; sendRequest calls it
// after decoding so malformed payloads never reach the UI
type validator interface {
	validate() error
}

func checkPage(total, items, limit int) error {
	if total < 0 {
		return fmt.Errorf("negative total %d", total)
	}
	if limit > 0 && items > limit {
		return fmt.Errorf("%d items exceed limit %d", items, limit)
	}
	if items > total {
		return fmt.Errorf("%d items exceed total %d", items, total)
	}
	return nil
}

func checkNo(kind string, i int, no int64) error {
	if no <= 0 {
		return fmt.Errorf("%s[%d]: missing no", kind, i)
	}
	return nil
}

type userSummary struct {
	No        int64     `json:"no"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

type blockedUser struct {
	userSummary
	Reason    string    `json:"reason"`
	BlockedAt time.Time `json:"blockedAt"`
}

type usersResponse struct {
	Users []userSummary `json:"users"`
	Total int           `json:"total"`
	limit int
}

func (r *usersResponse) validate() error {
	if err := checkPage(r.Total, len(r.Users), r.limit); err != nil {
		return err
	}
	for i, u := range r.Users {
		if err := checkNo("users", i, u.No); err != nil {
			return err
		}
		if u.Email == "" {
			return fmt.Errorf("users[%d]: missing email", i)
		}
	}
	return nil
}

func (u userSummary) toDomain() domain.User {
	return domain.User{
		No:       u.No,
		Email:    u.Email,
		Nickname: u.Nickname,
		Phone:    u.Phone,
		JoinedAt: u.CreatedAt,
	}
}

type blockedUsersResponse struct {
	Users []blockedUser `json:"users"`
	Total int           `json:"total"`
	limit int
}

func (r *blockedUsersResponse) validate() error {
	if err := checkPage(r.Total, len(r.Users), r.limit); err != nil {
		return err
	}
	for i, u := range r.Users {
		if err := checkNo("users", i, u.No); err != nil {
			return err
		}
		if u.Email == "" {
			return fmt.Errorf("users[%d]: missing email", i)
		}
	}
	return nil
}

func (u blockedUser) toDomain() domain.User {
	d := u.userSummary.toDomain()
	d.Blocked = true
	d.BlockReason = u.Reason
	d.BlockedAt = u.BlockedAt
	return d
}

type userDetailResponse struct {
	userSummary
	Membership      string    `json:"membership"`
	OrderCount      int       `json:"orderCount"`
	TotalSpent      int64     `json:"totalSpent"`
	LastLoginAt     time.Time `json:"lastLoginAt"`
	MarketingAgreed bool      `json:"marketingAgreed"`
	Memo            string    `json:"memo"`
	Blocked         bool      `json:"blocked"`
}

func (r *userDetailResponse) validate() error {
	if r.No <= 0 || r.Email == "" {
		return errors.New("user detail: missing no or email")
	}
	if r.OrderCount < 0 || r.TotalSpent < 0 {
		return errors.New("user detail: negative totals")
	}
	return nil
}

func (r *userDetailResponse) toDomain() domain.UserDetail {
	u := r.userSummary.toDomain()
	u.Blocked = r.Blocked
	return domain.UserDetail{
		User:        u,
		Membership:  r.Membership,
		OrderCount:  r.OrderCount,
		TotalSpent:  r.TotalSpent,
		LastLoginAt: r.LastLoginAt,
		MarketingOK: r.MarketingAgreed,
		AdminMemo:   r.Memo,
	}
}

type membershipItem struct {
	No        int64     `json:"no"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	Grade     string    `json:"grade"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type membershipsResponse struct {
	Memberships []membershipItem `json:"memberships"`
	Total       int              `json:"total"`
	limit       int
}

func (r *membershipsResponse) validate() error {
	if err := checkPage(r.Total, len(r.Memberships), r.limit); err != nil {
		return err
	}
	for i, m := range r.Memberships {
		if err := checkNo("memberships", i, m.No); err != nil {
			return err
		}
		if m.Grade == "" {
			return fmt.Errorf("memberships[%d]: missing grade", i)
		}
	}
	return nil
}

func (m membershipItem) toDomain() domain.Membership {
	return domain.Membership{
		No:        m.No,
		Email:     m.Email,
		Nickname:  m.Nickname,
		Grade:     m.Grade,
		ExpiresAt: m.ExpiresAt,
	}
}

type gradeRequest struct {
	Grade string `json:"grade"`
}

type orderItem struct {
	No          int64     `json:"no"`
	OrderNumber string    `json:"orderNumber"`
	Buyer       string    `json:"buyer"`
	Product     string    `json:"product"`
	Amount      int64     `json:"amount"`
	Status      string    `json:"status"`
	OrderedAt   time.Time `json:"orderedAt"`
}

type ordersResponse struct {
	Orders []orderItem `json:"orders"`
	Total  int         `json:"total"`
}

func (r *ordersResponse) validate() error {
	if err := checkPage(r.Total, len(r.Orders), 0); err != nil {
		return err
	}
	for i, o := range r.Orders {
		if err := checkNo("orders", i, o.No); err != nil {
			return err
		}
	}
	return nil
}

func (o orderItem) toDomain() domain.Order {
	return domain.Order{
		No:          o.No,
		OrderNumber: o.OrderNumber,
		Buyer:       o.Buyer,
		Product:     o.Product,
		Amount:      o.Amount,
		Status:      o.Status,
		OrderedAt:   o.OrderedAt,
	}
}

type productItem struct {
	No       int64  `json:"no"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
	Stock    int    `json:"stock"`
	Status   string `json:"status"`
}

type productsResponse struct {
	Products []productItem `json:"products"`
	Total    int           `json:"total"`
}

func (r *productsResponse) validate() error {
	if err := checkPage(r.Total, len(r.Products), 0); err != nil {
		return err
	}
	for i, p := range r.Products {
		if err := checkNo("products", i, p.No); err != nil {
			return err
		}
		if p.Price < 0 || p.Stock < 0 {
			return fmt.Errorf("products[%d]: negative price or stock", i)
		}
	}
	return nil
}

func (p productItem) toDomain() domain.Product {
	return domain.Product{
		No:       p.No,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Stock:    p.Stock,
		Status:   p.Status,
	}
}

type postItem struct {
	No        int64     `json:"no"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p *postItem) validate() error {
	if p.No <= 0 {
		return errors.New("post: missing no")
	}
	return nil
}

func (p postItem) toDomain() domain.Post {
	return domain.Post{
		No:        p.No,
		Title:     p.Title,
		Category:  p.Category,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
	}
}

// postsResponse is shared by notices and FAQs; the list key differs
type postsResponse struct {
	Notices []postItem `json:"notices"`
	FAQs    []postItem `json:"faqs"`
	Total   int        `json:"total"`
}

func (r *postsResponse) items() []postItem {
	if len(r.Notices) > 0 {
		return r.Notices
	}
	return r.FAQs
}

func (r *postsResponse) validate() error {
	items := r.items()
	if err := checkPage(r.Total, len(items), 0); err != nil {
		return err
	}
	for i, p := range items {
		if err := checkNo("posts", i, p.No); err != nil {
			return err
		}
	}
	return nil
}

type postRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

type adminItem struct {
	No        int64     `json:"no"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a *adminItem) validate() error {
	if a.No <= 0 || a.Email == "" {
		return errors.New("admin: missing no or email")
	}
	return nil
}

func (a adminItem) toDomain() domain.Admin {
	return domain.Admin{
		No:        a.No,
		Email:     a.Email,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
	}
}

type adminsResponse struct {
	Admins []adminItem `json:"admins"`
	Total  int         `json:"total"`
}

func (r *adminsResponse) validate() error {
	if err := checkPage(r.Total, len(r.Admins), 0); err != nil {
		return err
	}
	for i := range r.Admins {
		if err := r.Admins[i].validate(); err != nil {
			return fmt.Errorf("admins[%d]: %w", i, err)
		}
	}
	return nil
}

type adminRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type documentResponse struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *documentResponse) toDomain(kind string) domain.Document {
	return domain.Document{
		Kind:      kind,
		Title:     r.Title,
		Content:   r.Content,
		UpdatedAt: r.UpdatedAt,
	}
}

type documentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
