package mockapi

import "time"

type user struct {
	No              int64     `json:"no"`
	Email           string    `json:"email"`
	Nickname        string    `json:"nickname"`
	Phone           string    `json:"phone"`
	CreatedAt       time.Time `json:"createdAt"`
	Reason          string    `json:"reason,omitempty"`
	BlockedAt       time.Time `json:"blockedAt,omitzero"`
	Blocked         bool      `json:"blocked"`
	Membership      string    `json:"membership"`
	OrderCount      int       `json:"orderCount"`
	TotalSpent      int64     `json:"totalSpent"`
	LastLoginAt     time.Time `json:"lastLoginAt"`
	MarketingAgreed bool      `json:"marketingAgreed"`
	Memo            string    `json:"memo"`
}

type membership struct {
	No        int64     `json:"no"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	Grade     string    `json:"grade"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type order struct {
	No          int64     `json:"no"`
	OrderNumber string    `json:"orderNumber"`
	Buyer       string    `json:"buyer"`
	Product     string    `json:"product"`
	Amount      int64     `json:"amount"`
	Status      string    `json:"status"`
	OrderedAt   time.Time `json:"orderedAt"`
}

type product struct {
	No       int64  `json:"no"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
	Stock    int    `json:"stock"`
	Status   string `json:"status"`
}

type post struct {
	No        int64     `json:"no"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type admin struct {
	No        int64     `json:"no"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	password  string
}

type document struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type message struct {
	Message string `json:"message"`
}
