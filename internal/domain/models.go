package domain

import "time"

// User is a member row as shown in the user table. Blocked users come from a
// separate endpoint but share the row type so one list can switch between them.
type User struct {
	No          int64
	Email       string
	Nickname    string
	Phone       string
	JoinedAt    time.Time
	Blocked     bool
	BlockReason string
	BlockedAt   time.Time
}

// UserDetail is the full record behind a user row
type UserDetail struct {
	User
	Membership  string
	OrderCount  int
	TotalSpent  int64
	LastLoginAt time.Time
	MarketingOK bool
	AdminMemo   string
}

// Membership is a user's membership grade
type Membership struct {
	No        int64 // user number
	Email     string
	Nickname  string
	Grade     string
	ExpiresAt time.Time
}

// Order represents a single order row
type Order struct {
	No          int64
	OrderNumber string
	Buyer       string
	Product     string
	Amount      int64
	Status      string
	OrderedAt   time.Time
}

// Product represents a catalog entry
type Product struct {
	No       int64
	Name     string
	Category string
	Price    int64
	Stock    int
	Status   string
}

// Post is the shared shape of notices and FAQs
type Post struct {
	No        int64
	Title     string
	Category  string
	Content   string
	CreatedAt time.Time
}

// Admin is a back-office operator account
type Admin struct {
	No        int64
	Email     string
	Name      string
	CreatedAt time.Time
}

// NewAdmin carries the fields needed to create an admin account
type NewAdmin struct {
	Email    string
	Name     string
	Password string
}

// Document is a single editable legal document (terms, privacy)
type Document struct {
	Kind      string
	Title     string
	Content   string
	UpdatedAt time.Time
}

// Membership grades accepted by the membership change endpoint
var MembershipGrades = []string{"BASIC", "PREMIUM", "VIP"}
