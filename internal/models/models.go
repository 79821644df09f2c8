package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go over the wire as bare JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Transaction and category types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// User represents a registered account. The password hash never leaves the server.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicUser is the view of an account returned by the auth endpoints.
type PublicUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public returns the view of the user that is safe to hand to clients.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Category is a label transactions are filed under. UserID is nil for the
// default categories shared by every user.
type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	UserID    *int64 `json:"user_id"`
	IsDefault bool   `json:"is_default"`
}

// Transaction represents a single income or expense record. CategoryName is
// filled when the row is read joined with its category; it is nil if the
// category is missing.
type Transaction struct {
	ID           int64           `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	CategoryID   int64           `json:"category_id"`
	Date         string          `json:"date"`
	Type         string          `json:"type"`
	UserID       int64           `json:"user_id"`
	CreatedAt    time.Time       `json:"created_at"`
	CategoryName *string         `json:"category_name"`
}
