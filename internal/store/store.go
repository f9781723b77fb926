// Package store persists sellers, products, and the append-only
// issuance ledger.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	// ErrDuplicatePassword is returned when a new seller password
	// collides with an existing one.
	ErrDuplicatePassword = errors.New("store: password already in use")
	// ErrProductNotFound is returned by IssueStock when the product id
	// does not exist.
	ErrProductNotFound = errors.New("store: product not found")
	// ErrChatTaken is returned by BindChat when the chat id is already
	// bound to a different seller.
	ErrChatTaken = errors.New("store: chat already bound to another seller")
)

// Seller is an account in the ledger. ChatID is NULL until the seller
// logs in from a Telegram chat for the first time.
type Seller struct {
	ID       int64         `db:"id"`
	ChatID   sql.NullInt64 `db:"chat_id"`
	Name     string        `db:"name"`
	Area     string        `db:"area"`
	Phone    string        `db:"phone"`
	Password string        `db:"password"`
	Role     string        `db:"role"`
}

// Product is a catalog entry with a unit price.
type Product struct {
	ID    int64   `db:"id"`
	Name  string  `db:"name"`
	Price float64 `db:"price"`
}

// Issuance is one ledger record: qty units of a product handed to a
// seller, with the total captured at issue time.
type Issuance struct {
	ID          int64     `db:"id"`
	SellerID    int64     `db:"seller_id"`
	ProductID   int64     `db:"product_id"`
	ProductName string    `db:"product_name"`
	Qty         int       `db:"qty"`
	Total       float64   `db:"total"`
	IssuedAt    time.Time `db:"issued_at"`
}

// DebtReport is a seller's outstanding debt: the sum of all issuance
// totals plus the entries themselves, newest first.
type DebtReport struct {
	Total float64
	Items []Issuance
}

// Store is the persistence surface used by the conversation engine.
type Store interface {
	// CreateSeller registers a new seller account. Returns
	// ErrDuplicatePassword when the password is already taken.
	CreateSeller(ctx context.Context, name, area, phone, password string) (Seller, error)

	// CreateProduct adds a catalog entry. The bool reports whether a
	// row was actually inserted; false means the name already exists.
	CreateProduct(ctx context.Context, name string, price float64) (bool, error)

	// SellerByPassword looks an account up by its login password.
	// Returns (nil, nil) when no account matches.
	SellerByPassword(ctx context.Context, password string) (*Seller, error)

	// SellerByChatID looks an account up by its bound chat.
	// Returns (nil, nil) when the chat is not bound to any seller.
	SellerByChatID(ctx context.Context, chatID int64) (*Seller, error)

	// BindChat attaches a chat to a seller account. The bool reports
	// whether the binding changed. Returns ErrChatTaken when the chat
	// is already bound to a different seller.
	BindChat(ctx context.Context, sellerID, chatID int64) (bool, error)

	// Products lists the catalog ordered by name.
	Products(ctx context.Context) ([]Product, error)

	// Sellers lists all accounts ordered by name.
	Sellers(ctx context.Context) ([]Seller, error)

	// PasswordOf returns the stored password for a seller, or ""
	// when the seller does not exist.
	PasswordOf(ctx context.Context, sellerID int64) (string, error)

	// IssueStock appends a ledger record for qty units of a product.
	// The total is computed from the product's current price. Returns
	// ErrProductNotFound for an unknown product id.
	IssueStock(ctx context.Context, sellerID, productID int64, qty int) (Issuance, error)

	// Debt aggregates a seller's ledger into a report, entries newest
	// first.
	Debt(ctx context.Context, sellerID int64) (DebtReport, error)
}
