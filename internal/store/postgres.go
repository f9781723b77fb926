package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/m3rciful/dokonbot/internal/logger"
	"log/slog"
)

const uniqueViolation = "23505"

// Postgres implements Store on top of a sqlx connection pool.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres wraps an open connection pool.
func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (p *Postgres) CreateSeller(ctx context.Context, name, area, phone, password string) (Seller, error) {
	var s Seller
	err := p.db.GetContext(ctx, &s, `
		INSERT INTO sellers (name, area, phone, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id, chat_id, name, COALESCE(area, '') AS area,
		          COALESCE(phone, '') AS phone, password, role`,
		name, area, phone, password,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Seller{}, ErrDuplicatePassword
		}
		return Seller{}, fmt.Errorf("create seller: %w", err)
	}
	return s, nil
}

func (p *Postgres) CreateProduct(ctx context.Context, name string, price float64) (bool, error) {
	res, err := p.db.ExecContext(ctx, `
		INSERT INTO products (name, price)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING`,
		name, price,
	)
	if err != nil {
		return false, fmt.Errorf("create product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create product: %w", err)
	}
	return n > 0, nil
}

func (p *Postgres) SellerByPassword(ctx context.Context, password string) (*Seller, error) {
	var s Seller
	err := p.db.GetContext(ctx, &s, `
		SELECT id, chat_id, name, COALESCE(area, '') AS area,
		       COALESCE(phone, '') AS phone, password, role
		FROM sellers WHERE password = $1`,
		password,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("seller by password: %w", err)
	}
	return &s, nil
}

func (p *Postgres) SellerByChatID(ctx context.Context, chatID int64) (*Seller, error) {
	var s Seller
	err := p.db.GetContext(ctx, &s, `
		SELECT id, chat_id, name, COALESCE(area, '') AS area,
		       COALESCE(phone, '') AS phone, password, role
		FROM sellers WHERE chat_id = $1`,
		chatID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("seller by chat: %w", err)
	}
	return &s, nil
}

func (p *Postgres) BindChat(ctx context.Context, sellerID, chatID int64) (bool, error) {
	res, err := p.db.ExecContext(ctx, `
		UPDATE sellers SET chat_id = $1
		WHERE id = $2 AND (chat_id IS NULL OR chat_id <> $1)`,
		chatID, sellerID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, ErrChatTaken
		}
		return false, fmt.Errorf("bind chat: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("bind chat: %w", err)
	}
	return n > 0, nil
}

func (p *Postgres) Products(ctx context.Context) ([]Product, error) {
	var out []Product
	err := p.db.SelectContext(ctx, &out, `
		SELECT id, name, price FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

func (p *Postgres) Sellers(ctx context.Context) ([]Seller, error) {
	var out []Seller
	err := p.db.SelectContext(ctx, &out, `
		SELECT id, chat_id, name, COALESCE(area, '') AS area,
		       COALESCE(phone, '') AS phone, password, role
		FROM sellers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	return out, nil
}

func (p *Postgres) PasswordOf(ctx context.Context, sellerID int64) (string, error) {
	var pw string
	err := p.db.GetContext(ctx, &pw, `SELECT password FROM sellers WHERE id = $1`, sellerID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("password of seller: %w", err)
	}
	return pw, nil
}

func (p *Postgres) IssueStock(ctx context.Context, sellerID, productID int64, qty int) (Issuance, error) {
	start := time.Now()
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return Issuance{}, fmt.Errorf("issue stock: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var prod Product
	err = tx.GetContext(ctx, &prod, `SELECT id, name, price FROM products WHERE id = $1`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return Issuance{}, ErrProductNotFound
	}
	if err != nil {
		return Issuance{}, fmt.Errorf("issue stock: %w", err)
	}

	total := prod.Price * float64(qty)
	var iss Issuance
	err = tx.GetContext(ctx, &iss, `
		INSERT INTO issuances (seller_id, product_id, qty, total)
		VALUES ($1, $2, $3, $4)
		RETURNING id, seller_id, product_id, qty, total, issued_at`,
		sellerID, productID, qty, total,
	)
	if err != nil {
		return Issuance{}, fmt.Errorf("issue stock: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Issuance{}, fmt.Errorf("issue stock: %w", err)
	}
	iss.ProductName = prod.Name

	logger.Info(ctx, "store", "issue.append",
		slog.Int64("seller_id", sellerID),
		slog.Int64("product_id", productID),
		slog.Int("qty", qty),
		slog.Float64("total", total),
		slog.Duration("duration", logger.Took(start)),
	)
	return iss, nil
}

func (p *Postgres) Debt(ctx context.Context, sellerID int64) (DebtReport, error) {
	var rep DebtReport
	err := p.db.GetContext(ctx, &rep.Total, `
		SELECT COALESCE(SUM(total), 0) FROM issuances WHERE seller_id = $1`,
		sellerID,
	)
	if err != nil {
		return DebtReport{}, fmt.Errorf("debt total: %w", err)
	}
	err = p.db.SelectContext(ctx, &rep.Items, `
		SELECT i.id, i.seller_id, i.product_id, p.name AS product_name,
		       i.qty, i.total, i.issued_at
		FROM issuances i
		JOIN products p ON p.id = i.product_id
		WHERE i.seller_id = $1
		ORDER BY i.issued_at DESC, i.id DESC`,
		sellerID,
	)
	if err != nil {
		return DebtReport{}, fmt.Errorf("debt items: %w", err)
	}
	return rep, nil
}
