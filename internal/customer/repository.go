// Package customer keeps the back-office customer book, accumulated from
// checkouts rather than registrations.
package customer

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID         string    `json:"customerId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	TotalSpent float64   `json:"totalSpent"`
	OrderCount int       `json:"orderCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Repository interface {
	// Upsert records a purchase for the customer keyed by email, adding
	// spent to their running total. It reports whether the customer is new.
	Upsert(ctx context.Context, c *Customer, spent float64) (created bool, err error)
	List(ctx context.Context) ([]Customer, error)
	Search(ctx context.Context, query string) ([]Customer, error)
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) Upsert(ctx context.Context, c *Customer, spent float64) (bool, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	const query = `
INSERT INTO customers (id, name, email, phone, address, total_spent, order_count, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, 1, NOW(), NOW())
ON CONFLICT (email) DO UPDATE
SET name = EXCLUDED.name,
    phone = EXCLUDED.phone,
    address = EXCLUDED.address,
    total_spent = customers.total_spent + EXCLUDED.total_spent,
    order_count = customers.order_count + 1,
    updated_at = NOW()
RETURNING id, total_spent, order_count, created_at, updated_at, (created_at = updated_at)
`
	var created bool
	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Address, spent,
	).Scan(&c.ID, &c.TotalSpent, &c.OrderCount, &c.CreatedAt, &c.UpdatedAt, &created)
	if err != nil {
		return false, fmt.Errorf("upsert customer: %w", err)
	}
	return created, nil
}

func (r *repo) List(ctx context.Context) ([]Customer, error) {
	return r.query(ctx,
		`SELECT id, name, email, phone, address, total_spent, order_count, created_at, updated_at
         FROM customers ORDER BY updated_at DESC`)
}

func (r *repo) Search(ctx context.Context, q string) ([]Customer, error) {
	return r.query(ctx,
		`SELECT id, name, email, phone, address, total_spent, order_count, created_at, updated_at
         FROM customers
         WHERE name ILIKE '%' || $1 || '%'
            OR email ILIKE '%' || $1 || '%'
            OR phone ILIKE '%' || $1 || '%'
         ORDER BY updated_at DESC`,
		q)
}

func (r *repo) query(ctx context.Context, query string, args ...any) ([]Customer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	defer rows.Close()

	var out []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address,
			&c.TotalSpent, &c.OrderCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return out, nil
}
