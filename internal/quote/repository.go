package quote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sohub23/Smart-Home-sub003/internal/order"
)

// ErrInvalidStatus rejects quote status updates outside the allowed set.
var ErrInvalidStatus = errors.New("invalid quote status")

type Repository interface {
	Create(ctx context.Context, q *Quote) error
	List(ctx context.Context) ([]Quote, error)
	UpdateStatus(ctx context.Context, quoteID, status string) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, q *Quote) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.Status == "" {
		q.Status = StatusPending
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO quotes (id, quote_number,
              customer_name, customer_email, customer_phone, customer_address,
              total_amount, physical_visit_requested, need_expert_help, status, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		q.ID, q.QuoteNumber,
		q.Customer.Name, q.Customer.Email, q.Customer.Phone, q.Customer.Address,
		q.TotalAmount, q.PhysicalVisitRequested, q.NeedExpertHelp, q.Status, q.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}

	for _, it := range q.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO quote_items (id, quote_id, product_id, product_name,
                  quantity, unit_price, category, color, engraving, installation)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			uuid.NewString(), q.ID, it.ProductID, it.ProductName,
			it.Quantity, it.UnitPrice, it.Category, it.Color, it.Engraving, it.Installation,
		)
		if err != nil {
			return fmt.Errorf("insert quote_item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *repo) List(ctx context.Context) ([]Quote, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, quote_number,
                customer_name, customer_email, customer_phone, customer_address,
                total_amount, physical_visit_requested, need_expert_help, status, created_at
         FROM quotes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select quotes: %w", err)
	}
	defer rows.Close()

	var quotes []Quote
	for rows.Next() {
		var q Quote
		if err := rows.Scan(&q.ID, &q.QuoteNumber,
			&q.Customer.Name, &q.Customer.Email, &q.Customer.Phone, &q.Customer.Address,
			&q.TotalAmount, &q.PhysicalVisitRequested, &q.NeedExpertHelp, &q.Status, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	for i := range quotes {
		items, err := r.loadItems(ctx, quotes[i].ID)
		if err != nil {
			return nil, err
		}
		quotes[i].Items = items
	}

	return quotes, nil
}

func (r *repo) loadItems(ctx context.Context, quoteID string) ([]order.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, product_name, quantity, unit_price, category, color, engraving, installation
         FROM quote_items WHERE quote_id = $1`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("select quote_items: %w", err)
	}
	defer rows.Close()

	var items []order.Item
	for rows.Next() {
		var it order.Item
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice,
			&it.Category, &it.Color, &it.Engraving, &it.Installation); err != nil {
			return nil, fmt.Errorf("scan quote_item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return items, nil
}

func (r *repo) UpdateStatus(ctx context.Context, quoteID, status string) error {
	if !IsValidStatus(status) {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE quotes SET status = $2 WHERE id = $1`, quoteID, status)
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
