package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidStatus rejects status updates outside the recognized set.
var ErrInvalidStatus = errors.New("invalid order status")

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, orderID string) (*Order, error)
	GetByTransactionID(ctx context.Context, tranID string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	Search(ctx context.Context, query string) ([]Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status, reason string) error
	Delete(ctx context.Context, orderID string) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, order_number, transaction_id,
              customer_name, customer_email, customer_phone, customer_address,
              total_amount, payment_method, status, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		o.ID, o.OrderNumber, o.TransactionID,
		o.Customer.Name, o.Customer.Email, o.Customer.Phone, o.Customer.Address,
		o.TotalAmount, o.PaymentMethod, o.Status, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range o.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (id, order_id, product_id, product_name,
                  quantity, unit_price, category, color, engraving, installation)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			uuid.NewString(), o.ID, it.ProductID, it.ProductName,
			it.Quantity, it.UnitPrice, it.Category, it.Color, it.Engraving, it.Installation,
		)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

const orderColumns = `id, order_number, transaction_id,
       customer_name, customer_email, customer_phone, customer_address,
       total_amount, payment_method, status, COALESCE(failure_reason, ''), created_at`

func scanOrder(row interface{ Scan(dest ...any) error }, o *Order) error {
	return row.Scan(&o.ID, &o.OrderNumber, &o.TransactionID,
		&o.Customer.Name, &o.Customer.Email, &o.Customer.Phone, &o.Customer.Address,
		&o.TotalAmount, &o.PaymentMethod, &o.Status, &o.FailureReason, &o.CreatedAt)
}

func (r *repo) GetByID(ctx context.Context, orderID string) (*Order, error) {
	return r.getByColumn(ctx, "id", orderID)
}

func (r *repo) GetByTransactionID(ctx context.Context, tranID string) (*Order, error) {
	return r.getByColumn(ctx, "transaction_id", tranID)
}

func (r *repo) getByColumn(ctx context.Context, column, value string) (*Order, error) {
	var o Order
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE %s = $1`, orderColumns, column)
	err := scanOrder(r.db.QueryRowContext(ctx, query, value), &o)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

func (r *repo) List(ctx context.Context) ([]Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

// Search matches order number or customer phone, newest first.
func (r *repo) Search(ctx context.Context, query string) ([]Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders
         WHERE order_number ILIKE '%' || $1 || '%'
            OR customer_phone ILIKE '%' || $1 || '%'
         ORDER BY created_at DESC`,
		query)
}

func (r *repo) queryOrders(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

func (r *repo) loadItems(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, product_name, quantity, unit_price, category,
                color, engraving, installation
         FROM order_items WHERE order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice,
			&it.Category, &it.Color, &it.Engraving, &it.Installation); err != nil {
			return nil, fmt.Errorf("scan order_item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return items, nil
}

func (r *repo) UpdateStatus(ctx context.Context, orderID string, status Status, reason string) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2, failure_reason = NULLIF($3, '') WHERE id = $1`,
		orderID, status, reason,
	)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, orderID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
