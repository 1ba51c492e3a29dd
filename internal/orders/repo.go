package orders

import (
	"context"
	"time"

	"github.com/chadee/pos-backend/internal/catalog"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// Create prices the requested lines against the active catalog and writes
// the order and its items in one transaction, so a partial order never
// exists. The returned order carries the items as persisted.
func (r *Repo) Create(ctx context.Context, items []ItemInput) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	ids := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `
		SELECT id, name, price FROM products
		WHERE is_active AND id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	var products []catalog.Product
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			rows.Close()
			return nil, err
		}
		products = append(products, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	total, lines, err := PriceItems(items, products)
	if err != nil {
		return nil, err
	}

	o := &Order{ID: uuid.NewString(), Total: total}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders(id, total) VALUES ($1, $2)
		RETURNING created_at`, o.ID, o.Total,
	).Scan(&o.CreatedAt)
	if err != nil {
		return nil, err
	}

	for i := range lines {
		lines[i].ID = uuid.NewString()
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(id, order_id, product_id, price, quantity)
			VALUES ($1, $2, $3, $4, $5)`,
			lines[i].ID, o.ID, lines[i].ProductID, lines[i].Price, lines[i].Quantity,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	o.Items = lines
	return o, nil
}

// ListBetween returns orders created in [from, to], newest first, with
// their items attached.
func (r *Repo) ListBetween(ctx context.Context, from, to time.Time) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, total, created_at FROM orders
		WHERE created_at BETWEEN $1 AND $2
		ORDER BY created_at DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	index := map[string]int{}
	var orderIDs []string
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Total, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Items = []OrderItem{}
		index[o.ID] = len(out)
		orderIDs = append(orderIDs, o.ID)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	itemRows, err := r.DB.Query(ctx, `
		SELECT i.id, i.order_id, i.product_id, p.name, i.price, i.quantity
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1)
		ORDER BY i.id`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it OrderItem
		var orderID string
		if err := itemRows.Scan(&it.ID, &orderID, &it.ProductID, &it.Name, &it.Price, &it.Quantity); err != nil {
			return nil, err
		}
		if i, ok := index[orderID]; ok {
			out[i].Items = append(out[i].Items, it)
		}
	}
	return out, itemRows.Err()
}
