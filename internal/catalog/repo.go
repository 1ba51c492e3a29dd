package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrInvalidInput = errors.New("product name and price are required")
)

type Repo struct{ DB *pgxpool.Pool }

// ListActive returns the storefront catalog: active products, name ascending.
func (r *Repo) ListActive(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, price, category, is_active, created_at
		FROM products
		WHERE is_active
		ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, name string, price decimal.Decimal, category string) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" || !price.IsPositive() {
		return nil, ErrInvalidInput
	}

	p := Product{
		ID:       uuid.NewString(),
		Name:     name,
		Price:    price,
		Category: strings.TrimSpace(category),
		IsActive: true,
	}
	err := r.DB.QueryRow(ctx, `
		INSERT INTO products(id, name, price, category, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING created_at`,
		p.ID, p.Name, p.Price, p.Category,
	).Scan(&p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Deactivate soft-deletes a product so it disappears from the storefront
// while historical orders keep referencing it.
func (r *Repo) Deactivate(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `UPDATE products SET is_active = FALSE WHERE id = $1 AND is_active`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
