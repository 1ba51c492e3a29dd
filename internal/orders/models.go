package orders

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart      = errors.New("order has no items")
	ErrInvalidProduct = errors.New("unknown or inactive product")
	ErrInvalidQty     = errors.New("item quantity must be at least 1")
)

// ItemInput is one requested line at checkout. Quantity only; the price
// is always re-resolved from the catalog server-side.
type ItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderRequest is the transient checkout payload.
type OrderRequest struct {
	Items []ItemInput `json:"items"`
}

// Order is an immutable record of a completed checkout.
type Order struct {
	ID        string          `json:"id"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
	Items     []OrderItem     `json:"items"`
}

// OrderItem carries the unit price snapshotted at order time; later
// catalog price changes never alter it. Name is resolved from the
// product for display and reporting.
type OrderItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"-"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}
