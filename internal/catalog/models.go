package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable drink. Soft-deleted via IsActive; price changes
// never touch historical orders because order items snapshot the price.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category,omitempty"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
}
