package orders

import (
	"github.com/chadee/pos-backend/internal/catalog"
	"github.com/shopspring/decimal"
)

// PriceItems turns requested lines into priced order items using catalog
// prices, and returns the order total. products must be the active
// products matching the request, so a line without a match means an
// unknown or deactivated id.
func PriceItems(items []ItemInput, products []catalog.Product) (decimal.Decimal, []OrderItem, error) {
	if len(items) == 0 {
		return decimal.Zero, nil, ErrEmptyCart
	}

	byID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	total := decimal.Zero
	lines := make([]OrderItem, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			return decimal.Zero, nil, ErrInvalidProduct
		}
		// one line per product; the cart merges duplicates before
		// checkout, so a repeated id is a malformed request
		if seen[it.ProductID] {
			return decimal.Zero, nil, ErrInvalidProduct
		}
		seen[it.ProductID] = true
		if it.Quantity < 1 {
			return decimal.Zero, nil, ErrInvalidQty
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		lines = append(lines, OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
		})
	}
	return total, lines, nil
}
