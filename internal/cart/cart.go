// Package cart models the pre-checkout cart of one POS terminal as an
// owned value with pure transitions, independent of any UI. Prices and
// names are display snapshots taken at add time; checkout sends only
// product ids and quantities and the server re-prices authoritatively.
package cart

import (
	"encoding/json"

	"github.com/chadee/pos-backend/internal/catalog"
	"github.com/chadee/pos-backend/internal/orders"
	"github.com/shopspring/decimal"
)

type Item struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Category  string          `json:"category,omitempty"`
}

// Cart keeps lines in insertion order; one line per product.
type Cart struct {
	items []Item
}

func New() *Cart { return &Cart{} }

// Add increments the existing line for the product, or appends a new
// line at quantity 1.
func (c *Cart) Add(p catalog.Product) {
	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, Item{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
		Category:  p.Category,
	})
}

// UpdateQuantity applies a signed delta to a line; a resulting quantity
// of 0 or less removes the line. Unknown product ids are ignored.
func (c *Cart) UpdateQuantity(productID string, delta int) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity += delta
			if c.items[i].Quantity <= 0 {
				c.items = append(c.items[:i], c.items[i+1:]...)
			}
			return
		}
	}
}

func (c *Cart) Remove(productID string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() { c.items = nil }

func (c *Cart) Items() []Item { return c.items }

func (c *Cart) TotalQuantity() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// OrderRequest serializes the cart for checkout, dropping the cart-held
// price, name and category.
func (c *Cart) OrderRequest() orders.OrderRequest {
	items := make([]orders.ItemInput, 0, len(c.items))
	for _, it := range c.items {
		items = append(items, orders.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return orders.OrderRequest{Items: items}
}

func (c *Cart) MarshalJSON() ([]byte, error) {
	if c.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.items)
}

func (c *Cart) UnmarshalJSON(b []byte) error {
	var items []Item
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	c.items = items
	return nil
}
