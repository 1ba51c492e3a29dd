// Package report builds the daily sales report: all orders of one
// shop-local calendar day, their revenue total, and per-drink sales
// statistics.
package report

import (
	"errors"
	"sort"
	"time"

	"github.com/chadee/pos-backend/internal/orders"
	"github.com/shopspring/decimal"
)

var ErrInvalidDate = errors.New("invalid date")

const dateLayout = "2006-01-02"

type Report struct {
	Date   string          `json:"date"`
	Total  decimal.Decimal `json:"total"`
	Orders []orders.Order  `json:"orders"`
	Items  []ItemStat      `json:"items"`
}

// ItemStat aggregates one drink across every order of the day.
type ItemStat struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// DayRange resolves a YYYY-MM-DD string to the inclusive bounds of that
// calendar day in the shop's timezone: 00:00:00.000000000 through
// 23:59:59.999999999. The day boundary is the shop's local midnight, not
// UTC; an order rung up at 23:59 belongs to that day's report. The end
// is derived from the next calendar day's midnight, not start+24h, so
// DST days that are 23 or 25 hours long keep their true bounds.
func DayRange(date string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end, nil
}

// Build aggregates the day's orders. The report total is the sum of
// order totals rounded to 2 decimal places; item stats accumulate
// quantity and revenue per item name, sorted by quantity descending with
// name ascending as the tie-break. An empty day yields total 0 and empty
// slices, not an error.
func Build(date string, dayOrders []orders.Order) Report {
	total := decimal.Zero
	stats := map[string]*ItemStat{}
	names := make([]string, 0)

	for _, o := range dayOrders {
		total = total.Add(o.Total)
		for _, it := range o.Items {
			s, ok := stats[it.Name]
			if !ok {
				s = &ItemStat{Name: it.Name, Revenue: decimal.Zero}
				stats[it.Name] = s
				names = append(names, it.Name)
			}
			s.Quantity += it.Quantity
			s.Revenue = s.Revenue.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}

	items := make([]ItemStat, 0, len(names))
	for _, n := range names {
		items = append(items, *stats[n])
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Quantity != items[j].Quantity {
			return items[i].Quantity > items[j].Quantity
		}
		return items[i].Name < items[j].Name
	})

	if dayOrders == nil {
		dayOrders = []orders.Order{}
	}
	return Report{
		Date:   date,
		Total:  total.Round(2),
		Orders: dayOrders,
		Items:  items,
	}
}
