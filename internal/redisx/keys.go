package redisx

import "time"

const (
	// Active product list, serialized response body: cache:products:active
	KeyProductsCache = "cache:products:active"

	// Daily report response body per shop-local date: cache:report:{YYYY-MM-DD}
	KeyReportCache = "cache:report:%s"

	// Running revenue for a shop-local day: report:revenue:{YYYY-MM-DD}
	KeyDayRevenue = "report:revenue:%s"

	// Per-item quantities sold for a shop-local day (zset, member = item name):
	// report:items:{YYYY-MM-DD}
	KeyDayItems = "report:items:%s"

	// Dedup for event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Cart snapshot per terminal: cart:{terminal_id}
	KeyCart = "cart:%s"
)

var (
	TTLProductsCache = 5 * time.Minute
	TTLReportCache   = 30 * time.Second
	TTLDayCounters   = 40 * 24 * time.Hour
	TTLDedup         = 48 * time.Hour
	TTLCart          = 7 * 24 * time.Hour
)
