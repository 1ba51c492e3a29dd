package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chadee/pos-backend/internal/catalog"
	"github.com/chadee/pos-backend/internal/orders"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bangkok = time.FixedZone("ICT", 7*3600)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type stubOrderStore struct {
	created   *orders.Order
	createErr error
	gotItems  []orders.ItemInput

	listed  []orders.Order
	listErr error
	gotFrom time.Time
	gotTo   time.Time
}

func (s *stubOrderStore) Create(_ context.Context, items []orders.ItemInput) (*orders.Order, error) {
	s.gotItems = items
	return s.created, s.createErr
}

func (s *stubOrderStore) ListBetween(_ context.Context, from, to time.Time) ([]orders.Order, error) {
	s.gotFrom, s.gotTo = from, to
	return s.listed, s.listErr
}

type stubCatalog struct {
	products      []catalog.Product
	created       *catalog.Product
	createErr     error
	deactivateErr error
	deactivatedID string
}

func (s *stubCatalog) ListActive(context.Context) ([]catalog.Product, error) {
	return s.products, nil
}

func (s *stubCatalog) Create(_ context.Context, name string, price decimal.Decimal, category string) (*catalog.Product, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.created, nil
}

func (s *stubCatalog) Deactivate(_ context.Context, id string) error {
	s.deactivatedID = id
	return s.deactivateErr
}

type memCache struct{ m map[string]string }

func newMemCache() *memCache { return &memCache{m: map[string]string{}} }

func (c *memCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := c.m[key]
	return v, ok
}

func (c *memCache) Set(_ context.Context, key, value string, _ time.Duration) { c.m[key] = value }

func (c *memCache) Del(_ context.Context, keys ...string) {
	for _, k := range keys {
		delete(c.m, k)
	}
}

type capturePublisher struct {
	keys   [][]byte
	values [][]byte
}

func (p *capturePublisher) Publish(key, value []byte, _ ...kafkago.Header) {
	p.keys = append(p.keys, key)
	p.values = append(p.values, value)
}

func newOrdersHandler(store *stubOrderStore, pub *capturePublisher, cache *memCache) http.Handler {
	r := NewRouter()
	h := &OrdersHandler{Store: store, Producer: pub, Cache: cache, Location: bangkok, Service: "pos-api-test"}
	h.Register(r)
	return r
}

func TestCreateOrder(t *testing.T) {
	created := &orders.Order{
		ID:        "ord-1",
		Total:     dec("130"),
		CreatedAt: time.Date(2025, 3, 14, 10, 30, 0, 0, bangkok),
		Items: []orders.OrderItem{
			{ID: "it-1", ProductID: "p1", Name: "ชาเขียว", Price: dec("50"), Quantity: 2},
			{ID: "it-2", ProductID: "p2", Name: "ชานมปั่น", Price: dec("30"), Quantity: 1},
		},
	}
	store := &stubOrderStore{created: created}
	pub := &capturePublisher{}
	router := newOrdersHandler(store, pub, newMemCache())

	body := `{"items":[{"productId":"p1","quantity":2},{"productId":"p2","quantity":1}]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Order   struct {
			ID    string          `json:"id"`
			Total decimal.Decimal `json:"total"`
			Items []struct {
				Name     string          `json:"name"`
				Price    decimal.Decimal `json:"price"`
				Quantity int             `json:"quantity"`
			} `json:"items"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, msgOrderSaved, resp.Message)
	assert.Equal(t, "ord-1", resp.Order.ID)
	assert.True(t, resp.Order.Total.Equal(dec("130")))
	require.Len(t, resp.Order.Items, 2)
	assert.Equal(t, "ชาเขียว", resp.Order.Items[0].Name)

	require.Len(t, store.gotItems, 2)
	assert.Equal(t, 2, store.gotItems[0].Quantity)

	// one order-created event, keyed by order id
	require.Len(t, pub.values, 1)
	assert.Equal(t, []byte("ord-1"), pub.keys[0])
	var env orders.Envelope
	require.NoError(t, json.Unmarshal(pub.values[0], &env))
	assert.Equal(t, orders.EventOrderCreated, env.EventType)
	assert.Equal(t, "ord-1", env.CorrelationID)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	store := &stubOrderStore{}
	pub := &capturePublisher{}
	router := newOrdersHandler(store, pub, newMemCache())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"items":[]}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, msgEmptyCart, resp.Message)
	assert.Empty(t, pub.values, "no event for a rejected order")
}

func TestCreateOrderInvalidProduct(t *testing.T) {
	store := &stubOrderStore{createErr: orders.ErrInvalidProduct}
	pub := &capturePublisher{}
	router := newOrdersHandler(store, pub, newMemCache())

	body := `{"items":[{"productId":"ghost","quantity":1}]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, msgInvalidProduct, resp.Message)
	assert.Empty(t, pub.values)
}

func TestCreateOrderStoreFailure(t *testing.T) {
	store := &stubOrderStore{createErr: context.DeadlineExceeded}
	router := newOrdersHandler(store, &capturePublisher{}, newMemCache())

	body := `{"items":[{"productId":"p1","quantity":1}]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp errResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, msgOrderFailed, resp.Message)
}

func TestDailyReportMissingDate(t *testing.T) {
	router := newOrdersHandler(&stubOrderStore{}, &capturePublisher{}, newMemCache())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, msgMissingDate, resp.Message)
}

func TestDailyReportInvalidDate(t *testing.T) {
	router := newOrdersHandler(&stubOrderStore{}, &capturePublisher{}, newMemCache())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders?date=yesterday", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, msgInvalidDate, resp.Message)
}

func TestDailyReport(t *testing.T) {
	store := &stubOrderStore{listed: []orders.Order{
		{
			ID: "o2", Total: dec("80"),
			CreatedAt: time.Date(2025, 3, 14, 18, 0, 0, 0, bangkok),
			Items: []orders.OrderItem{
				{Name: "ชาเขียว", Price: dec("50"), Quantity: 1},
				{Name: "ชานมปั่น", Price: dec("30"), Quantity: 1},
			},
		},
		{
			ID: "o1", Total: dec("50"),
			CreatedAt: time.Date(2025, 3, 14, 9, 0, 0, 0, bangkok),
			Items: []orders.OrderItem{
				{Name: "ชาเขียว", Price: dec("50"), Quantity: 1},
			},
		},
	}}
	cache := newMemCache()
	router := newOrdersHandler(store, &capturePublisher{}, cache)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders?date=2025-03-14", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	// queried with shop-local day bounds
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, bangkok), store.gotFrom)
	assert.Equal(t, time.Date(2025, 3, 14, 23, 59, 59, 999999999, bangkok), store.gotTo)

	var resp struct {
		Success bool            `json:"success"`
		Total   decimal.Decimal `json:"total"`
		Orders  []struct {
			ID string `json:"id"`
		} `json:"orders"`
		Items []struct {
			Name     string          `json:"name"`
			Quantity int             `json:"quantity"`
			Revenue  decimal.Decimal `json:"revenue"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Total.Equal(dec("130")), "total = %s", resp.Total)
	require.Len(t, resp.Orders, 2)
	assert.Equal(t, "o2", resp.Orders[0].ID, "newest first")
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "ชาเขียว", resp.Items[0].Name)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.True(t, resp.Items[0].Revenue.Equal(dec("100")))

	assert.Contains(t, cache.m, "cache:report:2025-03-14")
}

func TestDailyReportEmptyDay(t *testing.T) {
	router := newOrdersHandler(&stubOrderStore{}, &capturePublisher{}, newMemCache())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders?date=2025-03-14", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool              `json:"success"`
		Total   decimal.Decimal   `json:"total"`
		Orders  []json.RawMessage `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Total.IsZero())
	assert.NotNil(t, resp.Orders)
	assert.Empty(t, resp.Orders)
}

func TestDailyReportServedFromCache(t *testing.T) {
	store := &stubOrderStore{listErr: context.DeadlineExceeded}
	cache := newMemCache()
	cache.m["cache:report:2025-03-14"] = `{"success":true,"total":130,"orders":[],"items":[]}`
	router := newOrdersHandler(store, &capturePublisher{}, cache)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders?date=2025-03-14", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, cache.m["cache:report:2025-03-14"], rec.Body.String())
}

func newProductsHandler(store *stubCatalog, cache *memCache) http.Handler {
	r := NewRouter()
	h := &ProductsHandler{Store: store, Cache: cache}
	h.Register(r)
	return r
}

func TestListProducts(t *testing.T) {
	store := &stubCatalog{products: []catalog.Product{
		{ID: "p2", Name: "ชาเขียว", Price: dec("50"), Category: "ชา", IsActive: true},
		{ID: "p3", Name: "น้ำส้ม", Price: dec("55"), Category: "น้ำผลไม้", IsActive: true},
	}}
	cache := newMemCache()
	router := newProductsHandler(store, cache)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success  bool `json:"success"`
		Products []struct {
			Name  string          `json:"name"`
			Price decimal.Decimal `json:"price"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Products, 2)
	assert.Equal(t, "ชาเขียว", resp.Products[0].Name)
	assert.Contains(t, cache.m, "cache:products:active")
}

func TestListProductsEmptyCatalog(t *testing.T) {
	router := newProductsHandler(&stubCatalog{}, newMemCache())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"products":[]`)
}

func TestCreateProduct(t *testing.T) {
	store := &stubCatalog{created: &catalog.Product{
		ID: "p9", Name: "โกโก้เย็น", Price: dec("45"), IsActive: true,
	}}
	cache := newMemCache()
	cache.m["cache:products:active"] = "stale"
	router := newProductsHandler(store, cache)

	body := `{"name":"โกโก้เย็น","price":45}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, cache.m, "cache:products:active", "catalog cache invalidated")
}

func TestCreateProductMissingFields(t *testing.T) {
	store := &stubCatalog{createErr: catalog.ErrInvalidInput}
	router := newProductsHandler(store, newMemCache())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"ชาเขียว"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, msgMissingNamePrice, resp.Message)
}

func TestDeactivateProduct(t *testing.T) {
	store := &stubCatalog{}
	router := newProductsHandler(store, newMemCache())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/products/p1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "p1", store.deactivatedID)
}

func TestDeactivateUnknownProduct(t *testing.T) {
	store := &stubCatalog{deactivateErr: catalog.ErrNotFound}
	router := newProductsHandler(store, newMemCache())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/products/ghost", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
