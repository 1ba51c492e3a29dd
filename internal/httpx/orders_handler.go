package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	kafkax "github.com/chadee/pos-backend/internal/kafka"
	"github.com/chadee/pos-backend/internal/orders"
	"github.com/chadee/pos-backend/internal/redisx"
	"github.com/chadee/pos-backend/internal/report"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type OrderStore interface {
	Create(ctx context.Context, items []orders.ItemInput) (*orders.Order, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]orders.Order, error)
}

type EventPublisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type OrdersHandler struct {
	Store    OrderStore
	Producer EventPublisher
	Cache    redisx.Cache
	Location *time.Location
	Service  string
}

type createOrderResp struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Order   *orders.Order `json:"order"`
}

type dailyReportResp struct {
	Success bool              `json:"success"`
	Total   decimal.Decimal   `json:"total"`
	Orders  []orders.Order    `json:"orders"`
	Items   []report.ItemStat `json:"items"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.createOrder)
	r.Get("/orders", h.dailyReport)
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req orders.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgOrderFailed)
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, msgEmptyCart)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Store.Create(ctx, req.Items)
	switch {
	case err == nil:
	case errors.Is(err, orders.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, msgEmptyCart)
		return
	case errors.Is(err, orders.ErrInvalidProduct), errors.Is(err, orders.ErrInvalidQty):
		writeError(w, http.StatusBadRequest, msgInvalidProduct)
		return
	default:
		log.Printf("create order: %v", err)
		writeError(w, http.StatusInternalServerError, msgOrderFailed)
		return
	}

	h.publishCreated(r, o)

	// the day's cached report is stale now
	day := o.CreatedAt.In(h.Location).Format("2006-01-02")
	h.Cache.Del(ctx, fmt.Sprintf(redisx.KeyReportCache, day))

	writeJSON(w, http.StatusCreated, createOrderResp{Success: true, Message: msgOrderSaved, Order: o})
}

func (h *OrdersHandler) publishCreated(r *http.Request, o *orders.Order) {
	lines := make([]orders.ItemLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, orders.ItemLine{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: o.ID,
		Payload: kafkax.MustMarshal(orders.OrderCreatedPayload{
			OrderID:   o.ID,
			Total:     o.Total,
			Items:     lines,
			CreatedAt: o.CreatedAt,
		}),
	}
	h.Producer.Publish(orders.PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *OrdersHandler) dailyReport(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, msgMissingDate)
		return
	}
	from, to, err := report.DayRange(date, h.Location)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidDate)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cacheKey := fmt.Sprintf(redisx.KeyReportCache, date)
	if body, ok := h.Cache.Get(ctx, cacheKey); ok {
		writeRawJSON(w, http.StatusOK, []byte(body))
		return
	}

	dayOrders, err := h.Store.ListBetween(ctx, from, to)
	if err != nil {
		log.Printf("daily report %s: %v", date, err)
		writeError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	rep := report.Build(date, dayOrders)
	body, err := json.Marshal(dailyReportResp{
		Success: true,
		Total:   rep.Total,
		Orders:  rep.Orders,
		Items:   rep.Items,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	h.Cache.Set(ctx, cacheKey, string(body), redisx.TTLReportCache)
	writeRawJSON(w, http.StatusOK, body)
}
