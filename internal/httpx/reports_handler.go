package httpx

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/chadee/pos-backend/internal/reporting"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// ReportsHandler serves the live sales board for the current shop-local
// day, read straight from the Redis counters the reporting consumer
// maintains.
type ReportsHandler struct {
	Live     reporting.SnapshotSource
	Location *time.Location
}

type liveReportResp struct {
	Success bool                  `json:"success"`
	Date    string                `json:"date"`
	Total   decimal.Decimal       `json:"total"`
	Items   []reporting.ItemCount `json:"items"`
}

func (h *ReportsHandler) Register(r *chi.Mux) {
	r.Get("/reports/live", h.live)
}

func (h *ReportsHandler) live(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	day := time.Now().In(h.Location).Format("2006-01-02")
	snap, err := h.Live.DaySnapshot(ctx, day)
	if err != nil {
		log.Printf("live report %s: %v", day, err)
		writeError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	writeJSON(w, http.StatusOK, liveReportResp{
		Success: true,
		Date:    day,
		Total:   snap.Revenue,
		Items:   snap.Items,
	})
}
