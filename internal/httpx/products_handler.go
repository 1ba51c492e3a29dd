package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/chadee/pos-backend/internal/catalog"
	"github.com/chadee/pos-backend/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type CatalogStore interface {
	ListActive(ctx context.Context) ([]catalog.Product, error)
	Create(ctx context.Context, name string, price decimal.Decimal, category string) (*catalog.Product, error)
	Deactivate(ctx context.Context, id string) error
}

type ProductsHandler struct {
	Store CatalogStore
	Cache redisx.Cache
}

type createProductReq struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

type listProductsResp struct {
	Success  bool              `json:"success"`
	Products []catalog.Product `json:"products"`
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/products", h.list)
	r.Post("/products", h.create)
	r.Delete("/products/{id}", h.deactivate)
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if body, ok := h.Cache.Get(ctx, redisx.KeyProductsCache); ok {
		writeRawJSON(w, http.StatusOK, []byte(body))
		return
	}

	ps, err := h.Store.ListActive(ctx)
	if err != nil {
		log.Printf("list products: %v", err)
		writeError(w, http.StatusInternalServerError, msgProductsFetchFailed)
		return
	}
	if ps == nil {
		ps = []catalog.Product{}
	}

	body, err := json.Marshal(listProductsResp{Success: true, Products: ps})
	if err != nil {
		writeError(w, http.StatusInternalServerError, msgProductsFetchFailed)
		return
	}
	h.Cache.Set(ctx, redisx.KeyProductsCache, string(body), redisx.TTLProductsCache)
	writeRawJSON(w, http.StatusOK, body)
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgMissingNamePrice)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Store.Create(ctx, req.Name, req.Price, req.Category)
	switch {
	case err == nil:
	case errors.Is(err, catalog.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, msgMissingNamePrice)
		return
	default:
		log.Printf("create product: %v", err)
		writeError(w, http.StatusInternalServerError, msgCreateProductFailed)
		return
	}

	h.Cache.Del(ctx, redisx.KeyProductsCache)
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "product": p})
}

func (h *ProductsHandler) deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	err := h.Store.Deactivate(ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, msgProductNotFound)
		return
	default:
		log.Printf("deactivate product %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, msgCreateProductFailed)
		return
	}

	h.Cache.Del(ctx, redisx.KeyProductsCache)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
