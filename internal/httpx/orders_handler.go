package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hijauloka/orderview/internal/orders"
	"github.com/hijauloka/orderview/internal/redisx"
)

// OrderViews is the assembly core behind the handlers. *orders.Assembler
// implements it.
type OrderViews interface {
	ByCode(ctx context.Context, code string) (*orders.OrderView, error)
	ListByUser(ctx context.Context, q orders.ListQuery) (*orders.Page, error)
}

type OrdersHandler struct {
	Views OrderViews
	Redis *redis.Client // nil = tanpa cache (tes)
	Log   *slog.Logger
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Get("/api/orders/{code}", h.getOrder)
	r.Get("/api/users/{userID}/orders", h.listOrders)
}

// envelope is the legacy response frame every client already parses.
// Kegagalan tidak pernah membawa key data.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *OrdersHandler) fail(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, envelope{Success: false, Message: msg})
}

// failInfra logs the real error with a reference id and returns a generic
// message: teks error internal tidak boleh bocor ke client.
func (h *OrdersHandler) failInfra(w http.ResponseWriter, op string, err error) {
	ref := uuid.NewString()
	h.Log.Error("store failure",
		slog.String("op", op),
		slog.String("error_id", ref),
		slog.Any("error", err),
	)
	h.fail(w, http.StatusInternalServerError,
		fmt.Sprintf("Something went wrong. Please try again later. (ref: %s)", ref))
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		h.fail(w, http.StatusBadRequest, "Order ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// 1) coba cache: body lengkap sudah tersimpan siap kirim
	key := fmt.Sprintf(redisx.KeyOrderView, code)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(s))
			return
		}
	}

	// 2) fallback DB
	view, err := h.Views.ByCode(ctx, code)
	if errors.Is(err, orders.ErrNotFound) {
		h.fail(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		h.failInfra(w, "get order", err)
		return
	}

	body, err := json.Marshal(envelope{Success: true, Message: "Order retrieved successfully", Data: view})
	if err != nil {
		h.failInfra(w, "encode order", err)
		return
	}
	if h.Redis != nil {
		_ = h.Redis.Set(ctx, key, body, redisx.TTLViewCache).Err()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID < 1 {
		h.fail(w, http.StatusBadRequest, "User ID is required")
		return
	}

	q := orders.ListQuery{UserID: userID, Page: 1, Limit: 10}

	if s := r.URL.Query().Get("status"); s != "" {
		if !orders.ValidStatus(orders.Status(s)) {
			h.fail(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		q.Status = orders.Status(s)
	}
	if q.Page, err = positiveIntParam(r, "page", 1); err != nil {
		h.fail(w, http.StatusBadRequest, "Invalid page parameter")
		return
	}
	if q.Limit, err = positiveIntParam(r, "limit", 10); err != nil {
		h.fail(w, http.StatusBadRequest, "Invalid limit parameter")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	page, err := h.Views.ListByUser(ctx, q)
	if err != nil {
		h.failInfra(w, "list orders", err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Orders retrieved successfully", Data: page})
}

func positiveIntParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return n, nil
}
