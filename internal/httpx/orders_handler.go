package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-pancake-orders/internal/kafka"
	"github.com/ariefcatur/go-pancake-orders/internal/orders"
	"github.com/ariefcatur/go-pancake-orders/internal/redisx"
	"github.com/ariefcatur/go-pancake-orders/internal/whatsapp"
)

const maxBodyBytes = 1 << 20

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, key, value []byte, headers ...kafkago.Header) error
}

// OrdersHandler serves the order API. Cache, Publisher and WhatsAppNumber are
// optional; leave them zero to disable the feature.
type OrdersHandler struct {
	Store          orders.Store
	Cache          *redisx.OrderCache
	Publisher      Publisher
	Service        string
	WhatsAppNumber string
	Log            *slog.Logger
}

type errorResp struct {
	Message string              `json:"message"`
	Errors  []orders.FieldIssue `json:"errors,omitempty"`
}

type orderResp struct {
	orders.Order
	WhatsAppURL string `json:"whatsappUrl,omitempty"`
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/flavors", h.listFlavors)
		r.Get("/hostels", h.listHostels)
		r.Post("/orders", h.createOrder)
		r.Get("/orders/{id}", h.getOrder)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// internalError logs the cause and sends the client only a generic message.
func (h *OrdersHandler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.Log.Error(msg,
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	writeJSON(w, http.StatusInternalServerError, errorResp{Message: msg})
}

func (h *OrdersHandler) listFlavors(w http.ResponseWriter, r *http.Request) {
	fl, err := h.Store.ListFlavors(r.Context())
	if err != nil {
		h.internalError(w, r, "Failed to fetch flavors", err)
		return
	}
	writeJSON(w, http.StatusOK, fl)
}

func (h *OrdersHandler) listHostels(w http.ResponseWriter, r *http.Request) {
	hs, err := h.Store.ListHostels(r.Context())
	if err != nil {
		h.internalError(w, r, "Failed to fetch hostels", err)
		return
	}
	writeJSON(w, http.StatusOK, hs)
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Message: "Invalid request body"})
		return
	}
	in, err := orders.DecodeCreateOrder(body)
	if err != nil {
		h.writeCreateError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	reqID := middleware.GetReqID(ctx)

	idemKey := r.Header.Get("Idempotency-Key")
	if idemKey != "" && h.Cache != nil {
		if o, ok := h.replay(ctx, idemKey); ok {
			writeJSON(w, http.StatusOK, h.response(ctx, o))
			return
		}
	}

	o, err := h.Store.CreateOrder(ctx, in)
	if err != nil {
		h.writeCreateError(w, r, err)
		return
	}

	if idemKey != "" && h.Cache != nil {
		winner, err := h.Cache.RememberIdempotency(ctx, idemKey, o.ID)
		if err != nil {
			h.Log.Warn("idempotency store failed", slog.String("request_id", reqID), slog.Any("error", err))
		} else if winner != o.ID {
			// request lain dengan key sama menang duluan
			if prev, err := h.Store.GetOrder(ctx, winner); err == nil {
				writeJSON(w, http.StatusOK, h.response(ctx, prev))
				return
			}
		}
	}
	if h.Cache != nil {
		if err := h.Cache.PutOrder(ctx, o); err != nil {
			h.Log.Warn("order cache write failed", slog.Int64("order_id", o.ID), slog.Any("error", err))
		}
	}
	h.publishCreated(ctx, o, reqID)

	h.Log.Info("order created",
		slog.String("request_id", reqID),
		slog.Int64("order_id", o.ID),
		slog.Int("quantity", o.Quantity),
		slog.Int("total", o.Total),
	)
	writeJSON(w, http.StatusCreated, h.response(ctx, o))
}

func (h *OrdersHandler) writeCreateError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *orders.ValidationError
	if errors.As(err, &verr) {
		h.Log.Info("order rejected",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Any("fields", verr.Fields()),
		)
		writeJSON(w, http.StatusBadRequest, errorResp{Message: "Validation error", Errors: verr.Issues})
		return
	}
	h.internalError(w, r, "Failed to create order", err)
}

// replay returns the order already created for key, if it still exists.
func (h *OrdersHandler) replay(ctx context.Context, key string) (orders.Order, bool) {
	id, found, err := h.Cache.LookupIdempotency(ctx, key)
	if err != nil {
		h.Log.Warn("idempotency lookup failed", slog.Any("error", err))
		return orders.Order{}, false
	}
	if !found {
		return orders.Order{}, false
	}
	o, err := h.Store.GetOrder(ctx, id)
	if err != nil {
		// MemStore restarted: key points at an order that is gone
		return orders.Order{}, false
	}
	return o, true
}

func (h *OrdersHandler) publishCreated(ctx context.Context, o orders.Order, traceID string) {
	if h.Publisher == nil {
		return
	}
	ev, err := orders.NewOrderCreated(o, h.Service, traceID)
	if err != nil {
		h.Log.Error("build order event", slog.Int64("order_id", o.ID), slog.Any("error", err))
		return
	}
	err = h.Publisher.Publish(ctx, orders.PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkax.EventHeaders(orders.EventOrderCreated, orders.EventVersion)...)
	if err != nil {
		h.Log.Error("publish order event", slog.Int64("order_id", o.ID), slog.Any("error", err))
	}
}

func (h *OrdersHandler) response(ctx context.Context, o orders.Order) orderResp {
	resp := orderResp{Order: o}
	if h.WhatsAppNumber == "" {
		return resp
	}
	catalog, err := h.Store.ListFlavors(ctx)
	if err != nil {
		h.Log.Warn("flavor catalog unavailable for whatsapp link", slog.Any("error", err))
	}
	resp.WhatsAppURL = whatsapp.OrderLink(h.WhatsAppNumber, o, catalog)
	return resp
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := orders.ParseOrderID(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Message: "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// 1) coba cache
	if h.Cache != nil {
		o, ok, err := h.Cache.GetOrder(ctx, id)
		if err != nil {
			h.Log.Warn("order cache read failed", slog.Int64("order_id", id), slog.Any("error", err))
		} else if ok {
			writeJSON(w, http.StatusOK, o)
			return
		}
	}

	// 2) fallback store
	o, err := h.Store.GetOrder(ctx, id)
	if errors.Is(err, orders.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResp{Message: "Order not found"})
		return
	}
	if err != nil {
		h.internalError(w, r, "Failed to fetch order", err)
		return
	}
	if h.Cache != nil {
		if err := h.Cache.PutOrder(ctx, o); err != nil {
			h.Log.Warn("order cache write failed", slog.Int64("order_id", id), slog.Any("error", err))
		}
	}
	writeJSON(w, http.StatusOK, o)
}
