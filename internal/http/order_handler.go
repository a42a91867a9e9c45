package http

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/sohub23/Smart-Home-sub003/internal/order"
)

// OrderHandler serves the back-office order endpoints.
type OrderHandler struct {
	orders order.Repository
	logger *log.Logger
}

func NewOrderHandler(orders order.Repository, logger *log.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

// List returns all orders, newest first. A non-empty q parameter narrows
// the result by order number or customer phone.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	var (
		orders []order.Order
		err    error
	)
	if q != "" {
		orders, err = h.orders.Search(r.Context(), q)
	} else {
		orders, err = h.orders.List(r.Context())
	}
	if err != nil {
		h.logger.Printf("list orders: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("orderId")

	o, err := h.orders.GetByID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Printf("get order %s: %v", orderID, err)
		writeError(w, http.StatusInternalServerError, "failed to load order")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body updateOrderStatusRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}

	orderID := r.PathValue("orderId")
	err := h.orders.UpdateStatus(r.Context(), orderID, order.Status(body.Status), body.Reason)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"orderId": orderID, "status": body.Status})
	case errors.Is(err, order.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, sql.ErrNoRows):
		writeError(w, http.StatusNotFound, "order not found")
	default:
		h.logger.Printf("update order %s: %v", orderID, err)
		writeError(w, http.StatusInternalServerError, "failed to update order")
	}
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("orderId")

	if err := h.orders.Delete(r.Context(), orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Printf("delete order %s: %v", orderID, err)
		writeError(w, http.StatusInternalServerError, "failed to delete order")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
