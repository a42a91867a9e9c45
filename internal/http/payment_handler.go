package http

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/sohub23/Smart-Home-sub003/internal/order"
	"github.com/sohub23/Smart-Home-sub003/internal/payment"
)

// PaymentValidator double-checks a gateway callback against the
// SSLCommerz validation API.
type PaymentValidator interface {
	Validate(ctx context.Context, valID string) (*payment.ValidationResult, error)
}

// PaymentHandler receives the gateway's browser redirects and its
// server-to-server IPN. The browser endpoints always redirect back to the
// storefront; the order status is whatever we managed to record.
type PaymentHandler struct {
	orders          order.Repository
	validator       PaymentValidator
	frontendBaseURL string
	logger          *log.Logger
}

func NewPaymentHandler(orders order.Repository, validator PaymentValidator, frontendBaseURL string, logger *log.Logger) *PaymentHandler {
	return &PaymentHandler{
		orders:          orders,
		validator:       validator,
		frontendBaseURL: frontendBaseURL,
		logger:          logger,
	}
}

func (h *PaymentHandler) parseCallback(r *http.Request) (payment.Callback, bool) {
	if err := r.ParseForm(); err != nil {
		h.logger.Printf("parse callback form: %v", err)
		return payment.Callback{}, false
	}
	return payment.ParseCallback(r.Form), true
}

// Success handles the browser redirect after a completed payment.
func (h *PaymentHandler) Success(w http.ResponseWriter, r *http.Request) {
	cb, ok := h.parseCallback(r)
	if !ok || cb.TranID == "" {
		h.redirect(w, r, "/payment/failed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if h.validator != nil && cb.ValID != "" {
		res, err := h.validator.Validate(ctx, cb.ValID)
		if err != nil {
			h.logger.Printf("validate payment %s: %v", cb.TranID, err)
		} else if !res.Valid() {
			h.logger.Printf("payment %s failed validation: status=%s", cb.TranID, res.Status)
			h.markByTransaction(ctx, cb.TranID, order.StatusPaymentFailed, "gateway validation failed")
			h.redirect(w, r, "/payment/failed?tran="+cb.TranID)
			return
		}
	}

	h.markByTransaction(ctx, cb.TranID, order.StatusConfirmed, "")
	h.redirect(w, r, "/payment/success?tran="+cb.TranID)
}

// Fail handles the browser redirect after a declined payment.
func (h *PaymentHandler) Fail(w http.ResponseWriter, r *http.Request) {
	cb, ok := h.parseCallback(r)
	if ok && cb.TranID != "" {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()
		h.markByTransaction(ctx, cb.TranID, order.StatusPaymentFailed, cb.FailedReason)
	}
	h.redirect(w, r, "/payment/failed?tran="+cb.TranID)
}

// Cancel handles the browser redirect after the customer abandons the
// gateway page.
func (h *PaymentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	cb, ok := h.parseCallback(r)
	if ok && cb.TranID != "" {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()
		h.markByTransaction(ctx, cb.TranID, order.StatusCancelled, "cancelled by customer")
	}
	h.redirect(w, r, "/payment/cancelled?tran="+cb.TranID)
}

// IPN is the gateway's server-to-server notification. It must answer 200
// or SSLCommerz keeps retrying, so the body is a bare acknowledgement even
// when the transaction is unknown.
func (h *PaymentHandler) IPN(w http.ResponseWriter, r *http.Request) {
	cb, ok := h.parseCallback(r)
	if ok && cb.TranID != "" {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		switch cb.Status {
		case "VALID", "VALIDATED":
			h.markByTransaction(ctx, cb.TranID, order.StatusConfirmed, "")
		case "FAILED":
			h.markByTransaction(ctx, cb.TranID, order.StatusPaymentFailed, cb.FailedReason)
		case "CANCELLED":
			h.markByTransaction(ctx, cb.TranID, order.StatusCancelled, "cancelled by customer")
		default:
			h.logger.Printf("ipn for %s with status %q ignored", cb.TranID, cb.Status)
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *PaymentHandler) markByTransaction(ctx context.Context, tranID string, status order.Status, reason string) {
	o, err := h.orders.GetByTransactionID(ctx, tranID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.logger.Printf("callback for unknown transaction %s", tranID)
		} else {
			h.logger.Printf("load order for transaction %s: %v", tranID, err)
		}
		return
	}
	if err := h.orders.UpdateStatus(ctx, o.ID, status, reason); err != nil {
		h.logger.Printf("update order %s to %s: %v", o.ID, status, err)
	}
}

func (h *PaymentHandler) redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, h.frontendBaseURL+path, http.StatusSeeOther)
}
