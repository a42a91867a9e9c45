package http

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/sohub23/Smart-Home-sub003/internal/cart"
	"github.com/sohub23/Smart-Home-sub003/internal/checkout"
	"github.com/sohub23/Smart-Home-sub003/internal/customer"
	"github.com/sohub23/Smart-Home-sub003/internal/events"
	"github.com/sohub23/Smart-Home-sub003/internal/mailer"
	"github.com/sohub23/Smart-Home-sub003/internal/notify"
	"github.com/sohub23/Smart-Home-sub003/internal/order"
	"github.com/sohub23/Smart-Home-sub003/internal/payment"
)

// PaymentInitiator starts a hosted-payment session at the gateway.
type PaymentInitiator interface {
	Initiate(ctx context.Context, r *payment.Request) (*payment.InitiationResult, error)
}

// EventsPublisher emits storefront events; failures are logged, never
// surfaced to the customer.
type EventsPublisher interface {
	PublishOrderPlaced(ctx context.Context, o *order.Order, meta events.Metadata) error
	PublishCustomerRegistered(ctx context.Context, c events.CustomerRegistered, meta events.Metadata) error
}

// MailSender hands rendered mail to the relay.
type MailSender interface {
	Send(ctx context.Context, req mailer.SendRequest) error
}

type CheckoutHandler struct {
	sessions  *cart.SessionStore
	assembler *checkout.Assembler
	orders    order.Repository
	customers customer.Repository
	publisher EventsPublisher
	hub       *notify.Hub
	gateway   PaymentInitiator
	mailRepo  mailer.Repository
	relay     MailSender
	logger    *log.Logger
}

func NewCheckoutHandler(
	sessions *cart.SessionStore,
	assembler *checkout.Assembler,
	orders order.Repository,
	customers customer.Repository,
	publisher EventsPublisher,
	hub *notify.Hub,
	gateway PaymentInitiator,
	mailRepo mailer.Repository,
	relay MailSender,
	logger *log.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		sessions:  sessions,
		assembler: assembler,
		orders:    orders,
		customers: customers,
		publisher: publisher,
		hub:       hub,
		gateway:   gateway,
		mailRepo:  mailRepo,
		relay:     relay,
		logger:    logger,
	}
}

type checkoutRequest struct {
	SessionID     string `json:"sessionId" validate:"required"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	PaymentMethod string `json:"paymentMethod"`
}

type checkoutResponse struct {
	OrderID     string  `json:"orderId"`
	OrderNumber string  `json:"orderNumber"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"totalAmount"`
	GatewayURL  string  `json:"gatewayUrl,omitempty"`
}

// Checkout validates the cart and customer details, stores the order and,
// for online payments, starts a gateway session. Validation errors come
// back as 400s naming the offending field or rule; downstream failures are
// kept distinct so the UI can offer a plain retry.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var body checkoutRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}

	c := h.sessions.Get(body.SessionID)
	if c == nil {
		writeError(w, http.StatusNotFound, "cart not found")
		return
	}

	cust := order.Customer{
		Name:    body.Name,
		Email:   body.Email,
		Phone:   body.Phone,
		Address: body.Address,
	}

	o, payReq, err := h.assembler.Assemble(c, cust, checkout.PaymentMethod(body.PaymentMethod))
	if err != nil {
		h.writeCheckoutError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := h.orders.Create(ctx, o); err != nil {
		h.logger.Printf("create order: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save order")
		return
	}

	// Everything after persistence is best-effort: the order exists, so
	// notification and email problems only get logged.
	h.afterOrderStored(ctx, o)

	if o.PaymentMethod == string(checkout.PaymentOnline) {
		result, err := h.gateway.Initiate(ctx, payReq)
		if err != nil {
			var gwErr *payment.GatewayError
			if errors.As(err, &gwErr) {
				h.logger.Printf("gateway rejected order %s: %v", o.ID, err)
			} else {
				h.logger.Printf("gateway unreachable for order %s: %v", o.ID, err)
			}
			writeErrorDetail(w, http.StatusBadGateway, "payment_gateway_failed",
				"payment could not be started, please try again", nil)
			return
		}

		h.sessions.Drop(body.SessionID)
		writeJSON(w, http.StatusCreated, checkoutResponse{
			OrderID:     o.ID,
			OrderNumber: o.OrderNumber,
			Status:      string(o.Status),
			TotalAmount: o.TotalAmount,
			GatewayURL:  result.GatewayPageURL,
		})
		return
	}

	h.sessions.Drop(body.SessionID)
	writeJSON(w, http.StatusCreated, checkoutResponse{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
	})
}

func (h *CheckoutHandler) writeCheckoutError(w http.ResponseWriter, err error) {
	var mf *checkout.MissingFieldError
	var eq *checkout.EngravingQuantityError
	var pm *checkout.UnsupportedPaymentMethodError

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		writeErrorDetail(w, http.StatusBadRequest, "empty_cart", err.Error(), nil)
	case errors.As(err, &mf):
		writeErrorDetail(w, http.StatusBadRequest, "missing_customer_field", err.Error(),
			map[string]any{"field": mf.Field})
	case errors.As(err, &eq):
		writeErrorDetail(w, http.StatusBadRequest, "minimum_engraving_quantity_not_met", err.Error(),
			map[string]any{"current": eq.Current, "required": eq.Required})
	case errors.As(err, &pm):
		writeErrorDetail(w, http.StatusBadRequest, "unsupported_payment_method", err.Error(),
			map[string]any{"method": pm.Method})
	default:
		writeError(w, http.StatusInternalServerError, "checkout failed")
	}
}

func (h *CheckoutHandler) afterOrderStored(ctx context.Context, o *order.Order) {
	cust := &customer.Customer{
		Name:    o.Customer.Name,
		Email:   o.Customer.Email,
		Phone:   o.Customer.Phone,
		Address: o.Customer.Address,
	}
	created, err := h.customers.Upsert(ctx, cust, o.TotalAmount)
	if err != nil {
		h.logger.Printf("customer upsert for order %s: %v", o.ID, err)
	}

	h.hub.Publish(notify.Message{
		Kind: notify.KindOrder,
		Order: &notify.OrderSummary{
			OrderID:     o.ID,
			OrderNumber: o.OrderNumber,
			TotalAmount: o.TotalAmount,
		},
	})

	if h.publisher != nil {
		if err := h.publisher.PublishOrderPlaced(ctx, o, events.Metadata{}); err != nil {
			h.logger.Printf("publish OrderPlaced for %s: %v", o.ID, err)
		}
		if created {
			ev := events.CustomerRegistered{
				Name:  o.Customer.Name,
				Email: o.Customer.Email,
				Phone: o.Customer.Phone,
			}
			if err := h.publisher.PublishCustomerRegistered(ctx, ev, events.Metadata{}); err != nil {
				h.logger.Printf("publish CustomerRegistered for %s: %v", o.Customer.Email, err)
			}
		}
	}

	h.sendConfirmationMail(ctx, o)
}

func (h *CheckoutHandler) sendConfirmationMail(ctx context.Context, o *order.Order) {
	if h.relay == nil {
		return
	}

	html, text, err := mailer.RenderOrderConfirmation(o)
	if err != nil {
		h.logger.Printf("render confirmation for %s: %v", o.ID, err)
		return
	}

	req := mailer.SendRequest{
		To:          o.Customer.Email,
		Subject:     "Your order " + o.OrderNumber + " has been received",
		HTMLContent: html,
		TextContent: text,
	}
	if h.mailRepo != nil {
		cfg, err := h.mailRepo.GetActiveSMTPConfig(ctx)
		switch {
		case err == nil:
			req.SMTPConfig = cfg
		case errors.Is(err, sql.ErrNoRows):
			// no stored config; the relay falls back to its own credentials
		default:
			h.logger.Printf("load smtp config: %v", err)
		}
	}

	if err := h.relay.Send(ctx, req); err != nil {
		h.logger.Printf("send confirmation for %s: %v", o.ID, err)
	}
}
