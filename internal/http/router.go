package http

import (
	"log"
	"net/http"

	"github.com/sohub23/Smart-Home-sub003/internal/cart"
	"github.com/sohub23/Smart-Home-sub003/internal/checkout"
	"github.com/sohub23/Smart-Home-sub003/internal/customer"
	"github.com/sohub23/Smart-Home-sub003/internal/mailer"
	"github.com/sohub23/Smart-Home-sub003/internal/notify"
	"github.com/sohub23/Smart-Home-sub003/internal/order"
	"github.com/sohub23/Smart-Home-sub003/internal/quote"
)

// Deps carries everything the router wires into handlers. Optional
// collaborators (publisher, relay, validator) may be nil; the affected
// side effects are then skipped.
type Deps struct {
	Sessions  *cart.SessionStore
	Assembler *checkout.Assembler
	Orders    order.Repository
	Quotes    quote.Repository
	Customers customer.Repository
	MailRepo  mailer.Repository
	Relay     MailSender
	Publisher interface {
		EventsPublisher
		QuoteEventsPublisher
	}
	Hub             *notify.Hub
	Gateway         PaymentInitiator
	Validator       PaymentValidator
	FrontendBaseURL string
	AllowOrigins    []string
	Logger          *log.Logger
}

func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler)

	ch := NewCartHandler(d.Sessions)
	mux.HandleFunc("GET /api/cart/{sessionId}", ch.GetCart)
	mux.HandleFunc("POST /api/cart/{sessionId}/items", ch.AddItem)
	mux.HandleFunc("PATCH /api/cart/{sessionId}/items/{itemId}", ch.UpdateQuantity)
	mux.HandleFunc("DELETE /api/cart/{sessionId}/items/{itemId}", ch.RemoveItem)
	mux.HandleFunc("DELETE /api/cart/{sessionId}", ch.ClearCart)

	mux.HandleFunc("POST /api/engraving/validate", ValidateEngraving)

	co := NewCheckoutHandler(d.Sessions, d.Assembler, d.Orders, d.Customers,
		d.Publisher, d.Hub, d.Gateway, d.MailRepo, d.Relay, d.Logger)
	mux.HandleFunc("POST /api/checkout", co.Checkout)

	pay := NewPaymentHandler(d.Orders, d.Validator, d.FrontendBaseURL, d.Logger)
	mux.HandleFunc("POST /api/payment/success", pay.Success)
	mux.HandleFunc("POST /api/payment/fail", pay.Fail)
	mux.HandleFunc("POST /api/payment/cancel", pay.Cancel)
	mux.HandleFunc("POST /api/payment/ipn", pay.IPN)

	qh := NewQuoteHandler(d.Sessions, d.Quotes, d.Publisher, d.MailRepo, d.Relay, d.Logger)
	mux.HandleFunc("POST /api/quotes", qh.Save)
	mux.HandleFunc("GET /api/quotes", qh.List)
	mux.HandleFunc("PATCH /api/quotes/{quoteId}/status", qh.UpdateStatus)

	oh := NewOrderHandler(d.Orders, d.Logger)
	mux.HandleFunc("GET /api/orders", oh.List)
	mux.HandleFunc("GET /api/orders/{orderId}", oh.Get)
	mux.HandleFunc("PATCH /api/orders/{orderId}/status", oh.UpdateStatus)
	mux.HandleFunc("DELETE /api/orders/{orderId}", oh.Delete)

	cu := NewCustomerHandler(d.Customers, d.Logger)
	mux.HandleFunc("GET /api/customers", cu.List)

	em := NewEmailHandler(d.MailRepo, d.Relay, d.Logger)
	mux.HandleFunc("GET /api/email/smtp", em.GetSMTPConfig)
	mux.HandleFunc("PUT /api/email/smtp", em.SaveSMTPConfig)
	mux.HandleFunc("GET /api/email/templates/{name}", em.GetTemplate)
	mux.HandleFunc("PUT /api/email/templates/{name}", em.SaveTemplate)
	mux.HandleFunc("POST /api/email/test", em.TestSend)

	nh := NewNotificationHandler(d.Hub)
	mux.HandleFunc("GET /api/notifications", nh.Recent)

	return CORS(d.AllowOrigins)(Recover(d.Logger)(mux))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "storefront",
	})
}
