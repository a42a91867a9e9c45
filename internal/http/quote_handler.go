package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/sohub23/Smart-Home-sub003/internal/cart"
	"github.com/sohub23/Smart-Home-sub003/internal/events"
	"github.com/sohub23/Smart-Home-sub003/internal/mailer"
	"github.com/sohub23/Smart-Home-sub003/internal/order"
	"github.com/sohub23/Smart-Home-sub003/internal/quote"
)

// QuoteEventsPublisher emits the quote.saved event.
type QuoteEventsPublisher interface {
	PublishQuoteSaved(ctx context.Context, q *quote.Quote, meta events.Metadata) error
}

type QuoteHandler struct {
	sessions  *cart.SessionStore
	quotes    quote.Repository
	publisher QuoteEventsPublisher
	mailRepo  mailer.Repository
	relay     MailSender
	logger    *log.Logger
	now       func() time.Time
}

func NewQuoteHandler(sessions *cart.SessionStore, quotes quote.Repository, publisher QuoteEventsPublisher, mailRepo mailer.Repository, relay MailSender, logger *log.Logger) *QuoteHandler {
	return &QuoteHandler{
		sessions:  sessions,
		quotes:    quotes,
		publisher: publisher,
		mailRepo:  mailRepo,
		relay:     relay,
		logger:    logger,
		now:       time.Now,
	}
}

type saveQuoteRequest struct {
	SessionID              string `json:"sessionId" validate:"required"`
	Name                   string `json:"name" validate:"required"`
	Email                  string `json:"email" validate:"required,email"`
	Phone                  string `json:"phone" validate:"required"`
	Address                string `json:"address"`
	PhysicalVisitRequested bool   `json:"physicalVisitRequested"`
	NeedExpertHelp         bool   `json:"needExpertHelp"`
}

// Save stores the session cart as a quote for follow-up. The cart is kept:
// the visitor may still decide to check out.
func (h *QuoteHandler) Save(w http.ResponseWriter, r *http.Request) {
	var body saveQuoteRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}

	c := h.sessions.Get(body.SessionID)
	if c == nil {
		writeError(w, http.StatusNotFound, "cart not found")
		return
	}

	items := c.Items()
	if len(items) == 0 {
		writeErrorDetail(w, http.StatusBadRequest, "empty_cart", "cannot save a quote for an empty cart", nil)
		return
	}

	q := &quote.Quote{
		QuoteNumber: fmt.Sprintf("QT%d", h.now().UnixMilli()),
		Customer: order.Customer{
			Name:    strings.TrimSpace(body.Name),
			Email:   strings.TrimSpace(body.Email),
			Phone:   strings.TrimSpace(body.Phone),
			Address: strings.TrimSpace(body.Address),
		},
		PhysicalVisitRequested: body.PhysicalVisitRequested,
		NeedExpertHelp:         body.NeedExpertHelp,
		Status:                 quote.StatusPending,
	}
	for _, it := range items {
		oi := order.Item{
			ProductID:   it.ID,
			ProductName: it.Name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Category:    it.Category,
		}
		if it.Meta != nil {
			oi.Color = it.Meta.Color
			oi.Engraving = it.Meta.Engraving
			oi.Installation = it.Meta.Installation
		}
		q.Items = append(q.Items, oi)
		q.TotalAmount += it.Subtotal()
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := h.quotes.Create(ctx, q); err != nil {
		h.logger.Printf("create quote: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save quote")
		return
	}

	if h.publisher != nil {
		if err := h.publisher.PublishQuoteSaved(ctx, q, events.Metadata{}); err != nil {
			h.logger.Printf("publish QuoteSaved for %s: %v", q.ID, err)
		}
	}
	h.sendQuoteMail(ctx, q)

	writeJSON(w, http.StatusCreated, q)
}

func (h *QuoteHandler) sendQuoteMail(ctx context.Context, q *quote.Quote) {
	if h.relay == nil {
		return
	}

	html, text, err := mailer.RenderQuoteReceived(q)
	if err != nil {
		h.logger.Printf("render quote mail for %s: %v", q.ID, err)
		return
	}

	req := mailer.SendRequest{
		To:          q.Customer.Email,
		Subject:     "We received your quote request " + q.QuoteNumber,
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
		h.logger.Printf("send quote mail for %s: %v", q.ID, err)
	}
}

// List returns all quotes for the back office, newest first.
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.quotes.List(r.Context())
	if err != nil {
		h.logger.Printf("list quotes: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load quotes")
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

type updateQuoteStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *QuoteHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body updateQuoteStatusRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}
	if !quote.IsValidStatus(body.Status) {
		writeError(w, http.StatusBadRequest, "invalid quote status: "+body.Status)
		return
	}

	quoteID := r.PathValue("quoteId")
	if err := h.quotes.UpdateStatus(r.Context(), quoteID, body.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "quote not found")
			return
		}
		h.logger.Printf("update quote %s: %v", quoteID, err)
		writeError(w, http.StatusInternalServerError, "failed to update quote")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"quoteId": quoteID, "status": body.Status})
}
