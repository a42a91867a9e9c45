package http

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/sohub23/Smart-Home-sub003/internal/mailer"
)

// EmailHandler exposes the admin-managed mail settings: the SMTP relay
// configuration, stored templates and a test-send endpoint.
type EmailHandler struct {
	mailRepo mailer.Repository
	relay    MailSender
	logger   *log.Logger
}

func NewEmailHandler(mailRepo mailer.Repository, relay MailSender, logger *log.Logger) *EmailHandler {
	return &EmailHandler{mailRepo: mailRepo, relay: relay, logger: logger}
}

func (h *EmailHandler) GetSMTPConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.mailRepo.GetActiveSMTPConfig(r.Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "no active smtp configuration")
			return
		}
		h.logger.Printf("load smtp config: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load smtp configuration")
		return
	}
	// Never echo the relay password back to the browser.
	cfg.Password = ""
	writeJSON(w, http.StatusOK, cfg)
}

type smtpConfigRequest struct {
	Host       string `json:"host" validate:"required"`
	Port       int    `json:"port" validate:"required,gt=0"`
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	FromEmail  string `json:"from_email" validate:"required,email"`
	FromName   string `json:"from_name"`
	AdminEmail string `json:"admin_email" validate:"omitempty,email"`
}

func (h *EmailHandler) SaveSMTPConfig(w http.ResponseWriter, r *http.Request) {
	var body smtpConfigRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}

	cfg := &mailer.SMTPConfig{
		Host:       body.Host,
		Port:       body.Port,
		Username:   body.Username,
		Password:   body.Password,
		FromEmail:  body.FromEmail,
		FromName:   body.FromName,
		AdminEmail: body.AdminEmail,
	}
	if err := h.mailRepo.SaveSMTPConfig(r.Context(), cfg); err != nil {
		h.logger.Printf("save smtp config: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save smtp configuration")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EmailHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	t, err := h.mailRepo.GetTemplate(r.Context(), name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "template not found")
			return
		}
		h.logger.Printf("load template %s: %v", name, err)
		writeError(w, http.StatusInternalServerError, "failed to load template")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type saveTemplateRequest struct {
	Subject     string `json:"subject" validate:"required"`
	HTMLContent string `json:"htmlContent" validate:"required"`
	TextContent string `json:"textContent"`
	Active      bool   `json:"active"`
}

func (h *EmailHandler) SaveTemplate(w http.ResponseWriter, r *http.Request) {
	var body saveTemplateRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}

	t := &mailer.Template{
		Name:        r.PathValue("name"),
		Subject:     body.Subject,
		HTMLContent: body.HTMLContent,
		TextContent: body.TextContent,
		Active:      body.Active,
	}
	if err := h.mailRepo.SaveTemplate(r.Context(), t); err != nil {
		h.logger.Printf("save template %s: %v", t.Name, err)
		writeError(w, http.StatusInternalServerError, "failed to save template")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type testSendRequest struct {
	To string `json:"to" validate:"required,email"`
}

// TestSend pushes a short message through the relay with the stored SMTP
// configuration so an admin can verify the settings actually work.
func (h *EmailHandler) TestSend(w http.ResponseWriter, r *http.Request) {
	var body testSendRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}

	cfg, err := h.mailRepo.GetActiveSMTPConfig(r.Context())
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		h.logger.Printf("load smtp config: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load smtp configuration")
		return
	}

	req := mailer.SendRequest{
		To:          body.To,
		Subject:     "Storefront test message",
		HTMLContent: "<p>This is a test message sent at " + time.Now().UTC().Format(time.RFC3339) + ".</p>",
		TextContent: "This is a test message.",
		SMTPConfig:  cfg,
	}
	if err := h.relay.Send(r.Context(), req); err != nil {
		h.logger.Printf("test send to %s: %v", body.To, err)
		writeError(w, http.StatusBadGateway, "relay rejected the test message")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
