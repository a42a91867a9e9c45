package http

import (
	"net/http"

	"github.com/sohub23/Smart-Home-sub003/internal/notify"
)

// NotificationHandler serves the back-office notification feed.
type NotificationHandler struct {
	hub *notify.Hub
}

func NewNotificationHandler(hub *notify.Hub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

// Recent returns the latest notifications, newest first.
func (h *NotificationHandler) Recent(w http.ResponseWriter, r *http.Request) {
	msgs := h.hub.Recent()
	if msgs == nil {
		msgs = []notify.Message{}
	}
	writeJSON(w, http.StatusOK, msgs)
}
