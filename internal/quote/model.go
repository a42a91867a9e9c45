package quote

import (
	"time"

	"github.com/sohub23/Smart-Home-sub003/internal/order"
)

// Quote is a saved configuration a visitor asked to be contacted about
// instead of paying immediately. It mirrors an order without a payment
// method.
type Quote struct {
	ID                     string       `json:"quoteId"`
	QuoteNumber            string       `json:"quoteNumber"`
	Customer               order.Customer `json:"customer"`
	Items                  []order.Item `json:"items"`
	TotalAmount            float64      `json:"totalAmount"`
	PhysicalVisitRequested bool         `json:"physicalVisitRequested"`
	NeedExpertHelp         bool         `json:"needExpertHelp"`
	Status                 string       `json:"status"`
	CreatedAt              time.Time    `json:"createdAt"`
}

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

var allowedStatuses = map[string]struct{}{
	StatusPending:   {},
	StatusApproved:  {},
	StatusRejected:  {},
	StatusCompleted: {},
}

// IsValidStatus reports whether s is an allowed quote status.
func IsValidStatus(s string) bool {
	_, ok := allowedStatuses[s]
	return ok
}
