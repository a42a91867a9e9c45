package order

type Status string

const (
	StatusPending       Status = "pending"
	StatusConfirmed     Status = "confirmed"
	StatusProcessing    Status = "processing"
	StatusCompleted     Status = "completed"
	StatusCancelled     Status = "cancelled"
	StatusPaymentFailed Status = "payment_failed"
)

var validStatuses = map[Status]struct{}{
	StatusPending:       {},
	StatusConfirmed:     {},
	StatusProcessing:    {},
	StatusCompleted:     {},
	StatusCancelled:     {},
	StatusPaymentFailed: {},
}

// IsValid reports whether s is a recognized order status.
func (s Status) IsValid() bool {
	_, ok := validStatuses[s]
	return ok
}
