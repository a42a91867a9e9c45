package payment

import "net/url"

// Callback is the form payload SSLCommerz posts to the success, fail,
// cancel and IPN endpoints. value_a..value_d echo back what the initiation
// request placed there.
type Callback struct {
	TranID       string
	ValID        string
	Status       string
	Amount       string
	Currency     string
	FailedReason string

	OrderID       string
	PaymentMethod string
}

// ParseCallback extracts the fields this service acts on from a callback
// form body.
func ParseCallback(form url.Values) Callback {
	return Callback{
		TranID:       form.Get("tran_id"),
		ValID:        form.Get("val_id"),
		Status:       form.Get("status"),
		Amount:       form.Get("amount"),
		Currency:     form.Get("currency"),
		FailedReason: form.Get("error"),

		OrderID:       form.Get("value_a"),
		PaymentMethod: form.Get("value_c"),
	}
}
