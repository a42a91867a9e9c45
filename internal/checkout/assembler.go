// Package checkout turns a session cart plus customer details into an
// immutable order record and a gateway-shaped payment request. It performs
// no I/O itself: persistence, the gateway call and email dispatch belong to
// its callers.
package checkout

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sohub23/Smart-Home-sub003/internal/cart"
	"github.com/sohub23/Smart-Home-sub003/internal/order"
	"github.com/sohub23/Smart-Home-sub003/internal/payment"
)

// PaymentMethod is the checkout option the customer picked.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentOnline         PaymentMethod = "online"

	// recorded on zero-total orders (consultations, free services)
	paymentFree = "free"
)

// MinEngravingSwitchQuantity is the per-order floor of switch units required
// before engraving is accepted.
const MinEngravingSwitchQuantity = 10

// Settings carries the gateway credentials, callback URLs and the fixed
// single-region defaults stamped onto every payment request.
type Settings struct {
	StoreID       string
	StorePassword string
	Currency      string

	SuccessURL string
	FailURL    string
	CancelURL  string
	IPNURL     string

	City     string
	State    string
	Postcode string
	Country  string

	ProductName     string
	ProductCategory string
	ProductProfile  string
	ShippingMethod  string
}

// Assembler validates checkout input and assembles the order and payment
// request. It is stateless between calls; time and randomness only feed the
// generated identifiers.
type Assembler struct {
	settings Settings
	now      func() time.Time
	entropy  func() string
}

// NewAssembler returns an assembler using the wall clock and a UUID-derived
// random component for transaction identifiers.
func NewAssembler(s Settings) *Assembler {
	return &Assembler{
		settings: s,
		now:      time.Now,
		entropy:  randomSuffix,
	}
}

// randomSuffix yields 12 hex characters of UUID randomness, wide enough
// that concurrent checkout attempts across sessions do not collide.
func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Assemble validates the tuple fail-fast and, on success, returns the order
// snapshot plus the gateway request. Validation failure leaves the cart and
// any prior orders untouched.
func (a *Assembler) Assemble(c *cart.Cart, cust order.Customer, method PaymentMethod) (*order.Order, *payment.Request, error) {
	items := c.Items()
	if len(items) == 0 {
		return nil, nil, ErrEmptyCart
	}

	if err := requireCustomerFields(cust); err != nil {
		return nil, nil, err
	}

	if err := checkEngravingMinimum(items); err != nil {
		return nil, nil, err
	}

	if method != PaymentCashOnDelivery && method != PaymentOnline {
		return nil, nil, &UnsupportedPaymentMethodError{Method: string(method)}
	}

	var total float64
	for _, it := range items {
		total += it.Subtotal()
	}

	now := a.now().UTC()
	tranID := a.transactionID(now)

	recordedMethod := string(method)
	if total == 0 {
		recordedMethod = paymentFree
	}

	o := &order.Order{
		ID:            uuid.NewString(),
		OrderNumber:   "ORD" + strconv.FormatInt(now.UnixMilli(), 10),
		TransactionID: tranID,
		Customer:      cust,
		Items:         orderItems(items),
		TotalAmount:   total,
		PaymentMethod: recordedMethod,
		Status:        order.StatusPending,
		CreatedAt:     now,
	}

	req := a.paymentRequest(o, now)

	return o, req, nil
}

// transactionID is URL-safe ASCII alphanumeric: a millisecond timestamp
// plus a random suffix, so concurrent attempts from different sessions stay
// pairwise distinct without a central counter.
func (a *Assembler) transactionID(now time.Time) string {
	return "TXN" + strconv.FormatInt(now.UnixMilli(), 10) + a.entropy()
}

func requireCustomerFields(cust order.Customer) error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", cust.Name},
		{"email", cust.Email},
		{"phone", cust.Phone},
		{"address", cust.Address},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &MissingFieldError{Field: f.name}
		}
	}
	return nil
}

// checkEngravingMinimum enforces the switch engraving floor: once any
// switch line carries engraving text, the whole order must contain at least
// MinEngravingSwitchQuantity switch units.
func checkEngravingMinimum(items []cart.Item) error {
	engravingRequested := false
	switchQuantity := 0
	for _, it := range items {
		if !strings.Contains(strings.ToLower(it.Name), "switch") {
			continue
		}
		switchQuantity += it.Quantity
		if it.Meta != nil && it.Meta.Engraving != "" {
			engravingRequested = true
		}
	}

	if engravingRequested && switchQuantity < MinEngravingSwitchQuantity {
		return &EngravingQuantityError{
			Current:  switchQuantity,
			Required: MinEngravingSwitchQuantity,
		}
	}
	return nil
}

func orderItems(items []cart.Item) []order.Item {
	out := make([]order.Item, 0, len(items))
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
		out = append(out, oi)
	}
	return out
}

func (a *Assembler) paymentRequest(o *order.Order, now time.Time) *payment.Request {
	s := a.settings

	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		// order items are plain structs; this cannot fail in practice
		itemsJSON = []byte("[]")
	}

	return &payment.Request{
		StoreID:       s.StoreID,
		StorePassword: s.StorePassword,

		TotalAmount: o.TotalAmount,
		Currency:    s.Currency,
		TranID:      o.TransactionID,

		SuccessURL: s.SuccessURL,
		FailURL:    s.FailURL,
		CancelURL:  s.CancelURL,
		IPNURL:     s.IPNURL,

		CustomerName:    o.Customer.Name,
		CustomerEmail:   o.Customer.Email,
		CustomerAddress: o.Customer.Address,
		CustomerPhone:   o.Customer.Phone,
		City:            s.City,
		State:           s.State,
		Postcode:        s.Postcode,
		Country:         s.Country,

		ProductName:     s.ProductName,
		ProductCategory: s.ProductCategory,
		ProductProfile:  s.ProductProfile,
		ShippingMethod:  s.ShippingMethod,
		NumOfItems:      len(o.Items),

		OrderID:       o.ID,
		ItemsJSON:     string(itemsJSON),
		PaymentMethod: o.PaymentMethod,
		SubmittedAt:   now.Format(time.RFC3339),
	}
}
