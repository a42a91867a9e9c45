package order

import "time"

// Customer holds the contact details captured at checkout.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Item is a line of a submitted order: a snapshot of the cart line at
// checkout time, never a live reference back into the cart.
type Item struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	Category     string  `json:"category"`
	Color        string  `json:"color,omitempty"`
	Engraving    string  `json:"engraving,omitempty"`
	Installation bool    `json:"installation,omitempty"`
}

// Order is the immutable record produced by checkout. Status transitions
// happen through the repository as payment callbacks arrive; the record
// itself is never rewritten by the checkout path.
type Order struct {
	ID            string    `json:"orderId"`
	OrderNumber   string    `json:"orderNumber"`
	TransactionID string    `json:"transactionId"`
	Customer      Customer  `json:"customer"`
	Items         []Item    `json:"items"`
	TotalAmount   float64   `json:"totalAmount"`
	PaymentMethod string    `json:"paymentMethod"`
	Status        Status    `json:"status"`
	FailureReason string    `json:"failureReason,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
