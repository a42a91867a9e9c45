package mailer

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/sohub23/Smart-Home-sub003/internal/order"
	"github.com/sohub23/Smart-Home-sub003/internal/quote"
)

// html/template escapes every interpolated value, so engraving text that
// contains markup-significant characters renders inert in the mail body.
var orderConfirmationHTML = template.Must(template.New("orderConfirmation").Parse(`<html>
<body>
<h2>Thank you for your order, {{.Customer.Name}}!</h2>
<p>Order <strong>{{.OrderNumber}}</strong> has been received and is being processed.</p>
<table border="1" cellpadding="6" cellspacing="0">
  <tr><th>Product</th><th>Qty</th><th>Unit Price</th></tr>
  {{range .Items}}<tr>
    <td>{{.ProductName}}{{if .Engraving}} (engraved: {{.Engraving}}){{end}}</td>
    <td>{{.Quantity}}</td>
    <td>{{printf "%.0f" .UnitPrice}} BDT</td>
  </tr>{{end}}
</table>
<p>Total: <strong>{{printf "%.0f" .TotalAmount}} BDT</strong></p>
<p>Payment method: {{.PaymentMethod}}</p>
<p>We will deliver to: {{.Customer.Address}}</p>
</body>
</html>`))

var quoteReceivedHTML = template.Must(template.New("quoteReceived").Parse(`<html>
<body>
<h2>We received your quote request, {{.Customer.Name}}</h2>
<p>Quote <strong>{{.QuoteNumber}}</strong> totals {{printf "%.0f" .TotalAmount}} BDT.</p>
{{if .PhysicalVisitRequested}}<p>Our team will contact you to schedule a site visit.</p>{{end}}
{{if .NeedExpertHelp}}<p>An expert will reach out to walk you through the configuration.</p>{{end}}
</body>
</html>`))

// RenderOrderConfirmation produces the HTML and plain-text bodies of the
// order confirmation mail.
func RenderOrderConfirmation(o *order.Order) (html, text string, err error) {
	var buf strings.Builder
	if err := orderConfirmationHTML.Execute(&buf, o); err != nil {
		return "", "", fmt.Errorf("render order confirmation: %w", err)
	}

	var tb strings.Builder
	fmt.Fprintf(&tb, "Thank you for your order, %s!\n\n", o.Customer.Name)
	fmt.Fprintf(&tb, "Order %s\n", o.OrderNumber)
	for _, it := range o.Items {
		fmt.Fprintf(&tb, "- %s x%d @ %.0f BDT\n", it.ProductName, it.Quantity, it.UnitPrice)
	}
	fmt.Fprintf(&tb, "\nTotal: %.0f BDT\nPayment method: %s\n", o.TotalAmount, o.PaymentMethod)

	return buf.String(), tb.String(), nil
}

// RenderQuoteReceived produces the HTML and plain-text bodies of the quote
// acknowledgement mail.
func RenderQuoteReceived(q *quote.Quote) (html, text string, err error) {
	var buf strings.Builder
	if err := quoteReceivedHTML.Execute(&buf, q); err != nil {
		return "", "", fmt.Errorf("render quote received: %w", err)
	}

	var tb strings.Builder
	fmt.Fprintf(&tb, "We received your quote request, %s\n\n", q.Customer.Name)
	fmt.Fprintf(&tb, "Quote %s totals %.0f BDT.\n", q.QuoteNumber, q.TotalAmount)
	if q.PhysicalVisitRequested {
		tb.WriteString("Our team will contact you to schedule a site visit.\n")
	}

	return buf.String(), tb.String(), nil
}
