// Package payment talks to the SSLCommerz hosted-payment gateway: it shapes
// initiation requests, posts them, and parses the gateway's callbacks.
package payment

import (
	"net/url"
	"strconv"
)

// Request is the flat field set the SSLCommerz gwprocess v4 endpoint
// expects. Customer details are duplicated into the billing and shipping
// blocks because the storefront only ships to the ordering address.
type Request struct {
	StoreID       string
	StorePassword string

	TotalAmount float64
	Currency    string
	TranID      string

	SuccessURL string
	FailURL    string
	CancelURL  string
	IPNURL     string

	CustomerName    string
	CustomerEmail   string
	CustomerAddress string
	CustomerPhone   string
	City            string
	State           string
	Postcode        string
	Country         string

	ProductName     string
	ProductCategory string
	ProductProfile  string
	ShippingMethod  string
	NumOfItems      int

	// value_a..value_d passthrough slots echoed back on every callback
	OrderID       string
	ItemsJSON     string
	PaymentMethod string
	SubmittedAt   string
}

// Values encodes the request as the form payload the gateway consumes.
func (r *Request) Values() url.Values {
	v := url.Values{}
	v.Set("store_id", r.StoreID)
	v.Set("store_passwd", r.StorePassword)
	v.Set("total_amount", strconv.FormatFloat(r.TotalAmount, 'f', 2, 64))
	v.Set("currency", r.Currency)
	v.Set("tran_id", r.TranID)
	v.Set("success_url", r.SuccessURL)
	v.Set("fail_url", r.FailURL)
	v.Set("cancel_url", r.CancelURL)
	v.Set("ipn_url", r.IPNURL)

	v.Set("cus_name", r.CustomerName)
	v.Set("cus_email", r.CustomerEmail)
	v.Set("cus_add1", r.CustomerAddress)
	v.Set("cus_city", r.City)
	v.Set("cus_state", r.State)
	v.Set("cus_postcode", r.Postcode)
	v.Set("cus_country", r.Country)
	v.Set("cus_phone", r.CustomerPhone)

	v.Set("ship_name", r.CustomerName)
	v.Set("ship_add1", r.CustomerAddress)
	v.Set("ship_city", r.City)
	v.Set("ship_state", r.State)
	v.Set("ship_postcode", r.Postcode)
	v.Set("ship_country", r.Country)
	v.Set("ship_phone", r.CustomerPhone)

	v.Set("product_name", r.ProductName)
	v.Set("product_category", r.ProductCategory)
	v.Set("product_profile", r.ProductProfile)
	v.Set("shipping_method", r.ShippingMethod)
	v.Set("num_of_item", strconv.Itoa(r.NumOfItems))

	v.Set("value_a", r.OrderID)
	v.Set("value_b", r.ItemsJSON)
	v.Set("value_c", r.PaymentMethod)
	v.Set("value_d", r.SubmittedAt)

	return v
}
