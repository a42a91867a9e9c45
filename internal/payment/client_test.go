package payment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() *Request {
	return &Request{
		StoreID:       "teststore",
		StorePassword: "testpass",
		TotalAmount:   2500,
		Currency:      "BDT",
		TranID:        "TXN1700000000000abcdef123456",
		CustomerName:  "Rahim Uddin",
		CustomerEmail: "rahim@example.com",
		NumOfItems:    1,
		OrderID:       "order-1",
	}
}

func TestInitiateSuccess(t *testing.T) {
	var seen url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		seen = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"SUCCESS","GatewayPageURL":"https://sandbox.sslcommerz.com/pay/abc","sessionkey":"sess-1"}`))
	}))
	defer srv.Close()

	c := NewClientWithURLs("teststore", "testpass", srv.URL, srv.URL)

	res, err := c.Initiate(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://sandbox.sslcommerz.com/pay/abc", res.GatewayPageURL)
	assert.Equal(t, "sess-1", res.SessionKey)

	assert.Equal(t, "teststore", seen.Get("store_id"))
	assert.Equal(t, "2500.00", seen.Get("total_amount"))
	assert.Equal(t, "TXN1700000000000abcdef123456", seen.Get("tran_id"))
	assert.Equal(t, "order-1", seen.Get("value_a"))
}

func TestInitiateGatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"FAILED","failedreason":"store credential invalid"}`))
	}))
	defer srv.Close()

	c := NewClientWithURLs("teststore", "badpass", srv.URL, srv.URL)

	_, err := c.Initiate(context.Background(), testRequest())

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "store credential invalid", gwErr.Reason)
}

func TestInitiateNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClientWithURLs("teststore", "testpass", srv.URL, srv.URL)

	_, err := c.Initiate(context.Background(), testRequest())
	require.Error(t, err)

	var gwErr *GatewayError
	assert.False(t, errors.As(err, &gwErr), "transport failures must not look like gateway rejections")
}

func TestValidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "val-1", r.PostForm.Get("val_id"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"VALID","tran_id":"TXN1","amount":"2500.00","currency":"BDT"}`))
	}))
	defer srv.Close()

	c := NewClientWithURLs("teststore", "testpass", srv.URL, srv.URL)

	res, err := c.Validate(context.Background(), "val-1")
	require.NoError(t, err)
	assert.True(t, res.Valid())
	assert.Equal(t, "TXN1", res.TranID)
}

func TestValidationResultValid(t *testing.T) {
	assert.True(t, (&ValidationResult{Status: "VALID"}).Valid())
	assert.True(t, (&ValidationResult{Status: "VALIDATED"}).Valid())
	assert.False(t, (&ValidationResult{Status: "INVALID_TRANSACTION"}).Valid())
}

func TestParseCallback(t *testing.T) {
	form := url.Values{}
	form.Set("tran_id", "TXN1")
	form.Set("val_id", "val-1")
	form.Set("status", "VALID")
	form.Set("amount", "2500.00")
	form.Set("currency", "BDT")
	form.Set("error", "")
	form.Set("value_a", "order-1")
	form.Set("value_c", "online")

	cb := ParseCallback(form)
	assert.Equal(t, "TXN1", cb.TranID)
	assert.Equal(t, "val-1", cb.ValID)
	assert.Equal(t, "VALID", cb.Status)
	assert.Equal(t, "order-1", cb.OrderID)
	assert.Equal(t, "online", cb.PaymentMethod)
}
