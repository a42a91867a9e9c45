package http_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httphandler "github.com/sohub23/Smart-Home-sub003/internal/http"
	"github.com/sohub23/Smart-Home-sub003/internal/order"
	"github.com/sohub23/Smart-Home-sub003/internal/payment"
)

type validatorMock struct {
	ValidateFunc func(ctx context.Context, valID string) (*payment.ValidationResult, error)
}

func (m *validatorMock) Validate(ctx context.Context, valID string) (*payment.ValidationResult, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, valID)
	}
	return &payment.ValidationResult{Status: "VALID"}, nil
}

func callbackForm(status string) url.Values {
	form := url.Values{}
	form.Set("tran_id", "TXN1")
	form.Set("val_id", "val-1")
	form.Set("status", status)
	form.Set("amount", "2500.00")
	form.Set("currency", "BDT")
	form.Set("value_a", "order-1")
	form.Set("value_c", "online")
	return form
}

func postCallback(h http.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/payment/x", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h(w, r)
	return w
}

func knownOrderRepo(t *testing.T) (*orderRepoMock, *[]order.Status) {
	t.Helper()
	var statuses []order.Status
	repo := &orderRepoMock{
		GetByTransactionIDFunc: func(ctx context.Context, tranID string) (*order.Order, error) {
			if tranID != "TXN1" {
				return nil, sql.ErrNoRows
			}
			return &order.Order{ID: "order-1", TransactionID: "TXN1", Status: order.StatusPending}, nil
		},
		UpdateStatusFunc: func(ctx context.Context, orderID string, status order.Status, reason string) error {
			require.Equal(t, "order-1", orderID)
			statuses = append(statuses, status)
			return nil
		},
	}
	return repo, &statuses
}

func TestPaymentSuccess(t *testing.T) {
	repo, statuses := knownOrderRepo(t)
	h := httphandler.NewPaymentHandler(repo, &validatorMock{}, "https://shop.example", testLogger())

	w := postCallback(h.Success, callbackForm("VALID"))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "https://shop.example/payment/success?tran=TXN1", w.Header().Get("Location"))
	require.Len(t, *statuses, 1)
	assert.Equal(t, order.StatusConfirmed, (*statuses)[0])
}

func TestPaymentSuccessFailsValidation(t *testing.T) {
	repo, statuses := knownOrderRepo(t)
	v := &validatorMock{ValidateFunc: func(ctx context.Context, valID string) (*payment.ValidationResult, error) {
		return &payment.ValidationResult{Status: "INVALID_TRANSACTION"}, nil
	}}
	h := httphandler.NewPaymentHandler(repo, v, "https://shop.example", testLogger())

	w := postCallback(h.Success, callbackForm("VALID"))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/payment/failed")
	require.Len(t, *statuses, 1)
	assert.Equal(t, order.StatusPaymentFailed, (*statuses)[0])
}

func TestPaymentFail(t *testing.T) {
	repo, statuses := knownOrderRepo(t)
	h := httphandler.NewPaymentHandler(repo, nil, "https://shop.example", testLogger())

	form := callbackForm("FAILED")
	form.Set("error", "insufficient funds")
	w := postCallback(h.Fail, form)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	require.Len(t, *statuses, 1)
	assert.Equal(t, order.StatusPaymentFailed, (*statuses)[0])
}

func TestPaymentCancel(t *testing.T) {
	repo, statuses := knownOrderRepo(t)
	h := httphandler.NewPaymentHandler(repo, nil, "https://shop.example", testLogger())

	w := postCallback(h.Cancel, callbackForm("CANCELLED"))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/payment/cancelled")
	require.Len(t, *statuses, 1)
	assert.Equal(t, order.StatusCancelled, (*statuses)[0])
}

func TestIPN(t *testing.T) {
	t.Run("valid payment confirms the order", func(t *testing.T) {
		repo, statuses := knownOrderRepo(t)
		h := httphandler.NewPaymentHandler(repo, nil, "https://shop.example", testLogger())

		w := postCallback(h.IPN, callbackForm("VALID"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "OK", w.Body.String())
		require.Len(t, *statuses, 1)
		assert.Equal(t, order.StatusConfirmed, (*statuses)[0])
	})

	t.Run("unknown transaction still answers OK", func(t *testing.T) {
		repo, statuses := knownOrderRepo(t)
		h := httphandler.NewPaymentHandler(repo, nil, "https://shop.example", testLogger())

		form := callbackForm("VALID")
		form.Set("tran_id", "TXN-unknown")
		w := postCallback(h.IPN, form)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, *statuses)
	})

	t.Run("unrecognized status is ignored", func(t *testing.T) {
		repo, statuses := knownOrderRepo(t)
		h := httphandler.NewPaymentHandler(repo, nil, "https://shop.example", testLogger())

		w := postCallback(h.IPN, callbackForm("UNATTEMPTED"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, *statuses)
	})
}
