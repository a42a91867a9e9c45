package checkout

import (
	"errors"
	"fmt"
)

// ErrEmptyCart rejects a checkout attempted with no items.
var ErrEmptyCart = errors.New("cart is empty, nothing to check out")

// MissingFieldError names the required customer field that was left blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required customer field: " + e.Field
}

// EngravingQuantityError reports an engraving request on fewer switch units
// than the order minimum, carrying both numbers so the caller can render an
// actionable message.
type EngravingQuantityError struct {
	Current  int
	Required int
}

func (e *EngravingQuantityError) Error() string {
	return fmt.Sprintf("engraving requires at least %d switches per order, cart has %d", e.Required, e.Current)
}

// UnsupportedPaymentMethodError reports a payment method outside the
// recognized set.
type UnsupportedPaymentMethodError struct {
	Method string
}

func (e *UnsupportedPaymentMethodError) Error() string {
	return "unsupported payment method: " + e.Method
}

// IsValidationError reports whether err belongs to the checkout validation
// taxonomy, as opposed to a downstream failure. Validation errors call for
// corrected input; downstream failures allow an immediate retry.
func IsValidationError(err error) bool {
	var mf *MissingFieldError
	var eq *EngravingQuantityError
	var pm *UnsupportedPaymentMethodError
	return errors.Is(err, ErrEmptyCart) ||
		errors.As(err, &mf) ||
		errors.As(err, &eq) ||
		errors.As(err, &pm)
}
