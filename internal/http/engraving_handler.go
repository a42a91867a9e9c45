package http

import (
	"errors"
	"net/http"

	"github.com/sohub23/Smart-Home-sub003/internal/engraving"
)

type engravingRequest struct {
	Text string `json:"text"`
}

type engravingResponse struct {
	OK      bool   `json:"ok"`
	Value   string `json:"value,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// ValidateEngraving lets the shop UI check engraving text as the customer
// types, returning the canonical value to store on the cart item.
func ValidateEngraving(w http.ResponseWriter, r *http.Request) {
	var body engravingRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}

	value, err := engraving.Validate(body.Text)
	if err != nil {
		writeJSON(w, http.StatusOK, engravingResponse{
			OK:      false,
			Reason:  engravingReason(err),
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, engravingResponse{OK: true, Value: value})
}

func engravingReason(err error) string {
	switch {
	case errors.Is(err, engraving.ErrTooLong):
		return "too_long"
	case errors.Is(err, engraving.ErrTooShort):
		return "too_short"
	case errors.Is(err, engraving.ErrInvalidCharacters):
		return "invalid_characters"
	default:
		return "invalid"
	}
}
