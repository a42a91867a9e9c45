package http

import (
	"encoding/json"
	"net/http"

	validatorv10 "github.com/go-playground/validator/v10"
)

var validate = validatorv10.New()

// decodeAndValidate binds the JSON body into out and runs struct
// validation. On failure it writes a 400 response and returns false so the
// handler can short-circuit.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeErrorDetail(w, http.StatusBadRequest, "invalid_request_body", err.Error(), nil)
		return false
	}

	if err := validate.Struct(out); err != nil {
		writeErrorDetail(w, http.StatusBadRequest, "validation_failed", "request validation failed",
			map[string]any{"fields": validationErrorsToMap(err)})
		return false
	}
	return true
}

func validationErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			out[fe.StructNamespace()] = fe.Tag()
		}
	} else {
		out["error"] = err.Error()
	}
	return out
}
