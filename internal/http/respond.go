package http

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeErrorDetail includes a machine-readable code next to the message so
// the shop UI can render field-level guidance.
func writeErrorDetail(w http.ResponseWriter, status int, code, msg string, detail map[string]any) {
	body := map[string]any{"error": code, "message": msg}
	for k, v := range detail {
		body[k] = v
	}
	writeJSON(w, status, body)
}
