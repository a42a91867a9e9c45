package http

import (
	"log"
	"net/http"
	"strings"

	"github.com/sohub23/Smart-Home-sub003/internal/customer"
)

// CustomerHandler serves the back-office customer directory.
type CustomerHandler struct {
	customers customer.Repository
	logger    *log.Logger
}

func NewCustomerHandler(customers customer.Repository, logger *log.Logger) *CustomerHandler {
	return &CustomerHandler{customers: customers, logger: logger}
}

// List returns all customers; a non-empty q parameter narrows by name,
// email or phone.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	var (
		customers []customer.Customer
		err       error
	)
	if q != "" {
		customers, err = h.customers.Search(r.Context(), q)
	} else {
		customers, err = h.customers.List(r.Context())
	}
	if err != nil {
		h.logger.Printf("list customers: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load customers")
		return
	}
	writeJSON(w, http.StatusOK, customers)
}
