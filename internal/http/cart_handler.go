package http

import (
	"errors"
	"net/http"

	"github.com/sohub23/Smart-Home-sub003/internal/cart"
)

type CartHandler struct {
	sessions *cart.SessionStore
}

func NewCartHandler(sessions *cart.SessionStore) *CartHandler {
	return &CartHandler{sessions: sessions}
}

type cartView struct {
	Items      []cart.Item `json:"items"`
	TotalPrice float64     `json:"totalPrice"`
	ItemCount  int         `json:"itemCount"`
}

func viewOf(c *cart.Cart) cartView {
	return cartView{
		Items:      c.Items(),
		TotalPrice: c.Total(),
		ItemCount:  c.ItemCount(),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing sessionId")
		return
	}

	c := h.sessions.Get(sessionID)
	if c == nil {
		writeError(w, http.StatusNotFound, "cart not found")
		return
	}

	writeJSON(w, http.StatusOK, viewOf(c))
}

type addItemRequest struct {
	ID        string         `json:"id" validate:"required"`
	Name      string         `json:"name" validate:"required"`
	UnitPrice float64        `json:"unitPrice" validate:"gte=0"`
	Quantity  int            `json:"quantity" validate:"required,min=1"`
	Category  string         `json:"category"`
	Meta      *cart.ItemMeta `json:"meta,omitempty"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing sessionId")
		return
	}

	var body addItemRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}

	c := h.sessions.GetOrCreate(sessionID)
	err := c.AddItem(cart.Item{
		ID:        body.ID,
		Name:      body.Name,
		UnitPrice: body.UnitPrice,
		Quantity:  body.Quantity,
		Category:  body.Category,
		Meta:      body.Meta,
	})
	if err != nil {
		if errors.Is(err, cart.ErrInvalidItem) {
			writeErrorDetail(w, http.StatusBadRequest, "invalid_item", err.Error(), nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to add item")
		return
	}

	writeJSON(w, http.StatusOK, viewOf(c))
}

// delta=0 is allowed and leaves the cart untouched, matching
// Cart.UpdateQuantity's no-op contract.
type updateQuantityRequest struct {
	Delta int `json:"delta"`
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	itemID := r.PathValue("itemId")
	if sessionID == "" || itemID == "" {
		writeError(w, http.StatusBadRequest, "missing sessionId or itemId")
		return
	}

	var body updateQuantityRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}

	c := h.sessions.Get(sessionID)
	if c == nil {
		writeError(w, http.StatusNotFound, "cart not found")
		return
	}

	c.UpdateQuantity(itemID, body.Delta)
	writeJSON(w, http.StatusOK, viewOf(c))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	itemID := r.PathValue("itemId")
	if sessionID == "" || itemID == "" {
		writeError(w, http.StatusBadRequest, "missing sessionId or itemId")
		return
	}

	c := h.sessions.Get(sessionID)
	if c == nil {
		writeError(w, http.StatusNotFound, "cart not found")
		return
	}

	c.RemoveItem(itemID)
	writeJSON(w, http.StatusOK, viewOf(c))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing sessionId")
		return
	}

	if c := h.sessions.Get(sessionID); c != nil {
		c.Clear()
	}
	h.sessions.Drop(sessionID)

	writeJSON(w, http.StatusOK, map[string]string{"status": "cart cleared"})
}
