package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cartpkg "github.com/sohub23/Smart-Home-sub003/internal/cart"
	httphandler "github.com/sohub23/Smart-Home-sub003/internal/http"
)

func addItemBody(t *testing.T, id string, qty int) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"id":        id,
		"name":      "Smart Switch",
		"unitPrice": 1200,
		"quantity":  qty,
	})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewBuffer(body)
}

func TestGetCart(t *testing.T) {
	t.Run("unknown session", func(t *testing.T) {
		h := httphandler.NewCartHandler(cartpkg.NewSessionStore())
		r := httptest.NewRequest(http.MethodGet, "/api/cart/sess-1", nil)
		r.SetPathValue("sessionId", "sess-1")
		w := httptest.NewRecorder()

		h.GetCart(w, r)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("existing session", func(t *testing.T) {
		sessions := cartpkg.NewSessionStore()
		c := sessions.GetOrCreate("sess-1")
		if err := c.AddItem(cartpkg.Item{ID: "sw-1", Name: "Smart Switch", UnitPrice: 1200, Quantity: 2}); err != nil {
			t.Fatalf("seed cart: %v", err)
		}

		h := httphandler.NewCartHandler(sessions)
		r := httptest.NewRequest(http.MethodGet, "/api/cart/sess-1", nil)
		r.SetPathValue("sessionId", "sess-1")
		w := httptest.NewRecorder()

		h.GetCart(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var view struct {
			TotalPrice float64 `json:"totalPrice"`
			ItemCount  int     `json:"itemCount"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if view.TotalPrice != 2400 || view.ItemCount != 2 {
			t.Fatalf("unexpected view: %+v", view)
		}
	})
}

func TestAddItem(t *testing.T) {
	t.Run("creates the session on first add", func(t *testing.T) {
		sessions := cartpkg.NewSessionStore()
		h := httphandler.NewCartHandler(sessions)

		r := httptest.NewRequest(http.MethodPost, "/api/cart/sess-1/items", addItemBody(t, "sw-1", 2))
		r.SetPathValue("sessionId", "sess-1")
		w := httptest.NewRecorder()

		h.AddItem(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if sessions.Get("sess-1") == nil {
			t.Fatalf("expected session created")
		}
	})

	t.Run("rejects invalid body", func(t *testing.T) {
		h := httphandler.NewCartHandler(cartpkg.NewSessionStore())

		r := httptest.NewRequest(http.MethodPost, "/api/cart/sess-1/items",
			strings.NewReader(`{"id":"","name":"x","quantity":0}`))
		r.SetPathValue("sessionId", "sess-1")
		w := httptest.NewRecorder()

		h.AddItem(w, r)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestUpdateQuantity(t *testing.T) {
	sessions := cartpkg.NewSessionStore()
	c := sessions.GetOrCreate("sess-1")
	_ = c.AddItem(cartpkg.Item{ID: "sw-1", Name: "Smart Switch", UnitPrice: 1200, Quantity: 2})

	h := httphandler.NewCartHandler(sessions)

	r := httptest.NewRequest(http.MethodPatch, "/api/cart/sess-1/items/sw-1",
		strings.NewReader(`{"delta":-2}`))
	r.SetPathValue("sessionId", "sess-1")
	r.SetPathValue("itemId", "sw-1")
	w := httptest.NewRecorder()

	h.UpdateQuantity(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := len(c.Items()); got != 0 {
		t.Fatalf("expected item removed at zero quantity, got %d lines", got)
	}
}

func TestUpdateQuantityZeroDelta(t *testing.T) {
	sessions := cartpkg.NewSessionStore()
	c := sessions.GetOrCreate("sess-1")
	_ = c.AddItem(cartpkg.Item{ID: "sw-1", Name: "Smart Switch", UnitPrice: 1200, Quantity: 2})

	h := httphandler.NewCartHandler(sessions)

	r := httptest.NewRequest(http.MethodPatch, "/api/cart/sess-1/items/sw-1",
		strings.NewReader(`{"delta":0}`))
	r.SetPathValue("sessionId", "sess-1")
	r.SetPathValue("itemId", "sw-1")
	w := httptest.NewRecorder()

	h.UpdateQuantity(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected zero delta to be a no-op, got %d", w.Code)
	}
	items := c.Items()
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected quantity unchanged, got %+v", items)
	}
}

func TestClearCart(t *testing.T) {
	sessions := cartpkg.NewSessionStore()
	c := sessions.GetOrCreate("sess-1")
	_ = c.AddItem(cartpkg.Item{ID: "sw-1", Name: "Smart Switch", UnitPrice: 1200, Quantity: 2})

	h := httphandler.NewCartHandler(sessions)

	r := httptest.NewRequest(http.MethodDelete, "/api/cart/sess-1", nil)
	r.SetPathValue("sessionId", "sess-1")
	w := httptest.NewRecorder()

	h.ClearCart(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if sessions.Get("sess-1") != nil {
		t.Fatalf("expected session dropped")
	}
}

func TestValidateEngravingEndpoint(t *testing.T) {
	post := func(t *testing.T, text string) (int, map[string]any) {
		t.Helper()
		body, _ := json.Marshal(map[string]string{"text": text})
		r := httptest.NewRequest(http.MethodPost, "/api/engraving/validate", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		httphandler.ValidateEngraving(w, r)

		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		return w.Code, resp
	}

	t.Run("valid text returns canonical value", func(t *testing.T) {
		code, resp := post(t, "  Living  Room ")
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if resp["ok"] != true || resp["value"] != "Living Room" {
			t.Fatalf("unexpected response: %v", resp)
		}
	})

	t.Run("too long text returns reason", func(t *testing.T) {
		code, resp := post(t, strings.Repeat("A", 15))
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if resp["ok"] != false || resp["reason"] != "too_long" {
			t.Fatalf("unexpected response: %v", resp)
		}
	})
}
