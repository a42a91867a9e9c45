package cart

import (
	"sync"
	"testing"
)

func TestSessionStore(t *testing.T) {
	t.Run("get or create is stable per session", func(t *testing.T) {
		s := NewSessionStore()
		a := s.GetOrCreate("sess-1")
		b := s.GetOrCreate("sess-1")
		if a != b {
			t.Fatalf("expected the same cart for the same session id")
		}
		if s.GetOrCreate("sess-2") == a {
			t.Fatalf("expected distinct carts for distinct sessions")
		}
	})

	t.Run("get does not create", func(t *testing.T) {
		s := NewSessionStore()
		if c := s.Get("absent"); c != nil {
			t.Fatalf("expected nil for unknown session, got %v", c)
		}
	})

	t.Run("drop removes the cart", func(t *testing.T) {
		s := NewSessionStore()
		_ = s.GetOrCreate("sess-1")
		s.Drop("sess-1")
		if c := s.Get("sess-1"); c != nil {
			t.Fatalf("expected cart gone after drop")
		}
	})
}

func TestSessionStoreConcurrentAccess(t *testing.T) {
	s := NewSessionStore()

	var wg sync.WaitGroup
	carts := make([]*Cart, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			carts[n] = s.GetOrCreate("shared")
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(carts); i++ {
		if carts[i] != carts[0] {
			t.Fatalf("concurrent GetOrCreate returned different carts")
		}
	}
}
