package providers

import (
	"testing"
	"time"
)

func TestTokenCache(t *testing.T) {
	t.Run("miss on empty cache", func(t *testing.T) {
		c := NewTokenCache()
		if _, ok := c.Get("digikey"); ok {
			t.Fatal("expected miss on empty cache")
		}
	})

	t.Run("hit within lifetime", func(t *testing.T) {
		c := NewTokenCache()
		c.Put("digikey", "tok-1", 10*time.Minute)

		tok, ok := c.Get("digikey")
		if !ok {
			t.Fatal("expected hit")
		}
		if tok != "tok-1" {
			t.Fatalf("got token %q, want tok-1", tok)
		}
	})

	t.Run("expires early by the skew window", func(t *testing.T) {
		c := NewTokenCache()
		// Lifetime shorter than the skew: valid on the wire but treated
		// as expired immediately.
		c.Put("octopart", "tok-2", 30*time.Second)

		if _, ok := c.Get("octopart"); ok {
			t.Fatal("token inside the skew window should be a miss")
		}
	})

	t.Run("providers are independent", func(t *testing.T) {
		c := NewTokenCache()
		c.Put("digikey", "tok-dk", 10*time.Minute)

		if _, ok := c.Get("octopart"); ok {
			t.Fatal("octopart should not see digikey's token")
		}
	})

	t.Run("put overwrites", func(t *testing.T) {
		c := NewTokenCache()
		c.Put("digikey", "old", 10*time.Minute)
		c.Put("digikey", "new", 10*time.Minute)

		tok, _ := c.Get("digikey")
		if tok != "new" {
			t.Fatalf("got token %q, want new", tok)
		}
	})
}
