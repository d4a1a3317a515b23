package jwt

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBlocklist(t *testing.T) {
	now := time.Date(2020, 10, 26, 1, 1, 1, 0, time.UTC)
	setClock(t, now)

	b := NewBlocklist(0)

	token, err := Sign(testAlg, testSecret, Map{"username": "gopher"}, MaxAge(time.Minute))
	if err != nil {
		t.Fatal(err)
	}

	claims, err := Verify(token, testAlg.Name(), testSecret, b)
	if err != nil {
		t.Fatal(err)
	}

	b.InvalidateToken(token, claims)
	if count := b.Count(); count != 1 {
		t.Fatalf("expected 1 blocked token but got: %d", count)
	}

	if !b.Has(token) {
		t.Fatalf("expected token to be blocked")
	}

	if _, err = Verify(token, testAlg.Name(), testSecret, b); !errors.Is(err, ErrBlocked) {
		t.Fatalf("expected error: ErrBlocked but got: %v", err)
	}

	// an expired token is removed on verification.
	setClock(t, now.Add(time.Minute))
	if _, err = Verify(token, testAlg.Name(), testSecret, b); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected error: ErrTokenExpired but got: %v", err)
	}

	if b.Has(token) {
		t.Fatalf("expected the expired token to be removed")
	}

	if b.Has("") {
		t.Fatalf("expected an empty token to never be blocked")
	}
}

func TestBlocklistAlteredToken(t *testing.T) {
	b := NewBlocklist(0)

	token, err := Sign(testAlg, testSecret, Map{"sub": "alice"}, MaxAge(time.Minute))
	if err != nil {
		t.Fatal(err)
	}

	claims, err := Verify(token, testAlg.Name(), testSecret, b)
	if err != nil {
		t.Fatal(err)
	}

	b.InvalidateToken(token, claims)

	// a blocked token cannot get a second spelling.
	for _, altered := range []string{token + "\r\n\r\n", token + "\n", "\n" + token, token + "="} {
		if _, err = Verify(altered, testAlg.Name(), testSecret, b); !errors.Is(err, ErrTokenForm) {
			t.Fatalf("%q: expected error: ErrTokenForm but got: %v", altered, err)
		}
	}
}

func TestBlocklistGC(t *testing.T) {
	now := time.Date(2020, 10, 26, 1, 1, 1, 0, time.UTC)
	setClock(t, now)

	b := NewBlocklist(0)
	b.InvalidateToken("a", Claims{"exp": float64(now.Add(time.Second).Unix())})
	b.InvalidateToken("b", Claims{"exp": float64(now.Add(time.Hour).Unix())})
	b.InvalidateToken("c", Claims{})

	if removed := b.GC(); removed != 0 {
		t.Fatalf("expected no removed tokens but got: %d", removed)
	}

	setClock(t, now.Add(time.Second))
	if removed := b.GC(); removed != 1 {
		t.Fatalf("expected 1 removed token but got: %d", removed)
	}

	setClock(t, now.Add(24*time.Hour))
	if removed := b.GC(); removed != 1 {
		t.Fatalf("expected 1 removed token but got: %d", removed)
	}

	// no exp, blocked until deleted.
	if !b.Has("c") || b.Count() != 1 {
		t.Fatalf("expected the token without exp to stay blocked")
	}

	b.Del("c")
	if b.Count() != 0 {
		t.Fatalf("expected an empty blocklist but got: %d", b.Count())
	}
}

func TestBlocklistContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBlocklistContext(ctx, time.Millisecond)
	b.InvalidateToken("expired", Claims{"exp": 1.0})

	deadline := time.Now().Add(5 * time.Second)
	for b.Count() > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected the gc to remove the expired token")
		}

		time.Sleep(time.Millisecond)
	}
}
