package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestEnrich(t *testing.T) {
	token, err := Sign(testAlg, testSecret, Map{"sub": "alice", "role": "user"}, MaxAge(time.Hour), WithHeader(Map{"kid": "k1"}))
	if err != nil {
		t.Fatal(err)
	}

	enriched, err := Enrich(token, testAlg, testSecret, testSecret, Map{"role": "admin", "org": "acme"})
	if err != nil {
		t.Fatal(err)
	}

	claims, err := Verify(enriched, testAlg.Name(), testSecret)
	if err != nil {
		t.Fatal(err)
	}

	if claims.Subject() != "alice" || claims["role"] != "admin" || claims["org"] != "acme" {
		t.Fatalf("unexpected enriched claims: %v", claims)
	}

	original, err := DecodeUnverified(token)
	if err != nil {
		t.Fatal(err)
	}

	originalExp, _ := original.Expiry()
	if exp, _ := claims.Expiry(); exp != originalExp {
		t.Fatalf("expected exp: %v but got: %v", originalExp, exp)
	}

	header, err := DecodeHeader(enriched)
	if err != nil {
		t.Fatal(err)
	}

	if header["kid"] != "k1" || header["alg"] != "HS256" || header["typ"] != "JWT" {
		t.Fatalf("unexpected enriched header: %v", header)
	}
}

func TestEnrichRSA(t *testing.T) {
	privateKey, publicKey := mustLoadRSA(t)

	token, err := Encode(Claims{"sub": "alice"}, privateKey, "RS256", nil)
	if err != nil {
		t.Fatal(err)
	}

	enriched, err := Enrich(token, RS256, publicKey, privateKey, Map{"role": "admin"}, Expected{Subject: "alice"})
	if err != nil {
		t.Fatal(err)
	}

	claims, err := Verify(enriched, "RS256", publicKey)
	if err != nil {
		t.Fatal(err)
	}

	if claims["role"] != "admin" {
		t.Fatalf("unexpected enriched claims: %v", claims)
	}
}

func TestEnrichUnverified(t *testing.T) {
	if _, err := Enrich(testToken, testAlg, []byte("wrong-secret"), testSecret, Map{"role": "admin"}); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("expected error: ErrTokenSignature but got: %v", err)
	}

	if _, err := Enrich(testToken, HS512, testSecret, testSecret, nil); !errors.Is(err, ErrInvalidHeader) {
		t.Fatalf("expected error: ErrInvalidHeader but got: %v", err)
	}
}
