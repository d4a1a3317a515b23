package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type userClaims struct {
	Username string `json:"username"`
	Admin    bool   `json:"admin,omitempty"`
}

func TestSignMaxAge(t *testing.T) {
	now := time.Date(2020, 10, 26, 1, 1, 1, 0, time.UTC)
	setClock(t, now)

	token, err := Sign(testAlg, testSecret, Map{"foo": "bar"}, MaxAge(10*time.Minute))
	if err != nil {
		t.Fatal(err)
	}

	claims, err := Verify(token, testAlg.Name(), testSecret)
	if err != nil {
		t.Fatal(err)
	}

	if exp, _ := claims.Expiry(); exp != float64(now.Add(10*time.Minute).Unix()) {
		t.Fatalf("unexpected exp: %v", exp)
	}

	if iat, _ := claims.IssuedAt(); iat != float64(now.Unix()) {
		t.Fatalf("unexpected iat: %v", iat)
	}

	if claims["foo"] != "bar" {
		t.Fatalf("expected foo claim but got: %v", claims)
	}

	// a second or less does not set an expiration.
	token, err = Sign(testAlg, testSecret, Map{"foo": "bar"}, MaxAge(time.Second))
	if err != nil {
		t.Fatal(err)
	}

	claims, err = Verify(token, testAlg.Name(), testSecret)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := claims.Expiry(); ok {
		t.Fatalf("expected no exp but got: %v", claims)
	}

	// expires once the clock reaches exp.
	setClock(t, now.Add(10*time.Minute))
	token, err = Sign(testAlg, testSecret, nil, MaxAge(2*time.Second))
	if err != nil {
		t.Fatal(err)
	}

	setClock(t, now.Add(10*time.Minute+2*time.Second))
	if _, err = Verify(token, testAlg.Name(), testSecret); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected error: ErrTokenExpired but got: %v", err)
	}
}

func TestSignWithID(t *testing.T) {
	token, err := Sign(testAlg, testSecret, userClaims{Username: "gopher"}, WithID())
	if err != nil {
		t.Fatal(err)
	}

	claims, err := Verify(token, testAlg.Name(), testSecret)
	if err != nil {
		t.Fatal(err)
	}

	if _, err = uuid.Parse(claims.ID()); err != nil {
		t.Fatalf("expected a uuid jti but got: %q: %v", claims.ID(), err)
	}

	if claims["username"] != "gopher" {
		t.Fatalf("expected username claim but got: %v", claims)
	}

	// an existing jti is kept.
	token, err = Sign(testAlg, testSecret, Map{"jti": "my-id"}, WithID())
	if err != nil {
		t.Fatal(err)
	}

	claims, err = DecodeUnverified(token)
	if err != nil {
		t.Fatal(err)
	}

	if claims.ID() != "my-id" {
		t.Fatalf("expected jti: my-id but got: %q", claims.ID())
	}
}

func TestSignWithHeaderAndClaims(t *testing.T) {
	input := Map{"sub": "alice"}

	token, err := Sign(testAlg, testSecret, input,
		WithHeader(Map{"kid": "2024-01", "alg": "none", "typ": "JOSE"}),
		WithClaims(Map{"sub": "bob", "iss": "issuer"}),
	)
	if err != nil {
		t.Fatal(err)
	}

	header, err := DecodeHeader(token)
	if err != nil {
		t.Fatal(err)
	}

	if header["kid"] != "2024-01" || header["alg"] != "HS256" || header["typ"] != "JWT" {
		t.Fatalf("unexpected header: %v", header)
	}

	claims, err := Verify(token, testAlg.Name(), testSecret)
	if err != nil {
		t.Fatal(err)
	}

	if claims.Subject() != "bob" || claims.Issuer() != "issuer" {
		t.Fatalf("unexpected claims: %v", claims)
	}

	// the caller's map is never modified.
	if len(input) != 1 || input["sub"] != "alice" {
		t.Fatalf("expected the input claims to be untouched but got: %v", input)
	}
}

func TestSignInvalid(t *testing.T) {
	if _, err := Sign(testAlg, nil, Map{}); !errors.Is(err, ErrType) {
		t.Fatalf("expected error: ErrType but got: %v", err)
	}

	if _, err := Sign(testAlg, testSecret, nil); !errors.Is(err, ErrType) {
		t.Fatalf("expected error: ErrType but got: %v", err)
	}

	if _, err := Sign(Alg(0), testSecret, Map{}); !errors.Is(err, ErrUnsupportedAlg) {
		t.Fatalf("expected error: ErrUnsupportedAlg but got: %v", err)
	}

	if _, err := Sign(Alg(42), testSecret, Map{}, WithID()); !errors.Is(err, ErrUnsupportedAlg) {
		t.Fatalf("expected error: ErrUnsupportedAlg but got: %v", err)
	}

	if _, err := Sign(testAlg, testSecret, []string{"a"}, WithID()); !errors.Is(err, ErrType) {
		t.Fatalf("expected error: ErrType but got: %v", err)
	}
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	if a == b {
		t.Fatalf("expected unique ids")
	}

	id, err := uuid.Parse(a)
	if err != nil {
		t.Fatal(err)
	}

	if id.Version() != 4 {
		t.Fatalf("expected a version 4 uuid but got: %d", id.Version())
	}
}
