package jwt

import (
	"fmt"
	"slices"
)

// Expected is a TokenValidator which performs simple checks
// between standard claims values.
//
// Usage:
//
//	expected := jwt.Expected{
//		Issuer: "my-app",
//	}
//	claims, err := jwt.Verify(token, "HS256", key, expected)
type Expected struct {
	ID       string   // "jti"
	Issuer   string   // "iss"
	Subject  string   // "sub"
	Audience []string // "aud"
}

var _ TokenValidator = Expected{}

// ValidateToken completes the TokenValidator interface.
// It returns an ErrInvalidClaim error if a non-empty field
// of Expected does not match the corresponding claim.
func (e Expected) ValidateToken(token string, c Claims, err error) error {
	if err != nil {
		return err
	}

	if v := e.ID; v != "" && v != c.ID() {
		return unexpected("jti")
	}

	if v := e.Issuer; v != "" && v != c.Issuer() {
		return unexpected("iss")
	}

	if v := e.Subject; v != "" && v != c.Subject() {
		return unexpected("sub")
	}

	if len(e.Audience) > 0 && !slices.Equal(e.Audience, c.Audience()) {
		return unexpected("aud")
	}

	return nil
}

func unexpected(name string) error {
	return newError(KindInvalidClaim, fmt.Sprintf("unexpected %q claim", name), nil)
}
