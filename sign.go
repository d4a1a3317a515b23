package jwt

import (
	"time"

	"github.com/google/uuid"
)

// Encode signs and generates a new token.
//
// The claims is the payload, the actual body of the token, it must
// serialize to a JSON object (a map, Claims or a struct).
// Note that the payload part is not encrypted,
// therefore it should NOT contain any private information.
//
// The "alg" argument selects the algorithm by name, an empty value means "HS256".
// The key is the HMAC shared secret or the PEM encoded RSA private key.
// The extraHeader fields, if any, are merged into the header;
// "typ" is always "JWT" and "alg" is always the selected algorithm.
//
// Example Code:
//
//	token, err := jwt.Encode(jwt.Claims{"sub": "alice"}, []byte("secret"), "HS256", nil)
func Encode(claims any, key []byte, alg string, extraHeader Map) (string, error) {
	if claims == nil {
		return "", newError(KindType, "claims must be a JSON object", nil)
	}

	if len(key) == 0 {
		return "", newError(KindType, "key must be non-empty", nil)
	}

	if alg == "" {
		alg = HS256.Name()
	}

	a, err := ParseAlg(alg)
	if err != nil {
		return "", err
	}

	return encodeToken(a, key, claims, extraHeader)
}

// Sign is the typed variant of Encode, it accepts a registered algorithm value
// and optional SignOption values to set the standard claims and headers.
//
// Example Code:
//
//	token, err := jwt.Sign(jwt.HS256, []byte("secret"), jwt.Map{
//	  "foo": "bar",
//	}, jwt.MaxAge(15*time.Minute), jwt.WithID())
func Sign(alg Alg, key []byte, claims any, opts ...SignOption) (string, error) {
	if len(key) == 0 {
		return "", newError(KindType, "key must be non-empty", nil)
	}

	if len(opts) == 0 {
		if claims == nil {
			return "", newError(KindType, "claims must be a JSON object", nil)
		}

		return encodeToken(alg, key, claims, nil)
	}

	s := signer{}
	if claims != nil {
		c, err := toClaims(claims)
		if err != nil {
			return "", err
		}
		s.claims = c
	} else {
		s.claims = make(Claims)
	}

	for _, opt := range opts {
		opt(&s)
	}

	return encodeToken(alg, key, s.claims, s.header)
}

type signer struct {
	claims Claims
	header Map
}

// SignOption is just a helper which sets the standard claims
// and extra headers at the `Sign` function.
type SignOption func(*signer)

// MaxAge is a SignOption to set the expiration "exp", "iat" JWT standard claims.
//
// If maxAge > second then sets expiration to the token.
// See the `Clock` package-level variable to modify
// the current time function.
func MaxAge(maxAge time.Duration) SignOption {
	return func(s *signer) {
		if maxAge <= time.Second {
			return
		}

		now := Clock()
		s.claims["exp"] = now.Add(maxAge).Unix()
		s.claims["iat"] = now.Unix()
	}
}

// WithID is a SignOption which sets a random "jti" claim,
// unless the claims already carry one.
func WithID() SignOption {
	return func(s *signer) {
		if s.claims.ID() == "" {
			s.claims["jti"] = NewID()
		}
	}
}

// WithClaims is a SignOption to set multiple claims at once.
// The given values override the ones of the claims argument.
func WithClaims(claims Map) SignOption {
	return func(s *signer) {
		for k, v := range claims {
			s.claims[k] = v
		}
	}
}

// WithHeader is a SignOption to add extra header fields, e.g. "kid".
// The "typ" and "alg" fields cannot be overridden.
func WithHeader(header Map) SignOption {
	return func(s *signer) {
		if s.header == nil {
			s.header = make(Map, len(header))
		}

		for k, v := range header {
			s.header[k] = v
		}
	}
}

// NewID returns a new random (version 4) UUID string, suitable for the "jti" claim.
func NewID() string {
	return uuid.NewString()
}

// toClaims returns a copy of "claims" as a Claims map.
func toClaims(claims any) (Claims, error) {
	switch c := claims.(type) {
	case Claims:
		return copyClaims(c), nil
	case map[string]any:
		return copyClaims(c), nil
	}

	b, err := Marshal(claims)
	if err != nil {
		return nil, newError(KindType, "claims are not JSON serializable", err)
	}

	var c Claims
	if err = Unmarshal(b, &c); err != nil || c == nil {
		return nil, newError(KindType, "claims must be a JSON object", err)
	}

	return c, nil
}

func copyClaims(src map[string]any) Claims {
	dst := make(Claims, len(src))
	for k, v := range src {
		dst[k] = v
	}

	return dst
}
