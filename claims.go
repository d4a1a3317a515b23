package jwt

import (
	"encoding/json"
	"fmt"
	"time"
)

// Claims holds the payload of a token: an arbitrary JSON object.
//
// Two keys are checked by Verify and Decode:
//   - "exp": a number of seconds since epoch, the token is invalid at or after it.
//   - "nbf": a number of seconds since epoch, the token is invalid before it.
//
// Both are optional but must be numeric when present, fractional
// seconds are honored.
// Claims decoded from a token hold JSON numbers as float64.
type Claims map[string]any

// Expiry returns the "exp" claim and whether it is present and numeric.
func (c Claims) Expiry() (float64, bool) {
	return number(c["exp"])
}

// NotBefore returns the "nbf" claim and whether it is present and numeric.
func (c Claims) NotBefore() (float64, bool) {
	return number(c["nbf"])
}

// IssuedAt returns the "iat" claim and whether it is present and numeric.
func (c Claims) IssuedAt() (float64, bool) {
	return number(c["iat"])
}

// ID returns the "jti" claim or empty.
func (c Claims) ID() string {
	s, _ := c["jti"].(string)
	return s
}

// Issuer returns the "iss" claim or empty.
func (c Claims) Issuer() string {
	s, _ := c["iss"].(string)
	return s
}

// Subject returns the "sub" claim or empty.
func (c Claims) Subject() string {
	s, _ := c["sub"].(string)
	return s
}

// Audience returns the "aud" claim, which can be
// either a single string or an array of strings.
func (c Claims) Audience() []string {
	switch v := c["aud"].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		aud := make([]string, 0, len(v))
		for _, s := range v {
			if s, ok := s.(string); ok {
				aud = append(aud, s)
			}
		}
		return aud
	default:
		return nil
	}
}

// Timestamp converts a numeric claim to time.
func Timestamp(v float64) time.Time {
	sec := int64(v)
	return time.Unix(sec, int64((v-float64(sec))*float64(time.Second)))
}

// MaxAgeMap is a helper to set "exp" and "iat" claims to a map claims.
// Usage:
// claims := jwt.Claims{"foo": "bar"}
// jwt.MaxAgeMap(15 * time.Minute, claims)
// jwt.Encode(claims, key, "HS256", nil)
func MaxAgeMap(maxAge time.Duration, claims Claims) {
	if claims == nil {
		return
	}

	now := Clock()
	if claims["exp"] == nil {
		claims["exp"] = now.Add(maxAge).Unix()
		claims["iat"] = now.Unix()
	}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// checkNumericClaims rejects "exp" and "nbf" claims that are present but not numbers.
func checkNumericClaims(claims Claims) error {
	for _, name := range [...]string{"exp", "nbf"} {
		v, present := claims[name]
		if !present {
			continue
		}

		if _, ok := number(v); !ok {
			return newError(KindInvalidClaim, fmt.Sprintf("%q claim must be a number", name), nil)
		}
	}

	return nil
}

// unixSeconds returns "t" as seconds since epoch, keeping the fraction,
// so a fractional "exp" or "nbf" is compared at sub-second resolution.
func unixSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
}

func validateClaims(t time.Time, claims Claims) error {
	now := unixSeconds(t)

	if exp, ok := claims.Expiry(); ok {
		if now >= exp {
			return ErrTokenExpired
		}
	}

	if nbf, ok := claims.NotBefore(); ok {
		if now < nbf {
			return ErrTokenNotYetValid
		}
	}

	return nil
}
