package jwt

import (
	"errors"
	"time"
)

// Leeway creates a TokenValidator that adds a buffer time before token expiration.
//
// This validator provides "leeway" by rejecting tokens that will expire within
// the specified duration, even if they are technically still valid. This is useful
// to prevent race conditions where a token expires between validation and use.
//
// The validation logic: if (now + leeway) >= expiration_time, reject the token.
//
// Example:
//
//	// Reject tokens expiring within 30 seconds
//	claims, err := jwt.Verify(token, "HS256", key, jwt.Leeway(30*time.Second))
//
// Note: This only affects tokens that have an "exp" claim.
func Leeway(leeway time.Duration) TokenValidatorFunc {
	return func(_ string, claims Claims, err error) error {
		if err == nil {
			if exp, ok := claims.Expiry(); ok {
				if unixSeconds(Clock().Add(leeway)) >= exp {
					return ErrTokenExpired
				}
			}
		}

		return err
	}
}

// Future creates a TokenValidator that tolerates a "nbf" claim slightly in the future.
//
// This validator provides tolerance for clock skew between the issuer and the verifier
// by accepting tokens that are not valid yet, up to the specified duration.
//
// The validation logic: if (now + duration) < not_before_time, still reject the token.
//
// Note: This only affects tokens that would otherwise fail with ErrTokenNotYetValid.
// Place it before validators which respect the previous error (e.g. Blocklist).
func Future(dur time.Duration) TokenValidatorFunc {
	return func(_ string, claims Claims, err error) error {
		if errors.Is(err, ErrTokenNotYetValid) {
			if nbf, ok := claims.NotBefore(); ok && unixSeconds(Clock().Add(dur)) < nbf {
				return err
			}

			return nil
		}

		return err
	}
}
