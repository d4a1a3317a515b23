package jwt

import "fmt"

// Required is a TokenValidator which rejects tokens missing
// any of the given claims with an ErrInvalidClaim error.
// A claim holding JSON null counts as missing.
//
// Usage:
//
//	claims, err := jwt.Verify(token, "HS256", key, jwt.Required("sub", "exp"))
func Required(names ...string) TokenValidatorFunc {
	return func(_ string, claims Claims, err error) error {
		if err != nil {
			return err
		}

		for _, name := range names {
			if claims[name] == nil {
				return newError(KindInvalidClaim, fmt.Sprintf("missing %q claim", name), nil)
			}
		}

		return nil
	}
}
