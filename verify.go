package jwt

// Verify decodes and verifies the given "token" and returns its claims.
//
// The "alg" argument is the algorithm the caller expects: the token's
// "alg" header must be exactly equal to it, the token never selects its own
// algorithm. The key is the HMAC shared secret or the PEM encoded RSA public key.
//
// The checks run in order and stop on the first failure:
//  1. the key must be non-empty (ErrType)
//  2. the algorithm must be registered (ErrUnsupportedAlg)
//  3. the token must have three segments which decode to base64url and JSON (ErrTokenForm)
//  4. a "typ" header, if present, must be "JWT" and "alg" must match (ErrInvalidHeader)
//  5. "exp" and "nbf", if present, must be numbers (ErrInvalidClaim)
//  6. the signature must match (ErrTokenSignature)
//  7. the token must not be expired (ErrTokenExpired) nor used before "nbf" (ErrTokenNotYetValid)
//
// The optional validators run last, each one receives the error of the
// previous step and may return it, replace it or clear it.
//
// Example Code:
//
//	claims, err := jwt.Verify(token, "HS256", []byte("secret"))
//	if errors.Is(err, jwt.ErrTokenExpired) { ... }
func Verify(token string, alg string, key []byte, validators ...TokenValidator) (Claims, error) {
	if len(key) == 0 {
		return nil, newError(KindType, "key must be non-empty", nil)
	}

	a, err := ParseAlg(alg)
	if err != nil {
		return nil, err
	}

	t, err := parseToken(token)
	if err != nil {
		return nil, err
	}

	if err = checkType(t.header); err != nil {
		return nil, err
	}

	if name, ok := t.header["alg"].(string); !ok || name != a.Name() {
		return nil, newError(KindInvalidHeader, "unexpected token algorithm", nil)
	}

	return verifyParsed(a, key, t, validators)
}

// Decode decodes and verifies the given "token" with the algorithm declared
// by the token's own "alg" header.
//
// SECURITY WARNING: the token selects the algorithm. Do NOT use Decode when the
// key is an RSA public key: anyone holding that public key can forge an HS256
// token that uses the public key bytes as the HMAC secret. Use Verify, which
// pins the algorithm, whenever the key is asymmetric.
func Decode(token string, key []byte, validators ...TokenValidator) (Claims, error) {
	return decode(token, key, true, validators)
}

// DecodeUnverified returns the claims of "token" WITHOUT checking its signature,
// its "typ" header, nor its "exp" and "nbf" claims.
// The result is unauthenticated data and must never be used for a trust decision,
// e.g. use it to inspect a token before choosing the key to verify it with.
func DecodeUnverified(token string) (Claims, error) {
	return decode(token, nil, false, nil)
}

// DecodeHeader returns the unverified header of "token".
func DecodeHeader(token string) (Map, error) {
	parts := Split(token, sep, 3)
	if len(parts) != 3 {
		return nil, newError(KindMalformedToken, "not enough segments", nil)
	}

	return decodeSegment[Map](parts[0])
}

func decode(token string, key []byte, verify bool, validators []TokenValidator) (Claims, error) {
	if verify && len(key) == 0 {
		return nil, newError(KindType, "key must be non-empty", nil)
	}

	t, err := parseToken(token)
	if err != nil {
		return nil, err
	}

	name, ok := t.header["alg"].(string)
	if !ok {
		return nil, newError(KindInvalidHeader, "missing token algorithm", nil)
	}

	if !verify {
		return t.claims, nil
	}

	if err = checkType(t.header); err != nil {
		return nil, err
	}

	a, err := ParseAlg(name)
	if err != nil {
		return nil, err
	}

	return verifyParsed(a, key, t, validators)
}

func checkType(header Map) error {
	if typ, present := header["typ"]; present && typ != "JWT" {
		return newError(KindInvalidHeader, "invalid token type", nil)
	}

	return nil
}

func verifyParsed(alg Alg, key []byte, t *parsedToken, validators []TokenValidator) (Claims, error) {
	if err := checkNumericClaims(t.claims); err != nil {
		return nil, err
	}

	ok, err := alg.Verify(key, StringToBytes(t.signingInput), t.signature)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, newError(KindInvalidSignature, "signature verification failed", nil)
	}

	err = validateClaims(Clock(), t.claims)
	for _, validator := range validators {
		// A token validator can skip the builtin validation and return a nil error,
		// in that case the previous error is skipped.
		err = validator.ValidateToken(t.raw, t.claims, err)
	}

	if err != nil {
		return nil, err
	}

	return t.claims, nil
}

type (
	// TokenValidator provides further token and claims validation.
	TokenValidator interface {
		// ValidateToken accepts the token, the claims extracted from that
		// and any error that may caused by claims validation (e.g. ErrTokenExpired)
		// or the previous validator.
		// A token validator can skip the builtin validation and return a nil error.
		// Usage:
		//  func(v *myValidator) ValidateToken(token string, claims Claims, err error) error {
		//    if err!=nil { return err } <- to respect the previous error
		//    // otherwise return nil or any custom error.
		//  }
		//
		// Look `Blocklist`, `Expected` and `Leeway` for builtin implementations.
		ValidateToken(token string, claims Claims, err error) error
	}

	// TokenValidatorFunc is the interface-as-function shortcut for a TokenValidator.
	TokenValidatorFunc func(token string, claims Claims, err error) error
)

// ValidateToken completes the TokenValidator interface.
func (fn TokenValidatorFunc) ValidateToken(token string, claims Claims, err error) error {
	return fn(token, claims, err)
}
