package jwt

// Enrich verifies "token" and signs a new token with the same algorithm
// holding its claims merged with "extraClaims". Extra claims win over
// the original ones and the extra header fields (e.g. "kid") are kept.
//
// It is not possible to modify just the payload of a token, the
// signature covers it, so the result is a brand new token.
// For HMAC algorithms "verifyKey" and "signKey" are the same secret,
// for RSA they are the public key of the original issuer and the private
// key of the new token.
//
// Example Code:
//
//	enriched, err := jwt.Enrich(token, jwt.HS256, secret, secret, jwt.Map{
//	  "role": "admin",
//	})
func Enrich(token string, alg Alg, verifyKey, signKey []byte, extraClaims Map, validators ...TokenValidator) (string, error) {
	claims, err := Verify(token, alg.Name(), verifyKey, validators...)
	if err != nil {
		return "", err
	}

	header, err := DecodeHeader(token)
	if err != nil {
		return "", err
	}

	// typ and alg are rewritten anyway.
	delete(header, "typ")
	delete(header, "alg")

	return Sign(alg, signKey, claims, WithClaims(extraClaims), WithHeader(header))
}
