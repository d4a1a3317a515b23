/*
Package jwt issues and verifies JSON Web Tokens (RFC 7519) signed with
HMAC (HS256, HS384, HS512) or RSA PKCS#1 v1.5 (RS256, RS384, RS512).

# Overview

A token is the string

	base64url(header) + "." + base64url(claims) + "." + base64url(signature)

where the signature covers the bytes of the first two encoded segments
(the "signing input"), never the decoded JSON.

The algorithm set is closed. There is no way to register another algorithm
and the "none" algorithm is never accepted.

# Quick Start

	secret := []byte("your-256-bit-secret-key-here")

	token, err := jwt.Encode(jwt.Claims{"sub": "alice"}, secret, "HS256", nil)
	if err != nil {
	    panic(err)
	}

	claims, err := jwt.Verify(token, "HS256", secret)
	if err != nil {
	    panic(err)
	}

	fmt.Println(claims.Subject()) // alice

With RSA keys, Encode accepts the PEM encoded private key and Verify the
PEM encoded public key (or certificate):

	token, err := jwt.Encode(claims, privatePEM, "RS256", jwt.Map{"kid": "2024-01"})
	claims, err := jwt.Verify(token, "RS256", publicPEM)

# Algorithm Pinning

Verify requires the caller to name the expected algorithm and rejects any
token whose "alg" header differs (ErrInvalidHeader). Decode reads the algorithm
from the token itself and is therefore unsafe for asymmetric keys: a holder
of the public key could forge an HS256 token using the public key bytes as
the HMAC secret. DecodeUnverified performs no verification at all.

# Errors

Every failure is an *Error carrying a Kind. Kinds are errors themselves:

	claims, err := jwt.Verify(token, "HS256", secret)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
	case errors.Is(err, jwt.ErrTokenSignature):
	}

or use KindOf(err) to switch on the category.

# Standard Claims

"exp" and "nbf" are validated by Verify and Decode: a token is rejected
at or after "exp" and before "nbf". Further checks are TokenValidator
values passed to Verify: Expected, Leeway, Future, Blocklist and LogFailures.

	claims, err := jwt.Verify(token, "RS256", publicPEM,
	    jwt.Expected{Issuer: "my-app"},
	    jwt.Leeway(5*time.Second),
	)
*/
package jwt
