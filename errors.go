package jwt

import (
	"errors"
	"strings"
)

// Kind is the category of a failure returned by this package.
// Callers should branch on the kind, messages are diagnostic only.
//
// A Kind is an error itself, so it can be used as the target of errors.Is:
//
//	if errors.Is(err, jwt.ErrTokenExpired) { ... }
type Kind uint8

const (
	// KindType reports a wrong input shape, e.g. an empty key or claims
	// that do not serialize to a JSON object.
	KindType Kind = iota + 1
	// KindUnsupportedAlgorithm reports an algorithm name outside of the registry.
	KindUnsupportedAlgorithm
	// KindMalformedToken reports a wrong segment count, bad base64url or bad JSON.
	KindMalformedToken
	// KindInvalidHeader reports a "typ" or "alg" header mismatch.
	KindInvalidHeader
	// KindInvalidClaim reports a non-numeric "exp"/"nbf" or an unexpected claim value.
	KindInvalidClaim
	// KindInvalidSignature reports a signature that does not match the signing input.
	KindInvalidSignature
	// KindTokenExpired reports a token used at or after its "exp" claim.
	KindTokenExpired
	// KindTokenNotYetValid reports a token used before its "nbf" claim.
	KindTokenNotYetValid
	// KindKey reports key material that could not be parsed.
	KindKey
	// KindTokenBlocked reports a token that was invalidated by a blocklist.
	KindTokenBlocked
)

var kindNames = [...]string{
	KindType:                 "invalid type",
	KindUnsupportedAlgorithm: "unsupported algorithm",
	KindMalformedToken:       "malformed token",
	KindInvalidHeader:        "invalid header",
	KindInvalidClaim:         "invalid claim",
	KindInvalidSignature:     "invalid token signature",
	KindTokenExpired:         "token expired",
	KindTokenNotYetValid:     "token not valid yet",
	KindKey:                  "invalid key",
	KindTokenBlocked:         "token is blocked",
}

// String returns the human readable name of the kind.
func (k Kind) String() string {
	if k == 0 || int(k) >= len(kindNames) {
		return "unknown"
	}

	return kindNames[k]
}

// Error completes the error interface.
func (k Kind) Error() string {
	return "jwt: " + k.String()
}

var (
	// ErrType indicates a wrong input shape.
	ErrType error = KindType
	// ErrUnsupportedAlg indicates that the algorithm name is not registered.
	ErrUnsupportedAlg error = KindUnsupportedAlgorithm
	// ErrTokenForm indicates that the extracted token has not the expected form (it's not a JWT).
	ErrTokenForm error = KindMalformedToken
	// ErrInvalidHeader indicates that the token header is missing or does not
	// declare the expected "typ" and "alg" values.
	ErrInvalidHeader error = KindInvalidHeader
	// ErrInvalidClaim indicates that a claim has the wrong type or an unexpected value.
	ErrInvalidClaim error = KindInvalidClaim
	// ErrTokenSignature indicates that JWT signature verification has failed.
	ErrTokenSignature error = KindInvalidSignature
	// ErrTokenExpired indicates that token is used at or after expiry time indicated in "exp" claim.
	ErrTokenExpired error = KindTokenExpired
	// ErrTokenNotYetValid indicates that token is used before time indicated in "nbf" claim.
	ErrTokenNotYetValid error = KindTokenNotYetValid
	// ErrInvalidKey indicates that the PEM key material could not be parsed.
	ErrInvalidKey error = KindKey
	// ErrBlocked indicates that the token has not yet expired
	// but was blocked by the server's Blocklist.
	ErrBlocked error = KindTokenBlocked
)

// Error is the error value returned by the Encode, Verify and Decode family.
// It carries the failure Kind, a diagnostic message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("jwt: ")
	if e.Message != "" {
		b.WriteString(e.Message)
	} else {
		b.WriteString(e.Kind.String())
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the Kind of this error.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// KindOf returns the Kind of "err" or zero if "err" was not produced by this package.
func KindOf(err error) Kind {
	if err == nil {
		return 0
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	var k Kind
	if errors.As(err, &k) {
		return k
	}

	return 0
}
