package jwt

import (
	"crypto"
	_ "crypto/sha256" // ignore:lint
	_ "crypto/sha512"
	"fmt"
)

// Alg represents one of the registered JWT signature algorithms.
//
// The set is closed: HS256, HS384, HS512 (HMAC with a shared secret) and
// RS256, RS384, RS512 (RSA PKCS#1 v1.5 with PEM keys). There is no way to
// register another algorithm and the "none" algorithm is never accepted.
// The registry behind it is a read-only table, safe for concurrent use.
type Alg uint8

// HMAC-SHA signing algorithms (symmetric algorithms).
// The key is the shared secret, the same for Sign and Verify.
//
// RFC 7518 mandates a key length at least equal to the hash output:
// 32 bytes for HS256, 48 for HS384 and 64 for HS512.
const (
	HS256 Alg = iota + 1
	HS384
	HS512
	// RSA signing algorithms (asymmetric algorithms).
	// Sign expects a PEM encoded private key (PKCS#1 or PKCS#8),
	// Verify expects a PEM encoded public key (PKIX, PKCS#1 or a certificate).
	RS256
	RS384
	RS512
)

type keyKind uint8

const (
	keySecret keyKind = iota
	keyPEM
)

type algorithm struct {
	name   string
	hasher crypto.Hash
	kind   keyKind
}

var algorithms = [...]algorithm{
	HS256: {"HS256", crypto.SHA256, keySecret},
	HS384: {"HS384", crypto.SHA384, keySecret},
	HS512: {"HS512", crypto.SHA512, keySecret},
	RS256: {"RS256", crypto.SHA256, keyPEM},
	RS384: {"RS384", crypto.SHA384, keyPEM},
	RS512: {"RS512", crypto.SHA512, keyPEM},
}

// Algs returns all the registered algorithms.
func Algs() []Alg {
	return []Alg{HS256, HS384, HS512, RS256, RS384, RS512}
}

// ParseAlg returns the algorithm registered under "name".
// The lookup is case-sensitive, "hs256" does not match "HS256".
// It fails with an ErrUnsupportedAlg error for any other name.
func ParseAlg(name string) (Alg, error) {
	for i := HS256; int(i) < len(algorithms); i++ {
		if algorithms[i].name == name {
			return i, nil
		}
	}

	return 0, newError(KindUnsupportedAlgorithm, fmt.Sprintf("unsupported algorithm %q", name), nil)
}

func (a Alg) valid() bool {
	return a > 0 && int(a) < len(algorithms)
}

// Name returns the value of the "alg" header for this algorithm.
func (a Alg) Name() string {
	if !a.valid() {
		return ""
	}

	return algorithms[a].name
}

// String completes the fmt.Stringer interface.
func (a Alg) String() string {
	if !a.valid() {
		return fmt.Sprintf("Alg(%d)", uint8(a))
	}

	return algorithms[a].name
}

// Hash returns the digest bound to the algorithm.
func (a Alg) Hash() crypto.Hash {
	if !a.valid() {
		return 0
	}

	return algorithms[a].hasher
}

// Symmetric reports whether the algorithm uses a shared secret (HMAC).
func (a Alg) Symmetric() bool {
	return a.valid() && algorithms[a].kind == keySecret
}

// Sign creates the raw (not base64url encoded) signature of the "signingInput",
// which is the "header.payload" part of the token.
func (a Alg) Sign(key, signingInput []byte) ([]byte, error) {
	if !a.valid() {
		return nil, newError(KindUnsupportedAlgorithm, "unsupported algorithm "+a.String(), nil)
	}

	if len(key) == 0 {
		return nil, newError(KindType, "key must be non-empty", nil)
	}

	alg := algorithms[a]
	if alg.kind == keySecret {
		return signHMAC(alg.hasher, key, signingInput), nil
	}

	return signRSA(alg.hasher, key, signingInput)
}

// Verify reports whether "signature" is a valid signature of the "signingInput".
// A false result with a nil error means the signature did not match;
// an error means the key could not be used at all.
func (a Alg) Verify(key, signingInput, signature []byte) (bool, error) {
	if !a.valid() {
		return false, newError(KindUnsupportedAlgorithm, "unsupported algorithm "+a.String(), nil)
	}

	if len(key) == 0 {
		return false, newError(KindType, "key must be non-empty", nil)
	}

	alg := algorithms[a]
	if alg.kind == keySecret {
		return verifyHMAC(alg.hasher, key, signingInput, signature), nil
	}

	return verifyRSA(alg.hasher, key, signingInput, signature)
}
