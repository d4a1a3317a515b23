package jwt

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

// signRSA parses the PEM private key on every call, key material is never cached.
func signRSA(hasher crypto.Hash, key, headerAndPayload []byte) ([]byte, error) {
	privateKey, err := ParsePrivateKeyRSA(key)
	if err != nil {
		return nil, newError(KindKey, "not a private PEM key", err)
	}

	h := hasher.New()
	// header.payload
	h.Write(headerAndPayload)
	hashed := h.Sum(nil)

	signature, err := rsa.SignPKCS1v15(rand.Reader, privateKey, hasher, hashed)
	if err != nil {
		// e.g. rsa.ErrMessageTooLong for a key too small for the digest.
		return nil, newError(KindKey, "private key cannot sign", err)
	}

	return signature, nil
}

// verifyRSA reports a mismatch as false. The padding check inside
// rsa.VerifyPKCS1v15 compares the encoded digest in constant time.
func verifyRSA(hasher crypto.Hash, key, headerAndPayload, signature []byte) (bool, error) {
	publicKey, err := ParsePublicKeyRSA(key)
	if err != nil {
		return false, newError(KindKey, "not a public PEM key", err)
	}

	h := hasher.New()
	// header.payload
	h.Write(headerAndPayload)
	hashed := h.Sum(nil)

	return rsa.VerifyPKCS1v15(publicKey, hasher, hashed, signature) == nil, nil
}

// Key Helpers.

// LoadPrivateKeyRSA reads a PEM-encoded RSA private key from a file
// and reports whether it can be parsed. The returned bytes are the key
// material to pass to Encode.
func LoadPrivateKeyRSA(filename string) ([]byte, error) {
	b, err := ReadFile(filename)
	if err != nil {
		return nil, err
	}

	if _, err = ParsePrivateKeyRSA(b); err != nil {
		return nil, err
	}

	return b, nil
}

// LoadPublicKeyRSA reads a PEM-encoded RSA public key (or certificate) from a file
// and reports whether it can be parsed. The returned bytes are the key
// material to pass to Verify.
func LoadPublicKeyRSA(filename string) ([]byte, error) {
	b, err := ReadFile(filename)
	if err != nil {
		return nil, err
	}

	if _, err = ParsePublicKeyRSA(b); err != nil {
		return nil, err
	}

	return b, nil
}

var errMissingPEM = errors.New("malformed or missing PEM format (RSA)")

// ParsePrivateKeyRSA decodes and parses PEM-encoded RSA private key bytes.
//
// The input should be PEM-encoded RSA private key data in PKCS#1 or PKCS#8 format.
func ParsePrivateKeyRSA(key []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(key)
	if block == nil {
		return nil, fmt.Errorf("private key: %w", errMissingPEM)
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
			pKey, ok := key.(*rsa.PrivateKey)
			if !ok {
				return nil, fmt.Errorf("private key: expected a type of *rsa.PrivateKey")
			}

			privateKey = pKey
		} else {
			return nil, err
		}
	}

	return privateKey, nil
}

// ParsePublicKeyRSA decodes and parses PEM-encoded RSA public key bytes.
//
// The input should be PEM-encoded RSA public key data in PKIX or PKCS#1 format,
// or a certificate containing an RSA public key.
func ParsePublicKeyRSA(key []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(key)
	if block == nil {
		return nil, fmt.Errorf("public key: %w", errMissingPEM)
	}

	if block.Type == "RSA PUBLIC KEY" {
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	parsedKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		if cert, err := x509.ParseCertificate(block.Bytes); err == nil {
			parsedKey = cert.PublicKey
		} else {
			return nil, err
		}
	}

	publicKey, ok := parsedKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key: expected a type of *rsa.PublicKey")
	}

	return publicKey, nil
}
