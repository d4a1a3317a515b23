package jwt

import (
	"crypto"
	"crypto/hmac"
	"os"
)

func signHMAC(hasher crypto.Hash, secret, headerAndPayload []byte) []byte {
	// We can improve its performance (if we store the secret on the same structure)
	// by using a pool and its Reset method.
	h := hmac.New(hasher.New, secret)
	// header.payload
	h.Write(headerAndPayload) // hash.Hash never returns an error.
	return h.Sum(nil)
}

func verifyHMAC(hasher crypto.Hash, secret, headerAndPayload, signature []byte) bool {
	expectedSignature := signHMAC(hasher, secret, headerAndPayload)
	// constant-time comparison.
	return hmac.Equal(expectedSignature, signature)
}

// Key Helpers.

// MustLoadHMAC accepts a single filename
// which its plain text data should contain the HMAC shared key.
// Pass the returned value to both `Encode` and `Verify` functions.
//
// It panics if the file was found but unable to read from.
func MustLoadHMAC(filenameOrRaw string) []byte {
	key, err := LoadHMAC(filenameOrRaw)
	if err != nil {
		panic(err)
	}

	return key
}

// LoadHMAC accepts a single filename
// which its plain text data should contain the HMAC shared key.
// If the file does not exist the argument itself is used as the key.
func LoadHMAC(filenameOrRaw string) ([]byte, error) {
	if fileExists(filenameOrRaw) {
		// load contents from file.
		return ReadFile(filenameOrRaw)
	}

	// otherwise just cast the argument to []byte
	return []byte(filenameOrRaw), nil
}

// ReadFile can be used to customize the way the
// key files are loaded, e.g. from an embedded filesystem.
var ReadFile = os.ReadFile

// fileExists tries to report whether the local physical "path" exists and it's not a directory.
func fileExists(path string) bool {
	f, err := os.Stat(path)
	if err != nil {
		return false
	}

	return !f.IsDir()
}
