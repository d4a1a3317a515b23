//go:build !safe

package jwt

import "unsafe"

// StringToBytes converts a string to a byte slice without memory allocation.
//
// The returned slice shares the string's memory and must never be written to.
// It is used to feed the signing input of a token to the hash functions.
// For safer builds, use the "safe" build tag which provides a standard conversion.
func StringToBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
