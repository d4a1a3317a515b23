//go:build safe

package jwt

// StringToBytes converts a string into slice of bytes by copying.
func StringToBytes(s string) []byte {
	return []byte(s)
}
