package jwt

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// A builtin list of fixed headers for builtin algorithms (to boost the performance a bit).
// key = alg, value = the base64encoded full header
// (when extra headers are not required to be inside).
var fixedHeaders [len(algorithms)]string

func init() {
	for _, alg := range Algs() {
		header, err := Marshal(Map{"alg": alg.Name(), "typ": "JWT"})
		if err != nil {
			panic(err)
		}
		fixedHeaders[alg] = Base64Encode(header)
	}
}

const sep = "."

// Split slices "token" around each instance of "delimiter" from left to right
// and returns at most "maxParts" segments. The last segment holds the
// unsplit remainder, delimiters included.
// Fewer segments are returned when the token has fewer delimiters,
// callers must check the count.
//
// An empty delimiter or a non-positive maxParts returns the whole token as a single segment.
func Split(token, delimiter string, maxParts int) []string {
	if delimiter == "" || maxParts < 1 {
		return []string{token}
	}

	parts := make([]string, 0, maxParts)
	for len(parts) < maxParts-1 {
		idx := strings.Index(token, delimiter)
		if idx < 0 {
			break
		}

		parts = append(parts, token[:idx])
		token = token[idx+len(delimiter):]
	}

	return append(parts, token)
}

// ErrBase64 is returned by Base64Decode on malformed alphabet or corrupt padding.
var ErrBase64 = errors.New("jwt: invalid base64url data")

var strictURLEncoding = base64.RawURLEncoding.Strict()

// Base64Encode encodes "src" to jwt base64 url format:
// the URL-safe alphabet without trailing '=' padding.
func Base64Encode(src []byte) string {
	return base64.RawURLEncoding.EncodeToString(src)
}

// Base64Decode decodes "src" from jwt base64 url format.
// Inputs of length 4n, 4n+2 and 4n+3 are accepted, 4n+1 is never valid.
// Padding, line breaks and non-canonical encodings (non-zero trailing bits)
// are rejected, so a segment has exactly one accepted spelling.
func Base64Decode(src string) ([]byte, error) {
	// the decoder skips '\r' and '\n' silently.
	if i := strings.IndexAny(src, "\r\n="); i >= 0 {
		return nil, fmt.Errorf("%w: illegal character %q at offset %d", ErrBase64, src[i], i)
	}

	b, err := strictURLEncoding.DecodeString(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBase64, err)
	}

	return b, nil
}

func createHeader(alg Alg, extraHeader Map) (string, error) {
	if len(extraHeader) == 0 {
		return fixedHeaders[alg], nil
	}

	header := make(Map, len(extraHeader)+2)
	for k, v := range extraHeader {
		header[k] = v
	}
	// typ and alg always win over the caller's values.
	header["typ"] = "JWT"
	header["alg"] = alg.Name()

	b, err := Marshal(header)
	if err != nil {
		return "", newError(KindType, "header is not JSON serializable", err)
	}

	return Base64Encode(b), nil
}

func createPayload(claims any) (string, error) {
	payload, err := Marshal(claims)
	if err != nil {
		return "", newError(KindType, "claims are not JSON serializable", err)
	}

	if p := bytes.TrimLeft(payload, " \t\r\n"); len(p) == 0 || p[0] != '{' {
		return "", newError(KindType, "claims must be a JSON object", nil)
	}

	return Base64Encode(payload), nil
}

func encodeToken(alg Alg, key []byte, claims any, extraHeader Map) (string, error) {
	if !alg.valid() {
		return "", newError(KindUnsupportedAlgorithm, "unsupported algorithm "+alg.String(), nil)
	}

	header, err := createHeader(alg, extraHeader)
	if err != nil {
		return "", err
	}

	payload, err := createPayload(claims)
	if err != nil {
		return "", err
	}

	signingInput := header + sep + payload

	signature, err := alg.Sign(key, StringToBytes(signingInput))
	if err != nil {
		return "", err
	}

	// header.payload.signature
	return signingInput + sep + Base64Encode(signature), nil
}

// parsedToken holds the decoded parts of a token which passed
// the structural checks but was not yet verified.
type parsedToken struct {
	raw          string
	header       Map
	claims       Claims
	signingInput string
	signature    []byte
}

// parseToken tokenizes and decodes all three segments.
// Any base64url or JSON failure is reported as a malformed token.
func parseToken(token string) (*parsedToken, error) {
	parts := Split(token, sep, 3)
	if len(parts) != 3 {
		return nil, newError(KindMalformedToken, "not enough segments", nil)
	}

	headerSegment, payloadSegment, signatureSegment := parts[0], parts[1], parts[2]

	header, err := decodeSegment[Map](headerSegment)
	if err != nil {
		return nil, err
	}

	claims, err := decodeSegment[Claims](payloadSegment)
	if err != nil {
		return nil, err
	}

	signature, err := Base64Decode(signatureSegment)
	if err != nil {
		return nil, newError(KindMalformedToken, "invalid json", err)
	}

	t := &parsedToken{
		raw:          token,
		header:       header,
		claims:       claims,
		signingInput: token[:len(headerSegment)+len(sep)+len(payloadSegment)],
		signature:    signature,
	}
	return t, nil
}

func decodeSegment[T ~map[string]any](segment string) (T, error) {
	b, err := Base64Decode(segment)
	if err != nil {
		return nil, newError(KindMalformedToken, "invalid json", err)
	}

	var m T
	if err = Unmarshal(b, &m); err != nil {
		return nil, newError(KindMalformedToken, "invalid json", err)
	}

	if m == nil { // literal null.
		return nil, newError(KindMalformedToken, "invalid json", nil)
	}

	return m, nil
}
