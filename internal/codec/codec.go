// Package codec converts text content to and from the base64 transport
// encoding used by the GitHub contents API.
package codec

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Encode encodes text into standard base64. UTF-8 multi-byte characters are
// encoded byte-for-byte, matching what the contents API expects on writes.
func Encode(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// Decode decodes a base64 payload back into text. The contents API inserts
// newlines into blob bodies, so all whitespace is stripped before decoding.
func Decode(encoded string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, encoded)

	raw, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64 content: %w", err)
	}
	return string(raw), nil
}
