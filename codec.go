package text2kv

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"
)

var b64Whitespace = strings.NewReplacer("\t", "", "\n", "", "\f", "", "\r", "")

// DecodeB64 turns a b64 query payload into canonical text.
//
// Query-string decoding maps '+' to ' ', so spaces are turned back into '+'
// before decoding. Decoding is forgiving in the same way browsers are: ASCII
// whitespace is ignored and padding is optional, but a correctly padded
// string must not carry more than two '='. Byte sequences that are not valid
// UTF-8 are replaced with U+FFFD.
func DecodeB64(s string) (string, error) {
	s = b64Whitespace.Replace(strings.ReplaceAll(s, " ", "+"))

	if len(s)%4 == 0 {
		s = strings.TrimSuffix(s, "=")
		s = strings.TrimSuffix(s, "=")
	}
	if len(s)%4 == 1 {
		return "", fmt.Errorf("decode b64: %w", ErrDecode)
	}

	raw, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("decode b64: %w", ErrDecode)
	}

	if utf8.Valid(raw) {
		return string(raw), nil
	}
	return strings.ToValidUTF8(string(raw), string(utf8.RuneError)), nil
}
