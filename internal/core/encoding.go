package core

import (
	"encoding/base64"
	"errors"
	"fmt"
)

var ErrInvalidBase64 = errors.New("invalid base64url encoding")

// EncodeSegment marshals v and encodes it as unpadded base64url
func EncodeSegment(v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return EncodeBytes(data), nil
}

// EncodeBytes encodes data as unpadded base64url
func EncodeBytes(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeBytes decodes unpadded base64url. Padding, the standard alphabet and
// embedded line breaks are all rejected.
func DecodeBytes(segment string) ([]byte, error) {
	if !isValidBase64URL(segment) {
		return nil, ErrInvalidBase64
	}

	buf := make([]byte, base64.RawURLEncoding.DecodedLen(len(segment)))
	n, err := base64.RawURLEncoding.Decode(buf, []byte(segment))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}
	return buf[:n], nil
}

// DecodeSegment decodes a base64url segment holding a JSON object
func DecodeSegment(segment string) (*Object, error) {
	data, err := DecodeBytes(segment)
	if err != nil {
		return nil, err
	}
	return ParseObject(data)
}

// isValidBase64URL checks if string contains only valid base64url characters
func isValidBase64URL(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '-' || c == '_') {
			return false
		}
	}
	return true
}
