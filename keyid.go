package jwt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type keyIDKind uint8

const (
	keyIDNone keyIDKind = iota
	keyIDInt
	keyIDString
)

// KeyID names a key in a registry. It is either an integer or a string; the
// zero value means "no id". Integer and string ids never compare equal, so
// IntKeyID(1) and StringKeyID("1") name different keys.
type KeyID struct {
	kind keyIDKind
	n    int64
	s    string
}

// IntKeyID returns an integer key id
func IntKeyID(n int64) KeyID {
	return KeyID{kind: keyIDInt, n: n}
}

// StringKeyID returns a string key id
func StringKeyID(s string) KeyID {
	return KeyID{kind: keyIDString, s: s}
}

// IsZero reports whether k is the absent id
func (k KeyID) IsZero() bool {
	return k.kind == keyIDNone
}

// Int returns the integer value of an integer id
func (k KeyID) Int() (int64, bool) {
	return k.n, k.kind == keyIDInt
}

// Str returns the value of a string id
func (k KeyID) Str() (string, bool) {
	return k.s, k.kind == keyIDString
}

func (k KeyID) String() string {
	switch k.kind {
	case keyIDInt:
		return strconv.FormatInt(k.n, 10)
	case keyIDString:
		return k.s
	default:
		return ""
	}
}

// MarshalJSON encodes integer ids as numbers, string ids as strings, and the zero id as null
func (k KeyID) MarshalJSON() ([]byte, error) {
	switch k.kind {
	case keyIDInt:
		return strconv.AppendInt(nil, k.n, 10), nil
	case keyIDString:
		return json.Marshal(k.s)
	default:
		return []byte("null"), nil
	}
}

func (k *KeyID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*k = KeyID{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*k = StringKeyID(s)
		return nil
	default:
		n, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("key id must be an integer or a string, got %s", data)
		}
		*k = IntKeyID(n)
		return nil
	}
}

// keyIDFromValue converts a decoded "kid" header value
func keyIDFromValue(v any) (KeyID, error) {
	switch t := v.(type) {
	case nil:
		return KeyID{}, nil
	case KeyID:
		return t, nil
	case int64:
		return IntKeyID(t), nil
	case string:
		return StringKeyID(t), nil
	default:
		return KeyID{}, fmt.Errorf("kid must be an integer or a string, got %T", v)
	}
}
