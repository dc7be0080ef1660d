package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

var (
	ErrInvalidJSON = errors.New("invalid JSON")
	ErrNotObject   = errors.New("JSON value is not an object")
	ErrInvalidUTF8 = errors.New("string is not valid UTF-8")
)

type field struct {
	// raw holds the compact JSON received on the wire; nil once the value is set locally
	raw   []byte
	value any
}

// Object is a JSON object that remembers member order and, for parsed
// members, the exact compact encoding they arrived with. Re-encoding a
// parsed Object therefore reproduces the same bytes, nested key order included.
type Object struct {
	keys   []string
	fields map[string]field
}

// NewObject returns an empty Object
func NewObject() *Object {
	return &Object{fields: make(map[string]field)}
}

// ParseObject parses data, which must be a single JSON object
func ParseObject(data []byte) (*Object, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}

	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return nil, ErrNotObject
	}

	obj := NewObject()
	var parseErr error
	result.ForEach(func(key, value gjson.Result) bool {
		raw, err := compact([]byte(value.Raw))
		if err != nil {
			parseErr = err
			return false
		}
		decoded, err := decodeValue(raw)
		if err != nil {
			parseErr = err
			return false
		}
		obj.put(key.String(), field{raw: raw, value: decoded})
		return true
	})
	if parseErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, parseErr)
	}

	return obj, nil
}

func (o *Object) put(key string, f field) {
	if _, exists := o.fields[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = f
}

// Set stores value under key. An existing key keeps its position.
func (o *Object) Set(key string, value any) {
	o.put(key, field{value: value})
}

// Get returns the value stored under key
func (o *Object) Get(key string) (any, bool) {
	f, ok := o.fields[key]
	return f.value, ok
}

// Delete removes key
func (o *Object) Delete(key string) {
	if _, ok := o.fields[key]; !ok {
		return
	}
	delete(o.fields, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns member names in order
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of members
func (o *Object) Len() int {
	return len(o.keys)
}

// Clone returns a shallow copy; nested values are shared
func (o *Object) Clone() *Object {
	c := &Object{
		keys:   o.Keys(),
		fields: make(map[string]field, len(o.fields)),
	}
	for k, f := range o.fields {
		c.fields[k] = f
	}
	return c
}

// MarshalJSON encodes the members in order. Parsed members are emitted verbatim.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')

		f := o.fields[key]
		if f.raw != nil {
			buf.Write(f.raw)
			continue
		}
		value, err := Marshal(f.value)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", key, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the contents of o with the object in data
func (o *Object) UnmarshalJSON(data []byte) error {
	parsed, err := ParseObject(data)
	if err != nil {
		return err
	}
	*o = *parsed
	return nil
}

// Marshal encodes v as compact JSON without HTML escaping; '/' is never escaped.
// Strings that are not valid UTF-8 fail with ErrInvalidUTF8 instead of being
// rewritten with replacement characters.
func Marshal(v any) ([]byte, error) {
	if err := checkUTF8(v); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// checkUTF8 walks strings, slices and maps; nested Objects are checked when
// their own MarshalJSON calls Marshal.
func checkUTF8(v any) error {
	switch t := v.(type) {
	case string:
		if !utf8.ValidString(t) {
			return fmt.Errorf("%w: %q", ErrInvalidUTF8, t)
		}
	case []string:
		for _, item := range t {
			if err := checkUTF8(item); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range t {
			if err := checkUTF8(item); err != nil {
				return err
			}
		}
	case map[string]string:
		for k, item := range t {
			if err := checkUTF8(k); err != nil {
				return err
			}
			if err := checkUTF8(item); err != nil {
				return err
			}
		}
	case map[string]any:
		for k, item := range t {
			if err := checkUTF8(k); err != nil {
				return err
			}
			if err := checkUTF8(item); err != nil {
				return err
			}
		}
	}
	return nil
}

func compact(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeValue decodes one JSON value; numbers become int64 when integral, float64 otherwise
func decodeValue(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return normalize(v), nil
}

func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		for k, item := range t {
			t[k] = normalize(item)
		}
		return t
	case []any:
		for i, item := range t {
			t[i] = normalize(item)
		}
		return t
	default:
		return v
	}
}
