package jwt

import (
	"maps"
	"slices"
	"time"

	"github.com/Firehed/jwt/internal/core"
)

// Claims is an ordered JSON object. Members keep the order they were set
// or received in, and decoded members re-encode to the exact bytes they were
// received as. Decoded numbers are int64 when integral and float64 otherwise.
//
// The zero value is an empty set of claims ready to use.
type Claims struct {
	obj *core.Object
}

// NewClaims returns an empty set of claims
func NewClaims() *Claims {
	return &Claims{obj: core.NewObject()}
}

// ClaimsFromMap builds claims from m, ordering members by name
func ClaimsFromMap(m map[string]any) *Claims {
	c := NewClaims()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		c.obj.Set(k, m[k])
	}
	return c
}

func (c *Claims) object() *core.Object {
	if c.obj == nil {
		c.obj = core.NewObject()
	}
	return c.obj
}

// Set stores value under name and returns c for chaining
func (c *Claims) Set(name string, value any) *Claims {
	c.object().Set(name, value)
	return c
}

// Get returns the value stored under name
func (c *Claims) Get(name string) (any, bool) {
	if c == nil || c.obj == nil {
		return nil, false
	}
	return c.obj.Get(name)
}

// Has reports whether name is present, even with a null value
func (c *Claims) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Delete removes name
func (c *Claims) Delete(name string) {
	if c != nil && c.obj != nil {
		c.obj.Delete(name)
	}
}

// Keys returns the claim names in order
func (c *Claims) Keys() []string {
	if c == nil || c.obj == nil {
		return nil
	}
	return c.obj.Keys()
}

// Len returns the number of claims
func (c *Claims) Len() int {
	if c == nil || c.obj == nil {
		return 0
	}
	return c.obj.Len()
}

// Map returns the claims as a plain map
func (c *Claims) Map() map[string]any {
	out := make(map[string]any, c.Len())
	for _, k := range c.Keys() {
		out[k], _ = c.Get(k)
	}
	return out
}

// Clone returns a copy of c; nested values are shared
func (c *Claims) Clone() *Claims {
	if c == nil || c.obj == nil {
		return NewClaims()
	}
	return &Claims{obj: c.obj.Clone()}
}

// GetString returns the claim as a string
func (c *Claims) GetString(name string) (string, bool) {
	v, _ := c.Get(name)
	s, ok := v.(string)
	return s, ok
}

// GetInt64 returns the claim as an int64. Integral floats are accepted.
func (c *Claims) GetInt64(name string) (int64, bool) {
	v, _ := c.Get(name)
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}

// GetFloat64 returns a numeric claim as a float64
func (c *Claims) GetFloat64(name string) (float64, bool) {
	v, _ := c.Get(name)
	return numericValue(v)
}

// GetBool returns the claim as a bool
func (c *Claims) GetBool(name string) (bool, bool) {
	v, _ := c.Get(name)
	b, ok := v.(bool)
	return b, ok
}

// GetTime returns a NumericDate claim such as "exp" as a time
func (c *Claims) GetTime(name string) (time.Time, bool) {
	f, ok := c.GetFloat64(name)
	if !ok {
		return time.Time{}, false
	}
	sec := int64(f)
	return time.Unix(sec, int64((f-float64(sec))*1e9)).UTC(), true
}

func (c *Claims) MarshalJSON() ([]byte, error) {
	return c.object().MarshalJSON()
}

func (c *Claims) UnmarshalJSON(data []byte) error {
	obj, err := core.ParseObject(data)
	if err != nil {
		return err
	}
	c.obj = obj
	return nil
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	case NumericDate:
		if n.IsZero() {
			return 0, false
		}
		return float64(n.Unix()), true
	}
	return 0, false
}
