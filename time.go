package jwt

import (
	"fmt"
	"strconv"
	"time"
)

// NumericDate represents a JSON numeric date value as specified in RFC 7519.
// It stores time as Unix timestamp (seconds since epoch) for JWT compatibility.
type NumericDate struct {
	time.Time
}

// NewNumericDate creates a new NumericDate from time.Time, truncated to whole seconds
func NewNumericDate(t time.Time) NumericDate {
	return NumericDate{Time: t.Truncate(time.Second)}
}

// MarshalJSON implements json.Marshaler interface
func (date NumericDate) MarshalJSON() ([]byte, error) {
	if date.Time.IsZero() {
		return []byte("null"), nil
	}

	return strconv.AppendInt(nil, date.Unix(), 10), nil
}

// UnmarshalJSON implements json.Unmarshaler interface
func (date *NumericDate) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "" || s == "null" {
		date.Time = time.Time{}
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid time format: expected unix timestamp, got %s", s)
	}
	if f < 0 || f > 253402300799 {
		return fmt.Errorf("invalid unix timestamp: %s", s)
	}

	sec := int64(f)
	date.Time = time.Unix(sec, int64((f-float64(sec))*1e9)).UTC()
	return nil
}
