package jwt

import (
	"errors"
	"fmt"
)

// Predefined errors for token operations
var (
	// Format errors
	ErrInvalidFormat   = errors.New("invalid token format")
	ErrMalformedHeader = errors.New("malformed token header")
	ErrMalformedClaims = errors.New("malformed token claims")

	// Key errors
	ErrKeyNotFound          = errors.New("key not found")
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	ErrMissingKeys          = errors.New("no keys provided: call SetKeys before encoding")
	ErrSecretDestroyed      = errors.New("secret has been destroyed")

	// Verification errors
	ErrInvalidSignature = errors.New("invalid signature: claims are not accessible")
	ErrTokenExpired     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrUnverifiedAccess = errors.New("token was not signed: use UnverifiedClaims to read its claims")

	// System errors
	ErrEncodingFailed = errors.New("token encoding failed")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Token segments named by FormatError
const (
	SegmentToken  = "token"
	SegmentHeader = "header"
	SegmentClaims = "claims"
)

// FormatError reports a structurally invalid token. It matches ErrInvalidFormat,
// and additionally ErrMalformedHeader or ErrMalformedClaims depending on Segment.
type FormatError struct {
	Segment string // The token segment that failed to parse
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Segment, e.Message, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Segment, e.Message)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func (e *FormatError) Is(target error) bool {
	switch target {
	case ErrInvalidFormat:
		return true
	case ErrMalformedHeader:
		return e.Segment == SegmentHeader
	case ErrMalformedClaims:
		return e.Segment == SegmentClaims
	}
	return false
}

// KeyNotFoundError is returned when no key can be resolved. ID is the id that
// was looked up, or the zero KeyID when no id could be determined at all.
type KeyNotFoundError struct {
	ID KeyID
}

func (e *KeyNotFoundError) Error() string {
	if e.ID.IsZero() {
		return "key not found: no key id given and no default or fallback key"
	}
	return fmt.Sprintf("key not found: no key with id '%s'", e.ID)
}

func (e *KeyNotFoundError) Is(target error) bool {
	return target == ErrKeyNotFound
}

// ConfigError represents a configuration error for a specific field.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid configuration for field '%s': %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("invalid configuration for field '%s': %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
