package blacklist

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrStoreClosed is returned by stores and managers after Close
	ErrStoreClosed = errors.New("blacklist store is closed")

	// ErrStoreUnavailable wraps backend failures
	ErrStoreUnavailable = errors.New("blacklist store unavailable")

	// ErrEmptyTokenID is returned when adding an empty token id
	ErrEmptyTokenID = errors.New("token ID cannot be empty")
)

// Store defines the interface for blacklist storage implementations
type Store interface {
	// Add adds a token to the blacklist until expiresAt
	Add(ctx context.Context, tokenID string, expiresAt time.Time) error

	// Contains checks if a token is in the blacklist and not yet expired
	Contains(ctx context.Context, tokenID string) (bool, error)

	// Remove removes a token from the blacklist
	Remove(ctx context.Context, tokenID string) error

	// Cleanup removes expired tokens from the blacklist
	Cleanup(ctx context.Context) (int, error)

	// Size returns the current number of tokens in the blacklist
	Size(ctx context.Context) (int, error)

	// Close closes the store and releases resources
	Close() error
}

// Config represents blacklist configuration
type Config struct {
	// CleanupInterval defines how often to run cleanup of expired tokens
	CleanupInterval time.Duration

	// MaxSize defines the maximum number of tokens the memory store keeps
	MaxSize int

	// EnableAutoCleanup enables automatic cleanup of expired tokens
	EnableAutoCleanup bool

	// DefaultTTL is how long a token without expiry stays blacklisted
	DefaultTTL time.Duration
}

// DefaultConfig returns the configuration used when none is given
func DefaultConfig() Config {
	return Config{
		CleanupInterval:   5 * time.Minute,
		MaxSize:           100000,
		EnableAutoCleanup: true,
		DefaultTTL:        24 * time.Hour,
	}
}
