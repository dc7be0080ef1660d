package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Firehed/jwt/internal/blacklist"
)

// Revoker tracks session tokens, by jti, that must no longer be accepted
type Revoker interface {
	// IsRevoked checks if a jti has been revoked
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// Revoke marks jti as revoked until expiresAt. A zero expiresAt uses the
	// revoker's default retention.
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
}

// StoreRevoker is a Revoker backed by a blacklist store
type StoreRevoker struct {
	m *blacklist.Manager
}

// MemoryRevokerConfig configures NewMemoryRevoker
type MemoryRevokerConfig struct {
	// MaxSize bounds the number of revoked ids kept
	MaxSize int

	// CleanupInterval is how often expired ids are dropped
	CleanupInterval time.Duration

	// DefaultTTL is how long ids revoked without an expiry are kept
	DefaultTTL time.Duration
}

// NewMemoryRevoker returns an in-process revoker. Call Close to stop its cleanup goroutine.
func NewMemoryRevoker(cfg MemoryRevokerConfig, logger *slog.Logger) *StoreRevoker {
	defaults := blacklist.DefaultConfig()
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = defaults.MaxSize
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = defaults.CleanupInterval
	}

	store := blacklist.NewMemoryStore(cfg.MaxSize)
	return &StoreRevoker{m: blacklist.NewManager(store, blacklist.Config{
		CleanupInterval:   cfg.CleanupInterval,
		MaxSize:           cfg.MaxSize,
		EnableAutoCleanup: true,
		DefaultTTL:        cfg.DefaultTTL,
	}, logger)}
}

// NewRedisRevoker returns a revoker that keeps one expiring Redis key per
// revoked id under prefix. The client stays owned by the caller.
func NewRedisRevoker(client redis.UniversalClient, prefix string, defaultTTL time.Duration) *StoreRevoker {
	store := blacklist.NewRedisStore(client, prefix)
	return &StoreRevoker{m: blacklist.NewManager(store, blacklist.Config{
		DefaultTTL: defaultTTL,
	}, nil)}
}

func (r *StoreRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return r.m.IsRevoked(ctx, jti)
}

func (r *StoreRevoker) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	return r.m.Revoke(ctx, jti, expiresAt)
}

// Unrevoke makes jti acceptable again
func (r *StoreRevoker) Unrevoke(ctx context.Context, jti string) error {
	return r.m.Unrevoke(ctx, jti)
}

// Size returns the number of revoked ids currently kept
func (r *StoreRevoker) Size(ctx context.Context) (int, error) {
	return r.m.Size(ctx)
}

// Close releases the revoker's resources
func (r *StoreRevoker) Close() error {
	return r.m.Close()
}
