package blacklist

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Manager wraps a Store with default expiry and periodic cleanup
type Manager struct {
	store  Store
	config Config
	logger *slog.Logger
	mu     sync.RWMutex

	// Cleanup management
	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
	cleanupWg     sync.WaitGroup

	closed bool
}

// NewManager creates a new blacklist manager with the specified store and config
func NewManager(store Store, config Config, logger *slog.Logger) *Manager {
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = DefaultConfig().DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		store:       store,
		config:      config,
		logger:      logger,
		stopCleanup: make(chan struct{}),
	}

	if config.EnableAutoCleanup && config.CleanupInterval > 0 {
		m.startAutoCleanup()
	}

	return m
}

// Revoke blacklists tokenID until expiresAt, or for DefaultTTL when expiresAt is zero
func (m *Manager) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrStoreClosed
	}

	if tokenID == "" {
		return ErrEmptyTokenID
	}

	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(m.config.DefaultTTL)
	}

	return m.store.Add(ctx, tokenID, expiresAt)
}

// IsRevoked checks if a token is blacklisted
func (m *Manager) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return false, ErrStoreClosed
	}

	if tokenID == "" {
		return false, nil
	}

	return m.store.Contains(ctx, tokenID)
}

// Unrevoke removes tokenID from the blacklist
func (m *Manager) Unrevoke(ctx context.Context, tokenID string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrStoreClosed
	}

	if tokenID == "" {
		return ErrEmptyTokenID
	}

	return m.store.Remove(ctx, tokenID)
}

// Size returns the number of blacklisted tokens
func (m *Manager) Size(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, ErrStoreClosed
	}

	return m.store.Size(ctx)
}

// Close stops cleanup and closes the underlying store
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true

	if m.cleanupTicker != nil {
		m.cleanupTicker.Stop()
		close(m.stopCleanup)
		m.cleanupWg.Wait()
	}

	return m.store.Close()
}

func (m *Manager) startAutoCleanup() {
	m.cleanupTicker = time.NewTicker(m.config.CleanupInterval)
	m.cleanupWg.Add(1)

	go func() {
		defer m.cleanupWg.Done()

		for {
			select {
			case <-m.cleanupTicker.C:
				m.performCleanup()
			case <-m.stopCleanup:
				return
			}
		}
	}()
}

func (m *Manager) performCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), m.config.CleanupInterval)
	defer cancel()

	n, err := m.store.Cleanup(ctx)
	if err != nil {
		m.logger.Warn("blacklist cleanup failed", slog.Any("error", err))
		return
	}
	if n == 0 {
		return
	}

	size, err := m.store.Size(ctx)
	if err != nil {
		m.logger.Warn("blacklist size unavailable", slog.Any("error", err))
		return
	}
	m.logger.Debug("blacklist cleanup", slog.Int("removed", n), slog.Int("remaining", size))
}
