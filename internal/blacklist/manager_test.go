package blacklist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerRevoke(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(100), Config{}, nil)
	defer m.Close()

	require.NoError(t, m.Revoke(ctx, "tok-1", time.Now().Add(time.Hour)))
	require.NoError(t, m.Revoke(ctx, "no-expiry", time.Time{}))

	for _, id := range []string{"tok-1", "no-expiry"} {
		ok, err := m.IsRevoked(ctx, id)
		require.NoError(t, err)
		assert.True(t, ok, id)
	}

	ok, err := m.IsRevoked(ctx, "other")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = m.IsRevoked(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, m.Revoke(ctx, "", time.Now()), ErrEmptyTokenID)
}

func TestManagerClose(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(100), Config{
		CleanupInterval:   10 * time.Millisecond,
		EnableAutoCleanup: true,
	}, nil)

	require.NoError(t, m.Revoke(ctx, "tok", time.Now().Add(time.Hour)))
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	assert.ErrorIs(t, m.Revoke(ctx, "tok", time.Now().Add(time.Hour)), ErrStoreClosed)
	_, err := m.IsRevoked(ctx, "tok")
	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.ErrorIs(t, m.Unrevoke(ctx, "tok"), ErrStoreClosed)
	_, err = m.Size(ctx)
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestManagerUnrevoke(t *testing.T) {
	_, client := newTestRedis(t)

	stores := map[string]Store{
		"memory": NewMemoryStore(100),
		"redis":  NewRedisStore(client, "test:unrevoke"),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			m := NewManager(store, Config{}, nil)
			defer m.Close()

			require.NoError(t, m.Revoke(ctx, "tok-1", time.Now().Add(time.Hour)))
			require.NoError(t, m.Revoke(ctx, "tok-2", time.Now().Add(time.Hour)))

			size, err := m.Size(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2, size)

			require.NoError(t, m.Unrevoke(ctx, "tok-1"))
			require.NoError(t, m.Unrevoke(ctx, "never-revoked"))
			assert.ErrorIs(t, m.Unrevoke(ctx, ""), ErrEmptyTokenID)

			ok, err := m.IsRevoked(ctx, "tok-1")
			require.NoError(t, err)
			assert.False(t, ok)

			ok, err = m.IsRevoked(ctx, "tok-2")
			require.NoError(t, err)
			assert.True(t, ok)

			size, err = m.Size(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, size)
		})
	}
}

func TestManagerAutoCleanup(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(100)
	m := NewManager(store, Config{
		CleanupInterval:   10 * time.Millisecond,
		EnableAutoCleanup: true,
	}, nil)
	defer m.Close()

	require.NoError(t, m.Revoke(ctx, "tok", time.Now().Add(20*time.Millisecond)))

	assert.Eventually(t, func() bool {
		size, err := store.Size(ctx)
		return err == nil && size == 0
	}, time.Second, 10*time.Millisecond)
}
