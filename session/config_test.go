package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Firehed/jwt/internal/blacklist"
)

func TestLoadConfigFromDefaults(t *testing.T) {
	cfg, err := LoadConfigFrom(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFrom(t *testing.T) {
	cfg, err := LoadConfigFrom(map[string]string{
		"SESSION_COOKIE_NAME":      "sid",
		"SESSION_COOKIE_SECURE":    "false",
		"SESSION_COOKIE_SAME_SITE": "strict",
		"SESSION_TTL":              "30m",
	})
	require.NoError(t, err)

	assert.Equal(t, "sid", cfg.CookieName)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 30*time.Minute, cfg.TTL)

	h, err := NewHandlerFromConfig(cfg, testCodec(), nil)
	require.NoError(t, err)
	assert.Equal(t, "sid", h.CookieName())
	assert.Equal(t, http.SameSiteStrictMode, h.cookie.SameSite)
	assert.Equal(t, 30*time.Minute, h.ttl)
	assert.Nil(t, h.revoker)
}

func TestLoadConfigFromInvalid(t *testing.T) {
	_, err := LoadConfigFrom(map[string]string{"SESSION_TTL": "soon"})
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.CookieSameSite = "sometimes"
	_, err = NewHandlerFromConfig(cfg, testCodec(), nil)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.RedisURL = "://bad"
	_, err = NewHandlerFromConfig(cfg, testCodec(), nil)
	assert.Error(t, err)
}

func TestNewHandlerFromConfigWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := DefaultConfig()
	cfg.RedisURL = "redis://" + mr.Addr() + "/0"

	h, err := NewHandlerFromConfig(cfg, testCodec(), nil)
	require.NoError(t, err)
	require.NotNil(t, h.revoker)

	req := requestWithCookie(DefaultCookieName, storedCookie)
	require.NoError(t, h.Destroy(httptest.NewRecorder(), req))
	assert.True(t, mr.Exists("jwt:session:revoked:XjWl_g"))

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())

	err = h.Destroy(httptest.NewRecorder(), req)
	assert.ErrorIs(t, err, blacklist.ErrStoreClosed)
}

func TestHandlerCloseWithoutOwnedResources(t *testing.T) {
	revoker := NewMemoryRevoker(MemoryRevokerConfig{}, nil)
	defer revoker.Close()

	h := NewHandler(testCodec(), WithRevoker(revoker))
	require.NoError(t, h.Close())

	revoked, err := revoker.IsRevoked(context.Background(), "XjWl_g")
	require.NoError(t, err, "a caller-owned revoker stays open")
	assert.False(t, revoked)
}
