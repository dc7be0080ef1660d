package session

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Firehed/jwt"
)

// Config provides environment-based configuration for the session handler
type Config struct {
	CookieName     string        `env:"SESSION_COOKIE_NAME" envDefault:"jwt_sid"`
	CookiePath     string        `env:"SESSION_COOKIE_PATH" envDefault:"/"`
	CookieDomain   string        `env:"SESSION_COOKIE_DOMAIN"`
	CookieMaxAge   int           `env:"SESSION_COOKIE_MAX_AGE" envDefault:"0"`
	CookieSecure   bool          `env:"SESSION_COOKIE_SECURE" envDefault:"true"`
	CookieHTTPOnly bool          `env:"SESSION_COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSameSite string        `env:"SESSION_COOKIE_SAME_SITE" envDefault:"lax"`
	TTL            time.Duration `env:"SESSION_TTL" envDefault:"0s"`

	// RedisURL enables Redis-backed revocation, e.g. redis://localhost:6379/0
	RedisURL    string `env:"SESSION_REDIS_URL"`
	RedisPrefix string `env:"SESSION_REDIS_PREFIX" envDefault:"jwt:session:revoked"`
}

// DefaultConfig returns a Config with the same defaults as the environment tags
func DefaultConfig() Config {
	return Config{
		CookieName:     DefaultCookieName,
		CookiePath:     "/",
		CookieSecure:   true,
		CookieHTTPOnly: true,
		CookieSameSite: "lax",
		RedisPrefix:    "jwt:session:revoked",
	}
}

// LoadConfig reads a .env file, if present, and then parses the environment
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("session: loading .env: %w", err)
	}
	return parseConfig(env.Options{})
}

// LoadConfigFrom parses the given variables instead of the process environment
func LoadConfigFrom(environ map[string]string) (Config, error) {
	return parseConfig(env.Options{Environment: environ})
}

func parseConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("session: %w", err)
	}
	return cfg, nil
}

func parseSameSite(s string) (http.SameSite, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return http.SameSiteDefaultMode, nil
	case "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return 0, fmt.Errorf("session: unknown SameSite mode %q", s)
	}
}

// Options converts the configuration into handler options
func (c Config) Options() ([]Option, error) {
	sameSite, err := parseSameSite(c.CookieSameSite)
	if err != nil {
		return nil, err
	}
	return []Option{
		WithCookieName(c.CookieName),
		WithCookieOptions(CookieOptions{
			Path:     c.CookiePath,
			Domain:   c.CookieDomain,
			MaxAge:   c.CookieMaxAge,
			Secure:   c.CookieSecure,
			HTTPOnly: c.CookieHTTPOnly,
			SameSite: sameSite,
		}),
		WithTTL(c.TTL),
	}, nil
}

// NewHandlerFromConfig creates a Handler from configuration. When RedisURL is
// set, destroyed sessions are revoked in Redis through a client the handler
// owns; call Close to release it. Additional options override config values.
func NewHandlerFromConfig(cfg Config, codec *jwt.Codec, logger *slog.Logger, opts ...Option) (*Handler, error) {
	configOpts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	configOpts = append(configOpts, WithLogger(logger))

	var closers []io.Closer
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("session: invalid redis url: %w", err)
		}
		client := redis.NewClient(redisOpts)
		revoker := NewRedisRevoker(client, cfg.RedisPrefix, cfg.TTL)
		configOpts = append(configOpts, WithRevoker(revoker))
		closers = append(closers, revoker, client)
	}

	h := NewHandler(codec, append(configOpts, opts...)...)
	h.closers = closers
	return h, nil
}
