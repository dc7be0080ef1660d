package jwt

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/Firehed/jwt/internal/security"
)

const base64SecretPrefix = "base64:"

// KeySpec describes one key to register
type KeySpec struct {
	ID        KeyID
	Algorithm Algorithm
	Secret    Secret
}

// KeySpecs is a list of keys in registration order. As text it is a
// comma-separated list of "id:alg:secret" entries. All-digit ids become integer
// key ids; a secret prefixed with "base64:" is decoded from standard base64.
type KeySpecs []KeySpec

// UnmarshalText parses a key list such as "1:HS256:s3cr3t,legacy:HS512:base64:c2VjcmV0"
func (k *KeySpecs) UnmarshalText(text []byte) error {
	var specs KeySpecs
	for i, entry := range strings.Split(string(text), ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		spec, err := parseKeySpec(entry)
		if err != nil {
			specs.destroy()
			return fmt.Errorf("key entry %d: %w", i, err)
		}
		specs = append(specs, spec)
	}
	*k = specs
	return nil
}

func (k KeySpecs) destroy() {
	for _, spec := range k {
		spec.Secret.Destroy()
	}
}

func parseKeySpec(entry string) (KeySpec, error) {
	parts := strings.SplitN(entry, ":", 3)
	if len(parts) != 3 {
		return KeySpec{}, errors.New("expected id:alg:secret")
	}

	id := parseKeyID(parts[0])
	if id.IsZero() {
		return KeySpec{}, errors.New("empty key id")
	}

	alg, err := ParseAlgorithm(parts[1])
	if err != nil {
		return KeySpec{}, err
	}

	raw := []byte(parts[2])
	if encoded, ok := strings.CutPrefix(parts[2], base64SecretPrefix); ok {
		raw, err = base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return KeySpec{}, fmt.Errorf("invalid base64 secret: %w", err)
		}
	}
	secret := NewSecret(raw)
	security.ZeroBytes(raw)

	return KeySpec{ID: id, Algorithm: alg, Secret: secret}, nil
}

// parseKeyID turns an all-digit id into an integer id and anything else into a string id
func parseKeyID(s string) KeyID {
	s = strings.TrimSpace(s)
	if s == "" {
		return KeyID{}
	}
	if strings.Trim(s, "0123456789") == "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return IntKeyID(n)
		}
	}
	return StringKeyID(s)
}

// Config describes a key registry and decode policy, loadable from the environment
type Config struct {
	// Keys to register, in order. The last one is the fallback key.
	Keys KeySpecs `env:"JWT_KEYS"`

	// DefaultKey names the key used when no id is given
	DefaultKey string `env:"JWT_DEFAULT_KEY"`

	// RejectWeakKeys turns weak HMAC secrets into a configuration error instead of a warning
	RejectWeakKeys bool `env:"JWT_REJECT_WEAK_KEYS" envDefault:"false"`

	// Leeway tolerates clock skew when checking exp and nbf
	Leeway time.Duration `env:"JWT_LEEWAY" envDefault:"0s"`
}

// DefaultConfig returns a configuration with no keys and strict time checks
func DefaultConfig() Config {
	return Config{}
}

// LoadConfig reads a .env file, if present, and then parses the environment
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("%w: loading .env: %v", ErrInvalidConfig, err)
	}
	return parseConfig(env.Options{})
}

// LoadConfigFrom parses the given variables instead of the process environment
func LoadConfigFrom(environ map[string]string) (Config, error) {
	return parseConfig(env.Options{Environment: environ})
}

func parseConfig(opts env.Options) (Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		cfg.Keys.destroy()
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		cfg.Keys.destroy()
		return Config{}, err
	}
	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c == nil {
		return ErrInvalidConfig
	}

	if len(c.Keys) == 0 {
		return &ConfigError{Field: "Keys", Message: "at least one key is required"}
	}

	seen := make(map[KeyID]struct{}, len(c.Keys))
	for _, k := range c.Keys {
		if k.ID.IsZero() {
			return &ConfigError{Field: "Keys", Message: "key id must not be empty"}
		}
		if _, dup := seen[k.ID]; dup {
			return &ConfigError{Field: "Keys", Message: fmt.Sprintf("duplicate key id '%s'", k.ID)}
		}
		seen[k.ID] = struct{}{}

		if !k.Algorithm.Supported() {
			return &ConfigError{
				Field:   "Keys",
				Message: fmt.Sprintf("key '%s' uses algorithm %q", k.ID, k.Algorithm),
				Err:     ErrUnsupportedAlgorithm,
			}
		}
		if c.RejectWeakKeys && k.Algorithm != None && k.Secret.isWeak() {
			return &ConfigError{Field: "Keys", Message: fmt.Sprintf("key '%s' is too weak", k.ID)}
		}
	}

	if c.DefaultKey != "" {
		if _, ok := seen[parseKeyID(c.DefaultKey)]; !ok {
			return &ConfigError{Field: "DefaultKey", Message: fmt.Sprintf("no key with id '%s'", c.DefaultKey)}
		}
	}

	if c.Leeway < 0 {
		return &ConfigError{Field: "Leeway", Message: "must not be negative"}
	}

	return nil
}

// KeyContainer validates the configuration and registers its keys. Weak
// secrets are logged when RejectWeakKeys is off.
func (c *Config) KeyContainer(logger *slog.Logger) (*KeyContainer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	keys := NewKeyContainer()
	for _, k := range c.Keys {
		switch {
		case k.Algorithm == None:
			logger.Warn("key signs without a signature",
				slog.String("kid", k.ID.String()))
		case k.Secret.isWeak():
			logger.Warn("weak signing key",
				slog.String("kid", k.ID.String()),
				slog.String("alg", k.Algorithm.String()),
				slog.Int("length", k.Secret.Len()),
				slog.Any("secret", k.Secret))
		}
		keys.AddKey(k.ID, k.Algorithm, k.Secret)
	}

	if c.DefaultKey != "" {
		keys.SetDefaultKey(parseKeyID(c.DefaultKey))
	}
	return keys, nil
}

// Codec builds a Codec over a frozen registry of the configured keys
func (c *Config) Codec(logger *slog.Logger, opts ...Option) (*Codec, error) {
	keys, err := c.KeyContainer(logger)
	if err != nil {
		return nil, err
	}
	if c.Leeway > 0 {
		opts = append([]Option{WithLeeway(c.Leeway)}, opts...)
	}
	return NewCodec(keys.Freeze(), opts...), nil
}
