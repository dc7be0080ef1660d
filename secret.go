package jwt

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Firehed/jwt/internal/security"
)

const redacted = "[REDACTED]"

// Secret is immutable key material. It never prints, logs or serializes its
// contents; use Reveal to get at the bytes.
type Secret struct {
	b *security.SecureBytes
}

// NewSecret copies key into a new Secret
func NewSecret(key []byte) Secret {
	return Secret{b: security.NewSecureBytesFromSlice(key)}
}

// NewSecretString returns a Secret holding the bytes of key
func NewSecretString(key string) Secret {
	return NewSecret([]byte(key))
}

// Reveal returns a copy of the key material
func (s Secret) Reveal() []byte {
	if s.b == nil {
		return nil
	}
	return s.b.Copy()
}

// Len returns the key length in bytes
func (s Secret) Len() int {
	if s.b == nil {
		return 0
	}
	return s.b.Len()
}

// Destroy wipes the key material. Copies of s share it and are wiped too;
// signing or verifying with a destroyed secret fails with ErrSecretDestroyed.
func (s Secret) Destroy() {
	if s.b != nil {
		s.b.Destroy()
	}
}

func (s Secret) destroyed() bool {
	return s.b != nil && s.b.Destroyed()
}

func (s Secret) use(fn func([]byte)) {
	if s.b == nil {
		fn(nil)
		return
	}
	s.b.Use(fn)
}

func (s Secret) isWeak() bool {
	var weak bool
	s.use(func(key []byte) { weak = security.IsWeakKey(key) })
	return weak
}

func (s Secret) String() string { return redacted }

func (s Secret) GoString() string { return "jwt.Secret(" + redacted + ")" }

// Format redacts every verb
func (s Secret) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('#') {
		_, _ = io.WriteString(f, s.GoString())
		return
	}
	_, _ = io.WriteString(f, redacted)
}

func (s Secret) MarshalJSON() ([]byte, error) { return []byte(`"` + redacted + `"`), nil }

func (s Secret) MarshalText() ([]byte, error) { return []byte(redacted), nil }

func (s Secret) LogValue() slog.Value { return slog.StringValue(redacted) }
