package jwt

import (
	"encoding/json"
	"fmt"

	"github.com/Firehed/jwt/internal/signing"
)

// Algorithm identifies how a token is signed. The zero value means no
// algorithm has been chosen yet and encodes as JSON null.
type Algorithm uint8

const (
	// None produces an empty signature. Tokens using it never verify.
	None Algorithm = iota + 1

	HS256
	HS384
	HS512

	// Reserved: recognised on the wire, but selecting them fails with
	// ErrUnsupportedAlgorithm.
	ES256
	ES384
	ES512
	PS256
	PS384
	PS512
	RS256
	RS384
	RS512
)

var algorithmNames = [...]string{
	None:  "none",
	HS256: "HS256",
	HS384: "HS384",
	HS512: "HS512",
	ES256: "ES256",
	ES384: "ES384",
	ES512: "ES512",
	PS256: "PS256",
	PS384: "PS384",
	PS512: "PS512",
	RS256: "RS256",
	RS384: "RS384",
	RS512: "RS512",
}

// ParseAlgorithm looks up an algorithm by its wire name. Names are case sensitive.
func ParseAlgorithm(name string) (Algorithm, error) {
	for alg, n := range algorithmNames {
		if n != "" && n == name {
			return Algorithm(alg), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
}

// String returns the wire name, or "" for the zero value and unknown values
func (a Algorithm) String() string {
	if int(a) < len(algorithmNames) {
		return algorithmNames[a]
	}
	return ""
}

// Supported reports whether tokens can be signed with a
func (a Algorithm) Supported() bool {
	_, err := a.method()
	return err == nil
}

func (a Algorithm) method() (signing.Method, error) {
	var m signing.Method
	switch a {
	case None:
		m = signing.None
	case HS256:
		m = signing.HS256
	case HS384:
		m = signing.HS384
	case HS512:
		m = signing.HS512
	case ES256, ES384, ES512, PS256, PS384, PS512, RS256, RS384, RS512:
		return nil, fmt.Errorf("%w: %s is not implemented", ErrUnsupportedAlgorithm, a)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedAlgorithm, uint8(a))
	}

	if m.Alg() != a.String() {
		return nil, fmt.Errorf("%w: %s is backed by a %s signer", ErrUnsupportedAlgorithm, a, m.Alg())
	}
	return m, nil
}

// sign computes the raw signature of payload
func (a Algorithm) sign(payload []byte, secret Secret) ([]byte, error) {
	m, err := a.method()
	if err != nil {
		return nil, err
	}
	if a != None && secret.destroyed() {
		return nil, ErrSecretDestroyed
	}

	var sig []byte
	secret.use(func(key []byte) {
		sig, err = m.Sign(payload, key)
	})
	return sig, err
}

func (a Algorithm) MarshalJSON() ([]byte, error) {
	if a == 0 {
		return []byte("null"), nil
	}
	name := a.String()
	if name == "" {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedAlgorithm, uint8(a))
	}
	return json.Marshal(name)
}

func (a *Algorithm) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = 0
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, data)
	}
	alg, err := ParseAlgorithm(name)
	if err != nil {
		return err
	}
	*a = alg
	return nil
}

func (a Algorithm) MarshalText() ([]byte, error) {
	name := a.String()
	if name == "" {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedAlgorithm, uint8(a))
	}
	return []byte(name), nil
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	alg, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = alg
	return nil
}
