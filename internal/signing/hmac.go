package signing

import (
	"crypto"
	"crypto/hmac"
	"fmt"

	_ "crypto/sha256"
	_ "crypto/sha512"
)

type hmacSigningMethod struct {
	Name     string
	HashFunc crypto.Hash
}

// Sign returns the raw HMAC of payload keyed with key
func (h *hmacSigningMethod) Sign(payload []byte, key []byte) ([]byte, error) {
	if !h.HashFunc.Available() {
		return nil, fmt.Errorf("hash function %v not available", h.HashFunc)
	}

	mac := hmac.New(h.HashFunc.New, key)
	mac.Write(payload)
	return mac.Sum(nil), nil
}

func (h *hmacSigningMethod) Alg() string {
	return h.Name
}

var (
	HS256 Method = &hmacSigningMethod{"HS256", crypto.SHA256}
	HS384 Method = &hmacSigningMethod{"HS384", crypto.SHA384}
	HS512 Method = &hmacSigningMethod{"HS512", crypto.SHA512}
)
