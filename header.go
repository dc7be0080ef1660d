package jwt

import (
	"github.com/Firehed/jwt/internal/core"
)

// Header is the token header. Unknown parameters and their order survive decoding.
type Header struct {
	obj *core.Object
}

func newHeader() *Header {
	obj := core.NewObject()
	obj.Set(HeaderAlgorithm, nil)
	obj.Set(HeaderType, "JWT")
	return &Header{obj: obj}
}

// Algorithm returns the "alg" parameter. After decoding it holds the algorithm
// of the key the token was verified with, not the value the token claimed.
func (h *Header) Algorithm() Algorithm {
	switch v, _ := h.obj.Get(HeaderAlgorithm); t := v.(type) {
	case Algorithm:
		return t
	case string:
		alg, _ := ParseAlgorithm(t)
		return alg
	}
	return 0
}

// Type returns the "typ" parameter
func (h *Header) Type() string {
	v, _ := h.obj.Get(HeaderType)
	s, _ := v.(string)
	return s
}

// KeyID returns the "kid" parameter, or the zero KeyID if absent or not an id
func (h *Header) KeyID() KeyID {
	id, _ := h.keyID()
	return id
}

func (h *Header) keyID() (KeyID, error) {
	v, _ := h.obj.Get(HeaderKeyID)
	return keyIDFromValue(v)
}

// Get returns any header parameter
func (h *Header) Get(name string) (any, bool) {
	return h.obj.Get(name)
}

// Keys returns the parameter names in order
func (h *Header) Keys() []string {
	return h.obj.Keys()
}

func (h *Header) setAlgorithm(alg Algorithm) {
	h.obj.Set(HeaderAlgorithm, alg)
}

func (h *Header) setKeyID(id KeyID) {
	if id.IsZero() {
		h.obj.Delete(HeaderKeyID)
		return
	}
	h.obj.Set(HeaderKeyID, id)
}

func (h *Header) MarshalJSON() ([]byte, error) {
	return h.obj.MarshalJSON()
}
