package security

import (
	"crypto/subtle"
	"runtime"
	"sync"
)

// SecureBytes holds key material that can be wiped once it is no longer needed
type SecureBytes struct {
	data      []byte
	destroyed bool
	mu        sync.RWMutex
}

// NewSecureBytesFromSlice copies data into a new SecureBytes; the caller keeps ownership of data
func NewSecureBytesFromSlice(data []byte) *SecureBytes {
	secure := &SecureBytes{
		data: make([]byte, len(data)),
	}
	copy(secure.data, data)
	return secure
}

// Copy returns a fresh copy of the held bytes
func (s *SecureBytes) Copy() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

// Len returns the number of held bytes
func (s *SecureBytes) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Use calls fn with the held bytes without copying them. fn must not retain the slice.
func (s *SecureBytes) Use(fn func([]byte)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

// Destroy zeros the held bytes; later reads observe an empty value
func (s *SecureBytes) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data != nil {
		ZeroBytes(s.data)
		s.data = nil
	}
	s.destroyed = true
}

// Destroyed reports whether Destroy has been called
func (s *SecureBytes) Destroyed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.destroyed
}

// ZeroBytes overwrites data with zeros
func ZeroBytes(data []byte) {
	if len(data) == 0 {
		return
	}
	clear(data)
	runtime.KeepAlive(data)
}

// Equal reports whether actual matches expected. The running time depends
// only on len(expected), never on where the first differing byte sits.
func Equal(expected, actual []byte) bool {
	return subtle.ConstantTimeCompare(expected, actual) == 1
}
