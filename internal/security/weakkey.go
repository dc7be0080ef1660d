package security

import (
	"bytes"
	"strings"
)

var weakPatterns = [...]string{
	"12345678", "87654321", "11111111", "00000000", "aaaaaaaa",
	"abcdefgh", "qwerty", "asdfgh", "zxcvbn", "letmein", "welcome",
	"changeme", "default", "example", "sample", "password", "secret",
	"test", "admin", "token",
}

// MinKeyLength is the shortest HMAC secret not reported as weak
const MinKeyLength = 32

// IsWeakKey reports whether key looks guessable: too short, a single
// repeated byte, a short repeating pattern, a run of sequential bytes,
// low byte diversity, or containing a well-known placeholder word.
func IsWeakKey(key []byte) bool {
	if len(key) < MinKeyLength {
		return true
	}

	if bytes.Count(key, key[:1]) == len(key) {
		return true
	}

	lower := strings.ToLower(string(key))
	for _, pattern := range weakPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}

	return hasLowEntropy(key) || isSequential(key) || hasShortPeriod(key)
}

func hasLowEntropy(key []byte) bool {
	var seen [256]bool
	unique := 0
	for _, b := range key {
		if !seen[b] {
			seen[b] = true
			unique++
		}
	}
	// fewer than 30% distinct bytes
	return unique*10 < len(key)*3
}

func isSequential(key []byte) bool {
	const run = 8
	ascending, descending := true, true
	for i := 1; i < run; i++ {
		if key[i] != key[i-1]+1 {
			ascending = false
		}
		if key[i] != key[i-1]-1 {
			descending = false
		}
	}
	return ascending || descending
}

func hasShortPeriod(key []byte) bool {
	for period := 2; period <= 4; period++ {
		repeated := true
		for i := period; i < len(key); i++ {
			if key[i] != key[i%period] {
				repeated = false
				break
			}
		}
		if repeated {
			return true
		}
	}
	return false
}
