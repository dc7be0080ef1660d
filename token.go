package jwt

import (
	"errors"
	"fmt"

	"github.com/Firehed/jwt/internal/core"
	"github.com/Firehed/jwt/internal/security"
)

// verification records whether a token's claims may be trusted. A token
// moves from unverified to verified at most once and never back.
type verification interface {
	isVerified() bool
}

type unverified struct {
	alg Algorithm
}

type verified struct{}

func (unverified) isVerified() bool { return false }

func (verified) isVerified() bool { return true }

// Token is a set of claims plus the header that goes with them.
//
// Tokens built with New are trusted: their claims are authored locally.
// Tokens returned by Decode are trusted only when their signature matched the
// key chosen by the registry.
type Token struct {
	header    *Header
	claims    *Claims
	signature string
	keys      KeyResolver
	state     verification
}

// New creates a token carrying a copy of claims. A nil claims is treated as empty.
func New(claims *Claims) *Token {
	return &Token{
		header: newHeader(),
		claims: claims.Clone(),
		state:  verified{},
	}
}

// SetKeys sets the registry used by Encode
func (t *Token) SetKeys(keys KeyResolver) *Token {
	t.keys = keys
	return t
}

// Encode signs the token with the key resolved for id and returns the compact
// serialization. Without an id, the registry's default or most recently added
// key is used. The chosen algorithm and key id are written into the header.
func (t *Token) Encode(id ...KeyID) (string, error) {
	if t.keys == nil {
		return "", ErrMissingKeys
	}

	var want KeyID
	if len(id) > 0 {
		want = id[0]
	}

	key, err := t.keys.GetKey(want)
	if err != nil {
		return "", err
	}

	t.header.setAlgorithm(key.Algorithm)
	t.header.setKeyID(key.ID)
	return t.signedString(key.Algorithm, key.Secret)
}

// SignWith signs the token with alg and secret directly, without a registry.
// The header carries no "kid"; decoders resolve such tokens through their
// default or most recently added key.
func (t *Token) SignWith(alg Algorithm, secret Secret) (string, error) {
	t.header.setAlgorithm(alg)
	t.header.setKeyID(KeyID{})
	return t.signedString(alg, secret)
}

func (t *Token) signingInput() (string, error) {
	header, err := core.EncodeSegment(t.header)
	if err != nil {
		return "", fmt.Errorf("%w: header: %v", ErrEncodingFailed, err)
	}
	claims, err := core.EncodeSegment(t.claims)
	if err != nil {
		return "", fmt.Errorf("%w: claims: %v", ErrEncodingFailed, err)
	}
	return core.SigningInput(header, claims), nil
}

func (t *Token) signedString(alg Algorithm, secret Secret) (string, error) {
	if _, err := alg.method(); err != nil {
		return "", err
	}

	input, err := t.signingInput()
	if err != nil {
		return "", err
	}

	sig, err := alg.sign([]byte(input), secret)
	if err != nil {
		return "", err
	}

	return input + "." + core.EncodeBytes(sig), nil
}

// Decode parses a compact token and authenticates it against keys.
//
// A bad signature is not an error: the token is returned unverified, its
// claims readable only through UnverifiedClaims. Decode fails on a malformed
// token, on an unresolvable key, and on exp/nbf checks.
func Decode(encoded string, keys KeyResolver, opts ...Option) (*Token, error) {
	if keys == nil {
		return nil, ErrMissingKeys
	}
	o := newOptions(opts)

	h, c, sig, ok := core.Split(encoded)
	if !ok {
		return nil, &FormatError{Segment: SegmentToken, Message: "token must have exactly three segments"}
	}

	headerObj, err := core.DecodeSegment(h)
	if err != nil {
		return nil, segmentError(SegmentHeader, err)
	}
	claimsObj, err := core.DecodeSegment(c)
	if err != nil {
		return nil, segmentError(SegmentClaims, err)
	}

	t := &Token{
		header:    &Header{obj: headerObj},
		claims:    &Claims{obj: claimsObj},
		signature: sig,
		keys:      keys,
		state:     unverified{},
	}

	if err := t.authenticate(); err != nil {
		return nil, err
	}
	if err := t.checkTimes(o); err != nil {
		return nil, err
	}
	return t, nil
}

func segmentError(segment string, err error) error {
	msg := "segment is not a JSON object"
	switch {
	case errors.Is(err, core.ErrInvalidBase64):
		msg = "segment is not valid base64url"
	case errors.Is(err, core.ErrInvalidJSON):
		msg = "segment is not valid JSON"
	}
	return &FormatError{Segment: segment, Message: msg, Err: err}
}

// authenticate verifies the signature using the algorithm registered for the
// resolved key. The header's own "alg" is overwritten and never consulted.
func (t *Token) authenticate() error {
	id, err := t.header.keyID()
	if err != nil {
		return &FormatError{Segment: SegmentHeader, Message: "invalid key id", Err: err}
	}

	key, err := t.keys.GetKey(id)
	if err != nil {
		return err
	}

	t.header.setAlgorithm(key.Algorithm)
	t.state = unverified{alg: key.Algorithm}

	if key.Algorithm == None {
		return nil
	}

	input, err := t.signingInput()
	if err != nil {
		return err
	}
	sig, err := key.Algorithm.sign([]byte(input), key.Secret)
	if err != nil {
		return err
	}

	if security.Equal([]byte(core.EncodeBytes(sig)), []byte(t.signature)) {
		t.state = verified{}
	}
	return nil
}

func (t *Token) checkTimes(o options) error {
	now := float64(o.now().Unix())
	leeway := o.leeway.Seconds()

	if exp, ok, err := t.timeClaim(ClaimExpirationTime); err != nil {
		return err
	} else if ok && now >= exp+leeway {
		return ErrTokenExpired
	}

	if nbf, ok, err := t.timeClaim(ClaimNotBefore); err != nil {
		return err
	} else if ok && now < nbf-leeway {
		return ErrTokenNotYetValid
	}

	return nil
}

func (t *Token) timeClaim(name string) (float64, bool, error) {
	v, ok := t.claims.Get(name)
	if !ok || v == nil {
		return 0, false, nil
	}
	f, ok := numericValue(v)
	if !ok {
		return 0, false, &FormatError{Segment: SegmentClaims, Message: fmt.Sprintf("%q must be a number", name)}
	}
	return f, true, nil
}

// Claims returns a copy of the claims of a trusted token. Reading the claims
// of a token decoded with a None key fails with ErrUnverifiedAccess; any other
// untrusted token fails with ErrInvalidSignature.
func (t *Token) Claims() (*Claims, error) {
	switch s := t.state.(type) {
	case verified:
		return t.claims.Clone(), nil
	case unverified:
		if s.alg == None {
			return nil, ErrUnverifiedAccess
		}
		return nil, ErrInvalidSignature
	default:
		return nil, ErrInvalidSignature
	}
}

// UnverifiedClaims returns a copy of the claims without checking the signature
func (t *Token) UnverifiedClaims() *Claims {
	return t.claims.Clone()
}

// KeyID returns the header's "kid", or the zero KeyID when absent
func (t *Token) KeyID() KeyID {
	return t.header.KeyID()
}

// Algorithm returns the header's algorithm. For decoded tokens this is the
// algorithm of the registry key, whatever the token itself declared.
func (t *Token) Algorithm() Algorithm {
	return t.header.Algorithm()
}

// Header returns the token header
func (t *Token) Header() *Header {
	return t.header
}

// IsVerified reports whether the claims may be trusted
func (t *Token) IsVerified() bool {
	return t.state.isVerified()
}
