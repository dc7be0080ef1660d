package session

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Firehed/jwt"
)

const (
	// Claim holds the session data
	Claim = "sd"

	// DefaultCookieName is the cookie used when none is configured
	DefaultCookieName = "jwt_sid"

	// MaxCookieSize is the exclusive upper bound on an encoded session token
	MaxCookieSize = 4096
)

var (
	// ErrSessionTooLarge is returned by Write when the token would not fit in a cookie
	ErrSessionTooLarge = errors.New("session: too much data in session to store in a cookie")

	// ErrInvalidSessionData is returned by Read when the session claim is not a string
	ErrInvalidSessionData = errors.New("session: session data claim is not a string")
)

// CookieOptions are the attributes set on the session cookie
type CookieOptions struct {
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	HTTPOnly bool
	SameSite http.SameSite
}

// DefaultCookieOptions returns the attributes used when none are configured
func DefaultCookieOptions() CookieOptions {
	return CookieOptions{
		Path:     "/",
		HTTPOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Handler reads and writes session cookies
type Handler struct {
	codec      *jwt.Codec
	cookieName string
	cookie     CookieOptions
	ttl        time.Duration
	revoker    Revoker
	logger     *slog.Logger
	now        func() time.Time

	// resources created on the caller's behalf, released by Close
	closers []io.Closer
}

// Option configures a Handler
type Option func(*Handler)

// WithCookieName sets the cookie name. Default is "jwt_sid".
func WithCookieName(name string) Option {
	return func(h *Handler) {
		if name != "" {
			h.cookieName = name
		}
	}
}

// WithCookieOptions sets the cookie attributes
func WithCookieOptions(opts CookieOptions) Option {
	return func(h *Handler) {
		h.cookie = opts
	}
}

// WithTTL adds iat and exp claims so sessions expire after ttl
func WithTTL(ttl time.Duration) Option {
	return func(h *Handler) {
		h.ttl = ttl
	}
}

// WithRevoker enables revocation of destroyed sessions
func WithRevoker(r Revoker) Option {
	return func(h *Handler) {
		h.revoker = r
	}
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithClock sets the clock used for iat, exp and cookie expiry
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// NewHandler creates a Handler that signs and verifies cookies with codec
func NewHandler(codec *jwt.Codec, opts ...Option) *Handler {
	h := &Handler{
		codec:      codec,
		cookieName: DefaultCookieName,
		cookie:     DefaultCookieOptions(),
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Close releases what the handler created for itself, such as the revoker and
// Redis client opened by NewHandlerFromConfig. A revoker passed with
// WithRevoker stays owned by the caller.
func (h *Handler) Close() error {
	var errs []error
	for _, c := range h.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	h.closers = nil
	return errors.Join(errs...)
}

// CookieName returns the name of the session cookie
func (h *Handler) CookieName() string {
	return h.cookieName
}

// Read returns the session data in the request's cookie. A missing cookie and
// a cookie that cannot be trusted both read as an empty session; decoding
// faults other than those are returned.
func (h *Handler) Read(r *http.Request) (string, error) {
	c, err := r.Cookie(h.cookieName)
	if err != nil {
		return "", nil
	}

	claims, err := h.verify(c.Value)
	if err != nil {
		if isRejected(err) {
			h.logger.Debug("session cookie rejected", slog.Any("error", err))
			return "", nil
		}
		return "", err
	}

	if h.revoker != nil {
		jti, _ := claims.GetString(jwt.ClaimJWTID)
		revoked, err := h.revoker.IsRevoked(r.Context(), jti)
		if err != nil {
			return "", err
		}
		if revoked {
			h.logger.Debug("session revoked", slog.String("jti", jti))
			return "", nil
		}
	}

	v, ok := claims.Get(Claim)
	if !ok || v == nil {
		return "", nil
	}
	data, ok := v.(string)
	if !ok {
		return "", ErrInvalidSessionData
	}
	return data, nil
}

func (h *Handler) verify(encoded string) (*jwt.Claims, error) {
	tok, err := h.codec.Decode(encoded)
	if err != nil {
		return nil, err
	}
	return tok.Claims()
}

func isRejected(err error) bool {
	return errors.Is(err, jwt.ErrKeyNotFound) ||
		errors.Is(err, jwt.ErrInvalidSignature) ||
		errors.Is(err, jwt.ErrTokenExpired) ||
		errors.Is(err, jwt.ErrTokenNotYetValid)
}

// Write stores data in a freshly signed cookie. An empty sessionID gets a new
// random id, carried as the token's jti.
func (h *Handler) Write(w http.ResponseWriter, sessionID, data string) error {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	claims := jwt.NewClaims().Set(jwt.ClaimJWTID, sessionID)

	var expires time.Time
	if h.ttl > 0 {
		now := h.now()
		expires = now.Add(h.ttl)
		claims.Set(jwt.ClaimIssuedAt, jwt.NewNumericDate(now))
		claims.Set(jwt.ClaimExpirationTime, jwt.NewNumericDate(expires))
	}
	claims.Set(Claim, data)

	encoded, err := h.codec.Encode(claims)
	if err != nil {
		return err
	}
	if len(encoded) >= MaxCookieSize {
		return ErrSessionTooLarge
	}

	http.SetCookie(w, h.newCookie(encoded, expires))
	return nil
}

// Destroy expires the session cookie. With a revoker configured, the token in
// the request's cookie is also revoked so copies of it stop working.
func (h *Handler) Destroy(w http.ResponseWriter, r *http.Request) error {
	c := h.newCookie("", h.now().Add(-24*time.Hour))
	c.MaxAge = -1
	http.SetCookie(w, c)

	if h.revoker == nil || r == nil {
		return nil
	}

	existing, err := r.Cookie(h.cookieName)
	if err != nil {
		return nil
	}

	claims, err := h.verify(existing.Value)
	if err != nil {
		if isRejected(err) {
			return nil
		}
		return err
	}

	jti, ok := claims.GetString(jwt.ClaimJWTID)
	if !ok || jti == "" {
		return nil
	}
	expiresAt, _ := claims.GetTime(jwt.ClaimExpirationTime)
	return h.revoker.Revoke(r.Context(), jti, expiresAt)
}

func (h *Handler) newCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     h.cookie.Path,
		Domain:   h.cookie.Domain,
		MaxAge:   h.cookie.MaxAge,
		Expires:  expires,
		Secure:   h.cookie.Secure,
		HttpOnly: h.cookie.HTTPOnly,
		SameSite: h.cookie.SameSite,
	}
}
