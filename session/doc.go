// Package session stores HTTP session data in a signed token kept in a cookie.
//
// The session payload is an opaque string carried in the "sd" claim. Reading
// verifies the cookie against the codec's key registry; cookies that were
// tampered with, signed by an unknown key, expired or revoked read as an
// empty session.
//
//	keys := jwt.NewKeyContainer().
//		AddKey(jwt.IntKeyID(1), jwt.HS256, jwt.NewSecretString(secret))
//	h := session.NewHandler(jwt.NewCodec(keys.Freeze()), session.WithTTL(time.Hour))
//
//	http.Handle("/", h.Middleware(app))
//
// Inside app, session.FromContext(r.Context()) returns the stored data and
// h.Write / h.Destroy update the cookie.
package session
