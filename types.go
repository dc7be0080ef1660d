package jwt

// Registered claim names
const (
	ClaimIssuer         = "iss"
	ClaimSubject        = "sub"
	ClaimAudience       = "aud"
	ClaimExpirationTime = "exp"
	ClaimNotBefore      = "nbf"
	ClaimIssuedAt       = "iat"
	ClaimJWTID          = "jti"
)

// Registered header parameter names
const (
	HeaderAlgorithm                = "alg"
	HeaderJWKSetURL                = "jku"
	HeaderJSONWebKey               = "jwk"
	HeaderKeyID                    = "kid"
	HeaderX509URL                  = "x5u"
	HeaderX509CertChain            = "x5c"
	HeaderX509CertSHA1Thumbprint   = "x5t"
	HeaderX509CertSHA256Thumbprint = "x5t#S256"
	HeaderType                     = "typ"
)
