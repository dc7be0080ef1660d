package jwt

// Codec pairs a key registry with decode options
type Codec struct {
	keys KeyResolver
	opts []Option
}

// NewCodec returns a Codec that signs and verifies with keys
func NewCodec(keys KeyResolver, opts ...Option) *Codec {
	return &Codec{keys: keys, opts: opts}
}

// Encode signs claims with the key resolved for id, or the default key when id is omitted
func (c *Codec) Encode(claims *Claims, id ...KeyID) (string, error) {
	return New(claims).SetKeys(c.keys).Encode(id...)
}

// Decode parses and authenticates encoded
func (c *Codec) Decode(encoded string) (*Token, error) {
	return Decode(encoded, c.keys, c.opts...)
}

// Keys returns the codec's key registry
func (c *Codec) Keys() KeyResolver {
	return c.keys
}
