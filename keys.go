package jwt

// Key is a registered signing key
type Key struct {
	ID        KeyID
	Algorithm Algorithm
	Secret    Secret
}

// KeyResolver resolves the key a token is signed or verified with. A zero id
// means the caller has no preference.
type KeyResolver interface {
	GetKey(id KeyID) (Key, error)
}

type registry struct {
	keys      map[KeyID]Key
	defaultID KeyID
	lastID    KeyID
}

// resolve picks, in order: the explicit id, the default id, the most recently added id
func (r *registry) resolve(id KeyID) (Key, error) {
	switch {
	case !id.IsZero():
	case !r.defaultID.IsZero():
		id = r.defaultID
	case !r.lastID.IsZero():
		id = r.lastID
	default:
		return Key{}, &KeyNotFoundError{}
	}

	key, ok := r.keys[id]
	if !ok {
		return Key{}, &KeyNotFoundError{ID: id}
	}
	return key, nil
}

func (r *registry) destroy() {
	for _, key := range r.keys {
		key.Secret.Destroy()
	}
}

// KeyContainer collects keys before they are frozen into a KeySet.
// It is not safe for concurrent use.
type KeyContainer struct {
	r registry
}

// NewKeyContainer returns an empty KeyContainer
func NewKeyContainer() *KeyContainer {
	return &KeyContainer{r: registry{keys: make(map[KeyID]Key)}}
}

// AddKey registers secret under id, replacing any key already there, and
// marks id as the most recently added. AddKey panics if id is the zero KeyID.
func (c *KeyContainer) AddKey(id KeyID, alg Algorithm, secret Secret) *KeyContainer {
	if id.IsZero() {
		panic("jwt: AddKey called with the zero KeyID")
	}
	if c.r.keys == nil {
		c.r.keys = make(map[KeyID]Key)
	}
	c.r.keys[id] = Key{ID: id, Algorithm: alg, Secret: secret}
	c.r.lastID = id
	return c
}

// SetDefaultKey sets the id used when no explicit id is given. The id is not
// checked against the registered keys.
func (c *KeyContainer) SetDefaultKey(id KeyID) *KeyContainer {
	c.r.defaultID = id
	return c
}

// GetKey resolves id against the keys added so far
func (c *KeyContainer) GetKey(id KeyID) (Key, error) {
	return c.r.resolve(id)
}

// Len returns the number of registered keys
func (c *KeyContainer) Len() int {
	return len(c.r.keys)
}

// Destroy wipes every registered secret. Sets frozen from the container share
// the secrets and stop signing and verifying as well.
func (c *KeyContainer) Destroy() {
	c.r.destroy()
}

// Freeze returns an immutable snapshot of the container. Later changes to the
// container do not affect the snapshot.
func (c *KeyContainer) Freeze() *KeySet {
	keys := make(map[KeyID]Key, len(c.r.keys))
	for id, key := range c.r.keys {
		keys[id] = key
	}
	return &KeySet{r: registry{
		keys:      keys,
		defaultID: c.r.defaultID,
		lastID:    c.r.lastID,
	}}
}

// KeySet is a frozen key registry, safe for concurrent use
type KeySet struct {
	r registry
}

// GetKey resolves id: an explicit id wins, then the default id, then the most
// recently added key. A miss returns a *KeyNotFoundError.
func (s *KeySet) GetKey(id KeyID) (Key, error) {
	return s.r.resolve(id)
}

// Len returns the number of keys in the set
func (s *KeySet) Len() int {
	return len(s.r.keys)
}

// Destroy wipes the secrets of every key in the set
func (s *KeySet) Destroy() {
	s.r.destroy()
}
