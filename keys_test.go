package jwt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyID(t *testing.T) {
	var zero KeyID
	assert.True(t, zero.IsZero())
	assert.Equal(t, "", zero.String())

	i := IntKeyID(42)
	n, ok := i.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)
	_, ok = i.Str()
	assert.False(t, ok)
	assert.Equal(t, "42", i.String())

	s := StringKeyID("42")
	str, ok := s.Str()
	assert.True(t, ok)
	assert.Equal(t, "42", str)
	_, ok = s.Int()
	assert.False(t, ok)

	assert.NotEqual(t, i, s, "integer and string ids are distinct")
	assert.False(t, StringKeyID("").IsZero(), "an empty string is still a string id")
}

func TestKeyIDJSON(t *testing.T) {
	tests := []struct {
		id   KeyID
		json string
	}{
		{IntKeyID(3), `3`},
		{IntKeyID(-7), `-7`},
		{StringKeyID("abc"), `"abc"`},
		{StringKeyID("3"), `"3"`},
		{KeyID{}, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			out, err := json.Marshal(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.json, string(out))

			var back KeyID
			require.NoError(t, json.Unmarshal([]byte(tt.json), &back))
			assert.Equal(t, tt.id, back)
		})
	}

	var id KeyID
	assert.Error(t, json.Unmarshal([]byte(`1.5`), &id))
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
}

func TestKeyContainerPrecedence(t *testing.T) {
	a := NewSecretString("a")
	b := NewSecretString("b")
	c := NewSecretString("c")

	tests := []struct {
		name    string
		build   func() *KeyContainer
		lookup  KeyID
		want    KeyID
		wantErr bool
	}{
		{
			name: "explicit id",
			build: func() *KeyContainer {
				return NewKeyContainer().AddKey(IntKeyID(1), HS256, a).AddKey(IntKeyID(2), HS256, b)
			},
			lookup: IntKeyID(1),
			want:   IntKeyID(1),
		},
		{
			name: "explicit id beats default",
			build: func() *KeyContainer {
				return NewKeyContainer().AddKey(IntKeyID(1), HS256, a).AddKey(IntKeyID(2), HS256, b).SetDefaultKey(IntKeyID(2))
			},
			lookup: IntKeyID(1),
			want:   IntKeyID(1),
		},
		{
			name: "default beats last added",
			build: func() *KeyContainer {
				return NewKeyContainer().AddKey(IntKeyID(1), HS256, a).SetDefaultKey(IntKeyID(1)).AddKey(IntKeyID(2), HS256, b)
			},
			want: IntKeyID(1),
		},
		{
			name: "last added",
			build: func() *KeyContainer {
				return NewKeyContainer().AddKey(IntKeyID(1), HS256, a).AddKey(StringKeyID("x"), HS384, b).AddKey(IntKeyID(2), HS512, c)
			},
			want: IntKeyID(2),
		},
		{
			name: "re-adding an id makes it last",
			build: func() *KeyContainer {
				return NewKeyContainer().AddKey(IntKeyID(1), HS256, a).AddKey(IntKeyID(2), HS256, b).AddKey(IntKeyID(1), HS512, c)
			},
			want: IntKeyID(1),
		},
		{
			name: "unknown explicit id does not fall back",
			build: func() *KeyContainer {
				return NewKeyContainer().AddKey(IntKeyID(1), HS256, a)
			},
			lookup:  IntKeyID(9),
			want:    IntKeyID(9),
			wantErr: true,
		},
		{
			name: "dangling default does not fall back",
			build: func() *KeyContainer {
				return NewKeyContainer().AddKey(IntKeyID(1), HS256, a).SetDefaultKey(StringKeyID("gone"))
			},
			want:    StringKeyID("gone"),
			wantErr: true,
		},
		{
			name:    "empty container",
			build:   NewKeyContainer,
			wantErr: true,
		},
		{
			name: "string id is not an int id",
			build: func() *KeyContainer {
				return NewKeyContainer().AddKey(IntKeyID(1), HS256, a)
			},
			lookup:  StringKeyID("1"),
			want:    StringKeyID("1"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container := tt.build()
			for name, resolver := range map[string]KeyResolver{"container": container, "frozen": container.Freeze()} {
				key, err := resolver.GetKey(tt.lookup)
				if tt.wantErr {
					var notFound *KeyNotFoundError
					require.ErrorAs(t, err, &notFound, name)
					assert.ErrorIs(t, err, ErrKeyNotFound, name)
					assert.Equal(t, tt.want, notFound.ID, name)
					continue
				}
				require.NoError(t, err, name)
				assert.Equal(t, tt.want, key.ID, name)
			}
		})
	}
}

func TestKeyContainerOverwrite(t *testing.T) {
	keys := NewKeyContainer().
		AddKey(IntKeyID(1), HS256, NewSecretString("old")).
		AddKey(IntKeyID(1), HS512, NewSecretString("new"))

	key, err := keys.GetKey(IntKeyID(1))
	require.NoError(t, err)
	assert.Equal(t, HS512, key.Algorithm)
	assert.Equal(t, "new", string(key.Secret.Reveal()))
	assert.Equal(t, 1, keys.Len())
}

func TestFreezeIsASnapshot(t *testing.T) {
	container := NewKeyContainer().AddKey(IntKeyID(1), HS256, NewSecretString("a"))
	frozen := container.Freeze()

	container.AddKey(IntKeyID(2), HS256, NewSecretString("b")).SetDefaultKey(IntKeyID(2))

	key, err := frozen.GetKey(KeyID{})
	require.NoError(t, err)
	assert.Equal(t, IntKeyID(1), key.ID)
	assert.Equal(t, 1, frozen.Len())

	_, err = frozen.GetKey(IntKeyID(2))
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestKeyNotFoundMessage(t *testing.T) {
	err := &KeyNotFoundError{ID: StringKeyID("abc")}
	assert.Contains(t, err.Error(), "abc")

	err = &KeyNotFoundError{}
	assert.Contains(t, err.Error(), "no key id")
}

func TestAddKeyRejectsZeroID(t *testing.T) {
	assert.Panics(t, func() {
		NewKeyContainer().AddKey(KeyID{}, HS256, NewSecretString("x"))
	})
}

func TestZeroKeyContainerIsUsable(t *testing.T) {
	var c KeyContainer
	c.AddKey(IntKeyID(1), HS256, NewSecretString("x"))
	key, err := c.GetKey(KeyID{})
	require.NoError(t, err)
	assert.Equal(t, IntKeyID(1), key.ID)
}

func TestKeySetDestroy(t *testing.T) {
	container := NewKeyContainer().
		AddKey(IntKeyID(1), HS256, NewSecretString("first")).
		AddKey(IntKeyID(2), HS512, NewSecretString("second"))
	keys := container.Freeze()

	encoded, err := New(NewClaims().Set("sub", "x")).SetKeys(keys).Encode(IntKeyID(1))
	require.NoError(t, err)

	keys.Destroy()

	for _, id := range []KeyID{IntKeyID(1), IntKeyID(2)} {
		key, err := container.GetKey(id)
		require.NoError(t, err)
		assert.Zero(t, key.Secret.Len(), "the container shares the frozen secrets")
	}

	_, err = New(NewClaims()).SetKeys(keys).Encode()
	assert.ErrorIs(t, err, ErrSecretDestroyed)

	_, err = Decode(encoded, keys)
	assert.ErrorIs(t, err, ErrSecretDestroyed)
}

func TestKeyContainerDestroy(t *testing.T) {
	container := NewKeyContainer().AddKey(StringKeyID("a"), HS256, NewSecretString("secret"))
	frozen := container.Freeze()

	container.Destroy()

	_, err := New(NewClaims()).SetKeys(frozen).Encode()
	assert.ErrorIs(t, err, ErrSecretDestroyed)
}
