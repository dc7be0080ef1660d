package jwt

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec(t *testing.T) {
	keys := NewKeyContainer().
		AddKey(IntKeyID(1), HS256, NewSecretString("first secret")).
		AddKey(StringKeyID("rotated"), HS512, NewSecretString("second secret")).
		SetDefaultKey(IntKeyID(1)).
		Freeze()
	codec := NewCodec(keys, WithClock(fixedClock))
	assert.Same(t, keys, codec.Keys())

	encoded, err := codec.Encode(NewClaims().Set("sub", "u1"))
	require.NoError(t, err)

	tok, err := codec.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, IntKeyID(1), tok.KeyID())
	assert.Equal(t, HS256, tok.Algorithm())

	encoded, err = codec.Encode(NewClaims().Set("sub", "u2"), StringKeyID("rotated"))
	require.NoError(t, err)

	tok, err = codec.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, StringKeyID("rotated"), tok.KeyID())
	claims, err := tok.Claims()
	require.NoError(t, err)
	sub, _ := claims.GetString("sub")
	assert.Equal(t, "u2", sub)
}

func TestCodecOptions(t *testing.T) {
	keys := singleKey(HS256, "secret")
	codec := NewCodec(keys, WithClock(fixedClock), WithLeeway(30*time.Second))

	encoded, err := codec.Encode(NewClaims().Set(ClaimExpirationTime, testNow.Unix()-10))
	require.NoError(t, err)

	_, err = codec.Decode(encoded)
	assert.NoError(t, err, "within leeway")

	_, err = NewCodec(keys, WithClock(fixedClock)).Decode(encoded)
	assert.ErrorIs(t, err, ErrTokenExpired)

	// nil and negative values are ignored
	_, err = NewCodec(keys, WithClock(nil), WithLeeway(-time.Hour)).Decode(encoded)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestCodecConcurrentUse(t *testing.T) {
	codec := NewCodec(singleKey(HS256, "secret"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			encoded, err := codec.Encode(NewClaims().Set("n", i))
			if !assert.NoError(t, err) {
				return
			}
			tok, err := codec.Decode(encoded)
			if !assert.NoError(t, err) {
				return
			}
			claims, err := tok.Claims()
			assert.NoError(t, err)
			n, _ := claims.GetInt64("n")
			assert.Equal(t, int64(i), n)
		}(i)
	}
	wg.Wait()
}
