package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObject(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		keys    []string
	}{
		{"empty object", `{}`, nil, nil},
		{"keeps order", `{"sub":1,"name":"x","admin":true}`, nil, []string{"sub", "name", "admin"}},
		{"reverse order", `{"z":1,"a":2}`, nil, []string{"z", "a"}},
		{"whitespace", " { \"a\" : 1 } ", nil, []string{"a"}},
		{"invalid", `test`, ErrInvalidJSON, nil},
		{"truncated", `{"a":`, ErrInvalidJSON, nil},
		{"array", `[1,2]`, ErrNotObject, nil},
		{"string", `"hello"`, ErrNotObject, nil},
		{"number", `42`, ErrNotObject, nil},
		{"null", `null`, ErrNotObject, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := ParseObject([]byte(tt.input))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.keys), obj.Len())
			if tt.keys != nil {
				assert.Equal(t, tt.keys, obj.Keys())
			}
		})
	}
}

func TestParseObjectValues(t *testing.T) {
	obj, err := ParseObject([]byte(`{"i":1234567890,"f":1.5,"s":"x","b":false,"n":null,"a":[1,"two"],"o":{"k":2}}`))
	require.NoError(t, err)

	cases := map[string]any{
		"i": int64(1234567890),
		"f": 1.5,
		"s": "x",
		"b": false,
		"n": nil,
		"a": []any{int64(1), "two"},
		"o": map[string]any{"k": int64(2)},
	}
	for key, want := range cases {
		got, ok := obj.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}

	_, ok := obj.Get("missing")
	assert.False(t, ok)
}

func TestObjectRoundTripIsByteStable(t *testing.T) {
	inputs := []string{
		`{"sub":1234567890,"name":"John Doe","admin":true}`,
		`{"url":"http:\/\/example.com"}`,
		`{"nested":{"z":1,"a":[3,2,1]},"e":1e3,"u":"é"}`,
		`{"a" : 1,  "b" : { "c" : 2 }}`,
	}
	expected := []string{
		`{"sub":1234567890,"name":"John Doe","admin":true}`,
		`{"url":"http:\/\/example.com"}`,
		`{"nested":{"z":1,"a":[3,2,1]},"e":1e3,"u":"é"}`,
		`{"a":1,"b":{"c":2}}`,
	}

	for i, input := range inputs {
		obj, err := ParseObject([]byte(input))
		require.NoError(t, err)
		out, err := obj.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, expected[i], string(out))
	}
}

func TestObjectSetKeepsPosition(t *testing.T) {
	obj, err := ParseObject([]byte(`{"alg":null,"typ":"JWT"}`))
	require.NoError(t, err)

	obj.Set("alg", "HS256")
	obj.Set("kid", 3)

	out, err := obj.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"alg":"HS256","typ":"JWT","kid":3}`, string(out))
}

func TestObjectDeleteAndClone(t *testing.T) {
	obj := NewObject()
	obj.Set("a", 1)
	obj.Set("b", 2)
	obj.Set("c", 3)

	clone := obj.Clone()
	obj.Delete("b")
	obj.Delete("missing")

	assert.Equal(t, []string{"a", "c"}, obj.Keys())
	assert.Equal(t, []string{"a", "b", "c"}, clone.Keys())

	clone.Set("d", 4)
	assert.Equal(t, 2, obj.Len())
	assert.Equal(t, 4, clone.Len())
}

func TestObjectUnmarshalJSON(t *testing.T) {
	var obj Object
	require.NoError(t, obj.UnmarshalJSON([]byte(`{"x":"y"}`)))
	v, ok := obj.Get("x")
	require.True(t, ok)
	assert.Equal(t, "y", v)

	assert.ErrorIs(t, obj.UnmarshalJSON([]byte(`[]`)), ErrNotObject)
}

func TestMarshal(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"slashes unescaped", "http://example.com", `"http://example.com"`},
		{"html unescaped", "<a&b>", `"<a&b>"`},
		{"unicode kept", "é", `"é"`},
		{"nested object", map[string]any{"a": 1}, `{"a":1}`},
		{"nil", nil, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Marshal(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}

	_, err := Marshal(make(chan int))
	assert.Error(t, err)
}

func TestMarshalInvalidUTF8(t *testing.T) {
	nested := NewObject()
	nested.Set("s", "a\xffb")

	tests := []struct {
		name  string
		value any
	}{
		{"string", "a\xffb"},
		{"string slice", []string{"ok", "\xc3\x28"}},
		{"any slice", []any{1, []any{"\xff"}}},
		{"map value", map[string]any{"k": "\xfe"}},
		{"map key", map[string]any{"\xfe": 1}},
		{"string map", map[string]string{"k": "\xff"}},
		{"nested object", map[string]any{"o": nested}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Marshal(tt.value)
			assert.ErrorIs(t, err, ErrInvalidUTF8)
		})
	}

	obj := NewObject()
	obj.Set("a\xffb", 1)
	_, err := obj.MarshalJSON()
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestMarshalNestedObject(t *testing.T) {
	inner := NewObject()
	inner.Set("z", "<tag>")
	inner.Set("a", 1)

	outer := NewObject()
	outer.Set("inner", inner)

	out, err := Marshal(outer)
	require.NoError(t, err)
	assert.Equal(t, `{"inner":{"z":"<tag>","a":1}}`, string(out))
}
