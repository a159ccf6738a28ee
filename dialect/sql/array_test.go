package sql

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/pgforge"
)

func TestFormatArray(t *testing.T) {
	tests := []struct {
		name  string
		items []any
		want  string
	}{
		{name: "ints", items: []any{1, 2, 3}, want: "{1,2,3}"},
		{name: "empty", items: []any{}, want: "{}"},
		{name: "strings", items: []any{"a", "b"}, want: `{"a","b"}`},
		{name: "embedded quote", items: []any{`say "hi"`}, want: `{"say ""hi"""}`},
		{name: "null and bool", items: []any{nil, true, false}, want: "{NULL,true,false}"},
		{name: "floats", items: []any{1.5, 2.25}, want: "{1.5,2.25}"},
		{name: "mixed", items: []any{int64(7), "x", nil}, want: `{7,"x",NULL}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatArray(tt.items))
		})
	}
}

func TestFormatArrayStringer(t *testing.T) {
	id := uuid.MustParse("9e309d98-66a1-4a30-9f3e-015d0ae0a1a4")
	assert.Equal(t, "{9e309d98-66a1-4a30-9f3e-015d0ae0a1a4}", FormatArray([]any{id}))
}

func TestParseArray(t *testing.T) {
	t.Run("ints", func(t *testing.T) {
		got, err := ParseArray("{1,2,3}")
		require.NoError(t, err)
		assert.Equal(t, []any{int64(1), int64(2), int64(3)}, got)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := ParseArray("{}")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("quoted strings", func(t *testing.T) {
		got, err := ParseArray(`{"a","b,c","say ""hi"""}`)
		require.NoError(t, err)
		assert.Equal(t, []any{"a", "b,c", `say "hi"`}, got)
	})

	t.Run("null and bool", func(t *testing.T) {
		got, err := ParseArray("{NULL,true,false}")
		require.NoError(t, err)
		assert.Equal(t, []any{nil, true, false}, got)
	})

	t.Run("floats", func(t *testing.T) {
		got, err := ParseArray("{1.5,2.25}")
		require.NoError(t, err)
		assert.Equal(t, []any{1.5, 2.25}, got)
	})

	t.Run("bare text falls back to raw string", func(t *testing.T) {
		got, err := ParseArray("{abc,def}")
		require.NoError(t, err)
		assert.Equal(t, []any{"abc", "def"}, got)
	})

	t.Run("missing braces", func(t *testing.T) {
		_, err := ParseArray("1,2,3")
		require.Error(t, err)
		assert.True(t, pgforge.IsFormat(err))
	})

	t.Run("empty text", func(t *testing.T) {
		_, err := ParseArray("")
		require.Error(t, err)
		assert.True(t, pgforge.IsFormat(err))
	})
}

// For all flat arrays of scalars, ParseArray(FormatArray(a)) reproduces the
// values element for element.
func TestArrayRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   []any
	}{
		{name: "ints", in: []any{int64(1), int64(2), int64(3)}},
		{name: "strings with commas and quotes", in: []any{"plain", "a,b", `q"q`}},
		{name: "bools and null", in: []any{true, nil, false}},
		{name: "floats", in: []any{0.5, 1000.125}},
		{name: "empty", in: []any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArray(FormatArray(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.in, got)
		})
	}
}
