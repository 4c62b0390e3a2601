package ctyutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestFromNative(t *testing.T) {
	t.Run("scalars", func(t *testing.T) {
		v, err := FromNative("hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", v.AsString())

		v, err = FromNative(true)
		require.NoError(t, err)
		assert.True(t, v.True())

		v, err = FromNative(nil)
		require.NoError(t, err)
		assert.True(t, v.IsNull())

		v, err = FromNative(42)
		require.NoError(t, err)
		assert.True(t, v.RawEquals(cty.NumberIntVal(42)))

		v, err = FromNative(1.5)
		require.NoError(t, err)
		assert.True(t, v.RawEquals(cty.NumberFloatVal(1.5)))
	})

	t.Run("nested structures", func(t *testing.T) {
		v, err := FromNative(map[string]any{
			"log": map[string]any{
				"message": `{"field": "value"}`,
				"tags":    []any{"a", "b"},
			},
		})
		require.NoError(t, err)
		require.True(t, v.Type().IsObjectType())

		message := v.GetAttr("log").GetAttr("message")
		assert.Equal(t, `{"field": "value"}`, message.AsString())

		tags := v.GetAttr("log").GetAttr("tags")
		assert.Equal(t, 2, tags.LengthInt())
	})

	t.Run("empty collections", func(t *testing.T) {
		v, err := FromNative(map[string]any{})
		require.NoError(t, err)
		assert.True(t, v.RawEquals(cty.EmptyObjectVal))

		v, err = FromNative([]any{})
		require.NoError(t, err)
		assert.True(t, v.RawEquals(cty.EmptyTupleVal))
	})

	t.Run("timestamps become RFC 3339 strings", func(t *testing.T) {
		v, err := FromNative(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, "2021-01-01T00:00:00Z", v.AsString())

		v, err = FromNative(time.Date(2021, 1, 1, 0, 0, 0, 500_000_000, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, "2021-01-01T00:00:00.5Z", v.AsString())
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := FromNative(struct{}{})
		assert.ErrorContains(t, err, "unsupported value")
	})
}

func TestToNative(t *testing.T) {
	assert.Nil(t, ToNative(cty.NullVal(cty.DynamicPseudoType)))
	assert.Equal(t, "hello", ToNative(cty.StringVal("hello")))
	assert.Equal(t, true, ToNative(cty.True))
	assert.Equal(t, int64(42), ToNative(cty.NumberIntVal(42)))
	assert.Equal(t, 1.5, ToNative(cty.NumberFloatVal(1.5)))

	nested := cty.ObjectVal(map[string]cty.Value{
		"log": cty.ObjectVal(map[string]cty.Value{
			"tags": cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.NumberIntVal(1)}),
		}),
	})
	assert.Equal(t, map[string]any{
		"log": map[string]any{
			"tags": []any{"a", int64(1)},
		},
	}, ToNative(nested))
}

func TestRoundTrip(t *testing.T) {
	native := map[string]any{
		"log": map[string]any{
			"message": "hello",
			"count":   int64(3),
			"pi":      3.5,
			"flags":   []any{true, false},
			"absent":  nil,
		},
	}
	v, err := FromNative(native)
	require.NoError(t, err)
	assert.Equal(t, native, ToNative(v))
}

func TestAttributes(t *testing.T) {
	object := cty.ObjectVal(map[string]cty.Value{
		"b": cty.StringVal("2"),
		"a": cty.StringVal("1"),
	})
	assert.Equal(t, []string{"a", "b"}, AttributeNames(object))

	mapped := cty.MapVal(map[string]cty.Value{
		"x": cty.StringVal("1"),
	})
	attrs := Attributes(mapped)
	require.Len(t, attrs, 1)
	assert.Equal(t, "1", attrs["x"].AsString())

	assert.Nil(t, Attributes(cty.StringVal("scalar")))
}
