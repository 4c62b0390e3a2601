package yamlload

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/fndocs/model"
)

const stringGuardDecl = `
name: string
category: coerce
description: Check if the value's type is a string.
internal_failure_reasons:
  - "` + "`value`" + ` is not a string."
arguments:
  - name: value
    description: The value to check if it is a string.
    required: true
    type: [any]
return:
  types: [string]
  rules:
    - Returns the value if it's a string.
    - Raises an error if not a string.
examples:
  - title: Declare a string type
    input:
      log:
        message: '{"field": "value"}'
    source: string!(.message)
    return:
      ref: input.log.message
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("full declaration", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "string.yaml", stringGuardDecl)

		specs, err := New().Load(ctx, path)
		require.NoError(t, err)
		require.Len(t, specs, 1)

		fn := specs[0]
		assert.Equal(t, "string", fn.Name)
		assert.Equal(t, model.CategoryCoerce, fn.Category)
		require.Len(t, fn.Arguments, 1)
		assert.Equal(t, []model.TypeTag{model.TagAny}, fn.Arguments[0].Types)
		assert.Equal(t, []model.TypeTag{model.TagString}, fn.Return.Types)

		require.Len(t, fn.Examples, 1)
		ex := fn.Examples[0]

		ref, ok := ex.Return.Ref()
		require.True(t, ok)
		assert.Equal(t, "input.log.message", ref.String())

		expected, err := ex.Return.Resolve(ex.Input)
		require.NoError(t, err)
		assert.Equal(t, `{"field": "value"}`, expected.AsString())
	})

	t.Run("multiple documents per file", func(t *testing.T) {
		content := `
name: downcase
category: string
description: Downcase a string.
return:
  types: [string]
---
name: upcase
category: string
description: Upcase a string.
return:
  types: [string]
`
		path := writeFile(t, t.TempDir(), "case.yaml", content)

		specs, err := New().Load(ctx, path)
		require.NoError(t, err)
		require.Len(t, specs, 2)
		assert.Equal(t, "downcase", specs[0].Name)
		assert.Equal(t, "upcase", specs[1].Name)
	})

	t.Run("literal return values", func(t *testing.T) {
		content := `
name: length
category: enumerate
description: Count the items of a collection.
return:
  types: [integer]
examples:
  - title: Count array items
    input:
      log:
        tags: [a, b, c]
    source: length(.tags)
    return:
      value: 3
  - title: Explicit null
    input:
      log: {}
    source: length(.missing)
    return:
      value: null
`
		path := writeFile(t, t.TempDir(), "length.yaml", content)

		specs, err := New().Load(ctx, path)
		require.NoError(t, err)
		require.Len(t, specs, 1)
		require.Len(t, specs[0].Examples, 2)

		lit, ok := specs[0].Examples[0].Return.Literal()
		require.True(t, ok)
		assert.True(t, lit.RawEquals(cty.NumberIntVal(3)))

		nullLit, ok := specs[0].Examples[1].Return.Literal()
		require.True(t, ok)
		assert.True(t, nullLit.IsNull())
	})

	t.Run("timestamp-valued input", func(t *testing.T) {
		content := `
name: to_timestamp
category: timestamp
description: Convert a value to a timestamp.
return:
  types: [timestamp]
examples:
  - title: Convert a timestamp field
    input:
      log:
        ts: 2021-01-01T00:00:00Z
    source: to_timestamp(.ts)
    return:
      ref: input.log.ts
`
		path := writeFile(t, t.TempDir(), "to_timestamp.yaml", content)

		specs, err := New().Load(ctx, path)
		require.NoError(t, err)
		require.Len(t, specs, 1)

		ex := specs[0].Examples[0]
		expected, err := ex.Return.Resolve(ex.Input)
		require.NoError(t, err)
		assert.Equal(t, "2021-01-01T00:00:00Z", expected.AsString())
	})

	t.Run("ref and value are mutually exclusive", func(t *testing.T) {
		content := `
name: broken
category: string
description: Broken.
return:
  types: [string]
examples:
  - title: Bad return
    input:
      log:
        message: x
    source: broken(.message)
    return:
      ref: input.log.message
      value: x
`
		path := writeFile(t, t.TempDir(), "broken.yaml", content)

		_, err := New().Load(ctx, path)
		assert.ErrorContains(t, err, "mutually exclusive")
	})

	t.Run("return must set ref or value", func(t *testing.T) {
		content := `
name: broken
category: string
description: Broken.
return:
  types: [string]
examples:
  - title: Empty return
    source: broken(.message)
    return: {}
`
		path := writeFile(t, t.TempDir(), "empty_return.yaml", content)

		_, err := New().Load(ctx, path)
		assert.ErrorContains(t, err, "either ref or value must be set")
	})

	t.Run("unknown tag is malformed", func(t *testing.T) {
		content := `
name: broken
category: string
description: Broken.
arguments:
  - name: value
    description: Whatever.
    type: [varchar]
return:
  types: [string]
`
		path := writeFile(t, t.TempDir(), "badtag.yaml", content)

		specs, err := New().Load(ctx, path)
		assert.Nil(t, specs)

		var malformed *model.MalformedSpecError
		require.ErrorAs(t, err, &malformed)
	})

	t.Run("unparsable file aborts", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "garbage.yaml", "{{nope")

		_, err := New().Load(ctx, path)
		assert.ErrorContains(t, err, "failed to parse")
	})
}
