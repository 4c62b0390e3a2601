package hclload

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/fndocs/model"
)

const stringGuardDecl = `
function "string" {
  category    = "coerce"
  description = "Check if the value's type is a string."

  internal_failure_reasons = [
    "` + "`value`" + ` is not a string.",
  ]

  argument "value" {
    description = "The value to check if it is a string."
    required    = true
    type        = [any]
  }

  return {
    types = [string]
    rules = [
      "Returns the ` + "`value`" + ` if it's a string.",
      "Raises an error if not a string.",
    ]
  }

  example "Declare a string type" {
    input = {
      log = {
        message = "{\"field\": \"value\"}"
      }
    }
    source = <<-EOT
      string!(.message)
    EOT
    return = input.log.message
  }
}
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
		path := writeFile(t, t.TempDir(), "string.hcl", stringGuardDecl)

		specs, err := New().Load(ctx, path)
		require.NoError(t, err)
		require.Len(t, specs, 1)

		fn := specs[0]
		assert.Equal(t, "string", fn.Name)
		assert.Equal(t, model.CategoryCoerce, fn.Category)
		assert.Equal(t, "Check if the value's type is a string.", fn.Description)
		assert.Equal(t, []string{"`value` is not a string."}, fn.InternalFailureReasons)
		assert.True(t, fn.Fallible())

		require.Len(t, fn.Arguments, 1)
		arg := fn.Arguments[0]
		assert.Equal(t, "value", arg.Name)
		assert.True(t, arg.Required)
		assert.Equal(t, []model.TypeTag{model.TagAny}, arg.Types)

		assert.Equal(t, []model.TypeTag{model.TagString}, fn.Return.Types)
		require.Len(t, fn.Return.Rules, 2)

		require.Len(t, fn.Examples, 1)
		ex := fn.Examples[0]
		assert.Equal(t, "Declare a string type", ex.Title)
		assert.Equal(t, "string!(.message)", ex.Source)

		path2, ok := ex.Return.Ref()
		require.True(t, ok)
		assert.Equal(t, "input.log.message", path2.String())

		expected, err := ex.Return.Resolve(ex.Input)
		require.NoError(t, err)
		assert.Equal(t, `{"field": "value"}`, expected.AsString())
	})

	t.Run("multiple functions per file", func(t *testing.T) {
		content := `
function "downcase" {
  category    = "string"
  description = "Downcase a string."
  argument "value" {
    description = "The string to downcase."
    required    = true
    type        = [string]
  }
  return {
    types = [string]
  }
}

function "upcase" {
  category    = "string"
  description = "Upcase a string."
  return {
    types = [string]
  }
}
`
		path := writeFile(t, t.TempDir(), "case.hcl", content)

		specs, err := New().Load(ctx, path)
		require.NoError(t, err)
		require.Len(t, specs, 2)
		assert.Equal(t, "downcase", specs[0].Name)
		assert.Equal(t, "upcase", specs[1].Name)
	})

	t.Run("literal example return", func(t *testing.T) {
		content := `
function "downcase" {
  category    = "string"
  description = "Downcase a string."
  return {
    types = [string]
  }
  example "Downcase a string" {
    input = { log = { message = "HELLO" } }
    source = "downcase(.message)"
    return = "hello"
  }
}
`
		path := writeFile(t, t.TempDir(), "downcase.hcl", content)

		specs, err := New().Load(ctx, path)
		require.NoError(t, err)
		require.Len(t, specs, 1)

		lit, ok := specs[0].Examples[0].Return.Literal()
		require.True(t, ok)
		assert.Equal(t, "hello", lit.AsString())
	})

	t.Run("unknown type keyword is malformed", func(t *testing.T) {
		content := `
function "broken" {
  category    = "string"
  description = "Broken."
  argument "value" {
    description = "Whatever."
    type        = [varchar]
  }
  return {
    types = [string]
  }
}
`
		path := writeFile(t, t.TempDir(), "broken.hcl", content)

		specs, err := New().Load(ctx, path)
		assert.Nil(t, specs)

		var malformed *model.MalformedSpecError
		require.ErrorAs(t, err, &malformed)
		assert.ErrorContains(t, err, `unknown type tag "varchar"`)
	})

	t.Run("return reference must be rooted at input", func(t *testing.T) {
		content := `
function "broken" {
  category    = "string"
  description = "Broken."
  return {
    types = [string]
  }
  example "Bad ref" {
    input  = { log = { message = "x" } }
    source = "broken(.message)"
    return = output.log.message
  }
}
`
		path := writeFile(t, t.TempDir(), "badref.hcl", content)

		_, err := New().Load(ctx, path)
		assert.ErrorContains(t, err, `must be rooted at "input"`)
	})

	t.Run("duplicate return block is rejected", func(t *testing.T) {
		content := `
function "broken" {
  category    = "string"
  description = "Broken."
  return {
    types = [string]
  }
  return {
    types = [integer]
  }
}
`
		path := writeFile(t, t.TempDir(), "dupret.hcl", content)

		specs, err := New().Load(ctx, path)
		assert.Nil(t, specs)
		assert.ErrorContains(t, err, `function "broken": duplicate return block`)
	})

	t.Run("unparsable file aborts", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "garbage.hcl", "function {{{{")

		specs, err := New().Load(ctx, path)
		assert.Nil(t, specs)
		assert.ErrorContains(t, err, "failed to parse")
	})
}

func TestTagsFromExpr(t *testing.T) {
	content := `
function "multi" {
  category    = "coerce"
  description = "Multiple tags."
  argument "value" {
    description = "Multi-typed."
    type        = [string, integer, timestamp]
  }
  return {
    types = any
  }
}
`
	path := writeFile(t, t.TempDir(), "multi.hcl", content)

	specs, err := New().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, specs, 1)

	assert.Equal(t,
		[]model.TypeTag{model.TagString, model.TagInteger, model.TagTimestamp},
		specs[0].Arguments[0].Types)
	assert.Equal(t, []model.TypeTag{model.TagAny}, specs[0].Return.Types)
}
