// Expression-level translation: type-tag keywords and example return values.

package hclload

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/fndocs/model"
)

// tagsFromExpr reads a type-tag list such as `[string, integer]` or a single
// bare keyword such as `any`. Keywords are taken syntactically, never
// evaluated; whether a keyword is inside the vocabulary is the model's call.
func tagsFromExpr(expr hcl.Expression) ([]model.TypeTag, error) {
	switch v := expr.(type) {
	case *hclsyntax.TupleConsExpr:
		tags := make([]model.TypeTag, 0, len(v.Exprs))
		for _, elem := range v.Exprs {
			keyword, err := keywordFromExpr(elem)
			if err != nil {
				return nil, err
			}
			tags = append(tags, model.TypeTag(keyword))
		}
		return tags, nil
	case *hclsyntax.ScopeTraversalExpr:
		keyword, err := keywordFromExpr(v)
		if err != nil {
			return nil, err
		}
		return []model.TypeTag{model.TypeTag(keyword)}, nil
	default:
		return nil, fmt.Errorf("type must be a keyword or a list of keywords, got %T", v)
	}
}

// keywordFromExpr extracts a single bare identifier like `string`.
func keywordFromExpr(expr hcl.Expression) (string, error) {
	traversal, ok := expr.(*hclsyntax.ScopeTraversalExpr)
	if !ok || len(traversal.Traversal) != 1 {
		return "", fmt.Errorf("expected a bare type keyword, got %T", expr)
	}
	return traversal.Traversal.RootName(), nil
}

// returnValueFromExpr reads an example's expected result. A traversal rooted
// at `input` is a structural reference into the example's own input; any
// other expression must evaluate to a literal with no surrounding scope.
func returnValueFromExpr(expr hcl.Expression) (model.ReturnValue, error) {
	if traversal, ok := expr.(*hclsyntax.ScopeTraversalExpr); ok {
		path, err := pathFromTraversal(traversal.Traversal)
		if err != nil {
			return model.ReturnValue{}, err
		}
		return model.ReferenceReturn(path), nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return model.ReturnValue{}, fmt.Errorf("not a literal value: %s", diags.Error())
	}
	return model.LiteralReturn(val), nil
}

// pathFromTraversal converts `input.log.message` into a model.Path.
func pathFromTraversal(traversal hcl.Traversal) (model.Path, error) {
	rendered := traversalString(traversal)
	if traversal.RootName() != "input" {
		return nil, fmt.Errorf("reference %q must be rooted at \"input\"", rendered)
	}

	var path model.Path
	for _, step := range traversal[1:] {
		switch s := step.(type) {
		case hcl.TraverseAttr:
			path = append(path, s.Name)
		case hcl.TraverseIndex:
			if s.Key.Type() != cty.String {
				return nil, fmt.Errorf("reference %q: only named members can be referenced", rendered)
			}
			path = append(path, s.Key.AsString())
		default:
			return nil, fmt.Errorf("reference %q: unsupported traversal step %T", rendered, step)
		}
	}
	if len(path) == 0 {
		return nil, fmt.Errorf("reference %q names no value under \"input\"", rendered)
	}
	return path, nil
}

func traversalString(traversal hcl.Traversal) string {
	parts := []string{traversal.RootName()}
	for _, step := range traversal[1:] {
		switch s := step.(type) {
		case hcl.TraverseAttr:
			parts = append(parts, s.Name)
		case hcl.TraverseIndex:
			if s.Key.Type() == cty.String {
				parts = append(parts, s.Key.AsString())
			}
		}
	}
	return strings.Join(parts, ".")
}

// trimSource normalizes heredoc snippets: surrounding blank space goes,
// interior formatting stays.
func trimSource(source string) string {
	return strings.TrimSpace(source)
}
