// Package hclload loads function declarations from HCL sources.
//
// Each file carries one or more `function "<name>" { ... }` blocks with
// `argument`, `return`, and `example` sub-blocks. Decoding is schema-driven:
// the block layout is enforced here, while field-level rules (vocabularies,
// required fields, tag exclusivity) live in the model constructor so that
// every encoding reports violations identically.
package hclload

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/fndocs/internal/ctxlog"
	"github.com/vk/fndocs/model"
)

// Extension is the file suffix this loader consumes.
const Extension = ".hcl"

// Loader implements registry.Loader for HCL declaration files.
type Loader struct{}

// New returns a ready Loader.
func New() *Loader {
	return &Loader{}
}

// rootSchema is the top-level file structure: one or more function blocks.
type rootSchema struct {
	Functions []*functionBlock `hcl:"function,block"`
}

// functionBlock defers body decoding so that each section can be decoded
// against its own schema.
type functionBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

var functionBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "category", Required: true},
		{Name: "description", Required: true},
		{Name: "internal_failure_reasons"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "argument", LabelNames: []string{"name"}},
		{Type: "return"},
		{Type: "example", LabelNames: []string{"title"}},
	},
}

var argumentBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description", Required: true},
		{Name: "required"},
		{Name: "type", Required: true},
	},
}

var returnBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "types", Required: true},
		{Name: "rules"},
	},
}

var exampleBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "input"},
		{Name: "source", Required: true},
		{Name: "return"},
	},
}

// Load parses every given file and returns the declarations it found. The
// first parse or schema error aborts the load.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*model.FunctionSpec, error) {
	logger := ctxlog.FromContext(ctx)
	parser := hclparse.NewParser()

	var specs []*model.FunctionSpec
	for _, path := range paths {
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %s", path, diags.Error())
		}

		var root rootSchema
		if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %s", path, diags.Error())
		}

		for _, block := range root.Functions {
			spec, err := decodeFunction(block)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			specs = append(specs, spec)
		}
		logger.Debug("Loaded declarations from HCL file.", "path", path, "functions", len(root.Functions))
	}
	return specs, nil
}

// decodeFunction translates one function block into the agnostic model and
// runs it through the model constructor.
func decodeFunction(block *functionBlock) (*model.FunctionSpec, error) {
	content, diags := block.Body.Content(functionBodySchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("function %q: %s", block.Name, diags.Error())
	}

	raw := model.FunctionSpec{Name: block.Name}

	var category string
	if err := decodeAttr(content, "category", &category); err != nil {
		return nil, fmt.Errorf("function %q: %w", block.Name, err)
	}
	raw.Category = model.Category(category)

	if err := decodeAttr(content, "description", &raw.Description); err != nil {
		return nil, fmt.Errorf("function %q: %w", block.Name, err)
	}
	if err := decodeAttr(content, "internal_failure_reasons", &raw.InternalFailureReasons); err != nil {
		return nil, fmt.Errorf("function %q: %w", block.Name, err)
	}

	seenReturn := false
	for _, sub := range content.Blocks {
		var err error
		switch sub.Type {
		case "argument":
			var arg model.ArgumentSpec
			arg, err = decodeArgument(sub)
			raw.Arguments = append(raw.Arguments, arg)
		case "return":
			if seenReturn {
				return nil, fmt.Errorf("function %q: duplicate return block", block.Name)
			}
			seenReturn = true
			raw.Return, err = decodeReturn(sub)
		case "example":
			var ex model.ExampleSpec
			ex, err = decodeExample(sub)
			raw.Examples = append(raw.Examples, ex)
		}
		if err != nil {
			return nil, fmt.Errorf("function %q: %w", block.Name, err)
		}
	}

	return model.New(raw)
}

func decodeArgument(block *hcl.Block) (model.ArgumentSpec, error) {
	name := block.Labels[0]
	content, diags := block.Body.Content(argumentBodySchema)
	if diags.HasErrors() {
		return model.ArgumentSpec{}, fmt.Errorf("argument %q: %s", name, diags.Error())
	}

	arg := model.ArgumentSpec{Name: name}
	if err := decodeAttr(content, "description", &arg.Description); err != nil {
		return model.ArgumentSpec{}, fmt.Errorf("argument %q: %w", name, err)
	}
	if err := decodeAttr(content, "required", &arg.Required); err != nil {
		return model.ArgumentSpec{}, fmt.Errorf("argument %q: %w", name, err)
	}

	tags, err := tagsFromExpr(content.Attributes["type"].Expr)
	if err != nil {
		return model.ArgumentSpec{}, fmt.Errorf("argument %q: %w", name, err)
	}
	arg.Types = tags
	return arg, nil
}

func decodeReturn(block *hcl.Block) (model.ReturnSpec, error) {
	content, diags := block.Body.Content(returnBodySchema)
	if diags.HasErrors() {
		return model.ReturnSpec{}, fmt.Errorf("return: %s", diags.Error())
	}

	var ret model.ReturnSpec
	tags, err := tagsFromExpr(content.Attributes["types"].Expr)
	if err != nil {
		return model.ReturnSpec{}, fmt.Errorf("return: %w", err)
	}
	ret.Types = tags

	if err := decodeAttr(content, "rules", &ret.Rules); err != nil {
		return model.ReturnSpec{}, fmt.Errorf("return: %w", err)
	}
	return ret, nil
}

func decodeExample(block *hcl.Block) (model.ExampleSpec, error) {
	title := block.Labels[0]
	content, diags := block.Body.Content(exampleBodySchema)
	if diags.HasErrors() {
		return model.ExampleSpec{}, fmt.Errorf("example %q: %s", title, diags.Error())
	}

	ex := model.ExampleSpec{Title: title}

	if attr, ok := content.Attributes["input"]; ok {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return model.ExampleSpec{}, fmt.Errorf("example %q: input: %s", title, diags.Error())
		}
		ex.Input = val
	}

	if err := decodeAttr(content, "source", &ex.Source); err != nil {
		return model.ExampleSpec{}, fmt.Errorf("example %q: %w", title, err)
	}
	ex.Source = trimSource(ex.Source)

	if attr, ok := content.Attributes["return"]; ok {
		rv, err := returnValueFromExpr(attr.Expr)
		if err != nil {
			return model.ExampleSpec{}, fmt.Errorf("example %q: return: %w", title, err)
		}
		ex.Return = rv
	}
	return ex, nil
}

// decodeAttr evaluates an attribute expression into target when present.
func decodeAttr(content *hcl.BodyContent, name string, target any) error {
	attr, ok := content.Attributes[name]
	if !ok {
		return nil
	}
	if diags := gohcl.DecodeExpression(attr.Expr, nil, target); diags.HasErrors() {
		return fmt.Errorf("%s: %s", name, diags.Error())
	}
	return nil
}
