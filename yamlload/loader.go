// Package yamlload loads function declarations from YAML sources.
//
// Each file holds one or more YAML documents, one function declaration per
// document, mirroring the logical fields of the HCL encoding. Unlike HCL,
// YAML has no expression syntax, so an example's expected result is an
// explicit one-key mapping: `ref: input.log.message` for a structural
// reference, `value: <literal>` for a literal. References are never guessed
// from the shape of a plain string.
package yamlload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/fndocs/internal/ctxlog"
	"github.com/vk/fndocs/internal/ctyutil"
	"github.com/vk/fndocs/model"
)

// Extensions are the file suffixes this loader consumes.
var Extensions = []string{".yaml", ".yml"}

// Loader implements registry.Loader for YAML declaration files.
type Loader struct{}

// New returns a ready Loader.
func New() *Loader {
	return &Loader{}
}

type rawFunction struct {
	Name                   string        `yaml:"name"`
	Category               string        `yaml:"category"`
	Description            string        `yaml:"description"`
	InternalFailureReasons []string      `yaml:"internal_failure_reasons"`
	Arguments              []rawArgument `yaml:"arguments"`
	Return                 rawReturn     `yaml:"return"`
	Examples               []rawExample  `yaml:"examples"`
}

type rawArgument struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Required    bool     `yaml:"required"`
	Type        []string `yaml:"type"`
}

type rawReturn struct {
	Types []string `yaml:"types"`
	Rules []string `yaml:"rules"`
}

type rawExample struct {
	Title  string            `yaml:"title"`
	Input  map[string]any    `yaml:"input"`
	Source string            `yaml:"source"`
	Return *rawExampleReturn `yaml:"return"`
}

type rawExampleReturn struct {
	Ref   string    `yaml:"ref"`
	Value yaml.Node `yaml:"value"`
}

// Load parses every given file and returns the declarations it found. The
// first parse or schema error aborts the load.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*model.FunctionSpec, error) {
	logger := ctxlog.FromContext(ctx)

	var specs []*model.FunctionSpec
	for _, path := range paths {
		loaded, err := l.loadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		specs = append(specs, loaded...)
		logger.Debug("Loaded declarations from YAML file.", "path", path, "functions", len(loaded))
	}
	return specs, nil
}

func (l *Loader) loadFile(path string) ([]*model.FunctionSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var specs []*model.FunctionSpec
	dec := yaml.NewDecoder(f)
	for {
		var raw rawFunction
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return specs, nil
			}
			return nil, fmt.Errorf("failed to parse: %w", err)
		}

		spec, err := translate(raw)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
}

// translate maps one decoded document into the agnostic model and runs it
// through the model constructor.
func translate(raw rawFunction) (*model.FunctionSpec, error) {
	spec := model.FunctionSpec{
		Name:                   raw.Name,
		Category:               model.Category(raw.Category),
		Description:            raw.Description,
		InternalFailureReasons: raw.InternalFailureReasons,
		Return: model.ReturnSpec{
			Types: toTags(raw.Return.Types),
			Rules: raw.Return.Rules,
		},
	}

	for _, arg := range raw.Arguments {
		spec.Arguments = append(spec.Arguments, model.ArgumentSpec{
			Name:        arg.Name,
			Description: arg.Description,
			Required:    arg.Required,
			Types:       toTags(arg.Type),
		})
	}

	for _, ex := range raw.Examples {
		example := model.ExampleSpec{Title: ex.Title, Source: ex.Source}

		if ex.Input != nil {
			input, err := ctyutil.FromNative(normalize(ex.Input))
			if err != nil {
				return nil, fmt.Errorf("function %q: example %q: input: %w", raw.Name, ex.Title, err)
			}
			example.Input = input
		}

		if ex.Return != nil {
			rv, err := translateReturn(ex.Return)
			if err != nil {
				return nil, fmt.Errorf("function %q: example %q: return: %w", raw.Name, ex.Title, err)
			}
			example.Return = rv
		}

		spec.Examples = append(spec.Examples, example)
	}

	return model.New(spec)
}

func translateReturn(raw *rawExampleReturn) (model.ReturnValue, error) {
	hasValue := !raw.Value.IsZero()
	switch {
	case raw.Ref != "" && hasValue:
		return model.ReturnValue{}, fmt.Errorf("ref and value are mutually exclusive")
	case raw.Ref != "":
		path, err := model.ParseRefPath(raw.Ref)
		if err != nil {
			return model.ReturnValue{}, err
		}
		return model.ReferenceReturn(path), nil
	case hasValue:
		var native any
		if err := raw.Value.Decode(&native); err != nil {
			return model.ReturnValue{}, err
		}
		val, err := ctyutil.FromNative(normalize(native))
		if err != nil {
			return model.ReturnValue{}, err
		}
		return model.LiteralReturn(val), nil
	default:
		return model.ReturnValue{}, fmt.Errorf("either ref or value must be set")
	}
}

func toTags(raw []string) []model.TypeTag {
	if raw == nil {
		return nil
	}
	tags := make([]model.TypeTag, 0, len(raw))
	for _, r := range raw {
		tags = append(tags, model.TypeTag(r))
	}
	return tags
}

// normalize rewrites the map shapes the yaml decoder produces into the
// string-keyed form the cty bridge accepts.
func normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[fmt.Sprint(key)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}
