package model

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// FunctionSpec is the full metadata record for one documented function.
type FunctionSpec struct {
	Name        string
	Category    Category
	Description string

	// Arguments is ordered; the order is the positional calling order.
	Arguments []ArgumentSpec

	// InternalFailureReasons lists the ways the function can abort at
	// runtime. It must be non-empty for fallible functions.
	InternalFailureReasons []string

	Return ReturnSpec

	// Examples is ordered as declared. It may be empty, though the
	// validator warns when it is.
	Examples []ExampleSpec
}

// ArgumentSpec describes one positional argument.
type ArgumentSpec struct {
	Name        string
	Description string
	Required    bool

	// Types is the non-empty set of accepted shapes. TagAny must be the
	// sole member when present; any other tag alongside it is redundant
	// and rejected.
	Types []TypeTag
}

// ReturnSpec describes the possible results of a call.
type ReturnSpec struct {
	Types []TypeTag

	// Rules are behavioral statements for the rendered reference. They are
	// documentation only; nothing beyond non-emptiness of each entry is
	// machine-checked.
	Rules []string
}

// ExampleSpec is one worked example: a pre-state, a source snippet, and the
// expected result.
type ExampleSpec struct {
	Title string

	// Input maps scoped context names (e.g. a virtual log record) to
	// structured data. It is always an object value; cty.NilVal when the
	// example declares no input.
	Input cty.Value

	Source string

	// Return is the expected result. Examples that only illustrate a
	// failure mode may omit it.
	Return ReturnValue
}

// ReturnValue is an example's expected result: either a literal value or a
// reference into the example's own input.
type ReturnValue struct {
	ref     Path
	literal cty.Value
	defined bool
}

// LiteralReturn wraps a literal expected value.
func LiteralReturn(v cty.Value) ReturnValue {
	return ReturnValue{literal: v, defined: true}
}

// ReferenceReturn wraps a reference path into the example input.
func ReferenceReturn(p Path) ReturnValue {
	return ReturnValue{ref: p, defined: true}
}

// Defined reports whether the example declares an expected result at all.
func (rv ReturnValue) Defined() bool { return rv.defined }

// Ref returns the reference path, if the expected result is a reference.
func (rv ReturnValue) Ref() (Path, bool) {
	if !rv.defined || rv.ref == nil {
		return nil, false
	}
	return rv.ref, true
}

// Literal returns the literal value, if the expected result is a literal.
func (rv ReturnValue) Literal() (cty.Value, bool) {
	if !rv.defined || rv.ref != nil {
		return cty.NilVal, false
	}
	return rv.literal, true
}

// Resolve produces the concrete expected value, walking the reference path
// through input when the result is declared as a reference.
func (rv ReturnValue) Resolve(input cty.Value) (cty.Value, error) {
	if !rv.defined {
		return cty.NilVal, fmt.Errorf("example declares no expected return")
	}
	if rv.ref != nil {
		return rv.ref.Resolve(input)
	}
	return rv.literal, nil
}

// Fallible reports whether the function documents runtime failure: either it
// lists internal failure reasons or its name carries the "!" abort marker.
func (f *FunctionSpec) Fallible() bool {
	return len(f.InternalFailureReasons) > 0 || strings.HasSuffix(f.Name, "!")
}

// Argument returns the argument with the given name, or nil.
func (f *FunctionSpec) Argument(name string) *ArgumentSpec {
	for i := range f.Arguments {
		if f.Arguments[i].Name == name {
			return &f.Arguments[i]
		}
	}
	return nil
}

var (
	functionNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*!?$`)
	argumentNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// New validates a raw declaration and returns it as an owned copy. Every
// structural violation is a *MalformedSpecError; the first one found is
// returned, since a single bad declaration invalidates the whole load.
func New(raw FunctionSpec) (*FunctionSpec, error) {
	name := raw.Name
	fail := func(format string, args ...any) (*FunctionSpec, error) {
		return nil, &MalformedSpecError{Function: name, Detail: fmt.Sprintf(format, args...)}
	}

	if name == "" {
		return fail("missing function name")
	}
	if !functionNameRe.MatchString(name) {
		return fail("invalid function name %q", name)
	}
	if !KnownCategory(raw.Category) {
		return fail("unknown category %q", raw.Category)
	}
	if strings.TrimSpace(raw.Description) == "" {
		return fail("missing description")
	}

	seenArgs := make(map[string]struct{}, len(raw.Arguments))
	for i, arg := range raw.Arguments {
		if arg.Name == "" {
			return fail("argument %d: missing name", i)
		}
		if !argumentNameRe.MatchString(arg.Name) {
			return fail("argument %q: invalid name", arg.Name)
		}
		if _, dup := seenArgs[arg.Name]; dup {
			return fail("argument %q: duplicate name", arg.Name)
		}
		seenArgs[arg.Name] = struct{}{}
		if strings.TrimSpace(arg.Description) == "" {
			return fail("argument %q: missing description", arg.Name)
		}
		if err := checkTags(arg.Types); err != nil {
			return fail("argument %q: %v", arg.Name, err)
		}
	}

	if err := checkTags(raw.Return.Types); err != nil {
		return fail("return: %v", err)
	}
	for i, rule := range raw.Return.Rules {
		if strings.TrimSpace(rule) == "" {
			return fail("return: rule %d is empty", i)
		}
	}

	for i, reason := range raw.InternalFailureReasons {
		if strings.TrimSpace(reason) == "" {
			return fail("internal failure reason %d is empty", i)
		}
	}
	if strings.HasSuffix(name, "!") && len(raw.InternalFailureReasons) == 0 {
		return fail("fallible function declares no internal failure reasons")
	}

	for i, ex := range raw.Examples {
		if strings.TrimSpace(ex.Title) == "" {
			return fail("example %d: missing title", i)
		}
		if strings.TrimSpace(ex.Source) == "" {
			return fail("example %q: missing source", ex.Title)
		}
		if !ex.Input.IsNull() && !ex.Input.Type().IsObjectType() && !ex.Input.Type().IsMapType() {
			return fail("example %q: input must be an object", ex.Title)
		}
	}

	spec := raw
	spec.Arguments = append([]ArgumentSpec(nil), raw.Arguments...)
	for i := range spec.Arguments {
		spec.Arguments[i].Types = append([]TypeTag(nil), raw.Arguments[i].Types...)
	}
	spec.InternalFailureReasons = append([]string(nil), raw.InternalFailureReasons...)
	spec.Return.Types = append([]TypeTag(nil), raw.Return.Types...)
	spec.Return.Rules = append([]string(nil), raw.Return.Rules...)
	spec.Examples = append([]ExampleSpec(nil), raw.Examples...)
	return &spec, nil
}

// checkTags enforces the closed vocabulary and the exclusivity of TagAny.
func checkTags(tags []TypeTag) error {
	if len(tags) == 0 {
		return fmt.Errorf("at least one type tag is required")
	}
	seen := make(map[TypeTag]struct{}, len(tags))
	hasAny := false
	for _, tag := range tags {
		if !KnownTypeTag(tag) {
			return fmt.Errorf("unknown type tag %q", tag)
		}
		if _, dup := seen[tag]; dup {
			return fmt.Errorf("duplicate type tag %q", tag)
		}
		seen[tag] = struct{}{}
		if tag == TagAny {
			hasAny = true
		}
	}
	if hasAny && len(tags) > 1 {
		return fmt.Errorf("type tag %q cannot co-occur with other tags", TagAny)
	}
	return nil
}
