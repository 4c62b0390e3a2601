// Package validator runs batch consistency checks over a registry snapshot.
//
// A pass never stops at the first problem: every check runs over every
// declaration and all findings come back together, sorted by function name,
// then example title (function-level findings first), then message. The
// ordering is independent of map iteration and of the order declarations
// were loaded in, so repeated runs over the same snapshot produce identical
// reports.
package validator

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/vk/fndocs/internal/ctxlog"
	"github.com/vk/fndocs/model"
	"github.com/vk/fndocs/registry"
)

// failureWordRe matches the wording a return rule uses to describe failure
// behavior (fail/fails/failure, error/errors/erroring, raise/raises).
var failureWordRe = regexp.MustCompile(`(?i)\b(fail|error|rais)`)

// Validate checks every declaration in the registry and returns all
// findings. A nil result means the snapshot is clean.
func Validate(ctx context.Context, reg *registry.Registry) []Finding {
	logger := ctxlog.FromContext(ctx)

	var findings []Finding
	for _, fn := range reg.Functions() {
		findings = append(findings, checkFunction(fn)...)
	}

	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Function != b.Function {
			return a.Function < b.Function
		}
		if a.Example != b.Example {
			return a.Example < b.Example
		}
		return a.Message < b.Message
	})

	logger.Debug("Validation pass complete.", "functions", reg.Len(), "findings", len(findings))
	return findings
}

func checkFunction(fn *model.FunctionSpec) []Finding {
	var findings []Finding
	errf := func(example, format string, args ...any) {
		findings = append(findings, Finding{
			Function: fn.Name,
			Example:  example,
			Severity: SeverityError,
			Message:  fmt.Sprintf(format, args...),
		})
	}
	warnf := func(example, format string, args ...any) {
		findings = append(findings, Finding{
			Function: fn.Name,
			Example:  example,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	// Type-tag vocabulary. The constructor enforces this for loaded
	// declarations, but a registry can also be built from hand-constructed
	// specs, so the pass re-checks the model it was actually given.
	for _, arg := range fn.Arguments {
		for _, tag := range arg.Types {
			if !model.KnownTypeTag(tag) {
				errf("", "argument %q: unknown type tag %q", arg.Name, tag)
			}
		}
		if len(arg.Types) > 1 && hasTag(arg.Types, model.TagAny) {
			errf("", "argument %q: type tag %q cannot co-occur with other tags", arg.Name, model.TagAny)
		}
	}
	for _, tag := range fn.Return.Types {
		if !model.KnownTypeTag(tag) {
			errf("", "return: unknown type tag %q", tag)
		}
	}

	// Required arguments should show up in at least one example.
	for _, arg := range fn.Arguments {
		if !arg.Required {
			continue
		}
		if !argumentMentioned(fn, arg.Name) {
			warnf("", "required argument %q does not appear in any example", arg.Name)
		}
	}

	// Declared failure reasons deserve a return rule describing when the
	// function errors.
	if len(fn.InternalFailureReasons) > 0 && !rulesMentionFailure(fn.Return.Rules) {
		warnf("", "internal failure reasons are declared but no return rule describes failure behavior")
	}

	if len(fn.Examples) == 0 {
		warnf("", "function declares no examples")
	}

	seenTitles := make(map[string]struct{}, len(fn.Examples))
	for _, ex := range fn.Examples {
		if _, dup := seenTitles[ex.Title]; dup {
			warnf(ex.Title, "duplicate example title")
		}
		seenTitles[ex.Title] = struct{}{}

		// A return reference must resolve against the example's own input.
		if path, ok := ex.Return.Ref(); ok {
			if _, err := path.Resolve(ex.Input); err != nil {
				errf(ex.Title, "%v", err)
			}
		}
	}

	return findings
}

func hasTag(tags []model.TypeTag, want model.TypeTag) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

// argumentMentioned reports whether the argument name shows up in any
// example's source snippet or title.
func argumentMentioned(fn *model.FunctionSpec, name string) bool {
	for _, ex := range fn.Examples {
		if strings.Contains(ex.Source, name) || strings.Contains(ex.Title, name) {
			return true
		}
	}
	return false
}

func rulesMentionFailure(rules []string) bool {
	for _, rule := range rules {
		if failureWordRe.MatchString(rule) {
			return true
		}
	}
	return false
}
