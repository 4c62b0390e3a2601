// Package registry holds one immutable snapshot of all loaded function
// declarations, keyed by unique function name.
//
// A snapshot is built in full or not at all: any malformed declaration or
// name collision aborts the load, because downstream consumers (reference
// renderers, type checkers, example runners) must never see a partially
// consistent declaration set. There is no ambient global registry; every
// load produces an independent value that callers pass by reference.
package registry

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/fndocs/internal/ctxlog"
	"github.com/vk/fndocs/model"
)

// Loader is the interface a format-specific declaration loader implements.
// Implementations parse raw declaration sources into the format-agnostic
// model, leaving all cross-declaration concerns to this package.
type Loader interface {
	Load(ctx context.Context, paths ...string) ([]*model.FunctionSpec, error)
}

// DuplicateFunctionError reports two declarations claiming the same name.
type DuplicateFunctionError struct {
	Name string
}

func (e *DuplicateFunctionError) Error() string {
	return fmt.Sprintf("function %q is declared more than once", e.Name)
}

// Registry is an immutable snapshot of loaded declarations.
type Registry struct {
	byName map[string]*model.FunctionSpec
	names  []string
}

// New builds a snapshot from already-parsed declarations. The same
// *DuplicateFunctionError is produced for a colliding name regardless of the
// order the declarations arrive in.
func New(specs []*model.FunctionSpec) (*Registry, error) {
	byName := make(map[string]*model.FunctionSpec, len(specs))
	for _, spec := range specs {
		if _, exists := byName[spec.Name]; exists {
			return nil, &DuplicateFunctionError{Name: spec.Name}
		}
		byName[spec.Name] = spec
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Registry{byName: byName, names: names}, nil
}

// Load runs the given loader over the declaration sources and builds a
// snapshot from the result. Parse and schema errors propagate unchanged, so
// a single bad source aborts the whole load.
func Load(ctx context.Context, loader Loader, paths ...string) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)

	specs, err := loader.Load(ctx, paths...)
	if err != nil {
		return nil, err
	}

	reg, err := New(specs)
	if err != nil {
		return nil, err
	}
	logger.Debug("Registry snapshot built.", "functions", reg.Len())
	return reg, nil
}

// Function returns the declaration for the given name.
func (r *Registry) Function(name string) (*model.FunctionSpec, bool) {
	spec, ok := r.byName[name]
	return spec, ok
}

// Names returns the sorted function names. The caller owns the slice.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Functions returns all declarations sorted by name. The caller owns the
// slice; the declarations themselves are shared and read-only.
func (r *Registry) Functions() []*model.FunctionSpec {
	out := make([]*model.FunctionSpec, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.byName[name])
	}
	return out
}

// Len returns the number of declared functions.
func (r *Registry) Len() int {
	return len(r.byName)
}
