package executor

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Adapter runs one example's source snippet against its input. It is
// implemented by an external evaluator for the transformation language; this
// package only drives it and compares results.
//
// Run must honor ctx cancellation: the engine bounds every call with the
// configured per-example timeout.
type Adapter interface {
	Run(ctx context.Context, source string, input cty.Value) (cty.Value, error)
}

// Kind classifies an example execution failure.
type Kind int

const (
	// KindFailure is an adapter error: the evaluator rejected or failed to
	// run the snippet.
	KindFailure Kind = iota
	// KindTimeout means the adapter exceeded the configured per-example
	// deadline.
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindFailure:
		return "failure"
	case KindTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ExampleExecutionError reports that the adapter failed to run one example.
// It is isolated to that example and never aborts the rest of the pass.
type ExampleExecutionError struct {
	Function string
	Example  string
	Kind     Kind
	Err      error
}

func (e *ExampleExecutionError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return fmt.Sprintf("example %q of function %q timed out", e.Example, e.Function)
	default:
		return fmt.Sprintf("example %q of function %q failed to execute: %v", e.Example, e.Function, e.Err)
	}
}

func (e *ExampleExecutionError) Unwrap() error {
	return e.Err
}
