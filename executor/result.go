package executor

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Status is the outcome of one example run.
type Status int

const (
	// StatusPass means the adapter's result compared equal to the expected
	// value.
	StatusPass Status = iota
	// StatusFail means the comparison found a difference.
	StatusFail
	// StatusError means the example could not be evaluated at all; Err
	// carries the cause.
	StatusError
	// StatusSkipped means the example declares no expected return, so
	// there was nothing to compare against.
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusFail:
		return "fail"
	case StatusError:
		return "error"
	case StatusSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of running one example. Expected and Actual are set
// for pass/fail outcomes; Diff is a human-readable structural diff on
// failure; Err carries the cause for error outcomes.
type Result struct {
	Function string
	Example  string
	Status   Status
	Expected cty.Value
	Actual   cty.Value
	Diff     string
	Err      error
}

func (r Result) String() string {
	switch r.Status {
	case StatusFail:
		return fmt.Sprintf("%s: %s: example %q: expected %s, got %s",
			r.Status, r.Function, r.Example, renderValue(r.Expected), renderValue(r.Actual))
	case StatusError:
		return fmt.Sprintf("%s: %s: example %q: %v", r.Status, r.Function, r.Example, r.Err)
	default:
		return fmt.Sprintf("%s: %s: example %q", r.Status, r.Function, r.Example)
	}
}

// renderValue prints a value as JSON where possible, which keeps report
// lines diffable across runs.
func renderValue(v cty.Value) string {
	if v.IsNull() {
		return "null"
	}
	buf, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return v.GoString()
	}
	return string(buf)
}
