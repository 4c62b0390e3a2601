package model

import "fmt"

// MalformedSpecError reports a structural violation in a single function
// declaration. A load that hits one aborts entirely; a registry is never
// built from a partially valid declaration set.
type MalformedSpecError struct {
	Function string // declared function name, may be empty when the name itself is missing
	Detail   string
}

func (e *MalformedSpecError) Error() string {
	if e.Function == "" {
		return fmt.Sprintf("malformed function declaration: %s", e.Detail)
	}
	return fmt.Sprintf("malformed declaration for function %q: %s", e.Function, e.Detail)
}

// BrokenReferenceError reports an example return reference that does not
// resolve against the example's declared input.
type BrokenReferenceError struct {
	Ref string // full dotted reference, e.g. "input.log.message"
	At  string // the step that failed to resolve
}

func (e *BrokenReferenceError) Error() string {
	return fmt.Sprintf("reference %q cannot be resolved: no value at %q", e.Ref, e.At)
}
