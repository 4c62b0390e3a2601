package validator

import "fmt"

// Severity classifies a finding. Errors are expected to block downstream
// publication; warnings are advisory. The decision is the caller's.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Finding is one diagnostic produced by a validation pass. Example is empty
// for function-level findings.
type Finding struct {
	Function string
	Example  string
	Severity Severity
	Message  string
}

func (f Finding) String() string {
	if f.Example == "" {
		return fmt.Sprintf("%s: %s: %s", f.Severity, f.Function, f.Message)
	}
	return fmt.Sprintf("%s: %s: example %q: %s", f.Severity, f.Function, f.Example, f.Message)
}
