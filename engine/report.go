package engine

import (
	"fmt"

	"github.com/vk/fndocs/executor"
	"github.com/vk/fndocs/registry"
	"github.com/vk/fndocs/validator"
)

// Report is the aggregated outcome of one pass. Findings and Results are
// already in their deterministic order (function name, then example title).
type Report struct {
	Registry *registry.Registry
	Findings []validator.Finding
	Results  []executor.Result
}

// Err summarizes whether the pass should block publication: it returns a
// non-nil error when any error-severity finding or any failed or errored
// example is present. Warnings alone keep a report clean.
func (r *Report) Err() error {
	errFindings := 0
	for _, f := range r.Findings {
		if f.Severity == validator.SeverityError {
			errFindings++
		}
	}

	badResults := 0
	for _, res := range r.Results {
		if res.Status == executor.StatusFail || res.Status == executor.StatusError {
			badResults++
		}
	}

	if errFindings == 0 && badResults == 0 {
		return nil
	}
	return fmt.Errorf("documentation pass found %d error finding(s) and %d failing example(s)", errFindings, badResults)
}

// Passed reports how many examples compared equal.
func (r *Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == executor.StatusPass {
			n++
		}
	}
	return n
}
