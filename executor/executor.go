// Package executor drives the worked examples of a registry snapshot
// through an external evaluator and compares expected against actual
// results.
//
// Examples are independent of each other, so they fan out across a fixed
// pool of workers. Execution order is irrelevant to correctness: results
// come back sorted by function name, then example title, so reports are
// reproducible no matter how the pool schedules the work. One example
// failing, erroring, or timing out never aborts the others.
package executor

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/fndocs/internal/ctxlog"
	"github.com/vk/fndocs/internal/ctyutil"
	"github.com/vk/fndocs/model"
	"github.com/vk/fndocs/registry"
)

const (
	defaultWorkers = 10
	defaultTimeout = 10 * time.Second
)

// Options configures an execution pass.
type Options struct {
	// Workers is the number of concurrent adapter invocations. Values
	// below one fall back to the default of 10.
	Workers int

	// Timeout bounds each adapter call. Values at or below zero fall back
	// to the default of 10s; an overrun is reported as a timeout-kind
	// execution error for that example only.
	Timeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Workers < 1 {
		o.Workers = defaultWorkers
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return o
}

// job is one example paired with its owning function.
type job struct {
	fn *model.FunctionSpec
	ex model.ExampleSpec
}

// Run evaluates every example in the registry through the adapter and
// returns one Result per example, sorted by function name then example
// title.
func Run(ctx context.Context, reg *registry.Registry, adapter Adapter, opts Options) []Result {
	opts = opts.withDefaults()
	logger := ctxlog.FromContext(ctx)

	var jobs []job
	for _, fn := range reg.Functions() {
		for _, ex := range fn.Examples {
			jobs = append(jobs, job{fn: fn, ex: ex})
		}
	}
	if len(jobs) == 0 {
		return nil
	}

	jobChan := make(chan job)
	resultChan := make(chan Result, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for j := range jobChan {
				logger.Debug("Worker picked up example.", "workerID", workerID, "function", j.fn.Name, "example", j.ex.Title)
				resultChan <- runExample(ctx, adapter, j, opts.Timeout)
			}
		}(i)
	}

	for _, j := range jobs {
		jobChan <- j
	}
	close(jobChan)
	wg.Wait()
	close(resultChan)

	results := make([]Result, 0, len(jobs))
	for res := range resultChan {
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Function != results[j].Function {
			return results[i].Function < results[j].Function
		}
		return results[i].Example < results[j].Example
	})

	logger.Debug("Example execution complete.", "examples", len(results))
	return results
}

// runExample resolves the expected value, invokes the adapter under the
// per-example deadline, and compares.
func runExample(ctx context.Context, adapter Adapter, j job, timeout time.Duration) Result {
	res := Result{Function: j.fn.Name, Example: j.ex.Title}

	if !j.ex.Return.Defined() {
		res.Status = StatusSkipped
		return res
	}

	expected, err := j.ex.Return.Resolve(j.ex.Input)
	if err != nil {
		res.Status = StatusError
		res.Err = err
		return res
	}
	res.Expected = expected

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		val cty.Value
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		val, err := adapter.Run(runCtx, j.ex.Source, j.ex.Input)
		done <- outcome{val: val, err: err}
	}()

	select {
	case o := <-done:
		if o.err != nil {
			kind := KindFailure
			if errors.Is(o.err, context.DeadlineExceeded) {
				kind = KindTimeout
			}
			res.Status = StatusError
			res.Err = &ExampleExecutionError{
				Function: j.fn.Name,
				Example:  j.ex.Title,
				Kind:     kind,
				Err:      o.err,
			}
			return res
		}
		res.Actual = o.val
	case <-runCtx.Done():
		kind := KindFailure
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			kind = KindTimeout
		}
		res.Status = StatusError
		res.Err = &ExampleExecutionError{
			Function: j.fn.Name,
			Example:  j.ex.Title,
			Kind:     kind,
			Err:      runCtx.Err(),
		}
		return res
	}

	if Equal(res.Expected, res.Actual) {
		res.Status = StatusPass
		return res
	}

	res.Status = StatusFail
	res.Diff = cmp.Diff(ctyutil.ToNative(res.Expected), ctyutil.ToNative(res.Actual))
	return res
}
