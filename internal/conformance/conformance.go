// Package conformance verifies that a backend honors the tensor-operation
// contract.
//
// The suite is a list of named checks written once against tensor.Backend and
// the generic operations of package ops, so any backend (or backend
// decorator) can be run through it:
//
//	report := conformance.Run[float32, int64](cpu.New[float32, int64]())
//	for _, r := range report.Failures() {
//		fmt.Println(r.Name, r.Err)
//	}
//
// Contract violations raised as panics inside a check are captured and
// reported as that check's failure.
package conformance

import (
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/tensorops/internal/tensor"
)

// ErrCheckFailed is wrapped by every failure a check reports itself (as opposed
// to a contract violation raised by the backend).
var ErrCheckFailed = errors.New("conformance check failed")

// Check is one named property verified against a backend.
type Check[FE tensor.FloatElement, IE tensor.IntElement] struct {
	Name        string
	Description string
	Run         func(b tensor.Backend[FE, IE]) error
}

// Result is the outcome of one Check.
type Result struct {
	Name    string
	Err     error // nil if the check passed.
	Elapsed time.Duration
}

// Passed reports whether the check passed.
func (r Result) Passed() bool { return r.Err == nil }

// Report collects the results of a run against one backend.
type Report struct {
	Backend string
	Results []Result
	Elapsed time.Duration
}

// Passed reports whether every check passed.
func (r Report) Passed() bool {
	return len(r.Failures()) == 0
}

// Failures returns the results of the failed checks, in run order.
func (r Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.Passed() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Run executes every check of Checks against b.
func Run[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE]) Report {
	return RunChecks(b, Checks[FE, IE]())
}

// RunChecks executes checks against b in order. A panicking check does not stop
// the run.
func RunChecks[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE], checks []Check[FE, IE]) Report {
	start := time.Now()
	report := Report{Backend: b.Name(), Results: make([]Result, 0, len(checks))}
	for _, c := range checks {
		checkStart := time.Now()
		var err error
		if panicErr := tensor.Try(func() { err = c.Run(b) }); panicErr != nil {
			err = panicErr
		}
		if err != nil {
			klog.V(1).Infof("conformance %s: %s failed: %v", report.Backend, c.Name, err)
		}
		report.Results = append(report.Results, Result{Name: c.Name, Err: err, Elapsed: time.Since(checkStart)})
	}
	report.Elapsed = time.Since(start)
	return report
}

func failf(format string, args ...any) error {
	return errors.Wrapf(ErrCheckFailed, format, args...)
}
