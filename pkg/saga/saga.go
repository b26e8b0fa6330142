package saga

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Step is one unit of a multi-write operation. Do applies the step; Undo
// reverts it when a later step fails. Undo may be nil for steps that need no
// compensation.
type Step struct {
	Name string
	Do   func(ctx context.Context) error
	Undo func(ctx context.Context) error
}

// StepError reports which step failed and whether compensation of the
// previously applied steps succeeded. Unwrap returns the step's original
// error so typed errors survive the saga boundary; compensation failures are
// carried as secondary context and never replace the primary cause.
type StepError struct {
	Step         string
	Err          error
	Compensation error
}

func (e *StepError) Error() string {
	if e.Compensation != nil {
		return fmt.Sprintf("step %q: %v (compensation: %v)", e.Step, e.Err, e.Compensation)
	}
	return fmt.Sprintf("step %q: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Run executes the steps strictly in order. On the first failure it runs the
// Undo of every already-applied step in reverse order, then returns a
// StepError. Compensation is best-effort: all undos are attempted even when
// earlier ones fail, and their errors are combined.
func Run(ctx context.Context, steps ...Step) error {
	for i, step := range steps {
		if step.Do == nil {
			return &StepError{Step: step.Name, Err: fmt.Errorf("step has no action")}
		}
		err := step.Do(ctx)
		if err == nil {
			continue
		}

		var undoErr error
		for j := i - 1; j >= 0; j-- {
			if steps[j].Undo == nil {
				continue
			}
			if uerr := steps[j].Undo(ctx); uerr != nil {
				undoErr = multierr.Append(undoErr, fmt.Errorf("undo %q: %w", steps[j].Name, uerr))
			}
		}
		return &StepError{Step: step.Name, Err: err, Compensation: undoErr}
	}
	return nil
}

// AsStepError returns the typed step error when err came from Run.
func AsStepError(err error) *StepError {
	if err == nil {
		return nil
	}
	var typed *StepError
	if errors.As(err, &typed) {
		return typed
	}
	return nil
}
