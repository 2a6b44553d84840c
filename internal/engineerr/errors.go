// Package engineerr defines the typed error taxonomy the engine surfaces,
// so callers can distinguish fatal pipeline failures with errors.Is/As
// instead of matching on message text.
package engineerr

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per taxonomy entry. Wrap with Wrap/Wrapf to attach
// context while keeping errors.Is(err, engineerr.ErrX) working.
var (
	// ErrInputInvariantViolated means the input data set failed a
	// structural invariant the engine requires before it will build a model.
	ErrInputInvariantViolated = errors.New("input invariant violated")

	// ErrNoWorkingDays means the calendar's admissible date set is empty.
	ErrNoWorkingDays = errors.New("no working days in calendar")

	// ErrNoFeasibleSchedule means the back-end declared the model infeasible.
	ErrNoFeasibleSchedule = errors.New("no feasible schedule exists")

	// ErrSolverTimeout means the back-end hit its deadline before proving
	// feasibility or infeasibility.
	ErrSolverTimeout = errors.New("solver timed out before resolving status")

	// ErrSolverError means the back-end itself failed for a reason
	// unrelated to problem feasibility.
	ErrSolverError = errors.New("solver error")
)

// ValidationErrors aggregates every invariant violation found during
// validation, rather than stopping at the first one.
type ValidationErrors struct {
	Violations []string
}

func (e *ValidationErrors) Error() string {
	if len(e.Violations) == 1 {
		return fmt.Sprintf("input invariant violated: %s", e.Violations[0])
	}
	return fmt.Sprintf("input invariant violated: %d violations, first: %s", len(e.Violations), e.Violations[0])
}

func (e *ValidationErrors) Unwrap() error {
	return ErrInputInvariantViolated
}

// Add appends one violation description.
func (e *ValidationErrors) Add(format string, args ...any) {
	e.Violations = append(e.Violations, fmt.Sprintf(format, args...))
}

// HasViolations reports whether any violation was recorded.
func (e *ValidationErrors) HasViolations() bool {
	return len(e.Violations) > 0
}

// Wrap attaches context to a sentinel error while preserving errors.Is.
func Wrap(sentinel error, context string) error {
	return fmt.Errorf("%s: %w", context, sentinel)
}

// Wrapf attaches a formatted context string to a sentinel error.
func Wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}
