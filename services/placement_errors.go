package services

import (
	"errors"
	"fmt"

	"github.com/campushire/placement-api/model"
)

// Business errors returned by the placement engine. Handlers map these to
// HTTP statuses; anything not in this set is an internal failure.
var (
	ErrJobNotFound         = errors.New("job not found")
	ErrStudentNotFound     = errors.New("student not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrJobClosed           = errors.New("job is not accepting applications")
	ErrAlreadyApplied      = errors.New("already applied to this job")
	ErrForbidden           = errors.New("not allowed to manage this application")
)

// Ineligibility reasons
const (
	ReasonBranch   = "branch"
	ReasonCGPA     = "cgpa"
	ReasonDeadline = "deadline"
)

// IneligibleError reports which eligibility check failed so the handler
// can show a precise message.
type IneligibleError struct {
	Reason string
}

func (e *IneligibleError) Error() string {
	return fmt.Sprintf("student is not eligible for this job: %s", e.Reason)
}

// Message returns the user-facing explanation for the failed check.
func (e *IneligibleError) Message() string {
	switch e.Reason {
	case ReasonBranch:
		return "Your branch is not eligible for this job"
	case ReasonCGPA:
		return "Your CGPA does not meet the minimum requirement"
	case ReasonDeadline:
		return "The application deadline for this job has passed"
	}
	return "You are not eligible for this job"
}

// InvalidTransitionError is returned when a status change violates the
// application state machine.
type InvalidTransitionError struct {
	From model.ApplicationStatus
	To   model.ApplicationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.From, e.To)
}
