package matching

import (
	"errors"
	"fmt"
)

// ErrTermPlanInProgress is returned when an auto-assignment run is requested
// for a term that already has one running. Runs for the same term must be
// serialized or rooms could be double-booked.
var ErrTermPlanInProgress = errors.New("a room assignment run for this term is already in progress")

// IncompleteSurveyError reports that a survey is missing required answers and
// cannot be scored.
type IncompleteSurveyError struct {
	StudentID string
}

func (e *IncompleteSurveyError) Error() string {
	return fmt.Sprintf("survey for student %s is incomplete and cannot be scored", e.StudentID)
}

// InvalidTimeFormatError reports a survey time field that is not a valid
// 12-hour clock string like "11:00 PM".
type InvalidTimeFormatError struct {
	Value string
}

func (e *InvalidTimeFormatError) Error() string {
	return fmt.Sprintf("invalid time format %q, expected e.g. \"11:00 PM\"", e.Value)
}

// SurveyNotFoundError reports that the requesting student has no complete
// survey for the term.
type SurveyNotFoundError struct {
	StudentID string
	Term      string
}

func (e *SurveyNotFoundError) Error() string {
	return fmt.Sprintf("no complete survey found for student %s in term %s", e.StudentID, e.Term)
}

// InsufficientDataError reports that a batch run has too few complete surveys
// or usable rooms to do anything.
type InsufficientDataError struct {
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return "not enough data to run room assignment: " + e.Reason
}

// PlanWriteError reports that persisting one planned assignment failed.
// Assignments created before the failure are kept; AutoAssign returns them
// alongside this error so the caller can reconcile.
type PlanWriteError struct {
	StudentAID string
	StudentBID string
	Err        error
}

func (e *PlanWriteError) Error() string {
	return fmt.Sprintf("failed to create assignment for pair (%s, %s): %v", e.StudentAID, e.StudentBID, e.Err)
}

func (e *PlanWriteError) Unwrap() error { return e.Err }
