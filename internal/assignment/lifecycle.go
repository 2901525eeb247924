// Package assignment owns the room assignment lifecycle: a small state
// machine over assignment statuses plus the occupancy updates that approval
// and cancellation trigger.
package assignment

import (
	"errors"
	"fmt"
	"log"

	"hosteldada/backend/internal/models"
	"hosteldada/backend/internal/storage"
)

// InvalidTransitionError reports a lifecycle move the state machine does not
// allow, naming the attempted from/to pair.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid assignment transition from %q to %q", e.From, e.To)
}

// validTransitions is the whole lifecycle. "rejected" and "cancelled" are
// terminal and deliberately absent as keys.
var validTransitions = map[string][]string{
	models.StatusPendingApproval: {models.StatusApproved, models.StatusRejected},
	models.StatusApproved:        {models.StatusCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Service handles the business logic of assignment transitions.
type Service struct {
	Storage storage.Storage
}

// NewService creates a new lifecycle service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// Transition moves an assignment to a new status. Every request either
// succeeds per the transition table or fails with *InvalidTransitionError.
// The table check here runs on an unlocked read; the storage layer
// re-verifies the from-status inside its transaction, so of two racing
// transitions only one commits and the loser fails with
// *InvalidTransitionError naming the status that actually won.
// Approval adds the assignment's students to the room atomically and records
// actor as the approver; if the room would over-fill the approval fails with
// *storage.CapacityExceededError and nothing changes. Cancellation removes
// the students the same way.
func (s *Service) Transition(id, to, actor string) (*models.RoomAssignment, error) {
	assignment, err := s.Storage.GetAssignment(id)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(assignment.Status, to) {
		return nil, &InvalidTransitionError{From: assignment.Status, To: to}
	}

	switch to {
	case models.StatusApproved:
		assignment, err = s.Storage.ApproveAssignment(id, actor)
	case models.StatusCancelled:
		assignment, err = s.Storage.CancelAssignment(id)
	default: // rejection moves no students
		err = s.Storage.UpdateAssignmentStatus(id, assignment.Status, to)
		if err == nil {
			assignment.Status = to
		}
	}
	if err != nil {
		var conflict *storage.TransitionConflictError
		if errors.As(err, &conflict) {
			return nil, &InvalidTransitionError{From: conflict.Actual, To: to}
		}
		return nil, err
	}

	event := models.AssignmentEvent{
		AssignmentID: assignment.ID,
		RoomID:       assignment.RoomID,
		Term:         assignment.Term,
		StudentIDs:   assignment.StudentIDs,
		Status:       assignment.Status,
		Score:        assignment.Score,
	}
	if err := s.Storage.PublishAssignmentEvent(event); err != nil {
		log.Printf("ERROR: Failed to publish event for assignment %s: %v", assignment.ID, err)
	}
	return assignment, nil
}
