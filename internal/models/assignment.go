package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Assignment statuses. Assignments are never deleted, only transitioned;
// "rejected" and "cancelled" are terminal.
const (
	StatusPendingApproval = "pending-approval"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
	StatusCancelled       = "cancelled"
)

// RoomAssignment links a room to one or more students for a term. Score is
// the compatibility score that justified the pairing (0 for single-occupant
// or administrator-created assignments).
type RoomAssignment struct {
	ID         string         `gorm:"primaryKey" json:"id"` // UUID
	RoomID     string         `gorm:"index" json:"room_id"`
	Term       string         `gorm:"index" json:"term"`
	StudentIDs pq.StringArray `gorm:"type:text[]" json:"student_ids"`
	Score      int            `json:"score"`
	Status     string         `json:"status"`
	ApprovedBy string         `json:"approved_by,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// BeforeCreate is a GORM hook that assigns a fresh UUID when none is set.
func (a *RoomAssignment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

// AssignmentEvent is the payload published on the Redis assignments channel
// whenever an assignment is created or transitioned.
type AssignmentEvent struct {
	AssignmentID string   `json:"assignment_id"`
	RoomID       string   `json:"room_id"`
	Term         string   `json:"term"`
	StudentIDs   []string `json:"student_ids"`
	Status       string   `json:"status"`
	Score        int      `json:"score"`
}
