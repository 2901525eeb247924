package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hosteldada/backend/internal/models"
)

// assignmentEventsChannel is the Redis pub/sub channel carrying assignment
// lifecycle events.
const assignmentEventsChannel = "assignments:events"

// termLockTTL bounds how long a crashed planner run can hold a term lock.
const termLockTTL = 10 * time.Minute

// CapacityExceededError reports an approval that would over-fill a room. The
// transaction that produced it has been rolled back; the room is unchanged.
type CapacityExceededError struct {
	RoomID    string
	Capacity  int
	Requested int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("room %s capacity exceeded: capacity %d, requested occupancy %d",
		e.RoomID, e.Capacity, e.Requested)
}

// TransitionConflictError reports a lifecycle update that found the
// assignment in a different status than the caller observed. Raised when a
// concurrent transition committed first; the losing transaction has been
// rolled back.
type TransitionConflictError struct {
	AssignmentID string
	Expected     string
	Actual       string
}

func (e *TransitionConflictError) Error() string {
	return fmt.Sprintf("assignment %s is %q, not %q: a concurrent transition won",
		e.AssignmentID, e.Actual, e.Expected)
}

// Storage is the persistence boundary of the matching core. The gorm/redis
// Service implements it; tests use a testify mock.
type Storage interface {
	// Survey store
	SaveSurvey(survey *models.Survey) error
	GetSurvey(studentID, term string) (*models.Survey, error) // nil, nil when absent
	ListSurveys(term string) ([]*models.Survey, error)
	MarkSurveysScored(term string, studentIDs []string) error

	// Room store
	SaveRoom(room *models.Room) error
	GetRoom(id string) (*models.Room, error)
	ListRooms() ([]*models.Room, error)

	// Compatibility store (durable; distinct from the in-memory cache)
	SaveScore(score *models.CompatibilityScore) error
	GetScore(studentA, studentB, term string) (*models.CompatibilityScore, error)

	// Assignment store
	CreateAssignment(assignment *models.RoomAssignment) error
	GetAssignment(id string) (*models.RoomAssignment, error)
	ListAssignments(term string) ([]*models.RoomAssignment, error)
	UpdateAssignmentStatus(id, from, to string) error
	ApproveAssignment(id, approver string) (*models.RoomAssignment, error)
	CancelAssignment(id string) (*models.RoomAssignment, error)

	// Coordination and events (Redis)
	AcquireTermLock(term string) (token string, err error)
	ReleaseTermLock(term, token string) error
	PublishAssignmentEvent(event models.AssignmentEvent) error
}

// Service is the production Storage backed by PostgreSQL and Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// SaveSurvey inserts or updates a survey in PostgreSQL.
func (s *Service) SaveSurvey(survey *models.Survey) error {
	return s.DB.Save(survey).Error
}

// GetSurvey returns the survey for (student, term), or nil when none exists.
func (s *Service) GetSurvey(studentID, term string) (*models.Survey, error) {
	var survey models.Survey
	err := s.DB.Where("student_id = ? AND term = ?", studentID, term).First(&survey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to get survey for %s/%s: %v", studentID, term, err)
		return nil, err
	}
	return &survey, nil
}

// ListSurveys returns every survey submitted for the term.
func (s *Service) ListSurveys(term string) ([]*models.Survey, error) {
	var surveys []*models.Survey
	if err := s.DB.Where("term = ?", term).Order("id asc").Find(&surveys).Error; err != nil {
		log.Printf("ERROR: Failed to list surveys for term %s: %v", term, err)
		return nil, err
	}
	return surveys, nil
}

// MarkSurveysScored stamps ScoredAt on the given surveys. A survey updated
// after this point must be re-scored.
func (s *Service) MarkSurveysScored(term string, studentIDs []string) error {
	return s.DB.Model(&models.Survey{}).
		Where("term = ? AND student_id IN ?", term, studentIDs).
		Update("scored_at", time.Now()).Error
}

// SaveRoom inserts or updates a room.
func (s *Service) SaveRoom(room *models.Room) error {
	return s.DB.Save(room).Error
}

// GetRoom returns a room by ID.
func (s *Service) GetRoom(id string) (*models.Room, error) {
	var room models.Room
	err := s.DB.Where("id = ?", id).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.New("room not found")
	}
	if err != nil {
		log.Printf("ERROR: Failed to get room %s: %v", id, err)
		return nil, err
	}
	return &room, nil
}

// ListRooms returns all rooms in their stored order.
func (s *Service) ListRooms() ([]*models.Room, error) {
	var rooms []*models.Room
	if err := s.DB.Order("id asc").Find(&rooms).Error; err != nil {
		log.Printf("ERROR: Failed to list rooms: %v", err)
		return nil, err
	}
	return rooms, nil
}

// SaveScore upserts a computed compatibility score under its canonical pair.
func (s *Service) SaveScore(score *models.CompatibilityScore) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_a_id"}, {Name: "student_b_id"}, {Name: "term"}},
		UpdateAll: true,
	}).Create(score).Error
}

// GetScore looks up a persisted score from either side of the pair.
func (s *Service) GetScore(studentA, studentB, term string) (*models.CompatibilityScore, error) {
	idA, idB := models.CanonicalPair(studentA, studentB)
	var score models.CompatibilityScore
	err := s.DB.Where("student_a_id = ? AND student_b_id = ? AND term = ?", idA, idB, term).
		First(&score).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// CreateAssignment persists a new assignment record.
func (s *Service) CreateAssignment(assignment *models.RoomAssignment) error {
	if assignment.Status == "" {
		assignment.Status = models.StatusPendingApproval
	}
	if err := s.DB.Create(assignment).Error; err != nil {
		log.Printf("ERROR: Failed to create assignment for room %s: %v", assignment.RoomID, err)
		return err
	}
	return nil
}

// GetAssignment returns an assignment by ID.
func (s *Service) GetAssignment(id string) (*models.RoomAssignment, error) {
	var assignment models.RoomAssignment
	err := s.DB.Where("id = ?", id).First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.New("assignment not found")
	}
	if err != nil {
		log.Printf("ERROR: Failed to get assignment %s: %v", id, err)
		return nil, err
	}
	return &assignment, nil
}

// ListAssignments returns every assignment for the term, newest first.
func (s *Service) ListAssignments(term string) ([]*models.RoomAssignment, error) {
	var assignments []*models.RoomAssignment
	if err := s.DB.Where("term = ?", term).Order("created_at desc").Find(&assignments).Error; err != nil {
		log.Printf("ERROR: Failed to list assignments for term %s: %v", term, err)
		return nil, err
	}
	return assignments, nil
}

// UpdateAssignmentStatus sets the status without touching room occupancy.
// Used for transitions that do not move students (rejection). The update is
// guarded on the from-status the caller observed; if a concurrent transition
// got there first, nothing is written and *TransitionConflictError names the
// actual status.
func (s *Service) UpdateAssignmentStatus(id, from, to string) error {
	res := s.DB.Model(&models.RoomAssignment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		current, err := s.GetAssignment(id)
		if err != nil {
			return err
		}
		return &TransitionConflictError{AssignmentID: id, Expected: from, Actual: current.Status}
	}
	return nil
}

// ApproveAssignment moves an assignment to approved and adds its students to
// the room in one transaction. The assignment row is locked and its status
// re-verified under the lock, so of two racing transitions only one commits
// (the loser gets *TransitionConflictError). The room row is locked and
// capacity re-checked the same way; on overflow the transaction rolls back
// with *CapacityExceededError and nothing is mutated.
func (s *Service) ApproveAssignment(id, approver string) (*models.RoomAssignment, error) {
	var assignment models.RoomAssignment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&assignment).Error; err != nil {
			return err
		}
		if assignment.Status != models.StatusPendingApproval {
			return &TransitionConflictError{
				AssignmentID: id,
				Expected:     models.StatusPendingApproval,
				Actual:       assignment.Status,
			}
		}
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", assignment.RoomID).First(&room).Error; err != nil {
			return err
		}
		requested := len(room.Occupants) + len(assignment.StudentIDs)
		if requested > room.Capacity {
			return &CapacityExceededError{
				RoomID:    room.ID,
				Capacity:  room.Capacity,
				Requested: requested,
			}
		}
		room.Occupants = append(room.Occupants, assignment.StudentIDs...)
		if err := tx.Save(&room).Error; err != nil {
			return err
		}
		assignment.Status = models.StatusApproved
		assignment.ApprovedBy = approver
		return tx.Save(&assignment).Error
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// CancelAssignment moves an approved assignment to cancelled and removes its
// students from the room, in one transaction. The approved status is
// re-verified under the assignment row lock, matching ApproveAssignment.
func (s *Service) CancelAssignment(id string) (*models.RoomAssignment, error) {
	var assignment models.RoomAssignment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&assignment).Error; err != nil {
			return err
		}
		if assignment.Status != models.StatusApproved {
			return &TransitionConflictError{
				AssignmentID: id,
				Expected:     models.StatusApproved,
				Actual:       assignment.Status,
			}
		}
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", assignment.RoomID).First(&room).Error; err != nil {
			return err
		}
		leaving := make(map[string]bool, len(assignment.StudentIDs))
		for _, studentID := range assignment.StudentIDs {
			leaving[studentID] = true
		}
		remaining := room.Occupants[:0]
		for _, occupant := range room.Occupants {
			if !leaving[occupant] {
				remaining = append(remaining, occupant)
			}
		}
		room.Occupants = remaining
		if err := tx.Save(&room).Error; err != nil {
			return err
		}
		assignment.Status = models.StatusCancelled
		return tx.Save(&assignment).Error
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// releaseTermLockScript deletes the lock key only while it still holds the
// caller's token. A run that outlives the TTL must not delete the lock a
// newer run now holds.
var releaseTermLockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// AcquireTermLock takes the per-term planner lock in Redis and returns the
// run token that must be presented on release. An empty token means another
// run already holds the lock. The TTL guards against a crashed run holding
// the lock forever.
func (s *Service) AcquireTermLock(term string) (string, error) {
	token := uuid.New().String()
	ok, err := s.Redis.SetNX(s.Ctx, "planner_lock:"+term, token, termLockTTL).Result()
	if err != nil || !ok {
		return "", err
	}
	return token, nil
}

// ReleaseTermLock releases the per-term planner lock if the token still owns
// it; a lock that expired and was re-acquired by a newer run is left alone.
func (s *Service) ReleaseTermLock(term, token string) error {
	return releaseTermLockScript.Run(s.Ctx, s.Redis, []string{"planner_lock:" + term}, token).Err()
}

// PublishAssignmentEvent publishes an event on the assignments channel.
func (s *Service) PublishAssignmentEvent(event models.AssignmentEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, assignmentEventsChannel, string(payload)).Err()
}

// SubscribeAssignmentEvents subscribes to the assignments channel. The caller
// owns the returned subscription and must Close it.
func (s *Service) SubscribeAssignmentEvents() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, assignmentEventsChannel)
}
