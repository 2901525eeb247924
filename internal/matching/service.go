package matching

import (
	"context"
	"log"

	"hosteldada/backend/internal/models"
	"hosteldada/backend/internal/storage"
)

// Service glues the scorer, cache, ranker and planner to the stores and is
// the entry point used by the HTTP handlers and the admin CLI.
type Service struct {
	Storage storage.Storage
	Cache   *PairCache
	Ranker  *Ranker
	Planner *Planner
}

// NewService creates a fully wired matching service. Freshly computed scores
// are persisted through the storage service on a best-effort basis.
func NewService(s storage.Storage) *Service {
	cache := NewPairCache(Score, s)
	return &Service{
		Storage: s,
		Cache:   cache,
		Ranker:  NewRanker(cache),
		Planner: NewPlanner(cache, s),
	}
}

// ScorePair scores two students for a term, loading their surveys from the
// survey store. Missing surveys fail with *SurveyNotFoundError.
func (s *Service) ScorePair(studentA, studentB, term string) (*models.CompatibilityScore, error) {
	surveyA, err := s.Storage.GetSurvey(studentA, term)
	if err != nil {
		return nil, err
	}
	if surveyA == nil {
		return nil, &SurveyNotFoundError{StudentID: studentA, Term: term}
	}
	surveyB, err := s.Storage.GetSurvey(studentB, term)
	if err != nil {
		return nil, err
	}
	if surveyB == nil {
		return nil, &SurveyNotFoundError{StudentID: studentB, Term: term}
	}
	return s.Cache.GetOrCompute(surveyA, surveyB)
}

// TopMatches returns the student's k best matches among the term's surveys.
func (s *Service) TopMatches(studentID, term string, k int) ([]*models.CompatibilityScore, error) {
	surveys, err := s.Storage.ListSurveys(term)
	if err != nil {
		return nil, err
	}
	return s.Ranker.TopMatches(studentID, term, surveys, k)
}

// AutoAssignTerm runs the planner for a term against all of its surveys and
// all available rooms. Runs for the same term are serialized through a Redis
// lock; a second concurrent run fails fast with ErrTermPlanInProgress.
// Consumed surveys are stamped as scored and an event is published for every
// created assignment.
func (s *Service) AutoAssignTerm(ctx context.Context, term string) ([]*models.RoomAssignment, error) {
	token, err := s.Storage.AcquireTermLock(term)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrTermPlanInProgress
	}
	defer func() {
		if err := s.Storage.ReleaseTermLock(term, token); err != nil {
			log.Printf("ERROR: Failed to release planner lock for term %s: %v", term, err)
		}
	}()

	surveys, err := s.Storage.ListSurveys(term)
	if err != nil {
		return nil, err
	}
	rooms, err := s.Storage.ListRooms()
	if err != nil {
		return nil, err
	}

	created, planErr := s.Planner.AutoAssign(ctx, term, surveys, rooms)

	if len(created) > 0 {
		var scored []string
		for _, assignment := range created {
			scored = append(scored, assignment.StudentIDs...)
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
		}
		if err := s.Storage.MarkSurveysScored(term, scored); err != nil {
			log.Printf("ERROR: Failed to mark surveys scored for term %s: %v", term, err)
		}
	}
	return created, planErr
}
