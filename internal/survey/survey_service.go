// Package survey provides the submission path for roommate questionnaires,
// including validation and re-score invalidation on updates.
package survey

import (
	"hosteldada/backend/internal/matching"
	"hosteldada/backend/internal/models"
	"hosteldada/backend/internal/storage"
)

// Cache is the slice of the pair cache this service needs: dropping stale
// edges when a survey changes.
type Cache interface {
	Invalidate(studentID string)
}

// Service handles survey submissions.
type Service struct {
	Storage storage.Storage
	Cache   Cache
}

// NewService creates a new survey service.
func NewService(s storage.Storage, c Cache) *Service {
	return &Service{Storage: s, Cache: c}
}

// Submit validates and saves a survey. Saving over an existing survey keeps
// its identity, and any cached scores involving the student are invalidated
// so the next run re-scores the pair. At most one survey exists per
// (student, term).
func (s *Service) Submit(survey *models.Survey) error {
	if err := validateClockFields(survey); err != nil {
		return err
	}

	existing, err := s.Storage.GetSurvey(survey.StudentID, survey.Term)
	if err != nil {
		return err
	}
	if existing != nil {
		survey.ID = existing.ID
		survey.ScoredAt = existing.ScoredAt
		survey.CreatedAt = existing.CreatedAt
	}

	if err := s.Storage.SaveSurvey(survey); err != nil {
		return err
	}
	if existing != nil && s.Cache != nil {
		s.Cache.Invalidate(survey.StudentID)
	}
	return nil
}

// Get returns the student's survey for the term, or *SurveyNotFoundError.
func (s *Service) Get(studentID, term string) (*models.Survey, error) {
	survey, err := s.Storage.GetSurvey(studentID, term)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, &matching.SurveyNotFoundError{StudentID: studentID, Term: term}
	}
	return survey, nil
}

// List returns every survey for the term.
func (s *Service) List(term string) ([]*models.Survey, error) {
	return s.Storage.ListSurveys(term)
}

// validateClockFields rejects malformed time strings up front, before they
// can fail a scoring run later. Empty fields are allowed here: they make the
// survey incomplete, not invalid.
func validateClockFields(survey *models.Survey) error {
	for _, value := range []string{
		survey.Lifestyle.BedTime,
		survey.Lifestyle.WakeTime,
		survey.Sleep.BedTime,
		survey.Sleep.WakeTime,
	} {
		if value == "" {
			continue
		}
		if _, err := matching.ParseClockTime(value); err != nil {
			return err
		}
	}
	return nil
}
