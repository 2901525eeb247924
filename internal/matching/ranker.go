package matching

import (
	"sort"

	"hosteldada/backend/internal/config"
	"hosteldada/backend/internal/models"
)

// Ranker answers per-student "who are my best matches" queries on top of the
// pair cache.
type Ranker struct {
	Cache *PairCache
}

// NewRanker creates a Ranker over the given cache.
func NewRanker(cache *PairCache) *Ranker {
	return &Ranker{Cache: cache}
}

// TopMatches scores the student against every other complete survey in the
// list and returns at most k results, best first. Equal scores keep their
// encounter order in the survey list. The student's own survey is never part
// of the result. Fails with *SurveyNotFoundError when the student has no
// complete survey for the term in the list.
func (r *Ranker) TopMatches(studentID, term string, surveys []*models.Survey, k int) ([]*models.CompatibilityScore, error) {
	if k <= 0 {
		k = config.DefaultTopK
	}

	var own *models.Survey
	for _, s := range surveys {
		if s.StudentID == studentID && s.Term == term && s.IsComplete() {
			own = s
			break
		}
	}
	if own == nil {
		return nil, &SurveyNotFoundError{StudentID: studentID, Term: term}
	}

	matches := make([]*models.CompatibilityScore, 0, len(surveys)-1)
	for _, other := range surveys {
		if other.StudentID == studentID || other.Term != term || !other.IsComplete() {
			continue
		}
		score, err := r.Cache.GetOrCompute(own, other)
		if err != nil {
			return nil, err
		}
		matches = append(matches, score)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Overall > matches[j].Overall
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}
