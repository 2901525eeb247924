package matching

import (
	"log"
	"sync"

	"hosteldada/backend/internal/models"
)

// ScoreFunc computes a compatibility score for two surveys.
type ScoreFunc func(a, b *models.Survey) (*models.CompatibilityScore, error)

// ScorePersister writes freshly computed scores to durable storage. A failure
// here must not block scoring: the in-memory result is still served.
type ScorePersister interface {
	SaveScore(score *models.CompatibilityScore) error
}

type pairKey struct {
	a, b string // canonical order, a < b
	term string
}

// PairCache memoizes pairwise compatibility scores for the process lifetime.
// Each unordered pair is stored once under a canonical key, so a lookup from
// either side is O(1) and both sides always see the same score object.
type PairCache struct {
	mu      sync.RWMutex
	scores  map[pairKey]*models.CompatibilityScore
	score   ScoreFunc
	persist ScorePersister // optional
}

// NewPairCache builds a cache around the given score function. A nil scoreFn
// uses Score. persist may be nil when durable storage is not wanted.
func NewPairCache(scoreFn ScoreFunc, persist ScorePersister) *PairCache {
	if scoreFn == nil {
		scoreFn = Score
	}
	return &PairCache{
		scores:  make(map[pairKey]*models.CompatibilityScore),
		score:   scoreFn,
		persist: persist,
	}
}

func keyFor(a, b *models.Survey) pairKey {
	idA, idB := models.CanonicalPair(a.StudentID, b.StudentID)
	return pairKey{a: idA, b: idB, term: a.Term}
}

// GetOrCompute returns the cached score for the pair, computing and caching
// it on a miss. Two goroutines racing on the same miss both compute; the
// first insert wins and the loser's result is discarded, which is harmless
// because the score function is pure.
func (c *PairCache) GetOrCompute(a, b *models.Survey) (*models.CompatibilityScore, error) {
	key := keyFor(a, b)

	c.mu.RLock()
	cached, ok := c.scores[key]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	computed, err := c.score(a, b)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if existing, ok := c.scores[key]; ok {
		c.mu.Unlock()
		return existing, nil
	}
	c.scores[key] = computed
	c.mu.Unlock()

	if c.persist != nil {
		if err := c.persist.SaveScore(computed); err != nil {
			log.Printf("ERROR: Failed to persist score for pair (%s, %s): %v", key.a, key.b, err)
		}
	}
	return computed, nil
}

// Invalidate drops every cached score involving the given student. Called
// when a survey is updated so later lookups re-score.
func (c *PairCache) Invalidate(studentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.scores {
		if key.a == studentID || key.b == studentID {
			delete(c.scores, key)
		}
	}
}

// Clear empties the cache.
func (c *PairCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scores = make(map[pairKey]*models.CompatibilityScore)
}

// Len returns the number of cached pairs.
func (c *PairCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.scores)
}
