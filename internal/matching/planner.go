package matching

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/lib/pq"

	"hosteldada/backend/internal/config"
	"hosteldada/backend/internal/models"
)

// AssignmentCreator persists planner output. Implemented by the storage
// service; tests substitute a mock.
type AssignmentCreator interface {
	CreateAssignment(assignment *models.RoomAssignment) error
}

// Planner generates term-wide room assignments: every pair is scored (in
// parallel, through the cache), pairs are sorted best-first, and rooms are
// consumed greedily. The result is a maximal greedy matching, not a global
// optimum.
type Planner struct {
	Cache   *PairCache
	Store   AssignmentCreator // nil means plan without persisting
	Workers int               // defaults to config.PlannerWorkerCount
}

// NewPlanner creates a Planner over the given cache and store.
func NewPlanner(cache *PairCache, store AssignmentCreator) *Planner {
	return &Planner{Cache: cache, Store: store, Workers: config.PlannerWorkerCount}
}

type scoredPair struct {
	a, b  *models.Survey
	score *models.CompatibilityScore
}

// AutoAssign plans pending-approval assignments for a term. Rooms are
// consumed in the order given, one pair per room; rooms with fewer than two
// free slots are skipped and larger rooms are never topped up beyond a pair.
// Leftover students and rooms are simply absent from the result.
//
// ctx is checked between pair evaluations; cancellation aborts the run with
// ctx.Err(). A storage failure mid-batch stops the walk and returns the
// assignments already created together with a *PlanWriteError naming the
// failed pair. Callers must serialize runs for the same term.
func (p *Planner) AutoAssign(ctx context.Context, term string, surveys []*models.Survey, rooms []*models.Room) ([]*models.RoomAssignment, error) {
	var complete []*models.Survey
	for _, s := range surveys {
		if s.IsComplete() {
			complete = append(complete, s)
		}
	}
	var usable []*models.Room
	for _, r := range rooms {
		if r.Capacity >= config.MinRoomCapacity && r.FreeSlots() >= 2 {
			usable = append(usable, r)
		}
	}
	if len(complete) < 2 {
		return nil, &InsufficientDataError{
			Reason: fmt.Sprintf("need at least 2 complete surveys, have %d", len(complete)),
		}
	}
	if len(usable) == 0 {
		return nil, &InsufficientDataError{
			Reason: "need at least one room with two free slots",
		}
	}

	// Phase 1: score every unordered pair. Embarrassingly parallel; all
	// shared state lives in the cache.
	pairs, err := p.scoreAllPairs(ctx, complete)
	if err != nil {
		return nil, err
	}

	// Phase 2: greedy walk, sequential and cheap. Stable sort keeps
	// pair-generation order among equal scores, which makes tie-breaking a
	// tested contract instead of sort-implementation luck.
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].score.Overall > pairs[j].score.Overall
	})

	assigned := make(map[string]bool)
	roomIdx := 0
	var created []*models.RoomAssignment
	for _, pair := range pairs {
		if roomIdx >= len(usable) {
			break
		}
		if assigned[pair.a.StudentID] || assigned[pair.b.StudentID] {
			continue
		}
		assignment := &models.RoomAssignment{
			RoomID:     usable[roomIdx].ID,
			Term:       term,
			StudentIDs: pq.StringArray{pair.a.StudentID, pair.b.StudentID},
			Score:      pair.score.Overall,
			Status:     models.StatusPendingApproval,
		}
		if p.Store != nil {
			if err := p.Store.CreateAssignment(assignment); err != nil {
				return created, &PlanWriteError{
					StudentAID: pair.a.StudentID,
					StudentBID: pair.b.StudentID,
					Err:        err,
				}
			}
		}
		created = append(created, assignment)
		assigned[pair.a.StudentID] = true
		assigned[pair.b.StudentID] = true
		roomIdx++
	}
	return created, nil
}

// scoreAllPairs computes the C(n,2) pair scores with a bounded worker pool.
// Results land in generation order (outer index ascending, then inner), which
// phase 2 relies on for stable tie-breaking.
func (p *Planner) scoreAllPairs(ctx context.Context, surveys []*models.Survey) ([]scoredPair, error) {
	n := len(surveys)
	results := make([]scoredPair, n*(n-1)/2)

	type job struct {
		i, j, ord int
	}
	jobs := make(chan job)

	workers := p.Workers
	if workers <= 0 {
		workers = config.PlannerWorkerCount
	}

	var wg sync.WaitGroup
	var errMu sync.Mutex
	var firstErr error

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for jb := range jobs {
				if ctx.Err() != nil {
					continue // keep draining so the producer never blocks
				}
				score, err := p.Cache.GetOrCompute(surveys[jb.i], surveys[jb.j])
				if err != nil {
					errMu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					errMu.Unlock()
					continue
				}
				results[jb.ord] = scoredPair{a: surveys[jb.i], b: surveys[jb.j], score: score}
			}
		}()
	}

	ord := 0
produce:
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			select {
			case <-ctx.Done():
				break produce
			case jobs <- job{i: i, j: j, ord: ord}:
				ord++
			}
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	errMu.Lock()
	defer errMu.Unlock()
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
