package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hosteldada/backend/internal/matching"
	"hosteldada/backend/internal/models"
)

// rankerFixture returns surveys where bob > carol > dave as matches for
// alice, by making each differ from the baseline a little more.
func rankerFixture() []*models.Survey {
	alice := completeSurvey("alice", "2026-spring")
	bob := completeSurvey("bob", "2026-spring")
	carol := completeSurvey("carol", "2026-spring")
	carol.Study.StudyStyle = "group" // study 85
	dave := completeSurvey("dave", "2026-spring")
	dave.Study.StudyStyle = "group"
	dave.Lifestyle.Smokes = true // lifestyle 88 on top
	return []*models.Survey{alice, bob, carol, dave}
}

// TestTopMatchesOrdering verifies descending order by overall score.
func TestTopMatchesOrdering(t *testing.T) {
	ranker := matching.NewRanker(matching.NewPairCache(nil, nil))

	matches, err := ranker.TopMatches("alice", "2026-spring", rankerFixture(), 10)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "bob", matches[0].PartnerOf("alice"))
	assert.Equal(t, "carol", matches[1].PartnerOf("alice"))
	assert.Equal(t, "dave", matches[2].PartnerOf("alice"))
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Overall, matches[i].Overall)
	}
}

// TestTopMatchesLimit verifies at most k results come back.
func TestTopMatchesLimit(t *testing.T) {
	ranker := matching.NewRanker(matching.NewPairCache(nil, nil))

	matches, err := ranker.TopMatches("alice", "2026-spring", rankerFixture(), 2)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
	assert.Equal(t, "bob", matches[0].PartnerOf("alice"))
}

// TestTopMatchesExcludesSelf verifies the requesting student never appears
// in their own results.
func TestTopMatchesExcludesSelf(t *testing.T) {
	ranker := matching.NewRanker(matching.NewPairCache(nil, nil))

	matches, err := ranker.TopMatches("alice", "2026-spring", rankerFixture(), 10)
	require.NoError(t, err)
	for _, m := range matches {
		assert.NotEqual(t, "alice", m.PartnerOf("alice"), "self must be excluded")
		assert.True(t, m.Involves("alice"))
	}
}

// TestTopMatchesSkipsIncomplete verifies students with incomplete surveys are
// not scored against.
func TestTopMatchesSkipsIncomplete(t *testing.T) {
	surveys := rankerFixture()
	eve := completeSurvey("eve", "2026-spring")
	eve.Personality.ConflictStyle = ""
	surveys = append(surveys, eve)

	ranker := matching.NewRanker(matching.NewPairCache(nil, nil))
	matches, err := ranker.TopMatches("alice", "2026-spring", surveys, 10)
	require.NoError(t, err)

	assert.Len(t, matches, 3)
	for _, m := range matches {
		assert.NotEqual(t, "eve", m.PartnerOf("alice"))
	}
}

// TestTopMatchesUnknownStudent verifies the ranker fails with
// SurveyNotFoundError when the requester has no complete survey.
func TestTopMatchesUnknownStudent(t *testing.T) {
	ranker := matching.NewRanker(matching.NewPairCache(nil, nil))

	_, err := ranker.TopMatches("mallory", "2026-spring", rankerFixture(), 3)
	var notFound *matching.SurveyNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "mallory", notFound.StudentID)
	assert.Equal(t, "2026-spring", notFound.Term)
}

// TestTopMatchesEmptyList verifies the error still names the requested term
// when there are no surveys at all.
func TestTopMatchesEmptyList(t *testing.T) {
	ranker := matching.NewRanker(matching.NewPairCache(nil, nil))

	_, err := ranker.TopMatches("alice", "2026-fall", nil, 3)
	var notFound *matching.SurveyNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "alice", notFound.StudentID)
	assert.Equal(t, "2026-fall", notFound.Term)
}

// TestTopMatchesFiltersOtherTerms verifies a survey from a different term is
// never scored against, even when it sits in the input list.
func TestTopMatchesFiltersOtherTerms(t *testing.T) {
	surveys := rankerFixture()
	surveys = append(surveys, completeSurvey("frank", "2026-fall"))

	ranker := matching.NewRanker(matching.NewPairCache(nil, nil))
	matches, err := ranker.TopMatches("alice", "2026-spring", surveys, 10)
	require.NoError(t, err)

	assert.Len(t, matches, 3)
	for _, m := range matches {
		assert.NotEqual(t, "frank", m.PartnerOf("alice"))
	}
}
