package matching_test

import (
	"hosteldada/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// completeSurvey builds a fully answered survey fixture. Tests tweak single
// fields from this baseline; two untouched copies score 100 everywhere.
func completeSurvey(studentID, term string) *models.Survey {
	return &models.Survey{
		StudentID: studentID,
		Term:      term,
		Lifestyle: models.LifestylePrefs{
			BedTime:        "11:00 PM",
			WakeTime:       "7:00 AM",
			FoodPreference: "veg",
			Smokes:         false,
			Drinks:         false,
		},
		Study: models.StudyPrefs{
			StudyStyle:         "alone",
			NeedsQuiet:         true,
			PreferredStudyTime: "night",
			MusicWhileStudying: false,
		},
		Cleanliness: models.CleanlinessPrefs{
			CleaningFrequency:  "weekly",
			OrganizationLevel:  4,
			SharedItemsComfort: 3,
		},
		Social: models.SocialPrefs{
			VisitorFrequency: "rarely",
			PartyAttitude:    "occasional",
			PrivacyNeeds:     3,
		},
		Sleep: models.SleepPrefs{
			BedTime:          "11:00 PM",
			WakeTime:         "7:00 AM",
			SleepSensitivity: "light",
		},
		Personality: models.PersonalityPrefs{
			SocialEnergy:  3,
			ConflictStyle: "talk-it-out",
			Adaptability:  4,
		},
	}
}

// MockStorage is a testify mock of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveSurvey(survey *models.Survey) error {
	args := m.Called(survey)
	return args.Error(0)
}

func (m *MockStorage) GetSurvey(studentID, term string) (*models.Survey, error) {
	args := m.Called(studentID, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Survey), args.Error(1)
}

func (m *MockStorage) ListSurveys(term string) ([]*models.Survey, error) {
	args := m.Called(term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Survey), args.Error(1)
}

func (m *MockStorage) MarkSurveysScored(term string, studentIDs []string) error {
	args := m.Called(term, studentIDs)
	return args.Error(0)
}

func (m *MockStorage) SaveRoom(room *models.Room) error {
	args := m.Called(room)
	return args.Error(0)
}

func (m *MockStorage) GetRoom(id string) (*models.Room, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockStorage) ListRooms() ([]*models.Room, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Room), args.Error(1)
}

func (m *MockStorage) SaveScore(score *models.CompatibilityScore) error {
	args := m.Called(score)
	return args.Error(0)
}

func (m *MockStorage) GetScore(studentA, studentB, term string) (*models.CompatibilityScore, error) {
	args := m.Called(studentA, studentB, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CompatibilityScore), args.Error(1)
}

func (m *MockStorage) CreateAssignment(assignment *models.RoomAssignment) error {
	args := m.Called(assignment)
	return args.Error(0)
}

func (m *MockStorage) GetAssignment(id string) (*models.RoomAssignment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RoomAssignment), args.Error(1)
}

func (m *MockStorage) ListAssignments(term string) ([]*models.RoomAssignment, error) {
	args := m.Called(term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RoomAssignment), args.Error(1)
}

func (m *MockStorage) UpdateAssignmentStatus(id, from, to string) error {
	args := m.Called(id, from, to)
	return args.Error(0)
}

func (m *MockStorage) ApproveAssignment(id, approver string) (*models.RoomAssignment, error) {
	args := m.Called(id, approver)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RoomAssignment), args.Error(1)
}

func (m *MockStorage) CancelAssignment(id string) (*models.RoomAssignment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RoomAssignment), args.Error(1)
}

func (m *MockStorage) AcquireTermLock(term string) (string, error) {
	args := m.Called(term)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) ReleaseTermLock(term, token string) error {
	args := m.Called(term, token)
	return args.Error(0)
}

func (m *MockStorage) PublishAssignmentEvent(event models.AssignmentEvent) error {
	args := m.Called(event)
	return args.Error(0)
}
