package config

// Factor weights. Must sum to 1.0.
const (
	LifestyleWeight   = 0.20
	StudyWeight       = 0.20
	CleanlinessWeight = 0.20
	SocialWeight      = 0.15
	SleepWeight       = 0.15
	PersonalityWeight = 0.10
)

// Lifestyle factor point allocation (sums to 100).
const (
	LifestyleBedTimePool  = 20
	LifestyleWakeTimePool = 20
	LifestyleTimeMinPerPt = 12 // lose 1 point per 12 minutes of difference
	FoodMatchFull         = 20
	FoodMatchPartial      = 8
	SmokingMatchFull      = 20
	SmokingMatchPartial   = 8
	DrinkingMatchFull     = 20
	DrinkingMatchPartial  = 8
)

// Study factor: four equal match terms (sums to 100).
const (
	StudyMatchFull    = 25
	StudyMatchPartial = 10
)

// Cleanliness factor (sums to 100).
const (
	CleaningFreqFull    = 40
	CleaningFreqPartial = 15
	OrganizationPool    = 30
	OrganizationPenalty = 7 // per unit of 1-5 scale difference
	SharedItemsPool     = 30
	SharedItemsPenalty  = 7
)

// Social factor (sums to 100).
const (
	VisitorMatchFull    = 35
	VisitorMatchPartial = 14
	PartyMatchFull      = 35
	PartyMatchPartial   = 14
	PrivacyPool         = 30
	PrivacyPenalty      = 7
)

// Sleep factor (sums to 100).
const (
	SleepBedTimePool        = 35
	SleepBedTimeMinPerPt    = 7
	SleepWakeTimePool       = 35
	SleepWakeTimeMinPerPt   = 7
	SensitivityMatchFull    = 30
	SensitivityMatchPartial = 12
)

// Personality factor (sums to 100).
const (
	SocialEnergyPool     = 40
	SocialEnergyPenalty  = 10 // per unit of 1-5 scale difference
	ConflictMatchFull    = 30
	ConflictMatchPartial = 12
	AdaptabilityPool     = 30
	AdaptabilityPenalty  = 7
)

// Reason / warning thresholds.
const (
	StrengthThreshold     = 80  // sub-score at or above this adds a reason string
	BedtimeWarningMinutes = 180 // bedtime gap beyond this adds a warning
)

// Planner / ranker defaults.
const (
	DefaultTopK        = 5
	PlannerWorkerCount = 8
	MinRoomCapacity    = 2
)

// StrengthReasons maps a factor name to the human-readable line appended when
// its sub-score clears StrengthThreshold.
var StrengthReasons = map[string]string{
	"lifestyle":   "Very similar daily routines",
	"study":       "Study habits line up well",
	"cleanliness": "Matching standards of tidiness",
	"social":      "Compatible social preferences",
	"sleep":       "Sleep schedules are a great fit",
	"personality": "Personalities complement each other",
}
