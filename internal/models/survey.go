package models

import (
	"time"

	"github.com/lib/pq" // required for pq.StringArray
)

// LifestylePrefs covers day-to-day habits that roommates share whether they
// want to or not.
type LifestylePrefs struct {
	BedTime        string // 12-hour clock string, e.g. "11:00 PM"
	WakeTime       string
	FoodPreference string // "veg", "non-veg", "vegan", "no-preference"
	Smokes         bool
	Drinks         bool
}

// StudyPrefs describes how and when a student prefers to study.
type StudyPrefs struct {
	StudyStyle         string // "alone", "group", "mixed"
	NeedsQuiet         bool
	PreferredStudyTime string // "morning", "afternoon", "evening", "night"
	MusicWhileStudying bool
}

// CleanlinessPrefs uses 1-5 scales where 5 is the tidier/more comfortable end.
type CleanlinessPrefs struct {
	CleaningFrequency  string // "daily", "weekly", "biweekly", "rarely"
	OrganizationLevel  int    // 1 (chaotic) .. 5 (everything labeled)
	SharedItemsComfort int    // 1 (never) .. 5 (what's mine is yours)
}

// SocialPrefs describes visitors, parties and the need for alone time.
type SocialPrefs struct {
	VisitorFrequency string // "never", "rarely", "sometimes", "often"
	PartyAttitude    string // "avoid", "occasional", "love"
	PrivacyNeeds     int    // 1 (open door) .. 5 (needs lots of space)
}

// SleepPrefs duplicates bed/wake times from LifestylePrefs on purpose: the
// lifestyle answers are aspirational ("when do you try to sleep"), the sleep
// schedule answers are observed ("when do you actually sleep").
type SleepPrefs struct {
	BedTime          string // 12-hour clock string
	WakeTime         string
	SleepSensitivity string // "light", "moderate", "heavy"
}

// PersonalityPrefs holds the self-reported personality scales.
type PersonalityPrefs struct {
	SocialEnergy  int    // 1 (introvert) .. 5 (extrovert)
	ConflictStyle string // "talk-it-out", "cool-off-first", "avoid"
	Adaptability  int    // 1 (rigid) .. 5 (easygoing)
}

// Survey is one student's roommate questionnaire for one academic term.
// At most one survey exists per (student, term).
type Survey struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	StudentID string `gorm:"index:idx_student_term,unique" json:"student_id"`
	Term      string `gorm:"index:idx_student_term,unique" json:"term"`

	Lifestyle   LifestylePrefs   `gorm:"embedded;embeddedPrefix:lifestyle_" json:"lifestyle"`
	Study       StudyPrefs       `gorm:"embedded;embeddedPrefix:study_" json:"study"`
	Cleanliness CleanlinessPrefs `gorm:"embedded;embeddedPrefix:cleanliness_" json:"cleanliness"`
	Social      SocialPrefs      `gorm:"embedded;embeddedPrefix:social_" json:"social"`
	Sleep       SleepPrefs       `gorm:"embedded;embeddedPrefix:sleep_" json:"sleep"`
	Personality PersonalityPrefs `gorm:"embedded;embeddedPrefix:personality_" json:"personality"`

	DealBreakers pq.StringArray `gorm:"type:text[]" json:"deal_breakers"`

	// ScoredAt is set the first time a term-wide compatibility run consumes
	// this survey. A later update must invalidate cached scores.
	ScoredAt  *time.Time `json:"scored_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func scaleOK(v int) bool { return v >= 1 && v <= 5 }

// IsComplete reports whether every required field is populated. Incomplete
// surveys are never scored.
func (s *Survey) IsComplete() bool {
	if s.StudentID == "" || s.Term == "" {
		return false
	}
	if s.Lifestyle.BedTime == "" || s.Lifestyle.WakeTime == "" || s.Lifestyle.FoodPreference == "" {
		return false
	}
	if s.Study.StudyStyle == "" || s.Study.PreferredStudyTime == "" {
		return false
	}
	if s.Cleanliness.CleaningFrequency == "" ||
		!scaleOK(s.Cleanliness.OrganizationLevel) ||
		!scaleOK(s.Cleanliness.SharedItemsComfort) {
		return false
	}
	if s.Social.VisitorFrequency == "" || s.Social.PartyAttitude == "" || !scaleOK(s.Social.PrivacyNeeds) {
		return false
	}
	if s.Sleep.BedTime == "" || s.Sleep.WakeTime == "" || s.Sleep.SleepSensitivity == "" {
		return false
	}
	if !scaleOK(s.Personality.SocialEnergy) || s.Personality.ConflictStyle == "" || !scaleOK(s.Personality.Adaptability) {
		return false
	}
	return true
}
