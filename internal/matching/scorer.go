package matching

import (
	"time"

	"hosteldada/backend/internal/config"
	"hosteldada/backend/internal/models"
)

// Score computes the compatibility of two students from their surveys.
// It is a pure function: no side effects, deterministic, symmetric in its
// arguments. Both surveys must be complete.
func Score(a, b *models.Survey) (*models.CompatibilityScore, error) {
	if !a.IsComplete() {
		return nil, &IncompleteSurveyError{StudentID: a.StudentID}
	}
	if !b.IsComplete() {
		return nil, &IncompleteSurveyError{StudentID: b.StudentID}
	}

	lifestyle, err := scoreLifestyle(&a.Lifestyle, &b.Lifestyle)
	if err != nil {
		return nil, err
	}
	study := scoreStudy(&a.Study, &b.Study)
	cleanliness := scoreCleanliness(&a.Cleanliness, &b.Cleanliness)
	social := scoreSocial(&a.Social, &b.Social)
	sleep, err := scoreSleep(&a.Sleep, &b.Sleep)
	if err != nil {
		return nil, err
	}
	personality := scorePersonality(&a.Personality, &b.Personality)

	overall := int(config.LifestyleWeight*float64(lifestyle) +
		config.StudyWeight*float64(study) +
		config.CleanlinessWeight*float64(cleanliness) +
		config.SocialWeight*float64(social) +
		config.SleepWeight*float64(sleep) +
		config.PersonalityWeight*float64(personality))

	idA, idB := models.CanonicalPair(a.StudentID, b.StudentID)
	score := &models.CompatibilityScore{
		StudentAID:  idA,
		StudentBID:  idB,
		Term:        a.Term,
		Overall:     overall,
		Lifestyle:   lifestyle,
		Study:       study,
		Cleanliness: cleanliness,
		Social:      social,
		Sleep:       sleep,
		Personality: personality,
		ComputedAt:  time.Now(),
	}

	for _, factor := range []struct {
		name  string
		value int
	}{
		{"lifestyle", lifestyle},
		{"study", study},
		{"cleanliness", cleanliness},
		{"social", social},
		{"sleep", sleep},
		{"personality", personality},
	} {
		if factor.value >= config.StrengthThreshold {
			score.Reasons = append(score.Reasons, config.StrengthReasons[factor.name])
		}
	}

	score.Warnings, err = collectWarnings(a, b)
	if err != nil {
		return nil, err
	}
	return score, nil
}

// collectWarnings flags hard conflicts independently of the numeric score.
func collectWarnings(a, b *models.Survey) ([]string, error) {
	var warnings []string
	if a.Lifestyle.Smokes != b.Lifestyle.Smokes {
		warnings = append(warnings, "Different smoking habits")
	}
	if a.Lifestyle.FoodPreference != b.Lifestyle.FoodPreference {
		warnings = append(warnings, "Different food preferences")
	}
	bedGap, err := minutesApart(a.Sleep.BedTime, b.Sleep.BedTime)
	if err != nil {
		return nil, err
	}
	if bedGap > config.BedtimeWarningMinutes {
		warnings = append(warnings, "Bedtimes differ by more than 3 hours")
	}
	return warnings, nil
}

// proximity awards pool points minus a penalty per unit of difference,
// floored at zero.
func proximity(pool, penaltyPerUnit, diff int) int {
	v := pool - penaltyPerUnit*diff
	if v < 0 {
		return 0
	}
	return v
}

// timeProximity is proximity over clock times: one point lost per
// minutesPerPoint minutes of difference.
func timeProximity(pool, minutesPerPoint int, timeA, timeB string) (int, error) {
	diff, err := minutesApart(timeA, timeB)
	if err != nil {
		return 0, err
	}
	return proximity(pool, 1, diff/minutesPerPoint), nil
}

// match awards the full value on exact equality and a reduced, nonzero value
// otherwise, so one mismatch never collapses a factor to zero.
func match(full, partial int, equal bool) int {
	if equal {
		return full
	}
	return partial
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

func scoreLifestyle(a, b *models.LifestylePrefs) (int, error) {
	bed, err := timeProximity(config.LifestyleBedTimePool, config.LifestyleTimeMinPerPt, a.BedTime, b.BedTime)
	if err != nil {
		return 0, err
	}
	wake, err := timeProximity(config.LifestyleWakeTimePool, config.LifestyleTimeMinPerPt, a.WakeTime, b.WakeTime)
	if err != nil {
		return 0, err
	}
	total := bed + wake
	total += match(config.FoodMatchFull, config.FoodMatchPartial, a.FoodPreference == b.FoodPreference)
	total += match(config.SmokingMatchFull, config.SmokingMatchPartial, a.Smokes == b.Smokes)
	total += match(config.DrinkingMatchFull, config.DrinkingMatchPartial, a.Drinks == b.Drinks)
	return total, nil
}

func scoreStudy(a, b *models.StudyPrefs) int {
	total := match(config.StudyMatchFull, config.StudyMatchPartial, a.StudyStyle == b.StudyStyle)
	total += match(config.StudyMatchFull, config.StudyMatchPartial, a.NeedsQuiet == b.NeedsQuiet)
	total += match(config.StudyMatchFull, config.StudyMatchPartial, a.PreferredStudyTime == b.PreferredStudyTime)
	total += match(config.StudyMatchFull, config.StudyMatchPartial, a.MusicWhileStudying == b.MusicWhileStudying)
	return total
}

func scoreCleanliness(a, b *models.CleanlinessPrefs) int {
	total := match(config.CleaningFreqFull, config.CleaningFreqPartial, a.CleaningFrequency == b.CleaningFrequency)
	total += proximity(config.OrganizationPool, config.OrganizationPenalty, absDiff(a.OrganizationLevel, b.OrganizationLevel))
	total += proximity(config.SharedItemsPool, config.SharedItemsPenalty, absDiff(a.SharedItemsComfort, b.SharedItemsComfort))
	return total
}

func scoreSocial(a, b *models.SocialPrefs) int {
	total := match(config.VisitorMatchFull, config.VisitorMatchPartial, a.VisitorFrequency == b.VisitorFrequency)
	total += match(config.PartyMatchFull, config.PartyMatchPartial, a.PartyAttitude == b.PartyAttitude)
	total += proximity(config.PrivacyPool, config.PrivacyPenalty, absDiff(a.PrivacyNeeds, b.PrivacyNeeds))
	return total
}

func scoreSleep(a, b *models.SleepPrefs) (int, error) {
	bed, err := timeProximity(config.SleepBedTimePool, config.SleepBedTimeMinPerPt, a.BedTime, b.BedTime)
	if err != nil {
		return 0, err
	}
	wake, err := timeProximity(config.SleepWakeTimePool, config.SleepWakeTimeMinPerPt, a.WakeTime, b.WakeTime)
	if err != nil {
		return 0, err
	}
	total := bed + wake
	total += match(config.SensitivityMatchFull, config.SensitivityMatchPartial, a.SleepSensitivity == b.SleepSensitivity)
	return total, nil
}

func scorePersonality(a, b *models.PersonalityPrefs) int {
	total := proximity(config.SocialEnergyPool, config.SocialEnergyPenalty, absDiff(a.SocialEnergy, b.SocialEnergy))
	total += match(config.ConflictMatchFull, config.ConflictMatchPartial, a.ConflictStyle == b.ConflictStyle)
	total += proximity(config.AdaptabilityPool, config.AdaptabilityPenalty, absDiff(a.Adaptability, b.Adaptability))
	return total
}
