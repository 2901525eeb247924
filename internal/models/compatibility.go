package models

import (
	"time"

	"github.com/lib/pq"
)

// CompatibilityScore is the scored result for one unordered pair of students
// in one term. The pair is stored canonically (StudentAID < StudentBID) so a
// lookup from either side hits the same row.
type CompatibilityScore struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	StudentAID string `gorm:"index:idx_pair_term,unique" json:"student_a_id"`
	StudentBID string `gorm:"index:idx_pair_term,unique" json:"student_b_id"`
	Term       string `gorm:"index:idx_pair_term,unique" json:"term"`

	// Overall and the six factor sub-scores all lie in [0,100].
	Overall     int `json:"overall"`
	Lifestyle   int `json:"lifestyle"`
	Study       int `json:"study"`
	Cleanliness int `json:"cleanliness"`
	Social      int `json:"social"`
	Sleep       int `json:"sleep"`
	Personality int `json:"personality"`

	Reasons  pq.StringArray `gorm:"type:text[]" json:"reasons"`
	Warnings pq.StringArray `gorm:"type:text[]" json:"warnings"`

	ComputedAt time.Time `json:"computed_at"`
}

// CanonicalPair orders two student IDs so that every unordered pair has a
// single storage and cache key.
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// Involves reports whether the given student is one side of the pair.
func (c *CompatibilityScore) Involves(studentID string) bool {
	return c.StudentAID == studentID || c.StudentBID == studentID
}

// PartnerOf returns the other side of the pair, or "" if the student is not
// part of it.
func (c *CompatibilityScore) PartnerOf(studentID string) string {
	switch studentID {
	case c.StudentAID:
		return c.StudentBID
	case c.StudentBID:
		return c.StudentAID
	}
	return ""
}
