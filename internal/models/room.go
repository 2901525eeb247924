package models

import "github.com/lib/pq"

// Room represents a physical hostel room. Occupants is mutated only by the
// assignment lifecycle (approval adds students, cancellation removes them),
// always inside a transaction that re-checks Capacity.
type Room struct {
	ID        string         `gorm:"primaryKey" json:"id"` // e.g. "A-101"
	Building  string         `json:"building"`
	Capacity  int            `json:"capacity"`
	Occupants pq.StringArray `gorm:"type:text[]" json:"occupants"`
}

// FreeSlots returns how many more students the room can take.
func (r *Room) FreeSlots() int {
	return r.Capacity - len(r.Occupants)
}
