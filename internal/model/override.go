package model

import (
	"time"

	"github.com/google/uuid"
)

// Override is one entry of the append-only manual override log. Entries are
// never mutated; a newer entry for the same location and period supersedes
// older ones.
type Override struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Location      string    `json:"location" db:"location"`
	Year          int       `json:"year" db:"year"`
	Month         int       `json:"month" db:"month"`
	AnalystName   string    `json:"analyst_name" db:"analyst_name"`
	Reason        string    `json:"reason" db:"reason"`
	OverridePrice float64   `json:"override_price" db:"override_price"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Matches reports whether the override applies to the given location and
// period. Location comparison is exact and case-sensitive, same as the data
// join.
func (o Override) Matches(location string, year, month int) bool {
	return o.Location == location && o.Year == year && o.Month == month
}

// LatestOverride picks the winning override from a set of candidates for one
// location/period: newest CreatedAt wins, ties broken by insertion order
// (later slice position wins).
func LatestOverride(candidates []Override) (Override, bool) {
	var (
		best  Override
		found bool
	)
	for _, o := range candidates {
		if !found || !o.CreatedAt.Before(best.CreatedAt) {
			best = o
			found = true
		}
	}
	return best, found
}
