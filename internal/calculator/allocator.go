package calculator

import (
	"math"
	"strings"
	"time"

	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/model"
)

const dateLayout = "2006-01-02"

// Allocator splits one per-unit stay into month-bucketed allocation records,
// applying the exclusion policy as it walks the stay.
type Allocator struct {
	policy   ExclusionPolicy
	prefixes []string
}

// DefaultBuildingPrefixes returns the building blocks of the complex, longest
// prefix first so "D1 201" never resolves to a bare "D".
func DefaultBuildingPrefixes() []string {
	return []string{"D1", "D2", "A", "C"}
}

// NewAllocator validates the policy up front; a broken policy must fail the
// run before any row is processed.
func NewAllocator(policy ExclusionPolicy, buildingPrefixes []string) (*Allocator, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if len(buildingPrefixes) == 0 {
		buildingPrefixes = DefaultBuildingPrefixes()
	}
	return &Allocator{policy: policy, prefixes: buildingPrefixes}, nil
}

// Allocate walks the stay month by month and emits one record per calendar
// month the stay overlaps, skipping excluded months entirely.
//
// Revenue proportions are computed against the stay's ORIGINAL total nights,
// never the nights that survive exclusion: when part of a stay falls in an
// excluded period, that share of the revenue is dropped, not redistributed
// over the remaining months.
func (a *Allocator) Allocate(stay model.UnitStay) []model.AllocationRecord {
	totalNights := ceilDays(stay.CheckOut.Sub(stay.CheckIn))
	if totalNights <= 0 {
		return nil
	}

	building := a.buildingFor(stay.Room)

	var records []model.AllocationRecord
	cursor := stay.CheckIn
	for cursor.Before(stay.CheckOut) {
		monthEnd := firstOfNextMonth(cursor)

		if a.policy.Excludes(cursor.Year(), cursor.Month()) {
			cursor = monthEnd
			continue
		}

		periodEnd := stay.CheckOut
		if monthEnd.Before(periodEnd) {
			periodEnd = monthEnd
		}

		nights := ceilDays(periodEnd.Sub(cursor))
		if nights > 0 {
			proportion := float64(nights) / float64(totalNights)
			records = append(records, model.AllocationRecord{
				Room:        stay.Room,
				Building:    building,
				Channel:     stay.Channel,
				PeriodStart: cursor.Format(dateLayout),
				PeriodEnd:   periodEnd.Format(dateLayout),
				Nights:      nights,
				Revenue:     stay.Revenue * proportion,
				MonthKey:    MonthKey(cursor),
			})
		}

		cursor = monthEnd
	}

	return records
}

// buildingFor derives the building block from the room label prefix.
func (a *Allocator) buildingFor(room string) string {
	label := strings.ToUpper(strings.TrimSpace(room))
	for _, prefix := range a.prefixes {
		if strings.HasPrefix(label, prefix) {
			return prefix
		}
	}
	return "Unknown"
}

func firstOfNextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
}

func ceilDays(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}
