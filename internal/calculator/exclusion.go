package calculator

import (
	"fmt"
	"time"
)

// MonthRange is an inclusive range of calendar months in "YYYY-MM" form.
// An empty To leaves the range open-ended (From and everything after).
type MonthRange struct {
	From string `json:"from" toml:"from"`
	To   string `json:"to,omitempty" toml:"to"`
}

// ExclusionPolicy lists calendar periods whose nights and revenue are dropped
// from the allocation output, e.g. pre-migration history or months that are
// not yet closed.
type ExclusionPolicy []MonthRange

// Validate rejects an internally inconsistent policy before any processing
// starts: unparseable month keys or a range ending before it starts.
func (p ExclusionPolicy) Validate() error {
	for i, r := range p {
		if _, err := time.Parse("2006-01", r.From); err != nil {
			return fmt.Errorf("excluded period %d: invalid from month %q", i, r.From)
		}
		if r.To == "" {
			continue
		}
		if _, err := time.Parse("2006-01", r.To); err != nil {
			return fmt.Errorf("excluded period %d: invalid to month %q", i, r.To)
		}
		if r.To < r.From {
			return fmt.Errorf("excluded period %d: to %q before from %q", i, r.To, r.From)
		}
	}
	return nil
}

// Excludes reports whether the given calendar month falls in any excluded
// period. "YYYY-MM" keys compare chronologically as strings.
func (p ExclusionPolicy) Excludes(year int, month time.Month) bool {
	key := fmt.Sprintf("%04d-%02d", year, int(month))
	for _, r := range p {
		if key < r.From {
			continue
		}
		if r.To == "" || key <= r.To {
			return true
		}
	}
	return false
}

// MonthKey formats a date's calendar month as "YYYY-MM".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
