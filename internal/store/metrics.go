package store

import "time"

// MonthlyMetrics extends a monthly summary with the derived hospitality
// figures the dashboard charts: occupancy, ADR and RevPAR. The occupancy
// denominator is active rooms × days in month.
type MonthlyMetrics struct {
	MonthlySummary
	OccupancyRate float64 `json:"occupancyRate"` // percent
	ADR           float64 `json:"adr"`
	RevPAR        float64 `json:"revPAR"`
}

// ListMonthlyMetrics returns the monthly series with derived metrics.
func (s *Store) ListMonthlyMetrics() ([]MonthlyMetrics, error) {
	summaries, err := s.ListMonthlySummaries()
	if err != nil {
		return nil, err
	}

	out := make([]MonthlyMetrics, 0, len(summaries))
	for _, sum := range summaries {
		m := MonthlyMetrics{MonthlySummary: sum}

		if sum.Nights > 0 {
			m.ADR = sum.Revenue / float64(sum.Nights)
		}
		if sum.RoomCount > 0 {
			available := float64(sum.RoomCount * daysInMonth(sum.MonthKey))
			if available > 0 {
				m.OccupancyRate = float64(sum.Nights) / available * 100
				m.RevPAR = sum.Revenue / available
			}
		}

		out = append(out, m)
	}
	return out, nil
}

// daysInMonth returns the day count of a "YYYY-MM" month, 0 on a bad key.
func daysInMonth(monthKey string) int {
	t, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return 0
	}
	return t.AddDate(0, 1, -1).Day()
}
