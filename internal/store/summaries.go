package store

import "fmt"

// EntitySummary aggregates records by room, channel or building.
type EntitySummary struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Nights  int     `json:"nights"`
	Records int     `json:"records"`
}

// ListRoomSummaries returns per-room totals, highest revenue first.
func (s *Store) ListRoomSummaries() ([]EntitySummary, error) {
	return s.listEntitySummaries("room")
}

// ListChannelSummaries returns per-channel totals, highest revenue first.
func (s *Store) ListChannelSummaries() ([]EntitySummary, error) {
	return s.listEntitySummaries("channel")
}

// ListBuildingSummaries returns per-building totals, highest revenue first.
func (s *Store) ListBuildingSummaries() ([]EntitySummary, error) {
	return s.listEntitySummaries("building")
}

// column is one of the fixed names above, never user input.
func (s *Store) listEntitySummaries(column string) ([]EntitySummary, error) {
	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT %s, SUM(revenue), SUM(nights), COUNT(1)
		FROM allocations
		GROUP BY %s
		ORDER BY SUM(revenue) DESC
	`, column, column))
	if err != nil {
		return nil, fmt.Errorf("query %s summaries failed: %w", column, err)
	}
	defer rows.Close()

	var out []EntitySummary
	for rows.Next() {
		var e EntitySummary
		if err := rows.Scan(&e.Label, &e.Revenue, &e.Nights, &e.Records); err != nil {
			return nil, fmt.Errorf("scan %s summary failed: %w", column, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
