package store

import (
	"encoding/json"
	"fmt"

	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/model"
)

// MonthlySummary aggregates the allocation records of one calendar month.
// RoomCount is the active-room denominator from the aggregator, not the
// number of distinct rooms booked that month.
type MonthlySummary struct {
	MonthKey  string  `json:"monthKey"`
	Revenue   float64 `json:"revenue"`
	Nights    int     `json:"nights"`
	Records   int     `json:"records"`
	RoomCount int     `json:"roomCount"`
}

// ListMonthlySummaries returns per-month revenue/nights/record totals joined
// with the active-room counts, ordered by month ascending.
func (s *Store) ListMonthlySummaries() ([]MonthlySummary, error) {
	rows, err := s.db.Query(`
		SELECT a.month_key, SUM(a.revenue), SUM(a.nights), COUNT(1),
		       COALESCE(mrc.room_count, 0)
		FROM allocations a
		LEFT JOIN monthly_room_counts mrc ON mrc.month_key = a.month_key
		GROUP BY a.month_key
		ORDER BY a.month_key
	`)
	if err != nil {
		return nil, fmt.Errorf("query monthly summaries failed: %w", err)
	}
	defer rows.Close()

	var out []MonthlySummary
	for rows.Next() {
		var m MonthlySummary
		if err := rows.Scan(&m.MonthKey, &m.Revenue, &m.Nights, &m.Records, &m.RoomCount); err != nil {
			return nil, fmt.Errorf("scan monthly summary failed: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListMonthlyRoomCounts returns the stored active-room series, month ascending.
func (s *Store) ListMonthlyRoomCounts() ([]model.MonthlyRoomCount, error) {
	rows, err := s.db.Query(`
		SELECT month_key, room_count, rooms FROM monthly_room_counts ORDER BY month_key
	`)
	if err != nil {
		return nil, fmt.Errorf("query room counts failed: %w", err)
	}
	defer rows.Close()

	var out []model.MonthlyRoomCount
	for rows.Next() {
		var mc model.MonthlyRoomCount
		var rooms string
		if err := rows.Scan(&mc.MonthKey, &mc.RoomCount, &rooms); err != nil {
			return nil, fmt.Errorf("scan room count failed: %w", err)
		}
		if err := json.Unmarshal([]byte(rooms), &mc.Rooms); err != nil {
			return nil, fmt.Errorf("decode rooms failed: %w", err)
		}
		out = append(out, mc)
	}
	return out, rows.Err()
}

// GetRoomFirstSeen returns the room → earliest month map.
func (s *Store) GetRoomFirstSeen() (map[string]string, error) {
	rows, err := s.db.Query("SELECT room, first_month FROM room_first_seen")
	if err != nil {
		return nil, fmt.Errorf("query first seen failed: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var room, first string
		if err := rows.Scan(&room, &first); err != nil {
			return nil, fmt.Errorf("scan first seen failed: %w", err)
		}
		out[room] = first
	}
	return out, rows.Err()
}
