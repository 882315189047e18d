package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/model"
)

// SaveRunResult replaces the stored dataset with the output of one pipeline
// run, atomically: allocations, room counts and first-seen months all come
// from the same run or not at all.
func (s *Store) SaveRunResult(importID string, result *model.RunResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"allocations", "monthly_room_counts", "room_first_seen"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	insertRec, err := tx.Prepare(`
		INSERT INTO allocations (import_id, room, building, channel, period_start, period_end, nights, revenue, month_key)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare allocation insert: %w", err)
	}
	defer insertRec.Close()

	for _, rec := range result.Records {
		if _, err := insertRec.Exec(importID, rec.Room, rec.Building, rec.Channel,
			rec.PeriodStart, rec.PeriodEnd, rec.Nights, rec.Revenue, rec.MonthKey); err != nil {
			return fmt.Errorf("failed to insert allocation: %w", err)
		}
	}

	for _, mc := range result.MonthlyRoomCounts {
		rooms, err := json.Marshal(mc.Rooms)
		if err != nil {
			return fmt.Errorf("failed to encode rooms: %w", err)
		}
		if _, err := tx.Exec(`
			INSERT INTO monthly_room_counts (month_key, room_count, rooms) VALUES (?, ?, ?)
		`, mc.MonthKey, mc.RoomCount, string(rooms)); err != nil {
			return fmt.Errorf("failed to insert room count: %w", err)
		}
	}

	for room, first := range result.RoomFirstSeen {
		if _, err := tx.Exec(`
			INSERT INTO room_first_seen (room, first_month) VALUES (?, ?)
		`, room, first); err != nil {
			return fmt.Errorf("failed to insert first seen: %w", err)
		}
	}

	return tx.Commit()
}

// AllocationQueryOptions filters allocation record queries. Zero values mean
// no filter; Limit <= 0 means no pagination.
type AllocationQueryOptions struct {
	MonthKey string
	Room     string
	Channel  string
	Building string
	Limit    int
	Offset   int
}

func (o AllocationQueryOptions) where() (string, []any) {
	var conds []string
	var args []any
	if o.MonthKey != "" {
		conds = append(conds, "month_key = ?")
		args = append(args, o.MonthKey)
	}
	if o.Room != "" {
		conds = append(conds, "room = ?")
		args = append(args, o.Room)
	}
	if o.Channel != "" {
		conds = append(conds, "channel = ?")
		args = append(args, o.Channel)
	}
	if o.Building != "" {
		conds = append(conds, "building = ?")
		args = append(args, o.Building)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListAllocations returns allocation records ordered by period start.
func (s *Store) ListAllocations(opts AllocationQueryOptions) ([]model.AllocationRecord, error) {
	where, args := opts.where()
	query := `
		SELECT room, building, channel, period_start, period_end, nights, revenue, month_key
		FROM allocations` + where + `
		ORDER BY period_start, room`
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", opts.Limit, opts.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query allocations failed: %w", err)
	}
	defer rows.Close()

	var out []model.AllocationRecord
	for rows.Next() {
		var rec model.AllocationRecord
		if err := rows.Scan(&rec.Room, &rec.Building, &rec.Channel,
			&rec.PeriodStart, &rec.PeriodEnd, &rec.Nights, &rec.Revenue, &rec.MonthKey); err != nil {
			return nil, fmt.Errorf("scan allocation failed: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CountAllocations returns the number of records matching the filter.
func (s *Store) CountAllocations(opts AllocationQueryOptions) (int, error) {
	where, args := opts.where()
	var count int
	err := s.db.QueryRow("SELECT COUNT(1) FROM allocations"+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count allocations failed: %w", err)
	}
	return count, nil
}

// DatasetStats summarizes the stored dataset for the status endpoint.
func (s *Store) DatasetStats() (model.RunStats, error) {
	var stats model.RunStats

	err := s.db.QueryRow("SELECT COUNT(1) FROM allocations").Scan(&stats.TotalRecords)
	if err != nil {
		return stats, fmt.Errorf("count records failed: %w", err)
	}

	err = s.db.QueryRow("SELECT COUNT(1) FROM room_first_seen").Scan(&stats.UniqueRooms)
	if err != nil {
		return stats, fmt.Errorf("count rooms failed: %w", err)
	}

	var start, end sql.NullString
	err = s.db.QueryRow("SELECT MIN(period_start), MAX(period_start) FROM allocations").Scan(&start, &end)
	if err != nil {
		return stats, fmt.Errorf("date range failed: %w", err)
	}
	stats.DateRange.Start = start.String
	stats.DateRange.End = end.String

	if skipped, err := s.GetConfigInt("last_skipped_rows"); err == nil {
		stats.SkippedRows = skipped
	}

	return stats, nil
}
