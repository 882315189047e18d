package calculator

import (
	"fmt"
	"sync"
	"testing"

	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/model"
)

func rawRow(pairs ...string) model.RawRow {
	var r model.RawRow
	for i := 0; i+1 < len(pairs); i += 2 {
		r = append(r, model.Cell{Key: pairs[i], Value: pairs[i+1]})
	}
	return r
}

func TestPipelineRun_EndToEnd(t *testing.T) {
	t.Parallel()

	p, err := NewPipeline(PipelineConfig{})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	rows := []model.RawRow{
		rawRow(
			"Room", "A 100",
			"Channel", "booking",
			"Check-in", "2025-03-20",
			"Check-out", "2025-03-25",
			"Revenue", "500",
		),
		rawRow(
			"Room", "A 4022-4024",
			"Channel", "Direct",
			"Check-in", "2025-03-28",
			"Check-out", "2025-04-03",
			"Revenue", "600",
		),
		rawRow(
			"Room", "",
			"Channel", "Agoda",
			"Check-in", "2025-03-01",
			"Check-out", "2025-03-05",
			"Revenue", "100",
		),
	}

	result := p.Run(rows)

	// row 1 -> 1 record; row 2 -> 2 units x 2 months; row 3 skipped
	if result.Stats.SkippedRows != 1 {
		t.Fatalf("skipped = %d, want 1", result.Stats.SkippedRows)
	}
	if len(result.Records) != 5 {
		t.Fatalf("got %d records, want 5", len(result.Records))
	}
	if result.Stats.TotalRecords != 5 {
		t.Fatalf("stats total = %d, want 5", result.Stats.TotalRecords)
	}
	if result.Stats.UniqueRooms != 3 {
		t.Fatalf("unique rooms = %d, want 3", result.Stats.UniqueRooms)
	}
	if result.Stats.DateRange.Start != "2025-03-20" || result.Stats.DateRange.End != "2025-04-01" {
		t.Fatalf("date range = %+v", result.Stats.DateRange)
	}

	total := 0.0
	channels := make(map[string]bool)
	for _, rec := range result.Records {
		total += rec.Revenue
		channels[rec.Channel] = true
	}
	if !almostEqual(total, 1100) {
		t.Fatalf("total revenue = %v, want 1100", total)
	}
	if !channels["Booking.com"] || !channels["Social Media"] {
		t.Fatalf("channels = %v", channels)
	}

	if result.RoomFirstSeen["A 4022"] != "2025-03" || result.RoomFirstSeen["A 4024"] != "2025-03" {
		t.Fatalf("first seen = %v", result.RoomFirstSeen)
	}
	if len(result.MonthlyRoomCounts) != 2 {
		t.Fatalf("got %d month counts, want 2", len(result.MonthlyRoomCounts))
	}
	if result.MonthlyRoomCounts[1].MonthKey != "2025-04" || result.MonthlyRoomCounts[1].RoomCount != 3 {
		t.Fatalf("april count = %+v", result.MonthlyRoomCounts[1])
	}
}

func TestPipelineRun_EmptyInput(t *testing.T) {
	t.Parallel()

	p, err := NewPipeline(PipelineConfig{})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	result := p.Run(nil)
	if len(result.Records) != 0 || result.Stats.TotalRecords != 0 {
		t.Fatalf("result = %+v", result)
	}
	if result.Stats.SkippedRows != 0 || result.Stats.UniqueRooms != 0 {
		t.Fatalf("stats = %+v", result.Stats)
	}
}

func TestPipelineRun_ExclusionApplied(t *testing.T) {
	t.Parallel()

	p, err := NewPipeline(PipelineConfig{
		ExcludedPeriods: ExclusionPolicy{{From: "2024-01", To: "2024-12"}},
	})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	result := p.Run([]model.RawRow{
		rawRow(
			"Room", "A 100",
			"Check-in", "2024-06-10",
			"Check-out", "2024-06-15",
			"Revenue", "500",
		),
	})

	// the row itself is usable, its months are just all excluded
	if result.Stats.SkippedRows != 0 {
		t.Fatalf("skipped = %d, want 0", result.Stats.SkippedRows)
	}
	if len(result.Records) != 0 {
		t.Fatalf("got %d records, want 0", len(result.Records))
	}
}

func TestPipelineRun_ConcurrentDatasets(t *testing.T) {
	t.Parallel()

	p, err := NewPipeline(PipelineConfig{})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	// distinct header spellings per dataset so the runs keep feeding the
	// extractor's header memo while it is shared
	headerSets := [][2]string{
		{"Room", "Revenue"},
		{"room number", "Total Price"},
		{"Studio", "Amount"},
		{"ოთახი", "თანხა"},
	}

	var wg sync.WaitGroup
	results := make([]*model.RunResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			headers := headerSets[i%len(headerSets)]
			rows := make([]model.RawRow, 0, 20)
			for j := 0; j < 20; j++ {
				rows = append(rows, rawRow(
					headers[0], fmt.Sprintf("A %d", 100+j),
					"Check-in", "2025-03-20",
					"Check-out", "2025-03-25",
					headers[1], "500",
				))
			}
			results[i] = p.Run(rows)
		}(i)
	}
	wg.Wait()

	for i, result := range results {
		if result.Stats.SkippedRows != 0 {
			t.Fatalf("run %d: skipped = %d", i, result.Stats.SkippedRows)
		}
		if len(result.Records) != 20 {
			t.Fatalf("run %d: got %d records, want 20", i, len(result.Records))
		}
	}
}

func TestNewPipeline_RejectsBrokenPolicy(t *testing.T) {
	t.Parallel()

	_, err := NewPipeline(PipelineConfig{
		ExcludedPeriods: ExclusionPolicy{{From: "2025-13"}},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
}
