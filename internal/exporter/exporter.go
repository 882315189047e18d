package exporter

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/store"
)

// Exporter generates the analysis workbook from the stored dataset:
// the allocation records plus the monthly, room, channel and building
// breakdowns the finance team reviews.
type Exporter struct {
	store *store.Store
}

// NewExporter creates an exporter over the store.
func NewExporter(store *store.Store) *Exporter {
	return &Exporter{store: store}
}

// Export builds the workbook. Revenue cells are rounded to 2 decimals here,
// at the output boundary only.
func (e *Exporter) Export() (*excelize.File, error) {
	f := excelize.NewFile()

	if err := e.fillBookings(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.fillStatistics(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.fillMonths(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.fillEntitySheet(f, "Rooms", e.store.ListRoomSummaries); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.fillEntitySheet(f, "Channels", e.store.ListChannelSummaries); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.fillEntitySheet(f, "Buildings", e.store.ListBuildingSummaries); err != nil {
		_ = f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func (e *Exporter) fillBookings(f *excelize.File) error {
	const sheet = "Bookings"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headers := []interface{}{"Room", "Building", "Channel", "Period Start", "Period End", "Nights", "Revenue", "Month"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	records, err := e.store.ListAllocations(store.AllocationQueryOptions{})
	if err != nil {
		return err
	}

	for i, rec := range records {
		row := []interface{}{
			rec.Room, rec.Building, rec.Channel,
			rec.PeriodStart, rec.PeriodEnd,
			rec.Nights, round2(rec.Revenue), rec.MonthKey,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write record row: %w", err)
		}
	}

	return nil
}

func (e *Exporter) fillStatistics(f *excelize.File) error {
	const sheet = "Statistics"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	stats, err := e.store.DatasetStats()
	if err != nil {
		return err
	}

	var totalRevenue float64
	totalNights := 0
	months, err := e.store.ListMonthlySummaries()
	if err != nil {
		return err
	}
	for _, m := range months {
		totalRevenue += m.Revenue
		totalNights += m.Nights
	}

	rows := [][]interface{}{
		{"Key Figures", ""},
		{"Total revenue", round2(totalRevenue)},
		{"Total nights", totalNights},
		{"Allocation records", stats.TotalRecords},
		{"Unique rooms", stats.UniqueRooms},
		{"Skipped rows", stats.SkippedRows},
		{"First month", stats.DateRange.Start},
		{"Last month", stats.DateRange.End},
	}
	for i := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write statistics row: %w", err)
		}
	}

	return nil
}

func (e *Exporter) fillMonths(f *excelize.File) error {
	const sheet = "Months"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []interface{}{"Month", "Revenue", "Nights", "Records", "Active Rooms", "Occupancy %", "ADR", "RevPAR"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	metrics, err := e.store.ListMonthlyMetrics()
	if err != nil {
		return err
	}
	for i, m := range metrics {
		row := []interface{}{
			m.MonthKey, round2(m.Revenue), m.Nights, m.Records, m.RoomCount,
			round2(m.OccupancyRate), round2(m.ADR), round2(m.RevPAR),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write month row: %w", err)
		}
	}

	return nil
}

func (e *Exporter) fillEntitySheet(f *excelize.File, sheet string, list func() ([]store.EntitySummary, error)) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []interface{}{sheet[:len(sheet)-1], "Revenue", "Nights", "Records", "ADR"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	entries, err := list()
	if err != nil {
		return err
	}
	for i, entry := range entries {
		adr := 0.0
		if entry.Nights > 0 {
			adr = entry.Revenue / float64(entry.Nights)
		}
		row := []interface{}{
			entry.Label, round2(entry.Revenue), entry.Nights, entry.Records, round2(adr),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row: %w", sheet, err)
		}
	}

	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
