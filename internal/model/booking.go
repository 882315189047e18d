package model

import "time"

// Cell is one header/value pair from an uploaded reservation export.
type Cell struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// RawRow is one spreadsheet row with its original column headers preserved,
// in sheet order. Column names vary by exporter and language.
type RawRow []Cell

// ExtractedStay is a normalized reservation row. The room label may still
// denote a combined listing; CheckOut > CheckIn and Revenue > 0 always hold.
type ExtractedStay struct {
	RoomLabel    string
	ChannelLabel string
	CheckIn      time.Time
	CheckOut     time.Time
	Revenue      float64
}

// UnitStay is a stay attributed to exactly one physical unit. When a combined
// listing was split, Revenue carries the even share.
type UnitStay struct {
	Room     string
	Channel  string
	CheckIn  time.Time
	CheckOut time.Time
	Revenue  float64
}

// AllocationRecord is the share of one stay falling into a single calendar
// month for a single physical room.
type AllocationRecord struct {
	Room        string  `json:"room"`
	Building    string  `json:"building"`
	Channel     string  `json:"channel"`
	PeriodStart string  `json:"periodStart"` // YYYY-MM-DD
	PeriodEnd   string  `json:"periodEnd"`   // YYYY-MM-DD
	Nights      int     `json:"nights"`
	Revenue     float64 `json:"revenue"`
	MonthKey    string  `json:"monthKey"` // YYYY-MM, month of PeriodStart
}

// MonthlyRoomCount is the number of rooms active in a month: every room first
// seen on or before that month. Counts never decrease across months.
type MonthlyRoomCount struct {
	MonthKey  string   `json:"monthKey"`
	RoomCount int      `json:"roomCount"`
	Rooms     []string `json:"rooms"`
}

// DateRange spans the PeriodStart dates of a record set.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// RunStats summarizes one pipeline run.
type RunStats struct {
	TotalRecords int       `json:"totalRecords"`
	UniqueRooms  int       `json:"uniqueRooms"`
	SkippedRows  int       `json:"skippedRows"`
	DateRange    DateRange `json:"dateRange"`
}

// RunResult bundles everything one pipeline run produces.
type RunResult struct {
	Records           []AllocationRecord `json:"records"`
	MonthlyRoomCounts []MonthlyRoomCount `json:"monthlyRoomCounts"`
	RoomFirstSeen     map[string]string  `json:"roomFirstSeen"`
	Stats             RunStats           `json:"stats"`
}
