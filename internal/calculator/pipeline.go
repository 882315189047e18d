package calculator

import (
	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/model"
	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/parser"
)

// PipelineConfig carries the business configuration of one allocation run.
// Zero values fall back to the defaults currently used in production.
type PipelineConfig struct {
	HeaderRules      parser.HeaderRules
	CombinedUnits    map[string][]string
	ExcludedPeriods  ExclusionPolicy
	BuildingPrefixes []string
	DefaultChannel   string
}

// Pipeline drives the full allocation engine: extraction, channel
// normalization, unit splitting, month allocation, activity tracking and
// room-count aggregation. One Pipeline owns no state across runs and is safe
// to use from independent goroutines for separate datasets.
type Pipeline struct {
	extractor      *parser.StayExtractor
	splitter       *Splitter
	allocator      *Allocator
	defaultChannel string
}

// NewPipeline builds a pipeline, failing fast on an inconsistent exclusion
// policy.
func NewPipeline(cfg PipelineConfig) (*Pipeline, error) {
	if cfg.CombinedUnits == nil {
		cfg.CombinedUnits = DefaultCombinedUnits()
	}
	if cfg.DefaultChannel == "" {
		cfg.DefaultChannel = "Social Media"
	}

	allocator, err := NewAllocator(cfg.ExcludedPeriods, cfg.BuildingPrefixes)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		extractor:      parser.NewStayExtractor(cfg.HeaderRules),
		splitter:       NewSplitter(cfg.CombinedUnits),
		allocator:      allocator,
		defaultChannel: cfg.DefaultChannel,
	}, nil
}

// Run processes one raw dataset into the final result bundle. Unusable rows
// are counted and skipped, never fatal; zero usable rows is a valid result
// with empty collections.
func (p *Pipeline) Run(rows []model.RawRow) *model.RunResult {
	var records []model.AllocationRecord
	skipped := 0

	for _, row := range rows {
		stay, ok := p.extractor.Extract(row)
		if !ok {
			skipped++
			continue
		}
		stay.ChannelLabel = parser.NormalizeChannel(stay.ChannelLabel, p.defaultChannel)

		for _, unit := range p.splitter.Split(stay) {
			records = append(records, p.allocator.Allocate(unit)...)
		}
	}

	firstSeen := TrackFirstSeen(records)
	roomCounts := MonthlyRoomCounts(records, firstSeen)

	stats := model.RunStats{
		TotalRecords: len(records),
		UniqueRooms:  len(firstSeen),
		SkippedRows:  skipped,
	}
	for _, rec := range records {
		if stats.DateRange.Start == "" || rec.PeriodStart < stats.DateRange.Start {
			stats.DateRange.Start = rec.PeriodStart
		}
		if rec.PeriodStart > stats.DateRange.End {
			stats.DateRange.End = rec.PeriodStart
		}
	}

	return &model.RunResult{
		Records:           records,
		MonthlyRoomCounts: roomCounts,
		RoomFirstSeen:     firstSeen,
		Stats:             stats,
	}
}
