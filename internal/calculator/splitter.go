package calculator

import (
	"regexp"
	"strings"

	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/model"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Splitter expands stays booked on a combined listing (two physical studios
// sold as one entry) into one stay per physical unit, dividing revenue
// evenly. The table of combined notations is business configuration, not
// code; unknown notations are treated as literal single room labels.
type Splitter struct {
	units map[string][]string
}

// DefaultCombinedUnits returns the combined-listing table currently in use:
// the two dual-studio listings in block A.
func DefaultCombinedUnits() map[string][]string {
	return map[string][]string{
		"A 4022-4024": {"A 4022", "A 4024"},
		"A 4023-4025": {"A 4023", "A 4025"},
	}
}

// NewSplitter creates a splitter from a combined-listing table. Keys are
// normalized so that spacing variants of the same notation ("A 4022-4024",
// "A4022-4024") resolve to the same entry.
func NewSplitter(table map[string][]string) *Splitter {
	units := make(map[string][]string, len(table)*2)
	for notation, rooms := range table {
		key := normalizeRoomLabel(notation)
		units[key] = rooms
		units[strings.ReplaceAll(key, " ", "")] = rooms
	}
	return &Splitter{units: units}
}

// Split expands one extracted stay into per-unit stays. Revenue is divided
// evenly across units; the shares always sum back to the original revenue.
func (s *Splitter) Split(stay model.ExtractedStay) []model.UnitStay {
	rooms := []string{stay.RoomLabel}
	if expanded, ok := s.units[normalizeRoomLabel(stay.RoomLabel)]; ok {
		rooms = expanded
	}

	share := stay.Revenue / float64(len(rooms))
	out := make([]model.UnitStay, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, model.UnitStay{
			Room:     room,
			Channel:  stay.ChannelLabel,
			CheckIn:  stay.CheckIn,
			CheckOut: stay.CheckOut,
			Revenue:  share,
		})
	}
	return out
}

// normalizeRoomLabel collapses whitespace runs and upper-cases the label.
func normalizeRoomLabel(label string) string {
	return strings.ToUpper(strings.TrimSpace(whitespaceRun.ReplaceAllString(label, " ")))
}
