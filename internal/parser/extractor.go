package parser

import (
	"strings"
	"sync"

	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/model"
)

// fallbackChannel is assumed when an export carries no channel column at all.
const fallbackChannel = "Direct"

// StayExtractor resolves reservation fields out of raw rows using tolerant
// header matching. Header resolution is memoized per distinct header string,
// so a whole file pays the pattern scan once per column. The memo is guarded
// so one extractor can serve concurrent runs over separate datasets.
type StayExtractor struct {
	rules HeaderRules

	mu        sync.Mutex
	keyFields map[string][]Field
}

// NewStayExtractor creates an extractor with the given header rules.
func NewStayExtractor(rules HeaderRules) *StayExtractor {
	if rules == nil {
		rules = DefaultHeaderRules()
	}
	return &StayExtractor{
		rules:     rules,
		keyFields: make(map[string][]Field),
	}
}

// Extract normalizes one raw row into an ExtractedStay. ok is false when the
// row is unusable: no room label, unparseable dates, non-positive revenue or
// a non-positive stay length. Unusable rows are dropped, never corrected.
func (e *StayExtractor) Extract(row model.RawRow) (model.ExtractedStay, bool) {
	var stay model.ExtractedStay

	room := e.firstValue(row, FieldRoom)
	room = strings.ToUpper(strings.TrimSpace(room))
	if room == "" {
		return stay, false
	}

	checkIn, ok := ParseDate(e.firstValue(row, FieldCheckIn))
	if !ok {
		return stay, false
	}
	checkOut, ok := ParseDate(e.firstValue(row, FieldCheckOut))
	if !ok {
		return stay, false
	}
	if !checkOut.After(checkIn) {
		return stay, false
	}

	revenue := ParseAmount(e.firstValue(row, FieldRevenue))
	if revenue <= 0 {
		return stay, false
	}

	channel := strings.TrimSpace(e.firstValue(row, FieldChannel))
	if channel == "" {
		channel = fallbackChannel
	}

	stay = model.ExtractedStay{
		RoomLabel:    room,
		ChannelLabel: channel,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		Revenue:      revenue,
	}
	return stay, true
}

// firstValue returns the first non-empty cell whose header matches the field.
func (e *StayExtractor) firstValue(row model.RawRow, field Field) string {
	for _, cell := range row {
		if strings.TrimSpace(cell.Value) == "" {
			continue
		}
		for _, f := range e.fieldsForKey(cell.Key) {
			if f == field {
				return cell.Value
			}
		}
	}
	return ""
}

// fieldsForKey resolves which canonical fields a column header can carry.
func (e *StayExtractor) fieldsForKey(key string) []Field {
	e.mu.Lock()
	defer e.mu.Unlock()

	if fields, ok := e.keyFields[key]; ok {
		return fields
	}

	lower := strings.ToLower(strings.TrimSpace(key))
	var fields []Field
	for _, field := range []Field{FieldRoom, FieldChannel, FieldCheckIn, FieldCheckOut, FieldRevenue} {
		for _, pattern := range e.rules[field] {
			if strings.Contains(lower, pattern) {
				fields = append(fields, field)
				break
			}
		}
	}

	e.keyFields[key] = fields
	return fields
}
