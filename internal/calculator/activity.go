package calculator

import (
	"sort"

	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/model"
)

// TrackFirstSeen folds the record stream into a map from room to the
// earliest month key it appears in. Earlier months always win.
func TrackFirstSeen(records []model.AllocationRecord) map[string]string {
	firstSeen := make(map[string]string)
	for _, rec := range records {
		if existing, ok := firstSeen[rec.Room]; !ok || rec.MonthKey < existing {
			firstSeen[rec.Room] = rec.MonthKey
		}
	}
	return firstSeen
}

// MonthlyRoomCounts derives, for every month present in the records, the set
// of rooms active by then: every room first seen on or before that month.
// Rooms only ever activate in this model, so counts never decrease.
func MonthlyRoomCounts(records []model.AllocationRecord, firstSeen map[string]string) []model.MonthlyRoomCount {
	months := make(map[string]struct{})
	for _, rec := range records {
		months[rec.MonthKey] = struct{}{}
	}

	out := make([]model.MonthlyRoomCount, 0, len(months))
	for month := range months {
		var rooms []string
		for room, first := range firstSeen {
			if first <= month {
				rooms = append(rooms, room)
			}
		}
		sort.Strings(rooms)
		out = append(out, model.MonthlyRoomCount{
			MonthKey:  month,
			RoomCount: len(rooms),
			Rooms:     rooms,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].MonthKey < out[j].MonthKey })
	return out
}
