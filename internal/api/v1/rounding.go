package v1

import (
	"math"

	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/model"
	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/store"
)

// Revenue keeps full precision through the engine and the store; rounding to
// 2 decimals happens only here, at the response boundary.

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundRecordsInPlace(records []model.AllocationRecord) {
	for i := range records {
		records[i].Revenue = round2(records[i].Revenue)
	}
}

func roundMetricsInPlace(metrics []store.MonthlyMetrics) {
	for i := range metrics {
		metrics[i].Revenue = round2(metrics[i].Revenue)
		metrics[i].OccupancyRate = round2(metrics[i].OccupancyRate)
		metrics[i].ADR = round2(metrics[i].ADR)
		metrics[i].RevPAR = round2(metrics[i].RevPAR)
	}
}

func roundSummariesInPlace(entries []store.EntitySummary) {
	for i := range entries {
		entries[i].Revenue = round2(entries[i].Revenue)
	}
}
