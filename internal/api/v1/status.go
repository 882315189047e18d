package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/model"
)

// StatusResponse describes the stored dataset.
type StatusResponse struct {
	Initialized    bool            `json:"initialized"`
	TotalRecords   int             `json:"totalRecords"`
	UniqueRooms    int             `json:"uniqueRooms"`
	SkippedRows    int             `json:"skippedRows"`
	DateRange      model.DateRange `json:"dateRange"`
	LastImportTime string          `json:"lastImportTime"`
}

// GetStatus returns dataset presence and summary statistics.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	stats, err := h.store.DatasetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	lastImport := ""
	if logs, err := h.store.ListImportLogs(1); err == nil && len(logs) > 0 {
		lastImport = logs[0].CreatedAt
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:    stats.TotalRecords > 0,
		TotalRecords:   stats.TotalRecords,
		UniqueRooms:    stats.UniqueRooms,
		SkippedRows:    stats.SkippedRows,
		DateRange:      stats.DateRange,
		LastImportTime: lastImport,
	})
}
