package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/store"
)

// ListRecords returns allocation records, filterable and paginated.
// GET /api/records?month=2025-03&room=A+4022&channel=Airbnb&building=A&limit=200&offset=0
func (h *Handler) ListRecords(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	opts := store.AllocationQueryOptions{
		MonthKey: c.Query("month"),
		Room:     c.Query("room"),
		Channel:  c.Query("channel"),
		Building: c.Query("building"),
		Limit:    limit,
		Offset:   offset,
	}

	total, err := h.store.CountAllocations(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	records, err := h.store.ListAllocations(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	roundRecordsInPlace(records)

	c.JSON(http.StatusOK, gin.H{
		"total":   total,
		"records": records,
	})
}
