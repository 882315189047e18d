package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListMonths returns the monthly series (revenue, nights, active rooms,
// occupancy, ADR, RevPAR) plus the active-room detail per month.
// GET /api/months
func (h *Handler) ListMonths(c *gin.Context) {
	metrics, err := h.store.ListMonthlyMetrics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	roundMetricsInPlace(metrics)

	roomCounts, err := h.store.ListMonthlyRoomCounts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"months":     metrics,
		"roomCounts": roomCounts,
	})
}
