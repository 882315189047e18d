package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/store"
)

// ListRooms returns per-room totals, highest revenue first.
// GET /api/rooms
func (h *Handler) ListRooms(c *gin.Context) {
	h.entitySummaries(c, "rooms", h.store.ListRoomSummaries)
}

// ListChannels returns per-channel totals, highest revenue first.
// GET /api/channels
func (h *Handler) ListChannels(c *gin.Context) {
	h.entitySummaries(c, "channels", h.store.ListChannelSummaries)
}

// ListBuildings returns per-building totals, highest revenue first.
// GET /api/buildings
func (h *Handler) ListBuildings(c *gin.Context) {
	h.entitySummaries(c, "buildings", h.store.ListBuildingSummaries)
}

func (h *Handler) entitySummaries(c *gin.Context, key string, list func() ([]store.EntitySummary, error)) {
	entries, err := list()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	roundSummariesInPlace(entries)

	c.JSON(http.StatusOK, gin.H{key: entries})
}
