package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/calculator"
	appconfig "github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/config"
)

// GetConfig returns the business configuration driving the engine.
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.cfg.Business)
}

// UpdateConfig merges the request body into the business configuration:
// fields absent from the body keep their current values. The exclusion policy
// is validated before anything is persisted; changes apply to the next import.
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	business := h.cfg.Business
	// copy the map so a rejected body never mutates the live config
	business.CombinedUnits = make(map[string][]string, len(h.cfg.Business.CombinedUnits))
	for notation, rooms := range h.cfg.Business.CombinedUnits {
		business.CombinedUnits[notation] = rooms
	}
	if err := c.ShouldBindJSON(&business); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := calculator.ExclusionPolicy(business.ExcludedPeriods).Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.cfg.Business = business
	if err := appconfig.SaveConfig(h.cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.cfg.Business)
}
