package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/config"
	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/store"
)

// Handler wires the dashboard API over the store and the app configuration.
type Handler struct {
	store     *store.Store
	cfg       *config.AppConfig
	dataDir   string
	downloads *exportDownloadStore
}

// NewHandler creates the API handler. dataDir is the resolved data directory
// used for generated export files.
func NewHandler(store *store.Store, cfg *config.AppConfig, dataDir string) *Handler {
	return &Handler{
		store:     store,
		cfg:       cfg,
		dataDir:   dataDir,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	router.POST("/import", h.Import)
	router.GET("/imports", h.ListImports)

	router.GET("/records", h.ListRecords)
	router.GET("/months", h.ListMonths)
	router.GET("/rooms", h.ListRooms)
	router.GET("/channels", h.ListChannels)
	router.GET("/buildings", h.ListBuildings)

	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)

	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}
