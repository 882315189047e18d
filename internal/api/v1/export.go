package v1

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/exporter"
)

const downloadTTL = 10 * time.Minute

// Export generates the analysis workbook and returns a one-shot download
// token for it.
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	f, err := exporter.NewExporter(h.store).Export()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("orbihub_export_%s.xlsx", uuid.New().String()[:8])
	filePath := filepath.Join(h.dataDir, "exports", filename)

	if err := f.SaveAs(filePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write export file"})
		return
	}

	token := h.downloads.put(filePath, downloadTTL)

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"filename": filename,
	})
}

// DownloadExport serves a previously generated workbook by token.
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown or expired download token"})
		return
	}
	h.downloads.delete(token)

	name := fmt.Sprintf("orbi-city-analysis-%s.xlsx", time.Now().Format("2006-01-02"))
	c.FileAttachment(item.filePath, name)
}
