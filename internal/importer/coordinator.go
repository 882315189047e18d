package importer

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/calculator"
	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/model"
	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/store"
)

// Coordinator drives one reservation export through the allocation pipeline
// and into the store, reporting progress over a channel.
type Coordinator struct {
	store       *store.Store
	pipelineCfg calculator.PipelineConfig
}

// NewCoordinator creates an import coordinator.
func NewCoordinator(store *store.Store, pipelineCfg calculator.PipelineConfig) *Coordinator {
	return &Coordinator{
		store:       store,
		pipelineCfg: pipelineCfg,
	}
}

// ImportOptions describes one import run.
type ImportOptions struct {
	FilePath string
	Filename string // original upload name; FilePath's base when empty
	FileSize int64
}

// ProgressEvent is one step of an import run.
// Type is one of start/info/warning/done/error.
type ProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Import runs asynchronously and returns the progress channel. The channel
// is closed after the final done or error event.
func (c *Coordinator) Import(opts ImportOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doImport(opts, progressChan)
	}()

	return progressChan
}

func (c *Coordinator) doImport(opts ImportOptions, progressChan chan ProgressEvent) {
	filename := opts.Filename
	if filename == "" {
		filename = filepath.Base(opts.FilePath)
	}
	importID := uuid.New().String()

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "start",
		Message: "Importing reservation export",
		Data: map[string]string{
			"filename": filename,
			"importId": importID,
		},
		Timestamp: time.Now(),
	})

	logID, err := c.store.CreateImportLog(importID, filename, opts.FileSize)
	if err != nil {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   fmt.Sprintf("Failed to record import log: %v", err),
			Timestamp: time.Now(),
		})
	}

	fail := func(msg string) {
		if logID > 0 {
			_ = c.store.CompleteImportLog(logID, 0, 0, 0, "error", msg)
		}
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   msg,
			Timestamp: time.Now(),
		})
	}

	pipeline, err := calculator.NewPipeline(c.pipelineCfg)
	if err != nil {
		fail(fmt.Sprintf("Invalid business configuration: %v", err))
		return
	}

	file, err := excelize.OpenFile(opts.FilePath)
	if err != nil {
		fail(fmt.Sprintf("Failed to open workbook: %v", err))
		return
	}
	defer file.Close()

	rows, sheetName, err := readFirstSheet(file)
	if err != nil {
		fail(err.Error())
		return
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "info",
		Message: fmt.Sprintf("Sheet %q: %d data rows", sheetName, len(rows)),
		Data: map[string]interface{}{
			"sheet":     sheetName,
			"totalRows": len(rows),
		},
		Timestamp: time.Now(),
	})

	result := pipeline.Run(rows)

	if result.Stats.SkippedRows > 0 {
		c.sendProgress(progressChan, ProgressEvent{
			Type:    "warning",
			Message: fmt.Sprintf("Skipped %d unusable rows", result.Stats.SkippedRows),
			Data: map[string]int{
				"skippedRows": result.Stats.SkippedRows,
			},
			Timestamp: time.Now(),
		})
	}

	if err := c.store.SaveRunResult(importID, result); err != nil {
		fail(fmt.Sprintf("Failed to persist results: %v", err))
		return
	}
	if err := c.store.SetConfigInt("last_skipped_rows", result.Stats.SkippedRows); err != nil {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   fmt.Sprintf("Failed to record skip counter: %v", err),
			Timestamp: time.Now(),
		})
	}

	if logID > 0 {
		_ = c.store.CompleteImportLog(logID, len(rows), result.Stats.TotalRecords,
			result.Stats.SkippedRows, "imported", "")
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "done",
		Message:   "Import complete",
		Data:      result.Stats,
		Timestamp: time.Now(),
	})
}

// readFirstSheet converts the first worksheet into raw rows, preserving the
// original column headers in sheet order. Reservation exports carry their
// data on the first sheet.
func readFirstSheet(file *excelize.File) ([]model.RawRow, string, error) {
	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", fmt.Errorf("workbook has no sheets")
	}
	sheetName := sheets[0]

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, sheetName, fmt.Errorf("failed to read sheet %q: %v", sheetName, err)
	}
	if len(rows) < 2 {
		return nil, sheetName, nil
	}

	headers := rows[0]

	out := make([]model.RawRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		raw := make(model.RawRow, 0, len(headers))
		for i, header := range headers {
			if strings.TrimSpace(header) == "" {
				continue
			}
			value := ""
			if i < len(row) {
				value = row[i]
			}
			raw = append(raw, model.Cell{Key: header, Value: value})
		}
		out = append(out, raw)
	}

	return out, sheetName, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// sendProgress drops the event when the channel is full.
func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
	}
}
