package store

import "fmt"

// CreateImportLog records the start of an import run, returning the row id.
func (s *Store) CreateImportLog(importID, filename string, fileSize int64) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_logs (import_id, filename, file_size, status)
		VALUES (?, ?, ?, 'processing')
	`, importID, filename, fileSize)
	if err != nil {
		return 0, fmt.Errorf("failed to create import log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import log id: %w", err)
	}
	return id, nil
}

// CompleteImportLog finalizes an import log entry.
func (s *Store) CompleteImportLog(id int64, totalRows, importedRecords, skippedRows int, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE import_logs SET
			total_rows = ?,
			imported_records = ?,
			skipped_rows = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, totalRows, importedRecords, skippedRows, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	return nil
}

// ImportLogEntry is one import run as recorded in the log.
type ImportLogEntry struct {
	ID              int64  `json:"id"`
	ImportID        string `json:"importId"`
	Filename        string `json:"filename"`
	Status          string `json:"status"`
	TotalRows       int    `json:"totalRows"`
	ImportedRecords int    `json:"importedRecords"`
	SkippedRows     int    `json:"skippedRows"`
	ErrorMessage    string `json:"errorMessage,omitempty"`
	CreatedAt       string `json:"createdAt"`
}

// ListImportLogs returns import runs, newest first.
func (s *Store) ListImportLogs(limit int) ([]ImportLogEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, import_id, filename, status, total_rows, imported_records, skipped_rows, error_message, created_at
		FROM import_logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query import logs failed: %w", err)
	}
	defer rows.Close()

	var out []ImportLogEntry
	for rows.Next() {
		var e ImportLogEntry
		if err := rows.Scan(&e.ID, &e.ImportID, &e.Filename, &e.Status,
			&e.TotalRows, &e.ImportedRecords, &e.SkippedRows, &e.ErrorMessage, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan import log failed: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
