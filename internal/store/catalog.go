package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Chonees/TAURO-PROJECT/internal/model"
)

// CatalogEntry una fila del catálogo de reportes procesados
type CatalogEntry struct {
	RunID           string    `json:"run_id"`
	Filename        string    `json:"filename"`
	Basename        string    `json:"basename"`
	ProcessedAt     time.Time `json:"processed_at"`
	TotalSheets     int       `json:"total_sheets"`
	TimesheetSheets int       `json:"timesheet_sheets"`
	TotalCells      int       `json:"total_cells"`
	EventCount      int       `json:"event_count"`
	HeaderStatus    string    `json:"header_status"`
	EventsStatus    string    `json:"events_status"`
	NotesStatus     string    `json:"notes_status"`
	AnalysisStatus  string    `json:"analysis_status"`
	DurationMs      int64     `json:"duration_ms"`
}

// RecordRun registra el resumen de una corrida del pipeline. Una corrida
// repetida del mismo run_id reemplaza la fila anterior.
func (s *Store) RecordRun(report *model.PipelineReport) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO processed_reports (
			run_id, filename, basename, processed_at,
			total_sheets, timesheet_sheets, total_cells, event_count,
			header_status, events_status, notes_status, analysis_status,
			duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		report.RunID, report.Filename, report.Basename, time.Now().UTC(),
		report.TotalSheets, report.TimesheetSheets, report.TotalCells, report.EventCount,
		string(report.StageStatusOf(model.StageHeader)),
		string(report.StageStatusOf(model.StageEvents)),
		string(report.StageStatusOf(model.StageNotes)),
		string(report.StageStatusOf(model.StageAnalysis)),
		report.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// ListReports corridas registradas, más recientes primero
func (s *Store) ListReports(limit int) ([]*CatalogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(`
		SELECT run_id, filename, basename, processed_at,
		       total_sheets, timesheet_sheets, total_cells, event_count,
		       header_status, events_status, notes_status, analysis_status,
		       duration_ms
		FROM processed_reports
		ORDER BY processed_at DESC, run_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	entries := make([]*CatalogEntry, 0, limit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GetReport corrida por run_id; (nil, nil) si no existe
func (s *Store) GetReport(runID string) (*CatalogEntry, error) {
	row := s.db.QueryRow(`
		SELECT run_id, filename, basename, processed_at,
		       total_sheets, timesheet_sheets, total_cells, event_count,
		       header_status, events_status, notes_status, analysis_status,
		       duration_ms
		FROM processed_reports
		WHERE run_id = ?
	`, runID)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteReport elimina una corrida del catálogo
func (s *Store) DeleteReport(runID string) error {
	if _, err := s.db.Exec("DELETE FROM processed_reports WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*CatalogEntry, error) {
	var entry CatalogEntry
	err := row.Scan(
		&entry.RunID, &entry.Filename, &entry.Basename, &entry.ProcessedAt,
		&entry.TotalSheets, &entry.TimesheetSheets, &entry.TotalCells, &entry.EventCount,
		&entry.HeaderStatus, &entry.EventsStatus, &entry.NotesStatus, &entry.AnalysisStatus,
		&entry.DurationMs,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan report row: %w", err)
	}
	return &entry, nil
}
