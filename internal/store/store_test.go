package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Chonees/TAURO-PROJECT/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "tauro.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleReport(runID string) *model.PipelineReport {
	return &model.PipelineReport{
		RunID:           runID,
		Filename:        "reporte.xlsx",
		Basename:        "reporte",
		TotalSheets:     3,
		TimesheetSheets: 1,
		TotalCells:      240,
		EventCount:      17,
		Stages: []model.StageResult{
			{Stage: model.StageCellMap, Status: model.StageOK},
			{Stage: model.StageHeader, Status: model.StageOK},
			{Stage: model.StageEvents, Status: model.StageOK},
			{Stage: model.StageNotes, Status: model.StageEmpty},
			{Stage: model.StageAnalysis, Status: model.StageOK},
		},
		Duration: 1500 * time.Millisecond,
	}
}

func TestStore_RecordAndGet(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if err := s.RecordRun(sampleReport("run-1")); err != nil {
		t.Fatalf("record: %v", err)
	}

	entry, err := s.GetReport("run-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if entry == nil {
		t.Fatalf("entry missing")
	}
	if entry.Filename != "reporte.xlsx" || entry.EventCount != 17 {
		t.Fatalf("entry = %+v", entry)
	}
	if entry.NotesStatus != string(model.StageEmpty) {
		t.Fatalf("notes status = %q", entry.NotesStatus)
	}
	if entry.DurationMs != 1500 {
		t.Fatalf("duration = %d ms", entry.DurationMs)
	}
}

func TestStore_GetMissing(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	entry, err := s.GetReport("no-existe")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if entry != nil {
		t.Fatalf("entry = %+v, want nil", entry)
	}
}

func TestStore_RecordReplacesSameRun(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if err := s.RecordRun(sampleReport("run-1")); err != nil {
		t.Fatalf("first record: %v", err)
	}

	updated := sampleReport("run-1")
	updated.EventCount = 99
	if err := s.RecordRun(updated); err != nil {
		t.Fatalf("second record: %v", err)
	}

	entries, err := s.ListReports(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].EventCount != 99 {
		t.Fatalf("event count = %d, want 99", entries[0].EventCount)
	}
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if err := s.RecordRun(sampleReport("run-1")); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.DeleteReport("run-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	entry, err := s.GetReport("run-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if entry != nil {
		t.Fatalf("entry survived delete")
	}
}
