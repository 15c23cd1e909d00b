package model

import "time"

// StageStatus resultado por etapa del pipeline
type StageStatus string

const (
	StageOK     StageStatus = "ok"
	StageEmpty  StageStatus = "empty"
	StageFailed StageStatus = "failed"
)

// Nombres de etapa
const (
	StageCellMap  = "cellmap"
	StageHeader   = "header"
	StageEvents   = "events"
	StageNotes    = "notes"
	StageAnalysis = "analysis"
)

// StageResult resultado de una etapa de extracción
type StageResult struct {
	Stage    string        `json:"stage"`
	Status   StageStatus   `json:"status"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// PipelineReport resumen de una corrida completa del pipeline
type PipelineReport struct {
	RunID           string        `json:"runId"`
	Filename        string        `json:"filename"`
	Basename        string        `json:"basename"`
	TotalSheets     int           `json:"totalSheets"`
	TimesheetSheets int           `json:"timesheetSheets"`
	TotalCells      int           `json:"totalCells"`
	EventCount      int           `json:"eventCount"`
	Stages          []StageResult `json:"stages"`
	Duration        time.Duration `json:"duration"`
}

// StageStatusOf busca el estado de una etapa por nombre
func (r *PipelineReport) StageStatusOf(stage string) StageStatus {
	for _, s := range r.Stages {
		if s.Stage == stage {
			return s.Status
		}
	}
	return StageFailed
}
