package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Chonees/TAURO-PROJECT/internal/analyzer"
	"github.com/Chonees/TAURO-PROJECT/internal/artifact"
	"github.com/Chonees/TAURO-PROJECT/internal/cellmap"
	"github.com/Chonees/TAURO-PROJECT/internal/extractor"
	"github.com/Chonees/TAURO-PROJECT/internal/model"
	"github.com/Chonees/TAURO-PROJECT/internal/store"
)

// Coordinator coordina las etapas de extracción sobre un documento.
// El catálogo es opcional; con catalog nil la corrida no se registra.
type Coordinator struct {
	artifacts *artifact.Store
	catalog   *store.Store
}

// NewCoordinator crea el coordinador del pipeline
func NewCoordinator(artifacts *artifact.Store, catalog *store.Store) *Coordinator {
	return &Coordinator{
		artifacts: artifacts,
		catalog:   catalog,
	}
}

// Options opciones de una corrida
type Options struct {
	FilePath      string
	RecordCatalog bool
}

// ProgressEvent evento de progreso
type ProgressEvent struct {
	Type      string    `json:"type"` // start/info/stage_done/warning/error/done
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Result salida completa de una corrida del pipeline
type Result struct {
	Report   *model.PipelineReport
	CellMap  *model.CellMap
	Header   model.ReportHeader
	Events   []model.TimesheetEvent
	Notes    map[string]model.OperationalNotes
	Analysis *model.AnalysisReport
}

// Process ejecuta el pipeline y devuelve el canal de progreso.
// El evento final "done" lleva el *Result; el evento "error" señala un
// aborto por documento ilegible.
func (c *Coordinator) Process(opts Options) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doProcess(opts, progressChan)
	}()

	return progressChan
}

func (c *Coordinator) doProcess(opts Options, progressChan chan ProgressEvent) {
	startTime := time.Now()
	basename := artifact.Basename(opts.FilePath)

	report := &model.PipelineReport{
		RunID:    uuid.New().String(),
		Filename: filepath.Base(opts.FilePath),
		Basename: basename,
	}
	result := &Result{Report: report}

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "start",
		Message: "Iniciando procesamiento del documento",
		Data: map[string]string{
			"filename": report.Filename,
			"run_id":   report.RunID,
		},
		Timestamp: time.Now(),
	})

	// Etapa 1: mapa de celdas. Un documento ilegible aborta la corrida.
	stageStart := time.Now()
	cm, err := cellmap.BuildFromFile(opts.FilePath)
	if err != nil {
		report.Stages = append(report.Stages, model.StageResult{
			Stage:    model.StageCellMap,
			Status:   model.StageFailed,
			Error:    err.Error(),
			Duration: time.Since(stageStart),
		})
		report.Duration = time.Since(startTime)
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("No se pudo leer el documento: %v", err),
			Data:      result,
			Timestamp: time.Now(),
		})
		return
	}

	result.CellMap = cm
	report.TotalSheets = cm.Len()
	report.TotalCells = cm.TotalCells()
	report.TimesheetSheets = len(extractor.QualifyingSheets(cm))
	report.Stages = append(report.Stages, model.StageResult{
		Stage:    model.StageCellMap,
		Status:   model.StageOK,
		Duration: time.Since(stageStart),
	})

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "info",
		Message: fmt.Sprintf("Documento leído: %d hoja(s), %d celda(s), %d hoja(s) de tiempo", report.TotalSheets, report.TotalCells, report.TimesheetSheets),
		Data: map[string]int{
			"total_sheets":     report.TotalSheets,
			"total_cells":      report.TotalCells,
			"timesheet_sheets": report.TimesheetSheets,
		},
		Timestamp: time.Now(),
	})

	if err := c.writeArtifact(progressChan, basename, artifact.KindCellMap, cm); err != nil {
		return
	}

	// Etapas 2 a 4 en paralelo sobre el CellMap, que ya es de solo lectura
	var (
		wg          sync.WaitGroup
		headerStage model.StageResult
		eventsStage model.StageResult
		notesStage  model.StageResult
		eventsErr   error
		notesErr    error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		t := time.Now()
		result.Header = extractor.ExtractHeader(cm)
		status := model.StageOK
		if result.Header.IsEmpty() {
			status = model.StageEmpty
		}
		headerStage = model.StageResult{Stage: model.StageHeader, Status: status, Duration: time.Since(t)}
	}()
	go func() {
		defer wg.Done()
		t := time.Now()
		result.Events, eventsErr = extractor.ExtractEvents(cm)
		eventsStage = stageResult(model.StageEvents, len(result.Events) == 0, eventsErr, t)
	}()
	go func() {
		defer wg.Done()
		t := time.Now()
		result.Notes, notesErr = extractor.ExtractNotes(cm)
		notesStage = stageResult(model.StageNotes, len(result.Notes) == 0, notesErr, t)
	}()
	wg.Wait()

	report.Stages = append(report.Stages, headerStage, eventsStage, notesStage)
	report.EventCount = len(result.Events)

	c.reportStage(progressChan, headerStage)
	c.reportStage(progressChan, eventsStage)
	c.reportStage(progressChan, notesStage)

	if err := c.writeArtifact(progressChan, basename, artifact.KindHeader, result.Header); err != nil {
		return
	}
	if eventsStage.Status != model.StageFailed {
		if err := c.writeArtifact(progressChan, basename, artifact.KindEvents, result.Events); err != nil {
			return
		}
	}
	if notesStage.Status != model.StageFailed {
		if err := c.writeArtifact(progressChan, basename, artifact.KindNotes, result.Notes); err != nil {
			return
		}
	}

	// Etapa 5: análisis sobre eventos y notas fusionados. Sin cronología
	// estructurada el análisis hereda la falla.
	stageStart = time.Now()
	var structural *extractor.StructuralError
	if errors.As(eventsErr, &structural) {
		failedStage := model.StageResult{
			Stage:    model.StageAnalysis,
			Status:   model.StageFailed,
			Error:    eventsErr.Error(),
			Duration: time.Since(stageStart),
		}
		report.Stages = append(report.Stages, failedStage)
		c.reportStage(progressChan, failedStage)
	} else {
		result.Analysis = analyzer.AnalyzeEvents(result.Events, result.Notes, report.Filename)
		status := model.StageOK
		if len(result.Events) == 0 {
			status = model.StageEmpty
		}
		analysisStage := model.StageResult{Stage: model.StageAnalysis, Status: status, Duration: time.Since(stageStart)}
		report.Stages = append(report.Stages, analysisStage)
		c.reportStage(progressChan, analysisStage)

		if err := c.writeArtifact(progressChan, basename, artifact.KindAnalysis, result.Analysis); err != nil {
			return
		}
	}

	report.Duration = time.Since(startTime)

	if opts.RecordCatalog && c.catalog != nil {
		if err := c.catalog.RecordRun(report); err != nil {
			c.sendProgress(progressChan, ProgressEvent{
				Type:      "warning",
				Message:   fmt.Sprintf("No se pudo registrar la corrida en el catálogo: %v", err),
				Timestamp: time.Now(),
			})
		}
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "done",
		Message:   "Procesamiento completo",
		Data:      result,
		Timestamp: time.Now(),
	})
}

// stageResult estado de una etapa de extracción a partir de su error
func stageResult(stage string, empty bool, err error, start time.Time) model.StageResult {
	res := model.StageResult{Stage: stage, Status: model.StageOK, Duration: time.Since(start)}
	switch {
	case err != nil:
		res.Status = model.StageFailed
		res.Error = err.Error()
	case empty:
		res.Status = model.StageEmpty
	}
	return res
}

func (c *Coordinator) reportStage(ch chan ProgressEvent, stage model.StageResult) {
	event := ProgressEvent{
		Type:      "stage_done",
		Message:   fmt.Sprintf("Etapa %s: %s", stage.Stage, stage.Status),
		Data:      stage,
		Timestamp: time.Now(),
	}
	if stage.Status == model.StageFailed {
		event.Type = "warning"
		event.Message = fmt.Sprintf("Etapa %s falló: %s", stage.Stage, stage.Error)
	}
	c.sendProgress(ch, event)
}

// writeArtifact persiste un artefacto; una falla de escritura es fatal
// para la corrida porque deja la salida incompleta
func (c *Coordinator) writeArtifact(ch chan ProgressEvent, basename, kind string, v any) error {
	if err := c.artifacts.Write(basename, kind, v); err != nil {
		c.sendProgress(ch, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("No se pudo escribir el artefacto %s: %v", kind, err),
			Timestamp: time.Now(),
		})
		return err
	}
	return nil
}

// sendProgress envía sin bloquear; con el canal lleno el evento se descarta
func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
	}
}

// Run ejecuta el pipeline de forma síncrona descartando el progreso y
// devuelve el resultado final
func (c *Coordinator) Run(opts Options) (*Result, error) {
	var result *Result
	var fatal error
	for event := range c.Process(opts) {
		switch event.Type {
		case "done":
			if r, ok := event.Data.(*Result); ok {
				result = r
			}
		case "error":
			fatal = errors.New(event.Message)
			if r, ok := event.Data.(*Result); ok {
				result = r
			}
		}
	}
	if fatal != nil {
		return result, fatal
	}
	if result == nil {
		return nil, errors.New("pipeline finished without result")
	}
	return result, nil
}
