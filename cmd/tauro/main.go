package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Chonees/TAURO-PROJECT/internal/artifact"
	"github.com/Chonees/TAURO-PROJECT/internal/config"
	"github.com/Chonees/TAURO-PROJECT/internal/model"
	"github.com/Chonees/TAURO-PROJECT/internal/pipeline"
	"github.com/Chonees/TAURO-PROJECT/internal/store"
)

var (
	filePath  = flag.String("file", "", "documento Excel a procesar (.xlsx/.xlsm)")
	dataDir   = flag.String("dataDir", "", "directorio de datos (sobrescribe config.toml)")
	noCatalog = flag.Bool("noCatalog", false, "no registrar la corrida en el catálogo")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Tauro - Extracción de reportes de inspección")
	fmt.Println("==========================================")

	if *filePath == "" {
		fmt.Println("Uso: tauro -file <documento.xlsx>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("No se pudo cargar la configuración, se usan valores por defecto: %v", err)
		cfg = config.DefaultConfig()
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	resolvedDataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Fatalf("No se pudo crear el directorio de datos: %v", err)
	}
	fmt.Printf("Directorio de datos: %s\n", resolvedDataDir)

	artifacts, err := artifact.New(filepath.Join(resolvedDataDir, "output"))
	if err != nil {
		log.Fatalf("No se pudo preparar el directorio de salida: %v", err)
	}

	var catalog *store.Store
	recordCatalog := cfg.Pipeline.RecordCatalog && !*noCatalog
	if recordCatalog {
		catalog, err = store.New(filepath.Join(resolvedDataDir, "tauro.db"))
		if err != nil {
			log.Printf("Catálogo no disponible, la corrida no se registrará: %v", err)
			recordCatalog = false
		} else {
			defer catalog.Close()
		}
	}

	coordinator := pipeline.NewCoordinator(artifacts, catalog)

	var result *pipeline.Result
	fatal := false
	for event := range coordinator.Process(pipeline.Options{
		FilePath:      *filePath,
		RecordCatalog: recordCatalog,
	}) {
		switch event.Type {
		case "error":
			fmt.Printf("[ERROR] %s\n", event.Message)
			fatal = true
			if r, ok := event.Data.(*pipeline.Result); ok {
				result = r
			}
		case "warning":
			fmt.Printf("[AVISO] %s\n", event.Message)
		case "done":
			if r, ok := event.Data.(*pipeline.Result); ok {
				result = r
			}
		default:
			fmt.Println(event.Message)
		}
	}

	if fatal || result == nil {
		os.Exit(1)
	}

	printSummary(result, artifacts.Dir())
}

func printSummary(result *pipeline.Result, outputDir string) {
	report := result.Report

	fmt.Println("\n------------------------------------------")
	fmt.Printf("Documento:        %s\n", report.Filename)
	fmt.Printf("Corrida:          %s\n", report.RunID)
	fmt.Printf("Hojas:            %d (de tiempo: %d)\n", report.TotalSheets, report.TimesheetSheets)
	fmt.Printf("Celdas con dato:  %d\n", report.TotalCells)
	fmt.Printf("Eventos:          %d\n", report.EventCount)
	for _, stage := range report.Stages {
		fmt.Printf("  %-10s %s\n", stage.Stage+":", stage.Status)
	}
	fmt.Printf("Duración:         %s\n", report.Duration.Round(time.Millisecond))
	fmt.Printf("Artefactos en:    %s\n", outputDir)

	if report.StageStatusOf(model.StageEvents) == model.StageFailed {
		fmt.Println("\nEl documento no contiene una cronología estructurada;")
		fmt.Println("solo se extrajo la cabecera del reporte.")
	}
}
