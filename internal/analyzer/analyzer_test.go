package analyzer

import (
	"strings"
	"testing"

	"github.com/Chonees/TAURO-PROJECT/internal/model"
)

func sptr(s string) *string { return &s }

func sampleEvents() []model.TimesheetEvent {
	return []model.TimesheetEvent{
		{Sheet: "TIME LOG", Event: "Inspection of tanks completed", Date: sptr("2024-05-01"), Time: sptr("05:30"), Section: model.SectionEnglish, Row: 4},
		{Sheet: "TIME LOG", Event: "Start pumping", Date: sptr("2024-05-01"), Time: sptr("06:00"), Section: model.SectionEnglish, Row: 5},
		{Sheet: "TIME LOG", Event: "Loading operations continue", Date: sptr("2024-05-01"), Time: sptr("08:00"), Section: model.SectionEnglish, Row: 6},
		{Sheet: "TIME LOG", Event: "Stop pumping", Date: sptr("2024-05-01"), Time: sptr("10:00"), Section: model.SectionEnglish, Row: 7},
		{Sheet: "TIME LOG", Event: "Demora por lluvia", Date: sptr("2024-05-01"), Time: sptr("11:00"), Section: model.SectionSpanish, Row: 8},
		{Sheet: "TIME LOG", Event: "Pilot on board", Date: nil, Time: nil, Section: model.SectionEnglish, Row: 9},
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want string
	}{
		{"Start pumping", CategoryLoading},
		{"Stop pumping", CategoryUnloading},
		{"Inicio de la descarga", CategoryUnloading},
		{"Commence loading of cargo", CategoryLoading},
		{"Inspection of vessel tanks", CategoryInspection},
		{"STS lightering operation", CategoryLightering},
		{"Pilot on board", CategoryOther},
		// la inspección tiene prioridad sobre la carga
		{"Inspection during loading", CategoryInspection},
	}

	for _, tc := range cases {
		if got := Classify(tc.text); got != tc.want {
			t.Fatalf("Classify(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

func TestAnalyzeEvents_Sections(t *testing.T) {
	t.Parallel()

	report := AnalyzeEvents(sampleEvents(), nil, "reporte.xlsx")

	if report.Metadata.EventCount != 6 {
		t.Fatalf("event count = %d", report.Metadata.EventCount)
	}
	if report.Metadata.Filename != "reporte.xlsx" {
		t.Fatalf("filename = %q", report.Metadata.Filename)
	}
	for _, name := range []string{model.SectionSummary, model.SectionAnalysis, model.SectionEvents, model.SectionRecommendations, model.SectionRisks} {
		if report.Sections[name] == "" {
			t.Fatalf("section %s is empty", name)
		}
	}

	summary := report.Sections[model.SectionSummary]
	if !strings.Contains(summary, "Eventos por categoría") || !strings.Contains(summary, "Carga: 2") {
		t.Fatalf("summary missing category counts:\n%s", summary)
	}

	analysis := report.Sections[model.SectionAnalysis]
	if !strings.Contains(analysis, "Carga: 2 evento(s)") {
		t.Fatalf("analysis missing loading count:\n%s", analysis)
	}
	if !strings.Contains(analysis, "2h 00min") {
		t.Fatalf("analysis missing loading duration:\n%s", analysis)
	}

	if !strings.Contains(report.FullText, report.Sections[model.SectionSummary]) {
		t.Fatalf("full text must contain summary")
	}
}

func TestAnalyzeEvents_CriticalEventsAndTemplates(t *testing.T) {
	t.Parallel()

	report := AnalyzeEvents(sampleEvents(), nil, "reporte.xlsx")

	// la sección de eventos marca solo los que dispararon palabras de
	// riesgo, no la cronología completa
	events := report.Sections[model.SectionEvents]
	if !strings.Contains(events, "EVENTOS CRÍTICOS") {
		t.Fatalf("events section header:\n%s", events)
	}
	if !strings.Contains(events, "Demora por lluvia") || !strings.Contains(events, "[demora]") {
		t.Fatalf("events section missing flagged delay:\n%s", events)
	}
	if !strings.Contains(events, "Stop pumping") || !strings.Contains(events, "[parada]") {
		t.Fatalf("events section missing flagged stop:\n%s", events)
	}
	if strings.Contains(events, "Loading operations continue") || strings.Contains(events, "Pilot on board") {
		t.Fatalf("unflagged events must not appear:\n%s", events)
	}

	// recomendaciones y riesgos salen de las plantillas de los grupos
	// que dispararon
	recommendations := report.Sections[model.SectionRecommendations]
	if !strings.Contains(recommendations, "duración de cada demora") {
		t.Fatalf("recommendations missing delay template:\n%s", recommendations)
	}
	if !strings.Contains(recommendations, "parada o suspensión") {
		t.Fatalf("recommendations missing stoppage template:\n%s", recommendations)
	}
	if strings.Contains(recommendations, "abandono") {
		t.Fatalf("abandonment template must not fire:\n%s", recommendations)
	}

	risks := report.Sections[model.SectionRisks]
	if !strings.Contains(risks, "Las demoras registradas") {
		t.Fatalf("risks missing delay template:\n%s", risks)
	}
	if !strings.Contains(risks, "Las paradas de operación") {
		t.Fatalf("risks missing stoppage template:\n%s", risks)
	}
}

func TestAnalyzeEvents_NoRiskKeywords(t *testing.T) {
	t.Parallel()

	events := []model.TimesheetEvent{
		{Sheet: "TIME LOG", Event: "All fast", Date: sptr("2024-05-01"), Time: sptr("06:00"), Section: model.SectionEnglish, Row: 4},
		{Sheet: "TIME LOG", Event: "Hoses connected", Date: sptr("2024-05-01"), Time: sptr("06:30"), Section: model.SectionEnglish, Row: 5},
	}

	report := AnalyzeEvents(events, nil, "reporte.xlsx")
	if !strings.Contains(report.Sections[model.SectionEvents], "Ningún evento disparó") {
		t.Fatalf("events section:\n%s", report.Sections[model.SectionEvents])
	}
	if !strings.Contains(report.Sections[model.SectionRecommendations], "no registra interrupciones") {
		t.Fatalf("recommendations:\n%s", report.Sections[model.SectionRecommendations])
	}
	if !strings.Contains(report.Sections[model.SectionRisks], "No se identificaron interrupciones") {
		t.Fatalf("risks:\n%s", report.Sections[model.SectionRisks])
	}
}

func TestAnalyzeEvents_Deterministic(t *testing.T) {
	t.Parallel()

	notes := map[string]model.OperationalNotes{
		"B hoja": {},
		"A hoja": {SheetHeader: model.ReportHeader{Vessel: "MT ALFA"}},
	}

	first := AnalyzeEvents(sampleEvents(), notes, "reporte.xlsx")
	second := AnalyzeEvents(sampleEvents(), notes, "reporte.xlsx")

	if first.FullText != second.FullText {
		t.Fatalf("full text not deterministic")
	}
	for name, text := range first.Sections {
		if second.Sections[name] != text {
			t.Fatalf("section %s not deterministic", name)
		}
	}
	if !strings.Contains(first.Sections[model.SectionSummary], "MT ALFA") {
		t.Fatalf("summary must name the vessel:\n%s", first.Sections[model.SectionSummary])
	}
}

func TestAnalyzeEvents_NoEvents(t *testing.T) {
	t.Parallel()

	report := AnalyzeEvents(nil, nil, "vacio.xlsx")
	if len(report.Sections) != 0 {
		t.Fatalf("sections = %v, want none", report.Sections)
	}
	if !strings.Contains(report.FullText, "No se encontró una cronología estructurada") {
		t.Fatalf("full text = %q", report.FullText)
	}
	if report.Metadata.EventCount != 0 {
		t.Fatalf("event count = %d", report.Metadata.EventCount)
	}
}
