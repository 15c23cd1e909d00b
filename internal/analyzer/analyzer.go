package analyzer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Chonees/TAURO-PROJECT/internal/model"
)

// Categorías operacionales en orden de prioridad de clasificación.
// Un evento que menciona más de una actividad se asigna a la primera
// categoría cuya palabra clave aparece en su texto.
const (
	CategoryInspection = "Inspection"
	CategoryLightering = "Lightering"
	CategoryLoading    = "Loading"
	CategoryUnloading  = "Unloading"
	CategoryOther      = "Other"
)

var categoryOrder = []string{
	CategoryInspection,
	CategoryLightering,
	CategoryLoading,
	CategoryUnloading,
	CategoryOther,
}

// categoryKeywords vocabulario bilingüe por categoría. La coincidencia
// es por palabra o frase completa, de modo que "descarga" nunca cae en
// Loading por contener "carga".
var categoryKeywords = map[string][]string{
	CategoryInspection: {
		"inspection", "inspección", "inspeccion", "survey", "sampling",
		"muestreo", "muestras", "samples", "gauging", "medición", "medicion",
		"ullage", "sounding",
	},
	CategoryLightering: {
		"lightering", "alijo", "alije", "ship to ship", "sts",
		"trasbordo", "transbordo",
	},
	CategoryLoading: {
		"start pumping", "inicio de bombeo", "comienza bombeo",
		"loading", "carga", "cargando", "load", "embarque",
	},
	CategoryUnloading: {
		"stop pumping", "fin de bombeo", "termina bombeo",
		"unloading", "discharge", "discharging", "descarga", "descargando",
	},
}

// riskGroup grupo de palabras de riesgo con sus plantillas narrativas.
// Un evento cuyo texto contiene alguna palabra del grupo queda marcado
// como crítico; las recomendaciones y los riesgos se arman con la
// plantilla de cada grupo que disparó.
type riskGroup struct {
	label          string
	keywords       []string
	recommendation string
	risk           string
}

var riskGroups = []riskGroup{
	{
		label:          "demora",
		keywords:       []string{"delay", "demora", "retraso"},
		recommendation: "Documentar la causa y la duración de cada demora registrada en la cronología.",
		risk:           "Las demoras registradas pueden extender la estadía del buque y generar sobrecostos de terminal.",
	},
	{
		label:          "parada",
		keywords:       []string{"stop", "stopped", "parada", "detenido", "suspend", "suspendido", "suspensión", "suspension"},
		recommendation: "Verificar que cada parada o suspensión tenga registrada su causa y su hora de reanudación.",
		risk:           "Las paradas de operación interrumpen el bombeo y comprometen la ventana operativa planificada.",
	},
	{
		label:          "abandono",
		keywords:       []string{"abandon", "abandono", "abandonado"},
		recommendation: "Escalar los eventos de abandono de operación al supervisor del terminal.",
		risk:           "Un abandono de operación deja la transferencia incompleta y exige revisión contractual.",
	},
}

// noTimelineText respuesta fija cuando el documento no aporta eventos
const noTimelineText = "No se encontró una cronología estructurada en el documento. " +
	"Revise que el archivo contenga una hoja de tiempo con columnas de evento, fecha y hora."

// categoryStats acumulado por categoría durante la clasificación
type categoryStats struct {
	count    int
	earliest time.Time
	latest   time.Time
	timed    int
}

// AnalyzeEvents produce el reporte de análisis básico. La salida es
// estrictamente determinista para las mismas entradas: la marca de
// tiempo de generación vive solo en los metadatos, nunca en las
// secciones narrativas.
func AnalyzeEvents(events []model.TimesheetEvent, notes map[string]model.OperationalNotes, filename string) *model.AnalysisReport {
	report := &model.AnalysisReport{
		Metadata: model.AnalysisMetadata{
			Filename:    filename,
			GeneratedAt: time.Now().UTC(),
			EventCount:  len(events),
		},
	}

	if len(events) == 0 {
		report.FullText = noTimelineText
		return report
	}

	stats := classify(events)
	flagged := flagCriticalEvents(events)
	fired := firedGroups(flagged)

	sections := map[string]string{
		model.SectionSummary:         buildSummary(events, notes, stats, filename),
		model.SectionAnalysis:        buildAnalysis(stats),
		model.SectionEvents:          buildCriticalEvents(flagged),
		model.SectionRecommendations: buildRecommendations(fired),
		model.SectionRisks:           buildRisks(fired),
	}
	report.Sections = sections

	parts := make([]string, 0, len(sections))
	for _, name := range []string{model.SectionSummary, model.SectionAnalysis, model.SectionEvents, model.SectionRecommendations, model.SectionRisks} {
		parts = append(parts, sections[name])
	}
	report.FullText = strings.Join(parts, "\n\n")

	return report
}

// Classify exporta la categoría de un evento individual
func Classify(eventText string) string {
	padded := padWords(eventText)
	for _, category := range categoryOrder {
		if category == CategoryOther {
			continue
		}
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(padded, " "+keyword+" ") {
				return category
			}
		}
	}
	return CategoryOther
}

// padWords normaliza el texto para coincidencia de palabra completa
func padWords(text string) string {
	lower := strings.ToLower(text)
	lower = strings.Map(func(r rune) rune {
		switch r {
		case ',', '.', ';', ':', '(', ')', '/', '-':
			return ' '
		}
		return r
	}, lower)
	return " " + strings.Join(strings.Fields(lower), " ") + " "
}

func classify(events []model.TimesheetEvent) map[string]*categoryStats {
	stats := make(map[string]*categoryStats, len(categoryOrder))
	for _, category := range categoryOrder {
		stats[category] = &categoryStats{}
	}

	for _, ev := range events {
		st := stats[Classify(ev.Event)]
		st.count++

		ts, ok := eventTimestamp(ev)
		if !ok {
			continue
		}
		if st.timed == 0 || ts.Before(st.earliest) {
			st.earliest = ts
		}
		if st.timed == 0 || ts.After(st.latest) {
			st.latest = ts
		}
		st.timed++
	}

	return stats
}

// eventTimestamp combina fecha y hora del evento; sin fecha no hay
// instante utilizable para el cálculo de duración
func eventTimestamp(ev model.TimesheetEvent) (time.Time, bool) {
	if ev.Date == nil {
		return time.Time{}, false
	}
	layout := "2006-01-02"
	value := *ev.Date
	if ev.Time != nil {
		layout = "2006-01-02 15:04"
		value = *ev.Date + " " + *ev.Time
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func buildSummary(events []model.TimesheetEvent, notes map[string]model.OperationalNotes, stats map[string]*categoryStats, filename string) string {
	sheets := make(map[string]bool)
	for _, ev := range events {
		sheets[ev.Sheet] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "RESUMEN\n")
	fmt.Fprintf(&b, "Documento: %s\n", filename)
	fmt.Fprintf(&b, "Eventos registrados: %d en %d hoja(s) de tiempo.", len(events), len(sheets))

	if vessel := vesselFromNotes(notes); vessel != "" {
		fmt.Fprintf(&b, "\nBuque: %s.", vessel)
	}
	if first, last, ok := dateSpan(events); ok {
		if first == last {
			fmt.Fprintf(&b, "\nFecha de operaciones: %s.", first)
		} else {
			fmt.Fprintf(&b, "\nPeríodo de operaciones: %s a %s.", first, last)
		}
	}

	counts := make([]string, 0, len(categoryOrder))
	for _, category := range categoryOrder {
		if st := stats[category]; st.count > 0 {
			counts = append(counts, fmt.Sprintf("%s: %d", categoryLabel(category), st.count))
		}
	}
	fmt.Fprintf(&b, "\nEventos por categoría: %s.", strings.Join(counts, ", "))
	return b.String()
}

// vesselFromNotes primer buque no vacío en orden estable de hoja
func vesselFromNotes(notes map[string]model.OperationalNotes) string {
	names := make([]string, 0, len(notes))
	for name := range notes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if v := notes[name].SheetHeader.Vessel; v != "" {
			return v
		}
	}
	return ""
}

func dateSpan(events []model.TimesheetEvent) (first, last string, ok bool) {
	for _, ev := range events {
		if ev.Date == nil {
			continue
		}
		d := *ev.Date
		if !ok {
			first, last, ok = d, d, true
			continue
		}
		if d < first {
			first = d
		}
		if d > last {
			last = d
		}
	}
	return first, last, ok
}

func buildAnalysis(stats map[string]*categoryStats) string {
	var b strings.Builder
	b.WriteString("ANÁLISIS POR CATEGORÍA")
	for _, category := range categoryOrder {
		st := stats[category]
		if st.count == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s: %d evento(s)", categoryLabel(category), st.count)
		if st.timed >= 2 {
			elapsed := st.latest.Sub(st.earliest)
			fmt.Fprintf(&b, ", duración observada %s (de %s a %s)",
				formatElapsed(elapsed),
				st.earliest.Format("2006-01-02 15:04"),
				st.latest.Format("2006-01-02 15:04"))
		}
		b.WriteString(".")
	}
	return b.String()
}

// categoryLabel nombre en español para la narrativa
func categoryLabel(category string) string {
	switch category {
	case CategoryInspection:
		return "Inspección"
	case CategoryLightering:
		return "Alijo"
	case CategoryLoading:
		return "Carga"
	case CategoryUnloading:
		return "Descarga"
	}
	return "Otros"
}

func formatElapsed(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours == 0 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh %02dmin", hours, minutes)
}

// criticalEvent evento cuyo texto disparó un grupo de riesgo
type criticalEvent struct {
	event model.TimesheetEvent
	group int
}

// flagCriticalEvents marca, en orden de entrada, los eventos cuyo texto
// contiene alguna palabra de riesgo. Cada evento se asigna al primer
// grupo que dispara.
func flagCriticalEvents(events []model.TimesheetEvent) []criticalEvent {
	var flagged []criticalEvent
	for _, ev := range events {
		padded := padWords(ev.Event)
		for i, group := range riskGroups {
			if containsAny(padded, group.keywords) {
				flagged = append(flagged, criticalEvent{event: ev, group: i})
				break
			}
		}
	}
	return flagged
}

func containsAny(padded string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(padded, " "+keyword+" ") {
			return true
		}
	}
	return false
}

func firedGroups(flagged []criticalEvent) []bool {
	fired := make([]bool, len(riskGroups))
	for _, c := range flagged {
		fired[c.group] = true
	}
	return fired
}

func buildCriticalEvents(flagged []criticalEvent) string {
	var b strings.Builder
	b.WriteString("EVENTOS CRÍTICOS")
	if len(flagged) == 0 {
		b.WriteString("\n- Ningún evento disparó las palabras de riesgo vigiladas.")
		return b.String()
	}
	for _, c := range flagged {
		ev := c.event
		b.WriteString("\n- ")
		if ev.Date != nil {
			b.WriteString(*ev.Date)
			b.WriteString(" ")
		}
		if ev.Time != nil {
			b.WriteString(*ev.Time)
			b.WriteString(" ")
		}
		b.WriteString(ev.Event)
		fmt.Fprintf(&b, " [%s]", riskGroups[c.group].label)
	}
	return b.String()
}

func buildRecommendations(fired []bool) string {
	var b strings.Builder
	b.WriteString("RECOMENDACIONES")
	wrote := false
	for i, group := range riskGroups {
		if fired[i] {
			b.WriteString("\n- ")
			b.WriteString(group.recommendation)
			wrote = true
		}
	}
	if !wrote {
		b.WriteString("\n- La cronología no registra interrupciones; mantener el nivel de detalle del registro en las próximas operaciones.")
	}
	return b.String()
}

func buildRisks(fired []bool) string {
	var b strings.Builder
	b.WriteString("RIESGOS")
	wrote := false
	for i, group := range riskGroups {
		if fired[i] {
			b.WriteString("\n- ")
			b.WriteString(group.risk)
			wrote = true
		}
	}
	if !wrote {
		b.WriteString("\n- No se identificaron interrupciones ni desvíos en la cronología.")
	}
	return b.String()
}
