package extractor

import (
	"sort"
	"strings"

	"github.com/Chonees/TAURO-PROJECT/internal/model"
)

// timesheetLayout una sección de TIME LOG detectada dentro de una hoja:
// fila de encabezado y columnas de evento, fecha y hora
type timesheetLayout struct {
	HeaderRow int
	EventCol  int
	DateCol   int
	TimeCol   int
}

// findTimesheetLayouts localiza todas las filas de encabezado con
// etiquetas reconocibles de Evento/Fecha/Hora en cualquiera de los dos
// idiomas, ordenadas por fila
func findTimesheetLayouts(grid *sheetGrid) []timesheetLayout {
	type rowLabels struct {
		eventCol int
		dateCol  int
		timeCol  int
	}
	byRow := make(map[int]*rowLabels)

	for coord, value := range grid.cells {
		s, ok := value.(string)
		if !ok {
			continue
		}
		normalized := normalizeLabel(s)
		if normalized == "" {
			continue
		}

		labels := byRow[coord.Row]
		if labels == nil {
			labels = &rowLabels{eventCol: -1, dateCol: -1, timeCol: -1}
			byRow[coord.Row] = labels
		}

		switch {
		case matchesAnyLabel(normalized, eventColumnLabels):
			if labels.eventCol < 0 || coord.Col < labels.eventCol {
				labels.eventCol = coord.Col
			}
		case matchesAnyLabel(normalized, dateColumnLabels):
			if labels.dateCol < 0 || coord.Col < labels.dateCol {
				labels.dateCol = coord.Col
			}
		case matchesAnyLabel(normalized, timeColumnLabels):
			if labels.timeCol < 0 || coord.Col < labels.timeCol {
				labels.timeCol = coord.Col
			}
		}
	}

	layouts := make([]timesheetLayout, 0, 2)
	for row, labels := range byRow {
		if labels.eventCol < 0 || labels.dateCol < 0 || labels.timeCol < 0 {
			continue
		}
		layouts = append(layouts, timesheetLayout{
			HeaderRow: row,
			EventCol:  labels.eventCol,
			DateCol:   labels.dateCol,
			TimeCol:   labels.timeCol,
		})
	}
	sort.Slice(layouts, func(i, j int) bool { return layouts[i].HeaderRow < layouts[j].HeaderRow })
	return layouts
}

// hasTimeLogHeading busca un encabezado del vocabulario "time log"
func hasTimeLogHeading(grid *sheetGrid) bool {
	for _, value := range grid.cells {
		s, ok := value.(string)
		if !ok {
			continue
		}
		normalized := normalizeLabel(s)
		for _, heading := range timeLogHeadings {
			if normalized == heading || strings.Contains(normalized, heading) {
				return true
			}
		}
	}
	return false
}

// IsTimesheet predicado compartido de calificación de hoja: encabezado
// "time log" o fila de columnas Fecha/Hora/Evento reconocible. Eventos y
// notas usan exactamente este mismo criterio para que nunca diverjan los
// conjuntos de hojas entre ambas etapas.
func IsTimesheet(cells map[string]any) bool {
	grid := newSheetGrid(cells)
	if hasTimeLogHeading(grid) {
		return true
	}
	return len(findTimesheetLayouts(grid)) > 0
}

// QualifyingSheets hojas de tiempo del documento en el orden del libro
func QualifyingSheets(cm *model.CellMap) []string {
	qualified := make([]string, 0, cm.Len())
	for _, name := range cm.SheetNames() {
		if IsTimesheet(cm.Sheet(name)) {
			qualified = append(qualified, name)
		}
	}
	return qualified
}
