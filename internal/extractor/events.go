package extractor

import (
	"strings"

	"github.com/Chonees/TAURO-PROJECT/internal/model"
)

// ExtractEvents produce el TIME LOG completo del documento, agrupado por
// hoja y en el orden de fila de origen. Devuelve *StructuralError solo
// cuando ninguna hoja del documento califica como hoja de tiempo.
func ExtractEvents(cm *model.CellMap) ([]model.TimesheetEvent, error) {
	sheets := QualifyingSheets(cm)
	if len(sheets) == 0 {
		return nil, &StructuralError{}
	}

	events := make([]model.TimesheetEvent, 0, 64)
	for _, sheetName := range sheets {
		grid := newSheetGrid(cm.Sheet(sheetName))
		layouts := findTimesheetLayouts(grid)
		for i, layout := range layouts {
			// cada sección termina donde empieza la siguiente
			endRow := grid.maxRow
			if i+1 < len(layouts) {
				endRow = layouts[i+1].HeaderRow - 1
			}
			events = append(events, extractSectionEvents(grid, sheetName, layout, endRow)...)
		}
	}

	return events, nil
}

// extractSectionEvents recorre las filas de una sección debajo de su
// encabezado aplicando la regla de arrastre de fecha. La tabla termina
// en la primera fila sin texto en la columna de evento o en un
// encabezado de bloque de notas; los bloques General/Special Notes que
// el formato de origen coloca debajo del TIME LOG nunca se ingieren
// como eventos.
func extractSectionEvents(grid *sheetGrid, sheetName string, layout timesheetLayout, endRow int) []model.TimesheetEvent {
	events := make([]model.TimesheetEvent, 0, endRow-layout.HeaderRow)
	var lastDate *string

	for row := layout.HeaderRow + 1; row <= endRow; row++ {
		eventCell := cellString(grid.at(layout.EventCol, row))
		if eventCell == "" || isNotesHeading(eventCell) {
			break
		}

		date := ParseDate(grid.at(layout.DateCol, row))
		clock := ParseClock(grid.at(layout.TimeCol, row))
		text := rowEventText(grid, row, layout)

		if date != nil {
			lastDate = date
		} else if clock != nil && lastDate != nil {
			// regla de arrastre: la hora sin fecha hereda la última
			// fecha vista en la misma hoja
			date = lastDate
		}

		events = append(events, model.TimesheetEvent{
			Sheet:   sheetName,
			Event:   text,
			Date:    date,
			Time:    clock,
			Section: classifyLanguage(text),
			Row:     row,
		})
	}

	return events
}

// isNotesHeading detecta el inicio de un bloque de notas en la columna
// de evento
func isNotesHeading(text string) bool {
	normalized := normalizeLabel(text)
	for _, headings := range [][]string{generalNotesHeadings, specialNotesHeadings} {
		for _, heading := range headings {
			if strings.Contains(normalized, heading) {
				return true
			}
		}
	}
	return false
}

// rowEventText concatena todas las celdas descriptivas de la fila,
// excluyendo las columnas de fecha y hora, en orden de columna
func rowEventText(grid *sheetGrid, row int, layout timesheetLayout) string {
	parts := make([]string, 0, 4)
	for col := 1; col <= grid.maxCol; col++ {
		if col == layout.DateCol || col == layout.TimeCol {
			continue
		}
		s := cellString(grid.at(col, row))
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

// classifyLanguage asigna el section tag contando disparadores por idioma;
// el empate resuelve a inglés
func classifyLanguage(text string) model.SectionTag {
	lower := strings.ToLower(text)
	lower = strings.Map(func(r rune) rune {
		switch r {
		case ',', '.', ';', '(', ')', '/', '-':
			return ' '
		}
		return r
	}, lower)
	lower = " " + lower + " "

	english := countTriggers(lower, englishTriggers)
	spanish := countTriggers(lower, spanishTriggers)

	if spanish > english {
		return model.SectionSpanish
	}
	return model.SectionEnglish
}

// countTriggers cuenta disparadores presentes como palabra completa
func countTriggers(padded string, triggers []string) int {
	count := 0
	for _, trigger := range triggers {
		if strings.Contains(padded, " "+trigger+" ") {
			count++
		}
	}
	return count
}
