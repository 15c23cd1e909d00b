package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Chonees/TAURO-PROJECT/internal/model"
)

// Alcance de búsqueda debajo de un encabezado de bloque de notas
const (
	generalNotesScanRows = 15
	specialNotesScanRows = 10
)

// ExtractNotes recupera las notas operacionales de cada hoja de tiempo.
// Usa el mismo predicado de calificación que el extractor de eventos.
// Una hoja sin bloques de notas produce notas con todos los campos nulos,
// que es salida válida.
func ExtractNotes(cm *model.CellMap) (map[string]model.OperationalNotes, error) {
	sheets := QualifyingSheets(cm)
	if len(sheets) == 0 {
		return nil, &StructuralError{}
	}

	notes := make(map[string]model.OperationalNotes, len(sheets))
	for _, sheetName := range sheets {
		notes[sheetName] = extractSheetNotes(newSheetGrid(cm.Sheet(sheetName)))
	}
	return notes, nil
}

func extractSheetNotes(grid *sheetGrid) model.OperationalNotes {
	var n model.OperationalNotes

	generalRow := findHeadingRow(grid, generalNotesHeadings)
	specialRow := findHeadingRow(grid, specialNotesHeadings)

	// la cabecera por hoja vive en la región previa al primer bloque de notas
	headerLimit := grid.maxRow
	if generalRow > 0 && generalRow-1 < headerLimit {
		headerLimit = generalRow - 1
	}
	if specialRow > 0 && specialRow-1 < headerLimit {
		headerLimit = specialRow - 1
	}
	n.SheetHeader = extractHeaderFromGrid(grid, headerLimit)

	if generalRow > 0 {
		n.PumpingTime, n.PumpingTimeText = extractPumpingField(grid, generalRow, pumpingTimeLabels, pumpingTimeUnits)
		n.PumpingRate, n.PumpingRateText = extractPumpingField(grid, generalRow, pumpingRateLabels, pumpingRateUnits)
	}

	if specialRow > 0 {
		n.WeatherConditions = extractConditionText(grid, specialRow, weatherLabels, weatherConditionWords)
		n.SeaConditions = extractConditionText(grid, specialRow, seaLabels, seaConditionWords)
	}

	n.LastCargo = probeLabeledText(grid, lastCargoLabels)
	n.VesselExperienceFactor = probeLabeledText(grid, vefLabels)

	return n
}

// findHeadingRow primera fila cuyo texto contiene uno de los encabezados
func findHeadingRow(grid *sheetGrid, headings []string) int {
	best := 0
	for coord, value := range grid.cells {
		s, ok := value.(string)
		if !ok {
			continue
		}
		normalized := normalizeLabel(s)
		for _, heading := range headings {
			if strings.Contains(normalized, heading) {
				if best == 0 || coord.Row < best {
					best = coord.Row
				}
			}
		}
	}
	return best
}

// notesProbeOffsets dentro de los bloques de notas el valor suele estar a
// la derecha o directamente debajo de la etiqueta
var notesProbeOffsets = []probeOffset{
	{DCol: 1, DRow: 0},
	{DCol: 2, DRow: 0},
	{DCol: 0, DRow: 1},
}

// extractPumpingField busca la etiqueta dentro del bloque General Notes y
// normaliza el valor a la unidad canónica; las unidades desconocidas se
// conservan como texto libre
func extractPumpingField(grid *sheetGrid, headingRow int, labels []string, units map[string]float64) (*float64, string) {
	endRow := headingRow + generalNotesScanRows
	for _, coord := range grid.sortedCoords() {
		if coord.Row < headingRow || coord.Row > endRow {
			continue
		}
		raw, ok := grid.cells[coord].(string)
		if !ok {
			continue
		}
		normalized := normalizeLabel(raw)

		labelMatch := ""
		for _, label := range labels {
			if normalized == label || strings.HasPrefix(normalized, label+" (") || strings.HasPrefix(normalized, label+"(") {
				labelMatch = label
				break
			}
		}
		if labelMatch == "" {
			// forma en línea "Pumping Rate: 120 m³/h"
			for _, label := range labels {
				if inline := inlineLabelValue(raw, label); inline != "" {
					return normalizeMeasure(inline, labelUnitHint(normalized, units), units)
				}
			}
			continue
		}

		value := probeValue(grid, coord, notesProbeOffsets)
		if value == "" {
			continue
		}
		return normalizeMeasure(value, labelUnitHint(normalized, units), units)
	}
	return nil, ""
}

var parenUnit = regexp.MustCompile(`\(([^)]+)\)`)

// labelUnitHint unidad declarada entre paréntesis en la propia etiqueta,
// por ejemplo "Pumping Rate (m³/h)"
func labelUnitHint(normalizedLabel string, units map[string]float64) string {
	m := parenUnit.FindStringSubmatch(normalizedLabel)
	if m == nil {
		return ""
	}
	unit := strings.TrimSpace(m[1])
	if _, ok := units[unit]; ok {
		return unit
	}
	return ""
}

var measurePattern = regexp.MustCompile(`^\s*(-?\d+(?:[.,]\d+)?)\s*(.*)$`)

// normalizeMeasure convierte "valor unidad" a la unidad canónica.
// Con unidad ausente se asume la canónica; con unidad no reconocida el
// valor crudo se devuelve como texto en lugar de convertirse mal.
func normalizeMeasure(value, unitHint string, units map[string]float64) (*float64, string) {
	m := measurePattern.FindStringSubmatch(value)
	if m == nil {
		return nil, value
	}

	number, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return nil, value
	}

	unit := strings.ToLower(strings.TrimSpace(m[2]))
	if unit == "" {
		unit = unitHint
	}
	if unit == "" {
		return &number, ""
	}

	factor, ok := units[unit]
	if !ok {
		return nil, value
	}
	converted := number * factor
	return &converted, ""
}

// extractConditionText captura texto de condiciones dentro del bloque
// Special Notes: primero por etiqueta y sondeo, luego por las palabras de
// condición marcadas con "X" del formato original. El texto se conserva
// tal cual, sin interpretación de palabras clave.
func extractConditionText(grid *sheetGrid, headingRow int, labels []string, conditionWords []string) *string {
	endRow := headingRow + specialNotesScanRows
	collected := make([]string, 0, 2)
	seen := make(map[string]bool)

	for _, coord := range grid.sortedCoords() {
		if coord.Row < headingRow || coord.Row > endRow {
			continue
		}
		raw, ok := grid.cells[coord].(string)
		if !ok {
			continue
		}
		normalized := normalizeLabel(raw)

		if matchesAnyLabel(normalized, labels) {
			if value := probeValue(grid, coord, notesProbeOffsets); value != "" && !seen[value] {
				collected = append(collected, value)
				seen[value] = true
			}
			continue
		}
		for _, label := range labels {
			if inline := inlineLabelValue(raw, label); inline != "" && !seen[inline] {
				collected = append(collected, inline)
				seen[inline] = true
			}
		}

		// casilla marcada: "Rain   X"
		if strings.Contains(raw, "X") || strings.Contains(raw, "x") {
			for _, word := range conditionWords {
				if strings.Contains(normalized, word) && !seen[word] {
					collected = append(collected, word)
					seen[word] = true
				}
			}
		}
	}

	if len(collected) == 0 {
		return nil
	}
	joined := strings.Join(collected, "; ")
	return &joined
}

// probeLabeledText búsqueda de etiqueta y sondeo en toda la hoja
func probeLabeledText(grid *sheetGrid, labels []string) *string {
	for _, coord := range grid.sortedCoords() {
		raw, ok := grid.cells[coord].(string)
		if !ok {
			continue
		}
		normalized := normalizeLabel(raw)

		if matchesAnyLabel(normalized, labels) {
			if value := probeValue(grid, coord, notesProbeOffsets); value != "" {
				return &value
			}
			continue
		}
		for _, label := range labels {
			if inline := inlineLabelValue(raw, label); inline != "" {
				return &inline
			}
		}
	}
	return nil
}
