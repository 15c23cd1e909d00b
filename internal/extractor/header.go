package extractor

import (
	"strings"

	"github.com/Chonees/TAURO-PROJECT/internal/model"
)

// ExtractHeader recupera la cabecera global del reporte desde el CellMap.
// Recorre las hojas en el orden del libro; la primera coincidencia de
// cada campo gana. Una cabecera totalmente vacía es salida válida.
func ExtractHeader(cm *model.CellMap) model.ReportHeader {
	var header model.ReportHeader
	for _, sheetName := range cm.SheetNames() {
		grid := newSheetGrid(cm.Sheet(sheetName))
		header = header.Merge(extractHeaderFromGrid(grid, grid.maxRow))
	}
	return header
}

// extractHeaderFromGrid aplica la tabla de etiquetas bilingüe sobre las
// filas [1, rowLimit]. Para cada celda-etiqueta se sondea la lista
// ordenada de desplazamientos y se toma el primer valor no vacío; las
// celdas "Etiqueta: valor" en línea se aceptan directamente.
func extractHeaderFromGrid(grid *sheetGrid, rowLimit int) model.ReportHeader {
	var header model.ReportHeader

	for _, coord := range grid.sortedCoords() {
		if coord.Row > rowLimit {
			break
		}
		raw, ok := grid.cells[coord].(string)
		if !ok {
			continue
		}
		normalized := normalizeLabel(raw)
		if normalized == "" {
			continue
		}

		for _, entry := range headerLabelTable {
			if headerFieldValue(&header, entry.Field) != "" {
				continue
			}
			for _, label := range entry.Labels {
				if normalized == label {
					if value := probeValue(grid, coord, headerProbeOffsets); value != "" {
						setHeaderField(&header, entry.Field, value)
					}
					break
				}
				if inline := inlineLabelValue(raw, label); inline != "" {
					setHeaderField(&header, entry.Field, inline)
					break
				}
			}
		}
	}

	return header
}

// inlineLabelValue extrae el valor de celdas con formato "Etiqueta: valor"
func inlineLabelValue(raw, label string) string {
	trimmed := strings.TrimSpace(raw)
	i := strings.IndexByte(trimmed, ':')
	if i <= 0 {
		return ""
	}
	if normalizeLabel(trimmed[:i]) != label {
		return ""
	}
	return strings.TrimSpace(trimmed[i+1:])
}

// probeValue prueba los desplazamientos en orden y devuelve el primer
// valor utilizable; los valores que son a su vez etiquetas se descartan
func probeValue(grid *sheetGrid, from cellCoord, offsets []probeOffset) string {
	for _, offset := range offsets {
		v := grid.at(from.Col+offset.DCol, from.Row+offset.DRow)
		if v == nil {
			continue
		}
		s := cellString(v)
		if s == "" {
			continue
		}
		if reservedProbeWords[normalizeLabel(s)] {
			continue
		}
		return s
	}
	return ""
}

func headerFieldValue(h *model.ReportHeader, field string) string {
	switch field {
	case fieldVessel:
		return h.Vessel
	case fieldTerminal:
		return h.Terminal
	case fieldLocation:
		return h.Location
	case fieldProduct:
		return h.Product
	case fieldReportDate:
		return h.ReportDate
	case fieldFileNumber:
		return h.FileNumber
	case fieldInspector:
		return h.Inspector
	case fieldRevisedBy:
		return h.RevisedBy
	case fieldApprovedBy:
		return h.ApprovedBy
	}
	return ""
}

func setHeaderField(h *model.ReportHeader, field, value string) {
	switch field {
	case fieldVessel:
		h.Vessel = value
	case fieldTerminal:
		h.Terminal = value
	case fieldLocation:
		h.Location = value
	case fieldProduct:
		h.Product = value
	case fieldReportDate:
		h.ReportDate = value
	case fieldFileNumber:
		h.FileNumber = value
	case fieldInspector:
		h.Inspector = value
	case fieldRevisedBy:
		h.RevisedBy = value
	case fieldApprovedBy:
		h.ApprovedBy = value
	}
}
