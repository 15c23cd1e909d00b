package extractor

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// cellCoord coordenada numérica de una celda dentro de una hoja
type cellCoord struct {
	Col int
	Row int
}

// splitCellRef divide "C14" en coordenadas (columna=3, fila=14)
func splitCellRef(ref string) (cellCoord, bool) {
	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		return cellCoord{}, false
	}
	return cellCoord{Col: col, Row: row}, true
}

// sheetGrid vista indexada por coordenadas de las celdas de una hoja.
// El CellMap es un mapa plano; los extractores necesitan recorrerlo por
// filas y columnas en orden estable.
type sheetGrid struct {
	cells  map[cellCoord]any
	maxRow int
	maxCol int
}

func newSheetGrid(cells map[string]any) *sheetGrid {
	g := &sheetGrid{cells: make(map[cellCoord]any, len(cells))}
	for ref, value := range cells {
		coord, ok := splitCellRef(ref)
		if !ok {
			continue
		}
		g.cells[coord] = value
		if coord.Row > g.maxRow {
			g.maxRow = coord.Row
		}
		if coord.Col > g.maxCol {
			g.maxCol = coord.Col
		}
	}
	return g
}

// at devuelve el valor de una coordenada, nil si la celda está vacía
func (g *sheetGrid) at(col, row int) any {
	return g.cells[cellCoord{Col: col, Row: row}]
}

// sortedCoords coordenadas en orden (fila, columna) ascendente
func (g *sheetGrid) sortedCoords() []cellCoord {
	coords := make([]cellCoord, 0, len(g.cells))
	for c := range g.cells {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Row != coords[j].Row {
			return coords[i].Row < coords[j].Row
		}
		return coords[i].Col < coords[j].Col
	})
	return coords
}

var spaceRun = regexp.MustCompile(`\s+`)

// cellString representa cualquier valor escalar del CellMap como texto
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}

// normalizeLabel prepara un valor de celda para comparación de etiquetas:
// minúsculas, espacios colapsados, sin dos puntos ni punto final
func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = spaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSuffix(s, ":")
	s = strings.TrimSuffix(s, ".")
	return strings.TrimSpace(s)
}
