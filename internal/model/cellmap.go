package model

import (
	"encoding/json"
	"sort"
)

// CellMap mapa plano de un libro: hoja → dirección de celda → valor escalar.
// Conserva el orden de hojas del libro de origen, que es el orden de
// agrupamiento de los eventos entre hojas. Las celdas vacías nunca se
// almacenan; la densidad del mapa es proporcional al contenido real del
// documento.
type CellMap struct {
	order  []string
	sheets map[string]map[string]any
}

// NewCellMap crea un mapa de celdas vacío
func NewCellMap() *CellMap {
	return &CellMap{sheets: make(map[string]map[string]any)}
}

// AddSheet registra una hoja; la primera inserción de cada nombre fija su
// posición en el orden del libro
func (m *CellMap) AddSheet(name string, cells map[string]any) {
	if m.sheets == nil {
		m.sheets = make(map[string]map[string]any)
	}
	if _, ok := m.sheets[name]; !ok {
		m.order = append(m.order, name)
	}
	m.sheets[name] = cells
}

// Sheet celdas de una hoja, nil si la hoja no existe
func (m *CellMap) Sheet(name string) map[string]any {
	return m.sheets[name]
}

// SheetNames nombres de hoja en el orden del libro de origen
func (m *CellMap) SheetNames() []string {
	return append([]string(nil), m.order...)
}

// Len cantidad de hojas
func (m *CellMap) Len() int {
	return len(m.sheets)
}

// TotalCells cuenta todas las celdas registradas
func (m *CellMap) TotalCells() int {
	total := 0
	for _, cells := range m.sheets {
		total += len(cells)
	}
	return total
}

// MarshalJSON serializa el mapa hoja → celdas; el esquema del artefacto
// cellmap es el mapa plano, sin metadatos de orden
func (m *CellMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.sheets)
}

// UnmarshalJSON reconstruye el mapa desde un artefacto. El JSON no
// conserva el orden del libro, así que se recurre al orden alfabético.
func (m *CellMap) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &m.sheets); err != nil {
		return err
	}
	m.order = m.order[:0]
	for name := range m.sheets {
		m.order = append(m.order, name)
	}
	sort.Strings(m.order)
	return nil
}
