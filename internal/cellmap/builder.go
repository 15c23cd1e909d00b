package cellmap

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Chonees/TAURO-PROJECT/internal/model"
)

// Extensiones de contenedor soportadas; se distingue por extensión,
// nunca por inspección de contenido.
var supportedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

// Builder construye el CellMap de un libro de Excel.
// Los valores de fórmula se leen del último resultado calculado que guardó
// el documento; nunca se reevalúan.
type Builder struct {
	file *excelize.File
	path string
}

// Open abre un documento por ruta validando la extensión
func Open(path string) (*Builder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return nil, &DocumentFormatError{Path: path, Err: errUnsupported(ext)}
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &DocumentFormatError{Path: path, Err: err}
	}

	return &Builder{file: file, path: path}, nil
}

// OpenReader abre un documento desde un reader; name se usa para validar
// la extensión y para los mensajes de error
func OpenReader(r io.Reader, name string) (*Builder, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !supportedExtensions[ext] {
		return nil, &DocumentFormatError{Path: name, Err: errUnsupported(ext)}
	}

	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &DocumentFormatError{Path: name, Err: err}
	}

	return &Builder{file: file, path: name}, nil
}

type unsupportedExtError string

func (e unsupportedExtError) Error() string {
	return "unsupported file extension: " + string(e)
}

func errUnsupported(ext string) error {
	if ext == "" {
		ext = "(none)"
	}
	return unsupportedExtError(ext)
}

// Build recorre todas las celdas pobladas de todas las hojas en el orden
// del libro. Las celdas vacías se omiten; los números con formato de
// fecha se convierten a fecha calendario.
func (b *Builder) Build() (*model.CellMap, error) {
	cm := model.NewCellMap()

	for _, sheetName := range b.file.GetSheetList() {
		rows, err := b.file.GetRows(sheetName, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, &DocumentFormatError{Path: b.path, Err: err}
		}

		cells := make(map[string]any)
		for rowIdx, row := range rows {
			for colIdx, raw := range row {
				if raw == "" {
					continue
				}
				addr, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if err != nil {
					continue
				}
				cells[addr] = b.coerceValue(sheetName, addr, raw)
			}
		}

		cm.AddSheet(sheetName, cells)
	}

	return cm, nil
}

// coerceValue aplica la coerción consciente de formato: seriales de fecha a
// fecha calendario, fracciones de día a hora, numéricos a float64
func (b *Builder) coerceValue(sheet, addr, raw string) any {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}

	if b.isDateStyled(sheet, addr) {
		if serial < 1 {
			// fracción de día sin parte de fecha
			t, err := excelize.ExcelDateToTime(serial, false)
			if err != nil {
				return serial
			}
			return t.Format("15:04")
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return serial
		}
		return t.Format("2006-01-02 15:04:05")
	}

	return serial
}

// isDateStyled consulta el formato numérico de la celda
func (b *Builder) isDateStyled(sheet, addr string) bool {
	styleID, err := b.file.GetCellStyle(sheet, addr)
	if err != nil {
		return false
	}
	style, err := b.file.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}

	if isBuiltinDateFormat(style.NumFmt) {
		return true
	}
	if style.CustomNumFmt != nil {
		return isCustomDateFormat(*style.CustomNumFmt)
	}
	return false
}

// isBuiltinDateFormat formatos de fecha/hora predefinidos de OOXML
func isBuiltinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// isCustomDateFormat heurística para formatos personalizados: contiene
// tokens de fecha/hora y ningún token de moneda o porcentaje
func isCustomDateFormat(format string) bool {
	f := strings.ToLower(format)
	// descartar secciones literales entre comillas
	if i := strings.IndexByte(f, '"'); i >= 0 {
		parts := strings.Split(f, "\"")
		kept := make([]string, 0, len(parts))
		for i, p := range parts {
			if i%2 == 0 {
				kept = append(kept, p)
			}
		}
		f = strings.Join(kept, "")
	}
	if strings.ContainsAny(f, "#?%$€") {
		return false
	}
	return strings.ContainsAny(f, "ymdhs") || strings.Contains(f, "am/pm")
}

// Close cierra el libro
func (b *Builder) Close() error {
	if b.file != nil {
		return b.file.Close()
	}
	return nil
}

// BuildFromFile conveniencia: abre, construye y cierra
func BuildFromFile(path string) (*model.CellMap, error) {
	b, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer b.Close()
	return b.Build()
}
