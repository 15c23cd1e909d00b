package cellmap

import "fmt"

// DocumentFormatError el contenedor no se pudo abrir o una hoja es ilegible.
// Es fatal: sin mapa de celdas ninguna otra etapa puede ejecutarse.
type DocumentFormatError struct {
	Path string
	Err  error
}

func (e *DocumentFormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("document could not be read: %s", e.Path)
	}
	return fmt.Sprintf("document could not be read: %s: %v", e.Path, e.Err)
}

func (e *DocumentFormatError) Unwrap() error {
	return e.Err
}
