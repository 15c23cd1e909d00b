package extractor

// StructuralError ninguna hoja del documento califica como hoja de tiempo.
// Aborta las etapas de eventos y notas; la cabecera global puede extraerse
// igualmente.
type StructuralError struct {
	Filename string
}

func (e *StructuralError) Error() string {
	if e.Filename == "" {
		return "no timeline detected in this document"
	}
	return "no timeline detected in this document: " + e.Filename
}
