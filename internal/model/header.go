package model

// ReportHeader cabecera global del reporte de inspección.
// Todos los campos son opcionales de forma independiente; un campo ausente
// se omite en el JSON en lugar de serializarse como cadena vacía.
type ReportHeader struct {
	Vessel     string `json:"vessel,omitempty"`
	Terminal   string `json:"terminal,omitempty"`
	Location   string `json:"location,omitempty"`
	Product    string `json:"product,omitempty"`
	ReportDate string `json:"report_date,omitempty"`
	FileNumber string `json:"file_number,omitempty"`
	Inspector  string `json:"inspector,omitempty"`
	RevisedBy  string `json:"revised_by,omitempty"`
	ApprovedBy string `json:"approved_by,omitempty"`
}

// IsEmpty indica si ningún campo fue poblado
func (h ReportHeader) IsEmpty() bool {
	return h == ReportHeader{}
}

// Merge rellena los campos vacíos de h con los de other.
// Se usa para que la cabecera por hoja sobreescriba la global sin perder datos.
func (h ReportHeader) Merge(other ReportHeader) ReportHeader {
	if h.Vessel == "" {
		h.Vessel = other.Vessel
	}
	if h.Terminal == "" {
		h.Terminal = other.Terminal
	}
	if h.Location == "" {
		h.Location = other.Location
	}
	if h.Product == "" {
		h.Product = other.Product
	}
	if h.ReportDate == "" {
		h.ReportDate = other.ReportDate
	}
	if h.FileNumber == "" {
		h.FileNumber = other.FileNumber
	}
	if h.Inspector == "" {
		h.Inspector = other.Inspector
	}
	if h.RevisedBy == "" {
		h.RevisedBy = other.RevisedBy
	}
	if h.ApprovedBy == "" {
		h.ApprovedBy = other.ApprovedBy
	}
	return h
}
