package model

// OperationalNotes notas operacionales de una hoja de tiempo.
// pumping_time se normaliza a horas y pumping_rate a m³/h; cuando la unidad
// no se reconoce el valor crudo se conserva en el campo *_text en lugar de
// convertirse mal en silencio.
type OperationalNotes struct {
	SheetHeader            ReportHeader `json:"sheet_header"`
	PumpingTime            *float64     `json:"pumping_time"`
	PumpingTimeText        string       `json:"pumping_time_text,omitempty"`
	PumpingRate            *float64     `json:"pumping_rate"`
	PumpingRateText        string       `json:"pumping_rate_text,omitempty"`
	WeatherConditions      *string      `json:"weather_conditions"`
	SeaConditions          *string      `json:"sea_conditions"`
	LastCargo              *string      `json:"last_cargo"`
	VesselExperienceFactor *string      `json:"vessel_experience_factor"`
}

// IsEmpty indica si la hoja no aportó ninguna nota
func (n OperationalNotes) IsEmpty() bool {
	return n.SheetHeader.IsEmpty() &&
		n.PumpingTime == nil && n.PumpingTimeText == "" &&
		n.PumpingRate == nil && n.PumpingRateText == "" &&
		n.WeatherConditions == nil && n.SeaConditions == nil &&
		n.LastCargo == nil && n.VesselExperienceFactor == nil
}
