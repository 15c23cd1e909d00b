package model

// SectionTag idioma dominante del texto de un evento
type SectionTag string

const (
	SectionEnglish SectionTag = "english"
	SectionSpanish SectionTag = "spanish"
)

// TimesheetEvent un evento del TIME LOG.
// Los nombres JSON en mayúscula vienen del formato de artefacto histórico
// (`*_events.json`) y los consumidores externos dependen de ellos.
type TimesheetEvent struct {
	Sheet   string     `json:"Sheet"`
	Event   string     `json:"Event"`
	Date    *string    `json:"Date"` // YYYY-MM-DD, null si no se pudo interpretar
	Time    *string    `json:"Time"` // HH:MM, null si no se pudo interpretar
	Section SectionTag `json:"Section"`
	Row     int        `json:"Row"`
}
