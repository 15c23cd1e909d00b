package model

import "time"

// Nombres fijos de las secciones narrativas del análisis básico
const (
	SectionSummary         = "summary"
	SectionAnalysis        = "analysis"
	SectionEvents          = "events"
	SectionRecommendations = "recommendations"
	SectionRisks           = "risks"
)

// AnalysisMetadata metadatos del análisis
type AnalysisMetadata struct {
	Filename    string    `json:"filename"`
	GeneratedAt time.Time `json:"generated_at"`
	EventCount  int       `json:"event_count"`
}

// AnalysisReport reporte narrativo determinista producido por el analizador.
// Cuando no hay eventos estructurados Sections queda vacío y FullText explica
// la ausencia de cronología.
type AnalysisReport struct {
	Metadata AnalysisMetadata  `json:"metadata"`
	Sections map[string]string `json:"sections,omitempty"`
	FullText string            `json:"full_text,omitempty"`
}
