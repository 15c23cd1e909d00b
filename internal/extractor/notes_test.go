package extractor

import (
	"errors"
	"math"
	"testing"
)

func TestExtractNotes_GeneralBlock(t *testing.T) {
	t.Parallel()

	cm := singleSheet("TIME LOG", map[string]any{
		"A1": "TIME LOG",
		"A2": "Vessel", "B2": "MT ORINOCO",
		"A4": "General Notes",
		"A5": "Pumping Time", "B5": "90 min",
		"A6": "Pumping Rate", "B6": "120 m3/h",
		"A12": "Last Cargo", "B12": "Diesel",
		"A13": "VEF", "B13": "0.9987",
	})

	notes, err := ExtractNotes(cm)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	n, ok := notes["TIME LOG"]
	if !ok {
		t.Fatalf("sheet notes missing")
	}

	if n.SheetHeader.Vessel != "MT ORINOCO" {
		t.Fatalf("sheet header vessel = %q", n.SheetHeader.Vessel)
	}
	if n.PumpingTime == nil || math.Abs(*n.PumpingTime-1.5) > 1e-9 {
		t.Fatalf("pumping time = %v, want 1.5 h", n.PumpingTime)
	}
	if n.PumpingRate == nil || math.Abs(*n.PumpingRate-120) > 1e-9 {
		t.Fatalf("pumping rate = %v, want 120 m³/h", n.PumpingRate)
	}
	if n.LastCargo == nil || *n.LastCargo != "Diesel" {
		t.Fatalf("last cargo = %v", n.LastCargo)
	}
	if n.VesselExperienceFactor == nil || *n.VesselExperienceFactor != "0.9987" {
		t.Fatalf("vef = %v", n.VesselExperienceFactor)
	}
}

func TestExtractNotes_BarrelConversion(t *testing.T) {
	t.Parallel()

	cm := singleSheet("Hoja1", map[string]any{
		"A1": "Hoja de Tiempo",
		"A3": "Notas Generales",
		"A4": "Tasa de Bombeo", "B4": "1000 bbl/h",
	})

	notes, err := ExtractNotes(cm)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	n := notes["Hoja1"]
	if n.PumpingRate == nil || math.Abs(*n.PumpingRate-158.987) > 1e-6 {
		t.Fatalf("pumping rate = %v, want 158.987", n.PumpingRate)
	}
	if n.PumpingRateText != "" {
		t.Fatalf("rate text = %q, want empty", n.PumpingRateText)
	}
}

func TestExtractNotes_UnknownUnitPreservedAsText(t *testing.T) {
	t.Parallel()

	cm := singleSheet("Hoja1", map[string]any{
		"A1": "TIME LOG",
		"A3": "General Notes",
		"A4": "Pumping Time", "B4": "2 turnos",
	})

	notes, err := ExtractNotes(cm)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	n := notes["Hoja1"]
	if n.PumpingTime != nil {
		t.Fatalf("pumping time = %v, want nil", *n.PumpingTime)
	}
	if n.PumpingTimeText != "2 turnos" {
		t.Fatalf("pumping time text = %q", n.PumpingTimeText)
	}
}

func TestExtractNotes_UnitInLabel(t *testing.T) {
	t.Parallel()

	cm := singleSheet("Hoja1", map[string]any{
		"A1": "TIME LOG",
		"A3": "General Notes",
		"A4": "Pumping Rate (m³/h)", "B4": "95",
	})

	notes, err := ExtractNotes(cm)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	n := notes["Hoja1"]
	if n.PumpingRate == nil || math.Abs(*n.PumpingRate-95) > 1e-9 {
		t.Fatalf("pumping rate = %v, want 95", n.PumpingRate)
	}
}

func TestExtractNotes_SpecialBlockConditions(t *testing.T) {
	t.Parallel()

	cm := singleSheet("Hoja1", map[string]any{
		"A1": "TIME LOG",
		"A6": "Special Notes",
		"A7": "Weather", "B7": "Clear sky",
		"A8": "Sea conditions", "B8": "Calm",
	})

	notes, err := ExtractNotes(cm)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	n := notes["Hoja1"]
	if n.WeatherConditions == nil || *n.WeatherConditions != "Clear sky" {
		t.Fatalf("weather = %v", n.WeatherConditions)
	}
	if n.SeaConditions == nil || *n.SeaConditions != "Calm" {
		t.Fatalf("sea = %v", n.SeaConditions)
	}
}

func TestExtractNotes_MarkedConditionWords(t *testing.T) {
	t.Parallel()

	cm := singleSheet("Hoja1", map[string]any{
		"A1": "TIME LOG",
		"A6": "Notas Especiales",
		"A7": "Lluvia   X",
		"B8": "Agitado X",
	})

	notes, err := ExtractNotes(cm)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	n := notes["Hoja1"]
	if n.WeatherConditions == nil || *n.WeatherConditions != "lluvia" {
		t.Fatalf("weather = %v", n.WeatherConditions)
	}
	if n.SeaConditions == nil || *n.SeaConditions != "agitado" {
		t.Fatalf("sea = %v", n.SeaConditions)
	}
}

func TestExtractNotes_SheetWithoutNotes(t *testing.T) {
	t.Parallel()

	cm := singleSheet("Hoja1", map[string]any{
		"A1": "Date", "B1": "Time", "C1": "Event",
		"A2": "01/05/2024", "B2": "0600", "C2": "All fast",
	})

	notes, err := ExtractNotes(cm)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	n := notes["Hoja1"]
	if n.PumpingTime != nil || n.WeatherConditions != nil || n.LastCargo != nil {
		t.Fatalf("expected empty notes, got %+v", n)
	}
}

func TestExtractNotes_NoTimesheet(t *testing.T) {
	t.Parallel()

	_, err := ExtractNotes(singleSheet("Resumen", map[string]any{"A1": "totales"}))
	var structural *StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("error = %T, want *StructuralError", err)
	}
}
