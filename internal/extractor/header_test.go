package extractor

import (
	"testing"

	"github.com/Chonees/TAURO-PROJECT/internal/model"
)

// singleSheet arma un CellMap de una sola hoja para las pruebas
func singleSheet(name string, cells map[string]any) *model.CellMap {
	cm := model.NewCellMap()
	cm.AddSheet(name, cells)
	return cm
}

func TestExtractHeader_ProbeOrder(t *testing.T) {
	t.Parallel()

	cm := singleSheet("Hoja1", map[string]any{
		// valor a la derecha
		"A1": "Vessel", "B1": "MT NEPTUNE",
		// valor dos columnas a la derecha, celda combinada de por medio
		"A2": "Terminal", "C2": "Puerto Miranda",
		// valor debajo
		"A4": "Inspector",
		"A5": "J. Pérez",
		// en línea
		"A7": "Product: Fuel Oil 380",
	})

	header := ExtractHeader(cm)
	if header.Vessel != "MT NEPTUNE" {
		t.Fatalf("Vessel = %q", header.Vessel)
	}
	if header.Terminal != "Puerto Miranda" {
		t.Fatalf("Terminal = %q", header.Terminal)
	}
	if header.Inspector != "J. Pérez" {
		t.Fatalf("Inspector = %q", header.Inspector)
	}
	if header.Product != "Fuel Oil 380" {
		t.Fatalf("Product = %q", header.Product)
	}
}

func TestExtractHeader_BilingualEquivalence(t *testing.T) {
	t.Parallel()

	english := singleSheet("Sheet1", map[string]any{
		"A1": "Approved by", "B1": "C. Gómez",
		"A2": "Location", "B2": "Amuay Bay",
	})
	spanish := singleSheet("Hoja1", map[string]any{
		"A1": "Aprobado por", "B1": "C. Gómez",
		"A2": "Ubicación", "B2": "Amuay Bay",
	})

	he := ExtractHeader(english)
	hs := ExtractHeader(spanish)
	if he != hs {
		t.Fatalf("bilingual headers differ: %+v vs %+v", he, hs)
	}
	if he.ApprovedBy != "C. Gómez" || he.Location != "Amuay Bay" {
		t.Fatalf("unexpected header: %+v", he)
	}
}

func TestExtractHeader_FirstMatchWins(t *testing.T) {
	t.Parallel()

	cm := singleSheet("Hoja1", map[string]any{
		"A1": "Vessel", "B1": "MT PRIMERO",
		"A9": "Buque", "B9": "MT SEGUNDO",
	})

	header := ExtractHeader(cm)
	if header.Vessel != "MT PRIMERO" {
		t.Fatalf("Vessel = %q, want MT PRIMERO", header.Vessel)
	}
}

func TestExtractHeader_LabelNeverTakenAsValue(t *testing.T) {
	t.Parallel()

	// la celda a la derecha de la etiqueta es otra etiqueta; el sondeo
	// debe saltarla y tomar el valor de abajo
	cm := singleSheet("Hoja1", map[string]any{
		"A1": "Vessel", "B1": "Terminal",
		"A2": "MT REAL",
	})

	header := ExtractHeader(cm)
	if header.Vessel != "MT REAL" {
		t.Fatalf("Vessel = %q, want MT REAL", header.Vessel)
	}
}

func TestExtractHeader_EmptyDocument(t *testing.T) {
	t.Parallel()

	header := ExtractHeader(singleSheet("Hoja1", map[string]any{"A1": "sin etiquetas"}))
	if !header.IsEmpty() {
		t.Fatalf("expected empty header, got %+v", header)
	}
}
