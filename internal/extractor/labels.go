package extractor

// Las tablas de este archivo son el vocabulario bilingüe completo del
// extractor. Agregar un idioma o una etiqueta nueva es agregar una entrada;
// la lógica de extracción no cambia.

// Campos canónicos de cabecera
const (
	fieldVessel     = "vessel"
	fieldTerminal   = "terminal"
	fieldLocation   = "location"
	fieldProduct    = "product"
	fieldReportDate = "report_date"
	fieldFileNumber = "file_number"
	fieldInspector  = "inspector"
	fieldRevisedBy  = "revised_by"
	fieldApprovedBy = "approved_by"
)

// headerLabelEntry un campo canónico con sus etiquetas reconocidas
type headerLabelEntry struct {
	Field  string
	Labels []string
}

// headerLabelTable etiquetas de cabecera en inglés y español.
// El orden de la tabla define la prioridad cuando una celda pudiera
// pertenecer a más de un campo.
var headerLabelTable = []headerLabelEntry{
	{fieldFileNumber, []string{"file n°", "file no", "file n", "file number", "archivo n°", "expediente n°", "expediente"}},
	{fieldVessel, []string{"vessel", "buque", "embarcación", "embarcacion", "nave"}},
	{fieldTerminal, []string{"terminal"}},
	{fieldLocation, []string{"location", "ubicación", "ubicacion", "lugar", "puerto"}},
	{fieldProduct, []string{"product", "producto"}},
	{fieldReportDate, []string{"date of report issuing", "report date", "fecha del reporte", "fecha de emisión", "fecha de emision", "date", "fecha"}},
	{fieldInspector, []string{"inspector", "surveyor"}},
	{fieldRevisedBy, []string{"revised by", "revisado por"}},
	{fieldApprovedBy, []string{"approved by", "aprobado por"}},
}

// probeOffset desplazamiento relativo (columnas, filas) desde la celda
// de la etiqueta hacia la celda candidata a valor
type probeOffset struct {
	DCol int
	DRow int
}

// headerProbeOffsets orden de sondeo: derecha, dos a la derecha
// (etiquetas sobre celdas combinadas anchas) y debajo
var headerProbeOffsets = []probeOffset{
	{DCol: 1, DRow: 0},
	{DCol: 2, DRow: 0},
	{DCol: 0, DRow: 1},
}

// Etiquetas de columna de la tabla del TIME LOG
var (
	eventColumnLabels = []string{"event", "events", "evento", "eventos", "description", "descripción", "descripcion"}
	dateColumnLabels  = []string{"date", "fecha"}
	timeColumnLabels  = []string{"time", "hrs", "hora", "horas"}
)

// timeLogHeadings encabezados que marcan una hoja de tiempo aunque la
// tabla de columnas no se haya reconocido
var timeLogHeadings = []string{
	"time log",
	"time sheet",
	"timesheet",
	"hoja de tiempo",
	"hoja de tiempos",
	"registro de tiempo",
	"registro de tiempos",
	"bitácora",
	"bitacora",
}

// Encabezados de bloques de notas
var (
	generalNotesHeadings = []string{"general notes", "notas generales"}
	specialNotesHeadings = []string{"special notes", "notas especiales"}
)

// Etiquetas de los campos de notas operacionales
var (
	pumpingTimeLabels = []string{"pumping time", "tiempo de bombeo"}
	pumpingRateLabels = []string{"pumping rate", "tasa de bombeo", "régimen de bombeo", "regimen de bombeo"}
	weatherLabels     = []string{"weather conditions", "weather", "condiciones climáticas", "condiciones climaticas", "clima"}
	seaLabels         = []string{"sea conditions", "condiciones del mar", "estado del mar"}
	lastCargoLabels   = []string{"last cargo", "último cargamento", "ultimo cargamento", "última carga", "ultima carga"}
	vefLabels         = []string{"vessel experience factor", "vef", "factor de experiencia del buque", "factor de experiencia"}
)

// Palabras de condición que el formato original marca con una "X"
var (
	weatherConditionWords = []string{"rain", "cloudy", "clear", "lluvia", "nublado", "despejado"}
	seaConditionWords     = []string{"rough", "choppy", "calm", "swell", "agitado", "picado", "calma", "calmo"}
)

// Disparadores de idioma para el section tag de los eventos
var (
	englishTriggers = []string{
		"the", "of", "and", "start", "stop", "finish", "finished", "commence",
		"completed", "loading", "discharge", "discharging", "vessel", "berth",
		"pilot", "mooring", "unmooring", "samples", "sampling", "tanks",
		"inspection", "pumping", "arrival", "departure", "hoses", "connected",
		"disconnected", "all fast", "cast off", "alongside", "anchor",
	}
	spanishTriggers = []string{
		"de", "la", "el", "del", "los", "las", "con", "inicio", "fin",
		"termina", "comienza", "finaliza", "carga", "descarga", "buque",
		"muelle", "práctico", "practico", "amarre", "desamarre", "muestras",
		"muestreo", "tanques", "inspección", "inspeccion", "bombeo",
		"llegada", "salida", "mangueras", "conectadas", "desconectadas",
		"fondeo", "atraque",
	}
)

// Factores de conversión a unidades canónicas: horas y m³/h.
// Una unidad ausente en la tabla se conserva como texto libre.
var (
	pumpingTimeUnits = map[string]float64{
		"h": 1, "hr": 1, "hrs": 1, "hour": 1, "hours": 1,
		"hora": 1, "horas": 1,
		"min": 1.0 / 60, "mins": 1.0 / 60, "minute": 1.0 / 60,
		"minutes": 1.0 / 60, "minuto": 1.0 / 60, "minutos": 1.0 / 60,
	}
	pumpingRateUnits = map[string]float64{
		"m3/h": 1, "m³/h": 1, "m3/hr": 1, "m³/hr": 1, "cbm/h": 1, "cbm/hr": 1,
		"bbl/h": bblToCubicMeters, "bbl/hr": bblToCubicMeters,
		"bbls/h": bblToCubicMeters, "bbls/hr": bblToCubicMeters,
		"bph": bblToCubicMeters, "barrels/hour": bblToCubicMeters,
	}
)

// bblToCubicMeters barril de petróleo estándar en metros cúbicos
const bblToCubicMeters = 0.158987

// matchesAnyLabel compara una celda normalizada contra una lista de etiquetas
func matchesAnyLabel(normalized string, labels []string) bool {
	for _, label := range labels {
		if normalized == label {
			return true
		}
	}
	return false
}

// reservedProbeWords valores que nunca se aceptan como valor sondeado:
// son etiquetas de otras celdas, no datos
var reservedProbeWords = func() map[string]bool {
	words := make(map[string]bool)
	for _, entry := range headerLabelTable {
		for _, label := range entry.Labels {
			words[label] = true
		}
	}
	for _, group := range [][]string{eventColumnLabels, dateColumnLabels, timeColumnLabels, pumpingTimeLabels, pumpingRateLabels, weatherLabels, seaLabels, lastCargoLabels, vefLabels} {
		for _, label := range group {
			words[label] = true
		}
	}
	return words
}()
