package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Formatos canónicos de los artefactos
const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Rango plausible de seriales de fecha de Excel (1900-era)
const (
	minDateSerial = 60      // 1900-02-28
	maxDateSerial = 2958465 // 9999-12-31
)

// dateLayouts formatos textuales probados en orden. Los numéricos con
// separador se interpretan día-primero, que es la convención de los
// reportes de origen.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2-Jan-06",
	"2-Jan-2006",
	"02-Jan-06",
	"02-Jan-2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// spanishMonths meses en español a su abreviatura inglesa para reusar
// los layouts de time.Parse
var spanishMonths = []struct{ es, en string }{
	{"enero", "January"}, {"febrero", "February"}, {"marzo", "March"},
	{"abril", "April"}, {"mayo", "May"}, {"junio", "June"},
	{"julio", "July"}, {"agosto", "August"}, {"septiembre", "September"},
	{"setiembre", "September"}, {"octubre", "October"}, {"noviembre", "November"},
	{"diciembre", "December"},
	{"ene", "Jan"}, {"abr", "Apr"}, {"ago", "Aug"}, {"sep", "Sep"},
	{"set", "Sep"}, {"dic", "Dec"},
}

// ParseDate interpreta un valor de celda como fecha YYYY-MM-DD.
// Acepta fechas calendario explícitas, seriales de Excel y formatos
// textuales comunes en ambos idiomas. Devuelve nil si no se puede
// interpretar; nunca falla la fila.
func ParseDate(v any) *string {
	switch val := v.(type) {
	case nil:
		return nil
	case float64:
		return serialToDate(val)
	case string:
		return parseDateString(val)
	}
	return nil
}

func serialToDate(serial float64) *string {
	if serial < minDateSerial || serial > maxDateSerial {
		return nil
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func parseDateString(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	// serial almacenado como texto
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return serialToDate(serial)
	}

	s = normalizeSpanishDate(s)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			formatted := t.Format(dateLayout)
			return &formatted
		}
	}

	// "fecha hora" combinada: quedarse con la parte de fecha
	if i := strings.IndexByte(s, ' '); i > 0 {
		return parseDateString(s[:i])
	}

	return nil
}

// normalizeSpanishDate traduce nombres de mes y quita la preposición "de"
// ("15 de enero de 2024" → "15 January 2024")
func normalizeSpanishDate(s string) string {
	lower := strings.ToLower(s)
	if !strings.ContainsAny(lower, "abcdefghijlmnorstuvz") {
		return s
	}
	lower = strings.ReplaceAll(lower, " del ", " ")
	lower = strings.ReplaceAll(lower, " de ", " ")
	for _, m := range spanishMonths {
		if strings.Contains(lower, m.es) {
			return strings.ReplaceAll(lower, m.es, m.en)
		}
	}
	return s
}

var (
	clockPattern   = regexp.MustCompile(`(\d{1,2}):(\d{2})(?::\d{2})?`)
	compactDigits  = regexp.MustCompile(`^\d{1,4}$`)
	meridiemSuffix = regexp.MustCompile(`(?i)\s*([ap])\.?m\.?\s*$`)
)

// ParseClock interpreta un valor de celda como hora HH:MM.
// Acepta HH:MM(:SS), dígitos compactos (730 → 07:30, 2130 → 21:30),
// sufijos AM/PM y fracciones de día seriales. Devuelve nil en caso de
// valor ininterpretable.
func ParseClock(v any) *string {
	switch val := v.(type) {
	case nil:
		return nil
	case float64:
		return clockFromNumber(val)
	case string:
		return parseClockString(val)
	}
	return nil
}

func clockFromNumber(f float64) *string {
	if f > 0 && f < 1 {
		// fracción de día
		t, err := excelize.ExcelDateToTime(f, false)
		if err != nil {
			return nil
		}
		s := t.Format(clockLayout)
		return &s
	}
	if f >= 0 && f < 2400 && f == float64(int(f)) {
		return compactToClock(strconv.Itoa(int(f)))
	}
	return nil
}

func parseClockString(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	pm := false
	if m := meridiemSuffix.FindStringSubmatch(s); m != nil {
		pm = strings.EqualFold(m[1], "p")
		s = strings.TrimSpace(meridiemSuffix.ReplaceAllString(s, ""))
	}

	if m := clockPattern.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		if pm && hours < 12 {
			hours += 12
		}
		return formatClock(hours, minutes)
	}

	if compactDigits.MatchString(s) {
		return compactToClock(s)
	}

	// fracción serial almacenada como texto
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return clockFromNumber(f)
	}

	return nil
}

// compactToClock horas compactas de bitácora: "7" → 07:00, "730" → 07:30,
// "2130" → 21:30
func compactToClock(digits string) *string {
	switch len(digits) {
	case 1, 2:
		hours, _ := strconv.Atoi(digits)
		return formatClock(hours, 0)
	case 3:
		hours, _ := strconv.Atoi(digits[:1])
		minutes, _ := strconv.Atoi(digits[1:])
		return formatClock(hours, minutes)
	case 4:
		hours, _ := strconv.Atoi(digits[:2])
		minutes, _ := strconv.Atoi(digits[2:])
		return formatClock(hours, minutes)
	}
	return nil
}

func formatClock(hours, minutes int) *string {
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return nil
	}
	s := time.Date(0, 1, 1, hours, minutes, 0, 0, time.UTC).Format(clockLayout)
	return &s
}
