package medications

import (
	"strings"
	"time"
)

// Frequency es la etiqueta de cadencia de toma que define los slots del día.
// @Enum once-a-day, twice-a-day, three-times-a-day
type Frequency string

const (
	FrequencyOnceADay       Frequency = "once-a-day"
	FrequencyTwiceADay      Frequency = "twice-a-day"
	FrequencyThreeTimesADay Frequency = "three-times-a-day"
)

// DateLayout es el formato en que el backend guarda exp_date.
const DateLayout = "2006-01-02"

// Medication es un snapshot de solo lectura de un medicamento del inventario.
// El dueño del dato es el backend externo.
type Medication struct {
	ID string

	Name     string
	Quantity int
	Unit     string // opcional: "tabs", "ml", etc.

	// ExpirationDate tal como llega del backend (YYYY-MM-DD). Puede venir vacío o mal formado.
	ExpirationDate string

	Frequency Frequency
	Notes     string
}

// Expiration parsea ExpirationDate. ok=false si está vacío o no se puede parsear.
func (m Medication) Expiration() (time.Time, bool) {
	return ParseDate(m.ExpirationDate)
}

// ParseDate acepta YYYY-MM-DD (medianoche UTC) o RFC3339.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(DateLayout, s, time.UTC); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Clone devuelve una copia del slice para que el llamador no comparta el snapshot.
func Clone(in []Medication) []Medication {
	if in == nil {
		return nil
	}
	out := make([]Medication, len(in))
	copy(out, in)
	return out
}
