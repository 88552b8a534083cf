package dosing

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"medicine-tracker/internal/domain/medications"
)

// Schedule mapea cada frecuencia a sus horarios del día, en orden.
// El índice de slot es la posición (1-based) en esa lista.
type Schedule struct {
	times map[medications.Frequency][]ClockTime
}

// DefaultSchedule es la tabla histórica de la app.
func DefaultSchedule() Schedule {
	return Schedule{times: map[medications.Frequency][]ClockTime{
		medications.FrequencyOnceADay:       {{13, 0}},
		medications.FrequencyTwiceADay:      {{9, 0}, {19, 0}},
		medications.FrequencyThreeTimesADay: {{9, 0}, {13, 0}, {19, 0}},
	}}
}

// NewSchedule arma un Schedule desde la configuración (frecuencia -> ["HH:MM", ...]).
// El orden declarado se respeta tal cual; no se reordena.
func NewSchedule(table map[string][]string) (Schedule, error) {
	s := Schedule{times: make(map[medications.Frequency][]ClockTime, len(table))}
	var errs []error

	for label, raw := range table {
		label = strings.TrimSpace(label)
		if label == "" {
			errs = append(errs, errors.New("schedule: empty frequency label"))
			continue
		}
		times := make([]ClockTime, 0, len(raw))
		for _, r := range raw {
			c, err := ParseClock(strings.TrimSpace(r))
			if err != nil {
				errs = append(errs, fmt.Errorf("schedule %q: %w", label, err))
				continue
			}
			times = append(times, c)
		}
		s.times[medications.Frequency(label)] = times
	}

	if len(errs) > 0 {
		return Schedule{}, errors.Join(errs...)
	}
	return s, nil
}

// ExpandDoses devuelve los horarios de una frecuencia. Frecuencias desconocidas
// no tienen horarios (para recordatorios).
func (s Schedule) ExpandDoses(f medications.Frequency) []ClockTime {
	times := s.times[f]
	out := make([]ClockTime, len(times))
	copy(out, times)
	return out
}

// SlotCount es la cantidad de slots para el progreso del día.
// Sin horarios se cuenta 1 slot (default-to-1), a diferencia de ExpandDoses.
func (s Schedule) SlotCount(f medications.Frequency) int {
	if n := len(s.times[f]); n > 0 {
		return n
	}
	return 1
}

// Table devuelve la tabla en el formato de configuración.
func (s Schedule) Table() map[string][]string {
	out := make(map[string][]string, len(s.times))
	for f, times := range s.times {
		strs := make([]string, 0, len(times))
		for _, c := range times {
			strs = append(strs, c.String())
		}
		out[string(f)] = strs
	}
	return out
}

// Frequencies lista las etiquetas conocidas, ordenadas.
func (s Schedule) Frequencies() []medications.Frequency {
	out := make([]medications.Frequency, 0, len(s.times))
	for f := range s.times {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ExpandDoses usa la tabla por defecto.
func ExpandDoses(f medications.Frequency) []ClockTime {
	return DefaultSchedule().ExpandDoses(f)
}

// IsZero es true para un Schedule sin inicializar (ni default ni config).
func (s Schedule) IsZero() bool {
	return s.times == nil
}
