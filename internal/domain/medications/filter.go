package medications

import (
	"fmt"
	"strconv"
	"strings"
)

type FilterType string

const (
	FilterByQuantity       FilterType = "quantity"
	FilterByExpirationDate FilterType = "expiration-date"
)

// Filter replica la búsqueda y los filtros de la tabla de inventario.
type Filter struct {
	Query string // búsqueda por nombre, case-insensitive

	Type  FilterType
	Value string // si está vacío no se filtra
}

// Apply devuelve los medicamentos que cumplen el filtro, en el mismo orden.
// Nunca modifica meds.
func (f Filter) Apply(meds []Medication) ([]Medication, error) {
	match, err := f.matcher()
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Medication, 0, len(meds))
	for _, m := range meds {
		if term != "" && !strings.Contains(strings.ToLower(m.Name), term) {
			continue
		}
		if match != nil && !match(m) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f Filter) matcher() (func(Medication) bool, error) {
	value := strings.TrimSpace(f.Value)
	if value == "" {
		return nil, nil
	}

	switch f.Type {
	case FilterByQuantity:
		max, err := leadingInt(value)
		if err != nil {
			return nil, fmt.Errorf("%w: quantity filter must be an integer", ErrInvalidInput)
		}
		return func(m Medication) bool { return m.Quantity <= max }, nil

	case FilterByExpirationDate:
		limit, ok := ParseDate(value)
		if !ok {
			return nil, fmt.Errorf("%w: expiration-date filter must be YYYY-MM-DD", ErrInvalidInput)
		}
		// Fechas no parseables nunca matchean.
		return func(m Medication) bool {
			exp, ok := m.Expiration()
			return ok && !exp.After(limit)
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown filter type %q", ErrInvalidInput, f.Type)
	}
}

// leadingInt toma el entero del comienzo de s ("5abc" => 5, "-2x" => -2).
// Sin dígitos al comienzo es un error.
func leadingInt(s string) (int, error) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, fmt.Errorf("no leading integer in %q", s)
	}
	return strconv.Atoi(s[:end])
}
