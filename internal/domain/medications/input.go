package medications

import (
	"fmt"
	"strings"
)

type CreateInput struct {
	Name           string
	Quantity       int
	Unit           string
	ExpirationDate string // YYYY-MM-DD
	Frequency      Frequency
	Notes          string
}

// Normalize recorta espacios y valida los campos obligatorios.
func (in CreateInput) Normalize() (CreateInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)
	in.ExpirationDate = strings.TrimSpace(in.ExpirationDate)
	in.Frequency = Frequency(strings.TrimSpace(string(in.Frequency)))
	in.Notes = strings.TrimSpace(in.Notes)

	if in.Name == "" {
		return CreateInput{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return CreateInput{}, fmt.Errorf("%w: quantity must be >= 0", ErrInvalidInput)
	}
	if in.ExpirationDate == "" {
		return CreateInput{}, fmt.Errorf("%w: exp_date is required", ErrInvalidInput)
	}
	if _, ok := ParseDate(in.ExpirationDate); !ok {
		return CreateInput{}, fmt.Errorf("%w: exp_date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return in, nil
}

// UpdateInput usa punteros para PATCH real: nil = no tocar.
type UpdateInput struct {
	Name           *string
	Quantity       *int
	Unit           *string
	ExpirationDate *string
	Frequency      *Frequency
	Notes          *string
}

// Apply devuelve m con los cambios aplicados, validando igual que en Create.
func (in UpdateInput) Apply(m Medication) (Medication, error) {
	if in.Name != nil {
		m.Name = *in.Name
	}
	if in.Quantity != nil {
		m.Quantity = *in.Quantity
	}
	if in.Unit != nil {
		m.Unit = *in.Unit
	}
	if in.ExpirationDate != nil {
		m.ExpirationDate = *in.ExpirationDate
	}
	if in.Frequency != nil {
		m.Frequency = *in.Frequency
	}
	if in.Notes != nil {
		m.Notes = *in.Notes
	}

	norm, err := CreateInput{
		Name:           m.Name,
		Quantity:       m.Quantity,
		Unit:           m.Unit,
		ExpirationDate: m.ExpirationDate,
		Frequency:      m.Frequency,
		Notes:          m.Notes,
	}.Normalize()
	if err != nil {
		return Medication{}, err
	}
	return norm.toMedication(m.ID), nil
}

func (in CreateInput) toMedication(id string) Medication {
	return Medication{
		ID:             id,
		Name:           in.Name,
		Quantity:       in.Quantity,
		Unit:           in.Unit,
		ExpirationDate: in.ExpirationDate,
		Frequency:      in.Frequency,
		Notes:          in.Notes,
	}
}

// New arma un Medication a partir de un input ya normalizado.
func New(id string, in CreateInput) Medication {
	return in.toMedication(id)
}
