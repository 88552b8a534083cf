package restapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"medicine-tracker/internal/domain/medications"
)

// wireID acepta ids numéricos (sqlite autoincrement) o string.
type wireID string

func (id *wireID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = wireID(n.String())
	return nil
}

// wireInt tolera cantidades enviadas como string desde el form.
type wireInt int

func (v *wireInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*v = 0
		return nil
	}
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	*v = wireInt(int(f))
	return nil
}

// wireMedication es la fila tal como la devuelve GET /api/medicines.
type wireMedication struct {
	ID        wireID  `json:"id"`
	Name      string  `json:"name"`
	Quantity  wireInt `json:"quantity"`
	Unit      string  `json:"unit,omitempty"`
	ExpDate   string  `json:"exp_date"`
	Frequency string  `json:"frequency"`
	Notes     string  `json:"notes,omitempty"`
}

func (w wireMedication) toDomain() medications.Medication {
	return medications.Medication{
		ID:             string(w.ID),
		Name:           w.Name,
		Quantity:       int(w.Quantity),
		Unit:           w.Unit,
		ExpirationDate: w.ExpDate,
		Frequency:      medications.Frequency(w.Frequency),
		Notes:          w.Notes,
	}
}

// createBody usa expDate (camelCase), que es lo que espera el POST del backend.
type createBody struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Unit      string `json:"unit,omitempty"`
	ExpDate   string `json:"expDate"`
	Frequency string `json:"frequency"`
	Notes     string `json:"notes,omitempty"`
}

func toCreateBody(in medications.CreateInput) createBody {
	return createBody{
		Name:      in.Name,
		Quantity:  in.Quantity,
		Unit:      in.Unit,
		ExpDate:   in.ExpirationDate,
		Frequency: string(in.Frequency),
		Notes:     in.Notes,
	}
}
