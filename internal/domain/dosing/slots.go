package dosing

import (
	"time"

	"medicine-tracker/internal/domain/medications"
)

// SlotKey identifica un slot dentro de la sesión: (medicamento, índice 1-based).
type SlotKey struct {
	MedicationID string
	Index        int
}

// DoseSlot es una toma del día derivada de la frecuencia. No se persiste.
type DoseSlot struct {
	MedicationID   string
	MedicationName string
	Index          int

	// Scheduled=false para el slot por defecto de frecuencias sin horarios.
	Time      ClockTime
	Scheduled bool

	Taken bool
}

func (d DoseSlot) Key() SlotKey {
	return SlotKey{MedicationID: d.MedicationID, Index: d.Index}
}

// TakenLookup responde si un slot fue marcado como tomado.
// Un lookup nil o sin entrada cuenta como no tomado.
type TakenLookup func(medicationID string, slot int) bool

func (l TakenLookup) taken(medicationID string, slot int) bool {
	if l == nil {
		return false
	}
	return l(medicationID, slot)
}

// TakenSet es un TakenLookup respaldado por un map.
type TakenSet map[SlotKey]bool

func (s TakenSet) Lookup(medicationID string, slot int) bool {
	return s[SlotKey{MedicationID: medicationID, Index: slot}]
}

type ExpandOptions struct {
	// SkipExpired deja fuera del checklist lo que ya venció a Now.
	SkipExpired bool
	Now         time.Time
}

// ExpandSlots arma todos los slots del día, en el orden del snapshot.
func ExpandSlots(meds []medications.Medication, schedule Schedule, taken TakenLookup, opts ExpandOptions) []DoseSlot {
	out := make([]DoseSlot, 0, len(meds))
	for _, m := range meds {
		if opts.SkipExpired && Expired(m, opts.Now) {
			continue
		}

		times := schedule.ExpandDoses(m.Frequency)
		n := schedule.SlotCount(m.Frequency)
		for i := 1; i <= n; i++ {
			slot := DoseSlot{
				MedicationID:   m.ID,
				MedicationName: m.Name,
				Index:          i,
				Taken:          taken.taken(m.ID, i),
			}
			if i <= len(times) {
				slot.Time = times[i-1]
				slot.Scheduled = true
			}
			out = append(out, slot)
		}
	}
	return out
}
