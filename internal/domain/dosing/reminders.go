package dosing

import "medicine-tracker/internal/domain/medications"

// DueReminder es un slot que vence en el minuto evaluado y no fue tomado.
type DueReminder struct {
	MedicationID   string
	MedicationName string
	SlotIndex      int
	Time           ClockTime
}

// FindDueReminders compara cada horario con current ("HH:MM") por igualdad exacta.
// No hay ventana de tolerancia ni deduplicación: eso es del scheduler.
// Frecuencias sin horarios nunca generan recordatorios.
func FindDueReminders(meds []medications.Medication, current string, schedule Schedule, taken TakenLookup) []DueReminder {
	var out []DueReminder
	for _, m := range meds {
		for i, c := range schedule.ExpandDoses(m.Frequency) {
			if c.String() != current {
				continue
			}
			slot := i + 1
			if taken.taken(m.ID, slot) {
				continue
			}
			out = append(out, DueReminder{
				MedicationID:   m.ID,
				MedicationName: m.Name,
				SlotIndex:      slot,
				Time:           c,
			})
		}
	}
	return out
}
