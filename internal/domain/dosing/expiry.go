package dosing

import (
	"time"

	"medicine-tracker/internal/domain/medications"
)

// expiringSoonWindowMs: 7 días en milisegundos.
const expiringSoonWindowMs int64 = 7 * 24 * 60 * 60 * 1000

// IsExpiringSoon es true si expiration cae estrictamente dentro de los próximos 7 días.
// Lo ya vencido no se marca. Fecha cero => false.
func IsExpiringSoon(expiration, now time.Time) bool {
	if expiration.IsZero() {
		return false
	}
	diff := expiration.UnixMilli() - now.UnixMilli()
	return diff > 0 && diff < expiringSoonWindowMs
}

// IsExpired es true si la fecha está seteada y no es futura.
func IsExpired(expiration, now time.Time) bool {
	if expiration.IsZero() {
		return false
	}
	return expiration.UnixMilli()-now.UnixMilli() <= 0
}

// ExpiringSoon aplica IsExpiringSoon sobre la fecha cruda del medicamento.
// Fechas vacías o no parseables nunca están por vencer.
func ExpiringSoon(m medications.Medication, now time.Time) bool {
	exp, ok := m.Expiration()
	return ok && IsExpiringSoon(exp, now)
}

func Expired(m medications.Medication, now time.Time) bool {
	exp, ok := m.Expiration()
	return ok && IsExpired(exp, now)
}
