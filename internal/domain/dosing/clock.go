package dosing

import (
	"fmt"
	"time"
)

// ClockTime es una hora del día con precisión de minutos.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClock acepta exactamente "HH:MM" (24h, dos dígitos cada parte).
func ParseClock(s string) (ClockTime, error) {
	if len(s) != 5 || s[2] != ':' {
		return ClockTime{}, fmt.Errorf("clock time %q must be HH:MM", s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("clock time %q must be HH:MM", s)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// ClockOf trunca t al minuto en su propia zona horaria.
func ClockOf(t time.Time) ClockTime {
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
