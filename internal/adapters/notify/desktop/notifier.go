// Package desktop entrega recordatorios como notificaciones del sistema (libnotify,
// Windows toast, macOS) usando beeep.
package desktop

import (
	"context"
	"fmt"

	"medicine-tracker/internal/reminders"

	"github.com/gen2brain/beeep"
)

// Notifier implementa reminders.Notifier sobre beeep.
type Notifier struct {
	appIcon string
	send    func(title, message, icon string) error
}

func New(appIcon string) *Notifier {
	return &Notifier{
		appIcon: appIcon,
		send:    func(title, message, icon string) error { return beeep.Notify(title, message, icon) },
	}
}

// RequestPermission: el escritorio no tiene prompt de permisos, así que se envía
// una notificación de prueba. Si el sistema la acepta, queda granted.
func (n *Notifier) RequestPermission(ctx context.Context) (reminders.Permission, error) {
	if err := ctx.Err(); err != nil {
		return reminders.PermissionDefault, err
	}
	if err := n.send("Medicine tracker", "Dose reminders are enabled", n.appIcon); err != nil {
		return reminders.PermissionDenied, nil
	}
	return reminders.PermissionGranted, nil
}

func (n *Notifier) Notify(ctx context.Context, title, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := n.send(title, body, n.appIcon); err != nil {
		return fmt.Errorf("desktop notify: %w", err)
	}
	return nil
}

var _ reminders.Notifier = (*Notifier)(nil)
