package reminders

import (
	"context"
	"fmt"
	"strings"
)

// Permission es el estado del permiso de notificaciones.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

func ParsePermission(s string) (Permission, error) {
	switch Permission(strings.ToLower(strings.TrimSpace(s))) {
	case "", PermissionDefault:
		return PermissionDefault, nil
	case PermissionGranted:
		return PermissionGranted, nil
	case PermissionDenied:
		return PermissionDenied, nil
	default:
		return "", fmt.Errorf("unknown notification permission %q (want default|granted|denied)", s)
	}
}

// Notifier entrega la notificación de plataforma.
type Notifier interface {
	// RequestPermission pregunta al sistema; solo se llama con estado default.
	RequestPermission(ctx context.Context) (Permission, error)
	Notify(ctx context.Context, title, body string) error
}
