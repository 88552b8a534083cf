package desktop

import (
	"context"
	"errors"
	"testing"

	"medicine-tracker/internal/reminders"
)

func TestNotifier_RequestPermission(t *testing.T) {
	n := New("")
	n.send = func(string, string, string) error { return nil }
	if p, err := n.RequestPermission(context.Background()); err != nil || p != reminders.PermissionGranted {
		t.Fatalf("expected granted, got %s %v", p, err)
	}

	n.send = func(string, string, string) error { return errors.New("no daemon") }
	if p, err := n.RequestPermission(context.Background()); err != nil || p != reminders.PermissionDenied {
		t.Fatalf("expected denied, got %s %v", p, err)
	}
}

func TestNotifier_Notify(t *testing.T) {
	var gotTitle, gotBody string
	n := New("pill.png")
	n.send = func(title, body, icon string) error {
		gotTitle, gotBody = title, body
		if icon != "pill.png" {
			t.Errorf("unexpected icon %v", icon)
		}
		return nil
	}

	if err := n.Notify(context.Background(), "Time for your medication", "Ibuprofeno: dose 1 at 13:00"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if gotTitle != "Time for your medication" || gotBody != "Ibuprofeno: dose 1 at 13:00" {
		t.Fatalf("unexpected payload %q %q", gotTitle, gotBody)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := n.Notify(ctx, "x", "y"); err == nil {
		t.Fatalf("expected error on cancelled context")
	}
}
