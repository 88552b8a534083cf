package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"medicine-tracker/internal/domain/dosing"
	"medicine-tracker/internal/domain/medications"
	"medicine-tracker/internal/reminders"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvPort, EnvBackendURL, EnvLogLevel, EnvLogFormat} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: 9090
backend:
  base_url: "http://localhost:5000"
  timeout: 3s
schedule:
  once-a-day: ["07:30"]
  twice-a-day: ["07:30", "19:30"]
checklist:
  preserve_taken_on_refresh: true
  skip_expired: true
progress:
  celebration: level
reminders:
  enabled: false
  interval: 30s
notifications:
  permission: granted
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != ":9090" {
		t.Errorf("addr: got %q", cfg.Addr())
	}
	if cfg.Backend.BaseURL != "http://localhost:5000" || cfg.Backend.Timeout != 3*time.Second {
		t.Errorf("backend: got %+v", cfg.Backend)
	}
	if !cfg.Checklist.PreserveTakenOnRefresh || !cfg.Checklist.SkipExpired {
		t.Errorf("checklist: got %+v", cfg.Checklist)
	}
	if cfg.Reminders.Enabled || cfg.Reminders.Interval != 30*time.Second {
		t.Errorf("reminders: got %+v", cfg.Reminders)
	}
	if cfg.CelebrationPolicy() != dosing.CelebrateWhileComplete {
		t.Errorf("celebration: got %q", cfg.CelebrationPolicy())
	}
	if cfg.NotificationPermission() != reminders.PermissionGranted {
		t.Errorf("permission: got %q", cfg.NotificationPermission())
	}

	times := cfg.DoseSchedule().ExpandDoses(medications.FrequencyOnceADay)
	if len(times) != 1 || times[0].String() != "07:30" {
		t.Errorf("once-a-day: got %v", times)
	}
	// Frecuencias no listadas no heredan el default.
	if n := cfg.DoseSchedule().SlotCount(medications.FrequencyThreeTimesADay); n != 1 {
		t.Errorf("three-times-a-day should fall back to 1 slot, got %d", n)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("port: got %d", cfg.Server.Port)
	}
	if !cfg.Checklist.SkipExpired || cfg.Checklist.PreserveTakenOnRefresh {
		t.Errorf("checklist: got %+v", cfg.Checklist)
	}
	if cfg.Backend.BaseURL != "" {
		t.Errorf("base_url should default to empty (memory source), got %q", cfg.Backend.BaseURL)
	}
	if !cfg.Reminders.Enabled || cfg.Reminders.Interval != reminders.DefaultInterval {
		t.Errorf("reminders: got %+v", cfg.Reminders)
	}
	if cfg.CelebrationPolicy() != dosing.CelebrateOnTransition {
		t.Errorf("celebration: got %q", cfg.CelebrationPolicy())
	}
	if cfg.NotificationPermission() != reminders.PermissionDefault {
		t.Errorf("permission: got %q", cfg.NotificationPermission())
	}
	if got := cfg.DoseSchedule().SlotCount(medications.FrequencyThreeTimesADay); got != 3 {
		t.Errorf("default schedule: three-times-a-day got %d slots", got)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPort, "7000")
	t.Setenv(EnvBackendURL, "http://backend:5000")
	t.Setenv(EnvLogLevel, "warn")

	path := writeConfig(t, "server:\n  port: 9090\nlog:\n  level: debug\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("PORT should win over file, got %d", cfg.Server.Port)
	}
	if cfg.Backend.BaseURL != "http://backend:5000" {
		t.Errorf("backend url: got %q", cfg.Backend.BaseURL)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level: got %q", cfg.Log.Level)
	}

	// skip_expired se puede apagar explícitamente.
	cfg, err = Load(writeConfig(t, "checklist:\n  skip_expired: false\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Checklist.SkipExpired {
		t.Errorf("explicit skip_expired=false should win over the default")
	}
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	cases := map[string]string{
		"bad clock":       "schedule:\n  once-a-day: [\"8am\"]\n",
		"bad celebration": "progress:\n  celebration: always\n",
		"bad permission":  "notifications:\n  permission: maybe\n",
		"bad port":        "server:\n  port: 0\n",
		"bad interval":    "reminders:\n  interval: -1s\n",
		"bad format":      "log:\n  format: xml\n",
		"bad yaml":        "server: [\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, content)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	t.Setenv(EnvPort, "http")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for non-numeric PORT")
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "progress:\n  celebration: edge\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 8)
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, nil, func(c *Config) { changes <- c }) }()

	deadline := time.After(3 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case cfg := <-changes:
			if cfg.CelebrationPolicy() != dosing.CelebrateWhileComplete {
				t.Fatalf("expected reloaded policy level, got %q", cfg.CelebrationPolicy())
			}
			cancel()
			if err := <-done; err != nil {
				t.Fatalf("Watch: %v", err)
			}
			return
		case <-tick.C:
			// Se reescribe hasta que el watcher esté registrado.
			_ = os.WriteFile(path, []byte("progress:\n  celebration: level\n"), 0o600)
		case <-deadline:
			t.Fatalf("no reload observed")
		}
	}
}
