// Package config carga la configuración YAML del tracker y la recarga en caliente.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"medicine-tracker/internal/domain/dosing"
	"medicine-tracker/internal/reminders"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPort           = 8080
	DefaultBackendTimeout = 10 * time.Second
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// Variables de entorno que pisan al archivo.
const (
	EnvConfigPath = "MEDS_CONFIG"
	EnvPort       = "PORT"
	EnvBackendURL = "MEDS_BACKEND_URL"
	EnvLogLevel   = "LOG_LEVEL"
	EnvLogFormat  = "LOG_FORMAT"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Backend       BackendConfig       `yaml:"backend"`
	Schedule      map[string][]string `yaml:"schedule"`
	Checklist     ChecklistConfig     `yaml:"checklist"`
	Progress      ProgressConfig      `yaml:"progress"`
	Reminders     RemindersConfig     `yaml:"reminders"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Log           LogConfig           `yaml:"log"`

	schedule    dosing.Schedule
	celebration dosing.CelebrationPolicy
	permission  reminders.Permission
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type BackendConfig struct {
	// BaseURL vacío => inventario en memoria.
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type ChecklistConfig struct {
	PreserveTakenOnRefresh bool `yaml:"preserve_taken_on_refresh"`
	SkipExpired            bool `yaml:"skip_expired"`
}

type ProgressConfig struct {
	// Celebration: edge | level.
	Celebration string `yaml:"celebration"`
}

type RemindersConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

type NotificationsConfig struct {
	// Permission: default | granted | denied.
	Permission string `yaml:"permission"`
	Icon       string `yaml:"icon"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load lee path (si no está vacío), aplica defaults, variables de entorno y valida.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := applyEnv(cfg, os.Getenv); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// PathFromEnv devuelve MEDS_CONFIG o "" si no está.
func PathFromEnv() string {
	return strings.TrimSpace(os.Getenv(EnvConfigPath))
}

func defaults() *Config {
	return &Config{
		Server:  ServerConfig{Port: DefaultPort},
		Backend: BackendConfig{Timeout: DefaultBackendTimeout},
		Checklist: ChecklistConfig{
			SkipExpired: true,
		},
		Progress: ProgressConfig{
			Celebration: string(dosing.CelebrateOnTransition),
		},
		Reminders: RemindersConfig{
			Enabled:  true,
			Interval: reminders.DefaultInterval,
		},
		Notifications: NotificationsConfig{Permission: string(reminders.PermissionDefault)},
		Log:           LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid port %q", EnvPort, v)
		}
		cfg.Server.Port = port
	}
	if v := strings.TrimSpace(getenv(EnvBackendURL)); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(getenv(EnvLogFormat)); v != "" {
		cfg.Log.Format = v
	}
	return nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}
	if cfg.Backend.Timeout <= 0 {
		return errors.New("backend.timeout must be positive")
	}
	if cfg.Reminders.Interval <= 0 {
		return errors.New("reminders.interval must be positive")
	}

	if len(cfg.Schedule) == 0 {
		cfg.schedule = dosing.DefaultSchedule()
	} else {
		s, err := dosing.NewSchedule(cfg.Schedule)
		if err != nil {
			return fmt.Errorf("schedule: %w", err)
		}
		cfg.schedule = s
	}

	policy, err := dosing.ParseCelebrationPolicy(cfg.Progress.Celebration)
	if err != nil {
		return fmt.Errorf("progress.celebration: %w", err)
	}
	cfg.celebration = policy

	perm, err := reminders.ParsePermission(cfg.Notifications.Permission)
	if err != nil {
		return fmt.Errorf("notifications.permission: %w", err)
	}
	cfg.permission = perm

	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q (want text|json)", cfg.Log.Format)
	}
	return nil
}

// DoseSchedule es la tabla de horarios ya validada.
func (c *Config) DoseSchedule() dosing.Schedule { return c.schedule }

func (c *Config) CelebrationPolicy() dosing.CelebrationPolicy { return c.celebration }

func (c *Config) NotificationPermission() reminders.Permission { return c.permission }

func (c *Config) Addr() string { return ":" + strconv.Itoa(c.Server.Port) }
