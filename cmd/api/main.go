// @title Medicine Tracker API
// @version 1.0
// @description Inventario de medicamentos, checklist diario de dosis y recordatorios.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"medicine-tracker/internal/adapters/backend/restapi"
	"medicine-tracker/internal/adapters/notify/desktop"
	mem "medicine-tracker/internal/adapters/storage/memory"
	"medicine-tracker/internal/config"
	"medicine-tracker/internal/domain/medications"
	"medicine-tracker/internal/domain/tracker"
	"medicine-tracker/internal/metrics"
	"medicine-tracker/internal/platform/httpclient"
	"medicine-tracker/internal/platform/logger"
	"medicine-tracker/internal/reminders"
	"medicine-tracker/internal/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "medicine-tracker: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := config.PathFromEnv()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    appName(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := newSource(cfg, log)
	if err != nil {
		return err
	}

	svc := tracker.NewService(source, mem.NewTakenStore(), tracker.Options{
		Schedule:               cfg.DoseSchedule(),
		Celebration:            cfg.CelebrationPolicy(),
		PreserveTakenOnRefresh: cfg.Checklist.PreserveTakenOnRefresh,
		SkipExpired:            cfg.Checklist.SkipExpired,
		Logger:                 log,
	})

	// Si el backend no responde se arranca igual; el próximo request o tick del
	// scheduler reintenta la carga.
	if _, err := svc.Refresh(ctx); err != nil {
		log.Warn("initial refresh failed", logger.Fields{"err": err})
	}

	var reminderCounter metrics.ReminderCounter
	if cfg.Reminders.Enabled {
		sched := reminders.NewScheduler(svc, desktop.New(cfg.Notifications.Icon), reminders.Options{
			Interval:   cfg.Reminders.Interval,
			Permission: cfg.NotificationPermission(),
			Logger:     log,
		})
		reminderCounter = sched
		go func() { _ = sched.Run(ctx) }()
	}

	if cfgPath != "" {
		go func() {
			err := config.Watch(ctx, cfgPath, log, func(next *config.Config) {
				svc.SetSchedule(next.DoseSchedule())
				svc.SetCelebrationPolicy(next.CelebrationPolicy())
			})
			if err != nil {
				log.Error("config watcher stopped", logger.Fields{"err": err})
			}
		}()
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			Service:   svc,
			Reminders: reminderCounter,
			Logger:    log,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", logger.Fields{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newSource: backend REST si hay base_url, si no inventario en memoria (modo dev).
func newSource(cfg *config.Config, log logger.Logger) (medications.Source, error) {
	if cfg.Backend.BaseURL == "" {
		log.Info("no backend configured, using in-memory inventory", nil)
		return mem.NewMedicationsRepo(), nil
	}

	hc, err := httpclient.New(httpclient.Options{
		BaseURL:   cfg.Backend.BaseURL,
		Timeout:   cfg.Backend.Timeout,
		UserAgent: appName(),
	})
	if err != nil {
		return nil, err
	}
	client, err := restapi.New(hc)
	if err != nil {
		return nil, err
	}
	log.Info("using backend inventory", logger.Fields{"base_url": hc.BaseURL})
	return client, nil
}

func appName() string {
	if v := strings.TrimSpace(os.Getenv("APP_NAME")); v != "" {
		return v
	}
	return "medicine-tracker"
}
