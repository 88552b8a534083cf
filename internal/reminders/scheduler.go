package reminders

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"medicine-tracker/internal/domain/dosing"
	"medicine-tracker/internal/platform/logger"
)

const DefaultInterval = time.Minute

// DueSource responde qué slots vencen en el minuto de now.
type DueSource interface {
	DueReminders(ctx context.Context, now time.Time) []dosing.DueReminder
}

type Options struct {
	Interval   time.Duration
	Permission Permission
	Logger     logger.Logger
	Now        func() time.Time
}

// Scheduler consulta los recordatorios una vez por intervalo y los entrega.
//
// Garantiza no repetir un recordatorio dentro del mismo minuto. Si un tick se
// pierde, ese horario no se recupera.
type Scheduler struct {
	src      DueSource
	notifier Notifier
	log      logger.Logger
	interval time.Duration
	now      func() time.Time

	mu         sync.Mutex
	permission Permission
	requesting bool
	minute     string
	delivered  map[dosing.SlotKey]struct{}

	deliveredTotal atomic.Int64
	failedTotal    atomic.Int64
}

func NewScheduler(src DueSource, notifier Notifier, opts Options) *Scheduler {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	perm := opts.Permission
	if perm == "" {
		perm = PermissionDefault
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Scheduler{
		src:        src,
		notifier:   notifier,
		log:        log.With(logger.Fields{"component": "reminders"}),
		interval:   interval,
		now:        now,
		permission: perm,
		delivered:  make(map[dosing.SlotKey]struct{}),
	}
}

// Run evalúa en cada tick hasta que ctx se cancele.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("reminder scheduler started", logger.Fields{"interval": s.interval.String()})
	s.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("reminder scheduler stopped", nil)
			return nil
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick hace una evaluación y devuelve cuántos recordatorios entregó.
func (s *Scheduler) Tick(ctx context.Context) int {
	switch s.Permission() {
	case PermissionDefault:
		s.requestPermissionAsync(ctx)
		return 0
	case PermissionDenied:
		return 0
	}

	now := s.now()
	minute := now.Format("2006-01-02 15:04")

	sent := 0
	for _, r := range s.src.DueReminders(ctx, now) {
		if !s.claim(minute, r) {
			continue
		}

		title := "Time for your medication"
		body := fmt.Sprintf("%s: dose %d at %s", r.MedicationName, r.SlotIndex, r.Time)
		if err := s.notifier.Notify(ctx, title, body); err != nil {
			s.failedTotal.Add(1)
			s.log.Error("reminder delivery failed", logger.Fields{
				"medication_id": r.MedicationID,
				"slot":          r.SlotIndex,
				"err":           err,
			})
			continue
		}

		sent++
		s.deliveredTotal.Add(1)
		s.log.Info("reminder delivered", logger.Fields{
			"medication_id": r.MedicationID,
			"slot":          r.SlotIndex,
			"at":            r.Time.String(),
		})
	}
	return sent
}

// claim marca el recordatorio como entregado en este minuto. false si ya lo estaba.
func (s *Scheduler) claim(minute string, r dosing.DueReminder) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.minute != minute {
		s.minute = minute
		s.delivered = make(map[dosing.SlotKey]struct{})
	}
	key := dosing.SlotKey{MedicationID: r.MedicationID, Index: r.SlotIndex}
	if _, ok := s.delivered[key]; ok {
		return false
	}
	s.delivered[key] = struct{}{}
	return true
}

func (s *Scheduler) requestPermissionAsync(ctx context.Context) {
	s.mu.Lock()
	if s.requesting {
		s.mu.Unlock()
		return
	}
	s.requesting = true
	s.mu.Unlock()

	go s.RequestPermission(ctx)
}

// RequestPermission pide el permiso y guarda la respuesta.
// Un error deja el estado en default para reintentar en el próximo tick.
func (s *Scheduler) RequestPermission(ctx context.Context) Permission {
	perm, err := s.notifier.RequestPermission(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requesting = false

	if err != nil {
		s.log.Warn("notification permission request failed", logger.Fields{"err": err})
		return s.permission
	}
	s.permission = perm
	s.log.Info("notification permission resolved", logger.Fields{"permission": string(perm)})
	return perm
}

func (s *Scheduler) Permission() Permission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permission
}

func (s *Scheduler) SetPermission(p Permission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permission = p
}

// Delivered es el total de recordatorios entregados desde el arranque.
func (s *Scheduler) Delivered() int64 { return s.deliveredTotal.Load() }

func (s *Scheduler) Failed() int64 { return s.failedTotal.Load() }
