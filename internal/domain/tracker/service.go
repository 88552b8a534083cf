package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"medicine-tracker/internal/domain/dosing"
	"medicine-tracker/internal/domain/medications"
	"medicine-tracker/internal/platform/logger"
)

var (
	ErrSlotNotFound = errors.New("dose slot not found")
)

// TakenStore es el taken-state de la sesión (ver adapters/storage/memory).
type TakenStore interface {
	Lookup(medicationID string, slot int) bool
	Set(key dosing.SlotKey, taken bool)
	Reset()
	Retain(keep map[dosing.SlotKey]struct{})
	Snapshot() dosing.TakenSet
}

type Options struct {
	Schedule    dosing.Schedule
	Celebration dosing.CelebrationPolicy

	// PreserveTakenOnRefresh conserva los checks entre refetches. Por defecto
	// se reinician en cada refetch.
	PreserveTakenOnRefresh bool

	// SkipExpired deja fuera del checklist lo que ya venció.
	SkipExpired bool

	Logger logger.Logger

	// Now permite fijar el reloj (tests). Default time.Now.
	Now func() time.Time
}

// Service es el shell entre el backend del inventario y el motor de dosis.
// Guarda el último snapshot y el taken-state; el motor nunca muta nada.
type Service struct {
	source     medications.Source
	taken      TakenStore
	celebrator *dosing.Celebrator
	log        logger.Logger
	now        func() time.Time

	mu          sync.RWMutex
	snapshot    []medications.Medication
	loaded      bool
	refreshedAt time.Time
	schedule    dosing.Schedule
	preserve    bool
	skipExpired bool
}

func NewService(source medications.Source, taken TakenStore, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	schedule := opts.Schedule
	if schedule.IsZero() {
		schedule = dosing.DefaultSchedule()
	}
	return &Service{
		source:      source,
		taken:       taken,
		celebrator:  dosing.NewCelebrator(opts.Celebration),
		log:         log.With(logger.Fields{"component": "tracker"}),
		now:         now,
		schedule:    schedule,
		preserve:    opts.PreserveTakenOnRefresh,
		skipExpired: opts.SkipExpired,
	}
}

// Refresh trae un snapshot nuevo del backend y reinicia (o poda) el taken-state.
func (s *Service) Refresh(ctx context.Context) ([]medications.Medication, error) {
	list, err := s.source.List(ctx)
	if err != nil {
		s.log.Error("refresh failed", logger.Fields{"err": err})
		return nil, fmt.Errorf("refresh medications: %w", err)
	}

	s.mu.Lock()
	s.snapshot = medications.Clone(list)
	s.loaded = true
	s.refreshedAt = s.now()
	preserve := s.preserve
	s.mu.Unlock()

	if preserve {
		s.taken.Retain(s.slotKeys())
	} else {
		s.taken.Reset()
		s.celebrator.Reset()
	}
	s.observeProgress()

	s.log.Debug("medications refreshed", logger.Fields{"count": len(list), "preserve_taken": preserve})
	return medications.Clone(list), nil
}

func (s *Service) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	_, err := s.Refresh(ctx)
	return err
}

// Medications devuelve una copia del último snapshot (sin ir al backend).
func (s *Service) Medications() []medications.Medication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return medications.Clone(s.snapshot)
}

func (s *Service) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

// InventoryItem es una fila de la tabla con sus tags de estilo.
type InventoryItem struct {
	Medication   medications.Medication
	ExpiringSoon bool
	Expired      bool
}

func (s *Service) Inventory(ctx context.Context, filter medications.Filter) ([]InventoryItem, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	filtered, err := filter.Apply(s.Medications())
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]InventoryItem, 0, len(filtered))
	for _, m := range filtered {
		out = append(out, InventoryItem{
			Medication:   m,
			ExpiringSoon: dosing.ExpiringSoon(m, now),
			Expired:      dosing.Expired(m, now),
		})
	}
	return out, nil
}

// Checklist es el estado del día: todos los slots y su progreso.
type Checklist struct {
	Slots    []dosing.DoseSlot
	Progress dosing.ProgressSummary
}

func (s *Service) Checklist(ctx context.Context) (Checklist, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return Checklist{}, err
	}
	slots := s.slots()
	return Checklist{Slots: slots, Progress: dosing.ProgressOf(slots)}, nil
}

func (s *Service) Progress(ctx context.Context) (dosing.ProgressSummary, error) {
	c, err := s.Checklist(ctx)
	if err != nil {
		return dosing.ProgressSummary{}, err
	}
	return c.Progress, nil
}

// TakenResult es la respuesta a un check/uncheck.
type TakenResult struct {
	Progress  dosing.ProgressSummary
	Celebrate bool
}

// SetTaken marca o desmarca un slot y recalcula el progreso.
func (s *Service) SetTaken(ctx context.Context, medicationID string, slot int, taken bool) (TakenResult, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return TakenResult{}, err
	}

	key := dosing.SlotKey{MedicationID: strings.TrimSpace(medicationID), Index: slot}
	if _, ok := s.slotKeys()[key]; !ok {
		return TakenResult{}, ErrSlotNotFound
	}

	s.taken.Set(key, taken)

	progress := dosing.ProgressOf(s.slots())
	celebrate := s.celebrator.Observe(progress)
	if celebrate {
		s.log.Info("all doses taken", logger.Fields{"total": progress.Total})
	}
	return TakenResult{Progress: progress, Celebrate: celebrate}, nil
}

// DueReminders usa el último snapshot. Solo va al backend si todavía no hay
// ninguno cargado; si falla devuelve nil y se reintenta en la próxima llamada.
func (s *Service) DueReminders(ctx context.Context, now time.Time) []dosing.DueReminder {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil
	}

	s.mu.RLock()
	meds := s.snapshot
	schedule := s.schedule
	s.mu.RUnlock()

	return dosing.FindDueReminders(meds, dosing.ClockOf(now).String(), schedule, s.taken.Snapshot().Lookup)
}

// RemindersAt es igual a DueReminders pero con un "HH:MM" explícito.
func (s *Service) RemindersAt(ctx context.Context, clock string) ([]dosing.DueReminder, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	meds := s.snapshot
	schedule := s.schedule
	s.mu.RUnlock()

	return dosing.FindDueReminders(meds, clock, schedule, s.taken.Snapshot().Lookup), nil
}

func (s *Service) Schedule() dosing.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedule
}

// SetSchedule cambia la tabla en caliente. Los checks de slots que ya no existen se descartan.
func (s *Service) SetSchedule(schedule dosing.Schedule) {
	s.mu.Lock()
	s.schedule = schedule
	s.mu.Unlock()

	s.taken.Retain(s.slotKeys())
	s.observeProgress()
}

// observeProgress informa al celebrator de un cambio de progreso que no vino de
// SetTaken (refetch o tabla nueva), para no perder ni inventar un flanco.
func (s *Service) observeProgress() {
	progress := dosing.ProgressOf(s.slots())
	if s.celebrator.Observe(progress) {
		s.log.Info("all doses taken", logger.Fields{"total": progress.Total})
	}
}

func (s *Service) SetCelebrationPolicy(p dosing.CelebrationPolicy) {
	s.celebrator.SetPolicy(p)
}

func (s *Service) Create(ctx context.Context, in medications.CreateInput) (medications.Medication, error) {
	m, err := s.source.Create(ctx, in)
	if err != nil {
		return medications.Medication{}, err
	}
	s.log.Info("medication created", logger.Fields{"medication_id": m.ID})
	return m, s.refreshAfterMutation(ctx)
}

func (s *Service) Update(ctx context.Context, id string, in medications.UpdateInput) (medications.Medication, error) {
	m, err := s.source.Update(ctx, id, in)
	if err != nil {
		return medications.Medication{}, err
	}
	return m, s.refreshAfterMutation(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.source.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("medication deleted", logger.Fields{"medication_id": id})
	return s.refreshAfterMutation(ctx)
}

// TakeDose descuenta stock; sin stock devuelve medications.ErrOutOfStock.
func (s *Service) TakeDose(ctx context.Context, id string) (medications.Medication, error) {
	m, err := s.source.TakeDose(ctx, id)
	if err != nil {
		if errors.Is(err, medications.ErrOutOfStock) {
			s.log.Warn("cannot take dose: out of stock", logger.Fields{"medication_id": id})
		}
		return medications.Medication{}, err
	}
	return m, s.refreshAfterMutation(ctx)
}

// refreshAfterMutation: toda mutación vuelve a pedir la lista completa.
func (s *Service) refreshAfterMutation(ctx context.Context) error {
	_, err := s.Refresh(ctx)
	return err
}

// Stats resume el estado actual para /metrics.
type Stats struct {
	Medications  int
	ExpiringSoon int
	Expired      int
	Progress     dosing.ProgressSummary
}

func (s *Service) Stats() Stats {
	meds := s.Medications()
	now := s.now()

	st := Stats{Medications: len(meds), Progress: dosing.ProgressOf(s.slots())}
	for _, m := range meds {
		if dosing.ExpiringSoon(m, now) {
			st.ExpiringSoon++
		}
		if dosing.Expired(m, now) {
			st.Expired++
		}
	}
	return st
}

func (s *Service) slots() []dosing.DoseSlot {
	s.mu.RLock()
	meds := s.snapshot
	schedule := s.schedule
	skip := s.skipExpired
	s.mu.RUnlock()

	return dosing.ExpandSlots(meds, schedule, s.taken.Snapshot().Lookup, dosing.ExpandOptions{
		SkipExpired: skip,
		Now:         s.now(),
	})
}

func (s *Service) slotKeys() map[dosing.SlotKey]struct{} {
	slots := s.slots()
	keys := make(map[dosing.SlotKey]struct{}, len(slots))
	for _, sl := range slots {
		keys[sl.Key()] = struct{}{}
	}
	return keys
}
