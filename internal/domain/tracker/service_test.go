package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"medicine-tracker/internal/adapters/storage/memory"
	"medicine-tracker/internal/domain/dosing"
	"medicine-tracker/internal/domain/medications"
)

var testNow = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

func seed() []medications.Medication {
	return []medications.Medication{
		{ID: "once", Name: "Levotiroxina", Quantity: 30, Frequency: medications.FrequencyOnceADay, ExpirationDate: "2026-01-01"},
		{ID: "twice", Name: "Amoxicilina", Quantity: 0, Frequency: medications.FrequencyTwiceADay, ExpirationDate: "2025-06-14"},
		{ID: "expired", Name: "Jarabe", Quantity: 1, Frequency: "as-needed", ExpirationDate: "2025-06-09"},
	}
}

func newTestService(t *testing.T, opts Options, meds ...medications.Medication) *Service {
	t.Helper()
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	return NewService(memory.NewMedicationsRepo(meds...), memory.NewTakenStore(), opts)
}

func TestService_Checklist_ProgressAndReminders(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, Options{SkipExpired: true}, seed()...)

	c, err := svc.Checklist(ctx)
	if err != nil {
		t.Fatalf("Checklist: %v", err)
	}
	if c.Progress != (dosing.ProgressSummary{Taken: 0, Total: 3, Percentage: 0}) {
		t.Fatalf("unexpected initial progress: %+v", c.Progress)
	}

	due := svc.DueReminders(ctx, testNow)
	if len(due) != 1 || due[0].MedicationID != "twice" || due[0].SlotIndex != 1 {
		t.Fatalf("expected twice#1 due at 09:00, got %+v", due)
	}

	for _, slot := range []int{1, 2} {
		if _, err := svc.SetTaken(ctx, "twice", slot, true); err != nil {
			t.Fatalf("SetTaken twice#%d: %v", slot, err)
		}
	}

	p, err := svc.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if p != (dosing.ProgressSummary{Taken: 2, Total: 3, Percentage: 67}) {
		t.Fatalf("unexpected progress: %+v", p)
	}
	if due := svc.DueReminders(ctx, testNow); len(due) != 0 {
		t.Fatalf("expected nothing due after taking, got %+v", due)
	}
}

func TestService_Inventory_TagsAndFilter(t *testing.T) {
	svc := newTestService(t, Options{}, seed()...)

	items, err := svc.Inventory(context.Background(), medications.Filter{})
	if err != nil {
		t.Fatalf("Inventory: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].ExpiringSoon || items[0].Expired {
		t.Fatalf("once should be untagged: %+v", items[0])
	}
	if !items[1].ExpiringSoon {
		t.Fatalf("twice expires in 4 days and should be tagged: %+v", items[1])
	}
	if items[2].ExpiringSoon || !items[2].Expired {
		t.Fatalf("expired row should only be tagged expired: %+v", items[2])
	}

	if _, err := svc.Inventory(context.Background(), medications.Filter{Type: medications.FilterByQuantity, Value: "x"}); !errors.Is(err, medications.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_SetTaken_EdgeCelebration(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, Options{Celebration: dosing.CelebrateOnTransition}, seed()[0])

	res, err := svc.SetTaken(ctx, "once", 1, true)
	if err != nil {
		t.Fatalf("SetTaken: %v", err)
	}
	if !res.Celebrate || !res.Progress.Complete() {
		t.Fatalf("expected celebration at 100%%, got %+v", res)
	}

	res, _ = svc.SetTaken(ctx, "once", 1, true)
	if res.Celebrate {
		t.Fatalf("edge policy should not celebrate again")
	}

	svc.SetCelebrationPolicy(dosing.CelebrateWhileComplete)
	res, _ = svc.SetTaken(ctx, "once", 1, true)
	if !res.Celebrate {
		t.Fatalf("level policy should celebrate while complete")
	}
}

func TestService_SetTaken_UnknownSlot(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, Options{SkipExpired: true}, seed()...)

	cases := []struct {
		id   string
		slot int
	}{
		{"twice", 3},
		{"nope", 1},
		{"expired", 1}, // fuera del checklist
	}
	for _, c := range cases {
		if _, err := svc.SetTaken(ctx, c.id, c.slot, true); !errors.Is(err, ErrSlotNotFound) {
			t.Fatalf("%s#%d: expected ErrSlotNotFound, got %v", c.id, c.slot, err)
		}
	}

	// Frecuencia desconocida: un slot sin horario, válido para el progreso.
	svc = newTestService(t, Options{}, seed()...)
	if _, err := svc.SetTaken(ctx, "expired", 1, true); err != nil {
		t.Fatalf("unscheduled default slot should be markable: %v", err)
	}
}

func TestService_Refresh_ResetsOrPreservesTaken(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(t, Options{}, seed()...)
	if _, err := svc.SetTaken(ctx, "once", 1, true); err != nil {
		t.Fatalf("SetTaken: %v", err)
	}
	if _, err := svc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if p, _ := svc.Progress(ctx); p.Taken != 0 {
		t.Fatalf("default policy should reset taken-state on refresh, got %+v", p)
	}

	svc = newTestService(t, Options{PreserveTakenOnRefresh: true}, seed()...)
	_, _ = svc.SetTaken(ctx, "once", 1, true)
	_, _ = svc.SetTaken(ctx, "twice", 2, true)
	if err := svc.Delete(ctx, "twice"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	p, _ := svc.Progress(ctx)
	if p.Taken != 1 || p.Total != 2 {
		t.Fatalf("expected once#1 preserved and twice pruned, got %+v", p)
	}
}

func TestService_TakeDose(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, Options{}, seed()...)

	m, err := svc.TakeDose(ctx, "once")
	if err != nil {
		t.Fatalf("TakeDose: %v", err)
	}
	if m.Quantity != 29 {
		t.Fatalf("expected 29 left, got %d", m.Quantity)
	}
	if got := svc.Medications()[0].Quantity; got != 29 {
		t.Fatalf("snapshot should be refetched after take dose, got %d", got)
	}

	if _, err := svc.TakeDose(ctx, "twice"); !errors.Is(err, medications.ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
}

func TestService_SetSchedule_PrunesVanishedSlots(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, Options{}, seed()[1])

	_, _ = svc.SetTaken(ctx, "twice", 2, true)

	s, err := dosing.NewSchedule(map[string][]string{"twice-a-day": {"08:00"}})
	if err != nil {
		t.Fatalf("NewSchedule: %v", err)
	}
	svc.SetSchedule(s)

	c, _ := svc.Checklist(ctx)
	if c.Progress != (dosing.ProgressSummary{Taken: 0, Total: 1, Percentage: 0}) {
		t.Fatalf("expected slot 2 to be dropped, got %+v", c.Progress)
	}
	if due := svc.DueReminders(ctx, time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)); len(due) != 1 {
		t.Fatalf("expected reminder at new 08:00 slot, got %+v", due)
	}
}

type failingSource struct{ medications.Source }

func (failingSource) List(ctx context.Context) ([]medications.Medication, error) {
	return nil, errors.New("connection refused")
}

func TestService_SourceFailure(t *testing.T) {
	svc := NewService(failingSource{}, memory.NewTakenStore(), Options{})
	if _, err := svc.Checklist(context.Background()); err == nil {
		t.Fatalf("expected error when backend is down")
	}
	if due := svc.DueReminders(context.Background(), testNow); len(due) != 0 {
		t.Fatalf("no snapshot means nothing due, got %+v", due)
	}
}

func TestService_Celebration_FollowsRefetchAndScheduleChanges(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, Options{PreserveTakenOnRefresh: true}, seed()[0])

	res, _ := svc.SetTaken(ctx, "once", 1, true)
	if !res.Celebrate {
		t.Fatalf("expected celebration at 100%%, got %+v", res)
	}

	// Un alta baja el progreso al 50%: la próxima llegada al 100% vuelve a celebrar.
	m, err := svc.Create(ctx, medications.CreateInput{Name: "Ibuprofeno", Quantity: 10, ExpirationDate: "2026-02-01", Frequency: medications.FrequencyOnceADay})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p, _ := svc.Progress(ctx); p != (dosing.ProgressSummary{Taken: 1, Total: 2, Percentage: 50}) {
		t.Fatalf("unexpected progress after create: %+v", p)
	}
	res, err = svc.SetTaken(ctx, m.ID, 1, true)
	if err != nil {
		t.Fatalf("SetTaken: %v", err)
	}
	if !res.Progress.Complete() || !res.Celebrate {
		t.Fatalf("expected a new celebration after dropping below 100%%, got %+v", res)
	}

	// Una tabla con más horarios también saca del 100%.
	s, _ := dosing.NewSchedule(map[string][]string{"once-a-day": {"08:00", "20:00"}})
	svc.SetSchedule(s)
	if p, _ := svc.Progress(ctx); p.Complete() {
		t.Fatalf("expected progress below 100%% with the new schedule, got %+v", p)
	}
	_, _ = svc.SetTaken(ctx, "once", 2, true)
	res, _ = svc.SetTaken(ctx, m.ID, 2, true)
	if !res.Celebrate {
		t.Fatalf("expected celebration after completing the new schedule, got %+v", res)
	}
}

func TestService_Celebration_DeleteIntoCompleteCountsAsTransition(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, Options{PreserveTakenOnRefresh: true}, seed()[0], seed()[1])

	res, _ := svc.SetTaken(ctx, "once", 1, true)
	if res.Celebrate {
		t.Fatalf("1/3 should not celebrate")
	}
	if err := svc.Delete(ctx, "twice"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if p, _ := svc.Progress(ctx); !p.Complete() {
		t.Fatalf("expected 100%% after deleting the pending medication, got %+v", p)
	}

	// El flanco ya ocurrió en el refetch: re-marcar no celebra de nuevo.
	res, _ = svc.SetTaken(ctx, "once", 1, true)
	if res.Celebrate {
		t.Fatalf("edge policy should celebrate once per transition, got %+v", res)
	}
}

type flakySource struct {
	medications.Source
	failures int
}

func (f *flakySource) List(ctx context.Context) ([]medications.Medication, error) {
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("connection refused")
	}
	return f.Source.List(ctx)
}

func TestService_DueReminders_LoadsLazilyAfterFailure(t *testing.T) {
	ctx := context.Background()
	src := &flakySource{Source: memory.NewMedicationsRepo(seed()[1]), failures: 1}
	svc := NewService(src, memory.NewTakenStore(), Options{Now: func() time.Time { return testNow }})

	if _, err := svc.Refresh(ctx); err == nil {
		t.Fatalf("expected first refresh to fail")
	}

	due := svc.DueReminders(ctx, testNow)
	if len(due) != 1 || due[0].MedicationID != "twice" || due[0].SlotIndex != 1 {
		t.Fatalf("expected twice#1 due once the backend is back, got %+v", due)
	}
}
