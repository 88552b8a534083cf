package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"medicine-tracker/internal/domain/medications"

	"github.com/google/uuid"
)

// medicationsRepo es el Source en memoria para dev/tests (sin backend configurado).
// Guarda el orden de inserción, igual que el backend real.
type medicationsRepo struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]medications.Medication
	newID func() string
}

func NewMedicationsRepo(seed ...medications.Medication) medications.Source {
	r := &medicationsRepo{
		byID:  make(map[string]medications.Medication),
		newID: uuid.NewString,
	}
	for _, m := range seed {
		if strings.TrimSpace(m.ID) == "" {
			m.ID = r.newID()
		}
		if _, exists := r.byID[m.ID]; exists {
			continue
		}
		r.order = append(r.order, m.ID)
		r.byID[m.ID] = m
	}
	return r
}

func (r *medicationsRepo) List(ctx context.Context) ([]medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medications.Medication, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *medicationsRepo) Get(ctx context.Context, id string) (medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return medications.Medication{}, medications.ErrNotFound
	}
	return m, nil
}

func (r *medicationsRepo) Create(ctx context.Context, in medications.CreateInput) (medications.Medication, error) {
	norm, err := in.Normalize()
	if err != nil {
		return medications.Medication{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m := medications.New(r.newID(), norm)
	r.order = append(r.order, m.ID)
	r.byID[m.ID] = m
	return m, nil
}

func (r *medicationsRepo) Update(ctx context.Context, id string, in medications.UpdateInput) (medications.Medication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return medications.Medication{}, medications.ErrNotFound
	}
	updated, err := in.Apply(current)
	if err != nil {
		return medications.Medication{}, err
	}
	r.byID[id] = updated
	return updated, nil
}

func (r *medicationsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return medications.ErrNotFound
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *medicationsRepo) TakeDose(ctx context.Context, id string) (medications.Medication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok {
		return medications.Medication{}, medications.ErrNotFound
	}
	if m.Quantity <= 0 {
		return medications.Medication{}, fmt.Errorf("%w: %s", medications.ErrOutOfStock, m.Name)
	}
	m.Quantity--
	r.byID[id] = m
	return m, nil
}
