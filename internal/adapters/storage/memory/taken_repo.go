package memory

import (
	"sync"

	"medicine-tracker/internal/domain/dosing"
)

// TakenStore guarda el taken-state de la sesión por (medicationID, slot).
// Vive solo en memoria: se pierde al reiniciar el proceso.
type TakenStore struct {
	mu    sync.RWMutex
	taken map[dosing.SlotKey]bool
}

func NewTakenStore() *TakenStore {
	return &TakenStore{taken: make(map[dosing.SlotKey]bool)}
}

// Lookup cumple dosing.TakenLookup. Sin entrada => no tomado.
func (s *TakenStore) Lookup(medicationID string, slot int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.taken[dosing.SlotKey{MedicationID: medicationID, Index: slot}]
}

func (s *TakenStore) Set(key dosing.SlotKey, taken bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !taken {
		delete(s.taken, key)
		return
	}
	s.taken[key] = true
}

// Reset borra todo el estado (se llama tras cada refetch).
func (s *TakenStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taken = make(map[dosing.SlotKey]bool)
}

// Retain conserva solo las claves que siguen existiendo.
func (s *TakenStore) Retain(keep map[dosing.SlotKey]struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.taken {
		if _, ok := keep[k]; !ok {
			delete(s.taken, k)
		}
	}
}

// Snapshot devuelve una copia, útil para evaluar sin sostener el lock.
func (s *TakenStore) Snapshot() dosing.TakenSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(dosing.TakenSet, len(s.taken))
	for k, v := range s.taken {
		out[k] = v
	}
	return out
}
