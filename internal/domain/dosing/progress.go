package dosing

import (
	"fmt"
	"strings"
	"sync"
)

// ProgressSummary es el avance del checklist del día.
type ProgressSummary struct {
	Taken      int
	Total      int
	Percentage int // 0-100
}

// Complete es true con todo tomado y al menos un slot.
func (p ProgressSummary) Complete() bool {
	return p.Total > 0 && p.Percentage == 100
}

// Text es el resumen que muestra la barra de progreso.
func (p ProgressSummary) Text() string {
	return fmt.Sprintf("%d/%d doses taken (%d%%)", p.Taken, p.Total, p.Percentage)
}

// ComputeProgress redondea al entero más cercano (.5 se aleja del cero).
func ComputeProgress(taken []bool) ProgressSummary {
	p := ProgressSummary{Total: len(taken)}
	for _, t := range taken {
		if t {
			p.Taken++
		}
	}
	if p.Total > 0 {
		// Aritmética entera: un .5 exacto siempre sube (29/200 => 15).
		p.Percentage = (p.Taken*200 + p.Total) / (2 * p.Total)
	}
	return p
}

func ProgressOf(slots []DoseSlot) ProgressSummary {
	taken := make([]bool, len(slots))
	for i, s := range slots {
		taken[i] = s.Taken
	}
	return ComputeProgress(taken)
}

// CelebrationPolicy define cuándo se dispara la celebración al llegar al 100%.
type CelebrationPolicy string

const (
	// CelebrateOnTransition: una sola vez al entrar al 100%.
	CelebrateOnTransition CelebrationPolicy = "edge"
	// CelebrateWhileComplete: en cada recálculo mientras siga en 100%.
	CelebrateWhileComplete CelebrationPolicy = "level"
)

func ParseCelebrationPolicy(s string) (CelebrationPolicy, error) {
	switch CelebrationPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", CelebrateOnTransition:
		return CelebrateOnTransition, nil
	case CelebrateWhileComplete:
		return CelebrateWhileComplete, nil
	default:
		return "", fmt.Errorf("unknown celebration policy %q (want edge|level)", s)
	}
}

// Celebrator recuerda si el último progreso observado estaba completo.
type Celebrator struct {
	mu       sync.Mutex
	policy   CelebrationPolicy
	complete bool
}

func NewCelebrator(policy CelebrationPolicy) *Celebrator {
	if policy == "" {
		policy = CelebrateOnTransition
	}
	return &Celebrator{policy: policy}
}

// Observe registra un recálculo y responde si hay que celebrar.
func (c *Celebrator) Observe(p ProgressSummary) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	was := c.complete
	c.complete = p.Complete()
	if !c.complete {
		return false
	}
	if c.policy == CelebrateWhileComplete {
		return true
	}
	return !was
}

func (c *Celebrator) SetPolicy(policy CelebrationPolicy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if policy == "" {
		policy = CelebrateOnTransition
	}
	c.policy = policy
}

func (c *Celebrator) Policy() CelebrationPolicy {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.policy
}

// Reset olvida el estado (p.ej. después de un refresh que reinicia el checklist).
func (c *Celebrator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.complete = false
}
