package dosing

import "testing"

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name  string
		taken []bool
		want  ProgressSummary
	}{
		{"empty", nil, ProgressSummary{Taken: 0, Total: 0, Percentage: 0}},
		{"two of three", []bool{true, true, false}, ProgressSummary{Taken: 2, Total: 3, Percentage: 67}},
		{"one of three", []bool{true, false, false}, ProgressSummary{Taken: 1, Total: 3, Percentage: 33}},
		{"half rounds up", []bool{true, false, false, false, false, false, false, false}, ProgressSummary{Taken: 1, Total: 8, Percentage: 13}},
		{"exact half from 29/200", takenOf(29, 200), ProgressSummary{Taken: 29, Total: 200, Percentage: 15}},
		{"exact half from 7/40", takenOf(7, 40), ProgressSummary{Taken: 7, Total: 40, Percentage: 18}},
		{"just below 100", takenOf(199, 200), ProgressSummary{Taken: 199, Total: 200, Percentage: 100}},
		{"all", []bool{true, true}, ProgressSummary{Taken: 2, Total: 2, Percentage: 100}},
		{"none", []bool{false}, ProgressSummary{Taken: 0, Total: 1, Percentage: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeProgress(tt.taken); got != tt.want {
				t.Fatalf("ComputeProgress() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func takenOf(taken, total int) []bool {
	out := make([]bool, total)
	for i := 0; i < taken; i++ {
		out[i] = true
	}
	return out
}

func TestComputeProgress_Idempotent(t *testing.T) {
	in := []bool{true, false, true}
	a := ComputeProgress(in)
	b := ComputeProgress(in)
	if a != b {
		t.Fatalf("expected identical results, got %+v and %+v", a, b)
	}
	if in[1] {
		t.Fatalf("input was mutated")
	}
}

func TestProgressSummary_Text(t *testing.T) {
	if got := ComputeProgress([]bool{true, true, false}).Text(); got != "2/3 doses taken (67%)" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestCelebrator_EdgeTriggered(t *testing.T) {
	c := NewCelebrator(CelebrateOnTransition)
	full := ProgressSummary{Taken: 2, Total: 2, Percentage: 100}
	partial := ProgressSummary{Taken: 1, Total: 2, Percentage: 50}

	if c.Observe(partial) {
		t.Fatalf("should not celebrate below 100%%")
	}
	if !c.Observe(full) {
		t.Fatalf("expected celebration on transition into 100%%")
	}
	if c.Observe(full) {
		t.Fatalf("edge policy must not celebrate twice while at 100%%")
	}
	c.Observe(partial)
	if !c.Observe(full) {
		t.Fatalf("expected celebration after leaving and re-entering 100%%")
	}
}

func TestCelebrator_LevelTriggered(t *testing.T) {
	c := NewCelebrator(CelebrateWhileComplete)
	full := ProgressSummary{Taken: 3, Total: 3, Percentage: 100}

	for i := 0; i < 3; i++ {
		if !c.Observe(full) {
			t.Fatalf("level policy should celebrate on every recompute (iteration %d)", i)
		}
	}
	if c.Observe(ProgressSummary{}) {
		t.Fatalf("empty checklist is never complete")
	}
}

func TestParseCelebrationPolicy(t *testing.T) {
	if p, err := ParseCelebrationPolicy(""); err != nil || p != CelebrateOnTransition {
		t.Fatalf("default should be edge, got %q err=%v", p, err)
	}
	if p, err := ParseCelebrationPolicy("LEVEL"); err != nil || p != CelebrateWhileComplete {
		t.Fatalf("expected level, got %q err=%v", p, err)
	}
	if _, err := ParseCelebrationPolicy("always"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
