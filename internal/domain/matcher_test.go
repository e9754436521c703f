package domain

import (
	"errors"
	"testing"
)

func mustSnapshot(t *testing.T, s string) Snapshot {
	t.Helper()
	snap, err := ParseSnapshot(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return snap
}

func mustCatalog(t *testing.T, entries ...Pattern) *Catalog {
	t.Helper()
	c, err := NewCatalog(entries)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return c
}

// allSequences enumerates every face sequence of length n.
func allSequences(n int) []Snapshot {
	out := make([]Snapshot, 0, 1<<n)
	for mask := 0; mask < 1<<n; mask++ {
		faces := make([]Face, n)
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				faces[i] = Tail
			}
		}
		out = append(out, NewSnapshot(faces...))
	}
	return out
}

func TestMatchPatternsHeadRunOfThree(t *testing.T) {
	catalog := mustCatalog(t,
		Pattern{ID: "heads-2", Type: Consecutive2, Face: Head, IsAttack: true, Bonus: 4},
		Pattern{ID: "heads-3", Type: Consecutive3, Face: Head, IsAttack: true, Bonus: 6},
	)
	got := MatchPatterns(mustSnapshot(t, "HHHTH"), catalog)
	if len(got) != 2 {
		t.Fatalf("matches = %v, want 2 entries", MatchIDs(got))
	}
	want := []struct {
		id    string
		t     PatternType
		bonus int
	}{
		{"heads-3", Consecutive3, 6},
		{"heads-2", Consecutive2, 4},
	}
	for i, w := range want {
		m := got[i]
		if m.ID != w.id || m.Type != w.t || m.Bonus != w.bonus || m.Face != Head {
			t.Fatalf("match[%d] = %v, want %s bonus %d", i, m.Pattern, w.id, w.bonus)
		}
		if m.Start != 0 || m.End != 2 {
			t.Fatalf("match[%d] range = %d..%d, want 0..2", i, m.Start, m.End)
		}
	}
}

func TestMatchPatternsDefaultCatalog(t *testing.T) {
	tests := []struct {
		name  string
		coins string
		want  []string
	}{
		{"run of three heads", "HHHTH", []string{"heads-3", "heads-2"}},
		{"all heads", "HHHHH", []string{"all-heads", "heads-5", "heads-4", "heads-3", "heads-2"}},
		{"all tails", "TTTTT", []string{"all-tails", "tails-5", "tails-4", "tails-3", "tails-2"}},
		{"alternating", "HTHTH", []string{"alternating"}},
		{"mixed runs", "HHTTT", []string{"heads-2", "tails-3", "tails-2"}},
		{"single coin", "H", []string{"all-heads"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchIDs(MatchPatterns(mustSnapshot(t, tt.coins), DefaultCatalog()))
			if len(got) != len(tt.want) {
				t.Fatalf("ids = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ids = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestMatchPatternsKeepsLongestRun(t *testing.T) {
	catalog := mustCatalog(t, Pattern{ID: "heads-2", Type: Consecutive2, Face: Head, IsAttack: true, Bonus: 4})
	got := MatchPatterns(mustSnapshot(t, "HHTHHHT"), catalog)
	if len(got) != 1 {
		t.Fatalf("matches = %v, want one", MatchIDs(got))
	}
	if got[0].Start != 3 || got[0].End != 5 {
		t.Fatalf("range = %d..%d, want 3..5", got[0].Start, got[0].End)
	}
	if len(got[0].Indices) != 3 {
		t.Fatalf("indices = %v, want 3 entries", got[0].Indices)
	}
}

func TestMatchPatternsAnyFace(t *testing.T) {
	catalog := mustCatalog(t, Pattern{ID: "any-3", Type: Consecutive3, Face: Any, IsAttack: true, Bonus: 5})
	got := MatchPatterns(mustSnapshot(t, "HHTTTT"), catalog)
	if len(got) != 1 || got[0].Start != 2 || got[0].End != 5 {
		t.Fatalf("matches = %+v, want any-3 over 2..5", got)
	}
}

func TestMatchPatternsEmptyInputs(t *testing.T) {
	if got := MatchPatterns(Snapshot{}, DefaultCatalog()); len(got) != 0 {
		t.Fatalf("empty snapshot matched %v", MatchIDs(got))
	}
	if got := MatchPatterns(mustSnapshot(t, "HH"), mustCatalog(t)); len(got) != 0 {
		t.Fatalf("empty catalog matched %v", MatchIDs(got))
	}
	if got := MatchPatterns(mustSnapshot(t, "HH"), nil); len(got) != 0 {
		t.Fatalf("nil catalog matched %v", MatchIDs(got))
	}
}

func TestAlternatingNeverOverlapsConsecutive(t *testing.T) {
	catalog := DefaultCatalog()
	for n := 1; n <= 7; n++ {
		for _, snap := range allSequences(n) {
			alternating, consecutive := false, false
			for _, m := range MatchPatterns(snap, catalog) {
				if m.Type == Alternating {
					alternating = true
				}
				if m.Type.RunLength() > 1 {
					consecutive = true
				}
			}
			if alternating && consecutive {
				t.Fatalf("%s matched both alternating and consecutive", snap)
			}
		}
	}
}

func TestMatchWithFallbackNeverEmpty(t *testing.T) {
	sparse := mustCatalog(t,
		Pattern{ID: "basic", Type: Basic, Face: Any, Length: 1, IsAttack: true, Bonus: 2},
		Pattern{ID: "heads-5", Type: Consecutive5, Face: Head, IsAttack: true, Bonus: 10},
	)
	noFallback := mustCatalog(t, Pattern{ID: "heads-5", Type: Consecutive5, Face: Head, IsAttack: true, Bonus: 10})
	for _, catalog := range []*Catalog{sparse, noFallback, mustCatalog(t)} {
		for n := 1; n <= 6; n++ {
			for _, snap := range allSequences(n) {
				got, err := MatchWithFallback(snap, catalog)
				if err != nil {
					t.Fatalf("%s: %v", snap, err)
				}
				if len(got) == 0 {
					t.Fatalf("%s: empty result", snap)
				}
			}
		}
	}
}

func TestMatchWithFallbackUsesRegisteredBasic(t *testing.T) {
	catalog := mustCatalog(t,
		Pattern{ID: "basic", Type: Basic, Face: Any, Length: 1, IsAttack: true, Bonus: 2},
		Pattern{ID: "heads-5", Type: Consecutive5, Face: Head, IsAttack: true, Bonus: 10},
	)
	got, err := MatchWithFallback(mustSnapshot(t, "HTTH"), catalog)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if len(got) != 1 || got[0].ID != "basic" {
		t.Fatalf("got %v, want [basic]", MatchIDs(got))
	}
}

func TestDegradedBasicScalesWithRun(t *testing.T) {
	got, err := MatchWithFallback(mustSnapshot(t, "HTTTH"), mustCatalog(t))
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	m := got[0]
	if m.ID != "degraded-basic" || m.Bonus != 6 || m.IsAttack {
		t.Fatalf("degraded = %v, want defense bonus 6", m.Pattern)
	}
}

func TestMatchWithFallbackEmptySnapshot(t *testing.T) {
	if _, err := MatchWithFallback(Snapshot{}, DefaultCatalog()); !errors.Is(err, ErrEmptyPatternSet) {
		t.Fatalf("err = %v, want ErrEmptyPatternSet", err)
	}
}

func TestMatchOrderingIsDeterministic(t *testing.T) {
	catalog := mustCatalog(t,
		Pattern{ID: "guard-2", Type: Consecutive2, Face: Tail, IsAttack: false, Bonus: 9},
		Pattern{ID: "any-2", Type: Consecutive2, Face: Any, IsAttack: true, Bonus: 4},
		Pattern{ID: "heads-3", Type: Consecutive3, Face: Head, IsAttack: true, Bonus: 4},
		Pattern{ID: "heads-2", Type: Consecutive2, Face: Head, IsAttack: true, Bonus: 4},
	)
	got := MatchIDs(MatchPatterns(mustSnapshot(t, "HHHTT"), catalog))
	want := []string{"heads-2", "any-2", "heads-3", "guard-2"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}
