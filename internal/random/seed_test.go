package random

import "testing"

func TestNewSeedNonZero(t *testing.T) {
	seen := map[int64]bool{}
	for range 16 {
		seed, err := NewSeed()
		if err != nil {
			t.Fatalf("NewSeed() error = %v", err)
		}
		if seed == 0 {
			t.Fatal("NewSeed() = 0, want non-zero")
		}
		seen[seed] = true
	}
	if len(seen) < 2 {
		t.Fatalf("NewSeed() produced %d distinct seeds, want several", len(seen))
	}
}
