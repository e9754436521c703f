package domain

import (
	"errors"
	"testing"
)

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name    string
		entries []Pattern
	}{
		{"missing id", []Pattern{{Type: Consecutive2, Face: Head, Bonus: 1}}},
		{"duplicate id", []Pattern{
			{ID: "a", Type: Consecutive2, Face: Head, Bonus: 1},
			{ID: "a", Type: Consecutive3, Face: Head, Bonus: 2},
		}},
		{"wrong length", []Pattern{{ID: "a", Type: Consecutive3, Face: Head, Length: 2, Bonus: 1}}},
		{"negative bonus", []Pattern{{ID: "a", Type: Consecutive2, Face: Head, Bonus: -1}}},
		{"bonus shrinks with length", []Pattern{
			{ID: "a", Type: Consecutive2, Face: Head, IsAttack: true, Bonus: 6},
			{ID: "b", Type: Consecutive3, Face: Head, IsAttack: true, Bonus: 4},
		}},
		{"two fallbacks", []Pattern{
			{ID: "a", Type: Basic, Face: Any, Bonus: 1},
			{ID: "b", Type: Basic, Face: Any, Bonus: 1},
		}},
		{"alternating with face", []Pattern{{ID: "a", Type: Alternating, Face: Head, Bonus: 1}}},
		{"same shape twice", []Pattern{
			{ID: "a", Type: Consecutive2, Face: Tail, Bonus: 1},
			{ID: "b", Type: Consecutive2, Face: Tail, IsAttack: true, Bonus: 1},
		}},
		{"short every-turn debuff", []Pattern{{ID: "a", Type: Alternating, Face: Any, IsAttack: true, Bonus: 1,
			Effects: []EffectGrant{{Type: EffectMark, Magnitude: 1, Duration: 2, Target: TargetOpponent}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCatalog(tt.entries); !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("err = %v, want ErrInvalidCatalog", err)
			}
		})
	}
}

func TestCatalogFillsConsecutiveLength(t *testing.T) {
	c, err := NewCatalog([]Pattern{{ID: "h4", Type: Consecutive4, Face: Head, Bonus: 8}})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	p, ok := c.Lookup("h4")
	if !ok || p.Length != 4 {
		t.Fatalf("lookup = %+v, %v", p, ok)
	}
}

func TestDefaultCatalogHasFallback(t *testing.T) {
	c := DefaultCatalog()
	fb, ok := c.Fallback()
	if !ok || fb.Type != Basic {
		t.Fatalf("fallback = %+v, %v", fb, ok)
	}
	if _, ok := c.Lookup(fb.ID); !ok {
		t.Fatalf("fallback not found by id")
	}
	if c.Len() != 11 {
		t.Fatalf("entries = %d, want 11", c.Len())
	}
}

func TestParsePatternType(t *testing.T) {
	got, err := ParsePatternType("All_Of_One")
	if err != nil || got != AllOfOne {
		t.Fatalf("ParsePatternType = %v, %v", got, err)
	}
	if _, err := ParsePatternType("pyramid"); err == nil {
		t.Fatalf("expected error")
	}
}
