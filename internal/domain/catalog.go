package domain

import (
	"fmt"
	"sort"
)

// Catalog is the immutable library of patterns a combatant can score.
type Catalog struct {
	entries  []Pattern
	fallback *Pattern
}

// NewCatalog validates entries and builds a Catalog. A Basic entry, if any,
// becomes the fallback action; at most one is allowed.
func NewCatalog(entries []Pattern) (*Catalog, error) {
	type shape struct {
		t    PatternType
		face Face
	}
	c := &Catalog{}
	seen := make(map[string]bool, len(entries))
	shapes := make(map[shape]string, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("entry %s without id: %w", e, ErrInvalidCatalog)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("duplicate id %q: %w", e.ID, ErrInvalidCatalog)
		}
		seen[e.ID] = true
		if e.Bonus < 0 {
			return nil, fmt.Errorf("entry %q has negative bonus: %w", e.ID, ErrInvalidCatalog)
		}
		if k := e.Type.RunLength(); k > 0 {
			if e.Length == 0 {
				e.Length = k
			}
			if e.Length != k {
				return nil, fmt.Errorf("entry %q length %d, want %d: %w", e.ID, e.Length, k, ErrInvalidCatalog)
			}
		}
		if e.Type == Alternating && e.Face != Any {
			return nil, fmt.Errorf("alternating entry %q must use face any: %w", e.ID, ErrInvalidCatalog)
		}
		for _, g := range e.Effects {
			if g.Target == TargetOpponent && g.Type.Def().EveryTurn && g.Duration < MinEveryTurnDuration {
				return nil, fmt.Errorf("entry %q grants %s for %d turns, want at least %d: %w",
					e.ID, g.Type, g.Duration, MinEveryTurnDuration, ErrInvalidCatalog)
			}
		}
		e.Effects = append([]EffectGrant(nil), e.Effects...)
		if e.Type == Basic {
			if c.fallback != nil {
				return nil, fmt.Errorf("second fallback %q: %w", e.ID, ErrInvalidCatalog)
			}
			fb := e
			c.fallback = &fb
			continue
		}
		sh := shape{e.Type, e.Face}
		if other, ok := shapes[sh]; ok {
			return nil, fmt.Errorf("entries %q and %q share %s/%s: %w", other, e.ID, e.Type, e.Face, ErrInvalidCatalog)
		}
		shapes[sh] = e.ID
		c.entries = append(c.entries, e)
	}
	if err := checkMonotonic(c.entries); err != nil {
		return nil, err
	}
	return c, nil
}

// checkMonotonic rejects Consecutive entries whose bonus shrinks as the run grows.
func checkMonotonic(entries []Pattern) error {
	type key struct {
		face   Face
		attack bool
	}
	groups := make(map[key][]Pattern)
	for _, e := range entries {
		if e.Type.RunLength() == 0 {
			continue
		}
		k := key{e.Face, e.IsAttack}
		groups[k] = append(groups[k], e)
	}
	for _, group := range groups {
		sort.Slice(group, func(i, j int) bool { return group[i].Length < group[j].Length })
		for i := 1; i < len(group); i++ {
			if group[i].Bonus < group[i-1].Bonus {
				return fmt.Errorf("bonus of %q below %q: %w", group[i].ID, group[i-1].ID, ErrInvalidCatalog)
			}
		}
	}
	return nil
}

// Entries returns a copy of the scannable entries.
func (c *Catalog) Entries() []Pattern {
	if c == nil {
		return nil
	}
	return append([]Pattern(nil), c.entries...)
}

// Len returns the number of scannable entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Fallback returns the registered basic action.
func (c *Catalog) Fallback() (Pattern, bool) {
	if c == nil || c.fallback == nil {
		return Pattern{}, false
	}
	return *c.fallback, true
}

// Lookup finds an entry, fallback included, by ID.
func (c *Catalog) Lookup(id string) (Pattern, bool) {
	if c == nil {
		return Pattern{}, false
	}
	for _, e := range c.entries {
		if e.ID == id {
			return e, true
		}
	}
	if c.fallback != nil && c.fallback.ID == id {
		return *c.fallback, true
	}
	return Pattern{}, false
}

// DefaultCatalog returns the stock pattern library. Consecutive bonuses are
// 2 per coin of run, heads attack and tails defend.
func DefaultCatalog() *Catalog {
	entries := []Pattern{
		{ID: "basic", Name: "Basic Strike", Type: Basic, Face: Any, Length: 1, IsAttack: true, Bonus: 2},
		{ID: "alternating", Name: "Feint", Type: Alternating, Face: Any, IsAttack: true, Bonus: 5,
			Effects: []EffectGrant{{Type: EffectMark, Magnitude: 2, Duration: 3, Target: TargetOpponent}}},
		{ID: "all-heads", Name: "Onslaught", Type: AllOfOne, Face: Head, IsAttack: true, Bonus: 14,
			Effects: []EffectGrant{{Type: EffectWound, Magnitude: 1, Duration: 3, Target: TargetOpponent}}},
		{ID: "all-tails", Name: "Bulwark", Type: AllOfOne, Face: Tail, IsAttack: false, Bonus: 14,
			Effects: []EffectGrant{{Type: EffectBarricade, Magnitude: 1, Duration: 1, Target: TargetSelf}}},
	}
	for k := 2; k <= 5; k++ {
		t, _ := ConsecutiveFor(k)
		attack := Pattern{ID: fmt.Sprintf("heads-%d", k), Name: fmt.Sprintf("Strike x%d", k), Type: t, Face: Head, Length: k, IsAttack: true, Bonus: 2 * k}
		guard := Pattern{ID: fmt.Sprintf("tails-%d", k), Name: fmt.Sprintf("Guard x%d", k), Type: t, Face: Tail, Length: k, IsAttack: false, Bonus: 2 * k}
		switch k {
		case 3:
			attack.Effects = []EffectGrant{{Type: EffectBleed, Magnitude: 1, Duration: 2, Target: TargetOpponent}}
		case 4:
			attack.Effects = []EffectGrant{{Type: EffectPoison, Magnitude: 2, Duration: 3, Target: TargetOpponent}}
			guard.Effects = []EffectGrant{{Type: EffectFortify, Magnitude: 2, Duration: 2, Target: TargetSelf}}
		case 5:
			attack.Effects = []EffectGrant{{Type: EffectAmplify, Magnitude: 2, Duration: 2, Target: TargetSelf}}
			guard.Effects = []EffectGrant{{Type: EffectRegen, Magnitude: 2, Duration: 3, Target: TargetSelf}}
		}
		entries = append(entries, attack, guard)
	}
	c, err := NewCatalog(entries)
	if err != nil {
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return c
}
