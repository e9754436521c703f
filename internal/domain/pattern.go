package domain

import (
	"fmt"
	"strings"
)

// PatternType identifies the shape a pattern recognizes. The declaration
// order is the deterministic tie-break order used by the matcher.
type PatternType int

const (
	Consecutive2 PatternType = iota
	Consecutive3
	Consecutive4
	Consecutive5
	AllOfOne
	Alternating
	// Basic is the fallback action. The scan never produces it.
	Basic
)

var patternTypeNames = map[PatternType]string{
	Consecutive2: "consecutive2",
	Consecutive3: "consecutive3",
	Consecutive4: "consecutive4",
	Consecutive5: "consecutive5",
	AllOfOne:     "all_of_one",
	Alternating:  "alternating",
	Basic:        "basic",
}

func (t PatternType) String() string {
	if name, ok := patternTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("pattern_type(%d)", int(t))
}

// ParsePatternType converts a config name to a PatternType.
func ParsePatternType(s string) (PatternType, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for t, name := range patternTypeNames {
		if name == want {
			return t, nil
		}
	}
	return Basic, fmt.Errorf("unknown pattern type %q", s)
}

// RunLength returns the minimum run k for Consecutive{k}, or 0 for other types.
func (t PatternType) RunLength() int {
	switch t {
	case Consecutive2:
		return 2
	case Consecutive3:
		return 3
	case Consecutive4:
		return 4
	case Consecutive5:
		return 5
	default:
		return 0
	}
}

// ConsecutiveFor returns the Consecutive type for run length k.
func ConsecutiveFor(k int) (PatternType, bool) {
	switch k {
	case 2:
		return Consecutive2, true
	case 3:
		return Consecutive3, true
	case 4:
		return Consecutive4, true
	case 5:
		return Consecutive5, true
	}
	return Basic, false
}

// EffectTarget says whose ledger receives a granted effect.
type EffectTarget int

const (
	TargetOpponent EffectTarget = iota
	TargetSelf
)

func (t EffectTarget) String() string {
	if t == TargetSelf {
		return "self"
	}
	return "opponent"
}

// ParseEffectTarget converts "self" or "opponent" to an EffectTarget. An
// empty string means the opponent.
func ParseEffectTarget(s string) (EffectTarget, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "opponent", "target":
		return TargetOpponent, nil
	case "self":
		return TargetSelf, nil
	}
	return TargetOpponent, fmt.Errorf("unknown effect target %q", s)
}

// EffectGrant is a status effect applied when a pattern resolves.
type EffectGrant struct {
	Type      EffectType
	Magnitude int
	Duration  int
	Target    EffectTarget
}

// Pattern is a catalog entry.
type Pattern struct {
	ID       string
	Name     string
	Type     PatternType
	Face     Face
	Length   int
	IsAttack bool
	Bonus    int
	Effects  []EffectGrant
}

// Kind returns "attack" or "defense".
func (p Pattern) Kind() string {
	if p.IsAttack {
		return "attack"
	}
	return "defense"
}

func (p Pattern) String() string {
	return fmt.Sprintf("%s(%s,%s,bonus=%d)", p.Type, p.Face, p.Kind(), p.Bonus)
}

// MatchedPattern is a catalog entry satisfied by a concrete coin sequence.
// Start and End are inclusive indices of the canonical run.
type MatchedPattern struct {
	Pattern
	Start   int
	End     int
	Indices []int
}

// span builds the inclusive index list start..end.
func span(start, end int) []int {
	if end < start {
		return nil
	}
	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}
