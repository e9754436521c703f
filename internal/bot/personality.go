package bot

import (
	"fmt"
	"strings"
)

// Personality selects the policy an AI uses to pick among offered patterns.
type Personality string

const (
	Balanced   Personality = "balanced"
	Aggressive Personality = "aggressive"
	Defensive  Personality = "defensive"
	Strategic  Personality = "strategic"
	Chaotic    Personality = "chaotic"
)

// Personalities lists every known personality.
var Personalities = []Personality{Balanced, Aggressive, Defensive, Strategic, Chaotic}

// ParsePersonality converts a config value to a Personality. Empty means Balanced.
func ParsePersonality(s string) (Personality, error) {
	want := Personality(strings.ToLower(strings.TrimSpace(s)))
	if want == "" {
		return Balanced, nil
	}
	for _, p := range Personalities {
		if p == want {
			return p, nil
		}
	}
	return Balanced, fmt.Errorf("unknown personality: %q", s)
}
