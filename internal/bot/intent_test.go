package bot

import (
	"errors"
	"math/rand"
	"testing"

	"coinclash/internal/domain"
)

func newFighter(t *testing.T, id string, side domain.Side, health int, coins string) *domain.Combatant {
	t.Helper()
	c, err := domain.NewCombatant(domain.CombatantConfig{ID: id, Side: side, MaxHealth: 40, Health: health, Coins: len(coins)})
	if err != nil {
		t.Fatalf("new combatant: %v", err)
	}
	snap, err := domain.ParseSnapshot(coins)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := c.Coins.Set(snap); err != nil {
		t.Fatalf("set coins: %v", err)
	}
	return c
}

func TestChooseIntentMissingCombatant(t *testing.T) {
	_, err := ChooseIntent(Input{Catalog: domain.DefaultCatalog()}, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrMissingCombatant) {
		t.Fatalf("err = %v, want ErrMissingCombatant", err)
	}
}

func TestChooseIntentIsReproducible(t *testing.T) {
	for _, p := range Personalities {
		t.Run(string(p), func(t *testing.T) {
			monster := newFighter(t, "slime", domain.SideEnemy, 40, "HHTTT")
			player := newFighter(t, "hero", domain.SidePlayer, 40, "HTHHT")
			in := Input{Monster: monster, Player: player, Catalog: domain.DefaultCatalog(), Personality: p, Phase: Phase1}
			for seed := int64(1); seed <= 20; seed++ {
				a, err := ChooseIntent(in, rand.New(rand.NewSource(seed)))
				if err != nil {
					t.Fatalf("choose: %v", err)
				}
				b, _ := ChooseIntent(in, rand.New(rand.NewSource(seed)))
				if a.Pattern.ID != b.Pattern.ID {
					t.Fatalf("seed %d: %s vs %s", seed, a.Pattern.ID, b.Pattern.ID)
				}
				if a.Source != "slime" || a.Faces.String() != "HHTTT" {
					t.Fatalf("intent = %+v", a)
				}
			}
		})
	}
}

func TestStrategicTakesLethal(t *testing.T) {
	monster := newFighter(t, "slime", domain.SideEnemy, 40, "HHTTT")
	player := newFighter(t, "hero", domain.SidePlayer, 3, "HHHHH")
	in := Input{Monster: monster, Player: player, Catalog: domain.DefaultCatalog(), Personality: Strategic}
	got, err := ChooseIntent(in, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if got.Pattern.ID != "heads-2" {
		t.Fatalf("strategic chose %s, want heads-2", got.Pattern.ID)
	}
}

func TestStrategicGuardsAgainstThreat(t *testing.T) {
	monster := newFighter(t, "slime", domain.SideEnemy, 40, "HHTTT")
	player := newFighter(t, "hero", domain.SidePlayer, 40, "HHHHH")
	in := Input{Monster: monster, Player: player, Catalog: domain.DefaultCatalog(), Personality: Strategic}
	got, err := ChooseIntent(in, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if got.Pattern.ID != "tails-3" {
		t.Fatalf("strategic chose %s, want tails-3", got.Pattern.ID)
	}
}

func TestPersonalityBias(t *testing.T) {
	offered := domain.MatchPatterns(mustParse(t, "HHTTT"), domain.DefaultCatalog())
	rate := func(p Personality) float64 {
		rng := rand.New(rand.NewSource(42))
		attacks := 0
		const n = 2000
		for i := 0; i < n; i++ {
			if SelectPattern(offered, Situation{Personality: p, Phase: Phase1}, rng).IsAttack {
				attacks++
			}
		}
		return float64(attacks) / n
	}
	if got := rate(Aggressive); got < 0.5 {
		t.Fatalf("aggressive attack rate = %.2f, want >= 0.5", got)
	}
	if got := rate(Defensive); got > 0.3 {
		t.Fatalf("defensive attack rate = %.2f, want <= 0.3", got)
	}
}

func TestChaoticCoversEveryPattern(t *testing.T) {
	offered := domain.MatchPatterns(mustParse(t, "HHTTT"), domain.DefaultCatalog())
	rng := rand.New(rand.NewSource(5))
	seen := map[string]bool{}
	for i := 0; i < 300; i++ {
		seen[SelectPattern(offered, Situation{Personality: Chaotic}, rng).ID] = true
	}
	if len(seen) != len(offered) {
		t.Fatalf("chaotic picked %v of %v", seen, domain.MatchIDs(offered))
	}
}

func TestSelectPatternSingleOption(t *testing.T) {
	offered := domain.MatchPatterns(mustParse(t, "HTHTH"), domain.DefaultCatalog())
	got := SelectPattern(offered, Situation{Personality: Aggressive}, rand.New(rand.NewSource(1)))
	if got.ID != "alternating" {
		t.Fatalf("got %s, want alternating", got.ID)
	}
}

func mustParse(t *testing.T, s string) domain.Snapshot {
	t.Helper()
	snap, err := domain.ParseSnapshot(s)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return snap
}
