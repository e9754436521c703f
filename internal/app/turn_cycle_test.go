package app

import (
	"context"
	"testing"

	"coinclash/internal/bot"
	"coinclash/internal/domain"
)

// offerFaces replaces the player's toss so the next confirmation is known.
func offerFaces(t *testing.T, c *Combat, faces string) {
	t.Helper()
	setCoins(t, c.player, faces)
	c.offerPatterns()
	c.flush()
}

// planEnemy replaces the pending intent with p executed on faces.
func planEnemy(t *testing.T, c *Combat, faces string, p domain.Pattern) {
	t.Helper()
	snap, err := domain.ParseSnapshot(faces)
	if err != nil {
		t.Fatalf("parse %q: %v", faces, err)
	}
	c.intent = &bot.Intent{
		Pattern: domain.MatchedPattern{Pattern: p},
		Source:  c.enemy.ID,
		Faces:   snap,
		Turn:    c.turn + 1,
	}
}

var enemyBrace = domain.Pattern{ID: "brace", Type: domain.Basic, Face: domain.Any}

func confirm(t *testing.T, c *Combat, id string) []Event {
	t.Helper()
	evs, err := c.ConfirmPattern(context.Background(), id)
	if err != nil {
		t.Fatalf("confirm %q: %v", id, err)
	}
	return evs
}

func hitsOn(evs []Event, source, target string) []DamageAppliedPayload {
	var out []DamageAppliedPayload
	for _, d := range findEvents[DamageAppliedPayload](evs, EventDamageApplied) {
		if d.SourceID == source && d.TargetID == target {
			out = append(out, d)
		}
	}
	return out
}

func TestBarricadeKeepsGuardIntoNextOwnTurn(t *testing.T) {
	combat, _ := startCombat(t, testRequest(21, 100, 100))
	offerFaces(t, combat, "TTTTT")
	planEnemy(t, combat, "HTTHT", enemyBrace)

	evs := confirm(t, combat, "all-tails")
	if combat.Turn() != 3 || combat.Phase() != PhasePlayerDecision {
		t.Fatalf("turn %d phase %s, want 3 player_decision", combat.Turn(), combat.Phase())
	}
	if combat.Player().Guard != 14 {
		t.Fatalf("guard at turn 3 = %d, want 14 kept by barricade", combat.Player().Guard)
	}
	if combat.Player().Effects.Has(domain.EffectBarricade) {
		t.Fatal("barricade should be spent by the turn start it covered")
	}
	spent := false
	for _, p := range findEvents[StatusEffectsChangedPayload](evs, EventStatusEffectsChanged) {
		if p.CombatantID == "hero" && len(p.Effects) == 0 {
			spent = true
		}
	}
	if !spent {
		t.Fatal("no status change reported when barricade was spent")
	}

	offerFaces(t, combat, "HTHTH")
	planEnemy(t, combat, "HTTHT", enemyBrace)
	confirm(t, combat, "alternating")
	if combat.Player().Guard != 0 {
		t.Fatalf("guard at turn 5 = %d, want 0 once barricade ran out", combat.Player().Guard)
	}
}

func TestMarkRaisesGrantersNextHit(t *testing.T) {
	combat, _ := startCombat(t, testRequest(22, 100, 100))
	offerFaces(t, combat, "HTHTH")
	planEnemy(t, combat, "HTTHT", enemyBrace)
	confirm(t, combat, "alternating")

	mark, ok := combat.Enemy().Effects.Get(domain.EffectMark)
	if !ok {
		t.Fatalf("enemy effects at turn 3 = %v, want mark", combat.Enemy().Effects.Effects())
	}
	if mark.Remaining != 1 {
		t.Fatalf("mark remaining = %d, want 1", mark.Remaining)
	}

	offerFaces(t, combat, "HHTHT")
	planEnemy(t, combat, "HTTHT", enemyBrace)
	evs := confirm(t, combat, "heads-2")
	hits := hitsOn(evs, "hero", "slime")
	if len(hits) != 1 || hits[0].Amount != 6 {
		t.Fatalf("hits = %+v, want one hit of 4+2", hits)
	}
	if combat.Enemy().Health != 89 {
		t.Fatalf("enemy health = %d, want 89", combat.Enemy().Health)
	}
	if combat.Enemy().Effects.Has(domain.EffectMark) {
		t.Fatal("mark should expire after the hit it boosted")
	}
}

func TestWoundRaisesGrantersNextHit(t *testing.T) {
	combat, _ := startCombat(t, testRequest(23, 100, 100))
	offerFaces(t, combat, "HHHHH")
	planEnemy(t, combat, "HTTHT", enemyBrace)
	confirm(t, combat, "all-heads")

	if !combat.Enemy().Effects.Has(domain.EffectWound) {
		t.Fatalf("enemy effects at turn 3 = %v, want wound", combat.Enemy().Effects.Effects())
	}

	offerFaces(t, combat, "HHTHT")
	planEnemy(t, combat, "HTTHT", enemyBrace)
	evs := confirm(t, combat, "heads-2")
	hits := hitsOn(evs, "hero", "slime")
	if len(hits) != 1 || hits[0].Amount != 5 {
		t.Fatalf("hits = %+v, want one hit of 4 +25%%", hits)
	}
	if combat.Enemy().Health != 81 {
		t.Fatalf("enemy health = %d, want 81", combat.Enemy().Health)
	}
}

func TestFortifyReducesOpponentsNextHit(t *testing.T) {
	combat, _ := startCombat(t, testRequest(24, 100, 100))
	offerFaces(t, combat, "TTTTH")
	slam := domain.Pattern{ID: "slam", Type: domain.Basic, Face: domain.Any, IsAttack: true, Bonus: 20}
	planEnemy(t, combat, "HHTHH", slam)

	evs := confirm(t, combat, "tails-4")
	hits := hitsOn(evs, "slime", "hero")
	if len(hits) != 1 || hits[0].Amount != 10 || hits[0].Absorbed != 8 {
		t.Fatalf("hits = %+v, want 20-2 with 8 absorbed", hits)
	}
	if combat.Player().Health != 90 {
		t.Fatalf("player health = %d, want 90", combat.Player().Health)
	}
}

func TestLockedCoinSurvivesNextTossThenReleases(t *testing.T) {
	combat, _ := startCombat(t, testRequest(25, 100, 100))
	if _, err := combat.UseActiveSkill(context.Background(), domain.SkillLockOne, domain.SkillParams{I: 2}); err != nil {
		t.Fatalf("lock: %v", err)
	}
	want := combat.Player().Coins.Snapshot().At(2)
	planEnemy(t, combat, "HTTHT", enemyBrace)

	confirm(t, combat, combat.Offered()[0].ID)
	if combat.Turn() != 3 {
		t.Fatalf("turn = %d, want 3", combat.Turn())
	}
	if got := combat.Player().Coins.Snapshot().At(2); got != want {
		t.Fatalf("locked coin = %v after toss, want %v", got, want)
	}
	locked, err := combat.Player().Coins.IsLocked(2)
	if err != nil || locked {
		t.Fatalf("coin 2 locked = %v, %v; want released after the toss", locked, err)
	}
}
