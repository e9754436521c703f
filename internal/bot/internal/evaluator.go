package internal

import "coinclash/internal/domain"

const (
	// LethalBonus dominates every other score once a pattern can finish the opponent.
	LethalBonus = 1000.0
	// EffectValue is the score of one stack-turn of a granted effect.
	EffectValue = 0.5
)

// ExpectedDamage is the health an attack pattern would remove from defender
// right now, after both ledgers' damage passes and the defender's guard.
func ExpectedDamage(bonus int, attacker, defender *domain.Combatant) int {
	if attacker == nil || defender == nil {
		return bonus
	}
	dmg := defender.Effects.ModifyIncomingDamage(attacker.Effects.ModifyOutgoingDamage(bonus))
	return max(0, dmg-defender.Guard)
}

// Threat estimates the strongest attack opponent could land from the coins it
// last showed. A zero-length snapshot yields no threat.
func Threat(opponent, self *domain.Combatant, lastSeen domain.Snapshot, catalog *domain.Catalog) int {
	best := 0
	for _, m := range domain.MatchPatterns(lastSeen, catalog) {
		if !m.IsAttack {
			continue
		}
		dmg := self.Effects.ModifyIncomingDamage(opponent.Effects.ModifyOutgoingDamage(m.Bonus))
		best = max(best, dmg)
	}
	return best
}

// EffectScore values a pattern's grants by magnitude and duration.
func EffectScore(p domain.Pattern) float64 {
	score := 0.0
	for _, g := range p.Effects {
		turns := max(g.Duration, 1)
		score += EffectValue * float64(g.Magnitude*turns)
	}
	return score
}

// ExpectedValue scores a pattern for self against opponent given the threat
// self is facing. Attacks score their damage, lethal attacks dominate, and
// defenses score the part of the threat they would absorb.
func ExpectedValue(m domain.MatchedPattern, self, opponent *domain.Combatant, threat int) float64 {
	score := EffectScore(m.Pattern)
	if m.IsAttack {
		dmg := ExpectedDamage(m.Bonus, self, opponent)
		if opponent != nil && dmg >= opponent.Health {
			return LethalBonus + float64(dmg) + score
		}
		return float64(dmg) + score
	}
	uncovered := max(0, threat-self.Guard)
	return float64(min(m.Bonus, uncovered)) + score
}
