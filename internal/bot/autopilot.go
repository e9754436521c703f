package bot

import (
	"math/rand"

	"coinclash/internal/domain"
)

// Autopilot picks patterns on behalf of a player, for simulations and
// unattended runs.
type Autopilot struct {
	Personality Personality
	Catalog     *domain.Catalog
}

// Choose picks one of the offered patterns for self. The player's phase is
// read from its own health, mirroring how monsters read theirs.
func (a Autopilot) Choose(offered []domain.MatchedPattern, self, opponent *domain.Combatant, rng *rand.Rand) domain.MatchedPattern {
	var lastSeen domain.Snapshot
	if opponent != nil {
		lastSeen = opponent.Coins.Snapshot()
	}
	return SelectPattern(offered, Situation{
		Self:             self,
		Opponent:         opponent,
		OpponentLastSeen: lastSeen,
		Catalog:          a.Catalog,
		Personality:      a.Personality,
		Phase:            DetectPhase(self),
	}, rng)
}

// SkillPlan is an active skill the autopilot wants to use before choosing.
type SkillPlan struct {
	Skill  domain.SkillType
	Params domain.SkillParams
}

// PlanSkill suggests flipping the coin that most extends the longest head run
// when the current coins offer no attack. It returns false when no skill
// helps or the charge is spent.
func (a Autopilot) PlanSkill(self *domain.Combatant) (SkillPlan, bool) {
	if self == nil || !self.SkillCharge || self.Effects.Has(domain.EffectSeal) {
		return SkillPlan{}, false
	}
	faces := self.Coins.Snapshot()
	for _, m := range domain.MatchPatterns(faces, a.Catalog) {
		if m.IsAttack {
			return SkillPlan{}, false
		}
	}
	best, bestLen := -1, 0
	for i := 0; i < faces.Len(); i++ {
		if faces.At(i) == domain.Head {
			continue
		}
		f := faces.Faces()
		f[i] = domain.Head
		if n := longestHeads(f); n > bestLen {
			best, bestLen = i, n
		}
	}
	if best < 0 || bestLen < 2 {
		return SkillPlan{}, false
	}
	return SkillPlan{Skill: domain.SkillFlipOne, Params: domain.SkillParams{I: best}}, true
}

func longestHeads(faces []domain.Face) int {
	best, cur := 0, 0
	for _, f := range faces {
		if f == domain.Head {
			cur++
			best = max(best, cur)
		} else {
			cur = 0
		}
	}
	return best
}
