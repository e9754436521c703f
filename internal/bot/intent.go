package bot

import (
	"errors"
	"fmt"
	"math/rand"

	"coinclash/internal/bot/internal"
	"coinclash/internal/domain"
)

var ErrMissingCombatant = errors.New("intent needs both combatants")

// Intent is a monster's next action, computed a turn ahead so it can be shown
// to the player and then executed unchanged.
type Intent struct {
	Pattern     domain.MatchedPattern
	Source      string
	Faces       domain.Snapshot
	Phase       BattlePhase
	Personality Personality
	Turn        int
}

// Input is everything ChooseIntent looks at.
type Input struct {
	Monster     *domain.Combatant
	Player      *domain.Combatant
	Catalog     *domain.Catalog
	Personality Personality
	Phase       BattlePhase
	// PlayerLastSeen is the player's most recent coin snapshot; empty means
	// use the player's current coins.
	PlayerLastSeen domain.Snapshot
	Turn           int
}

// ChooseIntent picks the pattern the monster will execute from the patterns
// its current coins offer. It keeps no state between calls; all randomness
// comes from rng.
func ChooseIntent(in Input, rng *rand.Rand) (Intent, error) {
	if in.Monster == nil || in.Player == nil {
		return Intent{}, ErrMissingCombatant
	}
	faces := in.Monster.Coins.Snapshot()
	offered, err := domain.MatchWithFallback(faces, in.Catalog)
	if err != nil {
		return Intent{}, fmt.Errorf("monster %s offers nothing: %w", in.Monster.ID, err)
	}
	lastSeen := in.PlayerLastSeen
	if lastSeen.Len() == 0 {
		lastSeen = in.Player.Coins.Snapshot()
	}
	choice := SelectPattern(offered, Situation{
		Self:             in.Monster,
		Opponent:         in.Player,
		OpponentLastSeen: lastSeen,
		Catalog:          in.Catalog,
		Personality:      in.Personality,
		Phase:            in.Phase,
	}, rng)
	return Intent{
		Pattern:     choice,
		Source:      in.Monster.ID,
		Faces:       faces,
		Phase:       in.Phase,
		Personality: in.Personality,
		Turn:        in.Turn,
	}, nil
}

// Situation is the view a policy scores patterns against.
type Situation struct {
	Self             *domain.Combatant
	Opponent         *domain.Combatant
	OpponentLastSeen domain.Snapshot
	Catalog          *domain.Catalog
	Personality      Personality
	Phase            BattlePhase
}

// SelectPattern applies the personality's policy to a non-empty offered list.
func SelectPattern(offered []domain.MatchedPattern, s Situation, rng *rand.Rand) domain.MatchedPattern {
	switch len(offered) {
	case 0:
		return domain.MatchedPattern{}
	case 1:
		return offered[0]
	}
	switch s.Personality {
	case Chaotic:
		return offered[rng.Intn(len(offered))]
	case Strategic:
		return bestExpected(offered, s)
	}
	tuning, ok := DefaultTuning[s.Personality]
	if !ok {
		tuning = DefaultTuning[Balanced]
	}
	return sampleWeighted(offered, tuning.ForPhase(s.Phase), rng)
}

// bestExpected returns the offered pattern with the highest expected value.
// Ties keep the earlier pattern so the choice is deterministic.
func bestExpected(offered []domain.MatchedPattern, s Situation) domain.MatchedPattern {
	threat := 0
	if s.Opponent != nil && s.Self != nil {
		threat = internal.Threat(s.Opponent, s.Self, s.OpponentLastSeen, s.Catalog)
	}
	best := offered[0]
	bestScore := -1.0
	for _, m := range offered {
		score := internal.ExpectedValue(m, s.Self, s.Opponent, threat)
		if !m.IsAttack && s.Phase == PhaseFinal {
			score += StrategicGuardBias
		}
		if score > bestScore {
			best, bestScore = m, score
		}
	}
	return best
}

// PatternWeight is the sampling weight of m under w.
func PatternWeight(m domain.MatchedPattern, w PhaseWeights) float64 {
	base := w.DefenseWeight
	if m.IsAttack {
		base = w.AttackWeight
	}
	return base * (1 + w.BonusWeight*float64(m.Bonus)) * (1 + w.EffectWeight*internal.EffectScore(m.Pattern))
}

func sampleWeighted(offered []domain.MatchedPattern, w PhaseWeights, rng *rand.Rand) domain.MatchedPattern {
	total := 0.0
	weights := make([]float64, len(offered))
	for i, m := range offered {
		weights[i] = max(PatternWeight(m, w), 0)
		total += weights[i]
	}
	if total <= 0 {
		return offered[0]
	}
	r := rng.Float64() * total
	for i, wt := range weights {
		if r < wt {
			return offered[i]
		}
		r -= wt
	}
	return offered[len(offered)-1]
}
