package bot

// PhaseWeights bias pattern sampling for one battle phase.
type PhaseWeights struct {
	AttackWeight  float64
	DefenseWeight float64
	// BonusWeight scales a pattern's weight by its bonus.
	BonusWeight float64
	// EffectWeight scales a pattern's weight by its granted effects.
	EffectWeight float64
}

// Tuning holds the weights of a personality across phases.
type Tuning struct {
	Phase1 PhaseWeights
	Phase2 PhaseWeights
	Phase3 PhaseWeights
	Final  PhaseWeights
}

// ForPhase returns the weights that match the supplied phase.
func (t Tuning) ForPhase(phase BattlePhase) PhaseWeights {
	switch phase {
	case Phase2:
		return t.Phase2
	case Phase3:
		return t.Phase3
	case PhaseFinal:
		return t.Final
	default:
		return t.Phase1
	}
}

// DefaultTuning is used by the sampling personalities.
var DefaultTuning = map[Personality]Tuning{
	Balanced: {
		Phase1: PhaseWeights{AttackWeight: 1.0, DefenseWeight: 1.0, BonusWeight: 0.15, EffectWeight: 0.1},
		Phase2: PhaseWeights{AttackWeight: 1.0, DefenseWeight: 1.0, BonusWeight: 0.15, EffectWeight: 0.1},
		Phase3: PhaseWeights{AttackWeight: 1.0, DefenseWeight: 1.2, BonusWeight: 0.2, EffectWeight: 0.1},
		Final:  PhaseWeights{AttackWeight: 1.2, DefenseWeight: 1.2, BonusWeight: 0.25, EffectWeight: 0.05},
	},
	Aggressive: {
		Phase1: PhaseWeights{AttackWeight: 3.0, DefenseWeight: 0.5, BonusWeight: 0.2, EffectWeight: 0.2},
		Phase2: PhaseWeights{AttackWeight: 3.0, DefenseWeight: 0.5, BonusWeight: 0.2, EffectWeight: 0.2},
		Phase3: PhaseWeights{AttackWeight: 3.5, DefenseWeight: 0.4, BonusWeight: 0.25, EffectWeight: 0.15},
		Final:  PhaseWeights{AttackWeight: 5.0, DefenseWeight: 0.2, BonusWeight: 0.3, EffectWeight: 0.1},
	},
	Defensive: {
		Phase1: PhaseWeights{AttackWeight: 0.6, DefenseWeight: 2.5, BonusWeight: 0.15, EffectWeight: 0.1},
		Phase2: PhaseWeights{AttackWeight: 0.6, DefenseWeight: 2.5, BonusWeight: 0.15, EffectWeight: 0.1},
		Phase3: PhaseWeights{AttackWeight: 0.5, DefenseWeight: 3.0, BonusWeight: 0.2, EffectWeight: 0.1},
		// Cornered defenders lash out.
		Final: PhaseWeights{AttackWeight: 1.5, DefenseWeight: 2.0, BonusWeight: 0.25, EffectWeight: 0.1},
	},
}

// StrategicGuardBias is added to defense values when the strategic monster
// is in its final phase.
const StrategicGuardBias = 2.0
