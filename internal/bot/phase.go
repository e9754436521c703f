package bot

import "coinclash/internal/domain"

// BattlePhase describes how far a monster has been worn down.
type BattlePhase int

const (
	// Phase1 is above 75% health.
	Phase1 BattlePhase = iota
	// Phase2 is above 50% and at most 75% health.
	Phase2
	// Phase3 is from 25% to 50% health.
	Phase3
	// PhaseFinal is below 25% health.
	PhaseFinal
)

func (p BattlePhase) String() string {
	switch p {
	case Phase1:
		return "phase1"
	case Phase2:
		return "phase2"
	case Phase3:
		return "phase3"
	case PhaseFinal:
		return "final"
	default:
		return "unknown"
	}
}

// DetectPhase infers the phase from the monster's health fraction.
func DetectPhase(monster *domain.Combatant) BattlePhase {
	if monster == nil || monster.MaxHealth <= 0 {
		return Phase1
	}
	h, m := monster.Health, monster.MaxHealth
	switch {
	case h*4 > m*3:
		return Phase1
	case h*2 > m:
		return Phase2
	case h*4 >= m:
		return Phase3
	default:
		return PhaseFinal
	}
}
