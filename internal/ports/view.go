package ports

import (
	"context"

	"coinclash/internal/bot"
	"coinclash/internal/domain"
)

// DamageReport describes health lost by a combatant.
type DamageReport struct {
	// SourceID is empty for damage over time.
	SourceID string
	TargetID string
	Amount   int
	Absorbed int
	Cause    string
}

// CombatView receives combat notifications for presentation. Implementations
// must not call back into the combat.
type CombatView interface {
	OnCoinsTossed(ctx context.Context, combatantID string, faces []domain.Face, locked []bool)
	OnPatternsAvailable(ctx context.Context, combatantID string, patterns []domain.MatchedPattern)
	OnIntentRevealed(ctx context.Context, intent bot.Intent)
	OnDamageApplied(ctx context.Context, report DamageReport)
	OnStatusEffectsChanged(ctx context.Context, combatantID string, effects []domain.StatusEffect)
	OnTurnEnded(ctx context.Context, endedActorID, nextActorID string)
	// OnCombatEnded receives victory, defeat or aborted as outcome.
	OnCombatEnded(ctx context.Context, outcome, winnerID, reason string)
}
