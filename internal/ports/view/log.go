package view

import (
	"context"

	"coinclash/internal/bot"
	"coinclash/internal/domain"
	"coinclash/internal/ports"

	"go.uber.org/zap"
)

// LogView writes every notification to a zap logger. The simulator uses it
// in place of a renderer.
type LogView struct {
	logger *zap.Logger
}

// NewLogView returns a view logging through logger.
func NewLogView(logger *zap.Logger) *LogView {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogView{logger: logger}
}

func (v *LogView) OnCoinsTossed(_ context.Context, combatantID string, faces []domain.Face, locked []bool) {
	lockedCount := 0
	for _, l := range locked {
		if l {
			lockedCount++
		}
	}
	v.logger.Debug("coins tossed",
		zap.String("combatant", combatantID),
		zap.Stringer("faces", domain.NewSnapshot(faces...)),
		zap.Int("locked", lockedCount))
}

func (v *LogView) OnPatternsAvailable(_ context.Context, combatantID string, patterns []domain.MatchedPattern) {
	v.logger.Debug("patterns available",
		zap.String("combatant", combatantID),
		zap.Strings("patterns", domain.MatchIDs(patterns)))
}

func (v *LogView) OnIntentRevealed(_ context.Context, intent bot.Intent) {
	v.logger.Info("intent revealed",
		zap.String("source", intent.Source),
		zap.String("pattern", intent.Pattern.ID),
		zap.Bool("attack", intent.Pattern.IsAttack),
		zap.Int("bonus", intent.Pattern.Bonus),
		zap.Int("turn", intent.Turn))
}

func (v *LogView) OnDamageApplied(_ context.Context, r ports.DamageReport) {
	v.logger.Info("damage applied",
		zap.String("source", r.SourceID),
		zap.String("target", r.TargetID),
		zap.Int("amount", r.Amount),
		zap.Int("absorbed", r.Absorbed),
		zap.String("cause", r.Cause))
}

func (v *LogView) OnStatusEffectsChanged(_ context.Context, combatantID string, effects []domain.StatusEffect) {
	names := make([]string, len(effects))
	for i, e := range effects {
		names[i] = e.String()
	}
	v.logger.Debug("status effects changed",
		zap.String("combatant", combatantID),
		zap.Strings("effects", names))
}

func (v *LogView) OnTurnEnded(_ context.Context, endedActorID, nextActorID string) {
	v.logger.Debug("turn ended", zap.String("ended", endedActorID), zap.String("next", nextActorID))
}

func (v *LogView) OnCombatEnded(_ context.Context, outcome, winnerID, reason string) {
	v.logger.Info("combat ended",
		zap.String("outcome", outcome),
		zap.String("winner", winnerID),
		zap.String("reason", reason))
}

var _ ports.CombatView = (*LogView)(nil)
