// Package view routes combat events to a ports.CombatView.
package view

import (
	"context"

	"coinclash/internal/app"
	"coinclash/internal/ports"
)

// Dispatch delivers evs to v in order and returns how many were delivered.
// Events without a view callback are skipped.
func Dispatch(ctx context.Context, v ports.CombatView, evs []app.Event) int {
	delivered := 0
	for _, ev := range evs {
		if deliver(ctx, v, ev) {
			delivered++
		}
	}
	return delivered
}

func deliver(ctx context.Context, v ports.CombatView, ev app.Event) bool {
	switch ev.Kind {
	case app.EventCoinsTossed:
		p := ev.Payload.(app.CoinsTossedPayload)
		v.OnCoinsTossed(ctx, p.CombatantID, p.Faces, p.Locked)
	case app.EventPatternsAvailable:
		p := ev.Payload.(app.PatternsAvailablePayload)
		v.OnPatternsAvailable(ctx, p.CombatantID, p.Patterns)
	case app.EventIntentRevealed:
		p := ev.Payload.(app.IntentRevealedPayload)
		v.OnIntentRevealed(ctx, p.Intent)
	case app.EventDamageApplied:
		p := ev.Payload.(app.DamageAppliedPayload)
		v.OnDamageApplied(ctx, ports.DamageReport{
			SourceID: p.SourceID,
			TargetID: p.TargetID,
			Amount:   p.Amount,
			Absorbed: p.Absorbed,
			Cause:    p.Cause,
		})
	case app.EventStatusEffectsChanged:
		p := ev.Payload.(app.StatusEffectsChangedPayload)
		v.OnStatusEffectsChanged(ctx, p.CombatantID, p.Effects)
	case app.EventTurnEnded:
		p := ev.Payload.(app.TurnEndedPayload)
		v.OnTurnEnded(ctx, p.EndedActorID, p.NextActorID)
	case app.EventCombatEnded:
		p := ev.Payload.(app.CombatEndedPayload)
		v.OnCombatEnded(ctx, string(p.Outcome), p.WinnerID, p.Reason)
	default:
		return false
	}
	return true
}
