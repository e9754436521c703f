package app

import (
	"coinclash/internal/bot"
	"coinclash/internal/domain"
)

// EventKind identifies emitted combat events for view dispatch.
type EventKind string

const (
	EventCombatStarted        EventKind = "combat_started"
	EventCoinsTossed          EventKind = "coins_tossed"
	EventPatternsAvailable    EventKind = "patterns_available"
	EventSkillUsed            EventKind = "skill_used"
	EventIntentRevealed       EventKind = "intent_revealed"
	EventPatternResolved      EventKind = "pattern_resolved"
	EventGuardChanged         EventKind = "guard_changed"
	EventDamageApplied        EventKind = "damage_applied"
	EventHealed               EventKind = "healed"
	EventStatusEffectsChanged EventKind = "status_effects_changed"
	EventTurnEnded            EventKind = "turn_ended"
	EventCombatEnded          EventKind = "combat_ended"
)

// Event is a combat event tagged with the turn that produced it.
type Event struct {
	Kind    EventKind
	Turn    int
	Payload any
}

type CombatStartedPayload struct {
	CombatID string
	Seed     int64
	PlayerID string
	EnemyID  string
}

type CoinsTossedPayload struct {
	CombatantID string
	Faces       []domain.Face
	Locked      []bool
}

type PatternsAvailablePayload struct {
	CombatantID string
	Patterns    []domain.MatchedPattern
}

type SkillUsedPayload struct {
	CombatantID string
	Skill       domain.SkillType
	Params      domain.SkillParams
}

type IntentRevealedPayload struct {
	Intent bot.Intent
}

type PatternResolvedPayload struct {
	CombatantID string
	Pattern     domain.MatchedPattern
}

type GuardChangedPayload struct {
	CombatantID string
	Guard       int
}

// DamageAppliedPayload reports health lost by Target. SourceID is empty for
// damage over time. Absorbed is the part the guard took.
type DamageAppliedPayload struct {
	SourceID string
	TargetID string
	Amount   int
	Absorbed int
	Cause    string
}

type HealedPayload struct {
	CombatantID string
	Amount      int
	Cause       string
}

type StatusEffectsChangedPayload struct {
	CombatantID string
	Effects     []domain.StatusEffect
}

type TurnEndedPayload struct {
	EndedActorID string
	NextActorID  string
}

type CombatEndedPayload struct {
	Outcome  Phase
	WinnerID string
	Reason   string
}
