package app

import (
	"context"
	"fmt"
	"math/rand"
	"slices"

	"coinclash/internal/bot"
	"coinclash/internal/domain"

	"go.uber.org/zap"
)

// Phase is a state of the turn machine.
type Phase string

const (
	PhaseIdle              Phase = "idle"
	PhaseToss              Phase = "toss"
	PhasePlayerDecision    Phase = "player_decision"
	PhaseEnemyIntentReveal Phase = "enemy_intent_reveal"
	PhaseActionResolution  Phase = "action_resolution"
	PhaseStatusTick        Phase = "status_tick"
	PhaseTurnEnd           Phase = "turn_end"
	PhaseVictory           Phase = "victory"
	PhaseDefeat            Phase = "defeat"
	PhaseAborted           Phase = "aborted"
)

// Terminal reports whether no further phase follows.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat || p == PhaseAborted
}

// Combat is one combat instance: a player, an enemy and the turn machine
// sequencing toss, decision, intent, resolution, status tick and turn end.
// The only point where it waits is PhasePlayerDecision. A Combat is not safe
// for concurrent use; one caller drives it turn by turn.
type Combat struct {
	id          string
	seed        int64
	rng         *rand.Rand
	catalog     *domain.Catalog
	personality bot.Personality
	maxTurns    int
	logger      *zap.Logger

	phase   Phase
	turn    int
	actor   domain.Side
	player  *domain.Combatant
	enemy   *domain.Combatant
	offered []domain.MatchedPattern
	intent  *bot.Intent
	// playerLastSeen is what the enemy AI remembers of the player's coins.
	playerLastSeen domain.Snapshot
	winnerID       string
	events         []Event
}

func (c *Combat) ID() string { return c.id }
func (c *Combat) Seed() int64 { return c.seed }
func (c *Combat) Phase() Phase { return c.phase }
func (c *Combat) Turn() int { return c.turn }
func (c *Combat) Actor() domain.Side { return c.actor }
func (c *Combat) Player() *domain.Combatant { return c.player }
func (c *Combat) Enemy() *domain.Combatant { return c.enemy }
func (c *Combat) Winner() string { return c.winnerID }
func (c *Combat) Personality() bot.Personality { return c.personality }

// Offered returns the patterns the player may confirm right now.
func (c *Combat) Offered() []domain.MatchedPattern {
	return slices.Clone(c.offered)
}

// Intent returns the enemy's planned action, if one is pending.
func (c *Combat) Intent() (bot.Intent, bool) {
	if c.intent == nil {
		return bot.Intent{}, false
	}
	return *c.intent, true
}

// Start tosses the first coins, plans the enemy's first intent and stops at
// the player's first decision.
func (c *Combat) Start(ctx context.Context) ([]Event, error) {
	if err := c.guard(ctx); err != nil {
		return c.flush(), err
	}
	if c.phase != PhaseIdle {
		return nil, ErrAlreadyStarted
	}
	c.logger.Info("combat started",
		zap.Int64("seed", c.seed),
		zap.String("player", c.player.ID),
		zap.String("enemy", c.enemy.ID),
		zap.String("personality", string(c.personality)))
	c.emit(EventCombatStarted, CombatStartedPayload{
		CombatID: c.id,
		Seed:     c.seed,
		PlayerID: c.player.ID,
		EnemyID:  c.enemy.ID,
	})
	c.turn = 1
	if err := c.planIntent(c.turn + 1); err != nil {
		return c.flush(), err
	}
	c.beginPlayerTurn()
	return c.flush(), nil
}

// ConfirmPattern commits the player's choice and runs the machine through the
// enemy's turn until the player must decide again or the combat ends. An ID
// that is not currently offered is rejected and nothing changes.
func (c *Combat) ConfirmPattern(ctx context.Context, patternID string) ([]Event, error) {
	if err := c.guard(ctx); err != nil {
		return c.flush(), err
	}
	if err := c.awaitingInput(); err != nil {
		return nil, err
	}
	chosen, ok := domain.FindMatch(c.offered, patternID)
	if !ok {
		return nil, &domain.SelectionError{PatternID: patternID, Offered: domain.MatchIDs(c.offered)}
	}
	c.offered = nil
	c.playerLastSeen = c.player.Coins.Snapshot()
	c.emit(EventPatternResolved, PatternResolvedPayload{CombatantID: c.player.ID, Pattern: chosen})

	if c.act(c.player, c.enemy, chosen) || c.endTurn(c.player, c.enemy) {
		return c.flush(), nil
	}
	if err := c.enemyTurn(); err != nil {
		return c.flush(), err
	}
	return c.flush(), nil
}

// UseActiveSkill applies a skill to the player's coins during the decision
// window and re-offers patterns for the new faces.
func (c *Combat) UseActiveSkill(ctx context.Context, skill domain.SkillType, params domain.SkillParams) ([]Event, error) {
	if err := c.guard(ctx); err != nil {
		return c.flush(), err
	}
	if err := c.awaitingInput(); err != nil {
		return nil, err
	}
	if err := c.player.UseSkill(skill, params, c.rng); err != nil {
		c.logger.Debug("skill rejected", zap.Stringer("skill", skill), zap.Error(err))
		return nil, err
	}
	c.emit(EventSkillUsed, SkillUsedPayload{CombatantID: c.player.ID, Skill: skill, Params: params})
	c.emitCoins(c.player)
	c.offerPatterns()
	return c.flush(), nil
}

// Abort ends the combat immediately and releases both combatants.
func (c *Combat) Abort() []Event {
	if c.phase.Terminal() {
		return nil
	}
	c.logger.Info("combat aborted", zap.Int("turn", c.turn), zap.String("phase", string(c.phase)))
	c.phase = PhaseAborted
	c.offered = nil
	c.intent = nil
	c.player = nil
	c.enemy = nil
	c.emit(EventCombatEnded, CombatEndedPayload{Outcome: PhaseAborted, Reason: "aborted"})
	return c.flush()
}

// guard aborts the combat when ctx is done and rejects calls after the end.
func (c *Combat) guard(ctx context.Context) error {
	switch c.phase {
	case PhaseAborted:
		return ErrCombatAborted
	case PhaseVictory, PhaseDefeat:
		return ErrCombatOver
	}
	if err := ctx.Err(); err != nil {
		c.events = append(c.events, c.Abort()...)
		return fmt.Errorf("combat %s: %w: %w", c.id, ErrCombatAborted, err)
	}
	return nil
}

func (c *Combat) awaitingInput() error {
	if c.phase != PhasePlayerDecision {
		return fmt.Errorf("phase %s: %w", c.phase, ErrNotAwaitingInput)
	}
	return nil
}

func (c *Combat) beginPlayerTurn() {
	c.actor = domain.SidePlayer
	c.phase = PhaseToss
	c.beginTurn(c.player)
	c.player.Coins.Toss(c.rng)
	c.player.Coins.ReleaseLocks()
	c.emitCoins(c.player)
	c.phase = PhasePlayerDecision
	c.offerPatterns()
}

// beginTurn runs the combatant's turn start and reports effects it spent.
func (c *Combat) beginTurn(who *domain.Combatant) {
	before := who.Effects.Effects()
	who.BeginTurn()
	if !slices.Equal(before, who.Effects.Effects()) {
		c.emitEffects(who)
	}
}

// enemyTurn executes the planned intent, ticks, and hands back to the player.
func (c *Combat) enemyTurn() error {
	c.turn++
	c.actor = domain.SideEnemy
	c.phase = PhaseToss
	c.beginTurn(c.enemy)
	intent := c.intent
	if intent == nil {
		return fmt.Errorf("enemy turn %d without intent", c.turn)
	}
	if err := c.enemy.Coins.Set(intent.Faces); err != nil {
		return err
	}
	c.enemy.Coins.ReleaseLocks()
	c.emitCoins(c.enemy)

	c.phase = PhaseEnemyIntentReveal
	c.intent = nil
	c.emit(EventPatternResolved, PatternResolvedPayload{CombatantID: c.enemy.ID, Pattern: intent.Pattern})

	if c.act(c.enemy, c.player, intent.Pattern) || c.endTurn(c.enemy, c.player) {
		return nil
	}
	if err := c.planIntent(c.turn + 2); err != nil {
		return err
	}
	c.turn++
	c.beginPlayerTurn()
	return nil
}

// planIntent tosses the enemy's coins for the given turn and fixes the intent.
func (c *Combat) planIntent(turn int) error {
	c.enemy.Coins.Toss(c.rng)
	intent, err := bot.ChooseIntent(bot.Input{
		Monster:        c.enemy,
		Player:         c.player,
		Catalog:        c.catalog,
		Personality:    c.personality,
		Phase:          bot.DetectPhase(c.enemy),
		PlayerLastSeen: c.playerLastSeen,
		Turn:           turn,
	}, c.rng)
	if err != nil {
		return fmt.Errorf("plan intent: %w", err)
	}
	c.intent = &intent
	c.logger.Debug("intent planned",
		zap.Int("turn", c.turn),
		zap.String("pattern", intent.Pattern.ID),
		zap.Stringer("faces", intent.Faces),
		zap.Stringer("phase", intent.Phase))
	c.emit(EventIntentRevealed, IntentRevealedPayload{Intent: intent})
	return nil
}

// act resolves a pattern for actor against target. It reports whether the
// combat ended.
func (c *Combat) act(actor, target *domain.Combatant, m domain.MatchedPattern) bool {
	c.phase = PhaseActionResolution
	if m.IsAttack {
		raw := m.Bonus
		dmg := target.Effects.ModifyIncomingDamage(actor.Effects.ModifyOutgoingDamage(raw))
		guardBefore := target.Guard
		lost := target.TakeDamage(dmg)
		c.logger.Debug("attack resolved",
			zap.Int("turn", c.turn),
			zap.String("actor", actor.ID),
			zap.String("pattern", m.ID),
			zap.Int("raw", raw),
			zap.Int("modified", dmg),
			zap.Int("lost", lost))
		c.emit(EventDamageApplied, DamageAppliedPayload{
			SourceID: actor.ID,
			TargetID: target.ID,
			Amount:   lost,
			Absorbed: guardBefore - target.Guard,
			Cause:    m.ID,
		})
		if guardBefore != target.Guard {
			c.emit(EventGuardChanged, GuardChangedPayload{CombatantID: target.ID, Guard: target.Guard})
		}
		if target.IsDefeated() {
			c.finish(actor, "defeated")
			return true
		}
	} else {
		actor.AddGuard(m.Bonus)
		c.emit(EventGuardChanged, GuardChangedPayload{CombatantID: actor.ID, Guard: actor.Guard})
	}
	c.grant(actor, target, m.Effects)
	return false
}

func (c *Combat) grant(actor, target *domain.Combatant, grants []domain.EffectGrant) {
	touched := map[*domain.Combatant]bool{}
	for _, g := range grants {
		owner := target
		if g.Target == domain.TargetSelf {
			owner = actor
		}
		owner.Effects.Apply(g.Type, g.Magnitude, g.Duration)
		touched[owner] = true
	}
	for _, who := range []*domain.Combatant{actor, target} {
		if touched[who] {
			c.emitEffects(who)
		}
	}
}

// endTurn runs StatusTick and TurnEnd for actor. It reports whether the combat ended.
func (c *Combat) endTurn(actor, opponent *domain.Combatant) bool {
	c.phase = PhaseStatusTick
	c.tick(actor, domain.OwnerTurn)
	c.tick(opponent, domain.OpponentTurn)
	if actor.IsDefeated() {
		c.finish(opponent, "status")
		return true
	}
	if opponent.IsDefeated() {
		c.finish(actor, "status")
		return true
	}

	c.phase = PhaseTurnEnd
	if c.turn >= c.maxTurns {
		c.phase = PhaseDefeat
		c.offered = nil
		c.intent = nil
		c.logger.Info("combat hit turn limit", zap.Int("turn", c.turn))
		c.winnerID = c.enemy.ID
		c.emit(EventCombatEnded, CombatEndedPayload{Outcome: PhaseDefeat, WinnerID: c.winnerID, Reason: "turn_limit"})
		return true
	}
	c.emit(EventTurnEnded, TurnEndedPayload{EndedActorID: actor.ID, NextActorID: opponent.ID})
	return false
}

func (c *Combat) tick(who *domain.Combatant, filter func(domain.EffectDef) bool) {
	before := who.Effects.Effects()
	for _, ev := range who.Effects.Tick(filter) {
		switch ev.Kind {
		case domain.TickDamage, domain.TickGuardedDamage:
			guardBefore := who.Guard
			var lost int
			if ev.Kind == domain.TickGuardedDamage {
				lost = who.TakeDamage(ev.Amount)
			} else {
				lost = who.LoseHealth(ev.Amount)
			}
			c.emit(EventDamageApplied, DamageAppliedPayload{
				TargetID: who.ID,
				Amount:   lost,
				Absorbed: guardBefore - who.Guard,
				Cause:    ev.Type.String(),
			})
		case domain.TickHeal:
			healed := who.Heal(ev.Amount)
			c.emit(EventHealed, HealedPayload{CombatantID: who.ID, Amount: healed, Cause: ev.Type.String()})
		}
	}
	if !slices.Equal(before, who.Effects.Effects()) {
		c.emitEffects(who)
	}
}

func (c *Combat) finish(winner *domain.Combatant, reason string) {
	c.winnerID = winner.ID
	c.offered = nil
	c.intent = nil
	outcome := PhaseVictory
	if winner.Side != domain.SidePlayer {
		outcome = PhaseDefeat
	}
	c.phase = outcome
	c.logger.Info("combat ended",
		zap.Int("turn", c.turn),
		zap.String("outcome", string(outcome)),
		zap.String("winner", winner.ID),
		zap.String("reason", reason))
	c.emit(EventCombatEnded, CombatEndedPayload{Outcome: outcome, WinnerID: winner.ID, Reason: reason})
}

func (c *Combat) offerPatterns() {
	offered, err := domain.MatchWithFallback(c.player.Coins.Snapshot(), c.catalog)
	if err != nil {
		// Coin sets are never empty, so this only guards against misuse.
		c.logger.Error("no patterns offered", zap.Error(err))
	}
	c.offered = offered
	c.emit(EventPatternsAvailable, PatternsAvailablePayload{CombatantID: c.player.ID, Patterns: slices.Clone(offered)})
}

func (c *Combat) emitCoins(who *domain.Combatant) {
	coins := who.Coins.Coins()
	faces := make([]domain.Face, len(coins))
	locked := make([]bool, len(coins))
	for i, coin := range coins {
		faces[i] = coin.Face
		locked[i] = coin.Locked
	}
	c.emit(EventCoinsTossed, CoinsTossedPayload{CombatantID: who.ID, Faces: faces, Locked: locked})
}

func (c *Combat) emitEffects(who *domain.Combatant) {
	c.emit(EventStatusEffectsChanged, StatusEffectsChangedPayload{CombatantID: who.ID, Effects: who.Effects.Effects()})
}

func (c *Combat) emit(kind EventKind, payload any) {
	c.events = append(c.events, Event{Kind: kind, Turn: c.turn, Payload: payload})
}

func (c *Combat) flush() []Event {
	out := c.events
	c.events = nil
	return out
}
