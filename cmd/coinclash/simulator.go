package main

import (
	"context"
	"fmt"
	"math/rand"

	"coinclash/internal/app"
	"coinclash/internal/bot"
	"coinclash/internal/config"
	"coinclash/internal/domain"
	"coinclash/internal/ports/view"

	"go.uber.org/zap"
)

// Summary totals the outcomes of a simulation run.
type Summary struct {
	Combats   int
	Victories int
	Defeats   int
	Turns     int
}

type simulator struct {
	cfg     config.Config
	svc     *app.Service
	enemy   config.EnemySpec
	pilot   bot.Autopilot
	logger  *zap.Logger
	display *view.LogView
}

func newSimulator(cfg config.Config, content *config.Content, logger *zap.Logger) (*simulator, error) {
	catalog, err := content.Catalog()
	if err != nil {
		return nil, err
	}
	enemy, err := content.Enemy(cfg.Enemy)
	if err != nil {
		return nil, err
	}
	playerPersonality, err := bot.ParsePersonality(cfg.PlayerPersonality)
	if err != nil {
		return nil, fmt.Errorf("player personality: %w", err)
	}
	return &simulator{
		cfg:     cfg,
		svc:     app.NewService(catalog, logger, cfg.MaxTurns),
		enemy:   enemy,
		pilot:   bot.Autopilot{Personality: playerPersonality, Catalog: catalog},
		logger:  logger,
		display: view.NewLogView(logger.Named("view")),
	}, nil
}

// Run plays cfg.Combats combats in sequence. Seeds increase by one per
// combat when a base seed is configured.
func (s *simulator) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	for i := 0; i < s.cfg.Combats; i++ {
		seed := int64(0)
		if s.cfg.Seed != 0 {
			seed = s.cfg.Seed + int64(i)
		}
		combat, err := s.play(ctx, seed)
		if err != nil {
			return sum, err
		}
		sum.Combats++
		sum.Turns += combat.Turn()
		switch combat.Phase() {
		case app.PhaseVictory:
			sum.Victories++
		case app.PhaseDefeat:
			sum.Defeats++
		}
	}
	return sum, nil
}

func (s *simulator) play(ctx context.Context, seed int64) (*app.Combat, error) {
	personality := s.enemy.Personality()
	if s.cfg.Personality != "" {
		p, err := bot.ParsePersonality(s.cfg.Personality)
		if err != nil {
			return nil, fmt.Errorf("enemy personality: %w", err)
		}
		personality = p
	}
	combat, evs, err := s.svc.StartCombat(ctx, app.CombatRequest{
		Seed: seed,
		Player: domain.CombatantConfig{
			ID:                 "player",
			Name:               "Player",
			MaxHealth:          s.cfg.PlayerHealth,
			Coins:              s.cfg.CoinCount,
			SkillRechargeTurns: s.cfg.SkillRechargeTurns,
		},
		Enemy:       s.enemy.Combatant(s.cfg.CoinCount),
		Personality: personality,
	})
	if err != nil {
		return nil, fmt.Errorf("start combat: %w", err)
	}
	view.Dispatch(ctx, s.display, evs)

	// Autopilot draws come from their own stream.
	rng := rand.New(rand.NewSource(combat.Seed() ^ 0x5eed))
	for !combat.Phase().Terminal() {
		if plan, ok := s.pilot.PlanSkill(combat.Player()); ok {
			evs, err := combat.UseActiveSkill(ctx, plan.Skill, plan.Params)
			if err != nil {
				s.logger.Debug("autopilot skill rejected", zap.Error(err))
			}
			view.Dispatch(ctx, s.display, evs)
		}
		choice := s.pilot.Choose(combat.Offered(), combat.Player(), combat.Enemy(), rng)
		evs, err := combat.ConfirmPattern(ctx, choice.ID)
		view.Dispatch(ctx, s.display, evs)
		if err != nil {
			return nil, fmt.Errorf("combat %s turn %d: %w", combat.ID(), combat.Turn(), err)
		}
	}
	return combat, nil
}
