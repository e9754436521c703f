package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"coinclash/internal/bot"
	"coinclash/internal/domain"
	"coinclash/internal/random"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultMaxTurns ends runaway combats as a defeat.
const DefaultMaxTurns = 200

var (
	ErrCombatOver       = errors.New("combat already over")
	ErrCombatAborted    = errors.New("combat aborted")
	ErrNotAwaitingInput = errors.New("combat not awaiting player input")
	ErrAlreadyStarted   = errors.New("combat already started")
)

// Service creates combats. It holds no per-combat state; every Combat owns
// its combatants and its random source.
type Service struct {
	catalog  *domain.Catalog
	logger   *zap.Logger
	maxTurns int
}

// NewService constructs a Service. A nil catalog means the default catalog,
// a nil logger discards logs, and maxTurns <= 0 means DefaultMaxTurns.
func NewService(catalog *domain.Catalog, logger *zap.Logger, maxTurns int) *Service {
	if catalog == nil {
		catalog = domain.DefaultCatalog()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Service{catalog: catalog, logger: logger, maxTurns: maxTurns}
}

// Catalog returns the pattern catalog combats are scored against.
func (s *Service) Catalog() *domain.Catalog {
	return s.catalog
}

// CombatRequest is the input of RequestCombatStart.
type CombatRequest struct {
	// ID names the combat; empty means a fresh UUID.
	ID string
	// Seed drives every coin toss and AI sample; 0 means a random seed.
	Seed        int64
	Player      domain.CombatantConfig
	Enemy       domain.CombatantConfig
	Personality bot.Personality
	// MaxTurns overrides the service turn limit when positive.
	MaxTurns int
}

// StartCombat builds a combat from req and runs it up to the player's first
// decision.
func (s *Service) StartCombat(ctx context.Context, req CombatRequest) (*Combat, []Event, error) {
	combat, err := s.NewCombat(req)
	if err != nil {
		return nil, nil, err
	}
	events, err := combat.Start(ctx)
	if err != nil {
		return nil, events, err
	}
	return combat, events, nil
}

// NewCombat validates req and builds an idle combat.
func (s *Service) NewCombat(req CombatRequest) (*Combat, error) {
	req.Player.Side = domain.SidePlayer
	req.Enemy.Side = domain.SideEnemy
	if req.Player.ID != "" && req.Player.ID == req.Enemy.ID {
		return nil, fmt.Errorf("player and enemy share id %q: %w", req.Player.ID, domain.ErrInvalidCombatant)
	}
	player, err := domain.NewCombatant(req.Player)
	if err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}
	enemy, err := domain.NewCombatant(req.Enemy)
	if err != nil {
		return nil, fmt.Errorf("enemy: %w", err)
	}
	personality := req.Personality
	if personality == "" {
		personality = bot.Balanced
	}
	seed := req.Seed
	if seed == 0 {
		if seed, err = random.NewSeed(); err != nil {
			return nil, err
		}
	}
	maxTurns := s.maxTurns
	if req.MaxTurns > 0 {
		maxTurns = req.MaxTurns
	}
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	return &Combat{
		id:          id,
		seed:        seed,
		rng:         rand.New(rand.NewSource(seed)),
		catalog:     s.catalog,
		personality: personality,
		maxTurns:    maxTurns,
		logger:      s.logger.With(zap.String("combat_id", id)),
		phase:       PhaseIdle,
		player:      player,
		enemy:       enemy,
	}, nil
}
