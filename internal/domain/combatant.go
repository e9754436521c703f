package domain

import "fmt"

// Side distinguishes the human-controlled combatant from the AI one.
type Side string

const (
	SidePlayer Side = "player"
	SideEnemy  Side = "enemy"
)

// CombatantConfig describes a combatant at combat start.
type CombatantConfig struct {
	ID                 string
	Name               string
	Side               Side
	MaxHealth          int
	Health             int // 0 means start at MaxHealth
	Coins              int
	// SkillRechargeTurns is how many own turns start without a charge after
	// a skill is used; 0 restores it at the next own turn.
	SkillRechargeTurns int
}

// Combatant is the mutable state of one side of a combat. It owns its coins
// and its ledger exclusively.
type Combatant struct {
	ID        string
	Name      string
	Side      Side
	Health    int
	MaxHealth int
	Guard     int
	Coins     *CoinSet
	Effects   *Ledger

	// SkillCharge is true while an active skill may be used.
	SkillCharge        bool
	SkillCooldown      int
	SkillRechargeTurns int
}

// NewCombatant validates cfg and builds a fresh combatant with a full skill charge.
func NewCombatant(cfg CombatantConfig) (*Combatant, error) {
	if cfg.ID == "" {
		return nil, fmt.Errorf("combatant without id: %w", ErrInvalidCombatant)
	}
	if cfg.MaxHealth <= 0 {
		return nil, fmt.Errorf("combatant %q max health %d: %w", cfg.ID, cfg.MaxHealth, ErrInvalidCombatant)
	}
	if cfg.Health < 0 || cfg.Health > cfg.MaxHealth {
		return nil, fmt.Errorf("combatant %q health %d outside [0,%d]: %w", cfg.ID, cfg.Health, cfg.MaxHealth, ErrInvalidCombatant)
	}
	coins, err := NewCoinSet(cfg.Coins)
	if err != nil {
		return nil, fmt.Errorf("combatant %q: %w", cfg.ID, err)
	}
	health := cfg.Health
	if health == 0 {
		health = cfg.MaxHealth
	}
	name := cfg.Name
	if name == "" {
		name = cfg.ID
	}
	return &Combatant{
		ID:                 cfg.ID,
		Name:               name,
		Side:               cfg.Side,
		Health:             health,
		MaxHealth:          cfg.MaxHealth,
		Coins:              coins,
		Effects:            NewLedger(),
		SkillCharge:        true,
		SkillRechargeTurns: max(cfg.SkillRechargeTurns, 0),
	}, nil
}

// IsDefeated reports whether health reached zero.
func (c *Combatant) IsDefeated() bool {
	return c.Health <= 0
}

// HealthFraction returns Health/MaxHealth in [0,1].
func (c *Combatant) HealthFraction() float64 {
	if c.MaxHealth <= 0 {
		return 0
	}
	return float64(c.Health) / float64(c.MaxHealth)
}

// AddGuard grows the guard pool.
func (c *Combatant) AddGuard(amount int) {
	if amount > 0 {
		c.Guard += amount
	}
}

// TakeDamage applies damage through guard first. Guard is reduced by the
// amount it absorbed; the remainder comes off health. It returns the health
// actually lost.
func (c *Combatant) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	absorbed := min(c.Guard, amount)
	c.Guard -= absorbed
	return c.LoseHealth(amount - absorbed)
}

// LoseHealth removes health directly, ignoring guard. It returns the health lost.
func (c *Combatant) LoseHealth(amount int) int {
	if amount <= 0 {
		return 0
	}
	lost := min(amount, c.Health)
	c.Health -= lost
	return lost
}

// Heal restores health up to MaxHealth and returns the amount restored.
func (c *Combatant) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	healed := min(amount, c.MaxHealth-c.Health)
	c.Health += healed
	return healed
}

// BeginTurn runs the start-of-turn bookkeeping: guard resets unless
// Barricade holds it (spending one turn of the Barricade), and a spent skill
// charge counts down to recharge.
func (c *Combatant) BeginTurn() {
	if !c.Effects.Spend(EffectBarricade) {
		c.Guard = 0
	}
	if c.SkillCharge {
		return
	}
	if c.SkillCooldown > 0 {
		c.SkillCooldown--
		return
	}
	c.SkillCharge = true
}
