package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"coinclash/internal/bot"
	"coinclash/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContentYAML []byte

var ErrUnknownEnemy = errors.New("unknown enemy")

// EffectSpec is a status effect granted by a pattern.
type EffectSpec struct {
	Type      string `yaml:"type"`
	Magnitude int    `yaml:"magnitude"`
	Duration  int    `yaml:"duration"`
	// Target is "opponent" (default) or "self".
	Target string `yaml:"target"`
}

// PatternSpec is one catalog entry as written in a content file.
type PatternSpec struct {
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name"`
	Type    string       `yaml:"type"`
	Face    string       `yaml:"face"`
	Length  int          `yaml:"length"`
	Attack  bool         `yaml:"attack"`
	Bonus   int          `yaml:"bonus"`
	Effects []EffectSpec `yaml:"effects"`
}

// EnemySpec is one roster entry.
type EnemySpec struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	MaxHealth       int    `yaml:"max_health"`
	Coins           int    `yaml:"coins"`
	PersonalityName string `yaml:"personality"`
}

// Content is a content pack: the pattern catalog and the enemy roster.
type Content struct {
	Patterns []PatternSpec `yaml:"patterns"`
	Enemies  []EnemySpec   `yaml:"enemies"`
}

var (
	defaultContent *Content
	defaultOnce    sync.Once
	defaultErr     error
)

// DefaultContent returns the content pack built into the binary.
func DefaultContent() (*Content, error) {
	defaultOnce.Do(func() {
		defaultContent, defaultErr = ParseContent(defaultContentYAML)
	})
	return defaultContent, defaultErr
}

// LoadContent reads a content pack from path. An empty path means the
// built-in pack.
func LoadContent(path string) (*Content, error) {
	if path == "" {
		return DefaultContent()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	return ParseContent(data)
}

// ParseContent decodes and validates a YAML content pack.
func ParseContent(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal content: %w", err)
	}
	if _, err := c.Catalog(); err != nil {
		return nil, err
	}
	for _, e := range c.Enemies {
		if _, err := e.personality(); err != nil {
			return nil, fmt.Errorf("enemy %q: %w", e.ID, err)
		}
	}
	return &c, nil
}

// Catalog builds the pattern catalog described by the content.
func (c *Content) Catalog() (*domain.Catalog, error) {
	entries := make([]domain.Pattern, 0, len(c.Patterns))
	for _, ps := range c.Patterns {
		p, err := ps.pattern()
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", ps.ID, err)
		}
		entries = append(entries, p)
	}
	return domain.NewCatalog(entries)
}

// Enemy returns the roster entry with the given id; an empty id means the
// first entry.
func (c *Content) Enemy(id string) (EnemySpec, error) {
	if len(c.Enemies) == 0 {
		return EnemySpec{}, fmt.Errorf("empty roster: %w", ErrUnknownEnemy)
	}
	if id == "" {
		return c.Enemies[0], nil
	}
	for _, e := range c.Enemies {
		if e.ID == id {
			return e, nil
		}
	}
	return EnemySpec{}, fmt.Errorf("enemy %q: %w", id, ErrUnknownEnemy)
}

// Combatant converts the roster entry to a combatant config. coins is used
// when the entry does not set its own count.
func (e EnemySpec) Combatant(coins int) domain.CombatantConfig {
	if e.Coins > 0 {
		coins = e.Coins
	}
	return domain.CombatantConfig{
		ID:        e.ID,
		Name:      e.Name,
		Side:      domain.SideEnemy,
		MaxHealth: e.MaxHealth,
		Coins:     coins,
	}
}

// Personality returns the entry's AI personality, balanced when unset.
func (e EnemySpec) Personality() bot.Personality {
	p, _ := e.personality()
	return p
}

func (e EnemySpec) personality() (bot.Personality, error) {
	return bot.ParsePersonality(e.PersonalityName)
}

func (ps PatternSpec) pattern() (domain.Pattern, error) {
	t, err := domain.ParsePatternType(ps.Type)
	if err != nil {
		return domain.Pattern{}, err
	}
	face, err := domain.ParseFace(ps.Face)
	if err != nil {
		return domain.Pattern{}, err
	}
	p := domain.Pattern{
		ID:       ps.ID,
		Name:     ps.Name,
		Type:     t,
		Face:     face,
		Length:   ps.Length,
		IsAttack: ps.Attack,
		Bonus:    ps.Bonus,
	}
	for _, es := range ps.Effects {
		et, err := domain.ParseEffectType(es.Type)
		if err != nil {
			return domain.Pattern{}, err
		}
		target, err := domain.ParseEffectTarget(es.Target)
		if err != nil {
			return domain.Pattern{}, err
		}
		p.Effects = append(p.Effects, domain.EffectGrant{
			Type:      et,
			Magnitude: es.Magnitude,
			Duration:  es.Duration,
			Target:    target,
		})
	}
	return p, nil
}
