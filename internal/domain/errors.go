package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidIndex     = errors.New("coin index out of range")
	ErrInvalidSelection = errors.New("pattern not currently offered")
	ErrIllegalSkillUse  = errors.New("active skill cannot be used")
	ErrEmptyPatternSet  = errors.New("no actionable pattern")
	ErrInvalidCatalog   = errors.New("invalid pattern catalog")
	ErrInvalidCombatant = errors.New("invalid combatant configuration")
)

// SelectionError reports a confirmation for a pattern that was not offered.
// Offered lists the IDs that remain valid choices.
type SelectionError struct {
	PatternID string
	Offered   []string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("pattern %q not offered (offered: %s)", e.PatternID, strings.Join(e.Offered, ", "))
}

// Is matches ErrInvalidSelection.
func (e *SelectionError) Is(target error) bool {
	return target == ErrInvalidSelection
}

// SkillError reports why an active skill was rejected.
type SkillError struct {
	Skill  SkillType
	Reason string
}

func (e *SkillError) Error() string {
	return fmt.Sprintf("skill %s rejected: %s", e.Skill, e.Reason)
}

// Is matches ErrIllegalSkillUse.
func (e *SkillError) Is(target error) bool {
	return target == ErrIllegalSkillUse
}

func indexError(index, n int) error {
	return fmt.Errorf("index %d with %d coins: %w", index, n, ErrInvalidIndex)
}
