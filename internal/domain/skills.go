package domain

import (
	"fmt"
	"math/rand"
	"strings"
)

// SkillType is an active skill that mutates the owner's coins during its
// decision window.
type SkillType int

const (
	SkillRethrowAll SkillType = iota + 1
	SkillFlipOne
	SkillLockOne
	SkillSwapTwo
)

var skillNames = map[SkillType]string{
	SkillRethrowAll: "rethrow_all",
	SkillFlipOne:    "flip_one",
	SkillLockOne:    "lock_one",
	SkillSwapTwo:    "swap_two",
}

func (s SkillType) String() string {
	if name, ok := skillNames[s]; ok {
		return name
	}
	return fmt.Sprintf("skill(%d)", int(s))
}

// ParseSkillType converts a name such as "flip_one" to a SkillType.
func ParseSkillType(s string) (SkillType, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for t, name := range skillNames {
		if name == want {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown skill %q", s)
}

// SkillParams carries the coin indices a skill targets. RethrowAll ignores
// them, FlipOne and LockOne use I, SwapTwo uses I and J.
type SkillParams struct {
	I int
	J int
}

// UseSkill applies an active skill to the combatant's coins and spends the
// charge. On any error the coins and the charge are left untouched.
func (c *Combatant) UseSkill(skill SkillType, params SkillParams, rng *rand.Rand) error {
	if !c.SkillCharge {
		return &SkillError{Skill: skill, Reason: "no charge available"}
	}
	if c.Effects.Has(EffectSeal) {
		return &SkillError{Skill: skill, Reason: "sealed"}
	}
	switch skill {
	case SkillRethrowAll:
		c.Coins.Toss(rng)
	case SkillFlipOne:
		if err := c.Coins.Flip(params.I); err != nil {
			return err
		}
	case SkillLockOne:
		locked, err := c.Coins.IsLocked(params.I)
		if err != nil {
			return err
		}
		if locked {
			return &SkillError{Skill: skill, Reason: fmt.Sprintf("coin %d already locked", params.I)}
		}
		if err := c.Coins.Lock(params.I); err != nil {
			return err
		}
	case SkillSwapTwo:
		if err := c.Coins.Swap(params.I, params.J); err != nil {
			return err
		}
	default:
		return &SkillError{Skill: skill, Reason: "unknown skill"}
	}
	c.SkillCharge = false
	c.SkillCooldown = c.SkillRechargeTurns
	return nil
}
