package domain

// DamagePass adjusts a damage value from one ledger. Passes never interact
// with each other; composition order lives in the pass lists below.
type DamagePass struct {
	Name  string
	Apply func(damage int, l *Ledger) int
}

// woundStackCap bounds the Wound multiplier at +100%.
const woundStackCap = 4

// OffensePasses run on the attacker's ledger: additive first, then multiplicative.
var OffensePasses = []DamagePass{
	{Name: "amplify", Apply: func(d int, l *Ledger) int {
		return d + l.Magnitude(EffectAmplify)
	}},
	{Name: "weaken", Apply: func(d int, l *Ledger) int {
		if l.Has(EffectWeaken) {
			return d * 3 / 4
		}
		return d
	}},
}

// DefensePasses run on the defender's ledger after the offense passes:
// additive, then multiplicative, then mitigation.
var DefensePasses = []DamagePass{
	{Name: "mark", Apply: func(d int, l *Ledger) int {
		return d + l.Magnitude(EffectMark)
	}},
	{Name: "wound", Apply: func(d int, l *Ledger) int {
		stacks := min(l.Magnitude(EffectWound), woundStackCap)
		return d + d*stacks/4
	}},
	{Name: "fortify", Apply: func(d int, l *Ledger) int {
		return d - l.Magnitude(EffectFortify)
	}},
}

// ApplyPasses folds damage through passes in order. The result is never negative.
func ApplyPasses(damage int, l *Ledger, passes []DamagePass) int {
	if l == nil {
		return max(damage, 0)
	}
	for _, p := range passes {
		damage = p.Apply(damage, l)
		if damage < 0 {
			damage = 0
		}
	}
	return damage
}

// ModifyOutgoingDamage applies the attacker-side passes of l.
func (l *Ledger) ModifyOutgoingDamage(raw int) int {
	return ApplyPasses(raw, l, OffensePasses)
}

// ModifyIncomingDamage applies the defender-side passes of l.
func (l *Ledger) ModifyIncomingDamage(raw int) int {
	return ApplyPasses(raw, l, DefensePasses)
}
