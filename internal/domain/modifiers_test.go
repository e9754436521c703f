package domain

import "testing"

func TestDamagePasses(t *testing.T) {
	tests := []struct {
		name     string
		attacker map[EffectType]int
		defender map[EffectType]int
		raw      int
		want     int
	}{
		{name: "no effects", raw: 8, want: 8},
		{name: "amplify", attacker: map[EffectType]int{EffectAmplify: 2}, raw: 8, want: 10},
		{name: "amplify before weaken", attacker: map[EffectType]int{EffectAmplify: 4, EffectWeaken: 1}, raw: 8, want: 9},
		{name: "mark", defender: map[EffectType]int{EffectMark: 3}, raw: 8, want: 11},
		{name: "wound one stack", defender: map[EffectType]int{EffectWound: 1}, raw: 8, want: 10},
		{name: "wound capped", defender: map[EffectType]int{EffectWound: 9}, raw: 8, want: 16},
		{name: "amplify then wound", attacker: map[EffectType]int{EffectAmplify: 4}, defender: map[EffectType]int{EffectWound: 2}, raw: 8, want: 18},
		{name: "fortify floors at zero", defender: map[EffectType]int{EffectFortify: 20}, raw: 8, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			atk, def := NewLedger(), NewLedger()
			for typ, m := range tt.attacker {
				atk.Apply(typ, m, 2)
			}
			for typ, m := range tt.defender {
				def.Apply(typ, m, 2)
			}
			got := def.ModifyIncomingDamage(atk.ModifyOutgoingDamage(tt.raw))
			if got != tt.want {
				t.Fatalf("damage = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestApplyPassesNilLedger(t *testing.T) {
	if got := ApplyPasses(-3, nil, OffensePasses); got != 0 {
		t.Fatalf("ApplyPasses = %d, want 0", got)
	}
}
