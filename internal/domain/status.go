package domain

import (
	"fmt"
	"sort"
	"strings"
)

// EffectType identifies a status effect. It is also the ledger key, so
// reapplying a type stacks into the existing entry.
type EffectType int

const (
	EffectPoison EffectType = iota + 1
	EffectBleed
	EffectBurn
	EffectRegen
	EffectAmplify
	EffectWeaken
	EffectMark
	EffectWound
	EffectFortify
	EffectBarricade
	EffectSeal
)

// TickKind says what an effect does when its owner's ledger ticks.
type TickKind int

const (
	TickNone TickKind = iota
	// TickDamage deals magnitude damage that bypasses guard.
	TickDamage
	// TickGuardedDamage deals magnitude damage that guard absorbs first.
	TickGuardedDamage
	// TickHeal restores magnitude health.
	TickHeal
)

// EffectDef is the static behaviour of an effect type.
type EffectDef struct {
	Type       EffectType
	Name       string
	Persistent bool
	Tick       TickKind
	// EveryTurn effects tick at the end of both combatants' turns.
	EveryTurn bool
	// StartOfTurn effects are skipped by Tick; Spend counts them down when
	// the owner's turn begins.
	StartOfTurn bool
}

// MinEveryTurnDuration is the shortest duration an every-turn effect granted
// to the opponent can have and still be active on the granter's next turn.
const MinEveryTurnDuration = 3

var effectDefs = map[EffectType]EffectDef{
	EffectPoison:    {Type: EffectPoison, Name: "poison", Tick: TickDamage},
	EffectBleed:     {Type: EffectBleed, Name: "bleed", Tick: TickDamage},
	EffectBurn:      {Type: EffectBurn, Name: "burn", Tick: TickGuardedDamage},
	EffectRegen:     {Type: EffectRegen, Name: "regen", Tick: TickHeal},
	EffectAmplify:   {Type: EffectAmplify, Name: "amplify"},
	EffectWeaken:    {Type: EffectWeaken, Name: "weaken"},
	EffectMark:      {Type: EffectMark, Name: "mark", EveryTurn: true},
	EffectWound:     {Type: EffectWound, Name: "wound", EveryTurn: true},
	EffectFortify:   {Type: EffectFortify, Name: "fortify"},
	EffectBarricade: {Type: EffectBarricade, Name: "barricade", Persistent: true, StartOfTurn: true},
	EffectSeal:      {Type: EffectSeal, Name: "seal", Persistent: true},
}

// Def returns the definition of t. Unknown types get a bare definition.
func (t EffectType) Def() EffectDef {
	if d, ok := effectDefs[t]; ok {
		return d
	}
	return EffectDef{Type: t, Name: fmt.Sprintf("effect(%d)", int(t))}
}

func (t EffectType) String() string {
	return t.Def().Name
}

// ParseEffectType converts a config name to an EffectType.
func ParseEffectType(s string) (EffectType, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for t, d := range effectDefs {
		if d.Name == want {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown status effect %q", s)
}

// StatusEffect is one active ledger entry.
type StatusEffect struct {
	Type      EffectType
	Magnitude int
	Remaining int
}

// Indefinite reports whether the effect never expires on its own.
func (e StatusEffect) Indefinite() bool {
	return e.Type.Def().Persistent && e.Remaining <= 0
}

func (e StatusEffect) String() string {
	if e.Indefinite() {
		return fmt.Sprintf("%s x%d", e.Type, e.Magnitude)
	}
	return fmt.Sprintf("%s x%d (%d)", e.Type, e.Magnitude, e.Remaining)
}

// TickEvent is a health change produced by a tick. The ledger reports it;
// the caller applies it.
type TickEvent struct {
	Type   EffectType
	Amount int
	Kind   TickKind
}

// Ledger holds a combatant's active effects, one entry per type.
type Ledger struct {
	effects map[EffectType]*StatusEffect
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{effects: make(map[EffectType]*StatusEffect)}
}

// Apply adds an effect or stacks it onto the existing entry: magnitude
// accumulates and the remaining duration becomes the larger of the two.
// Non-positive magnitudes are ignored.
func (l *Ledger) Apply(t EffectType, magnitude, duration int) StatusEffect {
	if magnitude <= 0 {
		if e, ok := l.effects[t]; ok {
			return *e
		}
		return StatusEffect{Type: t}
	}
	e, ok := l.effects[t]
	if !ok {
		e = &StatusEffect{Type: t, Magnitude: magnitude, Remaining: duration}
		l.effects[t] = e
		return *e
	}
	e.Magnitude += magnitude
	if e.Indefinite() || (duration <= 0 && t.Def().Persistent) {
		e.Remaining = 0
	} else {
		e.Remaining = max(e.Remaining, duration)
	}
	return *e
}

// Tick ends one turn for the ledger owner. Damage and heal effects report
// their magnitude, then every expiring effect loses one turn and those that
// reach zero are removed. Only effects matching the filter are ticked;
// start-of-turn effects never are.
func (l *Ledger) Tick(filter func(EffectDef) bool) []TickEvent {
	var events []TickEvent
	for _, t := range l.sortedTypes() {
		e := l.effects[t]
		def := t.Def()
		if def.StartOfTurn || (filter != nil && !filter(def)) {
			continue
		}
		if def.Tick != TickNone && e.Magnitude > 0 {
			events = append(events, TickEvent{Type: t, Amount: e.Magnitude, Kind: def.Tick})
		}
		if e.Indefinite() {
			continue
		}
		e.Remaining--
		if e.Remaining <= 0 {
			delete(l.effects, t)
		}
	}
	return events
}

// Spend takes one turn off t, removing it when none remain. Indefinite
// effects are untouched. It reports whether t was active.
func (l *Ledger) Spend(t EffectType) bool {
	e, ok := l.effects[t]
	if !ok {
		return false
	}
	if e.Indefinite() {
		return true
	}
	e.Remaining--
	if e.Remaining <= 0 {
		delete(l.effects, t)
	}
	return true
}

// Remove drops an effect. It reports whether one was present.
func (l *Ledger) Remove(t EffectType) bool {
	if _, ok := l.effects[t]; !ok {
		return false
	}
	delete(l.effects, t)
	return true
}

// Consume lowers an effect's magnitude, removing it at zero.
func (l *Ledger) Consume(t EffectType, amount int) {
	e, ok := l.effects[t]
	if !ok {
		return
	}
	e.Magnitude -= amount
	if e.Magnitude <= 0 {
		delete(l.effects, t)
	}
}

// Get returns the entry for t.
func (l *Ledger) Get(t EffectType) (StatusEffect, bool) {
	e, ok := l.effects[t]
	if !ok {
		return StatusEffect{}, false
	}
	return *e, true
}

// Has reports whether t is active.
func (l *Ledger) Has(t EffectType) bool {
	_, ok := l.effects[t]
	return ok
}

// Magnitude returns the stack count of t, or 0.
func (l *Ledger) Magnitude(t EffectType) int {
	if e, ok := l.effects[t]; ok {
		return e.Magnitude
	}
	return 0
}

// Len returns the number of active effects.
func (l *Ledger) Len() int {
	return len(l.effects)
}

// Effects returns a copy of the active effects ordered by type.
func (l *Ledger) Effects() []StatusEffect {
	out := make([]StatusEffect, 0, len(l.effects))
	for _, t := range l.sortedTypes() {
		out = append(out, *l.effects[t])
	}
	return out
}

// Clear drops every effect.
func (l *Ledger) Clear() {
	clear(l.effects)
}

func (l *Ledger) sortedTypes() []EffectType {
	types := make([]EffectType, 0, len(l.effects))
	for t := range l.effects {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// OwnerTurn selects every effect for the owner's end-of-turn tick.
func OwnerTurn(EffectDef) bool { return true }

// OpponentTurn selects the effects that also tick at the opponent's turn end.
func OpponentTurn(d EffectDef) bool { return d.EveryTurn }
