package domain

import (
	"fmt"
	"math/rand"
	"strings"
)

// Face is the visible side of a coin.
type Face int

const (
	// Head is the attack face.
	Head Face = iota
	// Tail is the defense face.
	Tail
	// Any matches either face. It is only meaningful as a pattern requirement.
	Any
)

func (f Face) String() string {
	switch f {
	case Head:
		return "H"
	case Tail:
		return "T"
	case Any:
		return "*"
	default:
		return "?"
	}
}

// Opposite returns the other face. Any has no opposite and is returned unchanged.
func (f Face) Opposite() Face {
	switch f {
	case Head:
		return Tail
	case Tail:
		return Head
	default:
		return f
	}
}

// Matches reports whether a concrete face satisfies the requirement f.
func (f Face) Matches(face Face) bool {
	return f == Any || f == face
}

// ParseFace converts "head"/"tail"/"any" (or H/T/*) to a Face.
func ParseFace(s string) (Face, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "head", "heads":
		return Head, nil
	case "t", "tail", "tails":
		return Tail, nil
	case "*", "any", "":
		return Any, nil
	}
	return Any, fmt.Errorf("unknown face %q", s)
}

// Coin is a single slot of a CoinSet.
type Coin struct {
	Face   Face
	Locked bool
}

// CoinSet holds a combatant's coins. The slot count never changes after creation.
type CoinSet struct {
	coins []Coin
}

// NewCoinSet creates n unlocked coins showing heads.
func NewCoinSet(n int) (*CoinSet, error) {
	if n < 1 {
		return nil, fmt.Errorf("coin count %d: %w", n, ErrInvalidCombatant)
	}
	return &CoinSet{coins: make([]Coin, n)}, nil
}

// Len returns the number of slots.
func (c *CoinSet) Len() int {
	return len(c.coins)
}

// Toss assigns a uniformly random face to every unlocked slot.
func (c *CoinSet) Toss(rng *rand.Rand) {
	for i := range c.coins {
		if c.coins[i].Locked {
			continue
		}
		if rng.Intn(2) == 0 {
			c.coins[i].Face = Head
		} else {
			c.coins[i].Face = Tail
		}
	}
}

// Flip inverts the face at index regardless of its lock.
func (c *CoinSet) Flip(index int) error {
	if err := c.check(index); err != nil {
		return err
	}
	c.coins[index].Face = c.coins[index].Face.Opposite()
	return nil
}

// Lock marks the slot so that tosses leave it unchanged.
func (c *CoinSet) Lock(index int) error {
	if err := c.check(index); err != nil {
		return err
	}
	c.coins[index].Locked = true
	return nil
}

// Unlock clears the lock flag of the slot.
func (c *CoinSet) Unlock(index int) error {
	if err := c.check(index); err != nil {
		return err
	}
	c.coins[index].Locked = false
	return nil
}

// IsLocked reports the lock flag of the slot.
func (c *CoinSet) IsLocked(index int) (bool, error) {
	if err := c.check(index); err != nil {
		return false, err
	}
	return c.coins[index].Locked, nil
}

// ReleaseLocks unlocks every slot.
func (c *CoinSet) ReleaseLocks() {
	for i := range c.coins {
		c.coins[i].Locked = false
	}
}

// Swap exchanges the faces of two slots. Lock flags stay where they are.
func (c *CoinSet) Swap(i, j int) error {
	if err := c.check(i); err != nil {
		return err
	}
	if err := c.check(j); err != nil {
		return err
	}
	if i == j {
		return nil
	}
	c.coins[i].Face, c.coins[j].Face = c.coins[j].Face, c.coins[i].Face
	return nil
}

// Set overwrites every face with a previously planned toss. Locks are kept.
func (c *CoinSet) Set(faces Snapshot) error {
	if faces.Len() != len(c.coins) {
		return fmt.Errorf("snapshot has %d faces for %d coins: %w", faces.Len(), len(c.coins), ErrInvalidIndex)
	}
	for i := range c.coins {
		c.coins[i].Face = faces.faces[i]
	}
	return nil
}

// Snapshot returns a read-only copy of the current faces.
func (c *CoinSet) Snapshot() Snapshot {
	faces := make([]Face, len(c.coins))
	for i, coin := range c.coins {
		faces[i] = coin.Face
	}
	return Snapshot{faces: faces}
}

// Coins returns a copy of the slots including lock flags.
func (c *CoinSet) Coins() []Coin {
	return append([]Coin(nil), c.coins...)
}

func (c *CoinSet) check(index int) error {
	if index < 0 || index >= len(c.coins) {
		return indexError(index, len(c.coins))
	}
	return nil
}

// Snapshot is an immutable view of coin faces.
type Snapshot struct {
	faces []Face
}

// NewSnapshot copies faces into a Snapshot.
func NewSnapshot(faces ...Face) Snapshot {
	return Snapshot{faces: append([]Face(nil), faces...)}
}

// ParseSnapshot reads a compact form such as "HHTH".
func ParseSnapshot(s string) (Snapshot, error) {
	faces := make([]Face, 0, len(s))
	for _, r := range s {
		switch r {
		case 'H', 'h':
			faces = append(faces, Head)
		case 'T', 't':
			faces = append(faces, Tail)
		default:
			return Snapshot{}, fmt.Errorf("unknown face %q in %q", r, s)
		}
	}
	return Snapshot{faces: faces}, nil
}

// Len returns the number of faces.
func (s Snapshot) Len() int {
	return len(s.faces)
}

// At returns the face at index. Callers must stay within Len.
func (s Snapshot) At(index int) Face {
	return s.faces[index]
}

// Faces returns a copy of the faces.
func (s Snapshot) Faces() []Face {
	return append([]Face(nil), s.faces...)
}

// Count returns how many coins show face.
func (s Snapshot) Count(face Face) int {
	n := 0
	for _, f := range s.faces {
		if face.Matches(f) {
			n++
		}
	}
	return n
}

func (s Snapshot) String() string {
	var b strings.Builder
	for _, f := range s.faces {
		b.WriteString(f.String())
	}
	return b.String()
}
