package engine

import (
	"math"
	"time"

	"github.com/0shq/ddc/internal/game"
)

// Power weights. These must stay exactly as they are for outcomes to match
// battles resolved by other clients.
const (
	StrengthWeight   = 2.0
	SpeedWeight      = 1.5
	LuckWeight       = 1.2
	LevelWeight      = 10.0
	ExperienceWeight = 0.1

	// ExperienceRate converts damage dealt into experience gained.
	ExperienceRate = 0.5
)

// Power returns the deterministic battle power of a combatant.
func Power(c *game.Combatant) float64 {
	return c.Strength*StrengthWeight +
		c.Speed*SpeedWeight +
		c.Luck*LuckWeight +
		float64(c.Level)*LevelWeight +
		c.Experience*ExperienceWeight
}

// Resolver resolves battles between two combatants. It holds no mutable
// state of its own, so one value can be shared by any number of goroutines
// as long as its Source is safe for concurrent use.
type Resolver struct {
	src Source
	now func() time.Time
}

// NewResolver returns a resolver drawing from src. A nil src uses a
// time-seeded LockedSource.
func NewResolver(src Source) *Resolver {
	if src == nil {
		src = NewLockedSource(time.Now().UnixNano())
	}
	return &Resolver{src: src, now: time.Now}
}

// WithClock returns a copy of the resolver using now for outcome timestamps.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	cp := *r
	cp.now = now
	return &cp
}

// Resolve scales each side's power by an independent draw in [0,1) and
// compares the rolls. a wins only when its roll is strictly greater; ties
// go to b. Inputs are never mutated.
func (r *Resolver) Resolve(a, b *game.Combatant) game.BattleOutcome {
	rollA := r.src.Float64() * Power(a)
	rollB := r.src.Float64() * Power(b)

	winner, loser := b, a
	if rollA > rollB {
		winner, loser = a, b
	}

	damage := int(math.Floor(math.Abs(rollA - rollB)))
	return game.BattleOutcome{
		Winner:           winner,
		Loser:            loser,
		Timestamp:        r.now().UnixMilli(),
		ExperienceGained: int(math.Floor(float64(damage) * ExperienceRate)),
		DamageDealt:      damage,
	}
}
