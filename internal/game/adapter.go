package game

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrMissingID     = errors.New("combatant id is required")
	ErrInvalidStat   = errors.New("combatant stat must be finite and non-negative")
	ErrInvalidLevel  = errors.New("combatant level must be at least 1")
	ErrInvalidRarity = errors.New("combatant rarity is unknown")
)

// NFTAttributes is the legacy record shape that nests the battle stats under
// an `attributes` object.
type NFTAttributes struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Owner      string          `json:"owner"`
	Attributes NestedAttribute `json:"attributes"`
	ImageURL   string          `json:"imageUrl"`
	Rarity     string          `json:"rarity"`
}

type NestedAttribute struct {
	Strength   float64 `json:"strength"`
	Speed      float64 `json:"speed"`
	Luck       float64 `json:"luck"`
	Experience float64 `json:"experience"`
	Level      int     `json:"level"`
}

// FromNested converts a nested record into a validated flat Combatant.
// An empty rarity defaults to common.
func FromNested(n NFTAttributes) (*Combatant, error) {
	rarity := RarityCommon
	if strings.TrimSpace(n.Rarity) != "" {
		r, err := ParseRarity(n.Rarity)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRarity, err)
		}
		rarity = r
	}
	c := &Combatant{
		ID:         strings.TrimSpace(n.ID),
		Name:       n.Name,
		Owner:      n.Owner,
		Strength:   n.Attributes.Strength,
		Speed:      n.Attributes.Speed,
		Luck:       n.Attributes.Luck,
		Level:      n.Attributes.Level,
		Experience: n.Attributes.Experience,
		ImageURL:   n.ImageURL,
		Rarity:     rarity,
	}
	if err := ValidateCombatant(c); err != nil {
		return nil, err
	}
	return c, nil
}

// ToNested is the inverse of FromNested.
func (c *Combatant) ToNested() NFTAttributes {
	return NFTAttributes{
		ID:    c.ID,
		Name:  c.Name,
		Owner: c.Owner,
		Attributes: NestedAttribute{
			Strength:   c.Strength,
			Speed:      c.Speed,
			Luck:       c.Luck,
			Experience: c.Experience,
			Level:      c.Level,
		},
		ImageURL: c.ImageURL,
		Rarity:   string(c.Rarity),
	}
}

// ValidateCombatant enforces the stat invariants. The resolver performs no
// validation itself, so every record entering the system passes through here.
func ValidateCombatant(c *Combatant) error {
	if c == nil || strings.TrimSpace(c.ID) == "" {
		return ErrMissingID
	}
	stats := map[string]float64{
		"strength":   c.Strength,
		"speed":      c.Speed,
		"luck":       c.Luck,
		"experience": c.Experience,
	}
	for name, v := range stats {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidStat, name, v)
		}
	}
	if c.Level < 1 {
		return fmt.Errorf("%w: level=%d", ErrInvalidLevel, c.Level)
	}
	if c.Rarity != "" && !c.Rarity.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRarity, c.Rarity)
	}
	return nil
}
