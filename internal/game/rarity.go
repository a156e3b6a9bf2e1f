package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Rarity is the mystery-box tier of an NFT. It does not take part in battle
// resolution; it only selects the stat ranges used when minting.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rarities lists every tier ordered by the numeric value the mint contract uses.
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

// Valid reports whether r is one of the known tiers.
func (r Rarity) Valid() bool {
	for _, known := range Rarities {
		if r == known {
			return true
		}
	}
	return false
}

// Tier returns the numeric tier (0 for common up to 3 for legendary), or -1.
func (r Rarity) Tier() int {
	for i, known := range Rarities {
		if r == known {
			return i
		}
	}
	return -1
}

// ParseRarity accepts a tier name (case-insensitive) or its numeric value.
func ParseRarity(s string) (Rarity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 0 && n < len(Rarities) {
			return Rarities[n], nil
		}
		return "", fmt.Errorf("unknown rarity tier %d", n)
	}
	r := Rarity(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown rarity %q", s)
	}
	return r, nil
}

// StatRange bounds the stats rolled for a rarity tier, inclusive.
type StatRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DefaultStatRanges is used when the configuration does not define tiers.
func DefaultStatRanges() map[Rarity]StatRange {
	return map[Rarity]StatRange{
		RarityCommon:    {Min: 10, Max: 50},
		RarityRare:      {Min: 30, Max: 70},
		RarityEpic:      {Min: 50, Max: 85},
		RarityLegendary: {Min: 70, Max: 100},
	}
}
