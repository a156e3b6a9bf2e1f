package game

import (
	"errors"
	"math"
	"testing"
)

func TestFromNested(t *testing.T) {
	c, err := FromNested(NFTAttributes{
		ID:    "0x2345",
		Name:  "Grumpy Cat",
		Owner: "0x5678",
		Attributes: NestedAttribute{
			Strength: 65, Speed: 55, Luck: 80, Experience: 200, Level: 4,
		},
		Rarity: "Epic",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Strength != 65 || c.Level != 4 || c.Rarity != RarityEpic {
		t.Fatalf("unexpected combatant %+v", c)
	}
	back := c.ToNested()
	if back.Attributes.Experience != 200 || back.Rarity != "epic" {
		t.Fatalf("unexpected nested form %+v", back)
	}
}

func TestFromNested_DefaultsRarity(t *testing.T) {
	c, err := FromNested(NFTAttributes{ID: "x", Attributes: NestedAttribute{Level: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Rarity != RarityCommon {
		t.Fatalf("expected common, got %s", c.Rarity)
	}
}

func TestValidateCombatant(t *testing.T) {
	cases := []struct {
		name string
		c    Combatant
		want error
	}{
		{"missing id", Combatant{Level: 1}, ErrMissingID},
		{"nan", Combatant{ID: "x", Level: 1, Speed: math.NaN()}, ErrInvalidStat},
		{"inf", Combatant{ID: "x", Level: 1, Luck: math.Inf(1)}, ErrInvalidStat},
		{"negative", Combatant{ID: "x", Level: 1, Experience: -1}, ErrInvalidStat},
		{"level", Combatant{ID: "x"}, ErrInvalidLevel},
		{"rarity", Combatant{ID: "x", Level: 1, Rarity: "mythic"}, ErrInvalidRarity},
		{"ok", Combatant{ID: "x", Level: 1, Rarity: RarityRare}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCombatant(&tc.c)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestParseRarity(t *testing.T) {
	if r, err := ParseRarity("2"); err != nil || r != RarityEpic {
		t.Fatalf("expected epic, got %v %v", r, err)
	}
	if r, err := ParseRarity(" LEGENDARY "); err != nil || r != RarityLegendary {
		t.Fatalf("expected legendary, got %v %v", r, err)
	}
	if _, err := ParseRarity("7"); err == nil {
		t.Fatalf("expected error for unknown tier")
	}
	if RarityRare.Tier() != 1 || Rarity("x").Tier() != -1 {
		t.Fatalf("unexpected tiers")
	}
}
