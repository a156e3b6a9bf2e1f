package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/0shq/ddc/internal/engine"
	"github.com/0shq/ddc/internal/game"
	"github.com/0shq/ddc/internal/wallet"
)

type maxRoller struct{}

func (maxRoller) Intn(n int) int { return n - 1 }

func TestMintNFT_RequiresConnection(t *testing.T) {
	mr := newMockRepo()
	_, err := MintNFT(mr, maxRoller{}, game.DefaultStatRanges(), "0xabc", MintRequest{Name: "Doge"})
	if err != wallet.ErrWalletNotConnected {
		t.Fatalf("expected ErrWalletNotConnected, got %v", err)
	}
}

func TestMintNFT_StatsWithinRarityRange(t *testing.T) {
	mr := newMockRepo()
	mr.connect("0xabc", "")
	ranges := game.DefaultStatRanges()
	rng := engine.NewLockedSource(42)

	for _, rarity := range game.Rarities {
		for i := 0; i < 25; i++ {
			name := fmt.Sprintf("Doge %s %d", rarity, i)
			nft, err := MintNFT(mr, rng, ranges, "0xabc", MintRequest{Name: name, Rarity: string(rarity)})
			if err != nil {
				t.Fatalf("mint %s: %v", name, err)
			}
			r := ranges[rarity]
			for _, v := range []float64{nft.Strength, nft.Speed, nft.Luck} {
				if v < float64(r.Min) || v > float64(r.Max) {
					t.Fatalf("%s stat %v outside [%d,%d]", rarity, v, r.Min, r.Max)
				}
			}
			if nft.Level != 1 || nft.Experience != 0 || nft.Owner != "0xabc" || nft.Rarity != rarity {
				t.Fatalf("unexpected minted nft: %+v", nft)
			}
		}
	}
}

func TestMintNFT_DefaultsAndAutoSelect(t *testing.T) {
	mr := newMockRepo()
	mr.connect("0xabc", "")

	nft, err := MintNFT(mr, maxRoller{}, game.DefaultStatRanges(), "0xabc", MintRequest{Name: "Doge Warrior", Rarity: "3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nft.Rarity != game.RarityLegendary || nft.Strength != 100 {
		t.Fatalf("expected legendary with max stats, got %+v", nft)
	}
	if !strings.HasPrefix(nft.ID, "0x") || len(nft.ID) != 34 {
		t.Fatalf("unexpected id %q", nft.ID)
	}
	if nft.ImageURL != "https://placehold.co/400x400?text=Doge+Warrior" {
		t.Fatalf("unexpected placeholder image %q", nft.ImageURL)
	}
	if mr.profiles["0xabc"].SelectedNFTID != nft.ID {
		t.Fatalf("expected first mint to be auto-selected")
	}

	second, err := MintNFT(mr, maxRoller{}, game.DefaultStatRanges(), "0xabc", MintRequest{Name: "Second", Rarity: "common", ImageURL: "https://img/2.png"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ImageURL != "https://img/2.png" {
		t.Fatalf("explicit image url not kept: %q", second.ImageURL)
	}
	if mr.profiles["0xabc"].SelectedNFTID != nft.ID {
		t.Fatalf("existing selection must not change")
	}
}

func TestMintNFT_Rejections(t *testing.T) {
	mr := newMockRepo(game.Combatant{ID: "0xa", Name: "Doge Warrior", Owner: "0xabc"})
	mr.connect("0xabc", "0xa")
	ranges := game.DefaultStatRanges()

	cases := []struct {
		req  MintRequest
		want error
	}{
		{MintRequest{Name: "   ", Rarity: "common"}, ErrInvalidNFTName},
		{MintRequest{Name: strings.Repeat("x", 41), Rarity: "common"}, ErrInvalidNFTName},
		{MintRequest{Name: "Fresh", Rarity: "mythic"}, ErrInvalidRarity},
		{MintRequest{Name: "doge  warrior", Rarity: "rare"}, ErrDuplicateNFTName},
	}
	for _, tc := range cases {
		if _, err := MintNFT(mr, maxRoller{}, ranges, "0xabc", tc.req); err != tc.want {
			t.Fatalf("%+v: expected %v, got %v", tc.req, tc.want, err)
		}
	}

	delete(ranges, game.RarityEpic)
	if _, err := MintNFT(mr, maxRoller{}, ranges, "0xabc", MintRequest{Name: "Epic", Rarity: "epic"}); err != ErrInvalidRarity {
		t.Fatalf("expected ErrInvalidRarity for unconfigured tier, got %v", err)
	}
}
