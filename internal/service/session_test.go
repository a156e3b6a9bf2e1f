package service

import (
	"testing"

	"github.com/0shq/ddc/internal/game"
	"github.com/0shq/ddc/internal/wallet"
)

func TestConnectWallet_AutoSelectsFirstOwned(t *testing.T) {
	mr := newMockRepo(
		game.Combatant{ID: "0xb", Owner: "0xabc", Level: 1, Rarity: game.RarityCommon},
		game.Combatant{ID: "0xa", Owner: "0xabc", Level: 1, Rarity: game.RarityCommon},
	)
	p, err := ConnectWallet(mr, "  0xABC ", "Doge Fan")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Address != "0xabc" || p.SessionState != string(wallet.StateConnected) {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if p.SelectedNFTID != "0xa" {
		t.Fatalf("expected first owned nft selected, got %q", p.SelectedNFTID)
	}
	if p.DisplayName != "Doge Fan" {
		t.Fatalf("display name not stored: %q", p.DisplayName)
	}
}

func TestConnectWallet_EmptyAddress(t *testing.T) {
	if _, err := ConnectWallet(newMockRepo(), "   ", ""); err != wallet.ErrInvalidAddress {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}
}

func TestConnectWallet_ReconnectKeepsSelection(t *testing.T) {
	mr := newMockRepo(
		game.Combatant{ID: "0xa", Owner: "0xabc"},
		game.Combatant{ID: "0xb", Owner: "0xabc"},
	)
	mr.connect("0xabc", "0xb")
	p, err := ConnectWallet(mr, "0xabc", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.SelectedNFTID != "0xb" {
		t.Fatalf("selection should be kept, got %q", p.SelectedNFTID)
	}
}

func TestDisconnectWallet_ClearsSessionKeepsStats(t *testing.T) {
	mr := newMockRepo(game.Combatant{ID: "0xa", Owner: "0xabc"})
	mr.connect("0xabc", "0xa")
	p := mr.profiles["0xabc"]
	p.Wins = 3
	p.TotalBattles = 4
	mr.profiles["0xabc"] = p

	if err := DisconnectWallet(mr, "0xabc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := mr.profiles["0xabc"]
	if got.SessionState != string(wallet.StateDisconnected) || got.SelectedNFTID != "" {
		t.Fatalf("expected disconnected with no selection, got %+v", got)
	}
	if got.Wins != 3 || got.TotalBattles != 4 {
		t.Fatalf("expected leaderboard stats kept, got %+v", got)
	}
	if len(mr.clears) != 1 || mr.clears[0] != "0xabc" {
		t.Fatalf("expected one clear for 0xabc, got %v", mr.clears)
	}
}

func TestSelectNFT(t *testing.T) {
	mr := newMockRepo(
		game.Combatant{ID: "0xmine", Owner: "0xabc"},
		game.Combatant{ID: "0xtheirs", Owner: "0xdef"},
	)

	if _, err := SelectNFT(mr, "0xabc", "0xmine"); err != wallet.ErrWalletNotConnected {
		t.Fatalf("expected ErrWalletNotConnected, got %v", err)
	}

	mr.connect("0xabc", "")
	if _, err := SelectNFT(mr, "0xabc", "0xmissing"); err != ErrNFTNotFound {
		t.Fatalf("expected ErrNFTNotFound, got %v", err)
	}
	if _, err := SelectNFT(mr, "0xabc", "0xtheirs"); err != ErrNFTNotOwned {
		t.Fatalf("expected ErrNFTNotOwned, got %v", err)
	}
	p, err := SelectNFT(mr, "0xabc", "0xmine")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.SelectedNFTID != "0xmine" || mr.profiles["0xabc"].SelectedNFTID != "0xmine" {
		t.Fatalf("selection not persisted: %+v", mr.profiles["0xabc"])
	}
	p, err = SelectNFT(mr, "0xabc", "")
	if err != nil {
		t.Fatalf("unexpected error clearing selection: %v", err)
	}
	if p.SelectedNFTID != "" {
		t.Fatalf("expected selection cleared, got %q", p.SelectedNFTID)
	}
}
