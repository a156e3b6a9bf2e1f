package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/0shq/ddc/internal/constants"
	"github.com/0shq/ddc/internal/dedupe"
	"github.com/0shq/ddc/internal/game"
	"github.com/0shq/ddc/internal/keys"
	"github.com/0shq/ddc/internal/logging"
	"github.com/0shq/ddc/internal/wallet"

	"github.com/google/uuid"
)

var (
	ErrInvalidNFTName   = errors.New("nft name must be 1-40 characters")
	ErrDuplicateNFTName = errors.New("wallet already owns an nft with this name")
	ErrInvalidRarity    = errors.New("unknown rarity")
)

// MintRepo is the minimal repository interface required by MintNFT.
type MintRepo interface {
	SessionRepo
	CreateNFT(c *game.Combatant) error
}

// Roller draws integers in [0, n).
type Roller interface {
	Intn(n int) int
}

type MintRequest struct {
	Name     string
	ImageURL string
	Rarity   string
}

// MintNFT opens a mystery box for the connected wallet: every stat is rolled
// uniformly within the rarity's configured range, the NFT starts at level 1
// with no experience, and it becomes the wallet's selection if none is set.
func MintNFT(repo MintRepo, roller Roller, ranges map[game.Rarity]game.StatRange, address string, req MintRequest) (*game.Combatant, error) {
	address = wallet.NormalizeAddress(address)
	key := dedupe.MintKey(address, keys.NameKey(strings.TrimSpace(req.Name)))
	v, err, _ := dedupe.MintGroup.Do(key, func() (interface{}, error) {
		return mintNFT(repo, roller, ranges, address, req)
	})
	if err != nil {
		return nil, err
	}
	return v.(*game.Combatant), nil
}

func mintNFT(repo MintRepo, roller Roller, ranges map[game.Rarity]game.StatRange, address string, req MintRequest) (*game.Combatant, error) {
	s, p, err := LoadSession(repo, address)
	if err != nil {
		return nil, err
	}
	if err := s.Permit(wallet.ActionMint); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > 40 {
		return nil, ErrInvalidNFTName
	}
	rarity := game.RarityCommon
	if strings.TrimSpace(req.Rarity) != "" {
		if rarity, err = game.ParseRarity(req.Rarity); err != nil {
			return nil, ErrInvalidRarity
		}
	}
	rng, ok := ranges[rarity]
	if !ok {
		return nil, ErrInvalidRarity
	}

	owned, err := repo.GetNFTsByOwner(s.Address)
	if err != nil {
		return nil, err
	}
	for i := range owned {
		if keys.NameKey(owned[i].Name) == keys.NameKey(name) {
			return nil, ErrDuplicateNFTName
		}
	}

	roll := func() float64 {
		return float64(rng.Min + roller.Intn(rng.Max-rng.Min+1))
	}
	img := strings.TrimSpace(req.ImageURL)
	if img == "" {
		img = keys.PlaceholderImageURL(name)
	}
	nft := &game.Combatant{
		ID:       "0x" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Name:     name,
		Owner:    s.Address,
		Strength: roll(),
		Speed:    roll(),
		Luck:     roll(),
		Level:    1,
		ImageURL: img,
		Rarity:   rarity,
	}
	if err := game.ValidateCombatant(nft); err != nil {
		return nil, err
	}
	if err := repo.CreateNFT(nft); err != nil {
		return nil, err
	}

	if s.SelectedID == "" {
		if err := s.Select(nft.ID); err == nil {
			if err := saveSession(repo, p, s); err != nil {
				logging.Error("mint failed to auto-select nft", err, logging.Fields{constants.LogFieldWallet: s.Address, constants.LogFieldNFTID: nft.ID})
			}
		}
	}
	logging.Info("nft minted", logging.Fields{constants.LogFieldWallet: s.Address, constants.LogFieldNFTID: nft.ID, "rarity": string(rarity)})
	return nft, nil
}
