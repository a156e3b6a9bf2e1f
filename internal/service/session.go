package service

import (
	"errors"

	"github.com/0shq/ddc/internal/constants"
	"github.com/0shq/ddc/internal/game"
	"github.com/0shq/ddc/internal/logging"
	"github.com/0shq/ddc/internal/storage"
	"github.com/0shq/ddc/internal/wallet"
)

var (
	ErrNFTNotFound    = errors.New("nft not found")
	ErrNFTNotOwned    = errors.New("nft is not owned by this wallet")
	ErrOpponentIsSelf = errors.New("opponent must differ from the selected nft")
)

// SessionRepo is the minimal repository interface the wallet session
// operations need.
type SessionRepo interface {
	GetProfile(address string) (*game.Profile, error)
	SaveProfile(p *game.Profile) error
	ClearSession(address string) error
	GetNFTByID(id string) (*game.Combatant, error)
	GetNFTsByOwner(owner string) ([]game.Combatant, error)
}

// LoadSession restores the wallet state machine persisted on the profile.
func LoadSession(repo SessionRepo, address string) (*wallet.Session, *game.Profile, error) {
	address = wallet.NormalizeAddress(address)
	p, err := repo.GetProfile(address)
	if err != nil {
		return nil, nil, err
	}
	return wallet.Restore(address, p.SessionState, p.SelectedNFTID), p, nil
}

func saveSession(repo SessionRepo, p *game.Profile, s *wallet.Session) error {
	p.SessionState = string(s.State)
	p.SelectedNFTID = s.SelectedID
	return repo.SaveProfile(p)
}

// ConnectWallet connects address and, like the client did after a wallet
// connects, selects the first owned NFT when nothing is selected yet.
func ConnectWallet(repo SessionRepo, address, displayName string) (*game.Profile, error) {
	address = wallet.NormalizeAddress(address)
	if address == "" {
		return nil, wallet.ErrInvalidAddress
	}
	s, p, err := LoadSession(repo, address)
	if err != nil {
		return nil, err
	}
	if err := s.BeginConnect(); err != nil && err != wallet.ErrAlreadyConnected {
		return nil, err
	}
	if err := s.Connect(address); err != nil {
		return nil, err
	}
	if displayName != "" {
		p.DisplayName = displayName
	}
	if s.SelectedID == "" {
		owned, err := repo.GetNFTsByOwner(address)
		if err != nil {
			return nil, err
		}
		if len(owned) > 0 {
			_ = s.Select(owned[0].ID)
		}
	}
	if err := saveSession(repo, p, s); err != nil {
		return nil, err
	}
	logging.Info("wallet connected", logging.Fields{constants.LogFieldWallet: address, constants.LogFieldNFTID: s.SelectedID})
	return p, nil
}

// DisconnectWallet moves the session to disconnected and clears the
// wallet's selection and visible battle history. Leaderboard stats stay.
func DisconnectWallet(repo SessionRepo, address string) error {
	s, p, err := LoadSession(repo, address)
	if err != nil {
		return err
	}
	s.Disconnect()
	if err := repo.ClearSession(s.Address); err != nil {
		return err
	}
	// reload: ClearSession rewrote the selection column
	if p.ID != 0 {
		if p, err = repo.GetProfile(s.Address); err != nil {
			return err
		}
	}
	if err := saveSession(repo, p, s); err != nil {
		return err
	}
	logging.Info("wallet disconnected", logging.Fields{constants.LogFieldWallet: s.Address})
	return nil
}

// SelectNFT makes nftID the wallet's battle NFT. An empty id clears the
// selection.
func SelectNFT(repo SessionRepo, address, nftID string) (*game.Profile, error) {
	s, p, err := LoadSession(repo, address)
	if err != nil {
		return nil, err
	}
	if err := s.Permit(wallet.ActionSelect); err != nil {
		return nil, err
	}
	if nftID != "" {
		c, err := repo.GetNFTByID(nftID)
		if err != nil {
			if err == storage.ErrNotFound {
				return nil, ErrNFTNotFound
			}
			return nil, err
		}
		if c.Owner != s.Address {
			return nil, ErrNFTNotOwned
		}
	}
	if err := s.Select(nftID); err != nil {
		return nil, err
	}
	if err := saveSession(repo, p, s); err != nil {
		return nil, err
	}
	return p, nil
}
