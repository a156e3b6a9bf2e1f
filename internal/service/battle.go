package service

import (
	"github.com/0shq/ddc/internal/constants"
	"github.com/0shq/ddc/internal/dedupe"
	"github.com/0shq/ddc/internal/game"
	"github.com/0shq/ddc/internal/logging"
	"github.com/0shq/ddc/internal/storage"
	"github.com/0shq/ddc/internal/wallet"
)

// BattleRepo is the minimal repository interface required by InitiateBattle.
type BattleRepo interface {
	SessionRepo
	RecordBattle(rec *game.BattleRecord, winner, loser *game.Combatant, historyLimit int) error
}

// Resolver decides a battle between two combatants.
type Resolver interface {
	Resolve(a, b *game.Combatant) game.BattleOutcome
}

// InitiateBattle runs a local battle between the wallet's selected NFT and
// the opponent. The selected NFT is always the first combatant. The outcome
// is recorded as pending settlement; settling it is left to SettlePending.
// Battles from one wallet run one at a time; a request arriving while another
// is in flight receives that battle's outcome.
func InitiateBattle(repo BattleRepo, resolver Resolver, address, opponentID string, historyLimit int) (game.BattleOutcome, error) {
	address = wallet.NormalizeAddress(address)
	v, err, shared := dedupe.BattleGroup.Do(dedupe.BattleKey(address), func() (interface{}, error) {
		return initiateBattle(repo, resolver, address, opponentID, historyLimit)
	})
	if err != nil {
		return game.BattleOutcome{}, err
	}
	if shared {
		logging.Debug("battle request collapsed", logging.Fields{constants.LogFieldWallet: address, constants.LogFieldOpponent: opponentID})
	}
	return v.(game.BattleOutcome), nil
}

func initiateBattle(repo BattleRepo, resolver Resolver, address, opponentID string, historyLimit int) (game.BattleOutcome, error) {
	s, _, err := LoadSession(repo, address)
	if err != nil {
		return game.BattleOutcome{}, err
	}
	if err := s.Permit(wallet.ActionBattle); err != nil {
		return game.BattleOutcome{}, err
	}
	if opponentID == s.SelectedID {
		return game.BattleOutcome{}, ErrOpponentIsSelf
	}

	mine, err := lookupNFT(repo, s.SelectedID)
	if err != nil {
		return game.BattleOutcome{}, err
	}
	if mine.Owner != s.Address {
		// ownership moved since it was selected
		return game.BattleOutcome{}, ErrNFTNotOwned
	}
	opponent, err := lookupNFT(repo, opponentID)
	if err != nil {
		return game.BattleOutcome{}, err
	}

	out := resolver.Resolve(mine, opponent)

	rec := game.NewBattleRecord(s.Address, out)
	if err := repo.RecordBattle(&rec, out.Winner, out.Loser, historyLimit); err != nil {
		return game.BattleOutcome{}, err
	}

	logging.Info("battle resolved", logging.Fields{
		constants.LogFieldWallet:   s.Address,
		constants.LogFieldOpponent: opponentID,
		constants.LogFieldWinner:   out.Winner.ID,
		constants.LogFieldDamage:   out.DamageDealt,
		constants.LogFieldBattleID: rec.ID,
	})
	return out, nil
}

func lookupNFT(repo SessionRepo, id string) (*game.Combatant, error) {
	c, err := repo.GetNFTByID(id)
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, ErrNFTNotFound
		}
		return nil, err
	}
	return c, nil
}
