package storage

import (
	"errors"

	"github.com/0shq/ddc/internal/game"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	GetNFTs() ([]game.Combatant, error)
	GetNFTByID(id string) (*game.Combatant, error)
	GetNFTsByOwner(owner string) ([]game.Combatant, error)
	CreateNFT(c *game.Combatant) error

	// GetProfile returns the stored profile for address, or a fresh unsaved
	// profile when none exists.
	GetProfile(address string) (*game.Profile, error)
	SaveProfile(p *game.Profile) error
	// ClearSession drops a wallet's selection and hides its battle history.
	// Leaderboard stats are kept.
	ClearSession(address string) error
	// Leaderboard
	GetTopPlayers(limit int) ([]game.Profile, error)

	// RecordBattle adds rec.ExperienceGained to the stored winner, updates both
	// owners' stats and appends rec to the wallet's history, keeping only
	// the newest historyLimit entries visible. All in one transaction.
	RecordBattle(rec *game.BattleRecord, winner, loser *game.Combatant, historyLimit int) error
	GetBattleHistory(address string, limit int) ([]game.BattleRecord, error)

	// FindPendingSettlements returns pending records oldest first, including
	// ones already pruned from the visible history.
	FindPendingSettlements(limit int) ([]game.BattleRecord, error)
	UpdateBattleRecord(rec *game.BattleRecord) error
}
