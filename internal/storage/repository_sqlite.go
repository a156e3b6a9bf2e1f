package storage

import (
	"errors"
	"fmt"

	"github.com/0shq/ddc/internal/game"

	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *sqliteRepository) GetNFTs() ([]game.Combatant, error) {
	var nfts []game.Combatant
	if err := r.db.Order("created_at asc").Order("id asc").Find(&nfts).Error; err != nil {
		return nil, err
	}
	return nfts, nil
}

func (r *sqliteRepository) GetNFTByID(id string) (*game.Combatant, error) {
	var c game.Combatant
	if err := r.db.Where("id = ?", id).First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *sqliteRepository) GetNFTsByOwner(owner string) ([]game.Combatant, error) {
	var nfts []game.Combatant
	if err := r.db.Where("owner = ?", owner).Order("created_at asc").Order("id asc").Find(&nfts).Error; err != nil {
		return nil, err
	}
	return nfts, nil
}

func (r *sqliteRepository) CreateNFT(c *game.Combatant) error {
	return r.db.Create(c).Error
}

func (r *sqliteRepository) GetProfile(address string) (*game.Profile, error) {
	return loadProfile(r.db, address)
}

func loadProfile(tx *gorm.DB, address string) (*game.Profile, error) {
	var p game.Profile
	if err := tx.Where("address = ?", address).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &game.Profile{Address: address}, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) SaveProfile(p *game.Profile) error {
	return r.db.Save(p).Error
}

func (r *sqliteRepository) ClearSession(address string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// soft delete: pending settlements still see these rows
		if err := tx.Where("wallet_address = ?", address).Delete(&game.BattleRecord{}).Error; err != nil {
			return err
		}
		p, err := loadProfile(tx, address)
		if err != nil {
			return err
		}
		if p.ID == 0 {
			return nil
		}
		p.SelectedNFTID = ""
		return tx.Save(p).Error
	})
}

// GetTopPlayers returns top N players ordered by Wins desc, then TotalBattles desc
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.Profile, error) {
	if limit <= 0 {
		limit = 10
	}
	var profiles []game.Profile
	if err := r.db.Model(&game.Profile{}).
		Where("total_battles > 0").
		Order("wins DESC").
		Order("total_battles DESC").
		Order("address ASC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *sqliteRepository) RecordBattle(rec *game.BattleRecord, winner, loser *game.Combatant, historyLimit int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// relative to the stored value so overlapping battles both count
		if err := tx.Model(&game.Combatant{}).Where("id = ?", winner.ID).
			Update("experience", gorm.Expr("experience + ?", rec.ExperienceGained)).Error; err != nil {
			return fmt.Errorf("award experience: %w", err)
		}

		// upsert adds one battle's result to an owner's profile
		upsert := func(address string, wins, losses, level int) error {
			if address == "" {
				return nil
			}
			p, err := loadProfile(tx, address)
			if err != nil {
				return err
			}
			p.Wins += wins
			p.Losses += losses
			p.TotalBattles++
			if level > p.HighestLevel {
				p.HighestLevel = level
			}
			return tx.Save(p).Error
		}
		if winner.Owner == loser.Owner {
			// both sides belong to one wallet: one battle, one win, one loss
			lvl := winner.Level
			if loser.Level > lvl {
				lvl = loser.Level
			}
			if err := upsert(winner.Owner, 1, 1, lvl); err != nil {
				return err
			}
		} else {
			if err := upsert(winner.Owner, 1, 0, winner.Level); err != nil {
				return err
			}
			if err := upsert(loser.Owner, 0, 1, loser.Level); err != nil {
				return err
			}
		}

		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("append battle history: %w", err)
		}
		return pruneHistory(tx, rec.WalletAddress, historyLimit)
	})
}

// pruneHistory soft-deletes everything but the newest limit records.
func pruneHistory(tx *gorm.DB, address string, limit int) error {
	if limit <= 0 {
		return nil
	}
	var keep []uint
	if err := tx.Model(&game.BattleRecord{}).
		Where("wallet_address = ?", address).
		Order("timestamp DESC").Order("id DESC").
		Limit(limit).
		Pluck("id", &keep).Error; err != nil {
		return err
	}
	if len(keep) < limit {
		return nil
	}
	return tx.Where("wallet_address = ? AND id NOT IN ?", address, keep).Delete(&game.BattleRecord{}).Error
}

func (r *sqliteRepository) GetBattleHistory(address string, limit int) ([]game.BattleRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	var recs []game.BattleRecord
	if err := r.db.Where("wallet_address = ?", address).
		Order("timestamp DESC").Order("id DESC").
		Limit(limit).
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *sqliteRepository) FindPendingSettlements(limit int) ([]game.BattleRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var recs []game.BattleRecord
	if err := r.db.Unscoped().
		Where("settlement = ?", game.SettlementPending).
		Order("id ASC").
		Limit(limit).
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *sqliteRepository) UpdateBattleRecord(rec *game.BattleRecord) error {
	return r.db.Unscoped().Save(rec).Error
}
