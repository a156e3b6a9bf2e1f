package storage

import (
	"github.com/0shq/ddc/internal/game"
	"github.com/0shq/ddc/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// OpenAndMigrate opens the sqlite database, migrates the schema and seeds
// the configured NFT roster.
func OpenAndMigrate(dataSourceName string, nftsFromConfig []game.Combatant) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// Keep schema updated via AutoMigrate; remove the DB file to start over.
	err = db.AutoMigrate(&game.Combatant{}, &game.Profile{}, &game.BattleRecord{})
	if err != nil {
		return nil, err
	}
	if err := seedRoster(db, nftsFromConfig); err != nil {
		return nil, err
	}
	return db, nil
}

// seedRoster inserts configured NFTs that are not in the database yet.
// Existing rows are left alone so experience earned in battle survives
// restarts.
func seedRoster(db *gorm.DB, nftsFromConfig []game.Combatant) error {
	if len(nftsFromConfig) == 0 {
		return nil
	}
	rows := make([]game.Combatant, len(nftsFromConfig))
	copy(rows, nftsFromConfig)
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		logging.Info("nft roster seeded", logging.Fields{"inserted": res.RowsAffected, "configured": len(nftsFromConfig)})
	}
	return nil
}
