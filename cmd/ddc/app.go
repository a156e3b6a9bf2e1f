package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/0shq/ddc/internal/config"
	"github.com/0shq/ddc/internal/game"
	"github.com/0shq/ddc/internal/logging"
	"github.com/0shq/ddc/internal/storage"

	"gorm.io/gorm"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid ddc configuration", err, logging.Fields{"config_path": path, "hint": "create a ddc_config.json (or .yaml) with an 'nft_list' array of nft objects (id,name,owner,strength,speed,luck,level,experience,image_url,rarity) and optional keys: server.address, rarity_list, battle.history_limit, settlement.*"})
	}
	return cfg
}

func openDatabaseOrExit(dbPath string, nfts []game.Combatant) *gorm.DB {
	// plain file paths need their directory; DSNs with options are used as-is
	if !strings.HasPrefix(dbPath, "file:") && !strings.Contains(dbPath, ":memory:") {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				logging.Fatal("Failed to create database directory", err, logging.Fields{"dir": dir})
			}
		}
	}
	db, err := storage.OpenAndMigrate(dbPath, nfts)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"db_path": dbPath})
	}
	return db
}
