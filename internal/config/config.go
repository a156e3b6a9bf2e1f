package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/0shq/ddc/internal/game"
	"github.com/0shq/ddc/internal/wallet"

	"gopkg.in/yaml.v3"
)

type nftEntry struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Owner      string  `json:"owner" yaml:"owner"`
	Strength   float64 `json:"strength" yaml:"strength"`
	Speed      float64 `json:"speed" yaml:"speed"`
	Luck       float64 `json:"luck" yaml:"luck"`
	Level      int     `json:"level" yaml:"level"`
	Experience float64 `json:"experience" yaml:"experience"`
	ImageURL   string  `json:"image_url" yaml:"image_url"`
	ImageURLV1 string  `json:"imageUrl" yaml:"imageUrl"`
	Rarity     string  `json:"rarity" yaml:"rarity"`
	// Attributes accepts the legacy nested layout; when present it takes
	// precedence over the flat stat keys.
	Attributes *game.NestedAttribute `json:"attributes" yaml:"attributes"`
}

type rarityEntry struct {
	Name    string `json:"name" yaml:"name"`
	MinStat int    `json:"min_stat" yaml:"min_stat"`
	MaxStat int    `json:"max_stat" yaml:"max_stat"`
}

type rawConfig struct {
	NFTList    []nftEntry    `json:"nft_list" yaml:"nft_list"`
	RarityList []rarityEntry `json:"rarity_list" yaml:"rarity_list"`
	Server     *struct {
		Address string `json:"address" yaml:"address"`
	} `json:"server" yaml:"server"`
	Battle *struct {
		// Number of battles kept per wallet. Defaults to 10.
		HistoryLimit int `json:"history_limit" yaml:"history_limit"`
	} `json:"battle" yaml:"battle"`
	Settlement *struct {
		// Relay URL receiving resolved battles. Empty settles locally.
		Endpoint        string `json:"endpoint" yaml:"endpoint"`
		IntervalSeconds int    `json:"interval_seconds" yaml:"interval_seconds"`
		TimeoutSeconds  int    `json:"timeout_seconds" yaml:"timeout_seconds"`
		MaxAttempts     int    `json:"max_attempts" yaml:"max_attempts"`
		BatchSize       int    `json:"batch_size" yaml:"batch_size"`
	} `json:"settlement" yaml:"settlement"`
	Session *struct {
		TTLHours int `json:"ttl_hours" yaml:"ttl_hours"`
	} `json:"session" yaml:"session"`
}

// SettlementConfig controls the background settlement sweep.
type SettlementConfig struct {
	Endpoint    string
	Interval    time.Duration
	Timeout     time.Duration
	MaxAttempts int
	BatchSize   int
}

// LoadedConfig contains the NFT roster to seed, the mint rarity tiers and
// the runtime settings of the server.
type LoadedConfig struct {
	NFTs          []game.Combatant
	Rarities      map[game.Rarity]game.StatRange
	ServerAddress string
	HistoryLimit  int
	SessionTTL    time.Duration
	Settlement    SettlementConfig
}

// LoadConfig reads the configuration file at path. Files ending in .yml or
// .yaml are parsed as YAML, everything else as JSON.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(b, &rc)
	default:
		err = json.Unmarshal(b, &rc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return build(path, rc)
}

func build(path string, rc rawConfig) (*LoadedConfig, error) {
	rarities, err := buildRarities(path, rc.RarityList)
	if err != nil {
		return nil, err
	}
	nfts, err := buildNFTs(path, rc.NFTList)
	if err != nil {
		return nil, err
	}

	out := &LoadedConfig{
		NFTs:          nfts,
		Rarities:      rarities,
		ServerAddress: ":8080",
		HistoryLimit:  10,
		SessionTTL:    24 * time.Hour,
		Settlement: SettlementConfig{
			Interval:    5 * time.Second,
			Timeout:     10 * time.Second,
			MaxAttempts: 5,
			BatchSize:   20,
		},
	}
	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if rc.Battle != nil && rc.Battle.HistoryLimit > 0 {
		out.HistoryLimit = rc.Battle.HistoryLimit
	}
	if rc.Session != nil && rc.Session.TTLHours > 0 {
		out.SessionTTL = time.Duration(rc.Session.TTLHours) * time.Hour
	}
	if s := rc.Settlement; s != nil {
		out.Settlement.Endpoint = strings.TrimSpace(s.Endpoint)
		if s.IntervalSeconds > 0 {
			out.Settlement.Interval = time.Duration(s.IntervalSeconds) * time.Second
		}
		if s.TimeoutSeconds > 0 {
			out.Settlement.Timeout = time.Duration(s.TimeoutSeconds) * time.Second
		}
		if s.MaxAttempts > 0 {
			out.Settlement.MaxAttempts = s.MaxAttempts
		}
		if s.BatchSize > 0 {
			out.Settlement.BatchSize = s.BatchSize
		}
	}
	return out, nil
}

func buildRarities(path string, entries []rarityEntry) (map[game.Rarity]game.StatRange, error) {
	out := game.DefaultStatRanges()
	if len(entries) == 0 {
		return out, nil
	}
	seen := make(map[game.Rarity]struct{}, len(entries))
	for _, e := range entries {
		r, err := game.ParseRarity(e.Name)
		if err != nil {
			return nil, fmt.Errorf("config file %s: rarity_list: %w", path, err)
		}
		if _, dup := seen[r]; dup {
			return nil, fmt.Errorf("config file %s: duplicate rarity '%s'", path, r)
		}
		seen[r] = struct{}{}
		if e.MinStat < 0 || e.MaxStat < e.MinStat {
			return nil, fmt.Errorf("config file %s: rarity '%s' needs 0 <= min_stat <= max_stat", path, r)
		}
		out[r] = game.StatRange{Min: e.MinStat, Max: e.MaxStat}
	}
	return out, nil
}

func buildNFTs(path string, entries []nftEntry) ([]game.Combatant, error) {
	out := make([]game.Combatant, 0, len(entries))
	ids := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		var c *game.Combatant
		var err error
		if e.Attributes != nil {
			c, err = game.FromNested(game.NFTAttributes{
				ID:         e.ID,
				Name:       e.Name,
				Owner:      e.Owner,
				Attributes: *e.Attributes,
				ImageURL:   e.imageURL(),
				Rarity:     e.Rarity,
			})
		} else {
			c, err = flatEntry(e)
		}
		if err != nil {
			return nil, fmt.Errorf("config file %s: nft '%s': %w", path, e.ID, err)
		}
		c.Owner = wallet.NormalizeAddress(c.Owner)
		if _, dup := ids[c.ID]; dup {
			return nil, fmt.Errorf("config file %s: duplicate nft id '%s'", path, c.ID)
		}
		ids[c.ID] = struct{}{}
		out = append(out, *c)
	}
	return out, nil
}

// imageURL accepts both the snake_case key and the camelCase key used by
// the NFT metadata records.
func (e nftEntry) imageURL() string {
	if e.ImageURL != "" {
		return e.ImageURL
	}
	return e.ImageURLV1
}

func flatEntry(e nftEntry) (*game.Combatant, error) {
	rarity := game.RarityCommon
	if strings.TrimSpace(e.Rarity) != "" {
		r, err := game.ParseRarity(e.Rarity)
		if err != nil {
			return nil, err
		}
		rarity = r
	}
	c := &game.Combatant{
		ID:         strings.TrimSpace(e.ID),
		Name:       e.Name,
		Owner:      e.Owner,
		Strength:   e.Strength,
		Speed:      e.Speed,
		Luck:       e.Luck,
		Level:      e.Level,
		Experience: e.Experience,
		ImageURL:   e.imageURL(),
		Rarity:     rarity,
	}
	if err := game.ValidateCombatant(c); err != nil {
		return nil, err
	}
	return c, nil
}
