package api

import (
	"time"

	"github.com/0shq/ddc/internal/game"
	"github.com/0shq/ddc/internal/service"
	"github.com/0shq/ddc/internal/storage"
)

// Publisher receives every resolved battle, e.g. the websocket feed.
type Publisher interface {
	Publish(wallet string, out game.BattleOutcome)
}

// Options carries the runtime settings handlers need from configuration.
type Options struct {
	Rarities     map[game.Rarity]game.StatRange
	HistoryLimit int
	SessionTTL   time.Duration
}

// GameHandler groups all wallet, NFT and battle HTTP handlers.
type GameHandler struct {
	repo     storage.Repository
	resolver service.Resolver
	roller   service.Roller
	feed     Publisher
	opts     Options
}

// NewGameHandler creates a GameHandler. feed may be nil.
func NewGameHandler(repo storage.Repository, resolver service.Resolver, roller service.Roller, feed Publisher, opts Options) *GameHandler {
	if opts.Rarities == nil {
		opts.Rarities = game.DefaultStatRanges()
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 10
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	return &GameHandler{repo: repo, resolver: resolver, roller: roller, feed: feed, opts: opts}
}
