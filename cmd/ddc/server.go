package main

import (
	"context"
	"time"

	"github.com/0shq/ddc/internal/config"
	"github.com/0shq/ddc/internal/logging"
	"github.com/0shq/ddc/internal/service"
	"github.com/0shq/ddc/internal/settlement"
)

// startSettlementSweeper periodically hands pending battles to the settler
// until ctx is cancelled. The returned channel closes once the loop exits.
func startSettlementSweeper(ctx context.Context, repo service.SettleRepo, settler settlement.Settler, cfg config.SettlementConfig) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// process sequentially (keeps DB safe under SQLite)
				n, err := service.SettlePending(ctx, repo, settler, cfg.BatchSize, cfg.MaxAttempts, cfg.Timeout)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					logging.Error("settlement sweep failed", err, nil)
					continue
				}
				if n > 0 {
					logging.Info("battles settled", logging.Fields{"count": n})
				}
			}
		}
	}()
	return done
}
