package service

import (
	"context"
	"time"

	"github.com/0shq/ddc/internal/constants"
	"github.com/0shq/ddc/internal/game"
	"github.com/0shq/ddc/internal/logging"
	"github.com/0shq/ddc/internal/settlement"
)

// SettleRepo is the minimal repository interface required by SettlePending.
type SettleRepo interface {
	FindPendingSettlements(limit int) ([]game.BattleRecord, error)
	UpdateBattleRecord(rec *game.BattleRecord) error
}

// SettlePending hands up to batch pending battle records to the settler.
// Behavior:
// - success -> settled with the returned reference
// - failure -> attempts incremented, error kept; failed after maxAttempts
// Each call to the settler is bounded by timeout. It returns how many
// records were settled; only repository errors abort the sweep.
func SettlePending(ctx context.Context, repo SettleRepo, settler settlement.Settler, batch, maxAttempts int, timeout time.Duration) (int, error) {
	recs, err := repo.FindPendingSettlements(batch)
	if err != nil {
		return 0, err
	}
	settled := 0
	for i := range recs {
		if ctx.Err() != nil {
			return settled, ctx.Err()
		}
		rec := &recs[i]
		cctx, cancel := context.WithTimeout(ctx, timeout)
		ref, serr := settler.Settle(cctx, *rec)
		cancel()

		fields := logging.Fields{constants.LogFieldBattleID: rec.ID, constants.LogFieldWallet: rec.WalletAddress}
		if serr != nil {
			rec.Attempts++
			rec.LastError = serr.Error()
			fields[constants.LogFieldAttempts] = rec.Attempts
			if maxAttempts > 0 && rec.Attempts >= maxAttempts {
				rec.Settlement = game.SettlementFailed
				logging.Error("battle settlement failed permanently", serr, fields)
			} else {
				logging.Warn("battle settlement attempt failed", serr, fields)
			}
		} else {
			rec.Settlement = game.SettlementSettled
			rec.SettlementRef = ref
			rec.LastError = ""
			settled++
			logging.Debug("battle settled", fields)
		}
		if err := repo.UpdateBattleRecord(rec); err != nil {
			return settled, err
		}
	}
	return settled, nil
}
