package api

import (
	"net/http"
	"strings"

	"github.com/0shq/ddc/internal/constants"
	"github.com/0shq/ddc/internal/game"
	"github.com/0shq/ddc/internal/service"
	"github.com/gin-gonic/gin"
)

type BattlePayload struct {
	OpponentID string `json:"opponent_id"`
}

type historyEntry struct {
	ID            uint                  `json:"id"`
	Outcome       game.BattleOutcome    `json:"outcome"`
	Settlement    game.SettlementStatus `json:"settlement"`
	SettlementRef string                `json:"settlement_ref,omitempty"`
}

// InitiateBattle resolves a battle between the wallet's selected NFT and
// the requested opponent.
func (h *GameHandler) InitiateBattle(c *gin.Context) {
	var req BattlePayload
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.OpponentID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	address := walletFromContext(c)
	out, err := service.InitiateBattle(h.repo, h.resolver, address, strings.TrimSpace(req.OpponentID), h.opts.HistoryLimit)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedBattle)
		return
	}
	if h.feed != nil {
		h.feed.Publish(address, out)
	}
	c.JSON(http.StatusOK, out)
}

// BattleHistory returns the wallet's recent battles, newest first.
func (h *GameHandler) BattleHistory(c *gin.Context) {
	limit := queryLimit(c, h.opts.HistoryLimit, h.opts.HistoryLimit)
	recs, err := h.repo.GetBattleHistory(walletFromContext(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchHistory})
		return
	}

	out := make([]historyEntry, 0, len(recs))
	for _, r := range recs {
		out = append(out, historyEntry{
			ID:            r.ID,
			Outcome:       r.Outcome(),
			Settlement:    r.Settlement,
			SettlementRef: r.SettlementRef,
		})
	}
	c.JSON(http.StatusOK, out)
}
