package api

import (
	"net/http"

	"github.com/0shq/ddc/internal/constants"
	"github.com/0shq/ddc/internal/wallet"
	"github.com/gin-gonic/gin"
)

// ListLeaderboard returns the top players by wins (desc), limited to top 10 by default.
func (h *GameHandler) ListLeaderboard(c *gin.Context) {
	users, err := h.repo.GetTopPlayers(queryLimit(c, 10, 100))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	respondSnake(c, http.StatusOK, users, constants.ErrFailedFetchLeaderboard)
}

// GetPlayerStats returns aggregated stats for ?address=, defaulting to the
// authenticated wallet.
func (h *GameHandler) GetPlayerStats(c *gin.Context) {
	address := wallet.NormalizeAddress(c.Query("address"))
	if address == "" {
		address = walletFromContext(c)
	}
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidAddress})
		return
	}
	ps, err := h.repo.GetProfile(address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	respondSnake(c, http.StatusOK, ps, constants.ErrFailedFetchStats)
}
