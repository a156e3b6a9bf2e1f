package api

import (
	"net/http"
	"strings"

	"github.com/0shq/ddc/internal/constants"
	"github.com/0shq/ddc/internal/service"
	"github.com/0shq/ddc/internal/wallet"
	"github.com/gin-gonic/gin"
)

type ConnectWalletRequest struct {
	Address     string `json:"address"`
	DisplayName string `json:"display_name"`
}

type walletView struct {
	Address       string `json:"address"`
	DisplayName   string `json:"display_name"`
	State         string `json:"state"`
	SelectedNFTID string `json:"selected_nft_id"`
}

// ConnectWallet connects the wallet, selects its first NFT if none is
// selected, and issues the session cookie.
func (h *GameHandler) ConnectWallet(c *gin.Context) {
	var req ConnectWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	p, err := service.ConnectWallet(h.repo, req.Address, strings.TrimSpace(req.DisplayName))
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedUpdateProfile)
		return
	}

	sess, err := createSessionToken(p.Address, p.DisplayName, h.opts.SessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession})
		return
	}
	setSessionCookie(c, sess, h.opts.SessionTTL)

	c.JSON(http.StatusOK, walletView{
		Address:       p.Address,
		DisplayName:   p.DisplayName,
		State:         p.SessionState,
		SelectedNFTID: p.SelectedNFTID,
	})
}

// DisconnectWallet clears the wallet's session, selection, stats and
// history, then drops the cookie.
func (h *GameHandler) DisconnectWallet(c *gin.Context) {
	if err := service.DisconnectWallet(h.repo, walletFromContext(c)); err != nil {
		writeServiceError(c, err, constants.ErrFailedUpdateProfile)
		return
	}
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"state": string(wallet.StateDisconnected)})
}

// GetWallet returns the session state of the authenticated wallet.
func (h *GameHandler) GetWallet(c *gin.Context) {
	s, p, err := service.LoadSession(h.repo, walletFromContext(c))
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedFetchStats)
		return
	}
	c.JSON(http.StatusOK, walletView{
		Address:       s.Address,
		DisplayName:   p.DisplayName,
		State:         string(s.State),
		SelectedNFTID: s.SelectedID,
	})
}
