package api

import (
	"net/http"

	"github.com/0shq/ddc/internal/constants"
	"github.com/0shq/ddc/internal/game"
	"github.com/0shq/ddc/internal/service"
	"github.com/0shq/ddc/internal/wallet"
	"github.com/gin-gonic/gin"
)

type MintNFTPayload struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Rarity   string `json:"rarity"`
}

type SelectNFTPayload struct {
	NFTID string `json:"nft_id"`
}

// ListNFTs returns every known NFT, or only those of ?owner= when given.
func (h *GameHandler) ListNFTs(c *gin.Context) {
	var (
		nfts []game.Combatant
		err  error
	)
	if owner := wallet.NormalizeAddress(c.Query("owner")); owner != "" {
		nfts, err = h.repo.GetNFTsByOwner(owner)
	} else {
		nfts, err = h.repo.GetNFTs()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchNFTs})
		return
	}
	if nfts == nil {
		nfts = []game.Combatant{}
	}
	c.JSON(http.StatusOK, nfts)
}

// ListMyNFTs returns the NFTs owned by the authenticated wallet.
func (h *GameHandler) ListMyNFTs(c *gin.Context) {
	nfts, err := h.repo.GetNFTsByOwner(walletFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchNFTs})
		return
	}
	if nfts == nil {
		nfts = []game.Combatant{}
	}
	c.JSON(http.StatusOK, nfts)
}

// MintNFT opens a mystery box for the authenticated wallet.
func (h *GameHandler) MintNFT(c *gin.Context) {
	var req MintNFTPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	nft, err := service.MintNFT(h.repo, h.roller, h.opts.Rarities, walletFromContext(c), service.MintRequest{
		Name:     req.Name,
		ImageURL: req.ImageURL,
		Rarity:   req.Rarity,
	})
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedMint)
		return
	}
	c.JSON(http.StatusCreated, nft)
}

// SelectNFT sets the NFT the authenticated wallet battles with.
func (h *GameHandler) SelectNFT(c *gin.Context) {
	var req SelectNFTPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	p, err := service.SelectNFT(h.repo, walletFromContext(c), req.NFTID)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedUpdateProfile)
		return
	}
	c.JSON(http.StatusOK, walletView{
		Address:       p.Address,
		DisplayName:   p.DisplayName,
		State:         p.SessionState,
		SelectedNFTID: p.SelectedNFTID,
	})
}
