package api

import (
	"net/http"
	"time"

	"github.com/0shq/ddc/internal/constants"
	"github.com/0shq/ddc/internal/logging"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every route under /api. feed serves the websocket
// outcome stream and may be nil.
func NewRouter(h *GameHandler, feed http.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteNFTs, h.ListNFTs)
		apiRoutes.GET(constants.RouteLeaderboard, h.ListLeaderboard)
		apiRoutes.POST(constants.RouteWalletConnect, h.ConnectWallet)
		if feed != nil {
			apiRoutes.GET(constants.RouteFeed, gin.WrapH(feed))
		}

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(AuthRequired())

		protected.GET(constants.RouteWallet, h.GetWallet)
		protected.POST(constants.RouteWalletDisconnect, h.DisconnectWallet)
		protected.GET(constants.RouteNFTsMine, h.ListMyNFTs)
		protected.POST(constants.RouteNFTsMint, h.MintNFT)
		protected.POST(constants.RouteNFTsSelect, h.SelectNFT)
		protected.POST(constants.RouteBattles, h.InitiateBattle)
		protected.GET(constants.RouteBattleHistory, h.BattleHistory)
		protected.GET(constants.RoutePlayerStats, h.GetPlayerStats)
	}
	return router
}

// requestLogger emits one structured line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := logging.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logging.Warn("request failed", nil, fields)
			return
		}
		logging.Debug("request", fields)
	}
}
