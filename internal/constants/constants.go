package constants

// Centralized constants for headers, env keys and routes.
const (
	// Environment variable keys
	EnvConfigPath          = "DDC_CONFIG"
	EnvDBPath              = "DDC_DB"
	EnvSessionSecret       = "SESSION_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvHealthcheckURL      = "DDC_HEALTHCHECK_URL"

	DefaultConfigPath = "./ddc_config.json"
	DefaultDBPath     = "./data/ddc.db"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"

	// Session / Cookie names
	CookieSessionName = "ddc_session"

	// Gin context keys set by the auth middleware
	CtxWalletAddress = "walletAddress"
)

// Routes used by the backend router
const (
	RouteAPIPrefix        = "/api"
	RouteVersion          = "/version"
	RouteNFTs             = "/nfts"
	RouteNFTsMine         = "/nfts/mine"
	RouteNFTsMint         = "/nfts/mint"
	RouteNFTsSelect       = "/nfts/select"
	RouteWallet           = "/wallet"
	RouteWalletConnect    = "/wallet/connect"
	RouteWalletDisconnect = "/wallet/disconnect"
	RouteBattles          = "/battles"
	RouteBattleHistory    = "/battles/history"
	RouteLeaderboard      = "/leaderboard"
	RoutePlayerStats      = "/player-stats"
	RouteFeed             = "/feed"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrInvalidAddress         = "Invalid wallet address"
	ErrAlreadyConnected       = "Wallet already connected to a different address"
	ErrWalletNotConnected     = "Wallet not connected"
	ErrNoNFTSelected          = "No NFT selected"
	ErrNFTNotFound            = "NFT not found"
	ErrNFTNotOwned            = "NFT is not owned by this wallet"
	ErrOpponentIsSelf         = "Cannot battle your own selected NFT"
	ErrInvalidRarity          = "Unknown rarity"
	ErrInvalidNFTName         = "NFT name must be 1-40 characters"
	ErrDuplicateNFTName       = "You already own an NFT with this name"
	ErrFailedFetchNFTs        = "Failed to fetch NFTs"
	ErrFailedMint             = "Failed to mint NFT"
	ErrFailedBattle           = "Battle failed"
	ErrFailedFetchHistory     = "Failed to fetch battle history"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrFailedUpdateProfile    = "Failed to update profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldWallet   = "wallet"
	LogFieldNFTID    = "nft_id"
	LogFieldOpponent = "opponent_id"
	LogFieldWinner   = "winner_id"
	LogFieldDamage   = "damage"
	LogFieldBattleID = "battle_id"
	LogFieldAttempts = "attempts"
	LogFieldAddr     = "addr"
)
