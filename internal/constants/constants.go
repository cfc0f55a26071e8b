package constants

// Environment variable keys
const (
	EnvConfigPath          = "TELECARDS_CONFIG"
	EnvDBPath              = "TELECARDS_DB"
	EnvServerAddr          = "TELECARDS_ADDR"
	EnvSeed                = "TELECARDS_SEED"
	EnvLogLevel            = "LOG_LEVEL"
	EnvSessionSecret       = "SESSION_SECRET"
	EnvSessionTTL          = "SESSION_TTL"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
)

// HTTP headers and session cookie
const (
	HeaderAuthorization = "Authorization"
	BearerPrefix        = "Bearer "
	CookieSessionName   = "tc_session"
)

// Context keys set by the auth middleware
const (
	CtxPlayerID   = "playerID"
	CtxPlayerName = "playerName"
	CtxAvatarURL  = "avatarURL"
)

// Routes used by the backend router
const (
	RouteAPIPrefix      = "/api"
	RouteVersion        = "/version"
	RouteCards          = "/cards"
	RouteLeaderboard    = "/leaderboard"
	RouteAuthSession    = "/auth/session"
	RouteProfile        = "/profile"
	RouteDecks          = "/decks"
	RouteDeckActivate   = "/decks/:deckID/activate"
	RouteMatchesBot     = "/matches/bot"
	RouteMatchesFind    = "/matches/find"
	RouteMatchesHistory = "/matches/history"
	RouteMatchByID      = "/matches/:matchID"
	RouteMatchActions   = "/matches/:matchID/actions"
	RouteMatchConcede   = "/matches/:matchID/concede"
	RouteMatchStream    = "/matches/:matchID/stream"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest        = "Invalid request"
	ErrAuthRequired          = "Authentication required"
	ErrInvalidSession        = "Invalid session"
	ErrFailedCreateSession   = "Failed to create session"
	ErrFailedFetchProfile    = "Failed to fetch profile"
	ErrFailedUpdateProfile   = "Failed to update profile"
	ErrInvalidPlayerName     = "Invalid player name"
	ErrFailedFetchLeader     = "Failed to fetch leaderboard"
	ErrFailedFetchDecks      = "Failed to fetch decks"
	ErrFailedSaveDeck        = "Failed to save deck"
	ErrDeckNotFound          = "Deck not found"
	ErrDuplicateDeck         = "A deck with the same cards already exists"
	ErrInvalidDeck           = "Invalid deck"
	ErrFailedCreateMatch     = "Failed to create match"
	ErrMatchmakingCancelled  = "Matchmaking cancelled"
	ErrMatchNotFound         = "Match not found"
	ErrPlayerNotInThisMatch  = "Player not in this match"
	ErrActionRejected        = "Action rejected"
	ErrFailedFetchHistory    = "Failed to fetch match history"
	ErrFailedEncodeMatch     = "Failed to encode match"
	ErrFailedUpgradeStream   = "Failed to open match stream"
	ErrMatchAlreadyFinished  = "Match already finished"
	ErrUnknownActionType     = "Unknown action type"
	ErrMissingSessionSecret  = "SESSION_SECRET not set"
	ErrTelegramIDRequired    = "Telegram user id is required"
	ErrNoActiveDeckAvailable = "No active deck"
)

// Logging field names
const (
	LogFieldMatchID    = "match_id"
	LogFieldPlayerID   = "player_id"
	LogFieldSeatID     = "seat_id"
	LogFieldAction     = "action"
	LogFieldCardID     = "card_id"
	LogFieldDeckID     = "deck_id"
	LogFieldTurn       = "turn"
	LogFieldWinner     = "winner"
	LogFieldReason     = "reason"
	LogFieldAddr       = "addr"
	LogFieldConfigPath = "config_path"
	LogFieldDBPath     = "db_path"
	LogFieldCount      = "count"
)
