package constants

// Centralized constants for env keys, routes and API error messages.
const (
	// Environment variable keys
	EnvSessionSecret = "SESSION_SECRET"
	EnvArenaConfig   = "ARENA_CONFIG"
	EnvArenaDB       = "ARENA_DB"
	EnvDatabaseURL   = "DATABASE_URL"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Session / Cookie names
	CookieSessionName = "bb_session"
)

// Routes used by the backend router
const (
	RouteAPIPrefix    = "/api"
	RouteVersion      = "/version"
	RouteAbilities    = "/abilities"
	RouteLeaderboard  = "/leaderboard"
	RouteMatchQueue   = "/match/queue"
	RouteMatchByID    = "/match/:matchID"
	RouteMatchAct     = "/match/:matchID/act"
	RouteMatchTimeout = "/match/:matchID/timeout"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest  = "Invalid request"
	ErrInvalidMatchID  = "Invalid match ID"
	ErrMatchNotFound   = "Match not found"
	ErrNotAuthorized   = "Not authorized to view this match"
	ErrInvalidBand     = "Invalid band"
	ErrNoAvatarFound   = "No avatar found"
	ErrMatchNotActive  = "Match is not active"
	ErrNotInMatch      = "Not in this match"
	ErrNotYourTurn     = "Not your turn"
	ErrAbilityLocked   = "Ability not unlocked"
	ErrAbilityUnknown  = "Ability not found"
	ErrOwnTurnClaim    = "Cannot claim timeout on your own turn"
	ErrTimeoutTooEarly = "Timeout not yet claimable"
	ErrMatchContended  = "Match is busy, retry"

	ErrFailedQueue            = "Failed to queue for match"
	ErrFailedResolveTurn      = "Failed to resolve turn"
	ErrFailedClaimTimeout     = "Failed to claim timeout"
	ErrFailedFetchMatch       = "Failed to fetch match"
	ErrFailedFetchAbilities   = "Failed to fetch abilities"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldMatchID   = "match_id"
	LogFieldStudentID = "student_id"
	LogFieldAvatarID  = "avatar_id"
	LogFieldAbilityID = "ability_id"
	LogFieldRound     = "round"
	LogFieldBand      = "band"
	LogFieldWinnerID  = "winner_id"
	LogFieldAddr      = "addr"
)
