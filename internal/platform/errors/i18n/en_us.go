package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown = "UNKNOWN"

	CodeGameNameEmpty           = "GAME_NAME_EMPTY"
	CodeGameInvalidWinCondition = "GAME_INVALID_WIN_CONDITION"
	CodeGameInvalidLimit        = "GAME_INVALID_LIMIT"

	CodePlayerNameEmpty = "PLAYER_NAME_EMPTY"

	CodeSessionNotActive         = "SESSION_NOT_ACTIVE"
	CodeSessionEmptyRoster       = "SESSION_EMPTY_ROSTER"
	CodeSessionDuplicatePlayer   = "SESSION_DUPLICATE_PLAYER"
	CodeSessionPlayerNotInRoster = "SESSION_PLAYER_NOT_IN_ROSTER"
	CodeSessionLastPlayer        = "SESSION_LAST_PLAYER"
	CodeSessionRosterMismatch    = "SESSION_ROSTER_MISMATCH"
	CodeSessionRoundOutOfRange   = "SESSION_ROUND_OUT_OF_RANGE"

	CodeStatsNoPlayers = "STATS_NO_PLAYERS"

	CodeNotFound = "NOT_FOUND"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeUnknown: "An unexpected error occurred",

		// Game definition errors
		CodeGameNameEmpty:           "Game name cannot be empty",
		CodeGameInvalidWinCondition: "Win condition must be highest or lowest",
		CodeGameInvalidLimit:        "Limits must be zero or positive",

		// Player errors
		CodePlayerNameEmpty: "Player name cannot be empty",

		// Session errors
		CodeSessionNotActive:         "No session is currently active",
		CodeSessionEmptyRoster:       "At least one player is required",
		CodeSessionDuplicatePlayer:   "This player is already in the session",
		CodeSessionPlayerNotInRoster: "This player is not in the session",
		CodeSessionLastPlayer:        "Cannot remove the last player from the session",
		CodeSessionRosterMismatch:    "New order must contain exactly the current players",
		CodeSessionRoundOutOfRange:   "Round {{.Round}} does not exist",

		// Statistics errors
		CodeStatsNoPlayers: "Select at least one player",

		// Storage errors
		CodeNotFound: "The requested resource was not found",
	},
}
