package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Game definition errors
	CodeGameNameEmpty           Code = "GAME_NAME_EMPTY"
	CodeGameInvalidWinCondition Code = "GAME_INVALID_WIN_CONDITION"
	CodeGameInvalidLimit        Code = "GAME_INVALID_LIMIT"

	// Player errors
	CodePlayerNameEmpty Code = "PLAYER_NAME_EMPTY"

	// Session errors
	CodeSessionNotActive         Code = "SESSION_NOT_ACTIVE"
	CodeSessionEmptyRoster       Code = "SESSION_EMPTY_ROSTER"
	CodeSessionDuplicatePlayer   Code = "SESSION_DUPLICATE_PLAYER"
	CodeSessionPlayerNotInRoster Code = "SESSION_PLAYER_NOT_IN_ROSTER"
	CodeSessionLastPlayer        Code = "SESSION_LAST_PLAYER"
	CodeSessionRosterMismatch    Code = "SESSION_ROSTER_MISMATCH"
	CodeSessionRoundOutOfRange   Code = "SESSION_ROUND_OUT_OF_RANGE"

	// Statistics errors
	CodeStatsNoPlayers Code = "STATS_NO_PLAYERS"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation failures, bad input
	case CodeGameNameEmpty,
		CodeGameInvalidWinCondition,
		CodeGameInvalidLimit,
		CodePlayerNameEmpty,
		CodeSessionEmptyRoster,
		CodeStatsNoPlayers:
		return http.StatusBadRequest

	// Conflict - state doesn't allow operation
	case CodeSessionNotActive,
		CodeSessionDuplicatePlayer,
		CodeSessionPlayerNotInRoster,
		CodeSessionLastPlayer,
		CodeSessionRosterMismatch:
		return http.StatusConflict

	// Not found - resource doesn't exist
	case CodeNotFound,
		CodeSessionRoundOutOfRange:
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}
