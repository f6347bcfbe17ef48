// Package storage defines the persistence interfaces consumed by the
// engine, registries and statistics aggregator.
package storage

import (
	"context"
	"errors"
	"time"

	gamedomain "github.com/louisbranch/scorekeep/internal/game/domain"
	playerdomain "github.com/louisbranch/scorekeep/internal/player/domain"
	sessiondomain "github.com/louisbranch/scorekeep/internal/session/domain"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// GameStore persists game templates.
type GameStore interface {
	PutGame(ctx context.Context, game gamedomain.Game) error
	GetGame(ctx context.Context, id string) (gamedomain.Game, error)
	ListGames(ctx context.Context) ([]gamedomain.Game, error)
	DeleteGame(ctx context.Context, id string) error
}

// PlayerStore persists player identities. Deletion is not modeled; archive
// entries reference players forever.
type PlayerStore interface {
	PutPlayer(ctx context.Context, player playerdomain.Player) error
	GetPlayer(ctx context.Context, id string) (playerdomain.Player, error)
	ListPlayers(ctx context.Context) ([]playerdomain.Player, error)
}

// SessionStore persists the single active session and the last roster
// preselection.
type SessionStore interface {
	SaveActiveSession(ctx context.Context, session sessiondomain.Session) error
	GetActiveSession(ctx context.Context) (sessiondomain.Session, error)
	ClearActiveSession(ctx context.Context) error
	PutLastSelectedPlayers(ctx context.Context, playerIDs []string) error
	GetLastSelectedPlayers(ctx context.Context) ([]string, error)
}

// PlayerResult is one player's final score inside an archive entry.
type PlayerResult struct {
	PlayerID string
	Score    int
}

// ArchiveEntry is an immutable snapshot of a finished session. Results keep
// the session's roster order.
type ArchiveEntry struct {
	ID         string
	GameID     string
	Results    []PlayerResult
	FinishedAt time.Time
}

// ArchiveStore persists finished sessions, append-only.
type ArchiveStore interface {
	AppendArchiveEntry(ctx context.Context, entry ArchiveEntry) error
	ListArchiveEntries(ctx context.Context) ([]ArchiveEntry, error)
	CountArchiveEntriesByGame(ctx context.Context) (map[string]int, error)
}

// TelemetryEvent records one operational event.
type TelemetryEvent struct {
	Name       string
	Attributes map[string]string
	Timestamp  time.Time
}

// TelemetryStore persists operational telemetry events.
type TelemetryStore interface {
	AppendTelemetryEvent(ctx context.Context, event TelemetryEvent) error
}
