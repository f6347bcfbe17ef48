// Package domain holds the session state machine: round history, roster
// mutations, limit overrides, ranking and end-condition evaluation.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/scorekeep/internal/platform/id"
)

var (
	// ErrEmptyGameID indicates a missing game ID.
	ErrEmptyGameID = errors.New("game id is required")
	// ErrEmptyRoster indicates a session without players.
	ErrEmptyRoster = errors.New("at least one player is required")
	// ErrDuplicatePlayer indicates a player already present in the roster.
	ErrDuplicatePlayer = errors.New("player is already in the roster")
	// ErrPlayerNotInRoster indicates a player missing from the roster.
	ErrPlayerNotInRoster = errors.New("player is not in the roster")
	// ErrLastPlayer indicates an attempt to empty the roster.
	ErrLastPlayer = errors.New("cannot remove the last roster player")
	// ErrRosterMismatch indicates a reorder that is not a roster permutation.
	ErrRosterMismatch = errors.New("new order must be a permutation of the roster")
	// ErrRoundOutOfRange indicates a round index outside the history.
	ErrRoundOutOfRange = errors.New("round index is out of range")
)

// RoundRecord maps player IDs to their score for one round. A missing key is
// a blank cell: distinct from zero for completeness checks, but summing as
// zero in aggregates.
type RoundRecord map[string]int

// Clone returns an independent copy of the record.
func (r RoundRecord) Clone() RoundRecord {
	clone := make(RoundRecord, len(r))
	for playerID, score := range r {
		clone[playerID] = score
	}
	return clone
}

// Session is one in-progress play-through of a game: its roster (order is
// turn and display order), round history, and optional limit overrides.
type Session struct {
	ID        string
	GameID    string
	Title     string
	Roster    []string
	History   []RoundRecord
	Config    Config
	StartedAt time.Time
	UpdatedAt time.Time
}

// CreateSessionInput describes the data needed to start a session.
type CreateSessionInput struct {
	GameID string
	Title  string
	Roster []string
	Config Config
}

// CreateSession creates a new session with a generated ID, the roster order
// exactly as given, and a single empty round.
func CreateSession(input CreateSessionInput, now func() time.Time, idGenerator func() (string, error)) (Session, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateSessionInput(input)
	if err != nil {
		return Session{}, err
	}

	sessionID, err := idGenerator()
	if err != nil {
		return Session{}, fmt.Errorf("generate session id: %w", err)
	}

	createdAt := now().UTC()
	return Session{
		ID:        sessionID,
		GameID:    normalized.GameID,
		Title:     normalized.Title,
		Roster:    normalized.Roster,
		History:   []RoundRecord{{}},
		Config:    normalized.Config,
		StartedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// NormalizeCreateSessionInput trims and validates session input.
func NormalizeCreateSessionInput(input CreateSessionInput) (CreateSessionInput, error) {
	input.GameID = strings.TrimSpace(input.GameID)
	if input.GameID == "" {
		return CreateSessionInput{}, ErrEmptyGameID
	}
	input.Title = strings.TrimSpace(input.Title)
	if len(input.Roster) == 0 {
		return CreateSessionInput{}, ErrEmptyRoster
	}
	seen := make(map[string]struct{}, len(input.Roster))
	roster := make([]string, 0, len(input.Roster))
	for _, playerID := range input.Roster {
		playerID = strings.TrimSpace(playerID)
		if playerID == "" {
			return CreateSessionInput{}, ErrEmptyRoster
		}
		if _, dup := seen[playerID]; dup {
			return CreateSessionInput{}, ErrDuplicatePlayer
		}
		seen[playerID] = struct{}{}
		roster = append(roster, playerID)
	}
	input.Roster = roster
	return input, nil
}

// InRoster reports whether the player is part of the session.
func (s *Session) InRoster(playerID string) bool {
	for _, current := range s.Roster {
		if current == playerID {
			return true
		}
	}
	return false
}

// AddEmptyRound appends a blank round record to the history.
func (s *Session) AddEmptyRound() {
	s.History = append(s.History, RoundRecord{})
}

// SetScore records a player's score for a round.
func (s *Session) SetScore(roundIndex int, playerID string, value int) error {
	if roundIndex < 0 || roundIndex >= len(s.History) {
		return ErrRoundOutOfRange
	}
	if !s.InRoster(playerID) {
		return ErrPlayerNotInRoster
	}
	s.History[roundIndex][playerID] = value
	return nil
}

// ClearScore returns a round cell to its blank state.
func (s *Session) ClearScore(roundIndex int, playerID string) error {
	if roundIndex < 0 || roundIndex >= len(s.History) {
		return ErrRoundOutOfRange
	}
	if !s.InRoster(playerID) {
		return ErrPlayerNotInRoster
	}
	delete(s.History[roundIndex], playerID)
	return nil
}

// AddPlayer appends a player to the roster. Earlier rounds stay untouched;
// the player's missing cells count as zero.
func (s *Session) AddPlayer(playerID string) error {
	if s.InRoster(playerID) {
		return ErrDuplicatePlayer
	}
	s.Roster = append(s.Roster, playerID)
	return nil
}

// RemovePlayer removes a player from the roster and strips their scores
// from every round record.
func (s *Session) RemovePlayer(playerID string) error {
	if !s.InRoster(playerID) {
		return ErrPlayerNotInRoster
	}
	if len(s.Roster) == 1 {
		return ErrLastPlayer
	}
	roster := make([]string, 0, len(s.Roster)-1)
	for _, current := range s.Roster {
		if current != playerID {
			roster = append(roster, current)
		}
	}
	s.Roster = roster
	for _, round := range s.History {
		delete(round, playerID)
	}
	return nil
}

// Reorder replaces the roster order. The new order must contain exactly the
// current roster members.
func (s *Session) Reorder(newOrder []string) error {
	if len(newOrder) != len(s.Roster) {
		return ErrRosterMismatch
	}
	seen := make(map[string]struct{}, len(newOrder))
	for _, playerID := range newOrder {
		if !s.InRoster(playerID) {
			return ErrRosterMismatch
		}
		if _, dup := seen[playerID]; dup {
			return ErrRosterMismatch
		}
		seen[playerID] = struct{}{}
	}
	s.Roster = append([]string(nil), newOrder...)
	return nil
}

// AggregateScore sums a player's recorded scores across all rounds, with
// blank cells counting as zero.
func (s *Session) AggregateScore(playerID string) int {
	total := 0
	for _, round := range s.History {
		if value, ok := round[playerID]; ok {
			total += value
		}
	}
	return total
}

// AggregateScores returns every roster player's aggregate score.
func (s *Session) AggregateScores() map[string]int {
	scores := make(map[string]int, len(s.Roster))
	for _, playerID := range s.Roster {
		scores[playerID] = s.AggregateScore(playerID)
	}
	return scores
}

// RoundComplete reports whether every roster player has a recorded score in
// the round.
func (s *Session) RoundComplete(roundIndex int) bool {
	if roundIndex < 0 || roundIndex >= len(s.History) {
		return false
	}
	round := s.History[roundIndex]
	for _, playerID := range s.Roster {
		if _, ok := round[playerID]; !ok {
			return false
		}
	}
	return true
}
