package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/scorekeep/internal/platform/id"
)

// WinCondition describes how a game decides its winner.
type WinCondition int

const (
	// WinConditionUnspecified represents an invalid win condition value.
	WinConditionUnspecified WinCondition = iota
	// WinConditionHighest indicates the highest aggregate score wins.
	WinConditionHighest
	// WinConditionLowest indicates the lowest aggregate score wins.
	WinConditionLowest
)

// String returns the wire representation of the win condition.
func (w WinCondition) String() string {
	switch w {
	case WinConditionHighest:
		return "highest"
	case WinConditionLowest:
		return "lowest"
	default:
		return "unspecified"
	}
}

// ParseWinCondition converts a wire string into a WinCondition.
func ParseWinCondition(value string) (WinCondition, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "highest":
		return WinConditionHighest, nil
	case "lowest":
		return WinConditionLowest, nil
	default:
		return WinConditionUnspecified, ErrInvalidWinCondition
	}
}

var (
	// ErrEmptyName indicates a missing game name.
	ErrEmptyName = errors.New("game name is required")
	// ErrInvalidWinCondition indicates a missing or invalid win condition.
	ErrInvalidWinCondition = errors.New("win condition must be highest or lowest")
	// ErrNegativeLimit indicates a negative default target or round limit.
	ErrNegativeLimit = errors.New("limits must be zero or positive")
)

// Game represents a reusable game template. Target and Rounds are the
// default session limits; zero means unlimited. FixedRoundScore of zero
// disables the per-round sum check.
type Game struct {
	ID              string
	Name            string
	WinCondition    WinCondition
	Target          int
	Rounds          int
	FixedRoundScore int
	Icon            string
	Color           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateGameInput describes the metadata needed to create a game.
type CreateGameInput struct {
	Name            string
	WinCondition    WinCondition
	Target          int
	Rounds          int
	FixedRoundScore int
	Icon            string
	Color           string
}

// CreateGame creates a new game with a generated ID and timestamps.
func CreateGame(input CreateGameInput, now func() time.Time, idGenerator func() (string, error)) (Game, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateGameInput(input)
	if err != nil {
		return Game{}, err
	}

	gameID, err := idGenerator()
	if err != nil {
		return Game{}, fmt.Errorf("generate game id: %w", err)
	}

	createdAt := now().UTC()
	return Game{
		ID:              gameID,
		Name:            normalized.Name,
		WinCondition:    normalized.WinCondition,
		Target:          normalized.Target,
		Rounds:          normalized.Rounds,
		FixedRoundScore: normalized.FixedRoundScore,
		Icon:            normalized.Icon,
		Color:           normalized.Color,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}, nil
}

// UpdateGame applies edited metadata to an existing game, preserving its
// identity and creation time.
func UpdateGame(game Game, input CreateGameInput, now func() time.Time) (Game, error) {
	if now == nil {
		now = time.Now
	}

	normalized, err := NormalizeCreateGameInput(input)
	if err != nil {
		return Game{}, err
	}

	game.Name = normalized.Name
	game.WinCondition = normalized.WinCondition
	game.Target = normalized.Target
	game.Rounds = normalized.Rounds
	game.FixedRoundScore = normalized.FixedRoundScore
	game.Icon = normalized.Icon
	game.Color = normalized.Color
	game.UpdatedAt = now().UTC()
	return game, nil
}

// NormalizeCreateGameInput trims and validates game input metadata.
func NormalizeCreateGameInput(input CreateGameInput) (CreateGameInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return CreateGameInput{}, ErrEmptyName
	}
	if input.WinCondition != WinConditionHighest && input.WinCondition != WinConditionLowest {
		return CreateGameInput{}, ErrInvalidWinCondition
	}
	if input.Target < 0 || input.Rounds < 0 {
		return CreateGameInput{}, ErrNegativeLimit
	}
	input.Icon = strings.TrimSpace(input.Icon)
	input.Color = strings.TrimSpace(input.Color)
	return input, nil
}
