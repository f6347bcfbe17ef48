package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/scorekeep/internal/platform/id"
)

// DefaultAvatar is assigned when a player is created without one.
const DefaultAvatar = "👤"

// ErrEmptyName indicates a missing player name.
var ErrEmptyName = errors.New("player name is required")

// Player represents a player identity shared across sessions. Photo takes
// display priority over Avatar when present.
type Player struct {
	ID        string
	Name      string
	Avatar    string
	Photo     []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPhoto reports whether the player has an uploaded photo.
func (p Player) HasPhoto() bool {
	return len(p.Photo) > 0
}

// CreatePlayerInput describes the metadata needed to create a player.
type CreatePlayerInput struct {
	Name   string
	Avatar string
	Photo  []byte
}

// CreatePlayer creates a new player with a generated ID and timestamps.
func CreatePlayer(input CreatePlayerInput, now func() time.Time, idGenerator func() (string, error)) (Player, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreatePlayerInput(input)
	if err != nil {
		return Player{}, err
	}

	playerID, err := idGenerator()
	if err != nil {
		return Player{}, fmt.Errorf("generate player id: %w", err)
	}

	createdAt := now().UTC()
	return Player{
		ID:        playerID,
		Name:      normalized.Name,
		Avatar:    normalized.Avatar,
		Photo:     normalized.Photo,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// UpdatePlayer applies edited metadata to an existing player, preserving its
// identity and creation time.
func UpdatePlayer(player Player, input CreatePlayerInput, now func() time.Time) (Player, error) {
	if now == nil {
		now = time.Now
	}

	normalized, err := NormalizeCreatePlayerInput(input)
	if err != nil {
		return Player{}, err
	}

	player.Name = normalized.Name
	player.Avatar = normalized.Avatar
	player.Photo = normalized.Photo
	player.UpdatedAt = now().UTC()
	return player, nil
}

// NormalizeCreatePlayerInput trims and validates player input metadata.
func NormalizeCreatePlayerInput(input CreatePlayerInput) (CreatePlayerInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return CreatePlayerInput{}, ErrEmptyName
	}
	input.Avatar = strings.TrimSpace(input.Avatar)
	if input.Avatar == "" {
		input.Avatar = DefaultAvatar
	}
	return input, nil
}
