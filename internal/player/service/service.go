// Package service exposes the player registry: create, edit and list over
// the player store with coded errors for transport layers.
package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	apperrors "github.com/louisbranch/scorekeep/internal/platform/errors"
	"github.com/louisbranch/scorekeep/internal/platform/id"
	"github.com/louisbranch/scorekeep/internal/player/domain"
	"github.com/louisbranch/scorekeep/internal/storage"
)

// Service manages player identities.
type Service struct {
	store       storage.PlayerStore
	clock       func() time.Time
	idGenerator func() (string, error)
}

// New creates a player Service with default dependencies.
func New(store storage.PlayerStore) *Service {
	return &Service{store: store, clock: time.Now, idGenerator: id.NewID}
}

// Create registers a new player.
func (s *Service) Create(ctx context.Context, input domain.CreatePlayerInput) (domain.Player, error) {
	player, err := domain.CreatePlayer(input, s.clock, s.idGenerator)
	if err != nil {
		return domain.Player{}, codedPlayerError(err)
	}
	if err := s.store.PutPlayer(ctx, player); err != nil {
		return domain.Player{}, err
	}
	return player, nil
}

// Update edits an existing player's metadata.
func (s *Service) Update(ctx context.Context, playerID string, input domain.CreatePlayerInput) (domain.Player, error) {
	player, err := s.Get(ctx, playerID)
	if err != nil {
		return domain.Player{}, err
	}
	updated, err := domain.UpdatePlayer(player, input, s.clock)
	if err != nil {
		return domain.Player{}, codedPlayerError(err)
	}
	if err := s.store.PutPlayer(ctx, updated); err != nil {
		return domain.Player{}, err
	}
	return updated, nil
}

// Get returns a player by ID.
func (s *Service) Get(ctx context.Context, playerID string) (domain.Player, error) {
	player, err := s.store.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Player{}, apperrors.WithMetadata(apperrors.CodeNotFound, "player not found", map[string]string{"PlayerID": playerID})
		}
		return domain.Player{}, err
	}
	return player, nil
}

// List returns every registered player, sorted by name.
func (s *Service) List(ctx context.Context) ([]domain.Player, error) {
	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(players, func(i, j int) bool {
		return strings.ToLower(players[i].Name) < strings.ToLower(players[j].Name)
	})
	return players, nil
}

func codedPlayerError(err error) error {
	if errors.Is(err, domain.ErrEmptyName) {
		return apperrors.New(apperrors.CodePlayerNameEmpty, err.Error())
	}
	return err
}
