// Package service exposes the game template registry: CRUD over the game
// store with coded errors for transport layers.
package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/louisbranch/scorekeep/internal/game/domain"
	apperrors "github.com/louisbranch/scorekeep/internal/platform/errors"
	"github.com/louisbranch/scorekeep/internal/platform/id"
	"github.com/louisbranch/scorekeep/internal/storage"
)

// Service manages game templates.
type Service struct {
	store       storage.GameStore
	clock       func() time.Time
	idGenerator func() (string, error)
}

// New creates a game Service with default dependencies.
func New(store storage.GameStore) *Service {
	return &Service{store: store, clock: time.Now, idGenerator: id.NewID}
}

// Create registers a new game template.
func (s *Service) Create(ctx context.Context, input domain.CreateGameInput) (domain.Game, error) {
	game, err := domain.CreateGame(input, s.clock, s.idGenerator)
	if err != nil {
		return domain.Game{}, codedGameError(err)
	}
	if err := s.store.PutGame(ctx, game); err != nil {
		return domain.Game{}, err
	}
	return game, nil
}

// Update edits an existing game template's metadata.
func (s *Service) Update(ctx context.Context, gameID string, input domain.CreateGameInput) (domain.Game, error) {
	game, err := s.Get(ctx, gameID)
	if err != nil {
		return domain.Game{}, err
	}
	updated, err := domain.UpdateGame(game, input, s.clock)
	if err != nil {
		return domain.Game{}, codedGameError(err)
	}
	if err := s.store.PutGame(ctx, updated); err != nil {
		return domain.Game{}, err
	}
	return updated, nil
}

// Get returns a game template by ID.
func (s *Service) Get(ctx context.Context, gameID string) (domain.Game, error) {
	game, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Game{}, apperrors.WithMetadata(apperrors.CodeNotFound, "game not found", map[string]string{"GameID": gameID})
		}
		return domain.Game{}, err
	}
	return game, nil
}

// List returns every game template, sorted by name. Sessions referencing a
// later-deleted game keep working; the registry makes no liveness claims.
func (s *Service) List(ctx context.Context) ([]domain.Game, error) {
	games, err := s.store.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(games, func(i, j int) bool {
		return strings.ToLower(games[i].Name) < strings.ToLower(games[j].Name)
	})
	return games, nil
}

// Delete removes a game template. Archive entries and any active session
// referencing it are left untouched.
func (s *Service) Delete(ctx context.Context, gameID string) error {
	if err := s.store.DeleteGame(ctx, gameID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.WithMetadata(apperrors.CodeNotFound, "game not found", map[string]string{"GameID": gameID})
		}
		return err
	}
	return nil
}

func codedGameError(err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyName):
		return apperrors.New(apperrors.CodeGameNameEmpty, err.Error())
	case errors.Is(err, domain.ErrInvalidWinCondition):
		return apperrors.New(apperrors.CodeGameInvalidWinCondition, err.Error())
	case errors.Is(err, domain.ErrNegativeLimit):
		return apperrors.New(apperrors.CodeGameInvalidLimit, err.Error())
	default:
		return err
	}
}
