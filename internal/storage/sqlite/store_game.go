package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/scorekeep/internal/game/domain"
	"github.com/louisbranch/scorekeep/internal/storage"
)

// PutGame inserts or replaces one game template.
func (s *Store) PutGame(ctx context.Context, game domain.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(game.ID) == "" {
		return fmt.Errorf("game id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO games (
		   id, name, win_condition, target, rounds, fixed_round_score,
		   icon, color, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   win_condition = excluded.win_condition,
		   target = excluded.target,
		   rounds = excluded.rounds,
		   fixed_round_score = excluded.fixed_round_score,
		   icon = excluded.icon,
		   color = excluded.color,
		   updated_at = excluded.updated_at`,
		game.ID,
		game.Name,
		game.WinCondition.String(),
		game.Target,
		game.Rounds,
		game.FixedRoundScore,
		game.Icon,
		game.Color,
		toMillis(game.CreatedAt),
		toMillis(game.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put game: %w", err)
	}
	return nil
}

// GetGame fetches one game template by ID.
func (s *Store) GetGame(ctx context.Context, id string) (domain.Game, error) {
	if err := ctx.Err(); err != nil {
		return domain.Game{}, err
	}
	if err := s.ready(); err != nil {
		return domain.Game{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, win_condition, target, rounds, fixed_round_score,
		        icon, color, created_at, updated_at
		   FROM games WHERE id = ?`,
		id,
	)
	game, err := scanGame(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Game{}, storage.ErrNotFound
		}
		return domain.Game{}, fmt.Errorf("get game: %w", err)
	}
	return game, nil
}

// ListGames returns every game template.
func (s *Store) ListGames(ctx context.Context) ([]domain.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, win_condition, target, rounds, fixed_round_score,
		        icon, color, created_at, updated_at
		   FROM games ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []domain.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

// DeleteGame removes one game template. Archive entries referencing it are
// kept; readers degrade via their own fallback.
func (s *Store) DeleteGame(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (domain.Game, error) {
	var (
		game         domain.Game
		winCondition string
		createdAt    int64
		updatedAt    int64
	)
	err := row.Scan(
		&game.ID,
		&game.Name,
		&winCondition,
		&game.Target,
		&game.Rounds,
		&game.FixedRoundScore,
		&game.Icon,
		&game.Color,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Game{}, err
	}
	if parsed, err := domain.ParseWinCondition(winCondition); err == nil {
		game.WinCondition = parsed
	} else {
		game.WinCondition = domain.WinConditionHighest
	}
	game.CreatedAt = fromMillis(createdAt)
	game.UpdatedAt = fromMillis(updatedAt)
	return game, nil
}
