package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/scorekeep/internal/player/domain"
	"github.com/louisbranch/scorekeep/internal/storage"
)

// PutPlayer inserts or replaces one player record.
func (s *Store) PutPlayer(ctx context.Context, player domain.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(player.ID) == "" {
		return fmt.Errorf("player id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO players (id, name, avatar, photo, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   avatar = excluded.avatar,
		   photo = excluded.photo,
		   updated_at = excluded.updated_at`,
		player.ID,
		player.Name,
		player.Avatar,
		player.Photo,
		toMillis(player.CreatedAt),
		toMillis(player.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put player: %w", err)
	}
	return nil
}

// GetPlayer fetches one player by ID.
func (s *Store) GetPlayer(ctx context.Context, id string) (domain.Player, error) {
	if err := ctx.Err(); err != nil {
		return domain.Player{}, err
	}
	if err := s.ready(); err != nil {
		return domain.Player{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, avatar, photo, created_at, updated_at
		   FROM players WHERE id = ?`,
		id,
	)
	player, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Player{}, storage.ErrNotFound
		}
		return domain.Player{}, fmt.Errorf("get player: %w", err)
	}
	return player, nil
}

// ListPlayers returns every registered player.
func (s *Store) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, avatar, photo, created_at, updated_at
		   FROM players ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func scanPlayer(row rowScanner) (domain.Player, error) {
	var (
		player    domain.Player
		photo     []byte
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(
		&player.ID,
		&player.Name,
		&player.Avatar,
		&photo,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Player{}, err
	}
	player.Photo = photo
	player.CreatedAt = fromMillis(createdAt)
	player.UpdatedAt = fromMillis(updatedAt)
	return player, nil
}
