package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/louisbranch/scorekeep/internal/session/domain"
	"github.com/louisbranch/scorekeep/internal/storage"
)

// limitRecord is the persisted shape of a session limit override. The state
// string keeps unset, unlimited and bounded overrides distinguishable
// across restarts.
type limitRecord struct {
	State string `json:"state"`
	Value int    `json:"value,omitempty"`
}

type configRecord struct {
	Target limitRecord `json:"target"`
	Rounds limitRecord `json:"rounds"`
}

func encodeLimit(limit domain.Limit) limitRecord {
	return limitRecord{State: limit.State.String(), Value: limit.Value}
}

func decodeLimit(record limitRecord) domain.Limit {
	switch record.State {
	case "unlimited":
		return domain.Unlimited()
	case "bounded":
		return domain.Bounded(record.Value)
	default:
		return domain.Limit{}
	}
}

// SaveActiveSession writes the single active session row.
func (s *Store) SaveActiveSession(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}

	roster, err := json.Marshal(session.Roster)
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	history, err := json.Marshal(session.History)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	config, err := json.Marshal(configRecord{
		Target: encodeLimit(session.Config.Target),
		Rounds: encodeLimit(session.Config.Rounds),
	})
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO active_session (
		   id, session_id, game_id, title, roster, history, config,
		   started_at, updated_at
		 ) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   session_id = excluded.session_id,
		   game_id = excluded.game_id,
		   title = excluded.title,
		   roster = excluded.roster,
		   history = excluded.history,
		   config = excluded.config,
		   started_at = excluded.started_at,
		   updated_at = excluded.updated_at`,
		session.ID,
		session.GameID,
		session.Title,
		string(roster),
		string(history),
		string(config),
		toMillis(session.StartedAt),
		toMillis(session.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("save active session: %w", err)
	}
	return nil
}

// GetActiveSession loads the active session, if one is persisted.
func (s *Store) GetActiveSession(ctx context.Context) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}
	if err := s.ready(); err != nil {
		return domain.Session{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT session_id, game_id, title, roster, history, config,
		        started_at, updated_at
		   FROM active_session WHERE id = 1`,
	)

	var (
		session   domain.Session
		roster    string
		history   string
		config    string
		startedAt int64
		updatedAt int64
	)
	err := row.Scan(
		&session.ID,
		&session.GameID,
		&session.Title,
		&roster,
		&history,
		&config,
		&startedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Session{}, storage.ErrNotFound
		}
		return domain.Session{}, fmt.Errorf("get active session: %w", err)
	}

	if err := json.Unmarshal([]byte(roster), &session.Roster); err != nil {
		return domain.Session{}, fmt.Errorf("decode roster: %w", err)
	}
	if err := json.Unmarshal([]byte(history), &session.History); err != nil {
		return domain.Session{}, fmt.Errorf("decode history: %w", err)
	}
	var record configRecord
	if err := json.Unmarshal([]byte(config), &record); err != nil {
		return domain.Session{}, fmt.Errorf("decode config: %w", err)
	}
	session.Config = domain.Config{
		Target: decodeLimit(record.Target),
		Rounds: decodeLimit(record.Rounds),
	}
	session.StartedAt = fromMillis(startedAt)
	session.UpdatedAt = fromMillis(updatedAt)
	return session, nil
}

// ClearActiveSession removes the active session row, if any.
func (s *Store) ClearActiveSession(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}

	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM active_session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear active session: %w", err)
	}
	return nil
}

// PutLastSelectedPlayers persists the roster preselection for the next
// session start.
func (s *Store) PutLastSelectedPlayers(ctx context.Context, playerIDs []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}

	encoded, err := json.Marshal(playerIDs)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO last_selected_players (id, player_ids, updated_at)
		 VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   player_ids = excluded.player_ids,
		   updated_at = excluded.updated_at`,
		string(encoded),
		toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("put last selected players: %w", err)
	}
	return nil
}

// GetLastSelectedPlayers returns the most recent roster preselection, or an
// empty list if none was ever saved.
func (s *Store) GetLastSelectedPlayers(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	var encoded string
	row := s.sqlDB.QueryRowContext(ctx, `SELECT player_ids FROM last_selected_players WHERE id = 1`)
	if err := row.Scan(&encoded); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get last selected players: %w", err)
	}

	var playerIDs []string
	if err := json.Unmarshal([]byte(encoded), &playerIDs); err != nil {
		return nil, fmt.Errorf("decode selection: %w", err)
	}
	return playerIDs, nil
}
