package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/louisbranch/scorekeep/internal/storage"
)

// AppendArchiveEntry writes one immutable finished-session record.
func (s *Store) AppendArchiveEntry(ctx context.Context, entry storage.ArchiveEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(entry.ID) == "" {
		return fmt.Errorf("archive entry id is required")
	}

	results, err := json.Marshal(entry.Results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO archive_entries (id, game_id, results, finished_at)
		 VALUES (?, ?, ?, ?)`,
		entry.ID,
		entry.GameID,
		string(results),
		toMillis(entry.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("append archive entry: %w", err)
	}
	return nil
}

// ListArchiveEntries returns every archive entry, oldest first.
func (s *Store) ListArchiveEntries(ctx context.Context) ([]storage.ArchiveEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, game_id, results, finished_at
		   FROM archive_entries ORDER BY finished_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list archive entries: %w", err)
	}
	defer rows.Close()

	var entries []storage.ArchiveEntry
	for rows.Next() {
		var (
			entry      storage.ArchiveEntry
			results    string
			finishedAt int64
		)
		if err := rows.Scan(&entry.ID, &entry.GameID, &results, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan archive entry: %w", err)
		}
		if err := json.Unmarshal([]byte(results), &entry.Results); err != nil {
			return nil, fmt.Errorf("decode results: %w", err)
		}
		entry.FinishedAt = fromMillis(finishedAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list archive entries: %w", err)
	}
	return entries, nil
}

// CountArchiveEntriesByGame returns per-game archive entry counts.
func (s *Store) CountArchiveEntriesByGame(ctx context.Context) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT game_id, COUNT(*) FROM archive_entries GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("count archive entries: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			gameID string
			count  int
		)
		if err := rows.Scan(&gameID, &count); err != nil {
			return nil, fmt.Errorf("scan archive count: %w", err)
		}
		counts[gameID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count archive entries: %w", err)
	}
	return counts, nil
}
