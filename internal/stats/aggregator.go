// Package stats computes cross-session statistics from the archive of
// finished sessions.
package stats

import (
	"context"
	"errors"
	"log"

	gamedomain "github.com/louisbranch/scorekeep/internal/game/domain"
	apperrors "github.com/louisbranch/scorekeep/internal/platform/errors"
	sessiondomain "github.com/louisbranch/scorekeep/internal/session/domain"
	"github.com/louisbranch/scorekeep/internal/storage"
)

// PlayerStats aggregates one player's results over the qualifying archive
// entries. AverageRank is meaningless when Games is zero.
type PlayerStats struct {
	PlayerID    string
	Games       int
	Wins        int
	SumOfRanks  int
	AverageRank float64
	WinRate     float64
}

// CommonGameStats summarizes the archive entries shared by a set of
// players. CommonGames of zero means no qualifying entries exist, which is
// distinct from players having played together and scored zero wins.
type CommonGameStats struct {
	CommonGames int
	Players     []PlayerStats
}

// Aggregator derives statistics from archived sessions. Win conditions are
// resolved through the game store at query time, never stored redundantly.
type Aggregator struct {
	archive storage.ArchiveStore
	games   storage.GameStore
}

// New creates an Aggregator.
func New(archive storage.ArchiveStore, games storage.GameStore) *Aggregator {
	return &Aggregator{archive: archive, games: games}
}

// CommonGameStats ranks the selected players across every archive entry in
// which all of them participated. Rankings consider the full result list of
// each entry, so a selected player beaten only by a non-selected player
// still counts as not winning.
func (a *Aggregator) CommonGameStats(ctx context.Context, selectedPlayerIDs []string) (CommonGameStats, error) {
	if len(selectedPlayerIDs) == 0 {
		return CommonGameStats{}, apperrors.New(apperrors.CodeStatsNoPlayers, "select at least one player")
	}

	entries, err := a.archive.ListArchiveEntries(ctx)
	if err != nil {
		return CommonGameStats{}, err
	}

	totals := make(map[string]*PlayerStats, len(selectedPlayerIDs))
	for _, playerID := range selectedPlayerIDs {
		totals[playerID] = &PlayerStats{PlayerID: playerID}
	}

	commonGames := 0
	for _, entry := range entries {
		if !participatedAll(entry, selectedPlayerIDs) {
			continue
		}
		commonGames++

		order := make([]string, 0, len(entry.Results))
		scores := make(map[string]int, len(entry.Results))
		for _, result := range entry.Results {
			order = append(order, result.PlayerID)
			scores[result.PlayerID] = result.Score
		}

		standings := sessiondomain.Rank(order, scores, a.winCondition(ctx, entry.GameID))
		for _, standing := range standings {
			stats, selected := totals[standing.PlayerID]
			if !selected {
				continue
			}
			stats.Games++
			stats.SumOfRanks += standing.Rank
			if standing.Rank == 1 {
				stats.Wins++
			}
		}
	}

	if commonGames == 0 {
		return CommonGameStats{}, nil
	}

	result := CommonGameStats{CommonGames: commonGames, Players: make([]PlayerStats, 0, len(selectedPlayerIDs))}
	for _, playerID := range selectedPlayerIDs {
		stats := *totals[playerID]
		if stats.Games > 0 {
			stats.AverageRank = float64(stats.SumOfRanks) / float64(stats.Games)
			stats.WinRate = float64(stats.Wins) / float64(stats.Games)
		}
		result.Players = append(result.Players, stats)
	}
	return result, nil
}

// GamePlayCounts returns how many archived sessions each game has.
func (a *Aggregator) GamePlayCounts(ctx context.Context) (map[string]int, error) {
	return a.archive.CountArchiveEntriesByGame(ctx)
}

func participatedAll(entry storage.ArchiveEntry, playerIDs []string) bool {
	for _, playerID := range playerIDs {
		found := false
		for _, result := range entry.Results {
			if result.PlayerID == playerID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// winCondition resolves an archived game's win condition. A deleted game
// falls back to highest-wins, matching the live session behavior.
func (a *Aggregator) winCondition(ctx context.Context, gameID string) gamedomain.WinCondition {
	game, err := a.games.GetGame(ctx, gameID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("stats: lookup game %s: %v", gameID, err)
		}
		return gamedomain.WinConditionHighest
	}
	return game.WinCondition
}
