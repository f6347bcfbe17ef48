package stats

import (
	"context"
	"sync"
	"testing"
	"time"

	gamedomain "github.com/louisbranch/scorekeep/internal/game/domain"
	apperrors "github.com/louisbranch/scorekeep/internal/platform/errors"
	"github.com/louisbranch/scorekeep/internal/storage"
)

type fakeGameStore struct {
	mu    sync.Mutex
	games map[string]gamedomain.Game
}

func newFakeGameStore() *fakeGameStore {
	return &fakeGameStore{games: make(map[string]gamedomain.Game)}
}

func (s *fakeGameStore) PutGame(_ context.Context, game gamedomain.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
	return nil
}

func (s *fakeGameStore) GetGame(_ context.Context, id string) (gamedomain.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[id]
	if !ok {
		return gamedomain.Game{}, storage.ErrNotFound
	}
	return game, nil
}

func (s *fakeGameStore) ListGames(_ context.Context) ([]gamedomain.Game, error) {
	return nil, nil
}

func (s *fakeGameStore) DeleteGame(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

type fakeArchiveStore struct {
	entries []storage.ArchiveEntry
}

func (s *fakeArchiveStore) AppendArchiveEntry(_ context.Context, entry storage.ArchiveEntry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *fakeArchiveStore) ListArchiveEntries(_ context.Context) ([]storage.ArchiveEntry, error) {
	return append([]storage.ArchiveEntry(nil), s.entries...), nil
}

func (s *fakeArchiveStore) CountArchiveEntriesByGame(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, entry := range s.entries {
		counts[entry.GameID]++
	}
	return counts, nil
}

func entry(id, gameID string, results ...storage.PlayerResult) storage.ArchiveEntry {
	return storage.ArchiveEntry{
		ID:         id,
		GameID:     gameID,
		Results:    results,
		FinishedAt: time.Date(2026, time.February, 1, 18, 0, 0, 0, time.UTC),
	}
}

func result(playerID string, score int) storage.PlayerResult {
	return storage.PlayerResult{PlayerID: playerID, Score: score}
}

func TestCommonGameStatsRequiresPlayers(t *testing.T) {
	aggregator := New(&fakeArchiveStore{}, newFakeGameStore())

	_, err := aggregator.CommonGameStats(context.Background(), nil)
	if !apperrors.IsCode(err, apperrors.CodeStatsNoPlayers) {
		t.Fatalf("error = %v, want no-players code", err)
	}
}

func TestCommonGameStatsEmptyStateIsDistinct(t *testing.T) {
	archive := &fakeArchiveStore{entries: []storage.ArchiveEntry{
		entry("e1", "belote", result("alice", 10), result("bob", 20)),
	}}
	aggregator := New(archive, newFakeGameStore())

	// Carol never played with alice, so no entry qualifies.
	stats, err := aggregator.CommonGameStats(context.Background(), []string{"alice", "carol"})
	if err != nil {
		t.Fatalf("CommonGameStats: %v", err)
	}
	if stats.CommonGames != 0 {
		t.Fatalf("common games = %d, want 0", stats.CommonGames)
	}
	if len(stats.Players) != 0 {
		t.Fatalf("players = %+v, want none in the empty state", stats.Players)
	}
}

func TestCommonGameStatsAggregates(t *testing.T) {
	games := newFakeGameStore()
	ctx := context.Background()
	if err := games.PutGame(ctx, gamedomain.Game{ID: "belote", WinCondition: gamedomain.WinConditionHighest}); err != nil {
		t.Fatalf("seed game: %v", err)
	}

	archive := &fakeArchiveStore{entries: []storage.ArchiveEntry{
		entry("e1", "belote", result("alice", 120), result("bob", 80)),
		entry("e2", "belote", result("bob", 150), result("alice", 90)),
		entry("e3", "belote", result("alice", 50), result("carol", 70)),
	}}
	aggregator := New(archive, games)

	stats, err := aggregator.CommonGameStats(ctx, []string{"alice", "bob"})
	if err != nil {
		t.Fatalf("CommonGameStats: %v", err)
	}
	if stats.CommonGames != 2 {
		t.Fatalf("common games = %d, want 2", stats.CommonGames)
	}
	if len(stats.Players) != 2 {
		t.Fatalf("players = %d rows, want 2", len(stats.Players))
	}

	alice := stats.Players[0]
	if alice.PlayerID != "alice" || alice.Games != 2 || alice.Wins != 1 {
		t.Fatalf("alice = %+v", alice)
	}
	if alice.AverageRank != 1.5 || alice.WinRate != 0.5 {
		t.Fatalf("alice average rank %.2f win rate %.2f", alice.AverageRank, alice.WinRate)
	}

	bob := stats.Players[1]
	if bob.PlayerID != "bob" || bob.Games != 2 || bob.Wins != 1 {
		t.Fatalf("bob = %+v", bob)
	}
}

func TestCommonGameStatsRanksAgainstFullResultList(t *testing.T) {
	games := newFakeGameStore()
	archive := &fakeArchiveStore{entries: []storage.ArchiveEntry{
		// Carol beat both selected players; neither should count a win.
		entry("e1", "belote", result("carol", 200), result("alice", 120), result("bob", 80)),
	}}
	aggregator := New(archive, games)

	stats, err := aggregator.CommonGameStats(context.Background(), []string{"alice", "bob"})
	if err != nil {
		t.Fatalf("CommonGameStats: %v", err)
	}
	if stats.CommonGames != 1 {
		t.Fatalf("common games = %d, want 1", stats.CommonGames)
	}
	for _, player := range stats.Players {
		if player.Wins != 0 {
			t.Fatalf("%s wins = %d, want 0", player.PlayerID, player.Wins)
		}
	}
	if stats.Players[0].SumOfRanks != 2 || stats.Players[1].SumOfRanks != 3 {
		t.Fatalf("ranks = %+v", stats.Players)
	}
}

func TestCommonGameStatsLowestWins(t *testing.T) {
	games := newFakeGameStore()
	ctx := context.Background()
	if err := games.PutGame(ctx, gamedomain.Game{ID: "golf", WinCondition: gamedomain.WinConditionLowest}); err != nil {
		t.Fatalf("seed game: %v", err)
	}
	archive := &fakeArchiveStore{entries: []storage.ArchiveEntry{
		entry("e1", "golf", result("alice", 40), result("bob", 12)),
	}}
	aggregator := New(archive, games)

	stats, err := aggregator.CommonGameStats(ctx, []string{"alice", "bob"})
	if err != nil {
		t.Fatalf("CommonGameStats: %v", err)
	}
	if stats.Players[1].Wins != 1 || stats.Players[0].Wins != 0 {
		t.Fatalf("stats = %+v, want bob winning the lowest-score game", stats.Players)
	}
}

func TestCommonGameStatsDeletedGameFallsBackToHighest(t *testing.T) {
	// No game record exists for the entry; highest score must win.
	archive := &fakeArchiveStore{entries: []storage.ArchiveEntry{
		entry("e1", "gone", result("alice", 40), result("bob", 12)),
	}}
	aggregator := New(archive, newFakeGameStore())

	stats, err := aggregator.CommonGameStats(context.Background(), []string{"alice", "bob"})
	if err != nil {
		t.Fatalf("CommonGameStats: %v", err)
	}
	if stats.Players[0].Wins != 1 {
		t.Fatalf("stats = %+v, want alice winning via the highest fallback", stats.Players)
	}
}

func TestGamePlayCounts(t *testing.T) {
	archive := &fakeArchiveStore{entries: []storage.ArchiveEntry{
		entry("e1", "belote", result("alice", 1)),
		entry("e2", "belote", result("alice", 2)),
		entry("e3", "tarot", result("alice", 3)),
	}}
	aggregator := New(archive, newFakeGameStore())

	counts, err := aggregator.GamePlayCounts(context.Background())
	if err != nil {
		t.Fatalf("GamePlayCounts: %v", err)
	}
	if counts["belote"] != 2 || counts["tarot"] != 1 {
		t.Fatalf("counts = %v", counts)
	}
}
