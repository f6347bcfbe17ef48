package engine

import (
	"context"
	"sync"

	gamedomain "github.com/louisbranch/scorekeep/internal/game/domain"
	playerdomain "github.com/louisbranch/scorekeep/internal/player/domain"
	"github.com/louisbranch/scorekeep/internal/session/domain"
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
	s.mu.Lock()
	defer s.mu.Unlock()
	games := make([]gamedomain.Game, 0, len(s.games))
	for _, game := range s.games {
		games = append(games, game)
	}
	return games, nil
}

func (s *fakeGameStore) DeleteGame(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.games, id)
	return nil
}

type fakePlayerStore struct {
	mu      sync.Mutex
	players map[string]playerdomain.Player
}

func newFakePlayerStore() *fakePlayerStore {
	return &fakePlayerStore{players: make(map[string]playerdomain.Player)}
}

func (s *fakePlayerStore) PutPlayer(_ context.Context, player playerdomain.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *fakePlayerStore) GetPlayer(_ context.Context, id string) (playerdomain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[id]
	if !ok {
		return playerdomain.Player{}, storage.ErrNotFound
	}
	return player, nil
}

func (s *fakePlayerStore) ListPlayers(_ context.Context) ([]playerdomain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	players := make([]playerdomain.Player, 0, len(s.players))
	for _, player := range s.players {
		players = append(players, player)
	}
	return players, nil
}

type fakeSessionStore struct {
	mu             sync.Mutex
	active         *domain.Session
	lastSelected   []string
	saveCount      int
	saveErr        error
	putSelectedErr error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{}
}

func (s *fakeSessionStore) SaveActiveSession(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.active = &session
	s.saveCount++
	return nil
}

func (s *fakeSessionStore) GetActiveSession(_ context.Context) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return domain.Session{}, storage.ErrNotFound
	}
	return *s.active, nil
}

func (s *fakeSessionStore) ClearActiveSession(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
	return nil
}

func (s *fakeSessionStore) PutLastSelectedPlayers(_ context.Context, playerIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putSelectedErr != nil {
		return s.putSelectedErr
	}
	s.lastSelected = append([]string(nil), playerIDs...)
	return nil
}

func (s *fakeSessionStore) GetLastSelectedPlayers(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lastSelected...), nil
}

type fakeArchiveStore struct {
	mu        sync.Mutex
	entries   []storage.ArchiveEntry
	appendErr error
}

func newFakeArchiveStore() *fakeArchiveStore {
	return &fakeArchiveStore{}
}

func (s *fakeArchiveStore) AppendArchiveEntry(_ context.Context, entry storage.ArchiveEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *fakeArchiveStore) ListArchiveEntries(_ context.Context) ([]storage.ArchiveEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]storage.ArchiveEntry(nil), s.entries...), nil
}

func (s *fakeArchiveStore) CountArchiveEntriesByGame(_ context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[string]int)
	for _, entry := range s.entries {
		counts[entry.GameID]++
	}
	return counts, nil
}

type fakeTelemetryStore struct {
	mu     sync.Mutex
	events []storage.TelemetryEvent
}

func (s *fakeTelemetryStore) AppendTelemetryEvent(_ context.Context, event storage.TelemetryEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *fakeTelemetryStore) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.events))
	for _, event := range s.events {
		names = append(names, event.Name)
	}
	return names
}
