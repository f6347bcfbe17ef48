package seed

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	gamedomain "github.com/louisbranch/scorekeep/internal/game/domain"
	playerdomain "github.com/louisbranch/scorekeep/internal/player/domain"
	"github.com/louisbranch/scorekeep/internal/storage"
)

type fakeStore struct {
	mu      sync.Mutex
	games   map[string]gamedomain.Game
	players map[string]playerdomain.Player
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		games:   make(map[string]gamedomain.Game),
		players: make(map[string]playerdomain.Player),
	}
}

func (s *fakeStore) PutGame(_ context.Context, game gamedomain.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
	return nil
}

func (s *fakeStore) GetGame(_ context.Context, id string) (gamedomain.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[id]
	if !ok {
		return gamedomain.Game{}, storage.ErrNotFound
	}
	return game, nil
}

func (s *fakeStore) ListGames(_ context.Context) ([]gamedomain.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	games := make([]gamedomain.Game, 0, len(s.games))
	for _, game := range s.games {
		games = append(games, game)
	}
	return games, nil
}

func (s *fakeStore) DeleteGame(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *fakeStore) PutPlayer(_ context.Context, player playerdomain.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *fakeStore) GetPlayer(_ context.Context, id string) (playerdomain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[id]
	if !ok {
		return playerdomain.Player{}, storage.ErrNotFound
	}
	return player, nil
}

func (s *fakeStore) ListPlayers(_ context.Context) ([]playerdomain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	players := make([]playerdomain.Player, 0, len(s.players))
	for _, player := range s.players {
		players = append(players, player)
	}
	return players, nil
}

func TestLoadAndApplyFixtures(t *testing.T) {
	fixture, err := Load(filepath.Join("testdata", "fixtures.yaml"))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	if len(fixture.Games) != 3 || len(fixture.Players) != 3 {
		t.Fatalf("fixture = %+v", fixture)
	}

	store := newFakeStore()
	result, err := Apply(context.Background(), fixture, store, store)
	if err != nil {
		t.Fatalf("apply fixture: %v", err)
	}
	if result.Games != 3 || result.Players != 3 {
		t.Fatalf("result = %+v", result)
	}

	games, _ := store.ListGames(context.Background())
	foundLowest := false
	for _, game := range games {
		if game.Name == "Golf" && game.WinCondition == gamedomain.WinConditionLowest && game.Rounds == 9 {
			foundLowest = true
		}
	}
	if !foundLowest {
		t.Fatal("golf fixture not applied")
	}

	players, _ := store.ListPlayers(context.Background())
	for _, player := range players {
		if player.Name == "Bob" && player.Avatar != playerdomain.DefaultAvatar {
			t.Fatalf("bob avatar = %q, want default", player.Avatar)
		}
	}
}

func TestApplyRejectsInvalidWinCondition(t *testing.T) {
	store := newFakeStore()
	fixture := Fixture{Games: []GameFixture{{Name: "Broken", WinCondition: "sideways"}}}

	if _, err := Apply(context.Background(), fixture, store, store); err == nil {
		t.Fatal("expected invalid win condition error")
	}
}
