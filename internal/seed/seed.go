// Package seed loads YAML fixtures of games and players into storage for
// local development.
package seed

import (
	"context"
	"fmt"
	"os"

	gamedomain "github.com/louisbranch/scorekeep/internal/game/domain"
	gamesvc "github.com/louisbranch/scorekeep/internal/game/service"
	playerdomain "github.com/louisbranch/scorekeep/internal/player/domain"
	playersvc "github.com/louisbranch/scorekeep/internal/player/service"
	"github.com/louisbranch/scorekeep/internal/storage"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML shape of a seed file.
type Fixture struct {
	Games   []GameFixture   `yaml:"games"`
	Players []PlayerFixture `yaml:"players"`
}

// GameFixture describes one game template to create.
type GameFixture struct {
	Name            string `yaml:"name"`
	WinCondition    string `yaml:"win_condition"`
	Target          int    `yaml:"target"`
	Rounds          int    `yaml:"rounds"`
	FixedRoundScore int    `yaml:"fixed_round_score"`
	Icon            string `yaml:"icon"`
	Color           string `yaml:"color"`
}

// PlayerFixture describes one player to create.
type PlayerFixture struct {
	Name   string `yaml:"name"`
	Avatar string `yaml:"avatar"`
}

// Load parses a fixture file.
func Load(path string) (Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var fixture Fixture
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	return fixture, nil
}

// Result reports what a seed run created.
type Result struct {
	Games   int
	Players int
}

// Apply creates every fixture entity through the registries, so fixture
// data goes through the same validation as API input.
func Apply(ctx context.Context, fixture Fixture, games storage.GameStore, players storage.PlayerStore) (Result, error) {
	gameRegistry := gamesvc.New(games)
	playerRegistry := playersvc.New(players)

	var result Result
	for _, game := range fixture.Games {
		winCondition, err := gamedomain.ParseWinCondition(game.WinCondition)
		if err != nil {
			return result, fmt.Errorf("game %q: %w", game.Name, err)
		}
		_, err = gameRegistry.Create(ctx, gamedomain.CreateGameInput{
			Name:            game.Name,
			WinCondition:    winCondition,
			Target:          game.Target,
			Rounds:          game.Rounds,
			FixedRoundScore: game.FixedRoundScore,
			Icon:            game.Icon,
			Color:           game.Color,
		})
		if err != nil {
			return result, fmt.Errorf("game %q: %w", game.Name, err)
		}
		result.Games++
	}

	for _, player := range fixture.Players {
		_, err := playerRegistry.Create(ctx, playerdomain.CreatePlayerInput{
			Name:   player.Name,
			Avatar: player.Avatar,
		})
		if err != nil {
			return result, fmt.Errorf("player %q: %w", player.Name, err)
		}
		result.Players++
	}
	return result, nil
}
