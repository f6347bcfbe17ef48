package rest

import (
	"encoding/json"
	"time"

	gamedomain "github.com/louisbranch/scorekeep/internal/game/domain"
	playerdomain "github.com/louisbranch/scorekeep/internal/player/domain"
	sessiondomain "github.com/louisbranch/scorekeep/internal/session/domain"
	"github.com/louisbranch/scorekeep/internal/session/engine"
)

type gameJSON struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	WinCondition    string `json:"win_condition"`
	Target          int    `json:"target"`
	Rounds          int    `json:"rounds"`
	FixedRoundScore int    `json:"fixed_round_score"`
	Icon            string `json:"icon,omitempty"`
	Color           string `json:"color,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

func toGameJSON(game gamedomain.Game) gameJSON {
	return gameJSON{
		ID:              game.ID,
		Name:            game.Name,
		WinCondition:    game.WinCondition.String(),
		Target:          game.Target,
		Rounds:          game.Rounds,
		FixedRoundScore: game.FixedRoundScore,
		Icon:            game.Icon,
		Color:           game.Color,
		CreatedAt:       game.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       game.UpdatedAt.Format(time.RFC3339),
	}
}

type playerJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	Photo     []byte `json:"photo,omitempty"`
	HasPhoto  bool   `json:"has_photo"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toPlayerJSON(player playerdomain.Player) playerJSON {
	return playerJSON{
		ID:        player.ID,
		Name:      player.Name,
		Avatar:    player.Avatar,
		Photo:     player.Photo,
		HasPhoto:  player.HasPhoto(),
		CreatedAt: player.CreatedAt.Format(time.RFC3339),
		UpdatedAt: player.UpdatedAt.Format(time.RFC3339),
	}
}

type limitJSON struct {
	Enforced bool `json:"enforced"`
	Value    int  `json:"value,omitempty"`
}

type standingJSON struct {
	PlayerID string `json:"player_id"`
	Score    int    `json:"score"`
	Rank     int    `json:"rank"`
}

type roundCheckJSON struct {
	Round    int  `json:"round"`
	Diff     int  `json:"diff"`
	Balanced bool `json:"balanced"`
}

type viewJSON struct {
	SessionID         string           `json:"session_id"`
	GameID            string           `json:"game_id"`
	GameName          string           `json:"game_name"`
	WinCondition      string           `json:"win_condition"`
	Title             string           `json:"title,omitempty"`
	Roster            []string         `json:"roster"`
	History           []map[string]int `json:"history"`
	Scores            map[string]int   `json:"scores"`
	Leaderboard       []standingJSON   `json:"leaderboard"`
	EffectiveTarget   limitJSON        `json:"effective_target"`
	EffectiveRounds   limitJSON        `json:"effective_rounds"`
	EndReason         string           `json:"end_reason"`
	LastRoundComplete bool             `json:"last_round_complete"`
	RoundChecks       []roundCheckJSON `json:"round_checks,omitempty"`
}

func toViewJSON(view engine.View) viewJSON {
	history := make([]map[string]int, len(view.History))
	for i, round := range view.History {
		history[i] = map[string]int(round)
	}
	leaderboard := make([]standingJSON, len(view.Leaderboard))
	for i, standing := range view.Leaderboard {
		leaderboard[i] = standingJSON{PlayerID: standing.PlayerID, Score: standing.Score, Rank: standing.Rank}
	}
	checks := make([]roundCheckJSON, len(view.RoundChecks))
	for i, check := range view.RoundChecks {
		checks[i] = roundCheckJSON{Round: check.Round, Diff: check.Diff, Balanced: check.Balanced}
	}
	return viewJSON{
		SessionID:         view.SessionID,
		GameID:            view.GameID,
		GameName:          view.GameName,
		WinCondition:      view.WinCondition.String(),
		Title:             view.Title,
		Roster:            view.Roster,
		History:           history,
		Scores:            view.Scores,
		Leaderboard:       leaderboard,
		EffectiveTarget:   limitJSON{Enforced: view.EffectiveTarget.Enforced, Value: view.EffectiveTarget.Value},
		EffectiveRounds:   limitJSON{Enforced: view.EffectiveRounds.Enforced, Value: view.EffectiveRounds.Value},
		EndReason:         view.EndReason.String(),
		LastRoundComplete: view.LastRoundComplete,
		RoundChecks:       checks,
	}
}

// parseLimitOverrides decodes the wire form of session limit overrides: an
// absent key leaves the existing override untouched, an explicit null means
// unlimited, and a number bounds the limit.
func parseLimitOverrides(raw map[string]json.RawMessage) (sessiondomain.ConfigPatch, error) {
	var patch sessiondomain.ConfigPatch

	parse := func(key string) (*sessiondomain.Limit, error) {
		value, present := raw[key]
		if !present {
			return nil, nil
		}
		if string(value) == "null" {
			limit := sessiondomain.Unlimited()
			return &limit, nil
		}
		var number int
		if err := json.Unmarshal(value, &number); err != nil {
			return nil, err
		}
		limit := sessiondomain.Bounded(number)
		return &limit, nil
	}

	target, err := parse("target")
	if err != nil {
		return sessiondomain.ConfigPatch{}, err
	}
	rounds, err := parse("rounds")
	if err != nil {
		return sessiondomain.ConfigPatch{}, err
	}
	patch.Target = target
	patch.Rounds = rounds
	return patch, nil
}

func configFromPatch(patch sessiondomain.ConfigPatch) sessiondomain.Config {
	return sessiondomain.Config{}.Merge(patch)
}
