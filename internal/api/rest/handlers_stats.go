package rest

import (
	"net/http"
	"strings"
)

type playerStatsJSON struct {
	PlayerID    string  `json:"player_id"`
	Games       int     `json:"games"`
	Wins        int     `json:"wins"`
	AverageRank float64 `json:"average_rank"`
	WinRate     float64 `json:"win_rate"`
}

type commonStatsJSON struct {
	CommonGames int               `json:"common_games"`
	Players     []playerStatsJSON `json:"players"`
}

// handleCommonStats computes shared-game statistics for the players named
// by the "players" query parameter (comma separated or repeated).
func (s *Server) handleCommonStats(w http.ResponseWriter, r *http.Request) {
	var playerIDs []string
	for _, value := range r.URL.Query()["players"] {
		for _, playerID := range strings.Split(value, ",") {
			playerID = strings.TrimSpace(playerID)
			if playerID != "" {
				playerIDs = append(playerIDs, playerID)
			}
		}
	}

	result, err := s.stats.CommonGameStats(r.Context(), playerIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}

	payload := commonStatsJSON{CommonGames: result.CommonGames, Players: make([]playerStatsJSON, 0, len(result.Players))}
	for _, player := range result.Players {
		payload.Players = append(payload.Players, playerStatsJSON{
			PlayerID:    player.PlayerID,
			Games:       player.Games,
			Wins:        player.Wins,
			AverageRank: player.AverageRank,
			WinRate:     player.WinRate,
		})
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleGameCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := s.stats.GamePlayCounts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]map[string]int{"counts": counts})
}
