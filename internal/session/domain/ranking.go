package domain

import (
	"sort"

	gamedomain "github.com/louisbranch/scorekeep/internal/game/domain"
)

// Standing is one leaderboard row. Rank is positional: tied scores keep
// their roster order and still receive distinct consecutive ranks.
type Standing struct {
	PlayerID string
	Score    int
	Rank     int
}

// Rank sorts players by aggregate score: descending when the highest score
// wins, ascending when the lowest wins. The sort is stable on the given
// order, making ties deterministic.
func Rank(order []string, scores map[string]int, winCondition gamedomain.WinCondition) []Standing {
	standings := make([]Standing, 0, len(order))
	for _, playerID := range order {
		standings = append(standings, Standing{PlayerID: playerID, Score: scores[playerID]})
	}

	lowestWins := winCondition == gamedomain.WinConditionLowest
	sort.SliceStable(standings, func(i, j int) bool {
		if lowestWins {
			return standings[i].Score < standings[j].Score
		}
		return standings[i].Score > standings[j].Score
	})

	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}
