package engine

import (
	"context"

	gamedomain "github.com/louisbranch/scorekeep/internal/game/domain"
	"github.com/louisbranch/scorekeep/internal/session/domain"
)

// LimitView is a resolved effective limit. Value is meaningful only when
// the limit is enforced.
type LimitView struct {
	Enforced bool
	Value    int
}

// RoundCheck is the fixed-round-score balance of one round. Informational
// only; it never blocks score entry or end-condition evaluation.
type RoundCheck struct {
	Round    int
	Diff     int
	Balanced bool
}

// View is the derived state the rendering layer needs after a mutation:
// effective limits, ranked roster with scores, end-condition reason, and
// round-sum checks. A zero view (empty SessionID) means no active session.
type View struct {
	SessionID         string
	GameID            string
	GameName          string
	WinCondition      gamedomain.WinCondition
	Title             string
	Roster            []string
	History           []domain.RoundRecord
	Scores            map[string]int
	Leaderboard       []domain.Standing
	EffectiveTarget   LimitView
	EffectiveRounds   LimitView
	EndReason         domain.EndReason
	LastRoundComplete bool
	RoundChecks       []RoundCheck
}

// buildViewLocked derives the full view of the active session. Callers must
// hold the engine mutex and guarantee an active session.
func (e *Engine) buildViewLocked(_ context.Context, game gamedomain.Game) View {
	session := e.active

	history := make([]domain.RoundRecord, len(session.History))
	for i, round := range session.History {
		history[i] = round.Clone()
	}

	scores := session.AggregateScores()
	target, targetEnforced := session.Config.Target.Effective(game.Target)
	rounds, roundsEnforced := session.Config.Rounds.Effective(game.Rounds)

	view := View{
		SessionID:         session.ID,
		GameID:            session.GameID,
		GameName:          game.Name,
		WinCondition:      game.WinCondition,
		Title:             session.Title,
		Roster:            append([]string(nil), session.Roster...),
		History:           history,
		Scores:            scores,
		Leaderboard:       domain.Rank(session.Roster, scores, game.WinCondition),
		EffectiveTarget:   LimitView{Enforced: targetEnforced, Value: target},
		EffectiveRounds:   LimitView{Enforced: roundsEnforced, Value: rounds},
		EndReason:         domain.EvaluateEnd(session, game.Target, game.Rounds),
		LastRoundComplete: session.RoundComplete(len(session.History) - 1),
	}

	if game.FixedRoundScore != 0 {
		checks := make([]RoundCheck, len(session.History))
		for i, round := range session.History {
			diff, _ := domain.RoundSumCheck(round, session.Roster, game.FixedRoundScore)
			checks[i] = RoundCheck{Round: i + 1, Diff: diff, Balanced: diff == 0}
		}
		view.RoundChecks = checks
	}

	return view
}
