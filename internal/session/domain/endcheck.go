package domain

// EndReason explains why a session hit a game-over condition.
type EndReason int

const (
	// EndReasonNone indicates no end condition currently holds.
	EndReasonNone EndReason = iota
	// EndReasonRoundLimit indicates the round limit has been reached.
	EndReasonRoundLimit
	// EndReasonScoreTarget indicates a player reached the score target.
	EndReasonScoreTarget
)

// String returns the wire representation of the end reason.
func (r EndReason) String() string {
	switch r {
	case EndReasonRoundLimit:
		return "round-limit"
	case EndReasonScoreTarget:
		return "score-target"
	default:
		return "none"
	}
}

// EvaluateEnd checks the session against its effective limits. Only the last
// round is considered, and only once every roster player has a score in it.
// The round limit takes priority over the score target. Evaluation is
// stateless: every score update re-runs it from scratch, so raising a limit
// only clears the signal while the new limit is not itself reached.
func EvaluateEnd(s *Session, targetDefault, roundsDefault int) EndReason {
	last := len(s.History) - 1
	if last < 0 || !s.RoundComplete(last) {
		return EndReasonNone
	}

	if rounds, enforced := s.Config.Rounds.Effective(roundsDefault); enforced && len(s.History) >= rounds {
		return EndReasonRoundLimit
	}

	if target, enforced := s.Config.Target.Effective(targetDefault); enforced {
		for _, playerID := range s.Roster {
			if s.AggregateScore(playerID) >= target {
				return EndReasonScoreTarget
			}
		}
	}

	return EndReasonNone
}
