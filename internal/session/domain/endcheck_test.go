package domain

import "testing"

func TestEvaluateEndRequiresCompleteLastRound(t *testing.T) {
	session := newTestSession(t, "alice", "bob")
	session.History = []RoundRecord{{"alice": 120, "bob": 40}, {"alice": 3}}

	if got := EvaluateEnd(session, 100, 0); got != EndReasonNone {
		t.Fatalf("reason = %v, want none while last round is incomplete", got)
	}

	session.History[1]["bob"] = 1
	if got := EvaluateEnd(session, 100, 0); got != EndReasonScoreTarget {
		t.Fatalf("reason = %v, want score target once last round completes", got)
	}
}

func TestEvaluateEndRoundLimitTakesPriority(t *testing.T) {
	session := newTestSession(t, "alice", "bob")
	session.History = []RoundRecord{
		{"alice": 60, "bob": 10},
		{"alice": 60, "bob": 10},
	}

	if got := EvaluateEnd(session, 100, 2); got != EndReasonRoundLimit {
		t.Fatalf("reason = %v, want round limit over score target", got)
	}
}

func TestEvaluateEndOverrides(t *testing.T) {
	session := newTestSession(t, "alice")
	session.History = []RoundRecord{{"alice": 150}}

	cases := []struct {
		name   string
		config Config
		want   EndReason
	}{
		{name: "defaults apply when unset", config: Config{}, want: EndReasonScoreTarget},
		{name: "unlimited override disables default", config: Config{Target: Unlimited()}, want: EndReasonNone},
		{name: "raised override not yet reached", config: Config{Target: Bounded(200)}, want: EndReasonNone},
		{name: "lowered override reached", config: Config{Target: Bounded(120)}, want: EndReasonScoreTarget},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			session.Config = tc.config
			if got := EvaluateEnd(session, 100, 0); got != tc.want {
				t.Fatalf("reason = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEvaluateEndStatelessRetrigger(t *testing.T) {
	session := newTestSession(t, "alice")
	session.History = []RoundRecord{{"alice": 50}, {"alice": 60}}

	if got := EvaluateEnd(session, 100, 0); got != EndReasonScoreTarget {
		t.Fatalf("reason = %v, want score target at 110", got)
	}

	// Raising the limit clears the signal only until the new limit is hit.
	session.Config.Target = Bounded(150)
	if got := EvaluateEnd(session, 100, 0); got != EndReasonNone {
		t.Fatalf("reason = %v, want none after raising the target", got)
	}

	session.AddEmptyRound()
	if err := session.SetScore(2, "alice", 40); err != nil {
		t.Fatalf("SetScore: %v", err)
	}
	if got := EvaluateEnd(session, 100, 0); got != EndReasonScoreTarget {
		t.Fatalf("reason = %v, want score target once the raised limit is reached", got)
	}
}

func TestEvaluateEndWithoutAnyLimit(t *testing.T) {
	session := newTestSession(t, "alice")
	session.History = []RoundRecord{{"alice": 1000000}}

	if got := EvaluateEnd(session, 0, 0); got != EndReasonNone {
		t.Fatalf("reason = %v, want none when no limit is enforced", got)
	}
}
