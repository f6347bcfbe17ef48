package domain

import "testing"

func TestRoundSumIgnoresNonRosterKeys(t *testing.T) {
	round := RoundRecord{"alice": 40, "bob": 51, "ghost": 99}
	if got := RoundSum(round, []string{"alice", "bob"}); got != 91 {
		t.Fatalf("RoundSum = %d, want 91", got)
	}
}

func TestRoundSumCheck(t *testing.T) {
	roster := []string{"alice", "bob", "carol"}

	cases := []struct {
		name     string
		round    RoundRecord
		fixed    int
		wantDiff int
		wantOK   bool
	}{
		{name: "disabled without fixed score", round: RoundRecord{"alice": 10}, fixed: 0, wantDiff: 0, wantOK: false},
		{name: "balanced", round: RoundRecord{"alice": 40, "bob": 30, "carol": 21}, fixed: 91, wantDiff: 0, wantOK: true},
		{name: "short", round: RoundRecord{"alice": 40, "bob": 30}, fixed: 91, wantDiff: 21, wantOK: true},
		{name: "over", round: RoundRecord{"alice": 60, "bob": 30, "carol": 21}, fixed: 91, wantDiff: -20, wantOK: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diff, ok := RoundSumCheck(tc.round, roster, tc.fixed)
			if diff != tc.wantDiff || ok != tc.wantOK {
				t.Fatalf("RoundSumCheck = (%d, %t), want (%d, %t)", diff, ok, tc.wantDiff, tc.wantOK)
			}
		})
	}
}
