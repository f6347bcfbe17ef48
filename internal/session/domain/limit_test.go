package domain

import "testing"

func TestBoundedCollapsesNonPositiveValues(t *testing.T) {
	cases := []struct {
		name  string
		value int
		want  Limit
	}{
		{name: "positive", value: 100, want: Limit{State: LimitBounded, Value: 100}},
		{name: "zero", value: 0, want: Limit{State: LimitUnlimited}},
		{name: "negative", value: -5, want: Limit{State: LimitUnlimited}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Bounded(tc.value); got != tc.want {
				t.Fatalf("Bounded(%d) = %+v, want %+v", tc.value, got, tc.want)
			}
		})
	}
}

func TestLimitEffective(t *testing.T) {
	cases := []struct {
		name         string
		limit        Limit
		gameDefault  int
		wantValue    int
		wantEnforced bool
	}{
		{name: "unset defers to default", limit: Limit{}, gameDefault: 500, wantValue: 500, wantEnforced: true},
		{name: "unset with zero default", limit: Limit{}, gameDefault: 0, wantValue: 0, wantEnforced: false},
		{name: "unlimited override beats default", limit: Unlimited(), gameDefault: 500, wantValue: 0, wantEnforced: false},
		{name: "bounded override beats default", limit: Bounded(200), gameDefault: 500, wantValue: 200, wantEnforced: true},
		{name: "bounded override without default", limit: Bounded(7), gameDefault: 0, wantValue: 7, wantEnforced: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			value, enforced := tc.limit.Effective(tc.gameDefault)
			if value != tc.wantValue || enforced != tc.wantEnforced {
				t.Fatalf("Effective(%d) = (%d, %t), want (%d, %t)", tc.gameDefault, value, enforced, tc.wantValue, tc.wantEnforced)
			}
		})
	}
}

func TestConfigMerge(t *testing.T) {
	base := Config{Target: Bounded(100), Rounds: Limit{}}

	target := Unlimited()
	merged := base.Merge(ConfigPatch{Target: &target})
	if merged.Target != Unlimited() {
		t.Fatalf("merged target = %+v, want unlimited", merged.Target)
	}
	if merged.Rounds != (Limit{}) {
		t.Fatalf("merged rounds = %+v, want unset", merged.Rounds)
	}

	rounds := Bounded(10)
	merged = merged.Merge(ConfigPatch{Rounds: &rounds})
	if merged.Target != Unlimited() {
		t.Fatalf("second merge changed target: %+v", merged.Target)
	}
	if merged.Rounds != Bounded(10) {
		t.Fatalf("merged rounds = %+v, want bounded 10", merged.Rounds)
	}
}
