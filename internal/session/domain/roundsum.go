package domain

// RoundSum totals the recorded scores of roster players in a round, with
// blank cells counting as zero.
func RoundSum(round RoundRecord, roster []string) int {
	sum := 0
	for _, playerID := range roster {
		if value, ok := round[playerID]; ok {
			sum += value
		}
	}
	return sum
}

// RoundSumCheck reports the difference between a game's fixed round score
// and the round's recorded sum. A zero diff means the round is balanced.
// The check is disabled (ok false) when the game has no fixed round score;
// it is informational either way and never blocks score entry.
func RoundSumCheck(round RoundRecord, roster []string, fixedRoundScore int) (diff int, ok bool) {
	if fixedRoundScore == 0 {
		return 0, false
	}
	return fixedRoundScore - RoundSum(round, roster), true
}
