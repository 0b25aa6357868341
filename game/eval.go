package game

const terminalBonus = 1000.0

// ScoreEvaluation returns the game score, shifted by a large bonus for a won
// game and a large penalty for a lost one.
func ScoreEvaluation(s State) float64 {
	score := s.Score()
	if s.IsWin() {
		score += terminalBonus
	}
	if s.IsLose() {
		score -= terminalBonus
	}
	return score
}

// NormalizedScoreEvaluation returns the score gained since root, scaled down so
// that typical rewards stay in the same range as the UCT exploration term.
func NormalizedScoreEvaluation(root State, s State) float64 {
	return (ScoreEvaluation(s) - ScoreEvaluation(root)) / terminalBonus
}
