package planner

import "pacman/game"

// replay plays plan from state. The returned score is the evaluation of the
// last state reached before the plan ran out, the game ended or the budget
// was exhausted; the final successor itself is never evaluated.
func replay(state game.State, plan Chromosome, evaluate game.Evaluate) (float64, error) {
	score := minScore
	for _, action := range plan {
		score = evaluate(state)
		if game.IsTerminal(state) {
			break
		}
		next, err := state.Successor(action)
		if err != nil {
			return score, err
		}
		state = next
	}
	return score, nil
}
