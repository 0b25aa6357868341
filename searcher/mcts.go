package searcher

import (
	"errors"

	"pacman/experiments/metrics"
	"pacman/game"
	"pacman/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

type MCTS struct {
	cutoff   int
	cSquared float64
	evaluate game.EvaluateRelative
	rng      *rand.Rand
	root     *node
	metrics  metrics.Collector
	last     metrics.SearchMetric
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithExploration(cSquared float64) Option {
	return func(m *MCTS) {
		if cSquared > 0 {
			m.cSquared = cSquared
		}
	}
}

func WithEvaluationFn(evaluate game.EvaluateRelative) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(m *MCTS) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		cutoff:   MaxCutoff,
		cSquared: CSquared,
		evaluate: game.NormalizedScoreEvaluation,
		rng:      utils.NewRand(0),
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// FindNextMove grows a fresh tree until the successor budget runs out, then
// picks the root child with the best UCT value.
func (m *MCTS) FindNextMove(state game.State) game.Action {
	m.root = newNode(nil, game.Stop)
	m.metrics.Start()

	if !game.IsTerminal(state) {
		for m.simulate(state) {
			m.metrics.AddEpisode()
		}
	}

	m.metrics.SetTreeSize(m.root.size())
	m.last = m.metrics.Complete()

	move := game.Stop
	if len(m.root.children) > 0 {
		move = m.root.selectChild(m.cSquared).action
	}

	log.Debug().
		Int("episodes", m.root.visits).
		Int("tree_size", m.last.TreeSize).
		Str("action", string(move)).
		Msg("mcts search complete")
	return move
}

// LastSearch returns the metrics of the most recent FindNextMove.
func (m *MCTS) LastSearch() metrics.SearchMetric {
	return m.last
}

// simulate runs one selection, expansion, rollout and backup cycle. It returns
// false once the budget is exhausted, leaving the tree as it was.
func (m *MCTS) simulate(state game.State) bool {
	leaf, leafState, err := selectThenExpand(m.root, state, m.cSquared, m.rng)
	if err != nil {
		logAbort(err)
		return false
	}

	reward, err := rollout(state, leafState, m.cutoff, m.evaluate, m.rng, m.metrics)
	if err != nil {
		if leaf.visits == 0 { // Undo the expansion of this cycle
			leaf.detach()
		}
		logAbort(err)
		return false
	}

	backup(leaf, reward)
	return true
}

func logAbort(err error) {
	if !errors.Is(err, game.ErrBudgetExhausted) {
		log.Warn().Err(err).Msg("successor failed, stopping search")
	}
}

var errNoLegalActions = errors.New("non-terminal state has no legal actions")

// selectThenExpand descends by UCT through fully expanded nodes and expands the
// first node with an untried legal action. It stops early on a terminal state.
func selectThenExpand(root *node, state game.State, cSquared float64, rng *rand.Rand) (*node, game.State, error) {
	current := root
	for !game.IsTerminal(state) {
		legal := state.LegalActions()
		if len(legal) == 0 {
			return nil, nil, errNoLegalActions
		}

		if !current.isFullyExpanded(legal) {
			action := utils.Choice(rng, current.untried(legal))
			next, err := state.Successor(action)
			if err != nil {
				return nil, nil, err
			}
			return current.expand(action), next, nil
		}

		current = current.selectChild(cSquared)
		next, err := state.Successor(current.action)
		if err != nil {
			return nil, nil, err
		}
		state = next
	}
	return current, state, nil
}

func rollout(root game.State, state game.State, cutoff int, evaluate game.EvaluateRelative, rng *rand.Rand, metrics metrics.Collector) (float64, error) {
	// Rollout till game over or for cutoff number of actions
	for depth := 0; depth < cutoff && !game.IsTerminal(state); depth++ {
		legal := state.LegalActions()
		if len(legal) == 0 {
			break
		}
		next, err := state.Successor(utils.Choice(rng, legal)) // Random rollout policy
		if err != nil {
			return 0, err
		}
		state = next
	}

	if game.IsTerminal(state) {
		metrics.AddFullPlayout()
	}
	return evaluate(root, state), nil
}

func backup(leaf *node, reward float64) {
	leaf.playouts++
	node := leaf
	for node != nil {
		node = node.backup(reward)
	}
}
