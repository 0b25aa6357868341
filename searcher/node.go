package searcher

import (
	"pacman/game"
	"pacman/utils"
)

// node is one point of the search tree. States are not stored: they are
// re-derived each cycle by replaying actions from the root.
type node struct {
	parent   *node
	children []*node
	action   game.Action   // Action that led here from parent
	tried    []game.Action // Actions already expanded from here
	rewards  float64
	visits   int
	playouts int // Rollouts started from this node
}

func newNode(parent *node, action game.Action) *node {
	return &node{
		parent: parent,
		action: action,
	}
}

func (n *node) untried(legal []game.Action) []game.Action {
	untried := make([]game.Action, 0, len(legal))
	for _, a := range legal {
		if utils.FindIndex(n.tried, a) < 0 {
			untried = append(untried, a)
		}
	}
	return untried
}

// isFullyExpanded reports whether every legal action of the paired state has
// been tried.
func (n *node) isFullyExpanded(legal []game.Action) bool {
	return len(n.untried(legal)) == 0
}

func (n *node) expand(action game.Action) *node {
	child := newNode(n, action)
	n.tried = append(n.tried, action)
	n.children = append(n.children, child)
	return child
}

// detach removes an unvisited leaf, undoing its expansion.
func (n *node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	if i := indexOf(p.children, n); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	if i := utils.FindIndex(p.tried, n.action); i >= 0 {
		p.tried = append(p.tried[:i], p.tried[i+1:]...)
	}
	n.parent = nil
}

func indexOf(nodes []*node, target *node) int {
	for i, n := range nodes {
		if n == target {
			return i
		}
	}
	return -1
}

// selectChild returns the child with the highest UCT value. The first child
// wins ties. Every child must have been visited.
func (n *node) selectChild(cSquared float64) *node {
	if len(n.children) == 0 {
		panic("node has no children")
	}

	policy := newUCT(cSquared, float64(n.visits))
	best := n.children[0]
	bestScore := policy.evaluate(best.rewards, float64(best.visits))
	for _, child := range n.children[1:] {
		if score := policy.evaluate(child.rewards, float64(child.visits)); score > bestScore {
			best, bestScore = child, score
		}
	}
	return best
}

func (n *node) backup(reward float64) *node {
	n.rewards += reward
	n.visits++
	return n.parent
}

func (n *node) size() int {
	size := 1
	for _, child := range n.children {
		size += child.size()
	}
	return size
}
