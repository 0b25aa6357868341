package engine

import "pacman/experiments/metrics"

const MaxFrames = 10000

type Engine interface {
	// Run plays a game till it is won, lost or the frame limit is reached
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
