// meta/meta.go
package meta

// PARALLELISM defines the number of games played concurrently.
const PARALLELISM = 8

// GAMES defines the number of games per agent and layout.
const GAMES = 10

// FRAME_BUDGET defines the successor calls an agent may make per frame.
const FRAME_BUDGET = 1000

// MAX_FRAMES defines the frames after which a game is stopped.
const MAX_FRAMES = 300

// WITH_CUTOFF defines the rollout depth for MCTS.
const WITH_CUTOFF = 5

// EXPLORATION defines the squared UCT exploration constant.
const EXPLORATION = 2.0

const OUTPUT_DIR = "results"

const LOG_LEVEL = "info"
