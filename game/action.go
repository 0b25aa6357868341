package game

// Action is a move of the controlled character.
type Action string

const (
	North Action = "North"
	South Action = "South"
	East  Action = "East"
	West  Action = "West"
	Stop  Action = "Stop"
)

var allActions = []Action{North, South, East, West, Stop}

// AllActions returns a fresh copy of the action alphabet.
func AllActions() []Action {
	actions := make([]Action, len(allActions))
	copy(actions, allActions)
	return actions
}

// Delta returns the column and row offsets of a move. Rows grow downwards.
func (a Action) Delta() (dx, dy int) {
	switch a {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}
