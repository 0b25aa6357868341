package arena

import (
	"fmt"
	"sort"
	"strings"
)

type Pos struct {
	X, Y int
}

func (p Pos) distance(q Pos) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Layout is the static part of a game: walls and starting positions.
// Text layouts use '%' for walls, '.' for food, 'P' for pacman and 'G' for
// ghosts.
type Layout struct {
	Name   string
	Width  int
	Height int
	walls  []bool
	food   []Pos
	pacman Pos
	ghosts []Pos
}

var builtin = map[string]string{
	"tiny": `
%%%%%%%
%P . .%
% %%% %
%.   G%
%%%%%%%`,
	"small": `
%%%%%%%%%%
%P.. ....%
%.%%.%%%.%
%........%
%.%%.%%%.%
%....G...%
%%%%%%%%%%`,
	"open": `
%%%%%%%%%%%%
%P.........%
%..........%
%....%%....%
%..........%
%.........G%
%%%%%%%%%%%%`,
}

// LayoutNames lists the built-in layouts.
func LayoutNames() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func LoadLayout(name string) (*Layout, error) {
	text, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("unknown layout %q", name)
	}
	return ParseLayout(name, text)
}

func ParseLayout(name, text string) (*Layout, error) {
	rows := strings.Split(strings.Trim(text, "\n"), "\n")
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("layout %s is empty", name)
	}

	l := &Layout{
		Name:   name,
		Width:  len(rows[0]),
		Height: len(rows),
		walls:  make([]bool, len(rows[0])*len(rows)),
	}
	pacmen := 0
	for y, row := range rows {
		if len(row) != l.Width {
			return nil, fmt.Errorf("layout %s: row %d has width %d, expected %d", name, y, len(row), l.Width)
		}
		for x, c := range row {
			p := Pos{X: x, Y: y}
			switch c {
			case '%':
				l.walls[l.index(p)] = true
			case '.':
				l.food = append(l.food, p)
			case 'P':
				l.pacman = p
				pacmen++
			case 'G':
				l.ghosts = append(l.ghosts, p)
			case ' ':
			default:
				return nil, fmt.Errorf("layout %s: unexpected %q at (%d, %d)", name, c, x, y)
			}
		}
	}
	if pacmen != 1 {
		return nil, fmt.Errorf("layout %s: expected one pacman, found %d", name, pacmen)
	}
	if len(l.food) == 0 {
		return nil, fmt.Errorf("layout %s has no food", name)
	}
	return l, nil
}

func (l *Layout) index(p Pos) int {
	return p.Y*l.Width + p.X
}

// IsWall treats everything outside the grid as wall.
func (l *Layout) IsWall(p Pos) bool {
	if p.X < 0 || p.Y < 0 || p.X >= l.Width || p.Y >= l.Height {
		return true
	}
	return l.walls[l.index(p)]
}
