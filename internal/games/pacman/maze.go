package pacman

import (
	"fmt"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// Layout glyphs
const (
	glyphWall   = '#'
	glyphDot    = '.'
	glyphPellet = 'o'
	glyphPac    = 'P'
	glyphGhost  = 'G'
)

// Layout is an ASCII maze. Exactly one row has open cells on both edges;
// it is the tunnel row where movers wrap horizontally.
type Layout struct {
	Name string
	Rows []string
}

// layouts is the ordered maze set. Levels 1..5 use it in order.
var layouts = []Layout{
	{
		Name: "Classic",
		Rows: []string{
			"#####################",
			"#o........#........o#",
			"#.###.###.#.###.###.#",
			"#...................#",
			"#.###.#.#####.#.###.#",
			"#.....#...#...#.....#",
			"#####.###.#.###.#####",
			"     .  GG GG  .     ",
			"#####.#.#####.#.#####",
			"#.........P.........#",
			"#.###.###.#.###.###.#",
			"#o..#...........#..o#",
			"#.#.#.#.#####.#.#.#.#",
			"#.....#.......#.....#",
			"#####################",
		},
	},
	{
		Name: "Spiral",
		Rows: []string{
			"#####################",
			"#o.................o#",
			"#.#######.#.#######.#",
			"#.#.......#.......#.#",
			"#.#.#####.#.#####.#.#",
			"#...#...........#...#",
			"###.#.#.#.#.#.#.#.###",
			"   ...#.GG GG.#...   ",
			"###.#.#########.#.###",
			"#.........P.........#",
			"#.#######.#.#######.#",
			"#o.................o#",
			"#.###.#.#####.#.###.#",
			"#.....#.......#.....#",
			"#####################",
		},
	},
	{
		Name: "Lanes",
		Rows: []string{
			"#####################",
			"#o.................o#",
			"#.#####.##.##.#####.#",
			"#...................#",
			"#.##.##.#####.##.##.#",
			"#.##.##...#...##.##.#",
			"#.......#.#.#.......#",
			"    .##.GG GG.##.    ",
			"#.......#####.......#",
			"#.##.##...P...##.##.#",
			"#.##.##.#####.##.##.#",
			"#...................#",
			"#.#####.##.##.#####.#",
			"#o.................o#",
			"#####################",
		},
	},
	{
		Name: "Chambers",
		Rows: []string{
			"#####################",
			"#o..#...........#..o#",
			"#.#.#.####.####.#.#.#",
			"#.#.....#...#.....#.#",
			"#.#####.#.#.#.#####.#",
			"#.......#.#.#.......#",
			"#.###.#.......#.###.#",
			"     .#.GG GG.#.     ",
			"#.#####.#####.#####.#",
			"#.........P.........#",
			"#.###.#.#####.#.###.#",
			"#.#...#...#...#...#.#",
			"#.#.#####.#.#####.#.#",
			"#o.................o#",
			"#####################",
		},
	},
	{
		Name: "Grid",
		Rows: []string{
			"#####################",
			"#o.................o#",
			"#.##.##.##.##.##.##.#",
			"#...................#",
			"#.##.##.##.##.##.##.#",
			"#...................#",
			"#.##.##.#####.##.##.#",
			"   .....GG GG.....   ",
			"#.##.##.#####.##.##.#",
			"#.........P.........#",
			"#.##.##.##.##.##.##.#",
			"#...................#",
			"#.##.##.##.##.##.##.#",
			"#o.................o#",
			"#####################",
		},
	},
}

// LayoutCount returns the number of maze layouts.
func LayoutCount() int {
	return len(layouts)
}

// item is a collectible sitting on a floor cell.
type item uint8

const (
	itemNone item = iota
	itemDot
	itemPellet
)

// Maze is a parsed layout with its remaining collectibles.
type Maze struct {
	W, H      int
	TunnelRow int
	PacStart  core.Point
	Homes     []core.Point // Ghost spawn cells in release order

	walls [][]bool
	items [][]item
	left  int // Dots and pellets still on the board
}

// ParseMaze converts a layout into a playable maze.
func ParseMaze(l Layout) (*Maze, error) {
	if len(l.Rows) == 0 {
		return nil, fmt.Errorf("pacman: layout %q is empty", l.Name)
	}
	m := &Maze{W: len(l.Rows[0]), H: len(l.Rows), TunnelRow: -1}
	m.walls = make([][]bool, m.H)
	m.items = make([][]item, m.H)

	pacFound := false
	for y, row := range l.Rows {
		if len(row) != m.W {
			return nil, fmt.Errorf("pacman: layout %q row %d has width %d, expected %d", l.Name, y, len(row), m.W)
		}
		m.walls[y] = make([]bool, m.W)
		m.items[y] = make([]item, m.W)
		for x, ch := range row {
			switch ch {
			case glyphWall:
				m.walls[y][x] = true
			case glyphDot:
				m.items[y][x] = itemDot
				m.left++
			case glyphPellet:
				m.items[y][x] = itemPellet
				m.left++
			case glyphPac:
				m.PacStart = core.Point{X: x, Y: y}
				pacFound = true
			case glyphGhost:
				m.Homes = append(m.Homes, core.Point{X: x, Y: y})
			}
		}
		if row[0] != glyphWall && row[m.W-1] != glyphWall {
			if m.TunnelRow >= 0 {
				return nil, fmt.Errorf("pacman: layout %q has more than one tunnel row", l.Name)
			}
			m.TunnelRow = y
		}
	}

	if !pacFound {
		return nil, fmt.Errorf("pacman: layout %q has no start cell", l.Name)
	}
	if len(m.Homes) == 0 {
		return nil, fmt.Errorf("pacman: layout %q has no ghost home", l.Name)
	}
	return m, nil
}

// InBounds reports whether p lies on the maze.
func (m *Maze) InBounds(p core.Point) bool {
	return p.X >= 0 && p.X < m.W && p.Y >= 0 && p.Y < m.H
}

// Wall reports whether p is a wall. Cells off the maze count as walls.
func (m *Maze) Wall(p core.Point) bool {
	if !m.InBounds(p) {
		return true
	}
	return m.walls[p.Y][p.X]
}

// Next returns the cell one step from p along d. Leaving the maze
// sideways on the tunnel row re-enters on the opposite edge; any other
// exit or a wall makes the step illegal.
func (m *Maze) Next(p core.Point, d core.Dir) (core.Point, bool) {
	q := p.Add(d.Delta())
	if q.Y == m.TunnelRow {
		switch {
		case q.X < 0:
			q.X = m.W - 1
		case q.X >= m.W:
			q.X = 0
		}
	}
	if m.Wall(q) {
		return p, false
	}
	return q, true
}

// Legal returns the headings that can be taken from p, in tie-break order.
func (m *Maze) Legal(p core.Point) []core.Dir {
	out := make([]core.Dir, 0, 4)
	for _, d := range core.Dirs {
		if _, ok := m.Next(p, d); ok {
			out = append(out, d)
		}
	}
	return out
}

// Eat removes the collectible at p and returns it.
func (m *Maze) Eat(p core.Point) item {
	it := m.items[p.Y][p.X]
	if it != itemNone {
		m.items[p.Y][p.X] = itemNone
		m.left--
	}
	return it
}

// Remaining returns the number of dots and pellets left.
func (m *Maze) Remaining() int {
	return m.left
}
