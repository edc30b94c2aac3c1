package arkanoid

// BrickType represents different types of bricks.
type BrickType int

const (
	BrickEmpty  BrickType = iota // No brick
	BrickNormal                  // Destroyed in one hit
	BrickHard                    // Requires 2 hits to destroy
	BrickSolid                   // Indestructible
)

// Brick represents a single brick in the level.
type Brick struct {
	Type   BrickType
	Points int // Points awarded when destroyed
	HP     int // Hits remaining
}

// Alive reports whether the brick still occupies its cell.
func (b Brick) Alive() bool {
	return b.Type != BrickEmpty && b.HP > 0
}

// Breakable reports whether the brick counts towards clearing the level.
func (b Brick) Breakable() bool {
	return b.Alive() && b.Type != BrickSolid
}

// Level is a brick layout.
type Level struct {
	Name   string
	Cols   int
	Rows   int
	Bricks [][]Brick // [row][col]
}

// Clone creates a deep copy of the level.
func (l *Level) Clone() *Level {
	clone := &Level{Name: l.Name, Cols: l.Cols, Rows: l.Rows, Bricks: make([][]Brick, len(l.Bricks))}
	for i, row := range l.Bricks {
		clone.Bricks[i] = make([]Brick, len(row))
		copy(clone.Bricks[i], row)
	}
	return clone
}

// CountBreakable returns the number of bricks left to clear.
func (l *Level) CountBreakable() int {
	n := 0
	for _, row := range l.Bricks {
		for _, b := range row {
			if b.Breakable() {
				n++
			}
		}
	}
	return n
}

// ParseLevel creates a Level from an ASCII map. Short rows are padded
// with empty cells.
//
//	'#' = normal brick (10 points)
//	'1'-'9' = normal brick worth 10 * digit
//	'H' = hard brick (2 HP, 20 points)
//	'X' = solid brick
//	anything else = empty
func ParseLevel(name string, lines []string) *Level {
	cols := 0
	for _, line := range lines {
		cols = max(cols, len(line))
	}
	level := &Level{Name: name, Cols: cols, Rows: len(lines), Bricks: make([][]Brick, len(lines))}

	for row, line := range lines {
		level.Bricks[row] = make([]Brick, cols)
		for col := 0; col < len(line); col++ {
			ch := line[col]
			switch {
			case ch == '#':
				level.Bricks[row][col] = Brick{Type: BrickNormal, Points: 10, HP: 1}
			case ch >= '1' && ch <= '9':
				level.Bricks[row][col] = Brick{Type: BrickNormal, Points: int(ch-'0') * 10, HP: 1}
			case ch == 'H' || ch == 'h':
				level.Bricks[row][col] = Brick{Type: BrickHard, Points: 20, HP: 2}
			case ch == 'X' || ch == 'x':
				level.Bricks[row][col] = Brick{Type: BrickSolid, HP: 1}
			}
		}
	}
	return level
}

var builtinLevels = []*Level{
	ParseLevel("Classic", []string{
		"####################",
		"####################",
		"####################",
		"####################",
	}),
	ParseLevel("Pyramid", []string{
		"........####........",
		"......########......",
		"....############....",
		"..################..",
		"####################",
	}),
	ParseLevel("Checker", []string{
		"#.#.#.#.#.#.#.#.#.#.",
		".#.#.#.#.#.#.#.#.#.#",
		"#.#.#.#.#.#.#.#.#.#.",
		".#.#.#.#.#.#.#.#.#.#",
	}),
	ParseLevel("Fortress", []string{
		"HHHHHHHHHHHHHHHHHHHH",
		"H..................H",
		"H.5555555555555555.H",
		"H.################.H",
		"HHHHHHHH....HHHHHHHH",
	}),
	ParseLevel("Castle", []string{
		"X..X....X..X....X..X",
		"XXXX....XXXX....XXXX",
		"....................",
		"33333333333333333333",
		"####################",
	}),
	ParseLevel("Boss", []string{
		"HHHHHHHHHHHHHHHHHHHH",
		"H999999999999999999H",
		"H##################H",
		"HX################XH",
		"HHHHHHHHHHHHHHHHHHHH",
	}),
}

// LevelCount returns the number of built-in layouts.
func LevelCount() int {
	return len(builtinLevels)
}

// levelFor returns a fresh copy of the layout for a 1-based level,
// cycling through the built-ins.
func levelFor(level int) *Level {
	return builtinLevels[(level-1)%len(builtinLevels)].Clone()
}
