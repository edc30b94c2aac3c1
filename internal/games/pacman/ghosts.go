package pacman

import (
	"slices"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// Personality selects a ghost's pursuit strategy list.
type Personality int

const (
	Blinky Personality = iota // Direct chase
	Pinky                     // Intercepts ahead of pacman
	Inky                      // Random wander or mirrored pursuit
	Clyde                     // Chases from afar, flees up close
)

func (p Personality) String() string {
	return [...]string{"Blinky", "Pinky", "Inky", "Clyde"}[p]
}

// Ghost is one pursuer.
type Ghost struct {
	Kind       Personality
	Pos        core.Point
	Prev       core.Point // Position before this tick's move
	Dir        core.Dir
	Home       core.Point
	Corner     core.Point // Scatter target when fleeing
	Frightened int        // Ticks of fright remaining
	ReleaseAt  int        // Ticks after a mover reset before the ghost leaves home
}

// view is everything a strategy may look at when picking a heading.
type view struct {
	self       core.Point
	options    []core.Dir // Legal headings minus the reverse, in tie-break order
	maze       *Maze
	pac        core.Point
	pacDir     core.Dir
	blinky     core.Point
	corner     core.Point
	frightened bool
	lookAhead  int
	fleeDist   int
	wander     float64
	roll       float64 // Uniform [0,1) draw for this decision
	pick       int     // Uniform index into options
}

// strategy returns a heading when it applies to the view.
type strategy func(v *view) (core.Dir, bool)

// strategies lists each personality's rules in priority order. The first
// rule that yields a heading wins.
var strategies = map[Personality][]strategy{
	Blinky: {flee, pursue(targetPacman)},
	Pinky:  {flee, pursue(targetAhead)},
	Inky:   {flee, wander, pursue(targetMirror)},
	Clyde:  {flee, shy},
}

// options returns the legal headings from pos excluding the reverse of
// heading, unless reversing is the only legal move.
func options(m *Maze, pos core.Point, heading core.Dir) []core.Dir {
	legal := m.Legal(pos)
	if heading == core.DirNone {
		return legal
	}
	back := heading.Opposite()
	out := make([]core.Dir, 0, len(legal))
	for _, d := range legal {
		if d != back {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return legal
	}
	return out
}

// rank orders the view's options by the squared distance from the next
// cell to target. Ties keep the Up, Left, Down, Right order.
func (v *view) rank(target core.Point, farthest bool) core.Dir {
	if len(v.options) == 0 {
		return core.DirNone
	}
	ranked := slices.Clone(v.options)
	slices.SortStableFunc(ranked, func(a, b core.Dir) int {
		da := v.nextDist(a, target)
		db := v.nextDist(b, target)
		if farthest {
			return db - da
		}
		return da - db
	})
	return ranked[0]
}

func (v *view) nextDist(d core.Dir, target core.Point) int {
	next, _ := v.maze.Next(v.self, d)
	return next.DistSq(target)
}

// toward picks the option that closes in on target.
func (v *view) toward(target core.Point) core.Dir {
	return v.rank(target, false)
}

// away picks the option that maximises the distance from target.
func (v *view) away(target core.Point) core.Dir {
	return v.rank(target, true)
}

// flee runs from pacman while frightened.
func flee(v *view) (core.Dir, bool) {
	if !v.frightened {
		return core.DirNone, false
	}
	return v.away(v.pac), true
}

// wander picks a random legal heading with the configured probability.
func wander(v *view) (core.Dir, bool) {
	if v.roll >= v.wander || v.pick < 0 || v.pick >= len(v.options) {
		return core.DirNone, false
	}
	return v.options[v.pick], true
}

// shy chases pacman from beyond the flee distance and heads for its
// corner when closer.
func shy(v *view) (core.Dir, bool) {
	if v.self.DistSq(v.pac) > v.fleeDist*v.fleeDist {
		return v.toward(v.pac), true
	}
	return v.toward(v.corner), true
}

// pursue chases a computed target.
func pursue(target func(v *view) core.Point) strategy {
	return func(v *view) (core.Dir, bool) {
		return v.toward(target(v)), true
	}
}

func targetPacman(v *view) core.Point {
	return v.pac
}

// targetAhead aims lookAhead cells along pacman's heading.
func targetAhead(v *view) core.Point {
	return v.pac.Add(v.pacDir.Delta().Scale(v.lookAhead))
}

// targetMirror reflects Blinky's position through pacman.
func targetMirror(v *view) core.Point {
	return v.pac.Add(v.pac.Sub(v.blinky))
}

// decide runs the personality's strategy list and falls back to the
// first option.
func decide(kind Personality, v *view) core.Dir {
	for _, s := range strategies[kind] {
		if d, ok := s(v); ok {
			return d
		}
	}
	if len(v.options) > 0 {
		return v.options[0]
	}
	return core.DirNone
}
