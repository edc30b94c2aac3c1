// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Point is a cell on a discrete grid.
type Point struct {
	X, Y int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale multiplies both coordinates by n.
func (p Point) Scale(n int) Point {
	return Point{X: p.X * n, Y: p.Y * n}
}

// DistSq returns the squared Euclidean distance between p and q.
func (p Point) DistSq(q Point) int {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Dir is a discrete grid heading.
type Dir int

const (
	DirNone Dir = iota
	DirUp
	DirLeft
	DirDown
	DirRight
)

// Dirs lists the four headings in tie-break order.
var Dirs = [4]Dir{DirUp, DirLeft, DirDown, DirRight}

// Delta returns the unit cell offset for the heading.
func (d Dir) Delta() Point {
	switch d {
	case DirUp:
		return Point{Y: -1}
	case DirDown:
		return Point{Y: 1}
	case DirLeft:
		return Point{X: -1}
	case DirRight:
		return Point{X: 1}
	}
	return Point{}
}

// Opposite returns the reversed heading.
func (d Dir) Opposite() Dir {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return DirNone
}

func (d Dir) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// DirFromAction maps a movement action to a heading.
func DirFromAction(a Action) Dir {
	switch a {
	case ActionUp:
		return DirUp
	case ActionDown:
		return DirDown
	case ActionLeft:
		return DirLeft
	case ActionRight:
		return DirRight
	}
	return DirNone
}

// Rect represents an axis-aligned bounding box used for collision detection.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Uses standard AABB collision detection.
func (r Rect) Intersects(other Rect) bool {
	// No overlap if one rect is completely to the left, right, above, or below
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// RectF is a continuous-space AABB. X, Y is the top-left corner.
type RectF struct {
	X, Y, W, H float64
}

// RectAround builds a box of size w×h centred on (cx, cy).
func RectAround(cx, cy, w, h float64) RectF {
	return RectF{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

func (r RectF) Right() float64  { return r.X + r.W }
func (r RectF) Bottom() float64 { return r.Y + r.H }

// Center returns the centre point.
func (r RectF) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Intersects reports whether both axis intervals overlap. Touching edges
// do not count as an overlap.
func (r RectF) Intersects(o RectF) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Inset shrinks the box by d on every side. The box never inverts.
func (r RectF) Inset(d float64) RectF {
	w := math.Max(0, r.W-2*d)
	h := math.Max(0, r.H-2*d)
	cx, cy := r.Center()
	return RectAround(cx, cy, w, h)
}

// Penetration returns how deep r overlaps o on each axis. Both values are
// zero or negative when the boxes do not intersect.
func (r RectF) Penetration(o RectF) (px, py float64) {
	px = math.Min(r.Right()-o.X, o.Right()-r.X)
	py = math.Min(r.Bottom()-o.Y, o.Bottom()-r.Y)
	return px, py
}

// OverlapArea returns the intersection area, 0 when disjoint.
func (r RectF) OverlapArea(o RectF) float64 {
	px, py := r.Penetration(o)
	if px <= 0 || py <= 0 {
		return 0
	}
	return math.Min(px, math.Min(r.W, o.W)) * math.Min(py, math.Min(r.H, o.H))
}

// Axis names the axis of a minimum translation.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// MinAxis returns the axis with the smaller penetration. Equal depths
// resolve to AxisY so that replays stay deterministic.
func (r RectF) MinAxis(o RectF) Axis {
	px, py := r.Penetration(o)
	if px < py {
		return AxisX
	}
	return AxisY
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
