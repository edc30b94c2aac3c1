package arkanoid

import (
	"math"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// Field geometry in world units.
const (
	brickTop    = 4.0 // Y of the first brick row
	brickHeight = 2.0
	paddleH     = 1.0
	paddleGap   = 3.0 // Distance from the paddle top to the floor
)

// Ball is the ball state. X, Y is the centre.
type Ball struct {
	X, Y   float64
	VX, VY float64
	Size   float64
}

// Box returns the ball's bounding box.
func (b Ball) Box() core.RectF {
	return core.RectAround(b.X, b.Y, b.Size, b.Size)
}

// Speed returns the velocity magnitude.
func (b Ball) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// Paddle is the player's bat. X is the centre, Y the top edge.
type Paddle struct {
	X, Y  float64
	Width float64
}

// Box returns the paddle's bounding box.
func (p Paddle) Box() core.RectF {
	return core.RectF{X: p.X - p.Width/2, Y: p.Y, W: p.Width, H: paddleH}
}

// reflectOffPaddle sets the ball's velocity from where it struck the paddle.
// A centre hit goes straight up, an edge hit leaves at maxAngle degrees from
// vertical, and the speed is kept.
func reflectOffPaddle(b *Ball, p Paddle, maxAngle float64) {
	speed := b.Speed()
	f := core.ClampF((b.X-p.X)/(p.Width/2), -1, 1)
	angle := f * maxAngle * math.Pi / 180
	b.VX = speed * math.Sin(angle)
	b.VY = -speed * math.Cos(angle)
	b.Y = p.Y - b.Size/2
}

// wallSide reports which wall a move touched.
type wallSide int

const (
	wallNone wallSide = iota
	wallLeft
	wallRight
	wallTop
	wallFloor
)

// bounceWalls clamps the ball inside the side and top walls and inverts the
// matching velocity. It reports wallFloor once the ball has left through
// the bottom.
func bounceWalls(b *Ball, width, height float64) wallSide {
	r := b.Size / 2
	side := wallNone
	switch {
	case b.X-r < 0:
		b.X = r
		b.VX = math.Abs(b.VX)
		side = wallLeft
	case b.X+r > width:
		b.X = width - r
		b.VX = -math.Abs(b.VX)
		side = wallRight
	}
	if b.Y-r < 0 {
		b.Y = r
		b.VY = math.Abs(b.VY)
		side = wallTop
	}
	if b.Y-r > height {
		return wallFloor
	}
	return side
}

// brickBox returns the world box of the brick at (row, col).
func brickBox(row, col int, cellW float64) core.RectF {
	return core.RectF{X: float64(col) * cellW, Y: brickTop + float64(row)*brickHeight, W: cellW, H: brickHeight}
}

// brickHit names a brick cell.
type brickHit struct {
	Row, Col int
}

// pickBrick returns the live brick that overlaps the ball the most. Ties go
// to the first brick in row-major order.
func pickBrick(b Ball, l *Level, cellW float64) (brickHit, bool) {
	box := b.Box()
	best := brickHit{-1, -1}
	bestArea := 0.0
	for r, row := range l.Bricks {
		for c, brick := range row {
			if !brick.Alive() {
				continue
			}
			bb := brickBox(r, c, cellW)
			if !box.Intersects(bb) {
				continue
			}
			if area := box.OverlapArea(bb); area > bestArea {
				bestArea = area
				best = brickHit{r, c}
			}
		}
	}
	return best, best.Row >= 0
}

// deflect bounces the ball off a box along the axis of least penetration
// and pushes it clear of the box on that axis.
func deflect(b *Ball, box core.RectF) {
	ball := b.Box()
	px, py := ball.Penetration(box)
	cx, cy := box.Center()
	if ball.MinAxis(box) == core.AxisX {
		b.VX = -b.VX
		if b.X < cx {
			b.X -= px
		} else {
			b.X += px
		}
		return
	}
	b.VY = -b.VY
	if b.Y < cy {
		b.Y -= py
	} else {
		b.Y += py
	}
}
