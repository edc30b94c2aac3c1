package pang

import (
	"math"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// MaxSize is the largest bubble size.
const MaxSize = 4

// Player and bullet dimensions in world units.
const (
	playerW       = 4.0
	playerH       = 4.0
	playerInset   = 0.5
	bulletW       = 1.0
	bulletH       = 2.0
	bubbleSideMul = 3.0
)

// bounceHeights is the apex height above the floor reached after a floor
// bounce, indexed by size.
var bounceHeights = [MaxSize + 1]float64{0, 14, 22, 30, 38}

// Bubble is a bouncing ball. X, Y is its centre.
type Bubble struct {
	Size   int
	X, Y   float64
	VX, VY float64
}

// Side returns the bubble's box side length.
func (b Bubble) Side() float64 {
	return bubbleSideMul * float64(b.Size)
}

// Box returns the bubble's AABB.
func (b Bubble) Box() core.RectF {
	return core.RectAround(b.X, b.Y, b.Side(), b.Side())
}

// Bullet is a harpoon shot travelling straight up. X, Y is its centre.
type Bullet struct {
	X, Y float64
}

// Box returns the bullet's AABB.
func (s Bullet) Box() core.RectF {
	return core.RectAround(s.X, s.Y, bulletW, bulletH)
}

// Points returns the score for popping a bubble of the given size.
// Smaller bubbles are worth more.
func Points(unit, size int) int {
	return unit * (MaxSize + 1 - size)
}

// bounceVelocity is the upward speed needed to reach the size's apex.
func bounceVelocity(size int, gravity float64) float64 {
	return math.Sqrt(2 * gravity * bounceHeights[size])
}

// Split pops a bubble. A bubble larger than size 1 yields two children
// of size-1 at the same centre moving apart horizontally and kicked
// upwards by pop. Size 1 bubbles yield nothing.
func Split(b Bubble, pop, baseSpeed float64) []Bubble {
	if b.Size <= 1 {
		return nil
	}
	speed := math.Abs(b.VX)
	if speed == 0 {
		speed = baseSpeed
	}
	child := Bubble{Size: b.Size - 1, X: b.X, Y: b.Y, VY: -pop}
	left, right := child, child
	left.VX = -speed
	right.VX = speed
	return []Bubble{left, right}
}

// stepBubble integrates one tick of motion and resolves floor, wall and
// ceiling contacts inside a w×h field.
func stepBubble(b *Bubble, w, h, gravity float64) {
	b.VY += gravity
	b.X += b.VX
	b.Y += b.VY

	r := b.Side() / 2
	if b.Y+r >= h {
		b.Y = h - r
		b.VY = -bounceVelocity(b.Size, gravity)
	}
	if b.Y-r < 0 {
		b.Y = r
		b.VY = math.Abs(b.VY)
	}
	if b.X-r < 0 {
		b.X = r
		b.VX = math.Abs(b.VX)
	}
	if b.X+r > w {
		b.X = w - r
		b.VX = -math.Abs(b.VX)
	}
}

// hitPair is one resolved bullet/bubble collision.
type hitPair struct {
	bullet, bubble int
}

// resolveHits matches bullets to bubbles for one tick. Bullets are
// processed in order; each takes the overlapping bubble whose centre is
// closest to its own, lowest index on ties. A bubble is hit by at most
// one bullet and a bullet hits at most one bubble.
func resolveHits(bullets []Bullet, bubbles []Bubble) []hitPair {
	taken := make([]bool, len(bubbles))
	var hits []hitPair
	for i, s := range bullets {
		box := s.Box()
		best := -1
		bestDist := math.Inf(1)
		for j, b := range bubbles {
			if taken[j] || !box.Intersects(b.Box()) {
				continue
			}
			dx := b.X - s.X
			dy := b.Y - s.Y
			if d := dx*dx + dy*dy; d < bestDist {
				best, bestDist = j, d
			}
		}
		if best >= 0 {
			taken[best] = true
			hits = append(hits, hitPair{bullet: i, bubble: best})
		}
	}
	return hits
}
