package pang

// spawn places one bubble at level start. X is a fraction of the field
// width; Dir is the initial horizontal heading (-1 or 1).
type spawn struct {
	Size int
	X    float64
	Dir  float64
}

// Layout is the bubble set for one level.
type Layout struct {
	Name    string
	Bubbles []spawn
}

// layouts is the ordered level set. Once exhausted it repeats faster.
var layouts = []Layout{
	{Name: "Warm Up", Bubbles: []spawn{{Size: 2, X: 0.5, Dir: 1}}},
	{Name: "Mount Fuji", Bubbles: []spawn{{Size: 3, X: 0.3, Dir: 1}}},
	{Name: "Twins", Bubbles: []spawn{{Size: 3, X: 0.25, Dir: -1}, {Size: 3, X: 0.75, Dir: 1}}},
	{Name: "Big One", Bubbles: []spawn{{Size: 4, X: 0.5, Dir: -1}}},
	{Name: "Crowd", Bubbles: []spawn{{Size: 2, X: 0.15, Dir: 1}, {Size: 3, X: 0.5, Dir: -1}, {Size: 2, X: 0.85, Dir: -1}}},
	{Name: "Ayers Rock", Bubbles: []spawn{{Size: 4, X: 0.3, Dir: 1}, {Size: 4, X: 0.7, Dir: -1}}},
}

// LayoutCount returns the number of level layouts.
func LayoutCount() int {
	return len(layouts)
}

// speedMultiplier scales horizontal bubble speed on repeated cycles.
func speedMultiplier(level int, perLoop, maxMult float64) float64 {
	cycle := (level - 1) / len(layouts)
	return min(maxMult, 1+perLoop*float64(cycle))
}
