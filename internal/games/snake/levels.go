package snake

// Layout is a wall pattern for one level. '#' marks a wall cell; every
// other rune is open floor. Rows shorter than the grid are padded with floor.
type Layout struct {
	Name  string
	Walls []string
}

// layouts is the ordered set of wall patterns. Levels cycle through it.
var layouts = []Layout{
	{Name: "Open Field"},
	{
		Name: "Pillars",
		Walls: []string{
			"",
			"",
			"",
			"",
			"",
			"     #             #",
			"     #             #",
			"     #             #",
			"",
			"",
			"",
			"",
			"",
			"",
			"",
			"",
			"",
			"     #             #",
			"     #             #",
			"     #             #",
		},
	},
	{
		Name: "Bars",
		Walls: []string{
			"",
			"",
			"",
			"",
			"    #################",
			"",
			"",
			"",
			"",
			"",
			"",
			"",
			"",
			"",
			"",
			"",
			"",
			"",
			"",
			"",
			"    #################",
		},
	},
	{
		Name: "Corners",
		Walls: []string{
			"",
			"",
			"  ######       ######",
			"  #                 #",
			"  #                 #",
			"",
			"",
			"",
			"",
			"",
			"",
			"",
			"",
			"",
			"",
			"",
			"",
			"",
			"",
			"  #                 #",
			"  #                 #",
			"  ######       ######",
		},
	},
	{
		Name: "Cross",
		Walls: []string{
			"",
			"",
			"",
			"            #",
			"            #",
			"            #",
			"            #",
			"            #",
			"",
			"",
			"",
			"   #####         #####",
			"",
			"",
			"",
			"",
			"",
			"            #",
			"            #",
			"            #",
			"            #",
			"            #",
		},
	},
}

// LayoutCount returns the number of distinct wall layouts.
func LayoutCount() int {
	return len(layouts)
}

// layoutFor returns the layout used by a 1-based level.
func layoutFor(level int) Layout {
	return layouts[(level-1)%len(layouts)]
}
