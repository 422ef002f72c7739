package game

// Note is a single falling unit in one lane.
type Note struct {
	ID        uint64  // Spawn sequence, lower spawned earlier
	Column    int     // The lane index
	X         float64 // Left edge, fixed at spawn
	Position  float64 // Distance fallen since spawn
	SpawnTick uint64  // Engine tick the note was created on
	Shape     Shape

	// This is state
	Hit bool // Set once, when struck
}

// Center returns the horizontal centre of the note.
func (n *Note) Center() float64 {
	return n.X + n.Shape.Width()/2
}

// LaneWidth is the width of one of columnCount equal lanes.
func LaneWidth(viewportWidth float64, columnCount int) float64 {
	if columnCount <= 0 {
		return 0
	}
	return viewportWidth / float64(columnCount)
}

// LaneCenter is the horizontal centre of a lane.
func LaneCenter(column int, viewportWidth float64, columnCount int) float64 {
	lw := LaneWidth(viewportWidth, columnCount)
	return lw*float64(column) + lw/2
}

// LaneX places a note of noteWidth centred in its lane.
func LaneX(column int, viewportWidth, noteWidth float64, columnCount int) float64 {
	return LaneCenter(column, viewportWidth, columnCount) - noteWidth/2
}
