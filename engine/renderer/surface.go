package renderer

import "github.com/spaghettifunk/wireframe/engine/math"

// Segment is a 2D line in surface pixel coordinates.
type Segment struct {
	From math.Vec2
	To   math.Vec2
}

// Surface receives the projected wireframe of a frame. The pipeline only ever
// draws lines; whatever rasterizes them lives behind this interface.
// The slice passed to DrawSegments is reused by the next frame.
type Surface interface {
	Size() (width, height int)
	Clear()
	DrawSegments(segments []Segment)
}
