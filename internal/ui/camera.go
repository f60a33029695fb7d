package ui

// cellWidth is the number of terminal columns per map cell: the glyph and a space.
const cellWidth = 2

// Camera translates between map coordinates and screen coordinates for a
// viewport smaller than the map.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera with the given viewport size.
func NewCamera(viewW, viewH int) *Camera {
	return &Camera{ViewWidth: viewW, ViewHeight: viewH}
}

// Center repositions the camera so that (cx, cy) is in the middle, without
// scrolling past the edges of a size×size map.
func (c *Camera) Center(cx, cy, size int) {
	cols := c.ViewWidth / cellWidth
	c.OffsetX = clamp(cx-cols/2, 0, size-cols)
	c.OffsetY = clamp(cy-c.ViewHeight/2, 0, size-c.ViewHeight)
}

// WorldToScreen converts map (wx, wy) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = (wx - c.OffsetX) * cellWidth
	sy = wy - c.OffsetY
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// clamp limits v to [lo, hi]; when hi < lo the range collapses to lo.
func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
