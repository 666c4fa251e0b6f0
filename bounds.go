package thicket

import "math"

// Bounds is an axis-aligned bounding rectangle in local space. The zero value
// is NOT empty; use EmptyBounds or Clear to get the empty state. An empty
// Bounds is excluded from merges.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyBounds returns bounds in the empty state (min = +Inf, max = -Inf).
func EmptyBounds() Bounds {
	return Bounds{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
}

// Clear resets the bounds to the empty state.
func (b *Bounds) Clear() {
	*b = EmptyBounds()
}

// IsEmpty reports whether the bounds contain no area.
func (b *Bounds) IsEmpty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// Width returns the horizontal extent, or 0 for empty bounds.
func (b *Bounds) Width() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.MaxX - b.MinX
}

// Height returns the vertical extent, or 0 for empty bounds.
func (b *Bounds) Height() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.MaxY - b.MinY
}

// Set assigns explicit extents.
func (b *Bounds) Set(minX, minY, maxX, maxY float64) {
	b.MinX = minX
	b.MinY = minY
	b.MaxX = maxX
	b.MaxY = maxY
}

// AddFrame grows the bounds to include the rectangle (x0, y0)-(x1, y1).
func (b *Bounds) AddFrame(x0, y0, x1, y1 float64) {
	if x0 < b.MinX {
		b.MinX = x0
	}
	if y0 < b.MinY {
		b.MinY = y0
	}
	if x1 > b.MaxX {
		b.MaxX = x1
	}
	if y1 > b.MaxY {
		b.MaxY = y1
	}
}

// AddPoint grows the bounds to include a single point.
func (b *Bounds) AddPoint(x, y float64) {
	b.AddFrame(x, y, x, y)
}

// Union grows the bounds to include other. Empty operands are ignored.
func (b *Bounds) Union(other *Bounds) {
	if other.IsEmpty() {
		return
	}
	b.AddFrame(other.MinX, other.MinY, other.MaxX, other.MaxY)
}

// Contains reports whether the point lies inside the bounds.
// Points on the edge are considered inside.
func (b *Bounds) Contains(x, y float64) bool {
	return !b.IsEmpty() &&
		x >= b.MinX && x <= b.MaxX &&
		y >= b.MinY && y <= b.MaxY
}
