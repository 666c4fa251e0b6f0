package thicket

// ObservablePoint is a 2D point that invokes a callback whenever either
// coordinate changes. Container uses it for Position, Scale, Skew, and Pivot;
// Sprite uses it for Anchor. Setting a coordinate to its current value does
// not fire the callback.
type ObservablePoint struct {
	x, y     float64
	onChange func()
}

// bind initializes the point's coordinates and change callback without firing.
func (p *ObservablePoint) bind(x, y float64, onChange func()) {
	p.x = x
	p.y = y
	p.onChange = onChange
}

// X returns the x coordinate.
func (p *ObservablePoint) X() float64 { return p.x }

// Y returns the y coordinate.
func (p *ObservablePoint) Y() float64 { return p.y }

// Set sets both coordinates, firing the callback at most once.
func (p *ObservablePoint) Set(x, y float64) {
	if p.x == x && p.y == y {
		return
	}
	p.x = x
	p.y = y
	if p.onChange != nil {
		p.onChange()
	}
}

// SetX sets the x coordinate.
func (p *ObservablePoint) SetX(x float64) {
	if p.x == x {
		return
	}
	p.x = x
	if p.onChange != nil {
		p.onChange()
	}
}

// SetY sets the y coordinate.
func (p *ObservablePoint) SetY(y float64) {
	if p.y == y {
		return
	}
	p.y = y
	if p.onChange != nil {
		p.onChange()
	}
}
