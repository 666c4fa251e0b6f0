package thicket

// SpritePipeID routes sprites to the sprite render pipe.
const SpritePipeID = "sprite"

// Sprite is a drawable container rendering a textured quad. The anchor places
// the local origin within the quad: (0, 0) is the top-left corner, (0.5, 0.5)
// the center.
type Sprite struct {
	Container
	viewState

	texture *Texture

	// Anchor moves the quad relative to the local origin, in fractions of
	// the texture frame. Mutating it is a shape change.
	Anchor ObservablePoint
}

// NewSprite creates a sprite node drawing the given texture.
func NewSprite(label string, tex *Texture) *Sprite {
	s := &Sprite{texture: tex}
	initContainer(&s.Container, label)
	s.initView(true)
	s.Container.view = s
	s.Anchor.bind(0, 0, s.Container.onViewUpdate)
	return s
}

// Texture returns the sprite's texture.
func (s *Sprite) Texture() *Texture { return s.texture }

// SetTexture swaps the sprite's texture. A source change breaks batch
// compatibility, so the owning group re-validates this sprite on the next
// pass.
func (s *Sprite) SetTexture(tex *Texture) {
	if s.texture == tex {
		return
	}
	s.texture = tex
	s.Container.onViewUpdate()
}

// SetBatched toggles batch eligibility. Structural for the instruction list.
func (s *Sprite) SetBatched(batched bool) {
	if s.batched == batched {
		return
	}
	s.batched = batched
	s.Container.onViewUpdate()
}

// RenderPipeID identifies the sprite render pipe.
func (s *Sprite) RenderPipeID() string { return SpritePipeID }

// UpdateBounds recomputes local bounds from the texture frame and anchor.
func (s *Sprite) UpdateBounds() {
	s.bounds.Clear()
	if s.texture == nil {
		return
	}
	w := s.texture.Width
	h := s.texture.Height
	ox := -s.Anchor.x * w
	oy := -s.Anchor.y * h
	s.bounds.Set(ox, oy, ox+w, oy+h)
}

// Bounds returns cached local bounds, recomputing only after shape changes.
func (s *Sprite) Bounds() *Bounds {
	return s.cachedBounds(s.viewTick, s.UpdateBounds)
}

// ContainsPoint hit-tests a local-space point against the sprite's quad.
func (s *Sprite) ContainsPoint(x, y float64) bool {
	return s.Bounds().Contains(x, y)
}

// quadCorners returns the four local corners (TL, TR, BL, BR) of the quad.
func (s *Sprite) quadCorners() (lx, ly [4]float64) {
	b := s.Bounds()
	lx = [4]float64{b.MinX, b.MaxX, b.MinX, b.MaxX}
	ly = [4]float64{b.MinY, b.MinY, b.MaxY, b.MaxY}
	return lx, ly
}
