package thicket

import "github.com/hajimehoshi/ebiten/v2"

// TextureSource is a GPU-resident image that one or more Textures reference.
// Batch compatibility is decided by source identity: two textures sharing a
// source can merge into one draw call.
type TextureSource struct {
	uid    uint32
	image  *ebiten.Image
	width  float64
	height float64
}

// NewTextureSource wraps an ebiten image as a texture source.
func NewTextureSource(img *ebiten.Image) *TextureSource {
	s := &TextureSource{uid: nextUID(), image: img}
	if img != nil {
		b := img.Bounds()
		s.width = float64(b.Dx())
		s.height = float64(b.Dy())
	}
	return s
}

// UID returns the source's stable numeric identity.
func (s *TextureSource) UID() uint32 { return s.uid }

// Image returns the underlying ebiten image.
func (s *TextureSource) Image() *ebiten.Image { return s.image }

// Width returns the source width in pixels.
func (s *TextureSource) Width() float64 { return s.width }

// Height returns the source height in pixels.
func (s *TextureSource) Height() float64 { return s.height }

// Texture is a rectangular region of a TextureSource, in pixel coordinates.
type Texture struct {
	Source *TextureSource
	// Frame in source pixels. SrcX/SrcY on batch vertices use these directly.
	X, Y, Width, Height float64
}

// NewTexture creates a texture covering the full source.
func NewTexture(source *TextureSource) *Texture {
	return &Texture{Source: source, Width: source.width, Height: source.height}
}

// NewTextureRegion creates a texture covering a sub-rectangle of source.
func NewTextureRegion(source *TextureSource, x, y, w, h float64) *Texture {
	return &Texture{Source: source, X: x, Y: y, Width: w, Height: h}
}
