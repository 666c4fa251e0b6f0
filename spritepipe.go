package thicket

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// spriteRecord is the pooled GPU-side record for one sprite under one
// renderer: where its quad lives in a batch, plus the identity fields
// validation compares against.
type spriteRecord struct {
	batchElement
	source  *TextureSource
	batched bool
}

// spritePipe batches sprite quads, falling back to single DrawImage calls
// for sprites opted out of batching.
type spritePipe struct {
	r       *Renderer
	records slotTable[*spriteRecord]
	pool    *Pool[*spriteRecord]
}

func newSpritePipe(r *Renderer) RenderPipe {
	return &spritePipe{
		r: r,
		pool: NewPool(
			func() *spriteRecord { return &spriteRecord{} },
			func(rec *spriteRecord) { *rec = spriteRecord{} },
		),
	}
}

func (p *spritePipe) sprite(c *Container) *Sprite {
	return c.view.(*Sprite)
}

func (p *spritePipe) ValidateRenderable(c *Container) bool {
	s := p.sprite(c)
	rec, ok := p.records.get(c.uid)
	if !ok {
		return true
	}
	var src *TextureSource
	if s.texture != nil {
		src = s.texture.Source
	}
	return rec.source != src || rec.batched != s.batched
}

func (p *spritePipe) AddRenderable(c *Container, is *InstructionSet) {
	s := p.sprite(c)
	rec, ok := p.records.get(c.uid)
	if !ok {
		rec = p.pool.Acquire()
		p.records.put(c.uid, rec)
		s.registerGPUData(p.r.uid, p)
	}

	var src *TextureSource
	if s.texture != nil {
		src = s.texture.Source
	}
	rec.source = src
	rec.batched = s.batched
	rec.batch = nil
	s.lastUsed = p.r.frame

	if s.batched && src != nil {
		p.r.batcher.add(is, src, c.blend, &rec.batchElement)
		writeQuadVertices(rec.batch.verts[rec.vertStart:rec.vertStart+4], s)
		return
	}

	// Batch break: flush whatever was accumulating before the standalone
	// draw, and record the blend switch if it differs.
	p.r.batcher.flush(is)
	p.r.batcher.setBlend(is, c.blend)
	is.add(Instruction{Type: InstructionDraw, View: c})
}

func (p *spritePipe) UpdateRenderable(c *Container) {
	rec, ok := p.records.get(c.uid)
	if !ok {
		return
	}
	s := p.sprite(c)
	s.lastUsed = p.r.frame
	if rec.batch == nil {
		// Standalone sprites read live state at execution time.
		return
	}
	if !rec.live() {
		// A rebuild that skipped this sprite (hidden ancestor, non-renderable
		// subtree) released and refilled the batch; its old offsets now hold
		// some other sprite's quad. Drop the element — the next rebuild that
		// collects this sprite re-records it.
		rec.batch = nil
		return
	}
	writeQuadVertices(rec.batch.verts[rec.vertStart:rec.vertStart+4], s)
}

func (p *spritePipe) DestroyRenderable(c *Container) {
	rec, ok := p.records.remove(c.uid)
	if !ok {
		return
	}
	p.pool.Release(rec)
	if c.view != nil {
		delete(c.view.state().gpuOwners, p.r.uid)
	}
}

// Execute draws a standalone sprite with a single DrawImage.
func (p *spritePipe) Execute(target *ebiten.Image, c *Container) {
	s := p.sprite(c)
	tex := s.texture
	if tex == nil || tex.Source == nil || tex.Source.image == nil {
		return
	}

	sub := tex.Source.image.SubImage(image.Rect(
		int(tex.X), int(tex.Y),
		int(tex.X+tex.Width), int(tex.Y+tex.Height),
	)).(*ebiten.Image)

	var op ebiten.DrawImageOptions

	// Anchor offset, then the world transform.
	b := s.Bounds()
	op.GeoM.Translate(b.MinX, b.MinY)
	t := s.worldTransform
	var m ebiten.GeoM
	m.SetElement(0, 0, t[0])
	m.SetElement(1, 0, t[1])
	m.SetElement(0, 1, t[2])
	m.SetElement(1, 1, t[3])
	m.SetElement(0, 2, t[4])
	m.SetElement(1, 2, t[5])
	op.GeoM.Concat(m)

	a := float32(s.tint.A * s.worldAlpha)
	op.ColorScale.Scale(float32(s.tint.R)*a, float32(s.tint.G)*a, float32(s.tint.B)*a, a)
	op.Blend = c.blend.EbitenBlend()

	target.DrawImage(sub, &op)
}
