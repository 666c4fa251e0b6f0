package thicket

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// defaultSlotBudget is the number of distinct texture sources a batch may
// reference. The ebiten executor submits one source per DrawTriangles32, so
// the renderer batches with a budget of 1; array-texture backends can raise
// it.
const defaultSlotBudget = 1

// BatchRun is a contiguous index range within a Batch drawn against one
// texture source. Executors submit one draw per run; with a slot budget of 1
// a batch holds exactly one run.
type BatchRun struct {
	Source     *TextureSource
	IndexStart int
	IndexCount int
}

// Batch is a merged quad draw call: shared vertex and index buffers, the
// per-source index runs they split into, and one blend mode.
type Batch struct {
	verts   []ebiten.Vertex
	inds    []uint32
	sources []*TextureSource
	runs    []BatchRun
	blend   BlendMode

	// epoch advances every time the batch returns to the pool. A batch
	// element recorded against an earlier epoch points into contents that no
	// longer exist; writers must treat it as stale.
	epoch uint32
}

func (b *Batch) reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	for i := range b.sources {
		b.sources[i] = nil
	}
	b.sources = b.sources[:0]
	for i := range b.runs {
		b.runs[i] = BatchRun{}
	}
	b.runs = b.runs[:0]
	b.blend = BlendNormal
	b.epoch++
}

// Vertices returns the batch's vertex buffer.
func (b *Batch) Vertices() []ebiten.Vertex { return b.verts }

// Indices returns the batch's index buffer.
func (b *Batch) Indices() []uint32 { return b.inds }

// Blend returns the batch's blend mode.
func (b *Batch) Blend() BlendMode { return b.blend }

// Source returns the batch's first texture source. With the default slot
// budget of 1 it is the only one.
func (b *Batch) Source() *TextureSource {
	if len(b.sources) == 0 {
		return nil
	}
	return b.sources[0]
}

// Sources returns every texture source the batch references, in first-use
// order. The returned slice MUST NOT be mutated.
func (b *Batch) Sources() []*TextureSource { return b.sources }

// Runs returns the batch's per-source index runs in submission order. The
// returned slice MUST NOT be mutated.
func (b *Batch) Runs() []BatchRun { return b.runs }

// batchElement records where a view's quad lives inside a Batch, so the
// fast-path update can rewrite its vertices in place. The epoch pins the
// element to the batch contents it was written into: a view skipped by a
// later rebuild keeps its element, but the batch has been reset and refilled
// since, and writing at the stale offsets would corrupt another view's quad.
type batchElement struct {
	batch     *Batch
	epoch     uint32
	vertStart int
	indStart  int
}

// live reports whether the element still addresses the batch contents it was
// recorded against.
func (el *batchElement) live() bool {
	return el.batch != nil && el.epoch == el.batch.epoch
}

// Batcher accumulates compatible quads into shared batches during
// instruction collection. A batch continues only while the incoming quad's
// blend matches and its texture source fits the slot budget; anything else
// is a break, recorded in the instruction set.
type Batcher struct {
	slotBudget int
	pool       *Pool[*Batch]

	cur       *Batch
	lastBlend BlendMode
	haveBlend bool
}

func newBatcher(slotBudget int, pool *Pool[*Batch]) *Batcher {
	if slotBudget < 1 {
		slotBudget = 1
	}
	return &Batcher{slotBudget: slotBudget, pool: pool}
}

// begin resets per-rebuild state. Blend tracking restarts so the first
// instruction sequence always records its blend state explicitly.
func (b *Batcher) begin() {
	b.cur = nil
	b.haveBlend = false
}

// setBlend records a blend-state instruction when the mode differs from the
// one last recorded in this rebuild.
func (b *Batcher) setBlend(is *InstructionSet, blend BlendMode) {
	if b.haveBlend && blend == b.lastBlend {
		return
	}
	b.lastBlend = blend
	b.haveBlend = true
	is.add(Instruction{Type: InstructionBlend, Blend: blend})
}

// compatible reports whether src can join the accumulating batch.
func (b *Batcher) compatible(src *TextureSource) bool {
	for _, s := range b.cur.sources {
		if s == src {
			return true
		}
	}
	return len(b.cur.sources) < b.slotBudget
}

// add reserves a quad (4 vertices, 6 indices) for a view in the accumulating
// batch, breaking first if the blend or texture source is incompatible.
// The caller writes the vertex data into el.batch at el.vertStart.
func (b *Batcher) add(is *InstructionSet, src *TextureSource, blend BlendMode, el *batchElement) {
	if b.cur != nil && (blend != b.cur.blend || !b.compatible(src)) {
		b.flush(is)
	}
	if b.cur == nil {
		b.cur = b.pool.Acquire()
		b.cur.blend = blend
		b.setBlend(is, blend)
	}
	found := false
	for _, s := range b.cur.sources {
		if s == src {
			found = true
			break
		}
	}
	if !found {
		b.cur.sources = append(b.cur.sources, src)
	}

	el.batch = b.cur
	el.epoch = b.cur.epoch
	el.vertStart = len(b.cur.verts)
	el.indStart = len(b.cur.inds)

	base := uint32(el.vertStart)
	b.cur.verts = append(b.cur.verts,
		ebiten.Vertex{}, ebiten.Vertex{}, ebiten.Vertex{}, ebiten.Vertex{})
	// Two triangles: TL-TR-BL, TR-BR-BL.
	b.cur.inds = append(b.cur.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)

	if n := len(b.cur.runs); n > 0 && b.cur.runs[n-1].Source == src {
		b.cur.runs[n-1].IndexCount += 6
	} else {
		b.cur.runs = append(b.cur.runs, BatchRun{Source: src, IndexStart: el.indStart, IndexCount: 6})
	}
}

// flush ends the accumulating batch, appending it as a batch instruction.
// This is the true break the instruction set records: downstream state may
// differ across it.
func (b *Batcher) flush(is *InstructionSet) {
	if b.cur == nil {
		return
	}
	if len(b.cur.verts) == 0 {
		b.pool.Release(b.cur)
		b.cur = nil
		return
	}
	is.add(Instruction{Type: InstructionBatch, Batch: b.cur})
	b.cur = nil
}

// abort discards the accumulating batch without recording it. Used when a
// rebuild fails partway and its partial results are being thrown away.
func (b *Batcher) abort() {
	if b.cur != nil {
		b.pool.Release(b.cur)
		b.cur = nil
	}
}

// writeQuadVertices fills a sprite's four vertices at verts[0:4] from its
// current world transform, texture frame, and premultiplied tint.
func writeQuadVertices(verts []ebiten.Vertex, s *Sprite) {
	lx, ly := s.quadCorners()

	t := s.worldTransform
	a, b, c, d, tx, ty := t[0], t[1], t[2], t[3], t[4], t[5]

	// Source UVs in pixel coordinates on the source image.
	tex := s.texture
	var sx, sy [4]float32
	if tex != nil {
		rx := float32(tex.X)
		ry := float32(tex.Y)
		rw := float32(tex.Width)
		rh := float32(tex.Height)
		sx = [4]float32{rx, rx + rw, rx, rx + rw}
		sy = [4]float32{ry, ry, ry + rh, ry + rh}
	}

	// Premultiplied RGBA.
	ca := float32(s.tint.A * s.worldAlpha)
	cr := float32(s.tint.R) * ca
	cg := float32(s.tint.G) * ca
	cb := float32(s.tint.B) * ca

	round := s.roundPixels
	for i := 0; i < 4; i++ {
		dx := a*lx[i] + c*ly[i] + tx
		dy := b*lx[i] + d*ly[i] + ty
		if round {
			dx = math.Round(dx)
			dy = math.Round(dy)
		}
		verts[i] = ebiten.Vertex{
			DstX:   float32(dx),
			DstY:   float32(dy),
			SrcX:   sx[i],
			SrcY:   sy[i],
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}
}
