package thicket

import "github.com/hajimehoshi/ebiten/v2"

// meshRecord is the pooled GPU-side record for one mesh under one renderer.
// Meshes always render standalone; the record exists for validation and
// lifecycle bookkeeping.
type meshRecord struct {
	vertCount int
	indCount  int
	source    *TextureSource
}

// meshPipe renders triangle-list meshes as standalone draw instructions.
type meshPipe struct {
	r       *Renderer
	records slotTable[*meshRecord]
	pool    *Pool[*meshRecord]
}

func newMeshPipe(r *Renderer) RenderPipe {
	return &meshPipe{
		r: r,
		pool: NewPool(
			func() *meshRecord { return &meshRecord{} },
			func(rec *meshRecord) { *rec = meshRecord{} },
		),
	}
}

func (p *meshPipe) mesh(c *Container) *Mesh {
	return c.view.(*Mesh)
}

func (p *meshPipe) ValidateRenderable(c *Container) bool {
	m := p.mesh(c)
	rec, ok := p.records.get(c.uid)
	if !ok {
		return true
	}
	return rec.vertCount != len(m.vertices) ||
		rec.indCount != len(m.indices) ||
		rec.source != m.source
}

func (p *meshPipe) AddRenderable(c *Container, is *InstructionSet) {
	m := p.mesh(c)
	rec, ok := p.records.get(c.uid)
	if !ok {
		rec = p.pool.Acquire()
		p.records.put(c.uid, rec)
		m.registerGPUData(p.r.uid, p)
	}
	rec.vertCount = len(m.vertices)
	rec.indCount = len(m.indices)
	rec.source = m.source
	m.lastUsed = p.r.frame

	p.r.batcher.flush(is)
	p.r.batcher.setBlend(is, c.blend)
	is.add(Instruction{Type: InstructionDraw, View: c})
}

func (p *meshPipe) UpdateRenderable(c *Container) {
	rec, ok := p.records.get(c.uid)
	if !ok {
		return
	}
	m := p.mesh(c)
	rec.source = m.source
	m.lastUsed = p.r.frame
	// Vertex data is read live at execution time; nothing else to refresh.
}

func (p *meshPipe) DestroyRenderable(c *Container) {
	rec, ok := p.records.remove(c.uid)
	if !ok {
		return
	}
	p.pool.Release(rec)
	if c.view != nil {
		delete(c.view.state().gpuOwners, p.r.uid)
	}
}

// Execute transforms the mesh's vertices by its world matrix and submits one
// DrawTriangles32 over its own source.
func (p *meshPipe) Execute(target *ebiten.Image, c *Container) {
	m := p.mesh(c)
	if m.source == nil || m.source.image == nil || len(m.vertices) == 0 || len(m.indices) == 0 {
		return
	}
	verts := m.transformedVertices()

	var op ebiten.DrawTrianglesOptions
	op.Blend = c.blend.EbitenBlend()
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha

	target.DrawTriangles32(verts, m.indices, m.source.image, &op)
}
