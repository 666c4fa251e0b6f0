package thicket

import "github.com/hajimehoshi/ebiten/v2"

// MeshPipeID routes meshes to the mesh render pipe.
const MeshPipeID = "mesh"

// Mesh is a drawable container rendering an arbitrary triangle list over its
// own texture source. Meshes own their source image, so they never merge into
// shared batches; each mesh is a standalone draw instruction.
//
// Vertex DstX/DstY are local-space positions; SrcX/SrcY address the source in
// pixels. The mesh transforms vertices by its world matrix at execution time.
type Mesh struct {
	Container
	viewState

	vertices []ebiten.Vertex
	indices  []uint32
	source   *TextureSource

	// transformed is the preallocated buffer world-space vertices are
	// written into at execution time.
	transformed []ebiten.Vertex
}

// NewMesh creates a mesh node over the given source, vertices, and indices.
func NewMesh(label string, source *TextureSource, vertices []ebiten.Vertex, indices []uint32) *Mesh {
	m := &Mesh{source: source, vertices: vertices, indices: indices}
	initContainer(&m.Container, label)
	m.initView(false)
	m.Container.view = m
	return m
}

// Vertices returns the mesh's vertex slice. Mutate through SetGeometry so the
// render group hears about it.
func (m *Mesh) Vertices() []ebiten.Vertex { return m.vertices }

// Indices returns the mesh's index slice.
func (m *Mesh) Indices() []uint32 { return m.indices }

// Source returns the mesh's texture source.
func (m *Mesh) Source() *TextureSource { return m.source }

// SetGeometry replaces the mesh's vertices and indices. Count changes force
// the owning group to re-add the mesh on the next pass.
func (m *Mesh) SetGeometry(vertices []ebiten.Vertex, indices []uint32) {
	m.vertices = vertices
	m.indices = indices
	m.Container.onViewUpdate()
}

// SetSource swaps the mesh's texture source.
func (m *Mesh) SetSource(source *TextureSource) {
	if m.source == source {
		return
	}
	m.source = source
	m.Container.onViewUpdate()
}

// RenderPipeID identifies the mesh render pipe.
func (m *Mesh) RenderPipeID() string { return MeshPipeID }

// UpdateBounds recomputes the local AABB by scanning vertex positions.
func (m *Mesh) UpdateBounds() {
	m.bounds.Clear()
	for i := range m.vertices {
		m.bounds.AddPoint(float64(m.vertices[i].DstX), float64(m.vertices[i].DstY))
	}
}

// Bounds returns cached local bounds, recomputing only after shape changes.
func (m *Mesh) Bounds() *Bounds {
	return m.cachedBounds(m.viewTick, m.UpdateBounds)
}

// ContainsPoint hit-tests a local-space point against the mesh AABB.
func (m *Mesh) ContainsPoint(x, y float64) bool {
	return m.Bounds().Contains(x, y)
}

// transformedVertices applies the world transform and tint to the mesh's
// vertices, writing into the reused buffer.
//
// Color components multiply (vertex color * tint); the tint's alpha has
// worldAlpha baked in already.
func (m *Mesh) transformedVertices() []ebiten.Vertex {
	if cap(m.transformed) < len(m.vertices) {
		m.transformed = make([]ebiten.Vertex, len(m.vertices))
	}
	m.transformed = m.transformed[:len(m.vertices)]

	t := m.worldTransform
	a, b, c, d, tx, ty := t[0], t[1], t[2], t[3], t[4], t[5]
	tint := m.tint
	cr := float32(tint.R)
	cg := float32(tint.G)
	cb := float32(tint.B)
	ca := float32(tint.A * m.worldAlpha)

	for i := range m.vertices {
		src := &m.vertices[i]
		ox := float64(src.DstX)
		oy := float64(src.DstY)
		m.transformed[i] = ebiten.Vertex{
			DstX:   float32(a*ox + c*oy + tx),
			DstY:   float32(b*ox + d*oy + ty),
			SrcX:   src.SrcX,
			SrcY:   src.SrcY,
			ColorR: src.ColorR * cr * ca,
			ColorG: src.ColorG * cg * ca,
			ColorB: src.ColorB * cb * ca,
			ColorA: src.ColorA * ca,
		}
	}
	return m.transformed
}
