package thicket

import "github.com/hajimehoshi/ebiten/v2"

// RenderPipe handles one renderable type, identified by the view's
// RenderPipeID. Pipes own the per-view pooled GPU-side records for their
// renderer instance.
type RenderPipe interface {
	// ValidateRenderable reports whether the view's batching eligibility or
	// batch-breaking identity (texture source, vertex/index counts) changed
	// since it was last added. True forces a full re-addition of the owning
	// group's instructions.
	ValidateRenderable(c *Container) bool

	// AddRenderable adds the view to the instruction set, merging it into
	// the shared batcher when batchable, or breaking the batch and emitting
	// a standalone draw instruction otherwise.
	AddRenderable(c *Container, is *InstructionSet)

	// UpdateRenderable is the fast path for views whose batch record exists
	// and only needs a vertex/pointer refresh. It must not re-run
	// texture-compatibility checks.
	UpdateRenderable(c *Container)

	// DestroyRenderable releases the view's pooled record. Idempotent.
	DestroyRenderable(c *Container)

	// Execute draws a standalone (unbatched) view into the target.
	Execute(target *ebiten.Image, c *Container)
}

// PipeRegistry maps render pipe ids to pipe constructors. A registry is an
// explicit object handed to NewRenderer and resolved exactly once per
// renderer construction — there is no ambient global pipe table.
type PipeRegistry struct {
	ctors map[string]func(*Renderer) RenderPipe
}

// NewPipeRegistry creates an empty registry.
func NewPipeRegistry() *PipeRegistry {
	return &PipeRegistry{ctors: make(map[string]func(*Renderer) RenderPipe)}
}

// Register adds a pipe constructor under the given id, replacing any
// previous registration.
func (r *PipeRegistry) Register(id string, ctor func(*Renderer) RenderPipe) {
	r.ctors[id] = ctor
}

// DefaultPipeRegistry returns a registry with the built-in sprite and mesh
// pipes registered.
func DefaultPipeRegistry() *PipeRegistry {
	r := NewPipeRegistry()
	r.Register(SpritePipeID, newSpritePipe)
	r.Register(MeshPipeID, newMeshPipe)
	return r
}
