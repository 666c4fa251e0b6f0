package thicket

// Boundable is implemented by drawable content that knows its own local-space
// extent. Bounds are local only: composition with ancestor transforms happens
// at draw time through the world matrix.
type Boundable interface {
	// UpdateBounds recomputes local bounds unconditionally.
	UpdateBounds()
	// Bounds returns cached local bounds, recomputing them only when a shape
	// mutation has invalidated the cache.
	Bounds() *Bounds
	// ContainsPoint hit-tests a point in local bounds space.
	ContainsPoint(x, y float64) bool
}

// Batchable describes how a view is routed to its render pipe.
type Batchable interface {
	// RenderPipeID identifies the render pipe that draws this view.
	RenderPipeID() string
	// Batched reports whether the view is eligible for batch merging.
	Batched() bool
}

// View is the contract every drawable content type fulfills. Concrete types
// (Sprite, Mesh) embed both Container and viewState; the Container's view
// field points back at the concrete type.
type View interface {
	Boundable
	Batchable

	state() *viewState
}

// viewState carries the bookkeeping shared by all views: the cached bounds
// with the change tick it was computed at, batch eligibility, pixel snapping,
// and the per-renderer GPU-data ownership map keyed by renderer uid.
type viewState struct {
	batched     bool
	roundPixels bool

	// boundsTick is the container's viewTick value at the last bounds
	// recompute. The tick advances on every shape mutation, so a mismatch
	// means the cache is stale.
	boundsTick uint32
	bounds     Bounds

	// gpuOwners maps renderer uid to the pipe holding this view's pooled
	// GPU-side record for that renderer. Entries appear lazily on first
	// render and are released on destroy.
	gpuOwners map[uint32]RenderPipe

	// lastUsed is the frame stamp of the most recent add or update,
	// for eviction bookkeeping.
	lastUsed uint32
}

func (v *viewState) initView(batched bool) {
	v.batched = batched
	// Sentinel: no tick value matches, so the first Bounds call recomputes.
	v.boundsTick = ^uint32(0)
	v.bounds = EmptyBounds()
}

func (v *viewState) state() *viewState { return v }

// Batched reports whether the view may merge into shared batches.
func (v *viewState) Batched() bool { return v.batched }

// RoundPixels reports whether vertex positions snap to whole pixels.
func (v *viewState) RoundPixels() bool { return v.roundPixels }

// SetRoundPixels toggles pixel snapping. Takes effect on the next vertex
// write, so no invalidation is needed here beyond the usual transform path.
func (v *viewState) SetRoundPixels(round bool) { v.roundPixels = round }

// cachedBounds returns the cached bounds, recomputing via update only when
// the container's change tick has advanced past the cached value. update must
// write into v.bounds.
func (v *viewState) cachedBounds(tick uint32, update func()) *Bounds {
	if v.boundsTick != tick {
		update()
		v.boundsTick = tick
	}
	return &v.bounds
}

// registerGPUData records that pipe holds a GPU record for this view under
// the given renderer identity.
func (v *viewState) registerGPUData(rendererUID uint32, pipe RenderPipe) {
	if v.gpuOwners == nil {
		v.gpuOwners = make(map[uint32]RenderPipe, 1)
	}
	v.gpuOwners[rendererUID] = pipe
}

// releaseViewData asks every pipe holding GPU data for this view to release
// its pooled record. Called from Container.Destroy.
func releaseViewData(c *Container) {
	vs := c.view.state()
	for _, pipe := range vs.gpuOwners {
		pipe.DestroyRenderable(c)
	}
	vs.gpuOwners = nil
}
