package thicket

// RenderGroup is a cache boundary over a subtree. It tracks which views have
// mutated since the last pass, owns the subtree's InstructionSet, and bubbles
// invalidation upward so the renderer can prune clean branches wholesale.
type RenderGroup struct {
	root *Container

	instructions InstructionSet

	// pending is the ordered collection of containers awaiting re-collection,
	// valid up to the index watermark. The backing storage is reused across
	// frames: processing resets index to zero instead of reallocating.
	pending []*Container
	index   int

	// structureDirty forces a full instruction rebuild instead of the
	// per-view fast path.
	structureDirty bool

	// dirty means this group or a descendant group needs processing.
	dirty bool

	childGroups []*RenderGroup
}

func newRenderGroup(root *Container) *RenderGroup {
	return &RenderGroup{root: root}
}

// Root returns the container that owns this group.
func (g *RenderGroup) Root() *Container { return g.root }

// InstructionSet returns the group's current instruction list.
func (g *RenderGroup) InstructionSet() *InstructionSet { return &g.instructions }

// onChildViewUpdate appends c to the pending collection at the current index
// watermark. The first pending update since the last pass marks the group
// dirty and bubbles upward.
func (g *RenderGroup) onChildViewUpdate(c *Container) {
	if g.index < len(g.pending) {
		g.pending[g.index] = c
	} else {
		g.pending = append(g.pending, c)
	}
	g.index++
	g.markDirty()
}

// onStructureChange marks the group for a full instruction rebuild.
// Idempotent within a frame.
func (g *RenderGroup) onStructureChange() {
	if g.structureDirty {
		return
	}
	g.structureDirty = true
	g.markDirty()
}

// markDirty walks to the root group setting dirty flags, stopping early at
// the first group already marked — ancestors above it are already flagged.
func (g *RenderGroup) markDirty() {
	for rg := g; rg != nil && !rg.dirty; rg = rg.parentGroup() {
		rg.dirty = true
	}
}

// parentGroup returns the nearest enclosing render group, or nil at the root.
func (g *RenderGroup) parentGroup() *RenderGroup {
	return g.root.parentRenderGroup
}

func (g *RenderGroup) addChildGroup(child *RenderGroup) {
	for _, cg := range g.childGroups {
		if cg == child {
			return
		}
	}
	g.childGroups = append(g.childGroups, child)
}

func (g *RenderGroup) removeChildGroup(child *RenderGroup) {
	for i, cg := range g.childGroups {
		if cg == child {
			copy(g.childGroups[i:], g.childGroups[i+1:])
			g.childGroups[len(g.childGroups)-1] = nil
			g.childGroups = g.childGroups[:len(g.childGroups)-1]
			return
		}
	}
}

// resetPending clears processed entries and rewinds the watermark, keeping
// the slice's storage. Entries are nilled so processed containers are not
// retained past the frame.
func (g *RenderGroup) resetPending() {
	for i := 0; i < g.index && i < len(g.pending); i++ {
		g.pending[i] = nil
	}
	g.index = 0
}

// pendingViews returns the valid portion of the pending collection.
func (g *RenderGroup) pendingViews() []*Container {
	n := g.index
	if n > len(g.pending) {
		n = len(g.pending)
	}
	return g.pending[:n]
}
