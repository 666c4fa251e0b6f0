package thicket

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Renderer drives render passes over a container tree: it updates transforms,
// rebuilds or refreshes dirty render groups, and executes the resulting
// instruction sets against an ebiten image. Pipes and pools belong to the
// renderer instance; two renderers never share per-view GPU records.
type Renderer struct {
	uid   uint32
	pipes map[string]RenderPipe

	batcher   *Batcher
	batchPool *Pool[*Batch]

	frame uint32
	debug bool
	stats frameStats
}

type rendererConfig struct {
	slotBudget int
}

// RendererOption configures a Renderer at construction.
type RendererOption func(*rendererConfig)

// WithSlotBudget sets how many distinct texture sources one batch may
// reference. A batch above budget 1 keeps a single instruction and fast-path
// update surface but splits into one draw submission per source run; see
// [Batch.Runs].
func WithSlotBudget(n int) RendererOption {
	return func(cfg *rendererConfig) { cfg.slotBudget = n }
}

// NewRenderer creates a renderer, resolving every pipe in the registry
// exactly once.
func NewRenderer(reg *PipeRegistry, opts ...RendererOption) (*Renderer, error) {
	if reg == nil {
		return nil, errors.New("thicket: nil pipe registry")
	}
	cfg := rendererConfig{slotBudget: defaultSlotBudget}
	for _, opt := range opts {
		opt(&cfg)
	}
	r := &Renderer{
		uid:   nextUID(),
		pipes: make(map[string]RenderPipe, len(reg.ctors)),
	}
	r.batchPool = NewPool(
		func() *Batch { return &Batch{} },
		func(b *Batch) { b.reset() },
	)
	r.batcher = newBatcher(cfg.slotBudget, r.batchPool)
	for id, ctor := range reg.ctors {
		r.pipes[id] = ctor(r)
	}
	return r, nil
}

// UID returns the renderer's identity, the key namespace for per-view GPU
// data.
func (r *Renderer) UID() uint32 { return r.uid }

// SetDebugMode enables per-frame stats logging to stderr and loud panics on
// destroyed-node access.
func (r *Renderer) SetDebugMode(enabled bool) {
	r.debug = enabled
	debugEnabled = enabled
}

// Render runs one full pass: fires OnRender hooks, updates world transforms,
// processes dirty render groups, and executes the root group's instruction
// set into target. A pass is all-or-nothing: on error no partial instruction
// list is cached and nothing is drawn.
func (r *Renderer) Render(target *ebiten.Image, root *Container) error {
	is, err := r.Prepare(root)
	if err != nil {
		return err
	}

	var t0 time.Time
	if r.debug {
		t0 = time.Now()
	}
	r.executeSet(target, is)
	if r.debug {
		r.stats.executeTime = time.Since(t0)
		r.debugLog()
	}
	return nil
}

// Prepare runs the collection half of a pass and returns the root group's
// instruction set without executing it. Callers that need to inspect or
// defer execution use this; Render wraps it.
func (r *Renderer) Prepare(root *Container) (*InstructionSet, error) {
	if root == nil {
		return nil, errors.New("thicket: render: nil root")
	}
	if root.destroyed {
		return nil, fmt.Errorf("render root %q: %w", root.Label, ErrUseAfterDestroy)
	}
	if root.parent != nil {
		return nil, fmt.Errorf("render root %q: has a parent: %w", root.Label, ErrInvalidHierarchy)
	}
	// A pass needs a group to own instructions. Promotion is otherwise an
	// explicit caller decision; the root handed to the renderer is the one
	// exception.
	if !root.isRenderGroupRoot {
		root.EnableRenderGroup()
	}

	r.frame++
	var t0 time.Time
	if r.debug {
		r.stats = frameStats{}
		t0 = time.Now()
	}

	fireOnRender(root)
	updateWorldTransforms(root, identityMatrix, 1, false)

	if err := r.processGroup(root.renderGroup); err != nil {
		return nil, err
	}

	if r.debug {
		r.stats.prepareTime = time.Since(t0)
	}
	return &root.renderGroup.instructions, nil
}

// fireOnRender invokes OnRender hooks across the visible tree, exactly once
// per node per pass, independent of render group ownership.
func fireOnRender(c *Container) {
	if c.destroyed || !c.visible {
		return
	}
	if c.OnRender != nil {
		c.OnRender(c)
	}
	for _, child := range c.children {
		fireOnRender(child)
	}
}

// processGroup rebuilds or refreshes one dirty group, then recurses into
// child groups. Clean groups (and their entire nested subtrees) are skipped:
// the dirty flag bubbles upward on mutation, so a clean group guarantees
// clean descendants.
func (r *Renderer) processGroup(g *RenderGroup) error {
	if !g.dirty {
		return nil
	}

	if g.structureDirty {
		if err := r.rebuildGroup(g); err != nil {
			return err
		}
		g.structureDirty = false
	} else if g.index > 0 {
		rebuilt, err := r.refreshGroup(g)
		if err != nil {
			return err
		}
		if rebuilt {
			g.structureDirty = false
		}
	}

	for _, c := range g.pendingViews() {
		if c != nil {
			c.didViewUpdate = false
		}
	}
	g.resetPending()
	g.dirty = false

	for _, cg := range g.childGroups {
		if err := r.processGroup(cg); err != nil {
			return err
		}
	}
	return nil
}

// rebuildGroup re-collects the group's subtree into a fresh instruction set.
// On failure the partial set is discarded and the group stays dirty, so the
// next pass retries from a consistent state.
func (r *Renderer) rebuildGroup(g *RenderGroup) error {
	is := &g.instructions
	r.releaseBatches(is)
	is.reset()
	r.batcher.begin()

	if err := r.collect(g.root, g, is); err != nil {
		r.batcher.abort()
		r.releaseBatches(is)
		is.reset()
		return err
	}
	r.batcher.flush(is)
	r.stats.rebuilds++
	return nil
}

// collect walks a group's subtree in child order — paint order — asking each
// view's pipe to add it. Invisible and non-renderable subtrees are skipped
// wholesale. Nested render group roots contribute a single group instruction
// and are not descended into; they keep their own instruction sets.
func (r *Renderer) collect(c *Container, g *RenderGroup, is *InstructionSet) error {
	if c.destroyed || !c.visible || !c.renderable {
		return nil
	}
	if c != g.root && c.isRenderGroupRoot {
		r.batcher.flush(is)
		is.add(Instruction{Type: InstructionGroup, Group: c.renderGroup})
		c.didViewUpdate = false
		return nil
	}
	if c.view != nil {
		pipe, ok := r.pipes[c.view.RenderPipeID()]
		if !ok {
			return &UnknownPipeError{PipeID: c.view.RenderPipeID()}
		}
		pipe.AddRenderable(c, is)
		r.stats.views++
	}
	c.didViewUpdate = false
	for _, child := range c.children {
		if err := r.collect(child, g, is); err != nil {
			return err
		}
	}
	return nil
}

// refreshGroup is the fast path for groups whose structure is intact: every
// pending view either revalidates cleanly and gets its vertices rewritten in
// place, or forces a full rebuild. Returns whether a rebuild happened.
func (r *Renderer) refreshGroup(g *RenderGroup) (bool, error) {
	for _, c := range g.pendingViews() {
		if c == nil || c.destroyed || c.view == nil {
			continue
		}
		if c.closestRenderGroup() != g {
			continue
		}
		pipe, ok := r.pipes[c.view.RenderPipeID()]
		if !ok {
			return false, &UnknownPipeError{PipeID: c.view.RenderPipeID()}
		}
		if pipe.ValidateRenderable(c) {
			err := r.rebuildGroup(g)
			return err == nil, err
		}
	}

	for _, c := range g.pendingViews() {
		if c == nil || c.destroyed {
			continue
		}
		if c.view != nil {
			if c.closestRenderGroup() != g {
				continue
			}
			if pipe, ok := r.pipes[c.view.RenderPipeID()]; ok {
				pipe.UpdateRenderable(c)
				r.stats.updates++
			}
		} else if isUnder(c, g.root) {
			r.refreshSubtree(c)
		}
	}
	return false, nil
}

// refreshSubtree rewrites vertices for every view under a moved container.
// It crosses nested group boundaries: world transforms are global, so a
// parent move staled the nested groups' vertex data too.
func (r *Renderer) refreshSubtree(c *Container) {
	if c.destroyed || !c.visible || !c.renderable {
		return
	}
	if c.view != nil {
		if pipe, ok := r.pipes[c.view.RenderPipeID()]; ok {
			pipe.UpdateRenderable(c)
			r.stats.updates++
		}
	}
	for _, child := range c.children {
		r.refreshSubtree(child)
	}
}

// isUnder reports whether c sits anywhere below root.
func isUnder(c *Container, root *Container) bool {
	for p := c; p != nil; p = p.parent {
		if p == root {
			return true
		}
	}
	return false
}

// releaseBatches returns an instruction set's batches to the pool before the
// set is rebuilt.
func (r *Renderer) releaseBatches(is *InstructionSet) {
	for i := range is.instructions {
		if is.instructions[i].Type == InstructionBatch && is.instructions[i].Batch != nil {
			r.batchPool.Release(is.instructions[i].Batch)
		}
	}
}

// executeSet submits an instruction set to the target, recursing into nested
// group instructions. Blend instructions are state markers; for the ebiten
// backend the blend is also carried on each batch and draw.
func (r *Renderer) executeSet(target *ebiten.Image, is *InstructionSet) {
	if target == nil {
		return
	}
	for i := range is.instructions {
		in := &is.instructions[i]
		switch in.Type {
		case InstructionBatch:
			b := in.Batch
			if len(b.verts) == 0 {
				continue
			}
			var op ebiten.DrawTrianglesOptions
			op.Blend = b.blend.EbitenBlend()
			op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
			// One submission per source run. Ebiten binds a single image per
			// call, so a multi-slot batch splits here while staying one batch
			// for collection and fast-path updates.
			for _, run := range b.runs {
				if run.Source == nil || run.Source.image == nil {
					continue
				}
				target.DrawTriangles32(b.verts, b.inds[run.IndexStart:run.IndexStart+run.IndexCount], run.Source.image, &op)
				r.stats.drawCalls++
			}
		case InstructionDraw:
			c := in.View
			if c == nil || c.destroyed || c.view == nil {
				continue
			}
			if pipe, ok := r.pipes[c.view.RenderPipeID()]; ok {
				pipe.Execute(target, c)
				r.stats.drawCalls++
			}
		case InstructionBlend:
			// State marker only.
		case InstructionGroup:
			r.executeSet(target, &in.Group.instructions)
		}
	}
}
