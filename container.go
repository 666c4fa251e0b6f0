package thicket

import "fmt"

// Container is the scene graph node. It owns its children, a local transform
// built from observable Position/Scale/Skew/Pivot points plus rotation, a
// tint/alpha pair, and visibility flags. Drawable containers additionally
// carry a View (see Sprite, Mesh).
//
// Children paint in insertion order, back to front. A Container belongs to
// exactly one parent, and to exactly one render group's collection tree.
type Container struct {
	uid   uint32
	Label string

	// UserData is an arbitrary caller-owned value, never touched by thicket.
	UserData any

	parent   *Container
	children []*Container

	// Transform (local). Mutating any point marks the node dirty and
	// notifies the owning render group.
	Position ObservablePoint
	Scale    ObservablePoint
	Skew     ObservablePoint
	Pivot    ObservablePoint
	rotation float64

	worldTransform Matrix
	worldAlpha     float64
	transformDirty bool

	alpha      float64
	tint       Color
	blend      BlendMode
	visible    bool
	renderable bool

	isRenderGroupRoot bool
	renderGroup       *RenderGroup // owned group, non-nil iff root
	parentRenderGroup *RenderGroup // nearest ancestor group

	view View // non-nil when this container draws content

	viewTick      uint32
	didViewUpdate bool

	// OnRender fires exactly once per render pass, before transforms update,
	// regardless of which render group owns the node.
	OnRender func(*Container)

	destroyed bool
}

// NewContainer creates a container node with no visual representation.
func NewContainer(label string) *Container {
	c := &Container{}
	initContainer(c, label)
	return c
}

// initContainer sets the default field values shared by all node constructors.
func initContainer(c *Container, label string) {
	c.uid = nextUID()
	c.Label = label
	c.alpha = 1
	c.worldAlpha = 1
	c.tint = ColorWhite
	c.visible = true
	c.renderable = true
	c.transformDirty = true
	c.worldTransform = identityMatrix
	c.Position.bind(0, 0, c.onTransformChanged)
	c.Scale.bind(1, 1, c.onTransformChanged)
	c.Skew.bind(0, 0, c.onTransformChanged)
	c.Pivot.bind(0, 0, c.onTransformChanged)
}

// UID returns the container's stable numeric identity.
func (c *Container) UID() uint32 { return c.uid }

// --- Tree manipulation ---

// AddChild appends child to this container's children. A child that already
// has a different parent is reparented. Returns ErrInvalidHierarchy if the
// add would create a cycle or the child is already a child of this container,
// and ErrUseAfterDestroy if either node has been destroyed. On error the tree
// is left untouched.
func (c *Container) AddChild(child *Container) error {
	return c.AddChildAt(child, -1)
}

// AddChildAt inserts child at the given index, or appends when index is -1.
// Same reparenting and error behavior as AddChild.
func (c *Container) AddChildAt(child *Container, index int) error {
	if child == nil {
		return fmt.Errorf("add child: nil child: %w", ErrInvalidHierarchy)
	}
	if c.destroyed || child.destroyed {
		return fmt.Errorf("add child %q: %w", child.Label, ErrUseAfterDestroy)
	}
	if debugEnabled {
		debugCheckDestroyed(c, "AddChild (parent)")
		debugCheckDestroyed(child, "AddChild (child)")
	}
	if child.parent == c {
		return fmt.Errorf("add child %q: already a child of %q: %w", child.Label, c.Label, ErrInvalidHierarchy)
	}
	if isAncestor(child, c) {
		return fmt.Errorf("add child %q: would create a cycle: %w", child.Label, ErrInvalidHierarchy)
	}
	if index < -1 || index > len(c.children) {
		return fmt.Errorf("add child %q: index %d out of range: %w", child.Label, index, ErrInvalidHierarchy)
	}
	if child.parent != nil {
		child.parent.detachChild(child)
	}
	child.parent = c
	if index == -1 || index == len(c.children) {
		c.children = append(c.children, child)
	} else {
		c.children = append(c.children, nil)
		copy(c.children[index+1:], c.children[index:])
		c.children[index] = child
	}
	markSubtreeTransformDirty(child)
	attachToGroup(child, c.closestRenderGroup())
	c.notifyStructureChange()
	return nil
}

// RemoveChild detaches child from this container. Returns ErrInvalidHierarchy
// if child's parent is not this container.
func (c *Container) RemoveChild(child *Container) error {
	if child == nil || child.parent != c {
		return fmt.Errorf("remove child: not a child of %q: %w", c.Label, ErrInvalidHierarchy)
	}
	c.detachChild(child)
	return nil
}

// RemoveChildAt removes and returns the child at the given index.
func (c *Container) RemoveChildAt(index int) (*Container, error) {
	if index < 0 || index >= len(c.children) {
		return nil, fmt.Errorf("remove child at %d: index out of range: %w", index, ErrInvalidHierarchy)
	}
	child := c.children[index]
	c.detachChild(child)
	return child, nil
}

// RemoveFromParent detaches this container from its parent.
// No-op if it has no parent.
func (c *Container) RemoveFromParent() {
	if c.parent != nil {
		_ = c.parent.RemoveChild(c)
	}
}

// detachChild unlinks child from c, clearing its group membership and
// notifying the old group. Caller guarantees child.parent == c.
func (c *Container) detachChild(child *Container) {
	oldGroup := c.closestRenderGroup()
	c.notifyStructureChange()
	c.removeChildByPtr(child)
	child.parent = nil
	markSubtreeTransformDirty(child)
	if child.isRenderGroupRoot {
		if oldGroup != nil {
			oldGroup.removeChildGroup(child.renderGroup)
		}
	}
	attachToGroup(child, nil)
}

// removeChildByPtr removes child from c.children without clearing
// child.parent. Uses copy+nil to avoid retaining a dangling pointer in the
// backing array.
func (c *Container) removeChildByPtr(child *Container) {
	for i, cc := range c.children {
		if cc == child {
			copy(c.children[i:], c.children[i+1:])
			c.children[len(c.children)-1] = nil
			c.children = c.children[:len(c.children)-1]
			return
		}
	}
}

// SetChildIndex moves child to a new index among its siblings.
func (c *Container) SetChildIndex(child *Container, index int) error {
	if child.parent != c {
		return fmt.Errorf("set child index: not a child of %q: %w", c.Label, ErrInvalidHierarchy)
	}
	if index < 0 || index >= len(c.children) {
		return fmt.Errorf("set child index: index %d out of range: %w", index, ErrInvalidHierarchy)
	}
	oldIndex := -1
	for i, cc := range c.children {
		if cc == child {
			oldIndex = i
			break
		}
	}
	if oldIndex == index {
		return nil
	}
	if oldIndex < index {
		copy(c.children[oldIndex:], c.children[oldIndex+1:index+1])
	} else {
		copy(c.children[index+1:], c.children[index:oldIndex])
	}
	c.children[index] = child
	c.notifyStructureChange()
	return nil
}

// Swap exchanges the paint order of the children at indices i and j.
func (c *Container) Swap(i, j int) error {
	if i < 0 || i >= len(c.children) || j < 0 || j >= len(c.children) {
		return fmt.Errorf("swap children %d, %d: index out of range: %w", i, j, ErrInvalidHierarchy)
	}
	if i == j {
		return nil
	}
	c.children[i], c.children[j] = c.children[j], c.children[i]
	c.notifyStructureChange()
	return nil
}

// Children returns the child list. The returned slice MUST NOT be mutated.
func (c *Container) Children() []*Container { return c.children }

// NumChildren returns the number of children.
func (c *Container) NumChildren() int { return len(c.children) }

// ChildAt returns the child at the given index.
func (c *Container) ChildAt(index int) *Container { return c.children[index] }

// Parent returns the container's parent, or nil for a root.
func (c *Container) Parent() *Container { return c.parent }

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Container) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// markSubtreeTransformDirty sets transformDirty on node and all descendants.
func markSubtreeTransformDirty(node *Container) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeTransformDirty(child)
	}
}

// --- Appearance ---

// Rotation returns the local rotation in radians.
func (c *Container) Rotation() float64 { return c.rotation }

// SetRotation sets the local rotation in radians.
func (c *Container) SetRotation(r float64) {
	if c.rotation == r {
		return
	}
	c.rotation = r
	c.onTransformChanged()
}

// Alpha returns the local alpha.
func (c *Container) Alpha() float64 { return c.alpha }

// SetAlpha sets the local alpha. Descendant world alphas recompute on the
// next pass.
func (c *Container) SetAlpha(a float64) {
	if c.alpha == a {
		return
	}
	c.alpha = a
	c.onTransformChanged()
}

// Tint returns the tint color.
func (c *Container) Tint() Color { return c.tint }

// SetTint sets the tint color multiplied into the view's vertices.
func (c *Container) SetTint(t Color) {
	if c.tint == t {
		return
	}
	c.tint = t
	c.notifyRenderGroup()
}

// Blend returns the blend mode.
func (c *Container) Blend() BlendMode { return c.blend }

// SetBlend sets the blend mode. Blend changes can move batch boundaries, so
// the owning group's instructions are rebuilt.
func (c *Container) SetBlend(b BlendMode) {
	if c.blend == b {
		return
	}
	c.blend = b
	c.notifyStructureChange()
}

// Visible returns whether this subtree is traversed at all.
func (c *Container) Visible() bool { return c.visible }

// SetVisible shows or hides this container and its whole subtree.
func (c *Container) SetVisible(v bool) {
	if c.visible == v {
		return
	}
	c.visible = v
	c.notifyStructureChange()
}

// Renderable returns whether this subtree emits draw instructions.
func (c *Container) Renderable() bool { return c.renderable }

// SetRenderable toggles instruction emission for this subtree.
func (c *Container) SetRenderable(r bool) {
	if c.renderable == r {
		return
	}
	c.renderable = r
	c.notifyStructureChange()
}

// View returns the drawable content attached to this container, or nil.
func (c *Container) View() View { return c.view }

// IsDestroyed reports whether Destroy has been called on this container.
func (c *Container) IsDestroyed() bool { return c.destroyed }

// --- Transforms ---

// WorldTransform returns the world matrix computed during the last pass.
func (c *Container) WorldTransform() Matrix { return c.worldTransform }

// WorldAlpha returns the composed alpha computed during the last pass.
func (c *Container) WorldAlpha() float64 { return c.worldAlpha }

// WorldToLocal converts a world-space point to this container's local space.
func (c *Container) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return c.worldTransform.Invert().Apply(wx, wy)
}

// LocalToWorld converts a local-space point to world space.
func (c *Container) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return c.worldTransform.Apply(lx, ly)
}

// localMatrix composes the local transform from the current properties.
func (c *Container) localMatrix() Matrix {
	return composeMatrix(
		c.Position.x, c.Position.y,
		c.Scale.x, c.Scale.y,
		c.rotation,
		c.Skew.x, c.Skew.y,
		c.Pivot.x, c.Pivot.y,
	)
}

// updateWorldTransforms recomputes world transforms and alphas for a subtree.
// parentRecomputed forces recomputation even for clean nodes, since their
// cached world matrix composed a stale parent.
func updateWorldTransforms(c *Container, parentTransform Matrix, parentAlpha float64, parentRecomputed bool) {
	recompute := c.transformDirty || parentRecomputed
	if recompute {
		c.worldTransform = parentTransform.Mul(c.localMatrix())
		c.worldAlpha = parentAlpha * c.alpha
		c.transformDirty = false
	}
	for _, child := range c.children {
		updateWorldTransforms(child, c.worldTransform, c.worldAlpha, recompute)
	}
}

// --- Dirty propagation ---

// onTransformChanged handles any transform or alpha mutation: the world
// matrix is stale and the owning render group must revisit this node.
func (c *Container) onTransformChanged() {
	c.transformDirty = true
	c.notifyRenderGroup()
}

// onViewUpdate is the single choke point for shape mutations on drawable
// containers: texture swap, geometry change, anchor move. Bumping the change
// tick invalidates the view's cached bounds (they were computed at an earlier
// tick), then the render group is notified.
func (c *Container) onViewUpdate() {
	c.viewTick++
	c.notifyRenderGroup()
}

// notifyRenderGroup appends this container to the owning group's pending
// list. Multiple mutations within one frame coalesce into a single
// notification via didViewUpdate.
func (c *Container) notifyRenderGroup() {
	if c.didViewUpdate || c.destroyed {
		return
	}
	c.didViewUpdate = true
	if rg := c.closestRenderGroup(); rg != nil {
		rg.onChildViewUpdate(c)
	}
}

// notifyStructureChange marks the owning group's instruction list for a full
// rebuild.
func (c *Container) notifyStructureChange() {
	if rg := c.closestRenderGroup(); rg != nil {
		rg.onStructureChange()
	}
}

// closestRenderGroup returns the group this container collects into: its own
// group when it is a render group root, else the nearest ancestor group.
func (c *Container) closestRenderGroup() *RenderGroup {
	if c.renderGroup != nil {
		return c.renderGroup
	}
	return c.parentRenderGroup
}

// --- Render groups ---

// IsRenderGroupRoot reports whether this container owns a render group.
func (c *Container) IsRenderGroupRoot() bool { return c.isRenderGroupRoot }

// RenderGroup returns the owned render group, or nil.
func (c *Container) RenderGroup() *RenderGroup { return c.renderGroup }

// EnableRenderGroup promotes this container to a render group root: its
// subtree becomes an independently cached instruction list. Promotion is
// always an explicit caller decision; the renderer only ever promotes the
// root node it is handed.
func (c *Container) EnableRenderGroup() {
	if c.isRenderGroupRoot || c.destroyed {
		return
	}
	c.isRenderGroupRoot = true
	c.renderGroup = newRenderGroup(c)
	for _, child := range c.children {
		attachToGroup(child, c.renderGroup)
	}
	if c.parentRenderGroup != nil {
		c.parentRenderGroup.addChildGroup(c.renderGroup)
		c.parentRenderGroup.onStructureChange()
	}
	c.renderGroup.onStructureChange()
}

// DisableRenderGroup demotes this container back into its parent group's
// collection tree.
func (c *Container) DisableRenderGroup() {
	if !c.isRenderGroupRoot {
		return
	}
	g := c.renderGroup
	if c.parentRenderGroup != nil {
		c.parentRenderGroup.removeChildGroup(g)
	}
	c.isRenderGroupRoot = false
	c.renderGroup = nil
	for _, child := range c.children {
		attachToGroup(child, c.parentRenderGroup)
	}
	if c.parentRenderGroup != nil {
		c.parentRenderGroup.onStructureChange()
	}
}

// attachToGroup points a subtree's parentRenderGroup references at g.
// Descent stops at nested render group roots: their descendants keep
// collecting into the nested group.
func attachToGroup(c *Container, g *RenderGroup) {
	c.parentRenderGroup = g
	if c.isRenderGroupRoot {
		if g != nil {
			g.addChildGroup(c.renderGroup)
		}
		return
	}
	for _, child := range c.children {
		attachToGroup(child, g)
	}
}

// --- Destruction ---

// Destroy removes this container from its parent, releases any per-renderer
// GPU data held by its view, and recursively destroys all descendants.
// Safe to call more than once.
func (c *Container) Destroy() {
	if c.destroyed {
		return
	}
	c.RemoveFromParent()
	c.destroyRec()
}

func (c *Container) destroyRec() {
	c.destroyed = true
	if c.view != nil {
		releaseViewData(c)
	}
	for _, child := range c.children {
		child.parent = nil
		child.destroyRec()
	}
	c.children = nil
	c.parent = nil
	c.view = nil
	c.renderGroup = nil
	c.parentRenderGroup = nil
	c.OnRender = nil
	c.UserData = nil
}
