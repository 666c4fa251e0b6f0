package thicket

import (
	"errors"
	"math"
	"testing"
)

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	c := NewContainer("test")
	if c.UID() == 0 {
		t.Error("UID should be non-zero")
	}
	if c.Label != "test" {
		t.Errorf("Label = %q, want %q", c.Label, "test")
	}
	if c.Scale.X() != 1 || c.Scale.Y() != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", c.Scale.X(), c.Scale.Y())
	}
	if c.Alpha() != 1 {
		t.Errorf("Alpha = %v, want 1", c.Alpha())
	}
	if c.Tint() != ColorWhite {
		t.Errorf("Tint = %v, want white", c.Tint())
	}
	if !c.Visible() {
		t.Error("Visible should be true")
	}
	if !c.Renderable() {
		t.Error("Renderable should be true")
	}
	if !c.transformDirty {
		t.Error("transformDirty should be true")
	}
}

func TestUniqueUIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	if a.UID() == b.UID() {
		t.Error("two containers should have distinct uids")
	}
}

// --- Tree manipulation ---

func TestAddChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	if err := parent.AddChild(child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if child.Parent() != parent {
		t.Error("child.Parent() should be parent")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Error("parent should have exactly [child]")
	}
}

func TestAddChildNil(t *testing.T) {
	parent := NewContainer("parent")
	err := parent.AddChild(nil)
	if !errors.Is(err, ErrInvalidHierarchy) {
		t.Errorf("err = %v, want ErrInvalidHierarchy", err)
	}
}

func TestAddChildDuplicate(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	mustAdd(t, parent, child)
	err := parent.AddChild(child)
	if !errors.Is(err, ErrInvalidHierarchy) {
		t.Errorf("err = %v, want ErrInvalidHierarchy", err)
	}
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1 (failed add must not mutate)", parent.NumChildren())
	}
}

func TestAddChildCycle(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	mustAdd(t, a, b)
	mustAdd(t, b, c)

	err := c.AddChild(a)
	if !errors.Is(err, ErrInvalidHierarchy) {
		t.Errorf("err = %v, want ErrInvalidHierarchy", err)
	}
	if a.Parent() != nil {
		t.Error("failed add must not mutate the tree")
	}

	if err := a.AddChild(a); !errors.Is(err, ErrInvalidHierarchy) {
		t.Errorf("self add: err = %v, want ErrInvalidHierarchy", err)
	}
}

func TestAddChildDestroyed(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	child.Destroy()
	if err := parent.AddChild(child); !errors.Is(err, ErrUseAfterDestroy) {
		t.Errorf("err = %v, want ErrUseAfterDestroy", err)
	}

	dead := NewContainer("dead")
	dead.Destroy()
	if err := dead.AddChild(NewContainer("c")); !errors.Is(err, ErrUseAfterDestroy) {
		t.Errorf("destroyed parent: err = %v, want ErrUseAfterDestroy", err)
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")
	mustAdd(t, a, child)
	mustAdd(t, b, child)

	if child.Parent() != b {
		t.Error("child should belong to b after reparent")
	}
	if a.NumChildren() != 0 {
		t.Errorf("a.NumChildren = %d, want 0", a.NumChildren())
	}
	if b.NumChildren() != 1 {
		t.Errorf("b.NumChildren = %d, want 1", b.NumChildren())
	}
}

func TestAddChildAt(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	mustAdd(t, parent, a)
	mustAdd(t, parent, c)
	if err := parent.AddChildAt(b, 1); err != nil {
		t.Fatalf("AddChildAt: %v", err)
	}
	assertChildOrder(t, parent, a, b, c)

	if err := parent.AddChildAt(NewContainer("x"), 7); !errors.Is(err, ErrInvalidHierarchy) {
		t.Errorf("out of range index: err = %v, want ErrInvalidHierarchy", err)
	}
}

func TestRemoveChild(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	mustAdd(t, parent, a)
	mustAdd(t, parent, b)
	mustAdd(t, parent, c)

	if err := parent.RemoveChild(b); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}
	if b.Parent() != nil {
		t.Error("removed child should have nil parent")
	}
	assertChildOrder(t, parent, a, c)

	stranger := NewContainer("stranger")
	if err := parent.RemoveChild(stranger); !errors.Is(err, ErrInvalidHierarchy) {
		t.Errorf("err = %v, want ErrInvalidHierarchy", err)
	}
}

func TestRemoveChildAt(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	mustAdd(t, parent, a)
	mustAdd(t, parent, b)

	got, err := parent.RemoveChildAt(0)
	if err != nil {
		t.Fatalf("RemoveChildAt: %v", err)
	}
	if got != a {
		t.Error("RemoveChildAt(0) should return the first child")
	}
	assertChildOrder(t, parent, b)

	if _, err := parent.RemoveChildAt(5); !errors.Is(err, ErrInvalidHierarchy) {
		t.Errorf("err = %v, want ErrInvalidHierarchy", err)
	}
}

func TestRemoveFromParent(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	mustAdd(t, parent, child)
	child.RemoveFromParent()
	if child.Parent() != nil || parent.NumChildren() != 0 {
		t.Error("child should be detached")
	}
	// No parent: no-op.
	child.RemoveFromParent()
}

func TestSetChildIndex(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	mustAdd(t, parent, a)
	mustAdd(t, parent, b)
	mustAdd(t, parent, c)

	if err := parent.SetChildIndex(c, 0); err != nil {
		t.Fatalf("SetChildIndex: %v", err)
	}
	assertChildOrder(t, parent, c, a, b)

	if err := parent.SetChildIndex(c, 2); err != nil {
		t.Fatalf("SetChildIndex: %v", err)
	}
	assertChildOrder(t, parent, a, b, c)

	if err := parent.SetChildIndex(NewContainer("x"), 0); !errors.Is(err, ErrInvalidHierarchy) {
		t.Errorf("foreign child: err = %v, want ErrInvalidHierarchy", err)
	}
	if err := parent.SetChildIndex(a, 9); !errors.Is(err, ErrInvalidHierarchy) {
		t.Errorf("out of range: err = %v, want ErrInvalidHierarchy", err)
	}
}

func TestSwap(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	mustAdd(t, parent, a)
	mustAdd(t, parent, b)
	mustAdd(t, parent, c)

	if err := parent.Swap(0, 2); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	assertChildOrder(t, parent, c, b, a)

	if err := parent.Swap(1, 1); err != nil {
		t.Fatalf("Swap same index: %v", err)
	}
	if err := parent.Swap(0, 5); !errors.Is(err, ErrInvalidHierarchy) {
		t.Errorf("out of range: err = %v, want ErrInvalidHierarchy", err)
	}
}

// --- Transforms ---

func TestUpdateWorldTransformsTranslation(t *testing.T) {
	root := NewContainer("root")
	child := NewContainer("child")
	mustAdd(t, root, child)
	root.Position.Set(10, 20)
	child.Position.Set(5, 5)

	updateWorldTransforms(root, identityMatrix, 1, false)

	wx, wy := child.LocalToWorld(0, 0)
	if wx != 15 || wy != 25 {
		t.Errorf("child world origin = (%v, %v), want (15, 25)", wx, wy)
	}
}

func TestUpdateWorldTransformsAlpha(t *testing.T) {
	root := NewContainer("root")
	child := NewContainer("child")
	grand := NewContainer("grand")
	mustAdd(t, root, child)
	mustAdd(t, child, grand)
	root.SetAlpha(0.5)
	child.SetAlpha(0.5)

	updateWorldTransforms(root, identityMatrix, 1, false)

	if grand.WorldAlpha() != 0.25 {
		t.Errorf("grand.WorldAlpha = %v, want 0.25", grand.WorldAlpha())
	}
}

func TestUpdateWorldTransformsSkipsClean(t *testing.T) {
	root := NewContainer("root")
	child := NewContainer("child")
	mustAdd(t, root, child)
	updateWorldTransforms(root, identityMatrix, 1, false)

	// Poison the child's cached matrix. A clean pass must not touch it.
	child.worldTransform[4] = 999
	updateWorldTransforms(root, identityMatrix, 1, false)
	if child.worldTransform[4] != 999 {
		t.Error("clean subtree should not recompute")
	}

	// A parent change forces recomputation even though child itself is clean.
	root.Position.Set(1, 0)
	updateWorldTransforms(root, identityMatrix, 1, false)
	if child.worldTransform[4] != 1 {
		t.Errorf("child tx = %v, want 1", child.worldTransform[4])
	}
}

func TestReparentMarksTransformDirty(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")
	mustAdd(t, a, child)
	a.Position.Set(100, 0)
	b.Position.Set(-100, 0)
	updateWorldTransforms(a, identityMatrix, 1, false)

	mustAdd(t, b, child)
	updateWorldTransforms(b, identityMatrix, 1, false)

	wx, _ := child.LocalToWorld(0, 0)
	if wx != -100 {
		t.Errorf("child world x = %v, want -100", wx)
	}
}

func TestWorldToLocalRoundTrip(t *testing.T) {
	c := NewContainer("c")
	c.Position.Set(10, -3)
	c.SetRotation(math.Pi / 3)
	c.Scale.Set(2, 0.5)
	updateWorldTransforms(c, identityMatrix, 1, false)

	wx, wy := c.LocalToWorld(7, 11)
	lx, ly := c.WorldToLocal(wx, wy)
	if math.Abs(lx-7) > 1e-9 || math.Abs(ly-11) > 1e-9 {
		t.Errorf("round trip = (%v, %v), want (7, 11)", lx, ly)
	}
}

// --- Setters ---

func TestSettersMarkTransformDirty(t *testing.T) {
	c := NewContainer("c")
	updateWorldTransforms(c, identityMatrix, 1, false)

	cases := []struct {
		name string
		fn   func()
	}{
		{"Position", func() { c.Position.Set(1, 2) }},
		{"Scale", func() { c.Scale.Set(2, 2) }},
		{"Skew", func() { c.Skew.Set(0.1, 0) }},
		{"Pivot", func() { c.Pivot.Set(4, 4) }},
		{"Rotation", func() { c.SetRotation(1) }},
		{"Alpha", func() { c.SetAlpha(0.5) }},
	}
	for _, tc := range cases {
		c.transformDirty = false
		tc.fn()
		if !c.transformDirty {
			t.Errorf("%s: transformDirty should be set", tc.name)
		}
	}
}

func TestSettersNoOpOnSameValue(t *testing.T) {
	c := NewContainer("c")
	c.SetRotation(1)
	c.SetAlpha(0.5)
	c.transformDirty = false

	c.SetRotation(1)
	c.SetAlpha(0.5)
	c.SetVisible(true)
	c.SetRenderable(true)
	c.SetTint(c.Tint())
	c.SetBlend(c.Blend())
	if c.transformDirty {
		t.Error("same-value setters should not dirty the transform")
	}
}

// --- Destroy ---

func TestDestroy(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grand := NewContainer("grand")
	mustAdd(t, parent, child)
	mustAdd(t, child, grand)

	child.Destroy()

	if !child.IsDestroyed() || !grand.IsDestroyed() {
		t.Error("Destroy should cascade to descendants")
	}
	if parent.IsDestroyed() {
		t.Error("Destroy must not travel upward")
	}
	if parent.NumChildren() != 0 {
		t.Error("destroyed child should be detached from its parent")
	}
	if child.NumChildren() != 0 || child.Parent() != nil {
		t.Error("destroyed node should drop all links")
	}

	// Second destroy is a no-op.
	child.Destroy()
}

func TestDestroyClearsUserState(t *testing.T) {
	c := NewContainer("c")
	c.UserData = "payload"
	c.OnRender = func(*Container) {}
	c.Destroy()
	if c.UserData != nil || c.OnRender != nil {
		t.Error("Destroy should release user references")
	}
}

// --- helpers ---

func mustAdd(t *testing.T, parent, child *Container) {
	t.Helper()
	if err := parent.AddChild(child); err != nil {
		t.Fatalf("AddChild(%q, %q): %v", parent.Label, child.Label, err)
	}
}

func assertChildOrder(t *testing.T, parent *Container, want ...*Container) {
	t.Helper()
	if parent.NumChildren() != len(want) {
		t.Fatalf("NumChildren = %d, want %d", parent.NumChildren(), len(want))
	}
	for i, w := range want {
		if parent.ChildAt(i) != w {
			t.Errorf("child %d = %q, want %q", i, parent.ChildAt(i).Label, w.Label)
		}
	}
}
