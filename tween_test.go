package thicket

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPosition(t *testing.T) {
	c := NewContainer("c")
	g := TweenPosition(c, 100, 50, 1, ease.Linear)

	g.Update(0.5)
	if math.Abs(c.Position.X()-50) > 0.01 || math.Abs(c.Position.Y()-25) > 0.01 {
		t.Errorf("position = (%v, %v), want (50, 25)", c.Position.X(), c.Position.Y())
	}
	if g.Done {
		t.Error("tween should not be done at the halfway point")
	}

	g.Update(0.5)
	if math.Abs(c.Position.X()-100) > 0.01 || math.Abs(c.Position.Y()-50) > 0.01 {
		t.Errorf("position = (%v, %v), want (100, 50)", c.Position.X(), c.Position.Y())
	}
	if !g.Done {
		t.Error("tween should be done")
	}
}

func TestTweenAlpha(t *testing.T) {
	c := NewContainer("c")
	g := TweenAlpha(c, 0, 1, ease.Linear)
	g.Update(1)
	if c.Alpha() != 0 {
		t.Errorf("alpha = %v, want 0", c.Alpha())
	}
	if !g.Done {
		t.Error("tween should be done")
	}
}

func TestTweenRotation(t *testing.T) {
	c := NewContainer("c")
	g := TweenRotation(c, math.Pi, 2, ease.Linear)
	g.Update(1)
	if math.Abs(c.Rotation()-math.Pi/2) > 0.01 {
		t.Errorf("rotation = %v, want %v", c.Rotation(), math.Pi/2)
	}
}

func TestTweenTint(t *testing.T) {
	c := NewContainer("c")
	g := TweenTint(c, Color{R: 0, G: 0, B: 0, A: 1}, 1, ease.Linear)
	g.Update(1)
	tint := c.Tint()
	if tint.R != 0 || tint.G != 0 || tint.B != 0 || tint.A != 1 {
		t.Errorf("tint = %+v, want {0 0 0 1}", tint)
	}
}

func TestTweenMarksNodeDirty(t *testing.T) {
	root := NewContainer("root")
	root.EnableRenderGroup()
	c := NewContainer("c")
	mustAdd(t, root, c)
	g := root.RenderGroup()
	g.resetPending()
	g.structureDirty = false
	g.dirty = false

	tw := TweenPosition(c, 10, 10, 1, ease.Linear)
	tw.Update(0.25)
	if !g.dirty {
		t.Error("tweened movement should dirty the owning group like a manual set")
	}
}

func TestTweenDestroyedTargetStops(t *testing.T) {
	c := NewContainer("c")
	g := TweenPosition(c, 100, 100, 1, ease.Linear)
	g.Update(0.25)
	c.Destroy()

	x := c.Position.X()
	g.Update(0.25)
	if !g.Done {
		t.Error("tween on a destroyed target should finish")
	}
	if c.Position.X() != x {
		t.Error("tween must not write to a destroyed target")
	}
}

func TestTweenUpdateAfterDone(t *testing.T) {
	c := NewContainer("c")
	g := TweenAlpha(c, 0, 0.5, ease.Linear)
	g.Update(1)
	g.Update(1) // no-op
	if c.Alpha() != 0 {
		t.Errorf("alpha = %v, want 0", c.Alpha())
	}
}
