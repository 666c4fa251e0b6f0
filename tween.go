package thicket

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to four scalar properties on a Container
// simultaneously. Values flow through the container's setters, so every
// animated frame takes the same invalidation path as a manual mutation and
// the owning render group's fast update path does the rest.
//
// There is no global animation manager — callers drive Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	apply  [4]func(float64)
	count  int
	target *Container
	Done   bool
}

// Update advances all tweens by dt seconds and applies the values. If the
// target container has been destroyed, Done is set and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDestroyed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.apply[i](float64(val))
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPosition animates the container's position to (toX, toY) over the
// given duration using the easing function.
func TweenPosition(c *Container, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: c}
	g.tweens[0] = gween.New(float32(c.Position.X()), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(c.Position.Y()), float32(toY), duration, fn)
	g.apply[0] = c.Position.SetX
	g.apply[1] = c.Position.SetY
	return g
}

// TweenScale animates the container's scale to (toX, toY).
func TweenScale(c *Container, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: c}
	g.tweens[0] = gween.New(float32(c.Scale.X()), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(c.Scale.Y()), float32(toY), duration, fn)
	g.apply[0] = c.Scale.SetX
	g.apply[1] = c.Scale.SetY
	return g
}

// TweenAlpha animates the container's alpha to the target value.
func TweenAlpha(c *Container, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: c}
	g.tweens[0] = gween.New(float32(c.Alpha()), float32(to), duration, fn)
	g.apply[0] = c.SetAlpha
	return g
}

// TweenRotation animates the container's rotation to the target value in
// radians.
func TweenRotation(c *Container, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: c}
	g.tweens[0] = gween.New(float32(c.Rotation()), float32(to), duration, fn)
	g.apply[0] = c.SetRotation
	return g
}

// TweenTint animates all four tint components to the target color.
func TweenTint(c *Container, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4, target: c}
	from := c.Tint()
	g.tweens[0] = gween.New(float32(from.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(from.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(from.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(from.A), float32(to.A), duration, fn)
	g.apply[0] = func(v float64) { t := c.Tint(); t.R = v; c.SetTint(t) }
	g.apply[1] = func(v float64) { t := c.Tint(); t.G = v; c.SetTint(t) }
	g.apply[2] = func(v float64) { t := c.Tint(); t.B = v; c.SetTint(t) }
	g.apply[3] = func(v float64) { t := c.Tint(); t.A = v; c.SetTint(t) }
	return g
}
