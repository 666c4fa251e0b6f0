// Package thicket is a retained-mode 2D scene graph for [Ebitengine].
//
// Thicket converts a tree of positioned, transformable containers into a
// minimal, batched sequence of draw instructions. Build the tree once, mutate
// it freely every frame, and each render pass recomputes only what actually
// changed: bounds, transforms, and instruction lists are all cached and
// invalidated incrementally.
//
// # Quick start
//
//	renderer, err := thicket.NewRenderer(thicket.DefaultPipeRegistry())
//	if err != nil {
//		log.Fatal(err)
//	}
//	root := thicket.NewContainer("root")
//	sprite := thicket.NewSprite("hero", heroTexture)
//	sprite.Position.Set(100, 50)
//	if err := root.AddChild(&sprite.Container); err != nil {
//		log.Fatal(err)
//	}
//
//	// In your ebiten.Game Draw:
//	renderer.Render(screen, root)
//
// # Scene graph
//
// Every element is a [Container]. Children inherit their parent's transform
// and alpha, and paint in insertion order, back to front. Drawable leaves
// ([Sprite], [Mesh]) carry a [View] that knows its own local bounds and which
// render pipe draws it.
//
// # Render groups
//
// A container promoted with [Container.EnableRenderGroup] becomes a cache
// boundary: its subtree keeps an independent [InstructionSet] that is only
// rebuilt when something inside it changes. Point mutations take a fast path
// that rewrites vertices in place without re-batching.
//
// # Batching
//
// Compatible sprites (same texture source, same blend mode) merge into shared
// [Batch] draw calls submitted through a single DrawTriangles32. Incompatible
// views break the batch; breaks are recorded in the instruction set so blend
// and texture state stay correct across them.
//
// Tween helpers (via [gween]) animate container properties through the same
// setters that drive invalidation, so animated nodes stay cheap.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package thicket
