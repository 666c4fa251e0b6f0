package thicket

import "testing"

// setupBenchTree creates a root with n batched sprites over one shared source.
func setupBenchTree(b *testing.B, n int) (*Renderer, *Container, []*Sprite) {
	b.Helper()
	r, err := NewRenderer(DefaultPipeRegistry())
	if err != nil {
		b.Fatal(err)
	}
	root := NewContainer("root")
	src := NewTextureSource(nil)
	sprites := make([]*Sprite, n)
	for i := 0; i < n; i++ {
		s := NewSprite("sp", NewTextureRegion(src, 0, 0, 32, 32))
		s.Position.Set(float64(i%100)*40, float64(i/100)*40)
		if err := root.AddChild(&s.Container); err != nil {
			b.Fatal(err)
		}
		sprites[i] = s
	}
	return r, root, sprites
}

func BenchmarkPrepare_10000Sprites_Static(b *testing.B) {
	r, root, _ := setupBenchTree(b, 10000)

	// Warm up: the first pass rebuilds and populates the batch.
	if _, err := r.Prepare(root); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := r.Prepare(root); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPrepare_10000Sprites_Moving(b *testing.B) {
	r, root, sprites := setupBenchTree(b, 10000)

	if _, err := r.Prepare(root); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, s := range sprites {
			s.Position.SetX(s.Position.X() + 0.5)
		}
		if _, err := r.Prepare(root); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPrepare_10000Sprites_Rebuild(b *testing.B) {
	r, root, _ := setupBenchTree(b, 10000)

	if _, err := r.Prepare(root); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		root.RenderGroup().onStructureChange()
		if _, err := r.Prepare(root); err != nil {
			b.Fatal(err)
		}
	}
}
