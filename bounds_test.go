package thicket

import "testing"

func TestEmptyBounds(t *testing.T) {
	b := EmptyBounds()
	if !b.IsEmpty() {
		t.Error("EmptyBounds should be empty")
	}
	if b.Width() != 0 || b.Height() != 0 {
		t.Errorf("empty bounds size = (%v, %v), want (0, 0)", b.Width(), b.Height())
	}
}

func TestBoundsAddFrame(t *testing.T) {
	b := EmptyBounds()
	b.AddFrame(10, 20, 30, 50)
	if b.IsEmpty() {
		t.Fatal("bounds should not be empty after AddFrame")
	}
	if b.MinX != 10 || b.MinY != 20 || b.MaxX != 30 || b.MaxY != 50 {
		t.Errorf("bounds = %+v, want {10 20 30 50}", b)
	}
	if b.Width() != 20 || b.Height() != 30 {
		t.Errorf("size = (%v, %v), want (20, 30)", b.Width(), b.Height())
	}
}

func TestBoundsAddFrameGrows(t *testing.T) {
	b := EmptyBounds()
	b.AddFrame(0, 0, 10, 10)
	b.AddFrame(-5, 2, 3, 20)
	if b.MinX != -5 || b.MinY != 0 || b.MaxX != 10 || b.MaxY != 20 {
		t.Errorf("bounds = %+v, want {-5 0 10 20}", b)
	}
}

func TestBoundsUnionIgnoresEmpty(t *testing.T) {
	b := EmptyBounds()
	b.AddFrame(0, 0, 10, 10)
	empty := EmptyBounds()
	b.Union(&empty)
	if b.MinX != 0 || b.MaxX != 10 {
		t.Errorf("union with empty changed bounds: %+v", b)
	}
}

func TestBoundsUnion(t *testing.T) {
	a := EmptyBounds()
	a.AddFrame(0, 0, 10, 10)
	b := EmptyBounds()
	b.AddFrame(5, -5, 20, 8)
	a.Union(&b)
	if a.MinX != 0 || a.MinY != -5 || a.MaxX != 20 || a.MaxY != 10 {
		t.Errorf("union = %+v, want {0 -5 20 10}", a)
	}
}

func TestBoundsContains(t *testing.T) {
	b := EmptyBounds()
	b.AddFrame(0, 0, 10, 10)

	cases := []struct {
		x, y float64
		want bool
	}{
		{5, 5, true},
		{0, 0, true},   // edges are inside
		{10, 10, true}, // edges are inside
		{-1, 5, false},
		{5, 11, false},
	}
	for _, c := range cases {
		if got := b.Contains(c.x, c.y); got != c.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestBoundsContainsEmpty(t *testing.T) {
	b := EmptyBounds()
	if b.Contains(0, 0) {
		t.Error("empty bounds should contain nothing")
	}
}

func TestBoundsClear(t *testing.T) {
	b := EmptyBounds()
	b.AddFrame(0, 0, 10, 10)
	b.Clear()
	if !b.IsEmpty() {
		t.Error("bounds should be empty after Clear")
	}
}
