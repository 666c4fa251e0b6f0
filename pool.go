package thicket

import "fmt"

// Pool is a simple free-list pool. Owned by the renderer instance — there are
// no package-level pool singletons.
type Pool[T any] struct {
	free  []T
	alloc func() T
	reset func(T)
}

// NewPool creates a pool. alloc constructs a fresh value; reset (optional)
// scrubs a value on release before it re-enters the free list.
func NewPool[T any](alloc func() T, reset func(T)) *Pool[T] {
	return &Pool[T]{alloc: alloc, reset: reset}
}

// Acquire returns a pooled value, or a freshly allocated one.
func (p *Pool[T]) Acquire() T {
	if n := len(p.free); n > 0 {
		v := p.free[n-1]
		var zero T
		p.free[n-1] = zero
		p.free = p.free[:n-1]
		return v
	}
	return p.alloc()
}

// Release returns a value to the pool.
func (p *Pool[T]) Release(v T) {
	if p.reset != nil {
		p.reset(v)
	}
	p.free = append(p.free, v)
}

// slotTable is an index-based record table keyed by uid. uids are dense
// monotonically increasing integers, so a growing slice beats a hash map on
// the per-frame lookup path.
type slotTable[T any] struct {
	slots []T
	used  []bool
}

func (t *slotTable[T]) grow(uid uint32) {
	for uint32(len(t.slots)) <= uid {
		var zero T
		t.slots = append(t.slots, zero)
		t.used = append(t.used, false)
	}
}

// get returns the record for uid, if present.
func (t *slotTable[T]) get(uid uint32) (T, bool) {
	if uid < uint32(len(t.slots)) && t.used[uid] {
		return t.slots[uid], true
	}
	var zero T
	return zero, false
}

// put stores a record for uid. Reusing a uid slot without an intervening
// remove is an invariant violation and panics: it means two live views share
// an identity.
func (t *slotTable[T]) put(uid uint32, v T) {
	t.grow(uid)
	if t.used[uid] {
		panic(fmt.Sprintf("thicket: slot %d reused without destroy", uid))
	}
	t.slots[uid] = v
	t.used[uid] = true
}

// remove clears and returns the record for uid. Safe to call when absent.
func (t *slotTable[T]) remove(uid uint32) (T, bool) {
	var zero T
	if uid >= uint32(len(t.slots)) || !t.used[uid] {
		return zero, false
	}
	v := t.slots[uid]
	t.slots[uid] = zero
	t.used[uid] = false
	return v, true
}
