package thicket

import (
	"fmt"
	"os"
	"time"
)

// frameStats holds per-pass timing and work metrics.
// Only populated when the renderer's debug mode is on.
type frameStats struct {
	prepareTime time.Duration
	executeTime time.Duration

	rebuilds  int // render groups fully re-collected
	updates   int // fast-path vertex rewrites
	views     int // views added during rebuilds
	drawCalls int // batches + standalone draws submitted
}

// debugLog prints the pass's stats to stderr.
func (r *Renderer) debugLog() {
	if !r.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[thicket] prepare: %v | execute: %v\n",
		r.stats.prepareTime, r.stats.executeTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[thicket] rebuilds: %d | updates: %d | views: %d | draw calls: %d\n",
		r.stats.rebuilds, r.stats.updates, r.stats.views, r.stats.drawCalls)
}

// debugEnabled mirrors the most recently set renderer debug flag so container
// operations (which lack a renderer pointer) can check it cheaply. Only valid
// with a single renderer; multiple renderers with differing debug modes
// reflect whichever called SetDebugMode last.
var debugEnabled bool

// debugCheckDestroyed panics with a descriptive message when a destroyed
// container is used in a tree operation. Only called in debug mode; release
// callers get error returns instead.
func debugCheckDestroyed(c *Container, op string) {
	if c.destroyed {
		panic(fmt.Sprintf("thicket debug: %s on destroyed container %q (uid %d)", op, c.Label, c.uid))
	}
}

// countBatchInstructions reports how many batch instructions a set holds,
// nested groups included. Exposed through InstructionSet stats helpers used
// by tests and debug tooling.
func countBatchInstructions(is *InstructionSet) int {
	count := 0
	for i := range is.instructions {
		switch is.instructions[i].Type {
		case InstructionBatch:
			count++
		case InstructionGroup:
			count += countBatchInstructions(&is.instructions[i].Group.instructions)
		}
	}
	return count
}
