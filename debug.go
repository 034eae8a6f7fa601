package arbor

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-tick timing and population metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	tick         uint64
	traverseTime time.Duration
	applyTime    time.Duration
	eventCount   int
	branchCount  int
	leafCount    int
	flakeCount   int
}

// debugLog prints tick stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.traverseTime + stats.applyTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[arbor] tick %d | traverse: %v | apply: %v | total: %v\n",
		stats.tick, stats.traverseTime, stats.applyTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[arbor] branches: %d | leaves: %d | flakes: %d | events: %d\n",
		stats.branchCount, stats.leafCount, stats.flakeCount, stats.eventCount)
}

// debugCheckDepth warns on stderr if a branch chain is deeper than its
// tuning allows. Extension and splitting both gate on MaxDepth, so a
// warning here means the growth rules were bypassed somewhere.
func debugCheckDepth(b *Branch) {
	depth := 0
	for p := b; p != nil; p = p.parent {
		depth++
	}
	if depth > b.cfg.MaxDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[arbor] warning: branch chain depth %d exceeds max depth %d\n",
			depth, b.cfg.MaxDepth)
	}
}
