// Package shifter computes and applies the global timestamp shift: it scans
// every fixture record's fields subtree, finds the most recent timestamp, and
// moves all discovered timestamps by the single delta that lands the most
// recent one on the target time.
package shifter

import (
	"time"

	"github.com/fopina/fixshift/internal/scanner"
	"github.com/fopina/fixshift/internal/timestamp"
)

// Found pairs a discovered timestamp with the tree location it was read from.
// Collected once during planning, consumed once during apply.
type Found struct {
	Loc   scanner.Location
	Value timestamp.Value
}

// Plan is the outcome of scanning: every discovered timestamp, the most
// recent one, and the single delta to apply to all of them. One delta per
// run keeps every relative ordering and pairwise gap intact.
type Plan struct {
	Delta  time.Duration
	Found  []Found
	Latest timestamp.Value
}

// BuildPlan scans each fields subtree for timestamp-shaped strings and
// returns the shift plan, or nil when no timestamps exist anywhere in the
// input (a valid no-op outcome, not an error). When several timestamps tie
// for most recent, the first in traversal order is reported; the delta is
// identical either way.
func BuildPlan(fields []map[string]any, target time.Time) *Plan {
	var found []Found
	for _, tree := range fields {
		for _, node := range scanner.Strings(tree) {
			if v, ok := timestamp.Parse(node.Value); ok {
				found = append(found, Found{Loc: node.Loc, Value: v})
			}
		}
	}

	if len(found) == 0 {
		return nil
	}

	latest := found[0].Value
	for _, f := range found[1:] {
		if f.Value.Instant.After(latest.Instant) {
			latest = f.Value
		}
	}

	return &Plan{
		Delta:  target.Sub(latest.Instant),
		Found:  found,
		Latest: latest,
	}
}

// Apply shifts every found timestamp by the plan's delta and writes the
// rendered value back through its location. Every location was just read
// from the same live tree, so write-back cannot fail; the count of updated
// values is returned for reporting.
func (p *Plan) Apply() int {
	for _, f := range p.Found {
		f.Loc.SetString(f.Value.Shifted(p.Delta).Render())
	}
	return len(p.Found)
}
