// Package timings implements C8's span measurement utility: a running
// log of labeled elapsed spans from a monotonic start, reportable as a
// (label, ms, %) table. Grounded on original_source/src/timings.rs, whose
// Timings::lap/append/report this mirrors one-for-one; comfy_table's
// table rendering has no example-pack Go equivalent, so Report renders
// with the standard library's text/tabwriter instead (see DESIGN.md).
package timings

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"
)

type point struct {
	label string
	ms    float64
}

// Timings accumulates labeled elapsed spans from a monotonic start.
type Timings struct {
	points []point
	last   time.Time
}

// Start begins a new timing run, anchored to now.
func Start() *Timings {
	return &Timings{last: time.Now()}
}

// Lap records the wall time elapsed since the previous lap (or since
// Start, for the first call) under label.
func (t *Timings) Lap(label string) {
	now := time.Now()
	taken := now.Sub(t.last).Seconds() * 1000.0
	t.last = now
	t.points = append(t.points, point{label: label, ms: taken})
}

// Append merges a sub-timer's points into this one, each relabeled as
// "prefix/label". If other recorded nothing, a single lap named prefix is
// recorded instead so the merge is never silently lossy.
func (t *Timings) Append(other *Timings, prefix string) {
	if len(other.points) == 0 {
		t.Lap(prefix)
		return
	}
	for _, p := range other.points {
		t.points = append(t.points, point{label: prefix + "/" + p.label, ms: p.ms})
	}
}

// Report renders the accumulated spans as a (label, ms, %) table followed
// by a Total row.
func (t *Timings) Report() string {
	var total float64
	for _, p := range t.points {
		total += p.ms
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "Category\tTime (MS)\t%")
	for _, p := range t.points {
		pct := 0.0
		if total != 0 {
			pct = p.ms * 100.0 / total
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\n", p.label, p.ms, pct)
	}
	fmt.Fprintf(w, "Total\t%.4f\t100%%\n", total)
	w.Flush()
	return sb.String()
}
