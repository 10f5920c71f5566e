// Package walkmesh tracks blocked regions on the ground plane so
// camera motion can be clipped against scene geometry.
package walkmesh

import (
	"sort"

	"github.com/Faultbox/meshview/pkg/math"
)

// Rect is an axis-aligned rectangle on the XZ plane.
type Rect struct {
	Min, Max math.Vec2
}

// Contains reports whether the point lies inside the rectangle grown
// by pad on every side.
func (r Rect) Contains(x, z, pad float32) bool {
	return x > r.Min.X-pad && x < r.Max.X+pad &&
		z > r.Min.Y-pad && z < r.Max.Y+pad
}

// Walkmesh is the union of blocking footprints. Footprints may overlap
// arbitrarily; queries run against a disjoint decomposition rebuilt on
// every insertion.
type Walkmesh struct {
	footprints []Rect
	blocked    []Rect
	padding    float32
}

// New creates an empty walkmesh. padding grows every blocked region,
// keeping the camera from clipping into walls.
func New(padding float32) *Walkmesh {
	return &Walkmesh{padding: padding}
}

// AddFootprint registers a blocking rectangle given by two opposite
// corners in any order.
func (w *Walkmesh) AddFootprint(a, b math.Vec2) {
	r := Rect{
		Min: math.Vec2{X: min32(a.X, b.X), Y: min32(a.Y, b.Y)},
		Max: math.Vec2{X: max32(a.X, b.X), Y: max32(a.Y, b.Y)},
	}
	w.footprints = append(w.footprints, r)
	w.rebuild()
}

// Blocked reports whether the point (x, z) lies inside any blocked
// region, including padding.
func (w *Walkmesh) Blocked(x, z float32) bool {
	for _, r := range w.blocked {
		if r.Contains(x, z, w.padding) {
			return true
		}
	}
	return false
}

// Regions returns the disjoint blocked rectangles.
func (w *Walkmesh) Regions() []Rect { return w.blocked }

// rebuild decomposes the footprint union into disjoint rectangles:
// sweep the sorted X breakpoints, and for each vertical strip merge
// the Z intervals of the footprints spanning it.
func (w *Walkmesh) rebuild() {
	w.blocked = w.blocked[:0]

	xs := make([]float32, 0, len(w.footprints)*2)
	for _, r := range w.footprints {
		xs = append(xs, r.Min.X, r.Max.X)
	}
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	xs = dedup(xs)

	for i := 0; i+1 < len(xs); i++ {
		x0, x1 := xs[i], xs[i+1]

		var spans [][2]float32
		for _, r := range w.footprints {
			if r.Min.X <= x0 && r.Max.X >= x1 {
				spans = append(spans, [2]float32{r.Min.Y, r.Max.Y})
			}
		}

		for _, z := range mergeIntervals(spans) {
			w.blocked = append(w.blocked, Rect{
				Min: math.Vec2{X: x0, Y: z[0]},
				Max: math.Vec2{X: x1, Y: z[1]},
			})
		}
	}
}

// mergeIntervals merges overlapping or touching [start, end] intervals.
func mergeIntervals(intervals [][2]float32) [][2]float32 {
	if len(intervals) == 0 {
		return nil
	}

	sort.Slice(intervals, func(i, j int) bool { return intervals[i][0] < intervals[j][0] })

	merged := make([][2]float32, 0, len(intervals))
	cur := intervals[0]
	for _, next := range intervals[1:] {
		if next[0] <= cur[1] {
			if next[1] > cur[1] {
				cur[1] = next[1]
			}
		} else {
			merged = append(merged, cur)
			cur = next
		}
	}
	return append(merged, cur)
}

func dedup(sorted []float32) []float32 {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
