package walkmesh

import (
	"testing"

	"github.com/Faultbox/meshview/pkg/math"
)

func TestEmptyBlocksNothing(t *testing.T) {
	w := New(0.3)
	if w.Blocked(0, 0) {
		t.Error("empty walkmesh should not block")
	}
}

func TestSingleFootprint(t *testing.T) {
	w := New(0)
	w.AddFootprint(math.Vec2{X: 0, Y: 0}, math.Vec2{X: 5, Y: 5})

	tests := []struct {
		name string
		x, z float32
		want bool
	}{
		{"center", 2.5, 2.5, true},
		{"outside left", -1, 2.5, false},
		{"outside right", 6, 2.5, false},
		{"outside far", 2.5, 7, false},
		{"far corner outside", 10, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Blocked(tt.x, tt.z); got != tt.want {
				t.Errorf("Blocked(%v, %v) = %v, want %v", tt.x, tt.z, got, tt.want)
			}
		})
	}
}

func TestPadding(t *testing.T) {
	w := New(0.3)
	w.AddFootprint(math.Vec2{X: 0, Y: 0}, math.Vec2{X: 1, Y: 1})

	if !w.Blocked(1.2, 0.5) {
		t.Error("point inside padding should be blocked")
	}
	if w.Blocked(1.4, 0.5) {
		t.Error("point beyond padding should not be blocked")
	}
}

func TestCornersGivenInAnyOrder(t *testing.T) {
	w := New(0)
	w.AddFootprint(math.Vec2{X: 5, Y: 5}, math.Vec2{X: 0, Y: 0})

	if !w.Blocked(2.5, 2.5) {
		t.Error("footprint with swapped corners should still block")
	}
}

func TestOverlappingFootprints(t *testing.T) {
	w := New(0)
	w.AddFootprint(math.Vec2{X: 0, Y: 0}, math.Vec2{X: 4, Y: 4})
	w.AddFootprint(math.Vec2{X: 2, Y: 2}, math.Vec2{X: 6, Y: 6})

	tests := []struct {
		name string
		x, z float32
		want bool
	}{
		{"first only", 1, 1, true},
		{"overlap", 3, 3, true},
		{"second only", 5, 5, true},
		{"outside both", 5, 1, false},
		{"beyond union", 7, 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Blocked(tt.x, tt.z); got != tt.want {
				t.Errorf("Blocked(%v, %v) = %v, want %v", tt.x, tt.z, got, tt.want)
			}
		})
	}
}

func TestRegionsAreDisjoint(t *testing.T) {
	w := New(0)
	w.AddFootprint(math.Vec2{X: 0, Y: 0}, math.Vec2{X: 4, Y: 4})
	w.AddFootprint(math.Vec2{X: 2, Y: 2}, math.Vec2{X: 6, Y: 6})

	regions := w.Regions()
	if len(regions) == 0 {
		t.Fatal("expected blocked regions")
	}

	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			a, b := regions[i], regions[j]
			overlapX := a.Min.X < b.Max.X && b.Min.X < a.Max.X
			overlapZ := a.Min.Y < b.Max.Y && b.Min.Y < a.Max.Y
			if overlapX && overlapZ {
				t.Errorf("regions %d and %d overlap: %+v, %+v", i, j, a, b)
			}
		}
	}
}

func TestMergeIntervals(t *testing.T) {
	tests := []struct {
		name string
		in   [][2]float32
		want [][2]float32
	}{
		{"empty", nil, nil},
		{"single", [][2]float32{{0, 1}}, [][2]float32{{0, 1}}},
		{"disjoint", [][2]float32{{0, 1}, {2, 3}}, [][2]float32{{0, 1}, {2, 3}}},
		{"overlapping", [][2]float32{{0, 2}, {1, 3}}, [][2]float32{{0, 3}}},
		{"touching", [][2]float32{{0, 1}, {1, 2}}, [][2]float32{{0, 2}}},
		{"contained", [][2]float32{{0, 5}, {1, 2}}, [][2]float32{{0, 5}}},
		{"unsorted", [][2]float32{{3, 4}, {0, 1}}, [][2]float32{{0, 1}, {3, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeIntervals(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("merged count = %d, want %d (%v)", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("interval %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
