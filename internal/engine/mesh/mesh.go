// Package mesh converts parsed geometry into GPU-ready triangle meshes.
package mesh

import (
	"github.com/Faultbox/meshview/pkg/math"
)

// Vertex holds the attributes of one mesh vertex.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}

// RenderableMesh is an immutable triangle mesh ready for upload.
// Vertices are not welded: every face corner gets its own entry so flat
// per-face normals render correctly. Indices always come in triples.
type RenderableMesh struct {
	Vertices []Vertex
	Indices  []uint32

	// Axis-aligned bounds, computed at build time.
	BoundsMin math.Vec3
	BoundsMax math.Vec3

	// Count of zero-area triangles that got the fallback normal.
	DegenerateTriangles int
}

// TriangleCount returns the number of triangles in the mesh.
func (m *RenderableMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func (m *RenderableMesh) computeBounds() {
	if len(m.Vertices) == 0 {
		return
	}
	min := m.Vertices[0].Position
	max := min
	for _, v := range m.Vertices[1:] {
		p := v.Position
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	m.BoundsMin = min
	m.BoundsMax = max
}
