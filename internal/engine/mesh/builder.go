package mesh

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/math"
	"github.com/Faultbox/meshview/pkg/obj"
)

// ErrIndexOutOfRange indicates a face index that does not resolve into
// the mesh data arrays. The parser already bounds-checks, so hitting
// this means parser and builder disagree.
var ErrIndexOutOfRange = errors.New("mesh: face index out of range")

// normalEpsilon is the minimum cross-product magnitude for a triangle
// to produce a usable flat normal.
const normalEpsilon = 1e-6

// fallbackNormal is assigned to zero-area triangles.
var fallbackNormal = math.Vec3{Y: 1}

// Build converts parsed OBJ data into a renderable triangle mesh.
// Polygons with more than 3 vertices are fan-triangulated from their
// first vertex; non-convex or non-planar polygons may render
// incorrectly, which is accepted. Missing normals are replaced with a
// computed flat face normal, missing texture coordinates with (0, 0).
func Build(data *obj.MeshData) (*RenderableMesh, error) {
	m := &RenderableMesh{}

	for fi, face := range data.Faces {
		for _, fv := range face {
			if err := checkRange(fv, data); err != nil {
				return nil, fmt.Errorf("face %d: %w", fi, err)
			}
		}

		// Fan triangulation: [0, i, i+1] for each i in [1, len-2].
		for i := 1; i+1 < len(face); i++ {
			m.appendTriangle(data, [3]obj.FaceVert{face[0], face[i], face[i+1]})
		}
	}

	if m.DegenerateTriangles > 0 {
		logger.Warn("mesh has zero-area triangles, used fallback normal",
			zap.Int("count", m.DegenerateTriangles),
		)
	}

	m.computeBounds()
	return m, nil
}

func checkRange(fv obj.FaceVert, data *obj.MeshData) error {
	if fv.Position < 0 || fv.Position >= len(data.Positions) {
		return ErrIndexOutOfRange
	}
	if fv.TexCoord >= len(data.TexCoords) {
		return ErrIndexOutOfRange
	}
	if fv.Normal >= len(data.Normals) {
		return ErrIndexOutOfRange
	}
	return nil
}

func (m *RenderableMesh) appendTriangle(data *obj.MeshData, tri [3]obj.FaceVert) {
	p0 := data.Positions[tri[0].Position]
	p1 := data.Positions[tri[1].Position]
	p2 := data.Positions[tri[2].Position]

	// If any corner lacks a normal index, the whole triangle gets a
	// flat normal computed from its geometry.
	needFlat := tri[0].Normal < 0 || tri[1].Normal < 0 || tri[2].Normal < 0
	var flat math.Vec3
	if needFlat {
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		if n.Length() < normalEpsilon {
			flat = fallbackNormal
			m.DegenerateTriangles++
		} else {
			flat = n.Normalize()
		}
	}

	for _, fv := range tri {
		v := Vertex{Position: data.Positions[fv.Position]}
		if needFlat {
			v.Normal = flat
		} else {
			v.Normal = data.Normals[fv.Normal]
		}
		if fv.TexCoord >= 0 {
			v.UV = data.TexCoords[fv.TexCoord]
		}
		m.Indices = append(m.Indices, uint32(len(m.Vertices)))
		m.Vertices = append(m.Vertices, v)
	}
}
