package mesh

import (
	"github.com/Faultbox/meshview/pkg/math"
	"github.com/Faultbox/meshview/pkg/obj"
)

// boxQuads are the six faces of a unit box with outward winding,
// indexing into boxCorners.
var boxQuads = [6][4]int{
	{2, 3, 0, 1},
	{5, 2, 1, 6},
	{4, 5, 6, 7},
	{3, 4, 7, 0},
	{3, 2, 5, 4},
	{7, 6, 1, 0},
}

var boxCorners = [8]math.Vec3{
	{X: 0, Y: 0, Z: 0},
	{X: 1, Y: 0, Z: 0},
	{X: 1, Y: 1, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 1, Z: 1},
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: 0, Z: 1},
	{X: 0, Y: 0, Z: 1},
}

// Box returns a procedural box mesh spanning (0,0,0) to (w,h,d) with
// flat normals. Useful for floors and blockout geometry without an OBJ
// file on disk.
func Box(w, h, d float32) *RenderableMesh {
	data := &obj.MeshData{}
	for _, c := range boxCorners {
		data.Positions = append(data.Positions, math.Vec3{X: c.X * w, Y: c.Y * h, Z: c.Z * d})
	}
	for _, q := range boxQuads {
		face := make(obj.Face, 4)
		for i, idx := range q {
			face[i] = obj.FaceVert{Position: idx, TexCoord: -1, Normal: -1}
		}
		data.Faces = append(data.Faces, face)
	}

	m, err := Build(data)
	if err != nil {
		// Static input, cannot fail.
		panic(err)
	}
	return m
}
