package scene

import (
	gomath "math"

	"github.com/Faultbox/meshview/internal/engine/mesh"
	"github.com/Faultbox/meshview/pkg/math"
)

// Node places one mesh in the world. Meshes are shared: many nodes may
// reference the same RenderableMesh, which is read-only after build.
// Transform fields are private behind setters so the cached model
// matrix can be invalidated on mutation.
type Node struct {
	Name  string
	Mesh  *mesh.RenderableMesh
	Color [3]float32

	// Blocking nodes contribute their footprint to the walkmesh.
	Blocking bool

	position math.Vec3
	rotation math.Vec3 // Euler angles in degrees, applied Z then Y then X
	scale    math.Vec3

	model math.Mat4
	dirty bool
}

// NewNode creates a node at the origin with unit scale.
func NewNode(name string, m *mesh.RenderableMesh) *Node {
	return &Node{
		Name:  name,
		Mesh:  m,
		Color: [3]float32{0.7, 0.7, 0.7},
		scale: math.Vec3{X: 1, Y: 1, Z: 1},
		dirty: true,
	}
}

// Position returns the node's world position.
func (n *Node) Position() math.Vec3 { return n.position }

// Rotation returns the node's Euler rotation in degrees.
func (n *Node) Rotation() math.Vec3 { return n.rotation }

// Scale returns the node's scale factors.
func (n *Node) Scale() math.Vec3 { return n.scale }

// SetPosition moves the node and invalidates the cached matrix.
func (n *Node) SetPosition(p math.Vec3) {
	n.position = p
	n.dirty = true
}

// SetRotation sets the Euler rotation in degrees and invalidates the
// cached matrix.
func (n *Node) SetRotation(r math.Vec3) {
	n.rotation = r
	n.dirty = true
}

// SetScale sets the scale factors and invalidates the cached matrix.
// Zero and negative scales are allowed; they produce degenerate or
// mirrored geometry, not an error.
func (n *Node) SetScale(s math.Vec3) {
	n.scale = s
	n.dirty = true
}

// ModelMatrix returns Translation * Rotation * Scale for the current
// transform, recomputing only after a mutation.
func (n *Node) ModelMatrix() math.Mat4 {
	if n.dirty {
		t := math.Translate(n.position.X, n.position.Y, n.position.Z)
		r := math.RotateZ(rad(n.rotation.Z)).
			Mul(math.RotateY(rad(n.rotation.Y))).
			Mul(math.RotateX(rad(n.rotation.X)))
		s := math.Scale(n.scale.X, n.scale.Y, n.scale.Z)
		n.model = t.Mul(r).Mul(s)
		n.dirty = false
	}
	return n.model
}

// WorldBounds returns the axis-aligned bounds of the mesh under the
// node's current transform.
func (n *Node) WorldBounds() (math.Vec3, math.Vec3) {
	m := n.ModelMatrix()
	bmin, bmax := n.Mesh.BoundsMin, n.Mesh.BoundsMax

	corners := [8]math.Vec3{
		{X: bmin.X, Y: bmin.Y, Z: bmin.Z},
		{X: bmax.X, Y: bmin.Y, Z: bmin.Z},
		{X: bmin.X, Y: bmax.Y, Z: bmin.Z},
		{X: bmin.X, Y: bmin.Y, Z: bmax.Z},
		{X: bmax.X, Y: bmax.Y, Z: bmin.Z},
		{X: bmax.X, Y: bmin.Y, Z: bmax.Z},
		{X: bmin.X, Y: bmax.Y, Z: bmax.Z},
		{X: bmax.X, Y: bmax.Y, Z: bmax.Z},
	}

	min := m.TransformVec3(corners[0])
	max := min
	for _, c := range corners[1:] {
		p := m.TransformVec3(c)
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
	return min, max
}

func rad(deg float32) float32 {
	return deg * gomath.Pi / 180
}
