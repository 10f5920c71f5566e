// Package scene maintains the ordered set of drawable nodes and drives
// the per-frame update and draw submission.
package scene

import (
	"errors"

	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/mesh"
	"github.com/Faultbox/meshview/pkg/math"
)

// ErrStopped is returned by scene operations after Stop.
var ErrStopped = errors.New("scene: stopped")

// Drawer is the rendering boundary. The scene computes all matrices
// and hands them over; how the mesh reaches the screen is the
// implementation's business.
type Drawer interface {
	Draw(model, view, proj math.Mat4, color [3]float32, m *mesh.RenderableMesh)
}

// Input carries one frame's aggregated input deltas. Movement axes are
// in [-1, 1]; look deltas are in degrees.
type Input struct {
	Forward float32
	Right   float32
	Up      float32
	Yaw     float32
	Pitch   float32
}

// State is the scene lifecycle state.
type State int

const (
	// Running accepts per-frame updates.
	Running State = iota
	// Stopped is terminal; no operations are valid afterwards.
	Stopped
)

// Scene holds nodes in insertion order and one active camera.
// Insertion order is the draw order, which keeps frames reproducible.
// Not safe for concurrent use; one goroutine drives the frame loop.
type Scene struct {
	nodes  []*Node
	camera *camera.FlyCamera
	drawer Drawer

	// Optional horizontal collision query for camera motion.
	blocked func(x, z float32) bool

	state State
}

// New creates an empty running scene.
func New(cam *camera.FlyCamera, drawer Drawer) *Scene {
	return &Scene{camera: cam, drawer: drawer}
}

// Add appends a node. Draw order follows insertion order.
func (s *Scene) Add(n *Node) error {
	if s.state == Stopped {
		return ErrStopped
	}
	s.nodes = append(s.nodes, n)
	return nil
}

// Nodes returns the nodes in draw order.
func (s *Scene) Nodes() []*Node { return s.nodes }

// Camera returns the active camera.
func (s *Scene) Camera() *camera.FlyCamera { return s.camera }

// SetCollider installs a horizontal collision query used to clip
// camera motion. Pass nil to disable clipping.
func (s *Scene) SetCollider(blocked func(x, z float32) bool) {
	s.blocked = blocked
}

// Advance runs one frame: applies input to the camera, then submits
// every node to the drawer in insertion order. dt is the elapsed time
// in seconds.
func (s *Scene) Advance(dt float32, in Input) error {
	if s.state == Stopped {
		return ErrStopped
	}

	s.camera.ApplyLook(in.Yaw, in.Pitch)
	s.camera.ApplyMotionClipped(in.Forward, in.Right, in.Up, dt, s.blocked)

	view := s.camera.ViewMatrix()
	proj := s.camera.ProjectionMatrix()

	for _, n := range s.nodes {
		s.drawer.Draw(n.ModelMatrix(), view, proj, n.Color, n.Mesh)
	}
	return nil
}

// Stop transitions the scene to its terminal state.
func (s *Scene) Stop() {
	s.state = Stopped
}

// State returns the current lifecycle state.
func (s *Scene) State() State { return s.state }
