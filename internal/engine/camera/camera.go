// Package camera provides the first-person fly camera for the viewer.
package camera

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/meshview/pkg/math"
)

// ErrInvalidProjection indicates projection parameters outside their
// valid ranges. Rejected at construction, before any frame runs.
var ErrInvalidProjection = errors.New("camera: invalid projection parameters")

// Pitch clamp bounds in degrees, kept short of the poles so LookAt
// never sees a forward vector parallel to world up.
const (
	MinPitch = -89.0
	MaxPitch = 89.0
)

// Config holds camera construction parameters. Angles are degrees.
type Config struct {
	FOV    float32 // vertical field of view
	Aspect float32 // width / height
	Near   float32
	Far    float32

	MoveSpeed float32 // world units per second
}

// DefaultConfig returns viewer defaults matching a 16:9 window.
func DefaultConfig() Config {
	return Config{
		FOV:       60,
		Aspect:    16.0 / 9.0,
		Near:      0.1,
		Far:       100,
		MoveSpeed: 6,
	}
}

// FlyCamera is a free-look camera: a position plus yaw/pitch in
// degrees. Yaw 0 looks down -Z; positive pitch looks up. Movement is
// FPS-style: forward/right stay on the horizontal plane regardless of
// pitch, the up axis follows world up.
type FlyCamera struct {
	Position math.Vec3
	Yaw      float32
	Pitch    float32

	cfg Config
}

// New validates cfg and returns a camera at the origin looking down -Z.
func New(cfg Config) (*FlyCamera, error) {
	if cfg.Near <= 0 {
		return nil, fmt.Errorf("%w: near %g must be > 0", ErrInvalidProjection, cfg.Near)
	}
	if cfg.Far <= cfg.Near {
		return nil, fmt.Errorf("%w: far %g must be > near %g", ErrInvalidProjection, cfg.Far, cfg.Near)
	}
	if cfg.FOV <= 0 || cfg.FOV >= 180 {
		return nil, fmt.Errorf("%w: fov %g must be in (0, 180)", ErrInvalidProjection, cfg.FOV)
	}
	if cfg.Aspect <= 0 {
		return nil, fmt.Errorf("%w: aspect %g must be > 0", ErrInvalidProjection, cfg.Aspect)
	}
	if cfg.MoveSpeed <= 0 {
		cfg.MoveSpeed = DefaultConfig().MoveSpeed
	}

	return &FlyCamera{cfg: cfg}, nil
}

// ViewMatrix returns the view matrix for the current position and
// orientation.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	forward := c.Forward()
	up := math.Vec3{Y: 1}
	return math.LookAt(c.Position, c.Position.Add(forward), up)
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *FlyCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(radians(c.cfg.FOV), c.cfg.Aspect, c.cfg.Near, c.cfg.Far)
}

// Forward returns the unit view direction.
func (c *FlyCamera) Forward() math.Vec3 {
	yaw := radians(c.Yaw)
	pitch := radians(c.Pitch)
	cosPitch := cos(pitch)
	return math.Vec3{
		X: sin(yaw) * cosPitch,
		Y: sin(pitch),
		Z: -cos(yaw) * cosPitch,
	}
}

// ApplyLook adjusts orientation by the given yaw/pitch deltas in
// degrees. Yaw wraps to [0, 360); pitch clamps to [MinPitch, MaxPitch].
func (c *FlyCamera) ApplyLook(deltaYaw, deltaPitch float32) {
	c.Yaw = float32(gomath.Mod(float64(c.Yaw+deltaYaw), 360))
	if c.Yaw < 0 {
		c.Yaw += 360
	}

	c.Pitch += deltaPitch
	if c.Pitch < MinPitch {
		c.Pitch = MinPitch
	}
	if c.Pitch > MaxPitch {
		c.Pitch = MaxPitch
	}
}

// ApplyMotion moves the camera along its local axes. forward/right/up
// are input axis values in [-1, 1], dt is the frame time in seconds.
func (c *FlyCamera) ApplyMotion(forward, right, up, dt float32) {
	c.ApplyMotionClipped(forward, right, up, dt, nil)
}

// ApplyMotionClipped moves like ApplyMotion but tests each horizontal
// axis separately against blocked, sliding along obstructions instead
// of stopping. A nil blocked applies no clipping. Vertical motion is
// never clipped.
func (c *FlyCamera) ApplyMotionClipped(forward, right, up, dt float32, blocked func(x, z float32) bool) {
	yaw := radians(c.Yaw)
	step := c.cfg.MoveSpeed * dt

	dx := (sin(yaw)*forward + cos(yaw)*right) * step
	dz := (-cos(yaw)*forward + sin(yaw)*right) * step

	if blocked == nil || !blocked(c.Position.X+dx, c.Position.Z) {
		c.Position.X += dx
	}
	if blocked == nil || !blocked(c.Position.X, c.Position.Z+dz) {
		c.Position.Z += dz
	}
	c.Position.Y += up * step
}

// SetAspect updates the aspect ratio, typically on window resize.
func (c *FlyCamera) SetAspect(aspect float32) {
	if aspect > 0 {
		c.cfg.Aspect = aspect
	}
}

func radians(deg float32) float32 {
	return deg * gomath.Pi / 180
}

func sin(x float32) float32 { return float32(gomath.Sin(float64(x))) }
func cos(x float32) float32 { return float32(gomath.Cos(float64(x))) }
