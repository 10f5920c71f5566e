package camera

import (
	"errors"
	"testing"

	"github.com/Faultbox/meshview/pkg/math"
)

func validConfig() Config {
	return Config{FOV: 60, Aspect: 16.0 / 9.0, Near: 0.1, Far: 100, MoveSpeed: 6}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero near", func(c *Config) { c.Near = 0 }, true},
		{"negative near", func(c *Config) { c.Near = -1 }, true},
		{"far equals near", func(c *Config) { c.Far = c.Near }, true},
		{"far below near", func(c *Config) { c.Far = 0.01 }, true},
		{"zero fov", func(c *Config) { c.FOV = 0 }, true},
		{"fov at 180", func(c *Config) { c.FOV = 180 }, true},
		{"negative aspect", func(c *Config) { c.Aspect = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			_, err := New(cfg)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidProjection) {
					t.Errorf("got error %v, want %v", err, ErrInvalidProjection)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPitchClamp(t *testing.T) {
	cam, err := New(validConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Accumulate far past the clamp in both directions.
	for i := 0; i < 50; i++ {
		cam.ApplyLook(0, 10)
	}
	if cam.Pitch != MaxPitch {
		t.Errorf("pitch after looking up = %v, want exactly %v", cam.Pitch, float32(MaxPitch))
	}

	for i := 0; i < 100; i++ {
		cam.ApplyLook(0, -10)
	}
	if cam.Pitch != MinPitch {
		t.Errorf("pitch after looking down = %v, want exactly %v", cam.Pitch, float32(MinPitch))
	}
}

func TestYawWraps(t *testing.T) {
	cam, err := New(validConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	cam.ApplyLook(370, 0)
	if cam.Yaw < 9.999 || cam.Yaw > 10.001 {
		t.Errorf("yaw after +370 = %v, want 10", cam.Yaw)
	}

	cam.ApplyLook(-30, 0)
	if cam.Yaw < 339.999 || cam.Yaw > 340.001 {
		t.Errorf("yaw after -30 = %v, want 340", cam.Yaw)
	}
}

func TestDefaultViewMatrixIsIdentity(t *testing.T) {
	cam, err := New(validConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	view := cam.ViewMatrix()
	id := math.Identity()
	for i := 0; i < 16; i++ {
		if diff := view[i] - id[i]; diff > 0.001 || diff < -0.001 {
			t.Fatalf("default view matrix element %d = %v, want %v", i, view[i], id[i])
		}
	}
}

func TestProjectionMatrix(t *testing.T) {
	cam, err := New(validConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	proj := cam.ProjectionMatrix()
	if proj[11] != -1 {
		t.Errorf("projection [11] = %v, want -1", proj[11])
	}
	if proj[15] != 0 {
		t.Errorf("projection [15] = %v, want 0", proj[15])
	}
}

func TestApplyMotionAxes(t *testing.T) {
	cam, err := New(validConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// At yaw 0, forward is -Z and right is +X. MoveSpeed 6 for 0.5s.
	cam.ApplyMotion(1, 0, 0, 0.5)
	want := math.Vec3{Z: -3}
	if cam.Position.Distance(want) > 0.001 {
		t.Errorf("position after forward motion = %v, want %v", cam.Position, want)
	}

	cam.Position = math.Vec3{}
	cam.ApplyMotion(0, 1, 0, 0.5)
	want = math.Vec3{X: 3}
	if cam.Position.Distance(want) > 0.001 {
		t.Errorf("position after right motion = %v, want %v", cam.Position, want)
	}

	cam.Position = math.Vec3{}
	cam.ApplyMotion(0, 0, -1, 0.5)
	want = math.Vec3{Y: -3}
	if cam.Position.Distance(want) > 0.001 {
		t.Errorf("position after down motion = %v, want %v", cam.Position, want)
	}
}

func TestApplyMotionFollowsYaw(t *testing.T) {
	cam, err := New(validConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Facing +X (yaw 90), forward motion moves along +X.
	cam.ApplyLook(90, 0)
	cam.ApplyMotion(1, 0, 0, 1)
	want := math.Vec3{X: 6}
	if cam.Position.Distance(want) > 0.001 {
		t.Errorf("position at yaw 90 = %v, want %v", cam.Position, want)
	}
}

func TestPitchDoesNotAffectHorizontalMotion(t *testing.T) {
	cam, err := New(validConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	cam.ApplyLook(0, 45)
	cam.ApplyMotion(1, 0, 0, 1)
	if cam.Position.Y != 0 {
		t.Errorf("forward motion changed Y to %v, want 0", cam.Position.Y)
	}
}

func TestApplyMotionClipped(t *testing.T) {
	cam, err := New(validConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Wall blocking all X > 0.5: forward-right motion should slide
	// along Z and keep X in place.
	blocked := func(x, z float32) bool { return x > 0.5 }

	cam.ApplyLook(90, 0) // forward = +X
	cam.ApplyMotionClipped(1, 1, 0, 1, blocked)

	if cam.Position.X != 0 {
		t.Errorf("X after clipped motion = %v, want 0", cam.Position.X)
	}
	if diff := cam.Position.Z - 6; diff > 0.001 || diff < -0.001 {
		t.Errorf("Z after clipped motion = %v, want 6", cam.Position.Z)
	}
}
