// Package viewer wires the window, renderer, input, and scene into the
// interactive frame loop.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/assets"
	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/debug"
	"github.com/Faultbox/meshview/internal/engine/input"
	"github.com/Faultbox/meshview/internal/engine/mesh"
	"github.com/Faultbox/meshview/internal/engine/renderer"
	"github.com/Faultbox/meshview/internal/engine/scene"
	"github.com/Faultbox/meshview/internal/engine/walkmesh"
	"github.com/Faultbox/meshview/internal/engine/window"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/math"
)

// floorSize is the side length of the ground slab.
const floorSize = 40

// wallPadding keeps the camera this far away from blocking geometry.
const wallPadding = 0.3

// Viewer is the main application instance.
type Viewer struct {
	cfg *config.Config

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Handler
	scene    *scene.Scene
	shots    *debug.ScreenshotCapture
}

// New creates the window, GL state, and a scene populated from the
// configured assets directory.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{cfg: cfg}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "Meshview",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window created.
	v.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	cam, err := camera.New(camera.Config{
		FOV:       cfg.Camera.FOV,
		Aspect:    float32(cfg.Graphics.Width) / float32(cfg.Graphics.Height),
		Near:      cfg.Camera.Near,
		Far:       cfg.Camera.Far,
		MoveSpeed: cfg.Camera.MoveSpeed,
	})
	if err != nil {
		v.renderer.Close()
		v.window.Close()
		return nil, fmt.Errorf("invalid camera config: %w", err)
	}
	cam.Position = math.Vec3{X: 0, Y: 1.7, Z: 8}

	v.scene = scene.New(cam, v.renderer)
	v.input = input.New(cfg.Camera.MouseSensitivity)
	v.shots = debug.NewScreenshotCapture("screenshots", "meshview")

	if err := v.populate(); err != nil {
		v.renderer.Close()
		v.window.Close()
		return nil, err
	}

	v.window.GrabPointer()
	return v, nil
}

// populate builds the floor, loads assets, and derives the walkmesh
// from every blocking node's footprint.
func (v *Viewer) populate() error {
	floor := scene.NewNode("floor", mesh.Box(floorSize, 0.5, floorSize))
	floor.SetPosition(math.Vec3{X: -floorSize / 2, Y: -0.5, Z: -floorSize / 2})
	floor.Color = [3]float32{0.35, 0.4, 0.35}
	if err := v.scene.Add(floor); err != nil {
		return err
	}

	loader := assets.NewLoader()
	loaded, err := loader.LoadDirectory(v.cfg.Assets.Dir, v.scene)
	if err != nil {
		logger.Warn("assets directory unavailable",
			zap.String("dir", v.cfg.Assets.Dir),
			zap.Error(err),
		)
	}
	logger.Info("scene populated", zap.Int("assets", loaded))

	wm := walkmesh.New(wallPadding)
	for _, n := range v.scene.Nodes() {
		if !n.Blocking {
			continue
		}
		bmin, bmax := n.WorldBounds()
		wm.AddFootprint(
			math.Vec2{X: bmin.X, Y: bmin.Z},
			math.Vec2{X: bmax.X, Y: bmax.Z},
		)
	}
	v.scene.SetCollider(wm.Blocked)

	return nil
}

// Run drives the frame loop until quit.
func (v *Viewer) Run() error {
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if limit := v.cfg.Graphics.FPSLimit; limit > 0 && !v.cfg.Graphics.VSync {
		frameBudget = time.Second / time.Duration(limit)
	}

	logger.Info("starting frame loop")

	for v.scene.State() == scene.Running {
		frameStart := time.Now()
		dt := float32(frameStart.Sub(lastTime).Seconds())
		lastTime = frameStart

		f := v.input.Poll()

		if f.Quit {
			v.scene.Stop()
			break
		}

		if f.Resized {
			v.renderer.Resize(f.Width, f.Height)
			v.scene.Camera().SetAspect(float32(f.Width) / float32(f.Height))
		}

		v.renderer.Begin()
		err := v.scene.Advance(dt, scene.Input{
			Forward: f.Forward,
			Right:   f.Right,
			Up:      f.Up,
			Yaw:     f.Yaw,
			Pitch:   f.Pitch,
		})
		v.renderer.End()
		if err != nil {
			return fmt.Errorf("frame update: %w", err)
		}

		if f.Screenshot {
			v.captureScreenshot()
		}

		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float32("dt_ms", dt*1000),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if elapsed := time.Since(frameStart); elapsed < frameBudget {
				time.Sleep(frameBudget - elapsed)
			}
		}
	}

	return nil
}

// captureScreenshot reads back the framebuffer and writes a PNG.
func (v *Viewer) captureScreenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases GL and SDL resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.scene != nil {
		v.scene.Stop()
	}
	if v.window != nil {
		v.window.ReleasePointer()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
