// Package viewer implements the interactive terrain viewer loop.
package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/EternalMC/world-gen/internal/chunk"
	"github.com/EternalMC/world-gen/internal/config"
	"github.com/EternalMC/world-gen/internal/engine/camera"
	"github.com/EternalMC/world-gen/internal/engine/debug"
	"github.com/EternalMC/world-gen/internal/engine/input"
	"github.com/EternalMC/world-gen/internal/engine/lighting"
	"github.com/EternalMC/world-gen/internal/engine/picking"
	"github.com/EternalMC/world-gen/internal/engine/renderer"
	"github.com/EternalMC/world-gen/internal/engine/window"
	"github.com/EternalMC/world-gen/internal/logger"
	"github.com/EternalMC/world-gen/internal/world"
)

const title = "World Gen"

var skyColor = mgl32.Vec3{0.55, 0.7, 0.85}

// Viewer is the main viewer instance.
type Viewer struct {
	config  *config.Config
	running bool
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	chunks   *renderer.ChunkRenderer
	input    *input.Input
	camera   *camera.OrbitCamera
	sun      lighting.Sun
	world    *world.World
	shots    *debug.ScreenshotCapture

	screenshotPending bool
}

// New creates the window, the renderer and the chunk pipeline.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Viewer, error) {
	log = logger.OrNop(log)
	log.Info("Initializing viewer",
		zap.Int("width", cfg.Viewer.Width),
		zap.Int("height", cfg.Viewer.Height),
		zap.Int64("seed", cfg.Generator.Seed),
	)

	v := &Viewer{
		config: cfg,
		log:    log,
		sun:    lighting.DefaultSun(),
	}

	builder, err := cfg.NewBuilder(log.Named("builder"))
	if err != nil {
		return nil, fmt.Errorf("failed to create chunk builder: %w", err)
	}

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
		Samples:    4,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		Wireframe:  cfg.Viewer.Wireframe,
		ClearColor: skyColor,
	}, log.Named("renderer"))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.chunks, err = renderer.NewChunkRenderer(log.Named("renderer"))
	if err != nil {
		v.renderer.Close()
		v.window.Close()
		return nil, fmt.Errorf("failed to create chunk renderer: %w", err)
	}

	v.input = input.New()
	v.shots = debug.NewScreenshotCapture("screenshots", "terrain", debug.FormatPNG)
	v.camera = camera.NewOrbitCamera()
	v.camera.SetCenter(mgl32.Vec3{chunk.ChunkSize / 2, 0, chunk.ChunkSize / 2})
	v.world = world.New(ctx, builder, cfg.WorldOptions(), log.Named("world"))

	log.Info("Viewer initialized successfully")
	return v, nil
}

// Run starts the main loop. It returns when the window is closed, Escape
// is pressed or ctx is cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var minFrame time.Duration
	if v.config.Viewer.FPSLimit > 0 {
		minFrame = time.Second / time.Duration(v.config.Viewer.FPSLimit)
	}

	v.log.Info("Starting viewer loop")

	for v.running {
		if ctx.Err() != nil {
			break
		}

		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		if v.input.Update() {
			break
		}
		v.handleEvents()
		v.handleMovement(dt)

		// 2. Stream chunks around the camera
		v.update()

		// 3. Render
		v.render()

		// 4. Present (swap buffers)
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.reportFrame(frameCount)
			frameCount = 0
			fpsTimer = time.Now()
		}

		if minFrame > 0 {
			if spent := time.Since(now); spent < minFrame {
				time.Sleep(minFrame - spent)
			}
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("Closing viewer")

	if v.world != nil {
		if err := v.world.Close(); err != nil {
			v.log.Warn("Chunk pipeline stopped with error", zap.Error(err))
		}
		v.log.Info("Build stats", zap.Object("stats", v.world.Stats()))
	}
	if v.chunks != nil {
		v.chunks.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(v.window.DrawableSize())
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_F1:
				v.renderer.SetWireframe(!v.renderer.Wireframe())
			case sdl.SCANCODE_F11:
				v.window.ToggleFullscreen()
			case sdl.SCANCODE_F12:
				v.screenshotPending = true
			}
		case input.EventMouseMove:
			if v.input.IsButtonHeld(sdl.BUTTON_RIGHT) {
				v.camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			}
		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_LEFT {
				v.focusAt(event.MouseX, event.MouseY)
			}
		case input.EventMouseWheel:
			v.camera.HandleZoom(event.Wheel)
		}
	}
}

// focusAt moves the camera center to the terrain under a window position.
func (v *Viewer) focusAt(x, y int) {
	width, height := v.window.Size()
	viewProj := v.camera.ProjectionMatrix(width, height).Mul4(v.camera.ViewMatrix())
	ray := picking.ScreenToRay(float32(x), float32(y), float32(width), float32(height), viewProj)

	hit, ok := ray.MarchTerrain(func(wx, wz float32) (float32, bool) {
		return v.world.HeightAt(float64(wx), float64(wz))
	}, v.camera.FarPlane, 2)
	if !ok {
		return
	}
	v.camera.SetCenter(hit)
	v.log.Debug("Focus moved", zap.Float32("x", hit[0]), zap.Float32("y", hit[2]), zap.Float32("height", hit[1]))
}

func (v *Viewer) handleMovement(dt float32) {
	var forward, right float32
	if v.input.IsKeyHeld(sdl.SCANCODE_W) {
		forward++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_S) {
		forward--
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_D) {
		right++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_A) {
		right--
	}
	if forward == 0 && right == 0 {
		return
	}

	// Tuned for roughly one pan step per frame at 60 fps
	scale := dt * 60
	if v.input.IsKeyHeld(sdl.SCANCODE_LSHIFT) {
		scale *= 4
	}
	v.camera.HandleMovement(forward*scale, right*scale, 0)
}

// update streams chunks around the camera center and keeps the center on
// the terrain surface.
func (v *Viewer) update() {
	center := v.camera.Center
	u := v.world.Update(float64(center[0]), float64(center[2]))

	for _, pos := range u.Released {
		v.chunks.Remove(pos)
	}
	for _, c := range u.Completed {
		if c.Err != nil {
			v.chunks.Remove(c.Pos)
			continue
		}
		v.chunks.Upload(c.Chunk)
	}

	if h, ok := v.world.HeightAt(float64(center[0]), float64(center[2])); ok {
		// Ease towards the ground so refines do not make the camera jump
		v.camera.Center[1] += (h - v.camera.Center[1]) * 0.2
	}
}

func (v *Viewer) render() {
	v.renderer.Begin()

	width, height := v.renderer.Size()
	far := float32(v.config.Pipeline.ViewRadius * chunk.ChunkSize)
	v.chunks.Render(renderer.Frame{
		View:       v.camera.ViewMatrix(),
		Projection: v.camera.ProjectionMatrix(width, height),
		Camera:     v.camera.Position(),
		Sun:        v.sun,
		Fog: renderer.Fog{
			Near:  far * 0.6,
			Far:   far,
			Color: skyColor,
		},
	})

	if v.screenshotPending {
		v.screenshotPending = false
		v.captureScreenshot()
	}

	v.renderer.End()
}

func (v *Viewer) captureScreenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	name, err := v.shots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		v.log.Warn("Screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("Screenshot saved", zap.String("file", name))
}

func (v *Viewer) reportFrame(frames int) {
	stats := v.world.Stats()
	v.window.SetTitle(fmt.Sprintf("%s | %d fps | %d chunks | %d building",
		title, frames, v.chunks.Len(), stats.InFlight))
	v.log.Debug("Frame stats",
		zap.Int("fps", frames),
		zap.Int("chunks", v.chunks.Len()),
		zap.Int("pending", v.world.Pending()),
		zap.Object("builds", stats),
	)
}
