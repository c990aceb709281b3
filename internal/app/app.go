// Package app implements the demo main loop: window, input, fly camera and
// per-frame scene rendering.
package app

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/config"
	"github.com/Faultbox/learngl/internal/engine/camera"
	"github.com/Faultbox/learngl/internal/engine/debug"
	"github.com/Faultbox/learngl/internal/engine/gpu/opengl"
	"github.com/Faultbox/learngl/internal/engine/input"
	"github.com/Faultbox/learngl/internal/engine/window"
	"github.com/Faultbox/learngl/internal/logger"
)

// Frame is the per-frame state handed to a Scene.
type Frame struct {
	Camera *camera.Camera
	Width  int
	Height int
	// Time is seconds since Run started; DT is seconds since the last frame.
	Time float64
	DT   float64
}

// Aspect returns the framebuffer aspect ratio.
func (f Frame) Aspect() float32 {
	if f.Height == 0 {
		return 1
	}
	return float32(f.Width) / float32(f.Height)
}

// Projection returns the camera projection for the current framebuffer.
func (f Frame) Projection() mgl32.Mat4 {
	return f.Camera.Projection(f.Aspect())
}

// Scene draws one demo. Render runs after the frame is cleared.
type Scene interface {
	Render(f Frame) error
	Close()
}

var movementKeys = []struct {
	key sdl.Scancode
	dir camera.Movement
}{
	{sdl.SCANCODE_W, camera.Forward},
	{sdl.SCANCODE_S, camera.Backward},
	{sdl.SCANCODE_A, camera.Left},
	{sdl.SCANCODE_D, camera.Right},
}

// App owns the window, the GL device and the camera.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window *window.Window
	device *opengl.Device
	input  *input.Input
	camera *camera.Camera
	shots  *debug.ScreenshotCapture

	width, height int
}

// New opens the window and initializes OpenGL.
func New(cfg *config.Config, title string) (*App, error) {
	a := &App{
		cfg: cfg,
		log: logger.Named("app"),
	}
	a.log.Info("initializing",
		zap.String("title", title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	var err error
	a.window, err = window.New(window.Config{
		Title:        title,
		Width:        cfg.Window.Width,
		Height:       cfg.Window.Height,
		Fullscreen:   cfg.Window.Fullscreen,
		VSync:        cfg.Window.VSync,
		Samples:      cfg.Window.Samples,
		CaptureMouse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// OpenGL functions load only after the context exists.
	a.device, err = opengl.Init()
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	a.log.Info("OpenGL initialized", zap.String("version", a.device.Version()))

	a.device.SetupFrameState()
	a.width, a.height = a.window.DrawableSize()
	a.device.Viewport(a.width, a.height)

	a.input = input.New()
	a.camera = newCamera(cfg.Camera)
	a.shots = debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, title)
	return a, nil
}

func newCamera(cc config.CameraConfig) *camera.Camera {
	c := camera.New(mgl32.Vec3(cc.Position))
	c.Speed = cc.Speed
	c.Sensitivity = cc.Sensitivity
	c.Zoom = cc.Zoom
	c.Near = cc.Near
	c.Far = cc.Far
	return c
}

// Device returns the GL device for creating scene resources.
func (a *App) Device() *opengl.Device { return a.device }

// Run drives the scene until the window closes or Esc is pressed.
func (a *App) Run(scene Scene) error {
	a.running = true

	start := time.Now()
	lastTime := start
	frameCount := 0
	fpsTimer := start

	a.log.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()
		a.updateCamera(float32(dt))

		a.device.Clear(a.cfg.Window.ClearColor)
		err := scene.Render(Frame{
			Camera: a.camera,
			Width:  a.width,
			Height: a.height,
			Time:   now.Sub(start).Seconds(),
			DT:     dt,
		})
		if err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		if a.input.IsKeyPressed(sdl.SCANCODE_F12) {
			a.screenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			// Event sizes are in window units; the viewport wants pixels.
			a.width, a.height = a.window.DrawableSize()
			a.device.Viewport(a.width, a.height)
		case input.EventKeyDown:
			if event.Key == sdl.SCANCODE_ESCAPE {
				a.running = false
			}
		}
	}
}

func (a *App) updateCamera(dt float32) {
	for _, m := range movementKeys {
		if a.input.IsKeyDown(m.key) {
			a.camera.ProcessKeyboard(m.dir, dt)
		}
	}
	if dx, dy := a.input.MouseDelta(); dx != 0 || dy != 0 {
		a.camera.ProcessMouseMovement(dx, dy, true)
	}
	if w := a.input.Wheel(); w != 0 {
		a.camera.ProcessMouseScroll(w)
	}
}

func (a *App) screenshot() {
	pix := a.device.ReadPixels(a.width, a.height)
	path, err := a.shots.CaptureFromPixels(pix, a.width, a.height)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the window and GL context.
func (a *App) Close() {
	a.log.Info("closing")
	if a.window != nil {
		a.window.Close()
	}
}
