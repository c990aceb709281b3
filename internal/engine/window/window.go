// Package window handles SDL2 window and OpenGL context creation.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	// Samples requests a multisampled default framebuffer when above 1.
	Samples int
	// CaptureMouse hides the cursor and reports relative motion.
	CaptureMouse bool
}

// Window wraps SDL2 window and OpenGL context.
type Window struct {
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	log       *zap.Logger
}

// 4.1 core is the newest profile macOS offers.
func contextAttributes(cfg Config) [][2]int {
	attrs := [][2]int{
		{int(sdl.GL_CONTEXT_MAJOR_VERSION), 4},
		{int(sdl.GL_CONTEXT_MINOR_VERSION), 1},
		{int(sdl.GL_CONTEXT_PROFILE_MASK), int(sdl.GL_CONTEXT_PROFILE_CORE)},
		{int(sdl.GL_CONTEXT_FLAGS), int(sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)},
		{int(sdl.GL_DOUBLEBUFFER), 1},
		{int(sdl.GL_DEPTH_SIZE), 24},
	}
	if cfg.Samples > 1 {
		attrs = append(attrs,
			[2]int{int(sdl.GL_MULTISAMPLEBUFFERS), 1},
			[2]int{int(sdl.GL_MULTISAMPLESAMPLES), cfg.Samples},
		)
	}
	return attrs
}

// New creates a window and makes its OpenGL context current.
func New(cfg Config) (_ *Window, err error) {
	w := &Window{log: logger.Named("window")}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}
	defer func() {
		if err != nil {
			w.Close()
		}
	}()

	// Attributes apply to the next window, so they go first.
	for _, a := range contextAttributes(cfg) {
		if err := sdl.GLSetAttribute(sdl.GLattr(a[0]), a[1]); err != nil {
			w.log.Warn("GL attribute rejected", zap.Int("attr", a[0]), zap.Int("value", a[1]), zap.Error(err))
		}
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	w.sdlWindow, err = sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	if w.glContext, err = w.sdlWindow.GLCreateContext(); err != nil {
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		w.log.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	if cfg.CaptureMouse {
		sdl.SetRelativeMouseMode(true)
		if !sdl.GetRelativeMouseMode() {
			w.log.Warn("failed to capture mouse", zap.Error(sdl.GetError()))
		}
	}

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
		zap.Int("samples", cfg.Samples),
	)
	return w, nil
}

// Close destroys the context and window and shuts SDL down.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
		w.glContext = nil
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
		w.sdlWindow = nil
	}
	sdl.Quit()
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// DrawableSize returns the framebuffer size in pixels. On high-DPI displays
// it is larger than the window size.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}
