// Package config handles sandbox configuration loading and management.
package config

// Config holds all sandbox settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Assets  AssetsConfig  `yaml:"assets"`
	Shaders ShadersConfig `yaml:"shaders"`
	Logging LoggingConfig `yaml:"logging"`
	Debug   DebugConfig   `yaml:"debug"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string     `yaml:"title"`
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	ClearColor [4]float32 `yaml:"clear_color"`
	// Samples is the MSAA sample count; 0 or 1 disables multisampling.
	Samples int `yaml:"samples"`
}

// CameraConfig holds the fly camera starting state.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	Zoom        float32    `yaml:"zoom"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
}

// AssetsConfig holds asset locations.
type AssetsConfig struct {
	TextureDir      string `yaml:"texture_dir"`
	DiffuseTexture  string `yaml:"diffuse_texture"`
	SpecularTexture string `yaml:"specular_texture"`
	Model           string `yaml:"model"`
	Gamma           bool   `yaml:"gamma"`
	// MaxTextureSize downscales larger textures on load. Zero keeps full size.
	MaxTextureSize int `yaml:"max_texture_size"`
}

// ShadersConfig controls where shader sources come from.
// An empty Dir uses the embedded sources.
type ShadersConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DebugConfig holds developer helpers.
type DebugConfig struct {
	// ScreenshotDir is where F12 captures are written.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// Default returns a Config with the sandbox defaults.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "LearnOpenGL",
			Width:      1024,
			Height:     768,
			Fullscreen: false,
			VSync:      true,
			ClearColor: [4]float32{1, 1, 1, 1},
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0, 3},
			Speed:       2.5,
			Sensitivity: 0.1,
			Zoom:        45,
			Near:        0.1,
			Far:         100,
		},
		Assets: AssetsConfig{
			TextureDir:      "textures",
			DiffuseTexture:  "wood_container.png",
			SpecularTexture: "wood_container_specular.png",
			Model:           "models/backpack/backpack.obj",
			Gamma:           false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
	}
}
