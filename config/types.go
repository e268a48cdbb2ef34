// Package config holds the viewer's YAML configuration.
package config

type Config struct {
	Window Window `yaml:"window"`
	Scene  Scene  `yaml:"scene"`
	Input  Input  `yaml:"input"`
	Debug  bool   `yaml:"debug"`
}

type Window struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	VSync     bool   `yaml:"vsync"`
	Resizable bool   `yaml:"resizable"`
}

type Scene struct {
	// URL of the glTF environment; a file path or http(s) URL.
	URL      string     `yaml:"url"`
	SkyColor [4]float32 `yaml:"sky_color"`
}

type Input struct {
	ControllerMesh string     `yaml:"controller_mesh,omitempty"`
	LaserColor     [4]float32 `yaml:"laser_color"`
	CursorColor    [4]float32 `yaml:"cursor_color"`
	CursorDistance float32    `yaml:"cursor_distance"`
	CursorSegments int        `yaml:"cursor_segments"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Window: Window{
			Width:     1280,
			Height:    720,
			Title:     "XR Input Viewer",
			VSync:     true,
			Resizable: true,
		},
		Scene: Scene{
			SkyColor: [4]float32{0.1, 0.1, 0.15, 1.0},
		},
		Input: Input{
			LaserColor:     [4]float32{1, 1, 1, 0.25},
			CursorColor:    [4]float32{1, 1, 1, 1},
			CursorDistance: 2.0,
			CursorSegments: 16,
		},
	}
}
