package main

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// -- config

// Config is everything tunable without a rebuild. A config.yaml next to the
// binary overrides the defaults; its absence is not an error.
type Config struct {
	ScreenWidth  int     `mapstructure:"screen_width"`
	ScreenHeight int     `mapstructure:"screen_height"`
	RenderScale  float64 `mapstructure:"render_scale"`
	Fullscreen   bool    `mapstructure:"fullscreen"`
	Vsync        bool    `mapstructure:"vsync"`

	FOVDegrees       float64 `mapstructure:"fov_degrees"`
	MouseSensitivity float64 `mapstructure:"mouse_sensitivity"`
	CaptureMouse     bool    `mapstructure:"capture_mouse"`

	AudioEnabled bool    `mapstructure:"audio_enabled"`
	Volume       float64 `mapstructure:"volume"`

	LivesStart int `mapstructure:"lives_start"`
	LivesCap   int `mapstructure:"lives_cap"`

	AssetDir string `mapstructure:"asset_dir"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault("screen_width", 1024)
	v.SetDefault("screen_height", 768)
	v.SetDefault("render_scale", 0.5)
	v.SetDefault("fullscreen", false)
	v.SetDefault("vsync", true)
	v.SetDefault("fov_degrees", 66.0)
	v.SetDefault("mouse_sensitivity", 0.003)
	v.SetDefault("capture_mouse", true)
	v.SetDefault("audio_enabled", true)
	v.SetDefault("volume", 0.8)
	v.SetDefault("lives_start", 3)
	v.SetDefault("lives_cap", 5)
	v.SetDefault("asset_dir", "assets/textures")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.RenderScale <= 0 || cfg.RenderScale > 1 {
		cfg.RenderScale = 0.5
	}
	if cfg.LivesStart < 1 {
		cfg.LivesStart = 3
	}
	if cfg.LivesCap < cfg.LivesStart {
		cfg.LivesCap = cfg.LivesStart
	}
	return cfg, nil
}
