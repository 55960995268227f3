// Package config provides TOML configuration loading for the morph engine.
//
// The configuration file supports the following structure:
//
//	[engine]
//	epsilon = 0.001
//	min_affine_det = 1e-10
//	min_triangle_area = 1.0
//	blur_radii = [60, 50, 40, 25, 10]
//	hull_erosion = 0.98
//	color_correction_strength = 0.5
//
//	[addon]
//	glasses_width_factor = 2.2
//	moustache_width_factor = 1.8
//	hat_width_factor = 1.8
//
//	[output]
//	jpeg_quality = 92
//	default_alpha = 1.0
//
// Example usage:
//
//	cfg, err := config.Load("config.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Hull erosion: %.2f\n", cfg.Engine.HullErosion)
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config represents the complete configuration for the morph engine.
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Addon  AddonConfig  `toml:"addon"`
	Output OutputConfig `toml:"output"`
}

// EngineConfig holds numerical tolerances and mask-building knobs for
// the morph pipeline.
type EngineConfig struct {
	// Epsilon is the barycentric containment tolerance (default: 0.001).
	Epsilon float64 `toml:"epsilon"`
	// MinAffineDet is the minimum |determinant| below which an affine
	// solve is treated as degenerate (default: 1e-10).
	MinAffineDet float64 `toml:"min_affine_det"`
	// MinTriangleArea is the minimum unsigned triangle area, in pixels
	// squared, below which a triangle is rejected (default: 1.0).
	MinTriangleArea float64 `toml:"min_triangle_area"`
	// BlurRadii are the successive blur pass radii applied to the hull
	// mask, in pixels (default: [60, 50, 40, 25, 10]).
	BlurRadii []int `toml:"blur_radii"`
	// HullErosion is the factor the hull polygon is shrunk toward its
	// centroid by before rasterization (default: 0.98).
	HullErosion float64 `toml:"hull_erosion"`
	// ColorCorrectionStrength is the blend factor applied to the
	// per-channel mean-matching correction (default: 0.5).
	ColorCorrectionStrength float64 `toml:"color_correction_strength"`
	// MaxWorkers bounds the per-triangle warp worker pool (default: 0,
	// meaning GOMAXPROCS).
	MaxWorkers int `toml:"max_workers"`
}

// AddonConfig holds size multipliers for overlay placement, per §4.8.
type AddonConfig struct {
	// GlassesWidthFactor scales the eye-gap distance into overlay width
	// (default: 2.2).
	GlassesWidthFactor float64 `toml:"glasses_width_factor"`
	// MoustacheWidthFactor scales the mouth-corner distance into
	// overlay width (default: 1.8).
	MoustacheWidthFactor float64 `toml:"moustache_width_factor"`
	// HatWidthFactor scales the cheek-gap distance into overlay width
	// (default: 1.8).
	HatWidthFactor float64 `toml:"hat_width_factor"`
}

// OutputConfig holds output-image encoding defaults for the CLI.
type OutputConfig struct {
	// JPEGQuality is the JPEG encode quality, 0-100 (default: 92).
	JPEGQuality int `toml:"jpeg_quality"`
	// DefaultAlpha is the blend strength used when the CLI is not
	// given an explicit -alpha flag (default: 1.0).
	DefaultAlpha float64 `toml:"default_alpha"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Epsilon:                 1e-3,
			MinAffineDet:            1e-10,
			MinTriangleArea:         1.0,
			BlurRadii:               []int{60, 50, 40, 25, 10},
			HullErosion:             0.98,
			ColorCorrectionStrength: 0.5,
			MaxWorkers:              0,
		},
		Addon: AddonConfig{
			GlassesWidthFactor:   2.2,
			MoustacheWidthFactor: 1.8,
			HatWidthFactor:       1.8,
		},
		Output: OutputConfig{
			JPEGQuality:  92,
			DefaultAlpha: 1.0,
		},
	}
}

// Load reads and parses a TOML configuration file.
// If the file does not exist, it returns the default configuration.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Engine.Epsilon <= 0 {
		return fmt.Errorf("engine epsilon must be positive, got %g", c.Engine.Epsilon)
	}
	if c.Engine.MinAffineDet <= 0 {
		return fmt.Errorf("engine min_affine_det must be positive, got %g", c.Engine.MinAffineDet)
	}
	if c.Engine.MinTriangleArea <= 0 {
		return fmt.Errorf("engine min_triangle_area must be positive, got %g", c.Engine.MinTriangleArea)
	}
	if len(c.Engine.BlurRadii) == 0 {
		return fmt.Errorf("engine blur_radii must not be empty")
	}
	for _, r := range c.Engine.BlurRadii {
		if r <= 0 {
			return fmt.Errorf("engine blur_radii entries must be positive, got %d", r)
		}
	}
	if c.Engine.HullErosion <= 0 || c.Engine.HullErosion > 1 {
		return fmt.Errorf("engine hull_erosion must be in (0,1], got %g", c.Engine.HullErosion)
	}
	if c.Engine.ColorCorrectionStrength < 0 || c.Engine.ColorCorrectionStrength > 1 {
		return fmt.Errorf("engine color_correction_strength must be in [0,1], got %g", c.Engine.ColorCorrectionStrength)
	}
	if c.Engine.MaxWorkers < 0 {
		return fmt.Errorf("engine max_workers must be non-negative, got %d", c.Engine.MaxWorkers)
	}
	if c.Addon.GlassesWidthFactor <= 0 {
		return fmt.Errorf("addon glasses_width_factor must be positive, got %g", c.Addon.GlassesWidthFactor)
	}
	if c.Addon.MoustacheWidthFactor <= 0 {
		return fmt.Errorf("addon moustache_width_factor must be positive, got %g", c.Addon.MoustacheWidthFactor)
	}
	if c.Addon.HatWidthFactor <= 0 {
		return fmt.Errorf("addon hat_width_factor must be positive, got %g", c.Addon.HatWidthFactor)
	}
	if c.Output.JPEGQuality < 0 || c.Output.JPEGQuality > 100 {
		return fmt.Errorf("output jpeg_quality must be in [0,100], got %d", c.Output.JPEGQuality)
	}
	if c.Output.DefaultAlpha < 0 || c.Output.DefaultAlpha > 1 {
		return fmt.Errorf("output default_alpha must be in [0,1], got %g", c.Output.DefaultAlpha)
	}
	return nil
}
