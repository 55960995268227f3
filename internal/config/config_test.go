package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Engine.Epsilon != 1e-3 {
		t.Errorf("expected Epsilon 1e-3, got %g", cfg.Engine.Epsilon)
	}
	if cfg.Engine.MinAffineDet != 1e-10 {
		t.Errorf("expected MinAffineDet 1e-10, got %g", cfg.Engine.MinAffineDet)
	}
	if len(cfg.Engine.BlurRadii) != 5 {
		t.Fatalf("expected 5 blur radii, got %d", len(cfg.Engine.BlurRadii))
	}
	want := []int{60, 50, 40, 25, 10}
	for i, r := range want {
		if cfg.Engine.BlurRadii[i] != r {
			t.Errorf("blur radius %d: expected %d, got %d", i, r, cfg.Engine.BlurRadii[i])
		}
	}
	if cfg.Engine.HullErosion != 0.98 {
		t.Errorf("expected HullErosion 0.98, got %g", cfg.Engine.HullErosion)
	}
	if cfg.Engine.ColorCorrectionStrength != 0.5 {
		t.Errorf("expected ColorCorrectionStrength 0.5, got %g", cfg.Engine.ColorCorrectionStrength)
	}
	if cfg.Addon.GlassesWidthFactor != 2.2 {
		t.Errorf("expected GlassesWidthFactor 2.2, got %g", cfg.Addon.GlassesWidthFactor)
	}
	if cfg.Output.JPEGQuality != 92 {
		t.Errorf("expected JPEGQuality 92, got %d", cfg.Output.JPEGQuality)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error for non-existent file: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected default config for non-existent file")
	}
}

func TestLoad_ValidFile(t *testing.T) {
	content := `
[engine]
epsilon = 0.01
min_affine_det = 1e-8
min_triangle_area = 2.0
blur_radii = [30, 20, 10]
hull_erosion = 0.9
color_correction_strength = 0.25
max_workers = 4

[addon]
glasses_width_factor = 2.0
moustache_width_factor = 1.5
hat_width_factor = 1.6

[output]
jpeg_quality = 80
default_alpha = 0.75
`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Engine.Epsilon != 0.01 {
		t.Errorf("expected Epsilon 0.01, got %g", cfg.Engine.Epsilon)
	}
	if len(cfg.Engine.BlurRadii) != 3 {
		t.Fatalf("expected 3 blur radii, got %d", len(cfg.Engine.BlurRadii))
	}
	if cfg.Engine.MaxWorkers != 4 {
		t.Errorf("expected MaxWorkers 4, got %d", cfg.Engine.MaxWorkers)
	}
	if cfg.Output.JPEGQuality != 80 {
		t.Errorf("expected JPEGQuality 80, got %d", cfg.Output.JPEGQuality)
	}
	if cfg.Output.DefaultAlpha != 0.75 {
		t.Errorf("expected DefaultAlpha 0.75, got %g", cfg.Output.DefaultAlpha)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invalid.toml")
	if err := os.WriteFile(path, []byte("invalid [ toml"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestValidate_InvalidEpsilon(t *testing.T) {
	cfg := Default()
	cfg.Engine.Epsilon = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero epsilon")
	}
}

func TestValidate_EmptyBlurRadii(t *testing.T) {
	cfg := Default()
	cfg.Engine.BlurRadii = nil
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty blur radii")
	}
}

func TestValidate_InvalidBlurRadius(t *testing.T) {
	cfg := Default()
	cfg.Engine.BlurRadii = []int{10, -5}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-positive blur radius")
	}
}

func TestValidate_InvalidHullErosion(t *testing.T) {
	cfg := Default()
	cfg.Engine.HullErosion = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero hull erosion")
	}

	cfg.Engine.HullErosion = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for hull erosion > 1")
	}
}

func TestValidate_InvalidColorCorrectionStrength(t *testing.T) {
	cfg := Default()
	cfg.Engine.ColorCorrectionStrength = -0.1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative color correction strength")
	}

	cfg.Engine.ColorCorrectionStrength = 1.1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for color correction strength > 1")
	}
}

func TestValidate_InvalidAddonFactors(t *testing.T) {
	cfg := Default()
	cfg.Addon.GlassesWidthFactor = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-positive glasses width factor")
	}
}

func TestValidate_InvalidOutput(t *testing.T) {
	cfg := Default()
	cfg.Output.JPEGQuality = 101
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for jpeg quality > 100")
	}

	cfg = Default()
	cfg.Output.DefaultAlpha = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for default alpha > 1")
	}
}
