package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Source != "catalog" {
		t.Errorf("expected source catalog, got %s", cfg.Source)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.DurationDays <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.StepsPerFrame < 1 {
		t.Error("steps per frame should be at least 1")
	}
	if len(cfg.Bodies) != 10 {
		t.Errorf("expected 10 catalog bodies, got %d", len(cfg.Bodies))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Dt = 120
	cfg.Bodies = []string{"sun", "earth"}
	cfg.Render.CanvasSize = 2e11

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Dt != 120 {
		t.Errorf("expected dt 120, got %f", loaded.Dt)
	}
	if len(loaded.Bodies) != 2 {
		t.Errorf("expected 2 bodies, got %d", len(loaded.Bodies))
	}
	if loaded.Render.CanvasSize != 2e11 {
		t.Errorf("expected canvas 2e11, got %g", loaded.Render.CanvasSize)
	}
}

func TestEpochTime(t *testing.T) {
	cfg := DefaultConfig()
	epoch, err := cfg.EpochTime()
	if err != nil {
		t.Fatalf("epoch parse failed: %v", err)
	}
	want := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	if !epoch.Equal(want) {
		t.Errorf("expected %v, got %v", want, epoch)
	}

	cfg.Epoch = "2024-06-15T12:00:00Z"
	if _, err := cfg.EpochTime(); err != nil {
		t.Errorf("RFC 3339 epoch rejected: %v", err)
	}

	cfg.Epoch = "soon"
	if _, err := cfg.EpochTime(); err == nil {
		t.Error("expected error for junk epoch")
	}
}

func TestSimConfig(t *testing.T) {
	cfg := DefaultConfig()
	sc := cfg.SimConfig()

	if sc.Dt != cfg.Dt {
		t.Errorf("dt mismatch: %f vs %f", sc.Dt, cfg.Dt)
	}
	if sc.Duration != cfg.DurationDays*86400 {
		t.Errorf("expected duration in seconds, got %f", sc.Duration)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("two-body")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Bodies) != 2 {
		t.Errorf("expected 2 bodies, got %d", len(cfg.Bodies))
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Error("expected presets")
	}
}
