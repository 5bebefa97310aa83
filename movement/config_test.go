package movement

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/oerror"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locomotion.yaml")
	data := []byte("walk_speed: 5\nray_offset_a: [0.1, 0, 0.1]\ngrounding: contact\nslide_duration: 1.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	conf, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if conf.WalkSpeed != 5 || conf.Grounding != GroundingContact || conf.SlideDuration != 1.5 {
		t.Fatalf("unexpected config %+v", conf)
	}
	if conf.RayOffsetA != (mgl32.Vec3{0.1, 0, 0.1}) {
		t.Fatalf("unexpected ray offset %v", conf.RayOffsetA)
	}
	if conf.RunSpeed != DefaultConfig().RunSpeed {
		t.Fatalf("missing fields did not keep their defaults")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"positive gravity", func(c *Config) { c.Gravity = 1 }},
		{"zero height", func(c *Config) { c.Height = 0 }},
		{"slope limit", func(c *Config) { c.SlopeLimit = 180 }},
		{"grounding", func(c *Config) { c.Grounding = "teleport" }},
		{"grace steps", func(c *Config) { c.Grounding = GroundingContact; c.ContactGraceSteps = 0 }},
		{"negative speed", func(c *Config) { c.SprintSpeed = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := DefaultConfig()
			tt.modify(&conf)
			if err := conf.Validate(); !errors.Is(err, oerror.ErrInvalidConfig) {
				t.Fatalf("expected invalid config, got %v", err)
			}
		})
	}
}
