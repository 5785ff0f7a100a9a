// Package config holds the engine's tunable tolerances and tessellation
// quality profiles, with defaults and optional YAML overlay.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gocad/brep"
)

// Profile is one tessellation quality setting.
type Profile struct {
	Deflection  float64 `yaml:"deflection"`
	Angular     float64 `yaml:"angular"`
	EdgeSamples int     `yaml:"edge_samples"`
	VertexMap   bool    `yaml:"vertex_map"`
}

// Tessellation holds the two fixed quality profiles.
type Tessellation struct {
	High    Profile `yaml:"high"`
	Preview Profile `yaml:"preview"`
}

// Boolean holds boolean-operation tunables.
type Boolean struct {
	// FuzzyTolerance is the relaxed coincidence tolerance used by the
	// automatic boolean retry.
	FuzzyTolerance float64 `yaml:"fuzzy_tolerance"`
}

// Rebuild holds reconstruction tunables. FaceLossRatio is a heuristic
// threshold for the degraded-result warning, not a correctness bound.
type Rebuild struct {
	SewTolerance  float64 `yaml:"sew_tolerance"`
	FaceLossRatio float64 `yaml:"face_loss_ratio"`
}

// Config is the full tunable set.
type Config struct {
	Tessellation Tessellation `yaml:"tessellation"`
	Boolean      Boolean      `yaml:"boolean"`
	Rebuild      Rebuild      `yaml:"rebuild"`
}

// Default returns the built-in defaults, matching the engine package's
// compiled-in constants.
func Default() Config {
	return Config{
		Tessellation: Tessellation{
			High:    Profile{Deflection: 0.05, Angular: 0.35, EdgeSamples: 24, VertexMap: true},
			Preview: Profile{Deflection: 0.5, Angular: 0.7, EdgeSamples: 8, VertexMap: false},
		},
		Boolean: Boolean{FuzzyTolerance: 5e-3},
		Rebuild: Rebuild{SewTolerance: 1e-5, FaceLossRatio: 0.8},
	}
}

// HighProfile maps the configured high-quality tessellation settings onto
// the engine's profile type.
func (c Config) HighProfile() brep.Profile {
	return c.Tessellation.High.profile("high")
}

// PreviewProfile maps the configured preview tessellation settings onto
// the engine's profile type.
func (c Config) PreviewProfile() brep.Profile {
	return c.Tessellation.Preview.profile("preview")
}

func (p Profile) profile(name string) brep.Profile {
	return brep.Profile{
		Name:        name,
		Deflection:  p.Deflection,
		Angular:     p.Angular,
		EdgeSamples: p.EdgeSamples,
		VertexMap:   p.VertexMap,
	}
}

// RebuildOptions maps the rebuild tunables onto the engine's option set.
func (c Config) RebuildOptions() brep.RebuildOptions {
	return brep.RebuildOptions{
		SewTolerance:  c.Rebuild.SewTolerance,
		FaceLossRatio: c.Rebuild.FaceLossRatio,
	}
}

// Load reads a YAML file over the defaults: fields present in the file
// replace the default values, absent fields keep them. Unknown fields are
// an error.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty file: defaults apply unchanged.
			return cfg, nil
		}
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
