// Package scenario loads a 2D rigid-body scene (bodies, equations,
// timestep) from YAML, grounded on the teacher's internal/config
// package (Config/Load/Save/DefaultConfig) but carrying the engine's
// construction inputs (§6) instead of an ODE-model selector.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rbody2d/engine/internal/engine"
	"github.com/rbody2d/engine/internal/resolve"
	"github.com/rbody2d/engine/internal/rigidbody"
)

const (
	DefaultDt               = 1.0 / 60.0
	DefaultRestitution      = 0.2
	DefaultCorrectionPasses = 4
	DefaultSlopFactor       = 0.8
)

// BodyConfig is the YAML-facing construction input for one body, per §6.
type BodyConfig struct {
	Name   string  `yaml:"name"`
	Mass   float64 `yaml:"mass"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx"`
	VY     float64 `yaml:"vy"`
	Theta  float64 `yaml:"theta"`
	Color  string  `yaml:"color"`
}

// Scene is a complete, loadable description of a world.
type Scene struct {
	Bodies      []BodyConfig `yaml:"bodies"`
	Equations   []string     `yaml:"equations"`
	Dt          float64      `yaml:"dt"`
	Restitution float64      `yaml:"restitution"`
	Ticks       int          `yaml:"ticks"`
}

// DefaultScene returns a single-body scene at rest, analogous to the
// teacher's DefaultConfig.
func DefaultScene() *Scene {
	return &Scene{
		Bodies: []BodyConfig{
			{Name: "A", Mass: 1, Width: 1, Height: 1},
		},
		Dt:          DefaultDt,
		Restitution: DefaultRestitution,
		Ticks:       600,
	}
}

// Load reads and unmarshals a Scene from path, falling back to
// DefaultScene's fields for anything the file omits.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := DefaultScene()
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// Save marshals sc to path as YAML.
func Save(path string, sc *Scene) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// buildBodies constructs rigidbody.Body values for every BodyConfig.
func (s *Scene) buildBodies() ([]rigidbody.Body, error) {
	out := make([]rigidbody.Body, len(s.Bodies))
	for i, bc := range s.Bodies {
		b, err := rigidbody.NewRectangleBody(bc.Name, bc.Mass, bc.Width, bc.Height, bc.X, bc.Y, bc.VX, bc.VY, bc.Theta)
		if err != nil {
			return nil, fmt.Errorf("scenario: body %d: %w", i, err)
		}
		b.Color = bc.Color
		out[i] = b
	}
	return out, nil
}

// Build constructs a ready-to-run Engine from the scene.
func (s *Scene) Build() (*engine.Engine, error) {
	bodies, err := s.buildBodies()
	if err != nil {
		return nil, err
	}
	dt := s.Dt
	if dt <= 0 {
		dt = DefaultDt
	}
	restitution := s.Restitution
	if restitution == 0 {
		restitution = DefaultRestitution
	}
	return engine.New(bodies, s.Equations, dt,
		engine.WithResolverConfig(resolve.Config{
			Restitution:      restitution,
			CorrectionPasses: DefaultCorrectionPasses,
			SlopFactor:       DefaultSlopFactor,
		}),
	)
}
