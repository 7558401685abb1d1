package physics

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/zeusync/collision/pkg/collision"
)

// SceneConfig describes a set of bodies to place in a World.
type SceneConfig struct {
	Name   string        `json:"name,omitempty" yaml:"name,omitempty"`
	Bodies []*BodyConfig `json:"bodies" yaml:"bodies"`
}

// BodyConfig is a polygon in local coordinates plus its placement.
type BodyConfig struct {
	ID        string           `json:"id,omitempty" yaml:"id,omitempty"`
	Vertices  [][2]float64     `json:"vertices" yaml:"vertices"`
	Transform *TransformConfig `json:"transform,omitempty" yaml:"transform,omitempty"`
}

// TransformConfig is applied as scale, then rotate, then translate.
// Rotate is in degrees, counter-clockwise. A missing scale means (1, 1).
type TransformConfig struct {
	Translate [2]float64  `json:"translate,omitempty" yaml:"translate,omitempty"`
	Rotate    float64     `json:"rotate,omitempty" yaml:"rotate,omitempty"`
	Scale     *[2]float64 `json:"scale,omitempty" yaml:"scale,omitempty"`
}

// Validate validates the scene configuration
func (sc *SceneConfig) Validate() error {
	if len(sc.Bodies) == 0 {
		return fmt.Errorf("%w: scene has no bodies", ErrInvalidConfig)
	}

	seen := make(map[string]int, len(sc.Bodies))
	for i, body := range sc.Bodies {
		if body == nil {
			return fmt.Errorf("%w: body %d is empty", ErrInvalidConfig, i)
		}
		if err := body.Validate(); err != nil {
			return fmt.Errorf("body %d validation failed: %w", i, err)
		}
		if body.ID == "" {
			continue
		}
		if prev, dup := seen[body.ID]; dup {
			return fmt.Errorf("%w: bodies %d and %d share id %q", ErrInvalidConfig, prev, i, body.ID)
		}
		seen[body.ID] = i
	}

	return nil
}

// Validate validates the body configuration
func (bc *BodyConfig) Validate() error {
	if len(bc.Vertices) < collision.MinVertices {
		return fmt.Errorf("%w: body %q needs at least %d vertices, got %d",
			ErrInvalidConfig, bc.ID, collision.MinVertices, len(bc.Vertices))
	}

	if bc.Transform != nil && bc.Transform.Scale != nil {
		if bc.Transform.Scale[0] == 0 || bc.Transform.Scale[1] == 0 {
			return fmt.Errorf("%w: body %q has a zero scale", ErrInvalidConfig, bc.ID)
		}
	}

	return nil
}

// Points converts the configured vertices.
func (bc *BodyConfig) Points() []collision.Vertex {
	vertices := make([]collision.Vertex, len(bc.Vertices))
	for i, v := range bc.Vertices {
		vertices[i] = collision.Vertex{v[0], v[1]}
	}
	return vertices
}

// Affine returns the body placement, the identity if none is configured.
func (bc *BodyConfig) Affine() collision.Affine {
	if bc.Transform == nil {
		return collision.Identity()
	}
	return bc.Transform.Affine()
}

func (tc *TransformConfig) Affine() collision.Affine {
	t := collision.Identity()
	if tc.Scale != nil {
		t = t.Then(collision.Scaling(tc.Scale[0], tc.Scale[1]))
	}
	if tc.Rotate != 0 {
		t = t.Then(collision.Rotation(tc.Rotate * math.Pi / 180))
	}
	return t.Then(collision.Translation(tc.Translate[0], tc.Translate[1]))
}

// Populate validates the scene and adds every body to w. Bodies without an
// id get a random one.
func (sc *SceneConfig) Populate(w *World) error {
	if err := sc.Validate(); err != nil {
		return err
	}

	for _, body := range sc.Bodies {
		id := body.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := w.Add(id, body.Points(), body.Affine()); err != nil {
			return err
		}
	}

	return nil
}
